package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ClusterName: "analytics",
		Region:      "DFW",
		StackID:     "HADOOP_HDP2_2",
		Flavor:      "Small Hadoop Instance",
		NodeCount:   3,
		LoginUser:   "analyst",
		SSHKeyName:  "analytics-key",
		PublicKey:   "ssh-rsa AAAAB3Nza test",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		errLike string
	}{
		{
			name:    "missing cluster name",
			mutate:  func(c *Config) { c.ClusterName = "" },
			errLike: "cluster_name is required",
		},
		{
			name:    "missing region",
			mutate:  func(c *Config) { c.Region = "" },
			errLike: "region is required",
		},
		{
			name:    "missing stack",
			mutate:  func(c *Config) { c.StackID = "" },
			errLike: "stack_id is required",
		},
		{
			name:    "missing flavor",
			mutate:  func(c *Config) { c.Flavor = "" },
			errLike: "flavor is required",
		},
		{
			name:    "missing login",
			mutate:  func(c *Config) { c.LoginUser = "" },
			errLike: "login_user is required",
		},
		{
			name:    "unknown region",
			mutate:  func(c *Config) { c.Region = "MARS" },
			errLike: "invalid region",
		},
		{
			name:    "cluster name too long",
			mutate:  func(c *Config) { c.ClusterName = strings.Repeat("a", MaxNameLength+1) },
			errLike: "cluster_name exceeds",
		},
		{
			name:    "login too long",
			mutate:  func(c *Config) { c.LoginUser = strings.Repeat("a", MaxLoginLength+1) },
			errLike: "login_user exceeds",
		},
		{
			name:    "key name too long",
			mutate:  func(c *Config) { c.SSHKeyName = strings.Repeat("a", MaxKeyNameLength+1) },
			errLike: "ssh_key_name exceeds",
		},
		{
			name:    "public key too long",
			mutate:  func(c *Config) { c.PublicKey = strings.Repeat("a", MaxPublicKeyLength+1) },
			errLike: "public_key exceeds",
		},
		{
			name:    "node count below minimum",
			mutate:  func(c *Config) { c.NodeCount = 0 },
			errLike: "node_count must be between",
		},
		{
			name:    "node count above maximum",
			mutate:  func(c *Config) { c.NodeCount = 11 },
			errLike: "node_count must be between",
		},
		{
			name:    "unknown state backend",
			mutate:  func(c *Config) { c.State.Backend = "etcd" },
			errLike: "invalid state backend",
		},
		{
			name: "s3 backend without bucket",
			mutate: func(c *Config) {
				c.State.Backend = StateBackendS3
			},
			errLike: "state.s3.bucket is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errLike)
		})
	}
}

func TestValidateNodeCountBounds(t *testing.T) {
	for count := MinNodeCount; count <= MaxNodeCount; count++ {
		cfg := validConfig()
		cfg.NodeCount = count
		assert.NoError(t, cfg.Validate(), "node_count %d should be valid", count)
	}
}

func TestValidateS3Backend(t *testing.T) {
	cfg := validConfig()
	cfg.State.Backend = StateBackendS3
	cfg.State.S3.Bucket = "cbd-state"
	require.NoError(t, cfg.Validate())
}
