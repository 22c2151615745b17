package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cbdctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `
cluster_name: analytics
region: DFW
stack_id: HADOOP_HDP2_2
flavor: Small Hadoop Instance
node_count: 5
login_user: analyst
public_key: ssh-rsa AAAAB3Nza test
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "analytics", cfg.ClusterName)
	assert.Equal(t, "DFW", cfg.Region)
	assert.Equal(t, "HADOOP_HDP2_2", cfg.StackID)
	assert.Equal(t, "Small Hadoop Instance", cfg.Flavor)
	assert.Equal(t, 5, cfg.NodeCount)
	assert.Equal(t, "analyst", cfg.LoginUser)
}

func TestLoadFileDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `
cluster_name: analytics
region: DFW
stack_id: HADOOP_HDP2_2
flavor: hadoop1-7
login_user: analyst
public_key: ssh-rsa AAAAB3Nza test
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultNodeCount, cfg.NodeCount)
	assert.Equal(t, "analytics-key", cfg.SSHKeyName)
	assert.Equal(t, StateBackendLocal, cfg.State.Backend)
	assert.Equal(t, filepath.Join(dir, "analytics.state.yaml"), cfg.State.Path)
}

func TestLoadFilePublicKeyFile(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "id_rsa.pub")
	require.NoError(t, os.WriteFile(keyPath, []byte("ssh-rsa AAAAB3Nza from-file\n"), 0o600))

	path := writeConfigFile(t, dir, `
cluster_name: analytics
region: DFW
stack_id: HADOOP_HDP2_2
flavor: hadoop1-7
login_user: analyst
public_key_file: id_rsa.pub
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ssh-rsa AAAAB3Nza from-file", cfg.PublicKey)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errLike string
	}{
		{
			name:    "malformed yaml",
			content: "cluster_name: [unclosed",
			errLike: "failed to unmarshal yaml",
		},
		{
			name: "missing required field",
			content: `
region: DFW
stack_id: HADOOP_HDP2_2
flavor: hadoop1-7
login_user: analyst
`,
			errLike: "cluster_name is required",
		},
		{
			name: "both key fields set",
			content: `
cluster_name: analytics
region: DFW
stack_id: HADOOP_HDP2_2
flavor: hadoop1-7
login_user: analyst
public_key: ssh-rsa AAAAB3Nza inline
public_key_file: id_rsa.pub
`,
			errLike: "mutually exclusive",
		},
		{
			name: "missing key file",
			content: `
cluster_name: analytics
region: DFW
stack_id: HADOOP_HDP2_2
flavor: hadoop1-7
login_user: analyst
public_key_file: does-not-exist.pub
`,
			errLike: "failed to read public key file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, t.TempDir(), tt.content)
			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errLike)
		})
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
