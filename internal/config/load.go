package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/imamik/cbdctl/internal/util/naming"
)

// DefaultConfigFilename is the config file apply and destroy look for
// when no --config flag is given.
const DefaultConfigFilename = "cbdctl.yaml"

// FindConfigFile searches for a config file in common locations.
// It checks the current directory, then walks up to find cbdctl.yaml.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, DefaultConfigFilename)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
		path = filepath.Join(dir, DefaultConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("config file %s not found", DefaultConfigFilename)
}

// LoadFile reads and parses the configuration from a YAML file.
// Defaults are applied and the result is validated before returning.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := cfg.applyDefaults(filepath.Dir(path)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills unset fields and resolves the public key file.
// Relative file references are resolved against baseDir, the directory
// the config file was loaded from.
func (c *Config) applyDefaults(baseDir string) error {
	if c.NodeCount == 0 {
		c.NodeCount = DefaultNodeCount
	}
	if c.SSHKeyName == "" && c.ClusterName != "" {
		c.SSHKeyName = naming.SSHKey(c.ClusterName)
	}
	if c.State.Backend == "" {
		c.State.Backend = StateBackendLocal
	}
	if c.State.Backend == StateBackendLocal && c.State.Path == "" && c.ClusterName != "" {
		c.State.Path = filepath.Join(baseDir, naming.StateFile(c.ClusterName))
	}

	if c.PublicKeyFile != "" {
		if c.PublicKey != "" {
			return fmt.Errorf("public_key and public_key_file are mutually exclusive")
		}
		keyPath := c.PublicKeyFile
		if !filepath.IsAbs(keyPath) {
			keyPath = filepath.Join(baseDir, keyPath)
		}
		// #nosec G304
		key, err := os.ReadFile(keyPath)
		if err != nil {
			return fmt.Errorf("failed to read public key file: %w", err)
		}
		c.PublicKey = strings.TrimSpace(string(key))
	}

	return nil
}
