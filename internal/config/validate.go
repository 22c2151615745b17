package config

import (
	"fmt"
	"sort"
)

// ValidRegions contains all regions the Cloud Big Data control plane
// serves.
var ValidRegions = map[string]bool{
	"DFW": true, // Dallas-Fort Worth
	"ORD": true, // Chicago
	"IAD": true, // Northern Virginia
	"LON": true, // London
	"SYD": true, // Sydney
	"HKG": true, // Hong Kong
}

// Validate checks the configuration for common errors and returns a
// detailed error if validation fails.
func (c *Config) Validate() error {
	// Required fields
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.StackID == "" {
		return fmt.Errorf("stack_id is required")
	}
	if c.Flavor == "" {
		return fmt.Errorf("flavor is required")
	}
	if c.LoginUser == "" {
		return fmt.Errorf("login_user is required")
	}

	if !ValidRegions[c.Region] {
		return fmt.Errorf("invalid region %q: must be one of %v", c.Region, getMapKeys(ValidRegions))
	}

	if err := c.validateLimits(); err != nil {
		return err
	}

	return c.validateState()
}

// validateLimits enforces the control plane's bounds on cluster
// properties.
func (c *Config) validateLimits() error {
	if len(c.ClusterName) > MaxNameLength {
		return fmt.Errorf("cluster_name exceeds %d characters", MaxNameLength)
	}
	if len(c.LoginUser) > MaxLoginLength {
		return fmt.Errorf("login_user exceeds %d characters", MaxLoginLength)
	}
	if len(c.SSHKeyName) > MaxKeyNameLength {
		return fmt.Errorf("ssh_key_name exceeds %d characters", MaxKeyNameLength)
	}
	if len(c.PublicKey) > MaxPublicKeyLength {
		return fmt.Errorf("public_key exceeds %d characters", MaxPublicKeyLength)
	}
	if c.NodeCount < MinNodeCount || c.NodeCount > MaxNodeCount {
		return fmt.Errorf("node_count must be between %d and %d, got %d", MinNodeCount, MaxNodeCount, c.NodeCount)
	}
	return nil
}

// validateState checks the state backend settings.
func (c *Config) validateState() error {
	switch c.State.Backend {
	case "", StateBackendLocal:
		return nil
	case StateBackendS3:
		if c.State.S3.Bucket == "" {
			return fmt.Errorf("state.s3.bucket is required for the s3 backend")
		}
		return nil
	default:
		return fmt.Errorf("invalid state backend %q: must be %q or %q", c.State.Backend, StateBackendLocal, StateBackendS3)
	}
}

// getMapKeys returns the keys of a map as a sorted slice for error messages.
func getMapKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
