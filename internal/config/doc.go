// Package config defines the configuration model shared by the CLI and
// the operator.
//
// The [Config] struct is the canonical representation of a cluster's
// desired state: identity, stack and flavor selection, node count,
// login, SSH key material, and the state backend. It is produced by
// loading a YAML file, by the interactive wizard, or by converting a
// CRD spec in the operator path.
package config
