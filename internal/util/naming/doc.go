// Package naming provides consistent naming functions for cluster resources.
//
// Derived names follow the pattern {cluster}-{type} for provider-side
// objects (SSH keys) and {cluster}_{suffix} for local artifacts (key
// files). State objects are namespaced under clusters/ so one bucket can
// hold many clusters.
package naming
