// Package retry provides exponential-backoff retries for control plane
// calls that may fail transiently. Errors wrapped with Fatal are
// returned immediately instead of being retried.
package retry
