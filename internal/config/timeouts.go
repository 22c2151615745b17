package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	PollInterval      time.Duration // Delay between lifecycle poll calls
	CreateTimeout     time.Duration // Overall budget for cluster creation
	DeleteTimeout     time.Duration // Overall budget for cluster deletion
	RequestTimeout    time.Duration // Per-request HTTP timeout
	RetryMaxAttempts  int           // Maximum number of retry attempts for reads
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - CBDCTL_POLL_INTERVAL (default: 15s)
//   - CBDCTL_CREATE_TIMEOUT (default: 60m)
//   - CBDCTL_DELETE_TIMEOUT (default: 30m)
//   - CBDCTL_REQUEST_TIMEOUT (default: 30s)
//   - CBDCTL_RETRY_MAX_ATTEMPTS (default: 5)
//   - CBDCTL_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		PollInterval:      parseDuration("CBDCTL_POLL_INTERVAL", 15*time.Second),
		CreateTimeout:     parseDuration("CBDCTL_CREATE_TIMEOUT", 60*time.Minute),
		DeleteTimeout:     parseDuration("CBDCTL_DELETE_TIMEOUT", 30*time.Minute),
		RequestTimeout:    parseDuration("CBDCTL_REQUEST_TIMEOUT", 30*time.Second),
		RetryMaxAttempts:  parseInt("CBDCTL_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("CBDCTL_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
