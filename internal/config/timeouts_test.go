package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	// Clear any existing environment variables
	clearTimeoutEnvVars()

	timeouts := LoadTimeouts()

	// Verify default values
	if timeouts.PollInterval != 15*time.Second {
		t.Errorf("Expected PollInterval default 15s, got %v", timeouts.PollInterval)
	}
	if timeouts.CreateTimeout != 60*time.Minute {
		t.Errorf("Expected CreateTimeout default 60m, got %v", timeouts.CreateTimeout)
	}
	if timeouts.DeleteTimeout != 30*time.Minute {
		t.Errorf("Expected DeleteTimeout default 30m, got %v", timeouts.DeleteTimeout)
	}
	if timeouts.RequestTimeout != 30*time.Second {
		t.Errorf("Expected RequestTimeout default 30s, got %v", timeouts.RequestTimeout)
	}
	if timeouts.RetryMaxAttempts != 5 {
		t.Errorf("Expected RetryMaxAttempts default 5, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != 1*time.Second {
		t.Errorf("Expected RetryInitialDelay default 1s, got %v", timeouts.RetryInitialDelay)
	}
}

func TestLoadTimeouts_EnvVars(t *testing.T) {
	// Clear any existing environment variables
	clearTimeoutEnvVars()

	// Set custom values
	t.Setenv("CBDCTL_POLL_INTERVAL", "5s")
	t.Setenv("CBDCTL_CREATE_TIMEOUT", "90m")
	t.Setenv("CBDCTL_DELETE_TIMEOUT", "10m")
	t.Setenv("CBDCTL_REQUEST_TIMEOUT", "45s")
	t.Setenv("CBDCTL_RETRY_MAX_ATTEMPTS", "8")
	t.Setenv("CBDCTL_RETRY_INITIAL_DELAY", "250ms")

	timeouts := LoadTimeouts()

	if timeouts.PollInterval != 5*time.Second {
		t.Errorf("Expected PollInterval 5s, got %v", timeouts.PollInterval)
	}
	if timeouts.CreateTimeout != 90*time.Minute {
		t.Errorf("Expected CreateTimeout 90m, got %v", timeouts.CreateTimeout)
	}
	if timeouts.DeleteTimeout != 10*time.Minute {
		t.Errorf("Expected DeleteTimeout 10m, got %v", timeouts.DeleteTimeout)
	}
	if timeouts.RequestTimeout != 45*time.Second {
		t.Errorf("Expected RequestTimeout 45s, got %v", timeouts.RequestTimeout)
	}
	if timeouts.RetryMaxAttempts != 8 {
		t.Errorf("Expected RetryMaxAttempts 8, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != 250*time.Millisecond {
		t.Errorf("Expected RetryInitialDelay 250ms, got %v", timeouts.RetryInitialDelay)
	}
}

func TestLoadTimeouts_InvalidValues(t *testing.T) {
	clearTimeoutEnvVars()

	// Invalid values fall back to defaults
	t.Setenv("CBDCTL_POLL_INTERVAL", "not-a-duration")
	t.Setenv("CBDCTL_RETRY_MAX_ATTEMPTS", "many")

	timeouts := LoadTimeouts()

	if timeouts.PollInterval != 15*time.Second {
		t.Errorf("Expected PollInterval default 15s for invalid input, got %v", timeouts.PollInterval)
	}
	if timeouts.RetryMaxAttempts != 5 {
		t.Errorf("Expected RetryMaxAttempts default 5 for invalid input, got %d", timeouts.RetryMaxAttempts)
	}
}

func clearTimeoutEnvVars() {
	vars := []string{
		"CBDCTL_POLL_INTERVAL",
		"CBDCTL_CREATE_TIMEOUT",
		"CBDCTL_DELETE_TIMEOUT",
		"CBDCTL_REQUEST_TIMEOUT",
		"CBDCTL_RETRY_MAX_ATTEMPTS",
		"CBDCTL_RETRY_INITIAL_DELAY",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
