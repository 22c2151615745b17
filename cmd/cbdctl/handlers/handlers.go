// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/cbdctl/internal/config"
	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/provisioning"
	"github.com/imamik/cbdctl/internal/state"
	"github.com/imamik/cbdctl/internal/ui/tui"
)

// Environment variables consulted for control plane access.
const (
	envEndpoint = "CBD_ENDPOINT"
	envRegion   = "CBD_REGION"
	envTenantID = "CBD_TENANT_ID"
	envToken    = "CBD_TOKEN"
	envUsername = "CBD_USERNAME"
	envAPIKey   = "CBD_API_KEY"
	envAuthURL  = "CBD_AUTH_URL"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newPlatformClient creates a new control plane client.
	newPlatformClient = func(region, tenantID, token string, opts ...cbd.ClientOption) cbd.PlatformManager {
		return cbd.NewRealClient(region, tenantID, token, opts...)
	}

	// authenticate exchanges username and API key for a token.
	authenticate = cbd.Authenticate

	// newStore opens the configured state backend.
	newStore = state.NewStore

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// runPhases executes provisioning phases.
	runPhases = provisioning.RunPhases

	// runTUI drives a Bubble Tea model alongside a work function.
	runTUI = tui.Run
)

// loadConfig loads and validates the cluster configuration.
// If configPath is empty, it looks for cbdctl.yaml in the current
// directory and its parents.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'cbdctl init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Using config: %s", configPath)
	return cfg, nil
}

// initializeClient builds the control plane client for the given
// region using credentials from the environment. A pre-issued
// CBD_TOKEN wins; otherwise CBD_USERNAME and CBD_API_KEY are exchanged
// for one at the region's auth endpoint.
func initializeClient(ctx context.Context, region string) (cbd.PlatformManager, error) {
	if r := os.Getenv(envRegion); r != "" {
		region = r
	}
	if region == "" {
		return nil, fmt.Errorf("no region configured: set region in the config file or %s", envRegion)
	}

	tenantID := os.Getenv(envTenantID)
	if tenantID == "" {
		return nil, fmt.Errorf("%s is not set", envTenantID)
	}

	token := os.Getenv(envToken)
	if token == "" {
		username := os.Getenv(envUsername)
		apiKey := os.Getenv(envAPIKey)
		if username == "" || apiKey == "" {
			return nil, fmt.Errorf("no credentials: set %s, or %s and %s", envToken, envUsername, envAPIKey)
		}

		authURL := os.Getenv(envAuthURL)
		if authURL == "" {
			authURL = cbd.DefaultAuthURL(region)
		}

		httpClient := &http.Client{Timeout: config.LoadTimeouts().RequestTimeout}
		var err error
		token, err = authenticate(ctx, httpClient, authURL, username, apiKey)
		if err != nil {
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
	}

	var opts []cbd.ClientOption
	if endpoint := os.Getenv(envEndpoint); endpoint != "" {
		opts = append(opts, cbd.WithEndpoint(endpoint))
	}

	return newPlatformClient(region, tenantID, token, opts...), nil
}

// loadConfigAndClient is the common preamble of handlers that talk to
// the control plane.
func loadConfigAndClient(ctx context.Context, configPath string) (*config.Config, cbd.PlatformManager, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	client, err := initializeClient(ctx, cfg.Region)
	if err != nil {
		return nil, nil, err
	}

	return cfg, client, nil
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
