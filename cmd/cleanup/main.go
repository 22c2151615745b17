// Package main provides a standalone cleanup utility for Cloud Big
// Data clusters.
//
// It sweeps clusters whose names match a prefix, which is especially
// useful for reaping E2E test leftovers or orphaned clusters.
//
// Usage:
//
//	# Delete all clusters whose name starts with e2e-
//	cleanup -prefix e2e-
//
//	# Delete one cluster by exact name
//	cleanup -name analytics-prod
//
//	# List matching clusters without deleting
//	cleanup -prefix e2e- -dry-run
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/imamik/cbdctl/internal/config"
	"github.com/imamik/cbdctl/internal/platform/cbd"
)

func main() {
	var (
		prefix = flag.String("prefix", "", "Delete clusters whose name starts with this prefix")
		name   = flag.String("name", "", "Delete the cluster with exactly this name")
		dryRun = flag.Bool("dry-run", false, "List matching clusters without deleting them")
	)
	flag.Parse()

	if *prefix == "" && *name == "" {
		log.Fatal("Error: one of -prefix or -name must be specified")
	}

	ctx := context.Background()

	client, err := clientFromEnv(ctx)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Printf("Cleanup utility starting...")
	if *dryRun {
		log.Printf("DRY RUN MODE: no clusters will be deleted")
	}

	clusters, err := client.ListClusters(ctx)
	if err != nil {
		log.Fatalf("Failed to list clusters: %v", err)
	}

	var matched int
	for _, c := range clusters {
		if *name != "" && c.Name != *name {
			continue
		}
		if *prefix != "" && !strings.HasPrefix(c.Name, *prefix) {
			continue
		}
		matched++

		if *dryRun {
			log.Printf("would delete cluster %s (%s, status %s)", c.Name, c.ID, c.Status)
			continue
		}

		if err := client.DeleteCluster(ctx, c.ID); err != nil {
			if cbd.IsNotFound(err) {
				log.Printf("cluster %s (%s) already gone", c.Name, c.ID)
				continue
			}
			log.Fatalf("Failed to delete cluster %s (%s): %v", c.Name, c.ID, err)
		}
		log.Printf("deleted cluster %s (%s)", c.Name, c.ID)
	}

	if matched == 0 {
		log.Printf("no clusters matched")
		return
	}

	fmt.Println("\nCleanup completed successfully!")
}

// clientFromEnv builds the control plane client from CBD_* environment
// variables, exchanging username and API key for a token when no
// pre-issued CBD_TOKEN is set.
func clientFromEnv(ctx context.Context) (cbd.PlatformManager, error) {
	region := os.Getenv("CBD_REGION")
	tenantID := os.Getenv("CBD_TENANT_ID")
	if region == "" || tenantID == "" {
		return nil, fmt.Errorf("CBD_REGION and CBD_TENANT_ID environment variables are required")
	}

	token := os.Getenv("CBD_TOKEN")
	if token == "" {
		username := os.Getenv("CBD_USERNAME")
		apiKey := os.Getenv("CBD_API_KEY")
		if username == "" || apiKey == "" {
			return nil, fmt.Errorf("set CBD_TOKEN, or CBD_USERNAME and CBD_API_KEY")
		}

		authURL := os.Getenv("CBD_AUTH_URL")
		if authURL == "" {
			authURL = cbd.DefaultAuthURL(region)
		}

		httpClient := &http.Client{Timeout: config.LoadTimeouts().RequestTimeout}
		var err error
		token, err = cbd.Authenticate(ctx, httpClient, authURL, username, apiKey)
		if err != nil {
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
	}

	var opts []cbd.ClientOption
	if endpoint := os.Getenv("CBD_ENDPOINT"); endpoint != "" {
		opts = append(opts, cbd.WithEndpoint(endpoint))
	}

	return cbd.NewRealClient(region, tenantID, token, opts...), nil
}
