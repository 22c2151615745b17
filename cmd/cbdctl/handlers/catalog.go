package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/retry"
)

// Flavors lists the node flavors available in the configured region.
func Flavors(ctx context.Context, configPath string) error {
	cfg, client, err := loadConfigAndClient(ctx, configPath)
	if err != nil {
		return err
	}

	var flavors []cbd.Flavor
	err = catalogRead(ctx, func() error {
		var lerr error
		flavors, lerr = client.ListFlavors(ctx)
		return lerr
	})
	if err != nil {
		return fmt.Errorf("failed to list flavors: %w", err)
	}

	fmt.Print(renderFlavors(cfg.Region, flavors))
	return nil
}

// Stacks lists the distribution stacks available in the configured region.
func Stacks(ctx context.Context, configPath string) error {
	cfg, client, err := loadConfigAndClient(ctx, configPath)
	if err != nil {
		return err
	}

	var stacks []cbd.Stack
	err = catalogRead(ctx, func() error {
		var lerr error
		stacks, lerr = client.ListStacks(ctx)
		return lerr
	})
	if err != nil {
		return fmt.Errorf("failed to list stacks: %w", err)
	}

	fmt.Print(renderStacks(cfg.Region, stacks))
	return nil
}

// catalogRead runs a read-only catalog call, retrying brief provider
// outages.
func catalogRead(ctx context.Context, op func() error) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		err := op()
		if err != nil && !cbd.IsTransient(err) {
			return retry.Fatal(err)
		}
		return err
	}, retry.WithMaxRetries(2), retry.WithInitialDelay(500*time.Millisecond))
}
