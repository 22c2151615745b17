package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/provisioning"
	"github.com/imamik/cbdctl/internal/state"
	"github.com/imamik/cbdctl/internal/ui/tui"
)

// Destroy handles the destroy command.
//
// It restores the lifecycle controller from the state record, submits
// the delete request, and polls until the control plane no longer
// knows the cluster. The state record is removed once the cluster is
// gone. A cluster already removed out-of-band counts as destroyed.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Destroying cluster: %s", cfg.ClusterName)

	client, err := initializeClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	store, err := newStore(cfg.State)
	if err != nil {
		return fmt.Errorf("failed to open state backend: %w", err)
	}

	rec, err := store.Load(ctx, cfg.ClusterName)
	if errors.Is(err, state.ErrNotFound) {
		fmt.Printf("No state found for cluster %s, nothing to destroy.\n", cfg.ClusterName)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}

	ctrl := lifecycle.Restore(client, clusterSpec(cfg), rec.ClusterID, rec.Phase)
	pCtx := newProvisioningContext(ctx, cfg, client, ctrl, store)
	pCtx.State.Record = rec

	if isInteractiveTTY() {
		m := tui.NewDestroyModel(cfg.ClusterName, cfg.Region)
		err := runTUI(m, func(ch chan<- tea.Msg) error {
			pCtx.Observer = newTUIObserver(ch, ctrl)
			return runPhases(pCtx, provisioning.DestroyPhases())
		})
		if err != nil {
			return fmt.Errorf("destroy failed: %w", err)
		}
	} else {
		if err := runPhases(pCtx, provisioning.DestroyPhases()); err != nil {
			return fmt.Errorf("destroy failed: %w", err)
		}
	}

	fmt.Printf("\nCluster %s destroyed.\n", cfg.ClusterName)
	return nil
}
