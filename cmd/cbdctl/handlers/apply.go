package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/cbdctl/internal/config"
	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/provisioning"
	"github.com/imamik/cbdctl/internal/state"
	"github.com/imamik/cbdctl/internal/ui/tui"
)

// Apply creates the cluster described by the configuration and waits
// until it is active.
//
// The workflow is:
//  1. Load and validate the cluster configuration
//  2. Initialize the control plane client from environment credentials
//  3. Open the state backend and check for an earlier run
//  4. Run the build phases: verify stack, resolve flavor, submit the
//     create request, poll until the cluster reports ACTIVE
//
// A state record is written as soon as the create request is accepted,
// so an interrupted apply can resume the wait instead of creating a
// second cluster.
func Apply(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Applying configuration for cluster: %s", cfg.ClusterName)

	client, err := initializeClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	store, err := newStore(cfg.State)
	if err != nil {
		return fmt.Errorf("failed to open state backend: %w", err)
	}

	spec := clusterSpec(cfg)

	rec, err := store.Load(ctx, cfg.ClusterName)
	switch {
	case err == nil:
		return applyExisting(ctx, cfg, client, store, spec, rec)
	case errors.Is(err, state.ErrNotFound):
		// No earlier run; fresh create below.
	default:
		return fmt.Errorf("failed to read state: %w", err)
	}

	ctrl := lifecycle.New(client, spec)
	return runBuild(ctx, cfg, client, ctrl, store, nil, provisioning.BuildPhases())
}

// applyExisting resumes or reports on a cluster that already has a
// state record.
func applyExisting(ctx context.Context, cfg *config.Config, client cbd.PlatformManager, store state.Store, spec lifecycle.ClusterSpec, rec *state.Record) error {
	switch rec.Phase {
	case lifecycle.PhaseActive:
		fmt.Printf("Cluster %s is already active (id %s).\n", cfg.ClusterName, rec.ClusterID)
		fmt.Println("Run 'cbdctl status' to inspect it.")
		return nil
	case lifecycle.PhaseCreating:
		log.Printf("Resuming build of cluster %s (id %s)", cfg.ClusterName, rec.ClusterID)
		ctrl := lifecycle.Restore(client, spec, rec.ClusterID, rec.Phase)
		return runBuild(ctx, cfg, client, ctrl, store, rec, provisioning.ResumeBuildPhases())
	case lifecycle.PhaseDeleting:
		return fmt.Errorf("cluster %s is being deleted; wait for destroy to finish", cfg.ClusterName)
	case lifecycle.PhaseFailed:
		return fmt.Errorf("cluster %s previously failed; run 'cbdctl destroy' before re-applying", cfg.ClusterName)
	default:
		return fmt.Errorf("state record for %s is in unexpected phase %q", cfg.ClusterName, rec.Phase)
	}
}

// runBuild drives the build phases, with a live TUI when stdout is a
// terminal and plain log output otherwise.
func runBuild(ctx context.Context, cfg *config.Config, client cbd.PlatformManager, ctrl *lifecycle.Controller, store state.Store, rec *state.Record, phases []provisioning.Phase) error {
	pCtx := newProvisioningContext(ctx, cfg, client, ctrl, store)
	pCtx.State.Record = rec

	if isInteractiveTTY() {
		m := tui.NewApplyModel(cfg.ClusterName, cfg.Region, cfg.StackID, cfg.Flavor, cfg.NodeCount)
		err := runTUI(m, func(ch chan<- tea.Msg) error {
			pCtx.Observer = newTUIObserver(ch, ctrl)
			return runPhases(pCtx, phases)
		})
		if err != nil {
			return err
		}
	} else {
		if err := runPhases(pCtx, phases); err != nil {
			return err
		}
	}

	printApplySuccess(ctx, pCtx)
	return nil
}

// clusterSpec maps the file configuration onto the lifecycle
// controller's view of the desired cluster.
func clusterSpec(cfg *config.Config) lifecycle.ClusterSpec {
	return lifecycle.ClusterSpec{
		Name:      cfg.ClusterName,
		StackID:   cfg.StackID,
		LoginUser: cfg.LoginUser,
		Flavor:    cfg.Flavor,
		NodeCount: cfg.NodeCount,
		KeyName:   cfg.SSHKeyName,
		PublicKey: cfg.PublicKey,
	}
}

// printApplySuccess outputs completion details and next steps.
func printApplySuccess(ctx context.Context, pCtx *provisioning.Context) {
	cfg := pCtx.Config

	fmt.Printf("\nCluster %s is active!\n", cfg.ClusterName)
	fmt.Printf("  ID:     %s\n", pCtx.Controller.ClusterID())
	fmt.Printf("  Stack:  %s\n", cfg.StackID)
	fmt.Printf("  Nodes:  %d x %s\n", cfg.NodeCount, cfg.Flavor)
	if version, ok := pCtx.Controller.ResolveAttribute(ctx, "cbdVersion"); ok {
		fmt.Printf("  CBD:    %s\n", version)
	}

	fmt.Printf("\nLog in to cluster nodes as %q with your private key.\n", cfg.LoginUser)
	fmt.Println("Run 'cbdctl status' to watch the cluster.")
}
