package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/retry"
	"github.com/imamik/cbdctl/internal/state"
	"github.com/imamik/cbdctl/internal/ui/tui"
)

// Status shows the control plane's current view of the cluster.
//
// With --watch on a terminal it renders a live TUI that refetches
// every few seconds; otherwise it prints a single styled snapshot.
func Status(ctx context.Context, configPath string, watch bool) error {
	cfg, client, err := loadConfigAndClient(ctx, configPath)
	if err != nil {
		return err
	}

	store, err := newStore(cfg.State)
	if err != nil {
		return fmt.Errorf("failed to open state backend: %w", err)
	}

	fetch := func(ctx context.Context) tui.ClusterStatusMsg {
		return fetchStatus(ctx, client, store, cfg.ClusterName)
	}

	if watch && isInteractiveTTY() {
		return tui.RunStatusTUI(ctx, cfg.ClusterName, cfg.Region, fetch)
	}

	msg := fetch(ctx)
	if msg.NotFound {
		return fmt.Errorf("cluster %s not found. Run 'cbdctl apply' to create it", cfg.ClusterName)
	}
	if msg.FetchErr != "" {
		return fmt.Errorf("failed to fetch cluster status: %s", msg.FetchErr)
	}

	fmt.Println(tui.RenderStatusOnce(msg, cfg.ClusterName, cfg.Region))
	return nil
}

// fetchStatus reads the state record and asks the control plane for
// the live cluster. Brief provider outages are retried before the
// error is surfaced.
func fetchStatus(ctx context.Context, client cbd.PlatformManager, store state.Store, clusterName string) tui.ClusterStatusMsg {
	rec, err := store.Load(ctx, clusterName)
	if errors.Is(err, state.ErrNotFound) {
		return tui.ClusterStatusMsg{NotFound: true}
	}
	if err != nil {
		return tui.ClusterStatusMsg{FetchErr: err.Error()}
	}

	var cluster *cbd.Cluster
	err = retry.WithExponentialBackoff(ctx, func() error {
		var gerr error
		cluster, gerr = client.GetCluster(ctx, rec.ClusterID)
		if gerr != nil && !cbd.IsTransient(gerr) {
			return retry.Fatal(gerr)
		}
		return gerr
	}, retry.WithMaxRetries(2), retry.WithInitialDelay(500*time.Millisecond))
	if err != nil {
		if cbd.IsNotFound(err) {
			return tui.ClusterStatusMsg{NotFound: true}
		}
		return tui.ClusterStatusMsg{FetchErr: err.Error(), Phase: rec.Phase}
	}

	return tui.ClusterStatusMsg{
		Cluster:  *cluster,
		Phase:    rec.Phase,
		LastPoll: time.Now().Format("15:04:05"),
	}
}
