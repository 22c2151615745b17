package provisioning

import (
	"fmt"
	"time"
)

// DestroyPhases returns the phases the destroy command runs, in order.
func DestroyPhases() []Phase {
	return []Phase{
		&deletePhase{},
		&teardownWaitPhase{},
	}
}

// deletePhase submits the delete request and records the phase change.
type deletePhase struct{}

func (*deletePhase) Name() string { return "delete" }

func (*deletePhase) Provision(ctx *Context) error {
	LogResourceDeleting(ctx.Observer, "delete", "cluster", ctx.Config.ClusterName)

	if err := ctx.Controller.StartDelete(ctx); err != nil {
		return err
	}

	return saveRecordPhase(ctx)
}

// teardownWaitPhase polls until the control plane forgets the cluster, then
// removes the persisted record.
type teardownWaitPhase struct{}

func (*teardownWaitPhase) Name() string { return "teardown" }

func (*teardownWaitPhase) Provision(ctx *Context) error {
	ticker := time.NewTicker(ctx.Timeouts.PollInterval)
	defer ticker.Stop()
	deadline := time.After(ctx.Timeouts.DeleteTimeout)

	for {
		done, err := ctx.Controller.PollDeleteComplete(ctx)
		if err != nil {
			return err
		}
		if done {
			if err := ctx.Store.Delete(ctx, ctx.Config.ClusterName); err != nil {
				return fmt.Errorf("cluster deleted but removing state failed: %w", err)
			}
			LogResourceDeleted(ctx.Observer, "teardown", "cluster", ctx.Config.ClusterName)
			return nil
		}
		snapshotCluster(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("timed out after %v waiting for cluster %s to be deleted",
				ctx.Timeouts.DeleteTimeout, ctx.Controller.ClusterID())
		case <-ticker.C:
		}
	}
}
