package provisioning

import (
	"fmt"
	"time"

	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/state"
)

// BuildPhases returns the phases the apply command runs, in order.
func BuildPhases() []Phase {
	return []Phase{
		&stackPhase{},
		&flavorPhase{},
		&createPhase{},
		&buildWaitPhase{},
	}
}

// ResumeBuildPhases returns the phases apply runs when a previous run
// already submitted the create request and only the wait remains.
func ResumeBuildPhases() []Phase {
	return []Phase{
		&buildWaitPhase{},
	}
}

// stackPhase verifies the configured stack exists before anything is created.
type stackPhase struct{}

func (*stackPhase) Name() string { return "stack" }

func (*stackPhase) Provision(ctx *Context) error {
	stack, err := ctx.Client.GetStack(ctx, ctx.Config.StackID)
	if err != nil {
		return fmt.Errorf("stack %s is not available: %w", ctx.Config.StackID, err)
	}
	ctx.State.Stack = stack
	LogResourceExists(ctx.Observer, "stack", "stack", stack.Name, stack.ID)
	return nil
}

// flavorPhase resolves the configured flavor name or id against the
// provider catalog so bad flavors fail before the create request.
type flavorPhase struct{}

func (*flavorPhase) Name() string { return "flavor" }

func (*flavorPhase) Provision(ctx *Context) error {
	flavors, err := ctx.Client.ListFlavors(ctx)
	if err != nil {
		return fmt.Errorf("failed to list flavors: %w", err)
	}
	flavorID, err := cbd.ResolveFlavorID(flavors, ctx.Config.Flavor)
	if err != nil {
		return err
	}
	ctx.State.FlavorID = flavorID
	LogResourceExists(ctx.Observer, "flavor", "flavor", ctx.Config.Flavor, flavorID)
	return nil
}

// createPhase submits the create request and persists the cluster record.
type createPhase struct{}

func (*createPhase) Name() string { return "create" }

func (*createPhase) Provision(ctx *Context) error {
	LogResourceCreating(ctx.Observer, "create", "cluster", ctx.Config.ClusterName)

	if err := ctx.Controller.StartCreate(ctx); err != nil {
		return err
	}

	rec := &state.Record{
		ClusterID:   ctx.Controller.ClusterID(),
		ClusterName: ctx.Config.ClusterName,
		Region:      ctx.Config.Region,
		StackID:     ctx.Config.StackID,
		Flavor:      ctx.Config.Flavor,
		NodeCount:   ctx.Config.NodeCount,
		Phase:       ctx.Controller.Phase(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := ctx.Store.Save(ctx, rec); err != nil {
		return fmt.Errorf("cluster %s created but saving state failed: %w", rec.ClusterID, err)
	}
	ctx.State.Record = rec

	LogResourceCreated(ctx.Observer, "create", "cluster", ctx.Config.ClusterName, rec.ClusterID)
	return nil
}

// buildWaitPhase polls until the control plane reports the cluster active.
type buildWaitPhase struct{}

func (*buildWaitPhase) Name() string { return "build" }

func (*buildWaitPhase) Provision(ctx *Context) error {
	ticker := time.NewTicker(ctx.Timeouts.PollInterval)
	defer ticker.Stop()
	deadline := time.After(ctx.Timeouts.CreateTimeout)

	for {
		done, err := ctx.Controller.PollCreateComplete(ctx)
		if err != nil {
			return err
		}
		if done {
			snapshotCluster(ctx)
			return saveRecordPhase(ctx)
		}
		snapshotCluster(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("timed out after %v waiting for cluster %s to become active",
				ctx.Timeouts.CreateTimeout, ctx.Controller.ClusterID())
		case <-ticker.C:
		}
	}
}

// snapshotCluster refreshes the display snapshot. Failures are ignored;
// the lifecycle poll owns error handling.
func snapshotCluster(ctx *Context) {
	id := ctx.Controller.ClusterID()
	if id == "" {
		return
	}
	cluster, err := ctx.Client.GetCluster(ctx, id)
	if err != nil {
		return
	}
	ctx.State.Cluster = cluster
	ctx.Observer.Snapshot(cluster)
}

// saveRecordPhase writes the controller's phase back to the stored record.
func saveRecordPhase(ctx *Context) error {
	if ctx.State.Record == nil {
		return nil
	}
	ctx.State.Record.Phase = ctx.Controller.Phase()
	if err := ctx.Store.Save(ctx, ctx.State.Record); err != nil {
		return fmt.Errorf("saving state failed: %w", err)
	}
	return nil
}
