package provisioning

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/state"
)

// deletingThenGoneClient simulates a cluster that reports DELETING for the
// first few polls and then disappears.
func deletingThenGoneClient(goneAfter int) *cbd.MockClient {
	var mu sync.Mutex
	polls := 0
	return &cbd.MockClient{
		DeleteClusterFunc: func(_ context.Context, _ string) error {
			return nil
		},
		GetClusterFunc: func(_ context.Context, id string) (*cbd.Cluster, error) {
			mu.Lock()
			defer mu.Unlock()
			polls++
			if polls > goneAfter {
				return nil, cbd.Error{Code: http.StatusNotFound, Message: "no such cluster"}
			}
			return &cbd.Cluster{ID: id, Name: "analytics", Status: cbd.StatusDeleting}, nil
		},
	}
}

func TestDestroyPhases_Succeeds(t *testing.T) {
	t.Parallel()
	client := deletingThenGoneClient(3)
	cfg := testConfig()
	ctrl := lifecycle.Restore(client, testSpec(cfg), "4", lifecycle.PhaseActive)
	ctx := testContext(t, client, ctrl)
	observer := NewMockObserver()
	ctx.Observer = observer

	// Seed the store with the record apply would have written.
	rec := &state.Record{
		ClusterID:   "4",
		ClusterName: "analytics",
		Region:      "DFW",
		StackID:     "HADOOP_HDP2_2",
		Flavor:      "Small Hadoop Instance",
		NodeCount:   3,
		Phase:       lifecycle.PhaseActive,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, ctx.Store.Save(context.Background(), rec))
	ctx.State.Record = rec

	err := RunPhases(ctx, DestroyPhases())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.PhaseDeleted, ctrl.Phase())
	assert.Empty(t, ctrl.ClusterID())

	// The record must be gone.
	_, err = ctx.Store.Load(context.Background(), "analytics")
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestDestroyPhases_NoClusterID(t *testing.T) {
	t.Parallel()
	client := &cbd.MockClient{}
	cfg := testConfig()
	ctrl := lifecycle.New(client, testSpec(cfg))
	ctx := testContext(t, client, ctrl)
	ctx.Observer = NewMockObserver()

	err := RunPhases(ctx, DestroyPhases())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.PhaseDeleted, ctrl.Phase())
}

func TestDestroyPhases_AlreadyGone(t *testing.T) {
	t.Parallel()
	client := deletingThenGoneClient(0)
	client.DeleteClusterFunc = func(_ context.Context, _ string) error {
		return cbd.Error{Code: http.StatusNotFound, Message: "no such cluster"}
	}
	cfg := testConfig()
	ctrl := lifecycle.Restore(client, testSpec(cfg), "4", lifecycle.PhaseActive)
	ctx := testContext(t, client, ctrl)
	ctx.Observer = NewMockObserver()

	err := RunPhases(ctx, DestroyPhases())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.PhaseDeleted, ctrl.Phase())
}

func TestDestroyPhases_DeleteRejected(t *testing.T) {
	t.Parallel()
	client := deletingThenGoneClient(0)
	client.DeleteClusterFunc = func(_ context.Context, _ string) error {
		return cbd.Error{Code: http.StatusForbidden, Message: "not allowed"}
	}
	cfg := testConfig()
	ctrl := lifecycle.Restore(client, testSpec(cfg), "4", lifecycle.PhaseActive)
	ctx := testContext(t, client, ctrl)
	ctx.Observer = NewMockObserver()

	err := RunPhases(ctx, DestroyPhases())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete phase failed")
	assert.Equal(t, lifecycle.PhaseFailed, ctrl.Phase())
}

func TestTeardownWaitPhase_Timeout(t *testing.T) {
	t.Parallel()
	client := deletingThenGoneClient(1 << 30) // never disappears
	cfg := testConfig()
	ctrl := lifecycle.Restore(client, testSpec(cfg), "4", lifecycle.PhaseActive)
	ctx := testContext(t, client, ctrl)
	ctx.Observer = NewMockObserver()
	ctx.Timeouts.DeleteTimeout = 25 * time.Millisecond
	ctx.Timeouts.PollInterval = 5 * time.Millisecond

	err := RunPhases(ctx, DestroyPhases())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
