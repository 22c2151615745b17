package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/state"
)

func TestFetchStatus(t *testing.T) {
	rec := &state.Record{
		ClusterID:   "4",
		ClusterName: "analytics",
		Phase:       lifecycle.PhaseActive,
	}

	t.Run("live cluster", func(t *testing.T) {
		client := &cbd.MockClient{
			GetClusterFunc: func(_ context.Context, id string) (*cbd.Cluster, error) {
				return &cbd.Cluster{ID: id, Name: "analytics", Status: cbd.StatusActive, CBDVersion: "2"}, nil
			},
		}

		msg := fetchStatus(context.Background(), client, newMemStore(rec), "analytics")

		require.Empty(t, msg.FetchErr)
		assert.False(t, msg.NotFound)
		assert.Equal(t, "4", msg.Cluster.ID)
		assert.Equal(t, lifecycle.PhaseActive, msg.Phase)
	})

	t.Run("no state record", func(t *testing.T) {
		msg := fetchStatus(context.Background(), &cbd.MockClient{}, newMemStore(), "analytics")
		assert.True(t, msg.NotFound)
	})

	t.Run("cluster gone remotely", func(t *testing.T) {
		client := &cbd.MockClient{
			GetClusterFunc: func(context.Context, string) (*cbd.Cluster, error) {
				return nil, cbd.Error{Code: 404, Message: "no such cluster"}
			},
		}

		msg := fetchStatus(context.Background(), client, newMemStore(rec), "analytics")
		assert.True(t, msg.NotFound)
	})

	t.Run("fatal fetch error keeps recorded phase", func(t *testing.T) {
		client := &cbd.MockClient{
			GetClusterFunc: func(context.Context, string) (*cbd.Cluster, error) {
				return nil, cbd.Error{Code: 500, Message: "boom"}
			},
		}

		msg := fetchStatus(context.Background(), client, newMemStore(rec), "analytics")
		assert.NotEmpty(t, msg.FetchErr)
		assert.Equal(t, lifecycle.PhaseActive, msg.Phase)
	})
}
