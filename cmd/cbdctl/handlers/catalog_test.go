package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cbdctl/internal/platform/cbd"
)

func TestFlavors(t *testing.T) {
	cfg := testConfig()

	t.Run("lists the catalog", func(t *testing.T) {
		var calls int
		client := &cbd.MockClient{
			ListFlavorsFunc: func(context.Context) ([]cbd.Flavor, error) {
				calls++
				return []cbd.Flavor{
					{ID: "hadoop1-7", Name: "Small Hadoop Instance"},
					{ID: "hadoop1-15", Name: "Medium Hadoop Instance"},
				}, nil
			},
		}
		stubEnvAndFactories(t, cfg, client, newMemStore())

		err := Flavors(context.Background(), "cbdctl.yaml")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries a transient outage", func(t *testing.T) {
		var calls int
		client := &cbd.MockClient{
			ListFlavorsFunc: func(context.Context) ([]cbd.Flavor, error) {
				calls++
				if calls == 1 {
					return nil, cbd.Error{Code: 503, Message: "region partitioned"}
				}
				return []cbd.Flavor{{ID: "hadoop1-7", Name: "Small Hadoop Instance"}}, nil
			},
		}
		stubEnvAndFactories(t, cfg, client, newMemStore())

		err := Flavors(context.Background(), "cbdctl.yaml")
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("auth failure is not retried", func(t *testing.T) {
		var calls int
		client := &cbd.MockClient{
			ListFlavorsFunc: func(context.Context) ([]cbd.Flavor, error) {
				calls++
				return nil, cbd.Error{Code: 401, Message: "authentication required"}
			},
		}
		stubEnvAndFactories(t, cfg, client, newMemStore())

		err := Flavors(context.Background(), "cbdctl.yaml")
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestStacks(t *testing.T) {
	cfg := testConfig()

	client := &cbd.MockClient{
		ListStacksFunc: func(context.Context) ([]cbd.Stack, error) {
			return []cbd.Stack{
				{ID: "HADOOP_HDP2_2", Name: "Hadoop 2.2", Distro: "HDP"},
			}, nil
		},
	}
	stubEnvAndFactories(t, cfg, client, newMemStore())

	err := Stacks(context.Background(), "cbdctl.yaml")
	require.NoError(t, err)
}
