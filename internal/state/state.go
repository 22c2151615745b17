package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/cbdctl/internal/config"
	"github.com/imamik/cbdctl/internal/lifecycle"
)

// ErrNotFound is returned by Load when no record exists for the cluster.
var ErrNotFound = errors.New("state record not found")

// Record is the persisted view of a managed cluster.
type Record struct {
	ClusterID   string          `yaml:"cluster_id"`
	ClusterName string          `yaml:"cluster_name"`
	Region      string          `yaml:"region"`
	StackID     string          `yaml:"stack_id"`
	Flavor      string          `yaml:"flavor"`
	NodeCount   int             `yaml:"node_count"`
	Phase       lifecycle.Phase `yaml:"phase"`
	CreatedAt   time.Time       `yaml:"created_at"`
}

// Store persists Records keyed by cluster name.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Load(ctx context.Context, clusterName string) (*Record, error)
	Delete(ctx context.Context, clusterName string) error
}

// NewStore builds the backend selected by the state configuration.
func NewStore(cfg config.StateConfig) (Store, error) {
	switch cfg.Backend {
	case config.StateBackendLocal, "":
		return NewLocalStore(cfg.Path), nil
	case config.StateBackendS3:
		return NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}
}
