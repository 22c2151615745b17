// Package cbd provides a client for the Cloud Big Data control-plane API.
package cbd

import (
	"context"
)

// FlavorLister defines the interface for reading the flavor catalog.
type FlavorLister interface {
	// ListFlavors returns the provider's flavor catalog in provider order.
	ListFlavors(ctx context.Context) ([]Flavor, error)
}

// StackManager defines the interface for reading deployable stacks.
type StackManager interface {
	ListStacks(ctx context.Context) ([]Stack, error)
	// GetStack fetches a stack by id; unknown ids fail with a not-found
	// API error.
	GetStack(ctx context.Context, id string) (*Stack, error)
}

// SSHKeyManager defines the interface for registering login credentials.
type SSHKeyManager interface {
	// CreateSSHKey registers a public key under the given name. Registering
	// a name that already exists fails with a conflict API error; callers
	// that only need the key to exist treat that as success.
	CreateSSHKey(ctx context.Context, name, publicKey string) error
}

// ClusterManager defines the interface for cluster CRUD.
type ClusterManager interface {
	CreateCluster(ctx context.Context, opts CreateClusterOpts) (*Cluster, error)
	// GetCluster fetches the current cluster record. Deleted clusters fail
	// with a not-found API error; a partitioned region fails with a
	// transient API error.
	GetCluster(ctx context.Context, id string) (*Cluster, error)
	ListClusters(ctx context.Context) ([]Cluster, error)
	DeleteCluster(ctx context.Context, id string) error
}

// PlatformManager combines all control-plane capabilities.
type PlatformManager interface {
	FlavorLister
	StackManager
	SSHKeyManager
	ClusterManager
}
