// Package lifecycle drives a managed Cloud Big Data cluster through its
// create and delete lifecycles.
//
// A Controller owns exactly one cluster. All progress is caller-driven:
// the controller performs no background work and keeps no timers. The
// caller starts an operation with StartCreate or StartDelete and then
// polls PollCreateComplete or PollDeleteComplete on its own schedule
// until the operation settles or fails.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/cbdctl/internal/platform/cbd"
)

// AttrCBDVersion names the provider-reported platform version attribute.
const AttrCBDVersion = "cbdVersion"

// ClusterSpec holds the immutable inputs for a cluster create request.
// It is supplied once at construction and never mutated afterwards.
type ClusterSpec struct {
	Name      string
	StackID   string
	LoginUser string
	Flavor    string // flavor name or id, resolved against the provider's flavor list
	NodeCount int
	KeyName   string
	PublicKey string
}

// Controller drives one managed cluster through its lifecycle.
//
// A controller is not safe for concurrent use. Callers issue at most
// one call at a time per instance; distinct instances are independent
// and may be driven concurrently with each other.
type Controller struct {
	client cbd.PlatformManager
	spec   ClusterSpec
	log    logr.Logger

	phase     Phase
	clusterID string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for best-effort diagnostics.
func WithLogger(log logr.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// New returns a controller for a cluster that does not exist yet.
func New(client cbd.PlatformManager, spec ClusterSpec, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		spec:   spec,
		log:    logr.Discard(),
		phase:  PhaseUnstarted,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore returns a controller resuming a previously observed cluster.
// Callers that persist phase and cluster id across process lifetimes,
// such as the operator, use this to pick up where they left off.
func Restore(client cbd.PlatformManager, spec ClusterSpec, clusterID string, phase Phase, opts ...Option) *Controller {
	c := New(client, spec, opts...)
	c.clusterID = clusterID
	c.phase = phase
	return c
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// ClusterID returns the provider-assigned cluster id. It is empty
// before the create call resolves and again after deletion is
// confirmed.
func (c *Controller) ClusterID() string {
	return c.clusterID
}

// StartCreate registers the cluster SSH key, resolves the requested
// flavor and issues the create call. On success the provider-assigned
// cluster id is recorded and the phase moves to Creating.
//
// A key registration failure caused by the key already existing is
// treated as success. Any other failure is fatal: the phase moves to
// Failed, and no create call reaches the provider for key or flavor
// errors.
func (c *Controller) StartCreate(ctx context.Context) error {
	if c.phase != PhaseUnstarted {
		return fmt.Errorf("cannot start create in phase %s", c.phase)
	}

	if err := c.client.CreateSSHKey(ctx, c.spec.KeyName, c.spec.PublicKey); err != nil && !cbd.IsConflict(err) {
		c.phase = PhaseFailed
		return fmt.Errorf("failed to register ssh key %q: %w", c.spec.KeyName, err)
	}

	flavors, err := c.client.ListFlavors(ctx)
	if err != nil {
		c.phase = PhaseFailed
		return fmt.Errorf("failed to list flavors: %w", err)
	}
	flavorID, err := cbd.ResolveFlavorID(flavors, c.spec.Flavor)
	if err != nil {
		c.phase = PhaseFailed
		return err
	}

	cluster, err := c.client.CreateCluster(ctx, cbd.CreateClusterOpts{
		Name:      c.spec.Name,
		StackID:   c.spec.StackID,
		LoginUser: c.spec.LoginUser,
		SSHKeys:   []string{c.spec.KeyName},
		NodeGroups: []cbd.NodeGroup{
			{ID: cbd.WorkerNodeGroupID, FlavorID: flavorID, Count: c.spec.NodeCount},
		},
	})
	if err != nil {
		c.phase = PhaseFailed
		return fmt.Errorf("failed to create cluster %q: %w", c.spec.Name, err)
	}

	c.clusterID = cluster.ID
	c.phase = PhaseCreating
	return nil
}

// PollCreateComplete reports whether the create has settled. It
// returns false with no error while the cluster is still provisioning
// or the provider is temporarily unavailable, and true once the
// cluster is active. A cluster in an error state or any non-transient
// provider failure is fatal and moves the phase to Failed.
func (c *Controller) PollCreateComplete(ctx context.Context) (bool, error) {
	switch c.phase {
	case PhaseCreating:
	case PhaseActive:
		return true, nil
	default:
		return false, fmt.Errorf("cannot poll create in phase %s", c.phase)
	}

	cluster, err := c.client.GetCluster(ctx, c.clusterID)
	if err != nil {
		if cbd.IsTransient(err) {
			return false, nil
		}
		c.phase = PhaseFailed
		return false, fmt.Errorf("failed to get cluster %s: %w", c.clusterID, err)
	}

	switch cluster.Status {
	case cbd.StatusActive:
		c.phase = PhaseActive
		return true, nil
	case cbd.StatusError:
		c.phase = PhaseFailed
		return false, fmt.Errorf("cluster %s entered an error state", c.clusterID)
	default:
		return false, nil
	}
}

// StartDelete issues the delete call for the cluster. When no cluster
// id has been assigned there is nothing to delete and the phase moves
// straight to Deleted. A not-found response means the cluster is
// already gone and is treated as success.
func (c *Controller) StartDelete(ctx context.Context) error {
	if c.clusterID == "" {
		c.phase = PhaseDeleted
		return nil
	}

	if err := c.client.DeleteCluster(ctx, c.clusterID); err != nil && !cbd.IsNotFound(err) {
		c.phase = PhaseFailed
		return fmt.Errorf("failed to delete cluster %s: %w", c.clusterID, err)
	}

	c.phase = PhaseDeleting
	return nil
}

// PollDeleteComplete reports whether the delete has settled. Deletion
// is confirmed once the provider reports the cluster as not found, at
// which point the cluster id is cleared. Transient unavailability is
// reported as not yet complete with no error.
func (c *Controller) PollDeleteComplete(ctx context.Context) (bool, error) {
	if c.clusterID == "" {
		c.phase = PhaseDeleted
		return true, nil
	}

	_, err := c.client.GetCluster(ctx, c.clusterID)
	switch {
	case err == nil:
		return false, nil
	case cbd.IsNotFound(err):
		c.phase = PhaseDeleted
		c.clusterID = ""
		return true, nil
	case cbd.IsTransient(err):
		return false, nil
	default:
		c.phase = PhaseFailed
		return false, fmt.Errorf("failed to get cluster %s: %w", c.clusterID, err)
	}
}

// ResolveAttribute fetches the named derived attribute from the
// current remote record. Resolution is best-effort: lookup failures
// are logged and reported as absent, never as an error.
func (c *Controller) ResolveAttribute(ctx context.Context, name string) (string, bool) {
	if c.clusterID == "" {
		return "", false
	}

	cluster, err := c.client.GetCluster(ctx, c.clusterID)
	if err != nil {
		c.log.Error(err, "unable to resolve cluster attribute", "cluster", c.clusterID, "attribute", name)
		return "", false
	}

	switch name {
	case AttrCBDVersion:
		return cluster.CBDVersion, true
	default:
		return "", false
	}
}
