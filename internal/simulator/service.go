package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imamik/cbdctl/internal/platform/cbd"
)

// ErrKeyExists is returned when registering an SSH key name twice.
var ErrKeyExists = errors.New("ssh key already exists")

// Node count bounds enforced on create, matching the public service.
const (
	minNodeCount = 1
	maxNodeCount = 10
)

// cbdVersion is the API version clusters report.
const cbdVersion = "2"

// ValidationError is a bad create request; the API maps it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service owns the simulated cluster lifecycle. Clusters enter BUILDING
// on create and a ticker sweep moves them to ACTIVE after buildDelay;
// deletes mark them DELETING and the sweep removes them after
// deleteDelay.
type Service struct {
	store  Store
	log    *zap.Logger
	events *Publisher

	flavors []cbd.Flavor
	stacks  []cbd.Stack

	buildDelay    time.Duration
	deleteDelay   time.Duration
	sweepInterval time.Duration

	mu          sync.RWMutex
	partitioned bool

	// operations mutex per cluster id
	opMu sync.Map
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// WithPublisher sets the lifecycle event publisher.
func WithPublisher(p *Publisher) ServiceOption {
	return func(s *Service) {
		s.events = p
	}
}

// WithBuildDelay sets how long clusters stay in BUILDING.
func WithBuildDelay(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.buildDelay = d
	}
}

// WithDeleteDelay sets how long clusters stay in DELETING.
func WithDeleteDelay(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.deleteDelay = d
	}
}

// WithSweepInterval sets how often the lifecycle sweep runs.
func WithSweepInterval(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.sweepInterval = d
	}
}

// NewService creates a Service with the seeded catalogs.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:         store,
		log:           zap.NewNop(),
		flavors:       SeedFlavors,
		stacks:        SeedStacks,
		buildDelay:    30 * time.Second,
		deleteDelay:   10 * time.Second,
		sweepInterval: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListFlavors returns the flavor catalog.
func (s *Service) ListFlavors(ctx context.Context) []cbd.Flavor {
	return s.flavors
}

// ListStacks returns the stack catalog.
func (s *Service) ListStacks(ctx context.Context) []cbd.Stack {
	return s.stacks
}

// GetStack returns a stack by id.
func (s *Service) GetStack(ctx context.Context, id string) (*cbd.Stack, error) {
	for i := range s.stacks {
		if s.stacks[i].ID == id {
			return &s.stacks[i], nil
		}
	}
	return nil, ErrNotFound
}

// CreateSSHKey registers a key. Registering a name twice is a conflict.
func (s *Service) CreateSSHKey(ctx context.Context, name, publicKey string) (*SSHKey, error) {
	if name == "" {
		return nil, &ValidationError{Message: "key name required"}
	}
	if publicKey == "" {
		return nil, &ValidationError{Message: "public key required"}
	}

	if _, err := s.store.GetSSHKey(ctx, name); err == nil {
		return nil, fmt.Errorf("ssh key %q: %w", name, ErrKeyExists)
	}

	k := &SSHKey{Name: name, PublicKey: publicKey, Created: time.Now().UTC()}
	if err := s.store.SaveSSHKey(ctx, k); err != nil {
		return nil, fmt.Errorf("save ssh key: %w", err)
	}
	s.log.Info("ssh key registered", zap.String("name", name))
	return k, nil
}

// HasSSHKey reports whether a key name is registered.
func (s *Service) HasSSHKey(ctx context.Context, name string) bool {
	_, err := s.store.GetSSHKey(ctx, name)
	return err == nil
}

// CreateCluster validates the request and stores a BUILDING cluster.
func (s *Service) CreateCluster(ctx context.Context, opts cbd.CreateClusterOpts) (*cbd.Cluster, error) {
	if err := s.validateCreate(ctx, opts); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &cbd.Cluster{
		ID:         uuid.NewString(),
		Name:       opts.Name,
		Status:     cbd.StatusBuilding,
		StackID:    opts.StackID,
		LoginUser:  opts.LoginUser,
		CBDVersion: cbdVersion,
		NodeGroups: opts.NodeGroups,
		Created:    now,
		Updated:    now,
	}

	if err := s.store.SaveCluster(ctx, c); err != nil {
		return nil, fmt.Errorf("save cluster: %w", err)
	}

	s.log.Info("cluster created",
		zap.String("id", c.ID),
		zap.String("name", c.Name),
		zap.String("stack", c.StackID))
	s.publish("cluster.created", c)
	return c, nil
}

func (s *Service) validateCreate(ctx context.Context, opts cbd.CreateClusterOpts) error {
	if opts.Name == "" {
		return &ValidationError{Message: "cluster name required"}
	}
	if opts.StackID == "" {
		return &ValidationError{Message: "stack id required"}
	}
	if _, err := s.GetStack(ctx, opts.StackID); err != nil {
		return &ValidationError{Message: fmt.Sprintf("stack %q does not exist", opts.StackID)}
	}
	if opts.LoginUser == "" {
		return &ValidationError{Message: "login user required"}
	}
	if len(opts.NodeGroups) == 0 {
		return &ValidationError{Message: "at least one node group required"}
	}
	for _, ng := range opts.NodeGroups {
		if ng.Count < minNodeCount || ng.Count > maxNodeCount {
			return &ValidationError{
				Message: fmt.Sprintf("node group %q count %d out of range [%d, %d]", ng.ID, ng.Count, minNodeCount, maxNodeCount),
			}
		}
		if !s.flavorExists(ng.FlavorID) {
			return &ValidationError{Message: fmt.Sprintf("flavor %q does not exist", ng.FlavorID)}
		}
	}
	for _, name := range opts.SSHKeys {
		if !s.HasSSHKey(ctx, name) {
			return &ValidationError{Message: fmt.Sprintf("ssh key %q not registered", name)}
		}
	}
	return nil
}

func (s *Service) flavorExists(id string) bool {
	for _, f := range s.flavors {
		if f.ID == id {
			return true
		}
	}
	return false
}

// GetCluster fetches a cluster by id.
func (s *Service) GetCluster(ctx context.Context, id string) (*cbd.Cluster, error) {
	return s.store.GetCluster(ctx, id)
}

// ListClusters returns all clusters.
func (s *Service) ListClusters(ctx context.Context) ([]*cbd.Cluster, error) {
	return s.store.ListClusters(ctx)
}

// DeleteCluster marks a cluster DELETING; the sweep removes it later.
// Deleting from any status is allowed.
func (s *Service) DeleteCluster(ctx context.Context, id string) error {
	lock := s.opLock(id)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.store.GetCluster(ctx, id)
	if err != nil {
		return err
	}

	if c.Status != cbd.StatusDeleting {
		recordTransitionMetric(c.Status, cbd.StatusDeleting)
		c.Status = cbd.StatusDeleting
		c.Updated = time.Now().UTC()
		if err := s.store.SaveCluster(ctx, c); err != nil {
			return fmt.Errorf("save cluster: %w", err)
		}
	}

	s.log.Info("cluster delete requested", zap.String("id", id))
	s.publish("cluster.deleting", c)
	return nil
}

// FailCluster forces a cluster into ERROR. Test knob.
func (s *Service) FailCluster(ctx context.Context, id string) error {
	lock := s.opLock(id)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.store.GetCluster(ctx, id)
	if err != nil {
		return err
	}

	recordTransitionMetric(c.Status, cbd.StatusError)
	c.Status = cbd.StatusError
	c.Updated = time.Now().UTC()
	if err := s.store.SaveCluster(ctx, c); err != nil {
		return fmt.Errorf("save cluster: %w", err)
	}

	s.log.Warn("cluster forced into error", zap.String("id", id))
	s.publish("cluster.error", c)
	return nil
}

// SetPartitioned toggles the region partition.
func (s *Service) SetPartitioned(partitioned bool) {
	s.mu.Lock()
	s.partitioned = partitioned
	s.mu.Unlock()
}

// Partitioned reports whether the region partition is active.
func (s *Service) Partitioned() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partitioned
}

// Run drives the lifecycle sweep until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep applies due lifecycle transitions.
func (s *Service) sweep(ctx context.Context) {
	clusters, err := s.store.ListClusters(ctx)
	if err != nil {
		s.log.Error("sweep list failed", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	for _, c := range clusters {
		switch c.Status {
		case cbd.StatusBuilding, cbd.StatusConfiguring:
			if now.Sub(c.Updated) >= s.buildDelay {
				s.transition(ctx, c.ID, cbd.StatusActive)
			}
		case cbd.StatusDeleting:
			if now.Sub(c.Updated) >= s.deleteDelay {
				s.remove(ctx, c.ID)
			}
		}
	}
}

// transition moves one cluster to the target status, re-reading it under
// the per-cluster lock so a concurrent delete wins.
func (s *Service) transition(ctx context.Context, id, target string) {
	lock := s.opLock(id)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.store.GetCluster(ctx, id)
	if err != nil {
		return
	}
	if c.Status == cbd.StatusDeleting || c.Status == cbd.StatusError {
		return
	}

	recordTransitionMetric(c.Status, target)
	c.Status = target
	c.Updated = time.Now().UTC()
	if err := s.store.SaveCluster(ctx, c); err != nil {
		s.log.Error("sweep save failed", zap.String("id", id), zap.Error(err))
		return
	}

	s.log.Info("cluster transitioned", zap.String("id", id), zap.String("status", target))
	s.publish("cluster.active", c)
}

// remove deletes a DELETING cluster from the store.
func (s *Service) remove(ctx context.Context, id string) {
	lock := s.opLock(id)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.store.GetCluster(ctx, id)
	if err != nil {
		return
	}
	if c.Status != cbd.StatusDeleting {
		return
	}

	if err := s.store.DeleteCluster(ctx, id); err != nil {
		s.log.Error("sweep remove failed", zap.String("id", id), zap.Error(err))
		return
	}

	recordTransitionMetric(cbd.StatusDeleting, "GONE")
	s.log.Info("cluster removed", zap.String("id", id))
	s.publish("cluster.gone", c)
}

func (s *Service) publish(event string, c *cbd.Cluster) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishClusterEvent(event, c); err != nil {
		s.log.Warn("event publish failed", zap.String("event", event), zap.Error(err))
	}
}

// opLock returns the mutex guarding operations on one cluster id.
func (s *Service) opLock(id string) *sync.Mutex {
	v, _ := s.opMu.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}
