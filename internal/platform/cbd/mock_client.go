package cbd

import "context"

// MockClient is a mock implementation of PlatformManager.
type MockClient struct {
	ListFlavorsFunc func(ctx context.Context) ([]Flavor, error)
	ListStacksFunc  func(ctx context.Context) ([]Stack, error)
	GetStackFunc    func(ctx context.Context, id string) (*Stack, error)

	CreateSSHKeyFunc func(ctx context.Context, name, publicKey string) error

	CreateClusterFunc func(ctx context.Context, opts CreateClusterOpts) (*Cluster, error)
	GetClusterFunc    func(ctx context.Context, id string) (*Cluster, error)
	ListClustersFunc  func(ctx context.Context) ([]Cluster, error)
	DeleteClusterFunc func(ctx context.Context, id string) error
}

// Ensure interface compliance
var _ PlatformManager = (*MockClient)(nil)

// ListFlavors mocks reading the flavor catalog.
func (m *MockClient) ListFlavors(ctx context.Context) ([]Flavor, error) {
	if m.ListFlavorsFunc != nil {
		return m.ListFlavorsFunc(ctx)
	}
	return []Flavor{{ID: "mock-flavor-id", Name: "Mock Flavor"}}, nil
}

// ListStacks mocks reading the stack catalog.
func (m *MockClient) ListStacks(ctx context.Context) ([]Stack, error) {
	if m.ListStacksFunc != nil {
		return m.ListStacksFunc(ctx)
	}
	return []Stack{{ID: "MOCK_STACK", Name: "Mock Stack"}}, nil
}

// GetStack mocks fetching a stack by id.
func (m *MockClient) GetStack(ctx context.Context, id string) (*Stack, error) {
	if m.GetStackFunc != nil {
		return m.GetStackFunc(ctx, id)
	}
	return &Stack{ID: id, Name: "Mock Stack"}, nil
}

// CreateSSHKey mocks key registration.
func (m *MockClient) CreateSSHKey(ctx context.Context, name, publicKey string) error {
	if m.CreateSSHKeyFunc != nil {
		return m.CreateSSHKeyFunc(ctx, name, publicKey)
	}
	return nil
}

// CreateCluster mocks cluster creation.
func (m *MockClient) CreateCluster(ctx context.Context, opts CreateClusterOpts) (*Cluster, error) {
	if m.CreateClusterFunc != nil {
		return m.CreateClusterFunc(ctx, opts)
	}
	return &Cluster{ID: "mock-id", Name: opts.Name, Status: StatusBuilding, StackID: opts.StackID}, nil
}

// GetCluster mocks fetching a cluster.
func (m *MockClient) GetCluster(ctx context.Context, id string) (*Cluster, error) {
	if m.GetClusterFunc != nil {
		return m.GetClusterFunc(ctx, id)
	}
	return &Cluster{ID: id, Status: StatusActive}, nil
}

// ListClusters mocks listing clusters.
func (m *MockClient) ListClusters(ctx context.Context) ([]Cluster, error) {
	if m.ListClustersFunc != nil {
		return m.ListClustersFunc(ctx)
	}
	return nil, nil
}

// DeleteCluster mocks cluster deletion.
func (m *MockClient) DeleteCluster(ctx context.Context, id string) error {
	if m.DeleteClusterFunc != nil {
		return m.DeleteClusterFunc(ctx, id)
	}
	return nil
}
