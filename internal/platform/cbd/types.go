package cbd

import "time"

// Cluster status values reported by the control plane.
const (
	// StatusBuilding means the cluster is still being provisioned.
	StatusBuilding = "BUILDING"
	// StatusConfiguring means nodes are up and software is being laid down.
	StatusConfiguring = "CONFIGURING"
	// StatusActive means the cluster is ready for use.
	StatusActive = "ACTIVE"
	// StatusError means provisioning failed on the provider side.
	StatusError = "ERROR"
	// StatusDeleting means the cluster is being torn down.
	StatusDeleting = "DELETING"
)

// WorkerNodeGroupID is the node-group identifier for the cluster's worker
// (slave) role. The control plane expects exactly one group with this id
// on create.
const WorkerNodeGroupID = "slave"

// Flavor is a provider-defined compute size class for cluster nodes.
type Flavor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stack identifies a deployable big-data software stack (distribution
// plus service layout), e.g. HADOOP_HDP2_2.
type Stack struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Distro string `json:"distro,omitempty"`
}

// NodeGroup describes one group of equally sized cluster nodes.
type NodeGroup struct {
	ID       string `json:"id"`
	FlavorID string `json:"flavor_id"`
	Count    int    `json:"count"`
}

// Cluster is the control-plane record of a managed cluster.
type Cluster struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Status     string      `json:"status"`
	StackID    string      `json:"stack_id"`
	LoginUser  string      `json:"login_user,omitempty"`
	CBDVersion string      `json:"cbd_version,omitempty"`
	NodeGroups []NodeGroup `json:"node_groups,omitempty"`
	Created    time.Time   `json:"created,omitempty"`
	Updated    time.Time   `json:"updated,omitempty"`
}

// CreateClusterOpts holds all parameters for creating a cluster.
type CreateClusterOpts struct {
	Name       string      `json:"name"`
	StackID    string      `json:"stack_id"`
	LoginUser  string      `json:"login_user"`
	SSHKeys    []string    `json:"ssh_keys"`
	NodeGroups []NodeGroup `json:"node_groups"`
}
