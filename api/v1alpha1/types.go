// Package v1alpha1 contains API Schema definitions for the cbdctl.io v1alpha1 API group
// +kubebuilder:object:generate=true
// +groupName=cbdctl.io
package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// BigDataClusterSpec defines the desired state of a managed Cloud Big
// Data cluster. All fields except Paused are immutable once the create
// call has been issued; changing them afterwards has no effect on the
// remote cluster.
type BigDataClusterSpec struct {
	// ClusterName is the name the cluster is created under on the
	// control plane.
	// +kubebuilder:validation:MaxLength=50
	ClusterName string `json:"clusterName"`

	// StackRef identifies the big-data software stack to deploy
	// (e.g. HADOOP_HDP2_2)
	StackRef string `json:"stackRef"`

	// Flavor is the compute size class for worker nodes, by name or id
	// (e.g. "Small Hadoop Instance" or "hadoop1-7")
	Flavor string `json:"flavor"`

	// NodeCount is the number of worker nodes
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:validation:Maximum=10
	// +kubebuilder:default=3
	// +optional
	NodeCount int `json:"nodeCount,omitempty"`

	// LoginUser is the login account created on cluster nodes
	// +kubebuilder:validation:MaxLength=50
	LoginUser string `json:"loginUser"`

	// SSHKeyName names the provider-side credential registered before
	// the create call
	// +kubebuilder:validation:MaxLength=50
	SSHKeyName string `json:"sshKeyName"`

	// PublicKey is the OpenSSH-format public key registered under
	// SSHKeyName
	// +kubebuilder:validation:MaxLength=1000
	PublicKey string `json:"publicKey"`

	// Paused stops the operator from reconciling this cluster
	// +optional
	Paused bool `json:"paused,omitempty"`
}

// BigDataClusterStatus defines the observed state of BigDataCluster.
type BigDataClusterStatus struct {
	// Phase is the lifecycle phase the operator last drove the cluster to
	// +kubebuilder:validation:Enum=Creating;Active;Deleting;Deleted;Failed
	// +optional
	Phase ClusterPhase `json:"phase,omitempty"`

	// ClusterID is the control-plane-assigned cluster id. Set exactly
	// once by the create call and cleared once deletion is confirmed.
	// +optional
	ClusterID string `json:"clusterID,omitempty"`

	// CBDVersion is the provider-reported platform version, refreshed
	// best-effort while the cluster is active
	// +optional
	CBDVersion string `json:"cbdVersion,omitempty"`

	// Message carries the last fatal error, if any
	// +optional
	Message string `json:"message,omitempty"`

	// Conditions represent the latest available observations
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// LastReconcileTime is when the operator last reconciled this cluster
	// +optional
	LastReconcileTime *metav1.Time `json:"lastReconcileTime,omitempty"`

	// ObservedGeneration is the last observed generation
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

// ClusterPhase represents the lifecycle phase of the remote cluster.
type ClusterPhase string

const (
	// ClusterPhaseCreating means the create call was issued and the
	// cluster is still provisioning
	ClusterPhaseCreating ClusterPhase = "Creating"
	// ClusterPhaseActive means the cluster is ready for use
	ClusterPhaseActive ClusterPhase = "Active"
	// ClusterPhaseDeleting means the delete call was issued and the
	// control plane still reports the cluster
	ClusterPhaseDeleting ClusterPhase = "Deleting"
	// ClusterPhaseDeleted means deletion has been confirmed
	ClusterPhaseDeleted ClusterPhase = "Deleted"
	// ClusterPhaseFailed means the cluster hit a fatal error; the
	// operator will not retry
	ClusterPhaseFailed ClusterPhase = "Failed"
)

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=bdc
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="ClusterID",type=string,JSONPath=`.status.clusterID`
// +kubebuilder:printcolumn:name="Version",type=string,JSONPath=`.status.cbdVersion`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// BigDataCluster is the Schema for the bigdataclusters API.
type BigDataCluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   BigDataClusterSpec   `json:"spec,omitempty"`
	Status BigDataClusterStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// BigDataClusterList contains a list of BigDataCluster.
type BigDataClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []BigDataCluster `json:"items"`
}

// Condition types for BigDataCluster
const (
	// ConditionReady indicates the remote cluster is active
	ConditionReady = "Ready"
	// ConditionAttributesFresh indicates the last best-effort attribute
	// refresh succeeded
	ConditionAttributesFresh = "AttributesFresh"
)
