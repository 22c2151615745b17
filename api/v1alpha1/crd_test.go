package v1alpha1

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"sigs.k8s.io/yaml"
)

// The CRD manifest is maintained by hand; this keeps it from drifting
// away from the Go types.
func TestCRDManifestMatchesTypes(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "config", "crd", "bases", "cbdctl.io_bigdataclusters.yaml"))
	require.NoError(t, err)

	var crd apiextensionsv1.CustomResourceDefinition
	require.NoError(t, yaml.Unmarshal(data, &crd))

	assert.Equal(t, "bigdataclusters.cbdctl.io", crd.Name)
	assert.Equal(t, GroupVersion.Group, crd.Spec.Group)
	assert.Equal(t, "BigDataCluster", crd.Spec.Names.Kind)
	assert.Contains(t, crd.Spec.Names.ShortNames, "bdc")
	assert.Equal(t, apiextensionsv1.NamespaceScoped, crd.Spec.Scope)

	require.Len(t, crd.Spec.Versions, 1)
	version := crd.Spec.Versions[0]
	assert.Equal(t, GroupVersion.Version, version.Name)
	assert.True(t, version.Served)
	assert.True(t, version.Storage)
	require.NotNil(t, version.Subresources)
	assert.NotNil(t, version.Subresources.Status)

	spec := version.Schema.OpenAPIV3Schema.Properties["spec"]
	for _, field := range []string{"clusterName", "stackRef", "flavor", "nodeCount", "loginUser", "sshKeyName", "publicKey", "paused"} {
		assert.Contains(t, spec.Properties, field, "spec field %s missing from manifest", field)
	}
	assert.ElementsMatch(t,
		[]string{"clusterName", "stackRef", "flavor", "loginUser", "sshKeyName", "publicKey"},
		spec.Required)

	nodeCount := spec.Properties["nodeCount"]
	require.NotNil(t, nodeCount.Minimum)
	require.NotNil(t, nodeCount.Maximum)
	assert.Equal(t, float64(1), *nodeCount.Minimum)
	assert.Equal(t, float64(10), *nodeCount.Maximum)

	phase := version.Schema.OpenAPIV3Schema.Properties["status"].Properties["phase"]
	var phases []string
	for _, v := range phase.Enum {
		var s string
		require.NoError(t, yaml.Unmarshal(v.Raw, &s))
		phases = append(phases, s)
	}
	assert.ElementsMatch(t, []string{
		string(ClusterPhaseCreating),
		string(ClusterPhaseActive),
		string(ClusterPhaseDeleting),
		string(ClusterPhaseDeleted),
		string(ClusterPhaseFailed),
	}, phases)
}
