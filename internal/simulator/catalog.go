package simulator

import (
	"time"

	"github.com/imamik/cbdctl/internal/platform/cbd"
)

// SSHKey is a registered public key.
type SSHKey struct {
	Name      string    `json:"name"`
	PublicKey string    `json:"public_key"`
	Created   time.Time `json:"created"`
}

// SeedFlavors is the flavor catalog, matching the public CBD sizes.
var SeedFlavors = []cbd.Flavor{
	{ID: "hadoop1-7", Name: "Small Hadoop Instance"},
	{ID: "hadoop1-15", Name: "Medium Hadoop Instance"},
	{ID: "hadoop1-30", Name: "Large Hadoop Instance"},
	{ID: "hadoop1-60", Name: "XLarge Hadoop Instance"},
}

// SeedStacks is the deployable stack catalog.
var SeedStacks = []cbd.Stack{
	{ID: "HADOOP_HDP2_2", Name: "Hortonworks Data Platform 2.2", Distro: "HDP 2.2"},
	{ID: "HADOOP_HDP1_3", Name: "Hortonworks Data Platform 1.3", Distro: "HDP 1.3"},
}
