package wizard

import "github.com/charmbracelet/huh"

// RegionOption represents a Cloud Big Data service region.
type RegionOption struct {
	Value       string
	Label       string
	Description string
}

// FlavorOption represents a node flavor.
type FlavorOption struct {
	Value       string
	Label       string
	Description string
}

// StackOption represents a distribution stack.
type StackOption struct {
	Value       string
	Label       string
	Description string
}

// Regions contains all regions the control plane serves.
var Regions = []RegionOption{
	{Value: "DFW", Label: "DFW", Description: "Dallas-Fort Worth"},
	{Value: "ORD", Label: "ORD", Description: "Chicago"},
	{Value: "IAD", Label: "IAD", Description: "Northern Virginia"},
	{Value: "LON", Label: "LON", Description: "London"},
	{Value: "SYD", Label: "SYD", Description: "Sydney"},
	{Value: "HKG", Label: "HKG", Description: "Hong Kong"},
}

// Flavors contains the well-known node flavors.
var Flavors = []FlavorOption{
	{Value: "Small Hadoop Instance", Label: "Small Hadoop Instance", Description: "hadoop1-7: 7GB RAM"},
	{Value: "Medium Hadoop Instance", Label: "Medium Hadoop Instance", Description: "hadoop1-15: 15GB RAM"},
	{Value: "Large Hadoop Instance", Label: "Large Hadoop Instance", Description: "hadoop1-30: 30GB RAM"},
	{Value: "XLarge Hadoop Instance", Label: "XLarge Hadoop Instance", Description: "hadoop1-60: 60GB RAM"},
}

// Stacks contains the well-known distribution stacks.
var Stacks = []StackOption{
	{Value: "HADOOP_HDP2_2", Label: "HADOOP_HDP2_2", Description: "Hortonworks Data Platform 2.2"},
	{Value: "HADOOP_HDP1_3", Label: "HADOOP_HDP1_3", Description: "Hortonworks Data Platform 1.3"},
}

// RegionsToOptions converts the region list to huh select options.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(Regions))
	for _, r := range Regions {
		opts = append(opts, huh.NewOption(r.Label+" - "+r.Description, r.Value))
	}
	return opts
}

// FlavorsToOptions converts the flavor list to huh select options.
func FlavorsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(Flavors))
	for _, f := range Flavors {
		opts = append(opts, huh.NewOption(f.Label+" ("+f.Description+")", f.Value))
	}
	return opts
}

// StacksToOptions converts the stack list to huh select options.
func StacksToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(Stacks))
	for _, s := range Stacks {
		opts = append(opts, huh.NewOption(s.Label+" - "+s.Description, s.Value))
	}
	return opts
}
