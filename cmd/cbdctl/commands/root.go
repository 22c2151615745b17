// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the cbdctl CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It provides basic CLI metadata and organizes the command hierarchy.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cbdctl",
		Short: "Provision managed Hadoop clusters on Rackspace Cloud Big Data",
	}

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Status())
	cmd.AddCommand(Destroy())

	// Catalog/utility commands
	cmd.AddCommand(Flavors())
	cmd.AddCommand(Stacks())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
