package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cbdctl/cmd/cbdctl/handlers"
)

// Flavors returns the command listing the node flavors available in
// the configured region.
func Flavors() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "flavors",
		Short: "List available node flavors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Flavors(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cbdctl.yaml)")

	return cmd
}

// Stacks returns the command listing the distribution stacks available
// in the configured region.
func Stacks() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stacks",
		Short: "List available distribution stacks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Stacks(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cbdctl.yaml)")

	return cmd
}
