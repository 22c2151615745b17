package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cbdctl/cmd/cbdctl/handlers"
)

// Apply returns the command for creating a cluster and waiting for it
// to become active.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: auto-detect cbdctl.yaml)
//
// Environment variables:
//
//	CBD_TENANT_ID: Cloud Big Data tenant (required)
//	CBD_TOKEN:     Pre-issued auth token, or
//	CBD_USERNAME / CBD_API_KEY: credentials exchanged for a token
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create the cluster and wait until it is active",
		Long: `Create your Cloud Big Data cluster.

This command registers the SSH key, resolves the configured flavor,
submits the create request, and polls until the cluster reports ACTIVE.
If a previous apply was interrupted mid-build, it resumes waiting on
the existing cluster instead of creating a second one.

If no config file is specified, it looks for cbdctl.yaml in the current
directory. Use 'cbdctl init' to create a configuration file.

Examples:
  # Create cluster using cbdctl.yaml in current directory
  cbdctl apply

  # Create cluster using specific config file
  cbdctl apply -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cbdctl.yaml)")

	return cmd
}
