package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cbdctl/cmd/cbdctl/handlers"
)

// Status returns the command for inspecting cluster status.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: auto-detect cbdctl.yaml)
//	--watch, -w: Continuously watch status updates
func Status() *cobra.Command {
	var configPath string
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show live cluster status",
		Long: `Show the control plane's current view of your cluster.

The status includes the cluster build state, node groups, and the CBD
platform version once the cluster reports them.

Examples:
  # Show status once
  cbdctl status

  # Watch status continuously
  cbdctl status --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, watch)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cbdctl.yaml)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Continuously watch status updates")

	return cmd
}
