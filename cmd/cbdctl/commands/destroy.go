package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cbdctl/cmd/cbdctl/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command submits the delete request for the cluster named
// in the configuration and waits until the control plane no longer
// knows it, then removes the local state record.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the cluster and wait until it is gone",
		Long: `Destroy removes the cluster from the Cloud Big Data platform.

The delete request is asynchronous; this command polls until the
control plane reports the cluster gone and then deletes the local
state record. A cluster that was already removed out-of-band is
treated as successfully destroyed.

Example:
  cbdctl destroy -c cbdctl.yaml

WARNING: This operation is irreversible. All cluster data will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to cluster configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
