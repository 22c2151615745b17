package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cbdctl/cmd/cbdctl/handlers"
	"github.com/imamik/cbdctl/internal/config"
)

// Init returns the command for creating a cluster configuration.
//
// The command runs an interactive wizard and writes the answers to a
// YAML file. When no public key file is given, a fresh RSA key pair is
// generated next to the config.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a cluster configuration interactively",
		Long: `Init walks you through creating a cluster configuration.

The wizard asks for the cluster name, region, distribution stack,
node flavor and count, and login user. The result is written as YAML;
apply and destroy read it.

Example:
  cbdctl init
  cbdctl init -o production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Path to write the configuration file")

	return cmd
}
