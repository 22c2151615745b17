// Package main is the entry point for the cbdctl CLI.
//
// cbdctl is a command-line tool for provisioning managed Hadoop
// clusters on the Rackspace Cloud Big Data platform. It drives the
// asynchronous control plane API through a cooperative lifecycle
// controller and keeps a small state record per cluster so builds can
// be resumed, watched, and torn down across invocations.
//
// Commands: init, apply, status, destroy, flavors, stacks.
//
// For detailed usage information, run:
//
//	cbdctl --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/cbdctl/cmd/cbdctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
