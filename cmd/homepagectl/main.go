package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var server, mount string

	rootCmd := &cobra.Command{
		Use:   "homepagectl",
		Short: "Inspect homepage presets, the section catalog and the published configuration",
		Long: `homepagectl works with a homepage builder server. Preset and catalog commands
run locally; fetch and open talk to the server given by --server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&server, "server", "http://localhost:8080", "Homepage server URL")
	rootCmd.PersistentFlags().StringVar(&mount, "mount", "/homepage", "Mount path of the homepage endpoint")

	target := func() endpointURL { return endpointURL{server: server, mount: mount} }

	rootCmd.AddCommand(
		newPresetsCmd(),
		newCatalogCmd(),
		newFetchCmd(target),
		newOpenCmd(target),
		newVersionCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
