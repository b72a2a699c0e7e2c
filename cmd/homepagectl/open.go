package main

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

func newOpenCmd(target func() endpointURL) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the homepage editor in a browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := target().path("")
			fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", url)
			if err := openURL(url); err != nil {
				return fmt.Errorf("failed to open browser: %w", err)
			}
			return nil
		},
	}
}
