package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/darkden-lab/homepage/internal/catalog"
	"github.com/darkden-lab/homepage/internal/extension"
	"github.com/darkden-lab/homepage/internal/homepage"
	"github.com/darkden-lab/homepage/internal/storage"
	pluginCV "github.com/darkden-lab/homepage/plugins/cv"
	pluginGitHub "github.com/darkden-lab/homepage/plugins/github"
	pluginIndieWeb "github.com/darkden-lab/homepage/plugins/indieweb"
)

func newCatalogCmd() *cobra.Command {
	var extensionsDir string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the sections and widgets a server with these extensions would offer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := buildCatalog(cmd.Context(), extensionsDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printDescriptors(cmd, "Sections", cat.Sections)
			fmt.Fprintln(out)
			printDescriptors(cmd, "Widgets", cat.Widgets)
			return nil
		},
	}
	cmd.Flags().StringVar(&extensionsDir, "extensions-dir", "", "Directory of YAML extension manifests")
	return cmd
}

// buildCatalog boots the bundled extensions and any manifests the same way
// the server does, against throwaway storage.
func buildCatalog(ctx context.Context, extensionsDir string) (*catalog.Catalog, error) {
	host := extension.NewHost(storage.NewMemory())
	endpoint := homepage.NewEndpoint(homepage.Options{ContentDir: os.TempDir()})

	exts := []extension.Extension{endpoint, pluginCV.New(), pluginGitHub.New(), pluginIndieWeb.New()}
	manifests, err := extension.LoadManifests(extensionsDir)
	if err != nil {
		return nil, err
	}
	for _, m := range manifests {
		exts = append(exts, m)
	}
	for _, ext := range exts {
		if err := host.Register(ext); err != nil {
			return nil, err
		}
	}
	if err := host.Ready(ctx); err != nil {
		return nil, err
	}
	return endpoint.Application().Registry.Catalog(), nil
}

func printDescriptors(cmd *cobra.Command, title string, ds []catalog.Descriptor) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n\n", title)
	fmt.Fprintf(out, "  %-20s  %-24s  %s\n", "ID", "LABEL", "SOURCE")
	fmt.Fprintf(out, "  %-20s  %-24s  %s\n", "--", "-----", "------")
	for _, d := range ds {
		source := d.SourcePlugin
		if source == "" {
			source = "Built-in"
		}
		fmt.Fprintf(out, "  %-20s  %-24s  %s\n", d.ID, d.Label, source)
	}
}
