package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/darkden-lab/homepage/internal/homepage"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in layout presets",
		RunE:  runPresets,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a preset as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runPresetShow,
	})
	return cmd
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-8s  %-16s  %-16s  %s\n", "ID", "LABEL", "LAYOUT", "SECTIONS")
	fmt.Fprintf(out, "  %-8s  %-16s  %-16s  %s\n", "--", "-----", "------", "--------")
	for _, p := range homepage.BuiltinPresets() {
		types := make([]string, len(p.Sections))
		for i, s := range p.Sections {
			types[i] = s.Type
		}
		fmt.Fprintf(out, "  %-8s  %-16s  %-16s  %s\n", p.ID, p.Label, p.Layout, strings.Join(types, ", "))
	}
	return nil
}

func runPresetShow(cmd *cobra.Command, args []string) error {
	p, ok := homepage.FindPreset(homepage.BuiltinPresets(), args[0])
	if !ok {
		return fmt.Errorf("%w: %q", homepage.ErrUnknownPreset, args[0])
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
