package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/darkden-lab/homepage/internal/homepage"
)

type endpointURL struct {
	server string
	mount  string
}

func (e endpointURL) path(p string) string {
	u := strings.TrimRight(e.server, "/")
	if mount := strings.Trim(e.mount, "/"); mount != "" {
		u += "/" + mount
	}
	return u + p
}

func newFetchCmd(target func() endpointURL) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the published homepage configuration and report the active preset",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fetchPublicConfig(cmd.Context(), target().path("/api/config.json"))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if raw {
				var pretty bytes.Buffer
				if err := json.Indent(&pretty, body, "", "  "); err != nil {
					return err
				}
				fmt.Fprintln(out, pretty.String())
				return nil
			}
			return printSummary(cmd, body)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the JSON document")
	return cmd
}

func fetchPublicConfig(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch config: %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

func printSummary(cmd *cobra.Command, body []byte) error {
	out := cmd.OutOrStdout()

	var cfg *homepage.Configuration
	if err := json.Unmarshal(body, &cfg); err != nil {
		return fmt.Errorf("unexpected response: %w", err)
	}
	if cfg == nil {
		fmt.Fprintln(out, "No homepage configuration has been saved.")
		return nil
	}

	active := homepage.DetectActivePreset(cfg, homepage.BuiltinPresets())
	if active == "" {
		active = "custom"
	}
	fmt.Fprintf(out, "Layout:    %s\n", cfg.Layout)
	fmt.Fprintf(out, "Preset:    %s\n", active)
	fmt.Fprintf(out, "Sections:  %s\n", joinTypes(cfg.Sections))
	fmt.Fprintf(out, "Sidebar:   %s\n", joinTypes(cfg.Sidebar))
	fmt.Fprintf(out, "Footer:    %s\n", joinTypes(cfg.Footer))
	if cfg.UpdatedAt != nil {
		fmt.Fprintf(out, "Updated:   %s\n", cfg.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func joinTypes(bs []homepage.Block) string {
	if len(bs) == 0 {
		return "-"
	}
	types := make([]string, len(bs))
	for i, b := range bs {
		types[i] = b.Type
	}
	return strings.Join(types, ", ")
}
