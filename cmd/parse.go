package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tbinetruy/OrgModeParser/internal/config"
)

// NewParseCmd creates the parse subcommand.
func NewParseCmd(reader DocumentReader) *cobra.Command {
	var (
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:          "parse <file.org>",
		Short:        "Parse an org document and print its element tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, lg, err := settings(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}

			res, err := parseDocument(cmd, reader, path, cfg, lg)
			if err != nil {
				return err
			}

			switch cfg.Format {
			case config.FormatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err = enc.Encode(res); err != nil {
					return fmt.Errorf("encoding output: %w", err)
				}
			case config.FormatYAML:
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err = enc.Encode(res); err != nil {
					return fmt.Errorf("encoding output: %w", err)
				}
				if err = enc.Close(); err != nil {
					return fmt.Errorf("encoding output: %w", err)
				}
			default:
				return fmt.Errorf("unknown output format %q", cfg.Format)
			}

			if strict && len(res.Diagnostics) > 0 {
				printDiagnostics(cmd, res.Diagnostics)
				return fmt.Errorf("document has %d diagnostics", len(res.Diagnostics))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatJSON, "Output format: json or yaml")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when the parse reports diagnostics")

	return cmd
}
