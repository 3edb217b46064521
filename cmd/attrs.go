package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewAttrsCmd creates the attrs subcommand, which lists the document's
// "#+KEY: value" declarations.
func NewAttrsCmd(reader DocumentReader) *cobra.Command {
	return &cobra.Command{
		Use:          "attrs <file.org>",
		Short:        "List the file attributes of an org document",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, lg, err := settings(cmd)
			if err != nil {
				return err
			}
			res, err := parseDocument(cmd, reader, path, cfg, lg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range res.Attributes.All() {
				fmt.Fprintf(out, "%s: %s\n", sanitizeText(p.Key), sanitizeText(p.Value))
			}
			if names := res.Attributes.DrawerNames(); len(names) > 0 {
				fmt.Fprintf(out, "drawers: %s\n", sanitizeText(strings.Join(names, " ")))
			}
			return nil
		},
	}
}
