package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbinetruy/OrgModeParser/org"
)

// printDiagnostics writes each diagnostic to stderr in human-readable form.
func printDiagnostics(cmd *cobra.Command, diags []org.Diagnostic) {
	for _, d := range diags {
		if d.Location != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: line %d: %s (%s)\n", d.Severity, d.Location.Line, sanitizeText(d.Message), d.Code)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s)\n", d.Severity, sanitizeText(d.Message), d.Code)
	}
}
