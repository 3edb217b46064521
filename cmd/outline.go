package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tbinetruy/OrgModeParser/org"
)

// Outline palette.
const (
	colorHeadline = "#78DCE8"
	colorTags     = "#AB9DF2"
	colorClock    = "#A9DC76"
	colorDim      = "#727072"
)

type outlineStyles struct {
	top      lipgloss.Style
	headline lipgloss.Style
	tags     lipgloss.Style
	clock    lipgloss.Style
	dim      lipgloss.Style
}

// newOutlineStyles binds the palette to w so that colors are dropped when w
// is not a terminal.
func newOutlineStyles(w io.Writer) outlineStyles {
	r := lipgloss.NewRenderer(w)
	return outlineStyles{
		top:      r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHeadline)),
		headline: r.NewStyle().Foreground(lipgloss.Color(colorHeadline)),
		tags:     r.NewStyle().Foreground(lipgloss.Color(colorTags)),
		clock:    r.NewStyle().Foreground(lipgloss.Color(colorClock)),
		dim:      r.NewStyle().Foreground(lipgloss.Color(colorDim)),
	}
}

// NewOutlineCmd creates the outline subcommand.
func NewOutlineCmd(reader DocumentReader) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:          "outline <file.org>",
		Short:        "Print the headline outline of an org document",
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
			st := newOutlineStyles(out)
			if title, ok := res.Attributes.Get("TITLE"); ok {
				fmt.Fprintln(out, st.top.Render(sanitizeText(title)))
			}
			res.Root.Walk(func(el *org.Element) bool {
				if el.Kind != org.KindHeadline {
					return el.Kind == org.KindDocument
				}
				if depth > 0 && el.Level > depth {
					return false
				}
				fmt.Fprintln(out, outlineLine(st, el))
				return true
			})

			printDiagnostics(cmd, res.Diagnostics)
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 0, "Only show headlines up to this level (0 = all)")

	return cmd
}

// outlineLine renders one headline: indentation, caption, tags and the time
// clocked in its subtree.
func outlineLine(st outlineStyles, h *org.Element) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", h.Level-1))
	style := st.headline
	if h.Level == 1 {
		style = st.top
	}
	b.WriteString(style.Render(sanitizeText(h.Caption)))
	if len(h.Tags) > 0 {
		b.WriteString(" ")
		b.WriteString(st.tags.Render(":" + sanitizeText(strings.Join(h.Tags, ":")) + ":"))
	}
	if d := clocked(h); d > 0 {
		b.WriteString(" ")
		b.WriteString(st.clock.Render(formatClocked(d)))
	}
	if h.LineNum > 0 {
		b.WriteString(" ")
		b.WriteString(st.dim.Render(fmt.Sprintf("L%d", h.LineNum)))
	}
	return b.String()
}

// clocked sums the completed clock intervals below e.
func clocked(e *org.Element) time.Duration {
	var total time.Duration
	e.Walk(func(el *org.Element) bool {
		total += el.Duration()
		return true
	})
	return total
}

// formatClocked renders d the way org clock reports do, "h:mm".
func formatClocked(d time.Duration) string {
	m := int(d.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}
