package org_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tbinetruy/OrgModeParser/org"
)

// parseLines parses lines joined with LF, reading clocks in UTC.
func parseLines(t *testing.T, lines ...string) *org.Result {
	t.Helper()
	p := org.New(org.WithLocation(time.UTC), org.WithLogger(log.New(io.Discard)))
	src := strings.Join(lines, "\n") + "\n"
	return p.Parse(context.Background(), []byte(src), "test.org")
}

// shape renders the structure of a tree, one element per line.
func shape(e *org.Element) string {
	var b strings.Builder
	writeShape(&b, e, 0)
	return b.String()
}

func writeShape(b *strings.Builder, e *org.Element, depth int) {
	fmt.Fprintf(b, "%s%s level=%d %q\n", strings.Repeat("  ", depth), e.Kind, e.Level, e.Line)
	for _, c := range e.Children {
		writeShape(b, c, depth+1)
	}
}

func hasDiagnostic(diags []org.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func kinds(els []*org.Element) []org.Kind {
	out := make([]org.Kind, len(els))
	for i, e := range els {
		out[i] = e.Kind
	}
	return out
}

func equalKinds(a, b []org.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
