package org

import (
	"sort"
	"strings"

	"github.com/tbinetruy/OrgModeParser/internal/linesource"
)

// drawersKey names the attribute that declares a document's drawers.
const drawersKey = "DRAWERS"

// Attributes is the registry of document-level "#+KEY: value" declarations,
// in document order.
type Attributes struct {
	props   []Property
	drawers map[string]bool
}

func newAttributes() *Attributes {
	return &Attributes{drawers: make(map[string]bool)}
}

func (a *Attributes) add(p Property) {
	a.props = append(a.props, p)
	if strings.EqualFold(p.Key, drawersKey) {
		for _, name := range strings.Fields(p.Value) {
			a.drawers[name] = true
		}
	}
}

// All returns every recorded attribute in document order.
func (a *Attributes) All() []Property {
	out := make([]Property, len(a.props))
	copy(out, a.props)
	return out
}

// Get returns the value of the last attribute named key.
// Keys are compared case-insensitively.
func (a *Attributes) Get(key string) (string, bool) {
	for i := len(a.props) - 1; i >= 0; i-- {
		if strings.EqualFold(a.props[i].Key, key) {
			return a.props[i].Value, true
		}
	}
	return "", false
}

// IsDrawer reports whether name was declared in a DRAWERS attribute.
func (a *Attributes) IsDrawer(name string) bool {
	return a.drawers[name]
}

// DrawerNames returns the declared drawer names, sorted.
func (a *Attributes) DrawerNames() []string {
	names := make([]string, 0, len(a.drawers))
	for n := range a.drawers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// scanAttributes is the first pass. It records every attribute line of src
// and returns the complete line sequence, attribute lines included, for the
// second pass to replay.
func scanAttributes(src *linesource.Source) (*Attributes, []linesource.Line) {
	attrs := newAttributes()
	var lines []linesource.Line
	for !src.AtEnd() {
		line, _ := src.Next()
		if p, ok := matchFileAttribute(line.Text); ok {
			attrs.add(p)
		}
		lines = append(lines, line)
	}
	return attrs, lines
}
