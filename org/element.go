// Package org parses org-format outline documents into an element tree.
package org

import (
	"sort"
	"time"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Kind identifies the variant of an Element.
type Kind int

const (
	KindDocument Kind = iota
	KindHeadline
	KindLine
	KindFileAttribute
	KindDrawer
	KindPropertyDrawer
	KindDrawerEntry
	KindPropertyDrawerEntry
	KindDrawerClosing
	KindClock
	KindCompletedClock
)

var kindNames = [...]string{
	KindDocument:            "document",
	KindHeadline:            "headline",
	KindLine:                "line",
	KindFileAttribute:       "file-attribute",
	KindDrawer:              "drawer",
	KindPropertyDrawer:      "property-drawer",
	KindDrawerEntry:         "drawer-entry",
	KindPropertyDrawerEntry: "property-drawer-entry",
	KindDrawerClosing:       "drawer-closing",
	KindClock:               "clock",
	KindCompletedClock:      "completed-clock",
}

// String returns the kind name used in serialized trees.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsDrawer reports whether k is a drawer or property drawer.
func (k Kind) IsDrawer() bool {
	return k == KindDrawer || k == KindPropertyDrawer
}

// Operation tells consumers how a Property combines with an earlier value
// for the same key.
type Operation int

const (
	// OpSet replaces any existing value.
	OpSet Operation = iota
	// OpAdd merges with the existing value.
	OpAdd
)

func (o Operation) String() string {
	if o == OpAdd {
		return "add"
	}
	return "set"
}

// Property is a key/value pair carried by attribute lines and drawer entries.
type Property struct {
	Key       string
	Value     string
	Operation Operation
}

// Element is a node of the parsed tree. Kind selects which payload fields
// are meaningful; the remaining ones stay at their zero value.
type Element struct {
	Kind     Kind
	Line     string // source line, empty for the document root
	LineNum  int    // 1-based source line number, 0 for the document root
	Level    int    // headline depth; other elements inherit their enclosing headline's
	Children []*Element

	// parent is non-owning; it only serves Parent() lookups.
	parent *Element

	FileName string    // KindDocument
	Caption  string    // KindHeadline
	Tags     []string  // KindHeadline, sorted and free of duplicates
	Name     string    // drawers
	Property *Property // file attributes, drawer entries and the closing entry
	Start    time.Time // clocks
	End      time.Time // KindCompletedClock
}

// Parent returns the element that owns e, or nil for the root.
func (e *Element) Parent() *Element {
	return e.parent
}

func (e *Element) addChild(child *Element) {
	child.parent = e
	e.Children = append(e.Children, child)
}

// HasTag reports whether a headline carries tag.
func (e *Element) HasTag(tag string) bool {
	i := sort.SearchStrings(e.Tags, tag)
	return i < len(e.Tags) && e.Tags[i] == tag
}

// Valid reports whether the element's payload is consistent with its kind.
func (e *Element) Valid() bool {
	if e.Kind.IsDrawer() {
		if e.Name == "" || len(e.Children) == 0 {
			return false
		}
		return e.Children[len(e.Children)-1].Kind == KindDrawerClosing
	}
	switch e.Kind {
	case KindDocument, KindLine:
		return true
	case KindHeadline:
		return e.Level > 0
	case KindFileAttribute, KindDrawerEntry, KindPropertyDrawerEntry, KindDrawerClosing:
		return e.Property != nil && e.Property.Key != ""
	case KindClock:
		return !e.Start.IsZero()
	case KindCompletedClock:
		return !e.Start.IsZero() && !e.End.IsZero() && !e.End.Before(e.Start)
	}
	return false
}

// Duration returns the clocked time of a completed clock line, or zero.
func (e *Element) Duration() time.Duration {
	if e.Kind != KindCompletedClock {
		return 0
	}
	return e.End.Sub(e.Start)
}

// Walk visits e and its descendants depth-first in document order. Returning
// false from fn skips the children of the visited element.
func (e *Element) Walk(fn func(*Element) bool) {
	stack := arraystack.New()
	stack.Push(e)
	for !stack.Empty() {
		v, _ := stack.Pop()
		el := v.(*Element)
		if !fn(el) {
			continue
		}
		for i := len(el.Children) - 1; i >= 0; i-- {
			stack.Push(el.Children[i])
		}
	}
}

// Lines returns the source lines covered by e's subtree in document order.
// For a document root this reconstructs the parsed input.
func (e *Element) Lines() []string {
	var lines []string
	e.Walk(func(el *Element) bool {
		if el.Kind != KindDocument {
			lines = append(lines, el.Line)
		}
		return true
	})
	return lines
}

// Headlines returns the direct headline children of e.
func (e *Element) Headlines() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Kind == KindHeadline {
			out = append(out, c)
		}
	}
	return out
}
