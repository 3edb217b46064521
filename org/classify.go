package org

import (
	"regexp"
	"strings"

	"github.com/tbinetruy/OrgModeParser/internal/linesource"
)

var (
	clockRE         = regexp.MustCompile(`^\s*CLOCK:\s*\[([-A-Za-z0-9 :]+)\](.*)$`)
	clockEndRE      = regexp.MustCompile(`^--\[([-A-Za-z0-9 :]+)\]`)
	fileAttributeRE = regexp.MustCompile(`^\s*#\+(\S+?):(?:\s+(.*))?$`)
	// drawerRE matches both drawer openers and drawer entries.
	drawerRE = regexp.MustCompile(`^\s*:([^\s:]+):(.*)$`)
)

const (
	propertiesDrawer = "PROPERTIES"
	drawerEnd        = "END"
)

// Every classifier below reads one line and either returns the element built
// from it or puts the line back and returns nil.

func (r *run) parseClockLine(parent *Element) *Element {
	line, ok := r.src.Next()
	if !ok {
		return nil
	}
	m := clockRE.FindStringSubmatch(line.Text)
	if m == nil {
		r.src.Pushback(line)
		return nil
	}

	if start, ok := ParseTimestamp(m[1], r.loc); ok {
		em := clockEndRE.FindStringSubmatch(m[2])
		if em == nil {
			el := newLeaf(KindClock, parent, line)
			el.Start = start
			return el
		}
		if end, ok := ParseTimestamp(em[1], r.loc); ok {
			el := newLeaf(KindCompletedClock, parent, line)
			el.Start = start
			el.End = end
			return el
		}
	}

	r.warn(CodeMalformedClock, line.Number, "clock line has a malformed timestamp: %s", strings.TrimSpace(line.Text))
	r.src.Pushback(line)
	return nil
}

// matchFileAttribute recognizes a "#+KEY: value" line.
func matchFileAttribute(text string) (Property, bool) {
	m := fileAttributeRE.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return Property{}, false
	}
	return Property{Key: m[1], Value: m[2]}, true
}

func (r *run) parseFileAttributeLine(parent *Element) *Element {
	line, ok := r.src.Next()
	if !ok {
		return nil
	}
	p, ok := matchFileAttribute(line.Text)
	if !ok {
		r.src.Pushback(line)
		return nil
	}
	el := newLeaf(KindFileAttribute, parent, line)
	el.Property = &p
	return el
}

// parseDrawer parses a declared drawer up to its ":END:" line. If a headline
// or the end of input comes first, every line read is restored and nil is
// returned; the opener comes back marked literal so it is not retried.
func (r *run) parseDrawer(parent *Element) *Element {
	opener, ok := r.src.Next()
	if !ok {
		return nil
	}
	name, ok := matchDrawerOpener(opener.Text)
	if !ok {
		r.src.Pushback(opener)
		return nil
	}
	if !r.attrs.IsDrawer(name) {
		if name != drawerEnd {
			r.warn(CodeUndeclaredDrawer, opener.Number, "drawer %q is not declared in #+DRAWERS", name)
		}
		r.src.Pushback(opener)
		return nil
	}

	kind, entryKind := KindDrawer, KindDrawerEntry
	if name == propertiesDrawer {
		kind, entryKind = KindPropertyDrawer, KindPropertyDrawerEntry
	}
	self := newLeaf(kind, parent, opener)
	self.Name = name

	for {
		line, ok := r.src.Next()
		if !ok {
			r.warnReverted(name, opener.Number, nil)
			r.revertDrawer(self, opener, nil)
			return nil
		}
		if headlineRE.MatchString(line.Text) {
			r.warnReverted(name, opener.Number, &line)
			r.revertDrawer(self, opener, &line)
			return nil
		}

		em := drawerRE.FindStringSubmatch(line.Text)
		if em == nil {
			self.addChild(newLeaf(KindLine, self, line))
			continue
		}
		key, value := em[1], strings.TrimSpace(em[2])
		if key == drawerEnd {
			end := newLeaf(KindDrawerClosing, self, line)
			end.Property = &Property{Key: key, Value: value}
			self.addChild(end)
			return self
		}

		p := Property{Key: key, Value: value}
		if kind == KindPropertyDrawer && len(key) > 1 && strings.HasSuffix(key, "+") {
			p.Key = strings.TrimSuffix(key, "+")
			p.Operation = OpAdd
		}
		entry := newLeaf(entryKind, self, line)
		entry.Property = &p
		self.addChild(entry)
	}
}

// matchDrawerOpener recognizes a ":NAME:" line with nothing after the
// closing colon. It does not check that NAME is declared.
func matchDrawerOpener(text string) (string, bool) {
	m := drawerRE.FindStringSubmatch(text)
	if m == nil || strings.TrimSpace(m[2]) != "" {
		return "", false
	}
	return m[1], true
}

// warnReverted reports a drawer opened on line that is given up because of
// term, a headline, or the end of input when term is nil.
func (r *run) warnReverted(name string, line int, term *linesource.Line) {
	if term == nil {
		r.warn(CodeDrawerUnclosed, line, "drawer %q is not closed before end of input", name)
		return
	}
	r.warn(CodeDrawerInterrupted, line, "drawer %q is interrupted by a headline on line %d", name, term.Number)
}

// revertDrawer pushes the opener, the drawer body and the terminating line
// (if any) back onto the source in their original order.
//
// The body holds no ":END:", so a declared opener inside it would run into
// the same terminator. Such openers are reported and restored as literal
// lines along with the outer opener, which keeps a run of unclosed openers
// linear.
func (r *run) revertDrawer(d *Element, opener linesource.Line, term *linesource.Line) {
	opener.Literal = true
	restored := []linesource.Line{opener}
	for _, c := range d.Children {
		line := linesource.Line{Text: c.Line, Number: c.LineNum}
		if name, ok := matchDrawerOpener(line.Text); ok && r.attrs.IsDrawer(name) {
			r.warnReverted(name, line.Number, term)
			line.Literal = true
		}
		restored = append(restored, line)
	}
	if term != nil {
		restored = append(restored, *term)
	}
	r.src.PushbackMany(restored)
	r.logger.Debug("drawer reverted",
		"drawer", d.Name,
		"line", opener.Number,
		"restored", len(restored),
		"pending", r.src.Pending())
}

func (r *run) parsePlainLine(parent *Element) *Element {
	line, ok := r.src.Next()
	if !ok {
		return nil
	}
	return newLeaf(KindLine, parent, line)
}

// newLeaf builds an element of kind for line. The element takes its level
// from parent but is not attached to it.
func newLeaf(kind Kind, parent *Element, line linesource.Line) *Element {
	return &Element{
		Kind:    kind,
		Line:    line.Text,
		LineNum: line.Number,
		Level:   parent.Level,
	}
}
