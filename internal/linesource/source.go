// Package linesource provides a line-granular cursor over document text with
// unbounded pushback.
package linesource

import (
	"bytes"

	"github.com/emirpasic/gods/stacks/arraystack"
)

const utf8BOM = "\xef\xbb\xbf"

// Line is one input line without its line ending.
type Line struct {
	Text   string // line content
	Number int    // 1-based position in the original input (0 if synthetic)

	// Literal marks a line restored after a failed drawer parse. It must be
	// taken as plain text and never offered to a classifier again.
	Literal bool
}

// Source delivers lines in order. Lines handed back with Pushback are
// re-delivered before any further underlying text, last pushed first.
type Source struct {
	lines   []Line
	next    int
	pending *arraystack.Stack
}

// New returns a Source over lines, numbering them from 1.
func New(lines []string) *Source {
	ls := make([]Line, len(lines))
	for i, text := range lines {
		ls[i] = Line{Text: text, Number: i + 1}
	}
	return FromLines(ls)
}

// FromLines returns a Source that replays ls unchanged.
func FromLines(ls []Line) *Source {
	return &Source{lines: ls, pending: arraystack.New()}
}

// Next consumes and returns the next line. ok is false when the source is
// exhausted.
func (s *Source) Next() (line Line, ok bool) {
	if v, found := s.pending.Pop(); found {
		return v.(Line), true
	}
	if s.next >= len(s.lines) {
		return Line{}, false
	}
	line = s.lines[s.next]
	s.next++
	return line, true
}

// Pushback returns line to the front of the source.
func (s *Source) Pushback(line Line) {
	s.pending.Push(line)
}

// PushbackMany restores ls so that the next len(ls) calls to Next return
// them in their original order.
func (s *Source) PushbackMany(ls []Line) {
	for i := len(ls) - 1; i >= 0; i-- {
		s.pending.Push(ls[i])
	}
}

// AtEnd reports whether no line is left, pushed back or unread.
func (s *Source) AtEnd() bool {
	return s.pending.Empty() && s.next >= len(s.lines)
}

// Pending returns the number of pushed-back lines awaiting delivery.
func (s *Source) Pending() int {
	return s.pending.Size()
}

// Split splits src into lines, dropping a leading UTF-8 BOM.
// LF, CRLF and bare CR all end a line; a trailing line ending does not
// produce an extra empty line.
func Split(src []byte) []string {
	src = bytes.TrimPrefix(src, []byte(utf8BOM))
	if len(src) == 0 {
		return []string{}
	}

	var lines []string
	start := 0

	for i := 0; i < len(src); {
		switch src[i] {
		case '\n':
			lines = append(lines, string(src[start:i]))
			i++
			start = i
		case '\r':
			advance := 1
			if i+1 < len(src) && src[i+1] == '\n' {
				advance = 2
			}
			lines = append(lines, string(src[start:i]))
			i += advance
			start = i
		default:
			i++
		}
	}

	if start < len(src) {
		lines = append(lines, string(src[start:]))
	}

	return lines
}
