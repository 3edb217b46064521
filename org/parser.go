package org

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tbinetruy/OrgModeParser/internal/linesource"
)

var (
	headlineRE = regexp.MustCompile(`^(\*+)\s+(.*)$`)
	tagsRE     = regexp.MustCompile(`^(.+)\s+:(.+):\s*$`)
)

// ErrNilSource is returned by ParseReader when given a nil reader.
var ErrNilSource = errors.New("org: nil source")

// Result is the output of a parse.
type Result struct {
	Version     string       `json:"version" yaml:"version"` // always "1"
	Root        *Element     `json:"root" yaml:"root"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`

	Attributes *Attributes `json:"-" yaml:"-"` // registry built by the first pass
	Lines      []string    `json:"-" yaml:"-"` // input lines without endings
}

// Parser holds parse configuration. Its zero value is not usable; call New.
// A Parser is never mutated by parsing and may be shared between goroutines.
type Parser struct {
	loc    *time.Location
	logger *log.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLocation sets the time zone clock timestamps are read in.
// The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithLogger sets the logger used for debug output. Without it the parser
// uses the logger carried by the context, see log.WithContext.
func WithLogger(l *log.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// New returns a Parser configured by opts.
func New(opts ...Option) *Parser {
	p := &Parser{loc: time.Local}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src with a default Parser.
func Parse(ctx context.Context, src []byte, name string) *Result {
	return New().Parse(ctx, src, name)
}

// ParseReader parses the content of r with a default Parser.
func ParseReader(ctx context.Context, r io.Reader, name string) (*Result, error) {
	return New().ParseReader(ctx, r, name)
}

// ParseReader reads r to the end and parses it. The only errors are a nil
// reader and read failures; content never makes a parse fail.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader, name string) (*Result, error) {
	if r == nil {
		return nil, ErrNilSource
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return p.Parse(ctx, src, name), nil
}

// Parse parses src into an element tree whose root carries name. An empty
// name is replaced by a generated UUIDv7 string.
func (p *Parser) Parse(ctx context.Context, src []byte, name string) *Result {
	if name == "" {
		name = newDocumentID()
	}
	logger := p.logger
	if logger == nil {
		logger = log.FromContext(ctx)
	}

	lines := linesource.Split(src)

	// Pass 1: collect attributes, keep every line for the replay.
	attrs, replay := scanAttributes(linesource.New(lines))
	logger.Debug("attributes scanned",
		"document", name,
		"attributes", len(attrs.props),
		"drawers", strings.Join(attrs.DrawerNames(), " "))

	// Pass 2: build the tree.
	r := &run{
		src:    linesource.FromLines(replay),
		attrs:  attrs,
		loc:    p.loc,
		logger: logger,
	}
	root := &Element{Kind: KindDocument, FileName: name}
	for !r.src.AtEnd() {
		if el := r.parseElement(root); el != nil {
			root.addChild(el)
		}
	}

	logger.Debug("document parsed",
		"document", name,
		"lines", len(lines),
		"elements", len(root.Children),
		"diagnostics", len(r.diags))

	diags := r.diags
	if diags == nil {
		diags = []Diagnostic{}
	}
	return &Result{
		Version:     "1",
		Root:        root,
		Diagnostics: diags,
		Attributes:  attrs,
		Lines:       lines,
	}
}

func newDocumentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// run is the state of one second pass.
type run struct {
	src    *linesource.Source
	attrs  *Attributes
	loc    *time.Location
	logger *log.Logger
	diags  []Diagnostic
}

func (r *run) warn(code string, line int, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: &Location{Line: line},
	})
}

// parseElement parses the next element below parent. It returns nil when
// the source is exhausted or when the next line is a headline that does not
// nest under parent; that line is left in the source.
func (r *run) parseElement(parent *Element) *Element {
	line, ok := r.src.Next()
	if !ok {
		return nil
	}

	if m := headlineRE.FindStringSubmatch(line.Text); m != nil {
		level := len(m[1])
		if level <= parent.Level {
			r.src.Pushback(line)
			return nil
		}
		self := newHeadline(line, level, m[2])
		for {
			child := r.parseElement(self)
			if child == nil {
				break
			}
			self.addChild(child)
		}
		return self
	}

	r.src.Pushback(line)
	if line.Literal {
		return r.parsePlainLine(parent)
	}
	if el := r.parseClockLine(parent); el != nil {
		return el
	}
	if el := r.parseFileAttributeLine(parent); el != nil {
		return el
	}
	if el := r.parseDrawer(parent); el != nil {
		return el
	}
	return r.parsePlainLine(parent)
}

func newHeadline(line linesource.Line, level int, rest string) *Element {
	h := &Element{
		Kind:    KindHeadline,
		Line:    line.Text,
		LineNum: line.Number,
		Level:   level,
		Caption: rest,
	}
	if m := tagsRE.FindStringSubmatch(rest); m != nil {
		h.Tags = tagSet(strings.Split(m[2], ":"))
		h.Caption = strings.TrimSpace(m[1])
	}
	return h
}

// tagSet sorts tags and drops empty and repeated entries.
func tagSet(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
