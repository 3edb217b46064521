package org

// Diagnostic is a structured warning emitted while parsing. Diagnostics
// never stop a parse; every line is still represented in the tree.
type Diagnostic struct {
	Severity string    `json:"severity" yaml:"severity"` // always "warning" today
	Code     string    `json:"code" yaml:"code"`         // e.g. "ORGW001"
	Message  string    `json:"message" yaml:"message"`
	Location *Location `json:"location,omitempty" yaml:"location,omitempty"`
}

// Location identifies a source line.
type Location struct {
	Line int `json:"line" yaml:"line"` // 1-based
}

// SeverityWarning is the severity of every parse diagnostic.
const SeverityWarning = "warning"

// Parse warnings.
const (
	CodeDrawerInterrupted = "ORGW001"
	CodeDrawerUnclosed    = "ORGW002"
	CodeMalformedClock    = "ORGW003"
	CodeUndeclaredDrawer  = "ORGW004"
)
