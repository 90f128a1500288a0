// Package diag defines the diagnostic shape shared by every compiler stage
// (spec.md §7): a severity, a source position, a message, and an optional
// caret-underlined source snippet for terminal output.
package diag

import (
	"fmt"
	"strings"

	"github.com/fern-lang/fern/internal/token"
)

// Severity classifies a Diagnostic for both exit-code and color decisions.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
	Help
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}

// Diagnostic is the unified shape every stage's error type is converted to
// before the driver prints it.
type Diagnostic struct {
	Severity Severity
	Pos      token.Position
	Message  string
	Stage    string // "lex", "parse", "validate", "type", "codegen"
}

// Render formats one diagnostic, optionally underlining the offending
// column in src with a caret when src is non-empty.
func (d Diagnostic) Render(src string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s", d.Pos, d.Severity, d.Message)
	if src == "" {
		return b.String()
	}
	line := lineAt(src, int(d.Pos.Line))
	if line == "" {
		return b.String()
	}
	b.WriteByte('\n')
	b.WriteString(line)
	b.WriteByte('\n')
	col := int(d.Pos.Column)
	if col < 1 {
		col = 1
	}
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteByte('^')
	return b.String()
}

func lineAt(src string, n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Sink is an append-only collector of diagnostics, matching §5's "append
// only" diagnostic sink resource contract.
type Sink struct {
	items []Diagnostic
}

func (s *Sink) Add(d Diagnostic)           { s.items = append(s.items, d) }
func (s *Sink) Items() []Diagnostic        { return s.items }
func (s *Sink) HasErrors() bool            { return s.CountSeverity(Error) > 0 }
func (s *Sink) Len() int                   { return len(s.items) }
func (s *Sink) CountSeverity(sev Severity) int {
	n := 0
	for _, d := range s.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
