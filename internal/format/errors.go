package format

import (
	"errors"
	"fmt"
	"strings"

	"coral/internal/diag"
	"coral/internal/source"
)

// LexError reports input that could not be split into tokens.
type LexError struct {
	Pos        source.LineCol
	Reason     string
	Diagnostic diag.Diagnostic
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Reason)
}

// ParseError reports a token stream that matches no statement form.
type ParseError struct {
	Pos        source.LineCol
	Expected   string
	Found      string
	Diagnostic diag.Diagnostic
}

func (e *ParseError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Expected)
	}
	return fmt.Sprintf("%d:%d: expected %s, found %s", e.Pos.Line, e.Pos.Col, e.Expected, e.Found)
}

// StructureTooDeepError reports nesting beyond the parser's depth limit.
type StructureTooDeepError struct {
	Pos        source.LineCol
	Diagnostic diag.Diagnostic
}

func (e *StructureTooDeepError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Diagnostic.Message)
}

// UnstableError reports formatted output that does not survive a second
// round: it fails to parse, parses to a different tree, or changes again.
type UnstableError struct {
	Reason string
	Err    error
}

func (e *UnstableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unstable formatting: %s: %v", e.Reason, e.Err)
	}
	return "unstable formatting: " + e.Reason
}

func (e *UnstableError) Unwrap() error {
	return e.Err
}

// diagnosticError turns the first error diagnostic of a phase into the
// typed error of that phase.
func diagnosticError(file *source.File, d diag.Diagnostic) error {
	pos := file.Position(d.Primary.Start)
	switch {
	case d.Code == diag.SynTooDeep:
		return &StructureTooDeepError{Pos: pos, Diagnostic: d}
	case d.Code >= diag.LexInfo && d.Code < diag.SynInfo:
		return &LexError{Pos: pos, Reason: d.Message, Diagnostic: d}
	}
	expected, found := d.Message, ""
	if rest, ok := strings.CutPrefix(d.Message, "expected "); ok {
		if i := strings.LastIndex(rest, ", found "); i >= 0 {
			expected, found = rest[:i], rest[i+len(", found "):]
		}
	}
	return &ParseError{Pos: pos, Expected: expected, Found: found, Diagnostic: d}
}

// DiagnosticOf returns the diagnostic behind a lex, parse or depth error,
// also when it is wrapped in an UnstableError.
func DiagnosticOf(err error) (diag.Diagnostic, bool) {
	var (
		lexErr   *LexError
		parseErr *ParseError
		deepErr  *StructureTooDeepError
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Diagnostic, true
	case errors.As(err, &parseErr):
		return parseErr.Diagnostic, true
	case errors.As(err, &deepErr):
		return deepErr.Diagnostic, true
	}
	return diag.Diagnostic{}, false
}
