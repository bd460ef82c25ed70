package token

import (
	"coral/internal/source"
)

// Token represents a single source token with its location and line context.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Indent is the leading-whitespace width of the token's physical line,
	// tabs expanded to multiples of eight.
	Indent int
	// Blank is the number of blank lines directly above this token's line.
	// Only meaningful when OwnLine is set.
	Blank int
	// OwnLine reports whether nothing but whitespace precedes the token on
	// its physical line.
	OwnLine bool
}

// IsOp reports whether the token is the operator or delimiter op.
func (t Token) IsOp(op string) bool {
	return t.Kind == Op && t.Text == op
}

// IsKeyword reports whether the token is the hard keyword kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == Keyword && t.Text == kw
}

// IsSoft reports whether the token is an identifier spelled like the soft keyword kw.
func (t Token) IsSoft(kw string) bool {
	return t.Kind == Ident && t.Text == kw
}

// IsOpen reports whether the token opens a bracket.
func (t Token) IsOpen() bool {
	return t.Kind == Op && (t.Text == "(" || t.Text == "[" || t.Text == "{")
}

// IsClose reports whether the token closes a bracket.
func (t Token) IsClose() bool {
	return t.Kind == Op && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

// IsLiteral reports whether the token is a string or numeric literal.
func (t Token) IsLiteral() bool {
	return t.Kind == String || t.Kind == Number
}

// IsLayout reports whether the token only carries block structure.
func (t Token) IsLayout() bool {
	switch t.Kind {
	case Newline, Indent, Dedent, EOF:
		return true
	default:
		return false
	}
}

// Closer returns the bracket that closes open, or "" when open is not a bracket.
func Closer(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	case "{":
		return "}"
	default:
		return ""
	}
}
