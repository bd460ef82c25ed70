package lexer

import (
	"strings"

	"coral/internal/diag"
	"coral/internal/token"
)

var stringPrefixes = map[string]struct{}{
	"r": {}, "u": {}, "b": {}, "f": {},
	"br": {}, "rb": {}, "fr": {}, "rf": {},
	// xonsh path strings
	"p": {}, "pr": {}, "rp": {}, "pf": {}, "fp": {},
}

func isStringPrefix(s string) bool {
	if len(s) > 2 {
		return false
	}
	_, ok := stringPrefixes[strings.ToLower(s)]
	return ok
}

// scanString scans a string literal whose prefix (possibly empty) starts at
// start; the cursor sits on the opening quote.
func (lx *Lexer) scanString(start Mark) token.Token {
	prefix := strings.ToLower(lx.text(start))
	q := lx.cursor.Bump()
	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == q && b1 == q {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}

	ok := lx.scanStringBody(q, triple, strings.ContainsRune(prefix, 'f'))
	sp := lx.cursor.SpanFrom(start)
	if !ok {
		if triple {
			lx.errLex(diag.LexUnterminatedTriple, sp, "unterminated triple-quoted string literal")
		} else {
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
		}
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(start)}
	}
	return token.Token{Kind: token.String, Span: sp, Text: lx.text(start)}
}

// scanStringBody consumes up to and including the closing quote. It reports
// false when the string is not terminated.
func (lx *Lexer) scanStringBody(q byte, triple, fstr bool) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case b == '\n' && !triple:
			return false
		case b == q:
			if !triple {
				lx.cursor.Bump()
				return true
			}
			if lx.try3(q, q, q) {
				return true
			}
			lx.cursor.Bump()
		case fstr && b == '{':
			if lx.try2('{', '{') {
				continue
			}
			m := lx.cursor.Mark()
			lx.cursor.Bump()
			if !lx.scanReplacementField(q, triple) {
				lx.errLex(diag.LexBadFString, lx.cursor.SpanFrom(m), "f-string: expecting '}'")
			}
		case fstr && b == '}':
			if lx.try2('}', '}') {
				continue
			}
			m := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.errLex(diag.LexBadFString, lx.cursor.SpanFrom(m), "f-string: single '}' is not allowed")
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// scanReplacementField consumes an f-string field after its '{', including
// nested strings, brackets and a format spec, through the closing '}'.
func (lx *Lexer) scanReplacementField(q byte, triple bool) bool {
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\n' && !triple:
			return false
		case b == '\'' || b == '"':
			lx.cursor.Bump()
			nestedTriple := false
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == b && b1 == b {
				lx.cursor.Bump()
				lx.cursor.Bump()
				nestedTriple = true
			}
			if !lx.scanStringBody(b, nestedTriple, false) {
				return false
			}
		case b == '(' || b == '[' || b == '{':
			depth++
			lx.cursor.Bump()
		case b == ')' || b == ']':
			if depth > 0 {
				depth--
			}
			lx.cursor.Bump()
		case b == '}':
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
			depth--
		case b == ':' && depth == 0:
			lx.cursor.Bump()
			return lx.scanFormatSpec(q, triple)
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) scanFormatSpec(q byte, triple bool) bool {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == '\n' && !triple, b == q && !triple:
			return false
		case b == '{':
			lx.cursor.Bump()
			if !lx.scanReplacementField(q, triple) {
				return false
			}
		case b == '}':
			lx.cursor.Bump()
			return true
		default:
			lx.cursor.Bump()
		}
	}
	return false
}
