package lexer

import (
	"bytes"

	"coral/internal/diag"
	"coral/internal/token"
)

// Longest first: "@$(" must win over "@(".
var substOpeners = []string{"@$(", "$(", "!(", "$[", "![", "@(", "${"}

// scanShellSubst scans a xonsh substitution ($(...), !(...), $[...], ![...],
// @(...), @$(...), ${...}), an environment variable ($NAME) or a backtick
// glob as one fragment.
func (lx *Lexer) scanShellSubst() (token.Token, bool) {
	start := lx.cursor.Mark()
	rest := lx.cursor.Rest()
	for _, open := range substOpeners {
		if !bytes.HasPrefix(rest, []byte(open)) {
			continue
		}
		for range len(open) {
			lx.cursor.Bump()
		}
		lx.scanBalanced(start)
		return lx.fragment(start), true
	}

	switch rest[0] {
	case '$':
		if len(rest) > 1 && isIdentStartByte(rest[1]) {
			lx.cursor.Bump()
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			return lx.fragment(start), true
		}
	case '`':
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '`' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		if !lx.cursor.Eat('`') {
			lx.errLex(diag.LexUnterminatedFragment, lx.cursor.SpanFrom(start), "unterminated backtick glob")
		}
		return lx.fragment(start), true
	}
	return token.Token{}, false
}

// scanBalanced consumes bytes until the bracket opened just before the
// cursor is closed, skipping nested brackets and quoted strings.
func (lx *Lexer) scanBalanced(start Mark) {
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				lx.cursor.Bump()
				return
			}
		case '\'', '"':
			lx.cursor.Bump()
			triple := false
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == b && b1 == b {
				lx.cursor.Bump()
				lx.cursor.Bump()
				triple = true
			}
			lx.scanStringBody(b, triple, false)
			continue
		}
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnterminatedFragment, lx.cursor.SpanFrom(start), "unterminated shell substitution")
}

// scanShellLine reads the rest of a logical line verbatim. It stops before
// the newline, or before a '#' that follows whitespace outside quotes and
// brackets; trailing whitespace is not part of the fragment.
func (lx *Lexer) scanShellLine() token.Token {
	start := lx.cursor.Mark()
	end := lx.cursor.Off
	depth := 0
	var quote byte
	prev := byte(' ')
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if quote != 0 {
			if b == '\n' && depth == 0 {
				break
			}
			lx.cursor.Bump()
			switch b {
			case '\\':
				lx.cursor.Bump()
			case quote:
				quote = 0
			}
			end = lx.cursor.Off
			prev = b
			continue
		}
		if depth == 0 && (b == '\n' || (b == '#' && (prev == ' ' || prev == '\t'))) {
			break
		}
		if b == '\\' {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				prev = ' '
				continue
			}
		}
		switch b {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '\'', '"', '`':
			quote = b
		}
		lx.cursor.Bump()
		if b != ' ' && b != '\t' && b != '\n' {
			end = lx.cursor.Off
		}
		prev = b
	}
	sp := lx.cursor.SpanFrom(start)
	sp.End = end
	return token.Token{Kind: token.ShellFragment, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) fragment(start Mark) token.Token {
	return token.Token{Kind: token.ShellFragment, Span: lx.cursor.SpanFrom(start), Text: lx.text(start)}
}
