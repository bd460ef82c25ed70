package lexer

import (
	"unicode/utf8"

	"coral/internal/diag"
	"coral/internal/token"
)

// scanToken scans one token starting at the cursor. It reports false when
// the bytes are not Python at all, which makes the caller re-read the line
// as a shell fragment.
func (lx *Lexer) scanToken() (token.Token, bool) {
	b := lx.cursor.Peek()
	switch {
	case isIdentStartByte(b) || b >= utf8.RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(b) || lx.isNumberAfterDot():
		return lx.scanNumber(), true
	case b == '\'' || b == '"':
		return lx.scanString(lx.cursor.Mark()), true
	case b == '$' || b == '!' || b == '@' || b == '`':
		if tok, ok := lx.scanShellSubst(); ok {
			return tok, true
		}
		if b == '$' || b == '`' {
			return token.Token{}, false
		}
		return lx.scanOperator()
	case b < ' ' && b != '\t':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "invalid control character in source")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(start)}, true
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) scanOperator() (token.Token, bool) {
	rest := lx.cursor.Rest()
	if len(rest) > 3 {
		rest = rest[:3]
	}
	op, ok := token.MatchOperator(string(rest))
	if !ok {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	for range len(op) {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.Op, Span: lx.cursor.SpanFrom(start), Text: op}, true
}

// scanIdentOrKeyword scans a name and classifies it. A string prefix glued
// to a quote continues as a string literal.
func (lx *Lexer) scanIdentOrKeyword() (token.Token, bool) {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return token.Token{}, false
	}
	if r < utf8.RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			return token.Token{}, false
		}
		lx.bumpRune()
	}
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !(isIdentContinueRune(r2)) {
			break
		}
		lx.bumpRune()
	}

	text := lx.text(start)
	if q := lx.cursor.Peek(); (q == '\'' || q == '"') && isStringPrefix(text) {
		return lx.scanString(start), true
	}

	sp := lx.cursor.SpanFrom(start)
	if token.IsKeyword(text) {
		return token.Token{Kind: token.Keyword, Span: sp, Text: text}, true
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}, true
}

func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	end := lx.cursor.Off
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		b := lx.cursor.Bump()
		if b != ' ' && b != '\t' && b != '\f' {
			end = lx.cursor.Off
		}
	}
	sp := lx.cursor.SpanFrom(start)
	sp.End = end
	return token.Token{Kind: token.Comment, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
