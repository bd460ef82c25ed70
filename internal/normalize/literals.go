package normalize

import (
	"strings"

	"coral/internal/ast"
)

// Quote rewrites a string literal to the preferred quote. Single quotes win
// unless the body holds an unescaped ' and no unescaped ". When a triple
// quoted body holds both, the original quote stays. The body is never
// touched; the prefix is lower-cased.
func Quote(lit string) string {
	prefix, quote, body := ast.SplitString(lit)
	if quote == "" {
		return lit
	}
	prefix = strings.ToLower(prefix)
	single, double := unescaped(body, '\''), unescaped(body, '"')
	want := byte('\'')
	switch {
	case single && double:
		want = quote[0]
	case single:
		want = '"'
	}
	q := strings.Repeat(string(want), len(quote))
	return prefix + q + body + q
}

// unescaped reports whether body holds q not preceded by an odd run of
// backslashes.
func unescaped(body string, q byte) bool {
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case q:
			return true
		}
	}
	return false
}

// Number lower-cases radix prefixes, exponents and the imaginary suffix, and
// upper-cases hexadecimal digits.
func Number(lit string) string {
	lower := strings.ToLower(lit)
	if strings.HasPrefix(lower, "0x") {
		return "0x" + strings.ToUpper(lower[2:])
	}
	return lower
}

// Strings applies Quote to every string literal in blk.
func Strings(b *ast.Builder, blk *ast.Block) {
	eachExpr(b, blk, func(_ ast.ExprID, slot *ast.ExprID) {
		s, ok := b.Exprs.String(*slot)
		if !ok {
			return
		}
		for i := range s.Parts {
			s.Parts[i].Text = Quote(s.Parts[i].Text)
		}
	})
}

// Numbers applies Number to every numeric literal in blk.
func Numbers(b *ast.Builder, blk *ast.Block) {
	eachExpr(b, blk, func(_ ast.ExprID, slot *ast.ExprID) {
		if b.Exprs.Kind(*slot) != ast.ExprNumber {
			return
		}
		l, _ := b.Exprs.Leaf(*slot)
		l.Text = Number(l.Text)
	})
}

// Comment puts one space after the '#' of a comment and strips trailing
// whitespace. Shebangs, `#!` and `#:` markers and comment banners (`##`)
// are left alone.
func Comment(text string) string {
	text = strings.TrimRight(text, " \t")
	if len(text) < 2 || text[0] != '#' {
		return text
	}
	switch text[1] {
	case ' ', '!', ':', '#', '\'':
		return text
	case '\t':
		return "# " + strings.TrimLeft(text[1:], "\t")
	}
	return "# " + text[1:]
}

// Comments applies Comment to every comment in blk.
func Comments(b *ast.Builder, blk *ast.Block) {
	eachComment(b, blk, func(c *ast.Comment) {
		c.Text = Comment(c.Text)
	})
}
