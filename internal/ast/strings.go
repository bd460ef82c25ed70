package ast

import "strings"

// SplitString splits a string literal into its prefix, its quote (single or
// triple, either kind) and the body between the quotes.
func SplitString(text string) (prefix, quote, body string) {
	i := strings.IndexAny(text, `'"`)
	if i < 0 {
		return text, "", ""
	}
	prefix, rest := text[:i], text[i:]
	switch {
	case len(rest) >= 6 && (strings.HasPrefix(rest, `'''`) || strings.HasPrefix(rest, `"""`)) &&
		strings.HasSuffix(rest, rest[:3]):
		quote = rest[:3]
	case len(rest) >= 2:
		quote = rest[:1]
	default:
		return prefix, "", rest
	}
	return prefix, quote, rest[len(quote) : len(rest)-len(quote)]
}

// IsTriple reports whether quote is a triple quote.
func IsTriple(quote string) bool {
	return len(quote) == 3
}
