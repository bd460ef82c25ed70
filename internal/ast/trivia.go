package ast

import (
	"coral/internal/source"
)

// Comment is a '#' comment kept in the tree. Own-line comments carry the
// number of blank lines directly above them.
type Comment struct {
	Text  string
	Span  source.Span
	Blank int
}

// Elem is one element of a bracketed construct together with the comments
// anchored to it: own-line comments above it and a same-line comment after
// it (after its comma, if any).
type Elem struct {
	Value    ExprID
	Leading  []Comment
	Trailing *Comment
}

// Bracket is the shared shape of every splittable list: call arguments,
// subscripts, collection literals, parameter lists, import and with lists,
// comprehensions. Open/Close are empty for bare (unbracketed) lists.
type Bracket struct {
	Open  string
	Close string
	Elems []Elem
	// Spaced lists (comprehension clauses) separate elements with spaces
	// instead of commas and never take a trailing comma.
	Spaced bool
	// TrailingComma records a comma before Close in the source.
	TrailingComma bool
	// Multiline records that the source spanned more than one line.
	Multiline bool
	// Exploded records that every element started its own source line.
	Exploded bool
	// OpenComment is a comment on the same line as Open.
	OpenComment *Comment
	// Dangling holds comments after the last element.
	Dangling []Comment
	// Magic is decided by the normalizer: the trailing comma forces an
	// exploded layout.
	Magic bool
}

// HasComments reports whether any comment is anchored directly inside b.
func (b *Bracket) HasComments() bool {
	if b.OpenComment != nil || len(b.Dangling) > 0 {
		return true
	}
	for i := range b.Elems {
		if len(b.Elems[i].Leading) > 0 || b.Elems[i].Trailing != nil {
			return true
		}
	}
	return false
}

// Bare reports whether the list has no brackets of its own.
func (b *Bracket) Bare() bool {
	return b.Open == ""
}
