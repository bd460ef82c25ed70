package format

import (
	"coral/internal/ast"
)

// brackets lays out a bracketed list opening at c.col; c.suffix follows the
// closing bracket.
//
//	flat      f(a, b)
//	wrapped   f(
//	              a, b
//	          )
//	exploded  f(
//	              a,
//	              b,
//	          )
func (l *layout) brackets(kind ast.ExprKind, br *ast.Bracket, c ctx) []cand {
	if br.Bare() {
		return l.bare(kind, br, c)
	}
	var out []cand
	if l.bracketCanFlat(br) {
		out = append(out, cand{lines: text(l.bracketFlat(kind, br)), shape: shapeFlat})
	}
	if len(br.Elems) == 0 && !br.HasComments() {
		return out
	}
	if w := l.wrapped(kind, br, c); w != nil {
		out = append(out, cand{lines: w, shape: shapeWrapped})
	}
	if e := l.exploded(kind, br, c); e != nil {
		out = append(out, cand{lines: e, shape: shapeExploded})
	}
	return out
}

// inner is the context of a line opened inside br.
func inner(c ctx) ctx {
	in := c.indent + indentWidth
	return ctx{col: in, indent: in, start: true, nested: true}
}

// wrapped puts the contents on one indented line. A single element keeps
// its own layout choices; several elements must all be flat.
func (l *layout) wrapped(kind ast.ExprKind, br *ast.Bracket, c ctx) []string {
	if len(br.Elems) == 0 || br.Magic || br.HasComments() {
		return nil
	}
	at := inner(c)
	var body []string
	if len(br.Elems) == 1 {
		tail := flatTail(kind, br)
		at.suffix = len(tail)
		body = join(l.render(br.Elems[0].Value, at), text(tail))
	} else {
		if !l.bracketCanFlat(br) {
			return nil
		}
		body = text(l.bracketContents(kind, br))
	}
	if body == nil {
		return nil
	}
	lines := text(br.Open)
	lines = append(lines, indented(body, at.indent)...)
	return append(lines, pad(c.indent)+br.Close)
}

// explodeComma reports whether exploded elements end with a comma.
func (l *layout) explodeComma(kind ast.ExprKind, br *ast.Bracket) bool {
	switch {
	case br.Spaced, kind == ast.ExprGroup:
		return false
	case kind == ast.ExprSubscript && len(br.Elems) == 1:
		return br.TrailingComma
	case kind == ast.ExprCall && len(br.Elems) == 1:
		// a sole generator argument cannot take a comma
		return !l.bareComp(br.Elems[0].Value)
	}
	return true
}

func (l *layout) bareComp(id ast.ExprID) bool {
	if l.ex.Kind(id) != ast.ExprComp {
		return false
	}
	br, _ := l.ex.Bracket(id)
	return br.Bare()
}

// exploded puts every element on its own line with the comments anchored
// to it.
func (l *layout) exploded(kind ast.ExprKind, br *ast.Bracket, c ctx) []string {
	at := inner(c)
	tail := ""
	if l.explodeComma(kind, br) {
		tail = ","
	}
	lines := trail(text(br.Open), br.OpenComment)
	for _, e := range br.Elems {
		lines = append(lines, ownLines(e.Leading, at.indent)...)
		el := at
		el.suffix = len(tail)
		r := join(l.render(e.Value, el), text(tail))
		if r == nil {
			return nil
		}
		lines = append(lines, indented(trail(r, e.Trailing), at.indent)...)
	}
	lines = append(lines, ownLines(br.Dangling, at.indent)...)
	return append(lines, pad(c.indent)+br.Close)
}

// bare lays out a list without brackets of its own. It may only break
// inside its elements, so one element at a time is allowed to, trying the
// last one first. A bare generator opening a line may put each clause on a
// line of its own.
func (l *layout) bare(kind ast.ExprKind, br *ast.Bracket, c ctx) []cand {
	if br.HasComments() {
		return []cand{{lines: l.stacked(br, c)}}
	}
	var out []cand
	if l.bracketCanFlat(br) {
		out = append(out, cand{lines: text(l.bracketFlat(kind, br)), shape: shapeFlat})
	}
	if len(br.Elems) == 0 {
		return out
	}
	sep := separator(br)
	tail := flatTail(kind, br)
	for i := len(br.Elems) - 1; i >= 0; i-- {
		if l.ex.Kind(br.Elems[i].Value).IsAtom() {
			// an atom never breaks; its candidate would repeat another
			continue
		}
		ps := make([]piece, 0, 2*len(br.Elems)+1)
		for j, e := range br.Elems {
			if j > 0 {
				ps = append(ps, lit(sep))
			}
			if j != i && l.canFlat(e.Value) {
				ps = append(ps, lit(l.flat(e.Value)))
			} else {
				ps = append(ps, sub(e.Value))
			}
		}
		if tail != "" {
			ps = append(ps, lit(tail))
		}
		out = append(out, cand{lines: l.seq(c, ps...)})
	}
	if br.Spaced && c.start {
		out = append(out, cand{lines: l.stacked(br, c)})
	}
	return out
}

// stacked puts each element of a spaced list on its own line at c.indent.
func (l *layout) stacked(br *ast.Bracket, c ctx) []string {
	lines := text("")
	if len(br.Elems) > 0 && len(br.Elems[0].Leading) > 0 {
		lead := ownLines(br.Elems[0].Leading, c.indent)
		lead[0] = lead[0][c.indent:]
		lines = append(lead, pad(c.indent))
	}
	for i, e := range br.Elems {
		at := ctx{col: c.indent, indent: c.indent, nested: true}
		if i == 0 {
			at.col = c.col
		}
		if i == len(br.Elems)-1 {
			at.suffix = c.suffix
		}
		r := l.render(e.Value, at)
		if r == nil {
			return nil
		}
		r = trail(r, e.Trailing)
		if i > 0 {
			lines = append(lines, ownLines(e.Leading, c.indent)...)
			lines = append(lines, pad(c.indent))
		}
		lines = join(lines, r)
	}
	return append(lines, ownLines(br.Dangling, c.indent)...)
}
