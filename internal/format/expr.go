package format

import (
	"coral/internal/ast"
)

// candidates lists every layout of id worth measuring at c.
func (l *layout) candidates(id ast.ExprID, c ctx) []cand {
	ex := l.ex
	kind := ex.Kind(id)
	var out []cand
	if l.canFlat(id) {
		out = append(out, cand{lines: text(l.flat(id)), shape: shapeFlat})
	}
	inPlace := func(ps ...piece) {
		out = append(out, cand{lines: l.seq(c, ps...)})
	}
	switch kind {
	case ast.ExprString:
		s, _ := ex.String(id)
		if len(s.Parts) > 1 && c.start {
			lines := make([]string, len(s.Parts))
			for i, p := range s.Parts {
				lines[i] = p.Text
				if i > 0 {
					lines[i] = pad(c.indent) + p.Text
				}
			}
			out = append(out, cand{lines: lines})
		}
	case ast.ExprChain:
		out = append(out, l.chainCands(id, c)...)
	case ast.ExprUnary:
		u, _ := ex.Unary(id)
		if u.Operand != ast.NoExprID {
			inPlace(lit(unaryOp(u.Op)), sub(u.Operand))
		}
	case ast.ExprWalrus, ast.ExprKeyword, ast.ExprKeyValue, ast.ExprAs:
		inPlace(l.pairPieces(id)...)
	case ast.ExprTernary:
		out = append(out, l.ternaryCands(id, c)...)
	case ast.ExprLambda:
		inPlace(l.lambdaPieces(id)...)
	case ast.ExprAttr:
		inPlace(l.attrPieces(id)...)
	case ast.ExprCall, ast.ExprSubscript:
		out = append(out, l.applyCands(id, c)...)
	case ast.ExprSlice:
		inPlace(l.slicePieces(id)...)
	case ast.ExprCompFor, ast.ExprCompIf:
		inPlace(l.clausePieces(id)...)
	case ast.ExprParam:
		inPlace(l.paramPieces(id)...)
	default:
		if list, ok := ex.List(id); ok {
			out = append(out, l.brackets(kind, &list.Items, c)...)
		}
	}
	return out
}

func chainComments(c *ast.ExprChainData) bool {
	for _, e := range c.Operands {
		if len(e.Leading) > 0 || e.Trailing != nil {
			return true
		}
	}
	return false
}

// chainCands keeps a chain on its line, letting operands break inside their
// own brackets, or splits it before every operator. The split is only legal
// inside brackets.
func (l *layout) chainCands(id ast.ExprID, c ctx) []cand {
	ch, _ := l.ex.Chain(id)
	comments := chainComments(ch)
	var out []cand
	if !comments {
		ps := make([]piece, 0, 2*len(ch.Operands))
		for i, e := range ch.Operands {
			if i > 0 {
				ps = append(ps, lit(l.chainOp(ch, i-1)))
			}
			ps = append(ps, sub(e.Value))
		}
		out = append(out, cand{lines: l.seq(c, ps...)})
	}
	if c.start || c.nested {
		out = append(out, cand{lines: l.splitChain(ch, c)})
	}
	return out
}

func (l *layout) splitChain(ch *ast.ExprChainData, c ctx) []string {
	inner := ctx{col: c.col, indent: c.indent, nested: true}
	lines := l.render(ch.Operands[0].Value, inner)
	if lines == nil {
		return nil
	}
	lines = trail(lines, ch.Operands[0].Trailing)
	for i := 1; i < len(ch.Operands); i++ {
		e := ch.Operands[i]
		lines = append(lines, ownLines(e.Leading, c.indent)...)
		prefix := ch.Ops[i-1] + " "
		at := ctx{col: c.indent + len(prefix), indent: c.indent, nested: true}
		if i == len(ch.Operands)-1 {
			at.suffix = c.suffix
		}
		r := l.render(e.Value, at)
		if r == nil {
			return nil
		}
		lines = append(lines, trail(join(text(pad(c.indent)+prefix), r), e.Trailing)...)
	}
	return lines
}

func (l *layout) ternaryCands(id ast.ExprID, c ctx) []cand {
	t, _ := l.ex.Ternary(id)
	out := []cand{{lines: l.seq(c, sub(t.Body), lit(" if "), sub(t.Cond), lit(" else "), sub(t.Else))}}
	if !c.start {
		return out
	}
	inner := ctx{col: c.col, indent: c.indent, nested: true}
	body := l.render(t.Body, inner)
	cond := l.seq(ctx{col: c.indent, indent: c.indent, nested: true}, lit("if "), sub(t.Cond))
	els := l.seq(ctx{col: c.indent, indent: c.indent, suffix: c.suffix, nested: true}, lit("else "), sub(t.Else))
	if body == nil || cond == nil || els == nil {
		return out
	}
	lines := append([]string(nil), body...)
	lines = append(lines, indented(cond, c.indent)...)
	lines = append(lines, indented(els, c.indent)...)
	return append(out, cand{lines: lines})
}

// applyCands lays out a call or subscript: the target stays put while the
// brackets break, or the target breaks and the arguments stay flat.
func (l *layout) applyCands(id ast.ExprID, c ctx) []cand {
	a, _ := l.ex.Apply(id)
	kind := l.ex.Kind(id)
	var out []cand

	var target []string
	if l.canFlat(a.Target) {
		target = text(l.flat(a.Target))
	} else {
		target = l.render(a.Target, ctx{col: c.col, indent: c.indent, suffix: len(a.Args.Open), nested: c.nested})
	}
	if target != nil {
		at := ctx{col: endCol(target, c.col), indent: c.indent, suffix: c.suffix, nested: c.nested}
		for _, bc := range l.brackets(kind, &a.Args, at) {
			out = append(out, cand{lines: join(target, bc.lines), shape: bc.shape})
		}
	}

	if !l.ex.Kind(a.Target).IsAtom() && l.bracketCanFlat(&a.Args) {
		args := l.bracketFlat(kind, &a.Args)
		t := l.render(a.Target, ctx{col: c.col, indent: c.indent, suffix: textWidth(args) + c.suffix, nested: c.nested})
		out = append(out, cand{lines: join(t, text(args)), shape: shapeFlat})
	}
	return out
}
