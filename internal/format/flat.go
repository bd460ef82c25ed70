package format

import (
	"strings"

	"coral/internal/ast"
)

// canFlat reports whether id can print on one line at all: no comment is
// anchored anywhere inside it and no bracket asks to stay exploded.
func (l *layout) canFlat(id ast.ExprID) bool {
	if v, ok := l.clean[id]; ok {
		return v
	}
	ok := true
	if c, isChain := l.ex.Chain(id); isChain {
		for _, e := range c.Operands {
			if len(e.Leading) > 0 || e.Trailing != nil {
				ok = false
			}
		}
	}
	if br, isBracket := l.ex.Bracket(id); isBracket && (br.Magic || br.HasComments()) {
		ok = false
	}
	if ok {
		l.ex.Slots(id, func(slot *ast.ExprID) {
			if ok && !l.canFlat(*slot) {
				ok = false
			}
		})
	}
	l.clean[id] = ok
	return ok
}

func (l *layout) flat(id ast.ExprID) string {
	if s, ok := l.flats[id]; ok {
		return s
	}
	s := l.flatUncached(id)
	l.flats[id] = s
	return s
}

func (l *layout) flatUncached(id ast.ExprID) string {
	ex := l.ex
	kind := ex.Kind(id)
	switch kind {
	case ast.ExprName, ast.ExprNumber, ast.ExprConst, ast.ExprEllipsis, ast.ExprShell:
		leaf, _ := ex.Leaf(id)
		return leaf.Text
	case ast.ExprString:
		s, _ := ex.String(id)
		parts := make([]string, len(s.Parts))
		for i, p := range s.Parts {
			parts[i] = p.Text
		}
		return strings.Join(parts, " ")
	case ast.ExprChain:
		c, _ := ex.Chain(id)
		var sb strings.Builder
		for i, e := range c.Operands {
			if i > 0 {
				sb.WriteString(l.chainOp(c, i-1))
			}
			sb.WriteString(l.flat(e.Value))
		}
		return sb.String()
	case ast.ExprUnary:
		u, _ := ex.Unary(id)
		if u.Operand == ast.NoExprID {
			return u.Op
		}
		return unaryOp(u.Op) + l.flat(u.Operand)
	case ast.ExprWalrus, ast.ExprKeyword, ast.ExprKeyValue, ast.ExprAs:
		return l.flatPieces(l.pairPieces(id))
	case ast.ExprTernary:
		t, _ := ex.Ternary(id)
		return l.flat(t.Body) + " if " + l.flat(t.Cond) + " else " + l.flat(t.Else)
	case ast.ExprLambda:
		return l.flatPieces(l.lambdaPieces(id))
	case ast.ExprAttr:
		return l.flatPieces(l.attrPieces(id))
	case ast.ExprCall, ast.ExprSubscript:
		a, _ := ex.Apply(id)
		return l.flat(a.Target) + l.bracketFlat(kind, &a.Args)
	case ast.ExprSlice:
		return l.flatPieces(l.slicePieces(id))
	case ast.ExprCompFor, ast.ExprCompIf:
		return l.flatPieces(l.clausePieces(id))
	case ast.ExprParam:
		return l.flatPieces(l.paramPieces(id))
	}
	if list, ok := ex.List(id); ok {
		return l.bracketFlat(kind, &list.Items)
	}
	return ""
}

func (l *layout) flatPieces(ps []piece) string {
	var sb strings.Builder
	for _, p := range ps {
		if p.id == ast.NoExprID {
			sb.WriteString(p.lit)
		} else {
			sb.WriteString(l.flat(p.id))
		}
	}
	return sb.String()
}

// unaryOp is the operator text printed before the operand.
func unaryOp(op string) string {
	switch op {
	case "not", "await", "yield", "yield from":
		return op + " "
	}
	return op
}

// chainOp returns the i-th operator of c with its spacing. Powers hug their
// operands when every operand is simple.
func (l *layout) chainOp(c *ast.ExprChainData, i int) string {
	if c.Prec == ast.PrecPower && l.simplePower(c) {
		return c.Ops[i]
	}
	return " " + c.Ops[i] + " "
}

func (l *layout) simplePower(c *ast.ExprChainData) bool {
	for _, e := range c.Operands {
		if !l.simpleOperand(e.Value) {
			return false
		}
	}
	return true
}

// simpleOperand reports names, numbers, constants, attribute chains of
// names, and signed forms of those.
func (l *layout) simpleOperand(id ast.ExprID) bool {
	ex := l.ex
	switch ex.Kind(id) {
	case ast.ExprName, ast.ExprNumber, ast.ExprConst:
		return true
	case ast.ExprUnary:
		u, _ := ex.Unary(id)
		switch u.Op {
		case "-", "+", "~":
			return l.simpleOperand(u.Operand)
		}
	case ast.ExprAttr:
		for ex.Kind(id) == ast.ExprAttr {
			a, _ := ex.Attr(id)
			id = a.Target
		}
		return ex.Kind(id) == ast.ExprName
	}
	return false
}

func (l *layout) pairPieces(id ast.ExprID) []piece {
	p, _ := l.ex.Pair(id)
	switch l.ex.Kind(id) {
	case ast.ExprKeyword:
		return []piece{lit(p.Name + "="), sub(p.Right)}
	case ast.ExprWalrus:
		return []piece{sub(p.Left), lit(" := "), sub(p.Right)}
	case ast.ExprKeyValue:
		return []piece{sub(p.Left), lit(": "), sub(p.Right)}
	default:
		return []piece{sub(p.Left), lit(" as "), sub(p.Right)}
	}
}

func (l *layout) lambdaPieces(id ast.ExprID) []piece {
	lm, _ := l.ex.Lambda(id)
	if lm.Params == ast.NoExprID {
		return []piece{lit("lambda: "), sub(lm.Body)}
	}
	return []piece{lit("lambda "), sub(lm.Params), lit(": "), sub(lm.Body)}
}

func (l *layout) attrPieces(id ast.ExprID) []piece {
	a, _ := l.ex.Attr(id)
	dot := "."
	if l.ex.Kind(a.Target) == ast.ExprNumber {
		dot = " ."
	}
	return []piece{sub(a.Target), lit(dot + a.Name)}
}

// slicePieces spaces the colons like a binary operator when any bound is
// complex, leaving out the space on a side with no bound.
func (l *layout) slicePieces(id ast.ExprID) []piece {
	s, _ := l.ex.Slice(id)
	bounds := []ast.ExprID{s.Lower, s.Upper}
	if s.HasStep {
		bounds = append(bounds, s.Step)
	}
	spaced := false
	for _, b := range bounds {
		if b != ast.NoExprID && !l.simpleOperand(b) {
			spaced = true
		}
	}
	var ps []piece
	for i, b := range bounds {
		if i > 0 {
			colon := ":"
			if spaced && bounds[i-1] != ast.NoExprID {
				colon = " " + colon
			}
			if spaced && b != ast.NoExprID {
				colon += " "
			}
			ps = append(ps, lit(colon))
		}
		if b != ast.NoExprID {
			ps = append(ps, sub(b))
		}
	}
	return ps
}

func (l *layout) clausePieces(id ast.ExprID) []piece {
	c, _ := l.ex.CompClause(id)
	if l.ex.Kind(id) == ast.ExprCompIf {
		return []piece{lit("if "), sub(c.Iter)}
	}
	kw := "for "
	if c.Async {
		kw = "async for "
	}
	return []piece{lit(kw), sub(c.Target), lit(" in "), sub(c.Iter)}
}

func (l *layout) paramPieces(id ast.ExprID) []piece {
	p, _ := l.ex.Param(id)
	ps := []piece{lit(p.Star + p.Name)}
	if p.Annotation != ast.NoExprID {
		ps = append(ps, lit(": "), sub(p.Annotation))
	}
	if p.Default != ast.NoExprID {
		eq := "="
		if p.Annotation != ast.NoExprID {
			eq = " = "
		}
		ps = append(ps, lit(eq), sub(p.Default))
	}
	return ps
}

// separator joins the elements of br on one line.
func separator(br *ast.Bracket) string {
	if br.Spaced {
		return " "
	}
	return ", "
}

// flatTail is the comma a flat list still needs after its last element.
func flatTail(kind ast.ExprKind, br *ast.Bracket) string {
	if len(br.Elems) != 1 || br.Spaced {
		return ""
	}
	switch kind {
	case ast.ExprTuple:
		return ","
	case ast.ExprSubscript:
		if br.TrailingComma {
			return ","
		}
	}
	return ""
}

func (l *layout) bracketCanFlat(br *ast.Bracket) bool {
	if br.Magic || br.HasComments() {
		return false
	}
	for _, e := range br.Elems {
		if !l.canFlat(e.Value) {
			return false
		}
	}
	return true
}

// bracketContents is the flat text between the brackets.
func (l *layout) bracketContents(kind ast.ExprKind, br *ast.Bracket) string {
	parts := make([]string, len(br.Elems))
	for i, e := range br.Elems {
		parts[i] = l.flat(e.Value)
	}
	return strings.Join(parts, separator(br)) + flatTail(kind, br)
}

func (l *layout) bracketFlat(kind ast.ExprKind, br *ast.Bracket) string {
	return br.Open + l.bracketContents(kind, br) + br.Close
}
