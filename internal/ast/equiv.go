package ast

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Equivalent reports whether two parsed files have the same logical
// structure. Trivia, grouping parentheses, tuple parentheses, trailing
// commas, quote characters, string prefix case, numeric literal case and
// identifier normal form (NFKC) are ignored.
func Equivalent(a *Builder, fa FileID, b *Builder, fb FileID) bool {
	c := comparer{a: a, b: b}
	x, y := a.Files.Get(fa), b.Files.Get(fb)
	if x == nil || y == nil {
		return x == y
	}
	return c.block(&x.Body, &y.Body)
}

type comparer struct {
	a, b *Builder
}

func (c comparer) block(x, y *Block) bool {
	if len(x.Stmts) != len(y.Stmts) {
		return false
	}
	for i := range x.Stmts {
		if !c.stmt(x.Stmts[i], y.Stmts[i]) {
			return false
		}
	}
	return true
}

func (c comparer) stmt(x, y StmtID) bool {
	sx, sy := c.a.Stmts.Get(x), c.b.Stmts.Get(y)
	if sx == nil || sy == nil {
		return sx == sy
	}
	if sx.Kind != sy.Kind {
		return false
	}
	switch sx.Kind {
	case StmtExpr:
		dx, _ := c.a.Stmts.Expr(x)
		dy, _ := c.b.Stmts.Expr(y)
		return c.expr(dx.Value, dy.Value)
	case StmtAssign:
		dx, _ := c.a.Stmts.Assign(x)
		dy, _ := c.b.Stmts.Assign(y)
		return dx.Keyword == dy.Keyword && dx.Op == dy.Op &&
			c.exprs(dx.Targets, dy.Targets) &&
			c.expr(dx.Annotation, dy.Annotation) &&
			c.expr(dx.Value, dy.Value)
	case StmtKeyword:
		dx, _ := c.a.Stmts.Keyword(x)
		dy, _ := c.b.Stmts.Keyword(y)
		if dx.Keyword != dy.Keyword || len(dx.Names) != len(dy.Names) {
			return false
		}
		for i := range dx.Names {
			if !sameName(dx.Names[i], dy.Names[i]) {
				return false
			}
		}
		return c.expr(dx.Value, dy.Value) && c.expr(dx.Extra, dy.Extra)
	case StmtImport:
		dx, _ := c.a.Stmts.Import(x)
		dy, _ := c.b.Stmts.Import(y)
		return dx.From == dy.From && sameName(dx.Module, dy.Module) && c.expr(dx.Names, dy.Names)
	case StmtShell:
		dx, _ := c.a.Stmts.Shell(x)
		dy, _ := c.b.Stmts.Shell(y)
		return strings.TrimSpace(dx.Text) == strings.TrimSpace(dy.Text)
	case StmtCompound:
		dx, _ := c.a.Stmts.Compound(x)
		dy, _ := c.b.Stmts.Compound(y)
		if len(dx.Decorators) != len(dy.Decorators) || len(dx.Clauses) != len(dy.Clauses) {
			return false
		}
		for i := range dx.Decorators {
			if !c.expr(dx.Decorators[i].Value, dy.Decorators[i].Value) {
				return false
			}
		}
		for i := range dx.Clauses {
			if !c.clause(&dx.Clauses[i], &dy.Clauses[i]) {
				return false
			}
		}
		return true
	}
	return true
}

func (c comparer) clause(x, y *Clause) bool {
	return x.Keyword == y.Keyword && x.Async == y.Async && sameName(x.Name, y.Name) &&
		c.expr(x.Test, y.Test) && c.expr(x.Target, y.Target) &&
		c.expr(bases(c.a, x.Params), bases(c.b, y.Params)) && c.expr(x.Returns, y.Returns) &&
		c.block(&x.Body, &y.Body)
}

// bases treats `class C():` like `class C:`.
func bases(b *Builder, id ExprID) ExprID {
	if b.Exprs.Kind(id) == ExprArgs {
		if l, _ := b.Exprs.List(id); len(l.Items.Elems) == 0 {
			return NoExprID
		}
	}
	return id
}

func (c comparer) exprs(x, y []ExprID) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !c.expr(x[i], y[i]) {
			return false
		}
	}
	return true
}

func unwrapGroup(b *Builder, id ExprID) ExprID {
	for b.Exprs.Kind(id) == ExprGroup {
		l, _ := b.Exprs.List(id)
		if len(l.Items.Elems) != 1 {
			return id
		}
		id = l.Items.Elems[0].Value
	}
	return id
}

func (c comparer) expr(x, y ExprID) bool {
	x, y = unwrapGroup(c.a, x), unwrapGroup(c.b, y)
	ex, ey := c.a.Exprs.Get(x), c.b.Exprs.Get(y)
	if ex == nil || ey == nil {
		return ex == ey
	}
	if ex.Kind != ey.Kind {
		return false
	}
	ax, bx := c.a.Exprs, c.b.Exprs
	switch ex.Kind {
	case ExprName:
		lx, _ := ax.Leaf(x)
		ly, _ := bx.Leaf(y)
		return sameName(lx.Text, ly.Text)
	case ExprNumber:
		lx, _ := ax.Leaf(x)
		ly, _ := bx.Leaf(y)
		return strings.EqualFold(lx.Text, ly.Text)
	case ExprShell:
		lx, _ := ax.Leaf(x)
		ly, _ := bx.Leaf(y)
		return strings.TrimSpace(lx.Text) == strings.TrimSpace(ly.Text)
	case ExprConst, ExprEllipsis:
		lx, _ := ax.Leaf(x)
		ly, _ := bx.Leaf(y)
		return lx.Text == ly.Text
	case ExprString:
		sx, _ := ax.String(x)
		sy, _ := bx.String(y)
		if len(sx.Parts) != len(sy.Parts) {
			return false
		}
		for i := range sx.Parts {
			if !sameString(sx.Parts[i].Text, sy.Parts[i].Text) {
				return false
			}
		}
		return true
	case ExprChain:
		cx, _ := ax.Chain(x)
		cy, _ := bx.Chain(y)
		if cx.Prec != cy.Prec || len(cx.Ops) != len(cy.Ops) || len(cx.Operands) != len(cy.Operands) {
			return false
		}
		for i := range cx.Ops {
			if cx.Ops[i] != cy.Ops[i] {
				return false
			}
		}
		return c.elems(cx.Operands, cy.Operands)
	case ExprUnary:
		ux, _ := ax.Unary(x)
		uy, _ := bx.Unary(y)
		return ux.Op == uy.Op && c.expr(ux.Operand, uy.Operand)
	case ExprWalrus, ExprKeyword, ExprKeyValue, ExprAs:
		px, _ := ax.Pair(x)
		py, _ := bx.Pair(y)
		return sameName(px.Name, py.Name) && c.expr(px.Left, py.Left) && c.expr(px.Right, py.Right)
	case ExprTernary:
		tx, _ := ax.Ternary(x)
		ty, _ := bx.Ternary(y)
		return c.expr(tx.Body, ty.Body) && c.expr(tx.Cond, ty.Cond) && c.expr(tx.Else, ty.Else)
	case ExprLambda:
		lx, _ := ax.Lambda(x)
		ly, _ := bx.Lambda(y)
		return c.expr(lx.Params, ly.Params) && c.expr(lx.Body, ly.Body)
	case ExprAttr:
		tx, _ := ax.Attr(x)
		ty, _ := bx.Attr(y)
		return sameName(tx.Name, ty.Name) && c.expr(tx.Target, ty.Target)
	case ExprCall, ExprSubscript:
		px, _ := ax.Apply(x)
		py, _ := bx.Apply(y)
		if ex.Kind == ExprSubscript && len(px.Args.Elems) == 1 && px.Args.TrailingComma != py.Args.TrailingComma {
			return false // x[a,] indexes with a tuple
		}
		return c.expr(px.Target, py.Target) && c.elems(px.Args.Elems, py.Args.Elems)
	case ExprSlice:
		sx, _ := ax.Slice(x)
		sy, _ := bx.Slice(y)
		return sx.HasStep == sy.HasStep && c.expr(sx.Lower, sy.Lower) &&
			c.expr(sx.Upper, sy.Upper) && c.expr(sx.Step, sy.Step)
	case ExprCompFor, ExprCompIf:
		kx, _ := ax.CompClause(x)
		ky, _ := bx.CompClause(y)
		return kx.Async == ky.Async && c.expr(kx.Target, ky.Target) && c.expr(kx.Iter, ky.Iter)
	case ExprParam:
		px, _ := ax.Param(x)
		py, _ := bx.Param(y)
		return px.Star == py.Star && sameName(px.Name, py.Name) &&
			c.expr(px.Annotation, py.Annotation) && c.expr(px.Default, py.Default)
	}
	if lx, ok := ax.List(x); ok {
		ly, _ := bx.List(y)
		return c.elems(lx.Items.Elems, ly.Items.Elems)
	}
	return true
}

func (c comparer) elems(x, y []Elem) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !c.expr(x[i].Value, y[i].Value) {
			return false
		}
	}
	return true
}

func sameName(x, y string) bool {
	return x == y || norm.NFKC.String(x) == norm.NFKC.String(y)
}

func sameString(x, y string) bool {
	px, qx, bx := SplitString(x)
	py, qy, by := SplitString(y)
	return strings.EqualFold(px, py) && IsTriple(qx) == IsTriple(qy) && bx == by
}
