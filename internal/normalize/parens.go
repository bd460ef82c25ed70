package normalize

import (
	"coral/internal/ast"
)

// Parens removes grouping parentheses that cannot change meaning: groups
// around atoms and already bracketed expressions anywhere, and a group that
// forms the whole value of a statement slot (see ValueSlots). Groups holding
// comments stay, as do groups that make `(1).real` legal or wrap a walrus
// or yield.
func Parens(b *ast.Builder, blk *ast.Block) {
	ex := b.Exprs
	eachExpr(b, blk, func(parent ast.ExprID, slot *ast.ExprID) {
		for {
			inner, ok := groupInner(ex, *slot)
			if !ok || !atomLike(ex, inner) {
				return
			}
			if ex.Kind(parent) == ast.ExprAttr && ex.Kind(inner) == ast.ExprNumber {
				return
			}
			*slot = inner
		}
	})
	b.Inspect(blk, func(id ast.StmtID, _ int) {
		for _, slot := range ValueSlots(b.Stmts, id) {
			for {
				inner, ok := groupInner(ex, *slot)
				if !ok || !Liftable(ex, inner) {
					break
				}
				*slot = inner
			}
		}
	})
}

// groupInner returns the expression inside a comment-free group.
func groupInner(ex *ast.Exprs, id ast.ExprID) (ast.ExprID, bool) {
	if ex.Kind(id) != ast.ExprGroup {
		return ast.NoExprID, false
	}
	l, _ := ex.List(id)
	if len(l.Items.Elems) != 1 || l.Items.HasComments() {
		return ast.NoExprID, false
	}
	return l.Items.Elems[0].Value, true
}

func atomLike(ex *ast.Exprs, id ast.ExprID) bool {
	switch ex.Kind(id) {
	case ast.ExprName, ast.ExprNumber, ast.ExprConst, ast.ExprEllipsis,
		ast.ExprGroup, ast.ExprList, ast.ExprSet, ast.ExprDict:
		return true
	case ast.ExprString:
		s, _ := ex.String(id)
		return len(s.Parts) == 1
	case ast.ExprTuple, ast.ExprComp:
		br, _ := ex.Bracket(id)
		return !br.Bare()
	}
	return false
}

// Liftable reports whether a group filling a whole statement slot can go.
func Liftable(ex *ast.Exprs, id ast.ExprID) bool {
	switch ex.Kind(id) {
	case ast.ExprWalrus, ast.ExprTuple:
		return false
	case ast.ExprUnary:
		u, _ := ex.Unary(id)
		return u.Op != "yield" && u.Op != "yield from" && u.Op != "*"
	}
	return true
}

// ValueSlots lists the statement slots whose whole value may lose a group.
// The printer may put parentheses back around exactly these slots.
func ValueSlots(st *ast.Stmts, id ast.StmtID) []*ast.ExprID {
	var out []*ast.ExprID
	switch st.Get(id).Kind {
	case ast.StmtExpr:
		d, _ := st.Expr(id)
		out = append(out, &d.Value)
	case ast.StmtAssign:
		d, _ := st.Assign(id)
		if d.Value != ast.NoExprID {
			out = append(out, &d.Value)
		}
	case ast.StmtKeyword:
		d, _ := st.Keyword(id)
		switch d.Keyword {
		case "return", "del", "raise", "assert":
			if d.Value != ast.NoExprID {
				out = append(out, &d.Value)
			}
			if d.Extra != ast.NoExprID {
				out = append(out, &d.Extra)
			}
		}
	case ast.StmtCompound:
		d, _ := st.Compound(id)
		for i := range d.Clauses {
			cl := &d.Clauses[i]
			switch cl.Keyword {
			case "if", "elif", "while", "for":
				if cl.Test != ast.NoExprID {
					out = append(out, &cl.Test)
				}
			}
		}
	}
	return out
}
