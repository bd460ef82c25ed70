package normalize

import (
	"coral/internal/ast"
)

// Commas marks brackets whose source trailing comma asks for an exploded
// layout. One-element tuples and subscripts need their comma for meaning,
// and bare lists cannot be exploded, so none of those count.
func Commas(b *ast.Builder, blk *ast.Block) {
	ex := b.Exprs
	eachExpr(b, blk, func(_ ast.ExprID, slot *ast.ExprID) {
		br, ok := ex.Bracket(*slot)
		if !ok {
			return
		}
		br.Magic = magic(ex.Kind(*slot), br)
	})
}

func magic(kind ast.ExprKind, br *ast.Bracket) bool {
	if !br.TrailingComma || br.Spaced || br.Bare() {
		return false
	}
	switch kind {
	case ast.ExprTuple, ast.ExprSubscript:
		return len(br.Elems) > 1
	}
	return true
}
