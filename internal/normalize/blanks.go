package normalize

import (
	"coral/internal/ast"
)

// Blanks clamps blank lines to two at the top level and one in nested
// blocks, removes them at the start of blocks and between decorators and
// clauses, puts exactly two (top level) or one (nested) around function and
// class definitions, and keeps an import block apart from the code after it.
func Blanks(b *ast.Builder, blk *ast.Block) {
	blanks(b, blk, 0)
}

func blanks(b *ast.Builder, blk *ast.Block, depth int) {
	st := b.Stmts
	limit := 1
	if depth == 0 {
		limit = 2
	}
	for i, id := range blk.Stmts {
		s := st.Get(id)
		want, least := -1, 0
		if i == 0 {
			want = 0
		} else {
			prev := blk.Stmts[i-1]
			switch {
			case st.IsDefOrClass(id) || st.IsDefOrClass(prev):
				want = limit
			case st.Get(prev).Kind == ast.StmtImport && s.Kind != ast.StmtImport:
				least = 1
			}
		}
		group(&s.Blank, s.Leading, want, least, limit)

		d, ok := st.Compound(id)
		if !ok {
			continue
		}
		for j := range d.Decorators {
			d.Decorators[j].Blank = 0
			zero(d.Decorators[j].Leading)
		}
		for j := range d.Clauses {
			cl := &d.Clauses[j]
			cl.Blank = 0
			if j == 0 && len(d.Decorators) > 0 {
				zero(cl.Leading)
			} else {
				group(&cl.Blank, cl.Leading, 0, 0, limit)
			}
			blanks(b, &cl.Body, depth+1)
		}
	}

	if len(blk.Dangling) > 0 {
		want := -1
		switch n := len(blk.Stmts); {
		case n == 0:
			want = 0
		case st.IsDefOrClass(blk.Stmts[n-1]):
			want = limit
		}
		var tail int
		group(&tail, blk.Dangling, want, 0, limit)
	}
}

// group fixes the blank lines of a run of comments followed by a node whose
// own count is *blank. The count above the first of them is set to want
// (when not negative), raised to least, and clamped to limit; the others
// are only clamped.
func group(blank *int, comments []ast.Comment, want, least, limit int) {
	first := blank
	if len(comments) > 0 {
		first = &comments[0].Blank
		for i := 1; i < len(comments); i++ {
			comments[i].Blank = min(comments[i].Blank, limit)
		}
		*blank = min(*blank, limit)
	}
	if want >= 0 {
		*first = want
		return
	}
	*first = min(max(*first, least), limit)
}

func zero(comments []ast.Comment) {
	for i := range comments {
		comments[i].Blank = 0
	}
}
