// Package normalize applies the context-free rewrites that run between
// parsing and layout: string quotes, numeric literals, redundant grouping
// parentheses, magic trailing commas, blank lines and comment spacing.
//
// Every rule is total and works in place on the arenas of an ast.Builder.
// Rules never allocate nodes, so slot pointers handed out by the ast walkers
// stay valid for the whole pass.
//
// Semicolons need no rule of their own: the parser already splits
// `a; b` into separate statements and the printer emits one per line.
package normalize

import (
	"coral/internal/ast"
)

// Rule selects individual rewrites.
type Rule uint16

const (
	RuleQuotes Rule = 1 << iota
	RuleNumbers
	RuleParens
	RuleCommas
	RuleBlanks
	RuleComments

	AllRules = RuleQuotes | RuleNumbers | RuleParens | RuleCommas | RuleBlanks | RuleComments
)

type Options struct {
	// Skip disables rules; the zero value runs all of them.
	Skip Rule
}

// File normalizes the tree of file id.
func File(b *ast.Builder, id ast.FileID, opts Options) {
	f := b.Files.Get(id)
	if f == nil {
		return
	}
	on := func(r Rule) bool { return opts.Skip&r == 0 }
	if on(RuleComments) {
		Comments(b, &f.Body)
	}
	if on(RuleBlanks) {
		Blanks(b, &f.Body)
	}
	if on(RuleQuotes) {
		Strings(b, &f.Body)
	}
	if on(RuleNumbers) {
		Numbers(b, &f.Body)
	}
	if on(RuleParens) {
		Parens(b, &f.Body)
	}
	if on(RuleCommas) {
		Commas(b, &f.Body)
	}
}

// eachExpr calls fn for every expression under the statements of blk,
// children before parents.
func eachExpr(b *ast.Builder, blk *ast.Block, fn func(parent ast.ExprID, slot *ast.ExprID)) {
	b.Inspect(blk, func(id ast.StmtID, _ int) {
		b.Stmts.Slots(id, func(slot *ast.ExprID) {
			b.Exprs.Rewrite(slot, fn)
		})
	})
}

// eachComment calls fn for every comment in blk, wherever it is anchored.
func eachComment(b *ast.Builder, blk *ast.Block, fn func(c *ast.Comment)) {
	list := func(cs []ast.Comment) {
		for i := range cs {
			fn(&cs[i])
		}
	}
	one := func(c *ast.Comment) {
		if c != nil {
			fn(c)
		}
	}
	elems := func(es []ast.Elem) {
		for i := range es {
			list(es[i].Leading)
			one(es[i].Trailing)
		}
	}
	inExpr := func(_ ast.ExprID, slot *ast.ExprID) {
		if br, ok := b.Exprs.Bracket(*slot); ok {
			one(br.OpenComment)
			elems(br.Elems)
			list(br.Dangling)
		}
		if c, ok := b.Exprs.Chain(*slot); ok {
			elems(c.Operands)
		}
	}

	var block func(blk *ast.Block)
	block = func(blk *ast.Block) {
		for _, id := range blk.Stmts {
			st := b.Stmts.Get(id)
			list(st.Leading)
			one(st.Trailing)
			if d, ok := b.Stmts.Compound(id); ok {
				for i := range d.Decorators {
					list(d.Decorators[i].Leading)
					one(d.Decorators[i].Trailing)
				}
				for i := range d.Clauses {
					list(d.Clauses[i].Leading)
					one(d.Clauses[i].Trailing)
					block(&d.Clauses[i].Body)
				}
			}
			b.Stmts.Slots(id, func(slot *ast.ExprID) {
				b.Exprs.Rewrite(slot, inExpr)
			})
		}
		list(blk.Dangling)
	}
	block(blk)
}
