package ast

// Slots calls fn with a pointer to every direct child slot of id, in source
// order. Empty slots are skipped. The pointers point into the arenas and are
// invalidated by any allocation, so fn may rewrite a slot but must not build
// new nodes.
func (e *Exprs) Slots(id ExprID, fn func(slot *ExprID)) {
	x := e.Get(id)
	if x == nil {
		return
	}
	visit := func(slot *ExprID) {
		if *slot != NoExprID {
			fn(slot)
		}
	}
	elems := func(es []Elem) {
		for i := range es {
			visit(&es[i].Value)
		}
	}
	switch x.Kind {
	case ExprChain:
		c, _ := e.Chain(id)
		elems(c.Operands)
	case ExprUnary:
		u, _ := e.Unary(id)
		visit(&u.Operand)
	case ExprWalrus, ExprKeyword, ExprKeyValue, ExprAs:
		p, _ := e.Pair(id)
		visit(&p.Left)
		visit(&p.Right)
	case ExprTernary:
		t, _ := e.Ternary(id)
		visit(&t.Body)
		visit(&t.Cond)
		visit(&t.Else)
	case ExprLambda:
		l, _ := e.Lambda(id)
		visit(&l.Params)
		visit(&l.Body)
	case ExprAttr:
		a, _ := e.Attr(id)
		visit(&a.Target)
	case ExprCall, ExprSubscript:
		a, _ := e.Apply(id)
		visit(&a.Target)
		elems(a.Args.Elems)
	case ExprSlice:
		s, _ := e.Slice(id)
		visit(&s.Lower)
		visit(&s.Upper)
		visit(&s.Step)
	case ExprCompFor, ExprCompIf:
		c, _ := e.CompClause(id)
		visit(&c.Target)
		visit(&c.Iter)
	case ExprParam:
		p, _ := e.Param(id)
		visit(&p.Annotation)
		visit(&p.Default)
	default:
		if l, ok := e.List(id); ok {
			elems(l.Items.Elems)
		}
	}
}

// Rewrite visits every expression under *slot bottom-up. fn receives the
// parent (NoExprID at the root) and may replace the slot's value.
func (e *Exprs) Rewrite(slot *ExprID, fn func(parent ExprID, slot *ExprID)) {
	e.rewrite(NoExprID, slot, fn)
}

func (e *Exprs) rewrite(parent ExprID, slot *ExprID, fn func(parent ExprID, slot *ExprID)) {
	if *slot == NoExprID {
		return
	}
	id := *slot
	e.Slots(id, func(child *ExprID) { e.rewrite(id, child, fn) })
	fn(parent, slot)
}

// Slots calls fn for every expression slot of a statement's own header:
// decorators and clause headers for compound statements, but not the
// statements of nested blocks.
func (s *Stmts) Slots(id StmtID, fn func(slot *ExprID)) {
	visit := func(slot *ExprID) {
		if *slot != NoExprID {
			fn(slot)
		}
	}
	st := s.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case StmtExpr:
		d, _ := s.Expr(id)
		visit(&d.Value)
	case StmtAssign:
		d, _ := s.Assign(id)
		for i := range d.Targets {
			visit(&d.Targets[i])
		}
		visit(&d.Annotation)
		visit(&d.Value)
	case StmtKeyword:
		d, _ := s.Keyword(id)
		visit(&d.Value)
		visit(&d.Extra)
	case StmtImport:
		d, _ := s.Import(id)
		visit(&d.Names)
	case StmtCompound:
		d, _ := s.Compound(id)
		for i := range d.Decorators {
			visit(&d.Decorators[i].Value)
		}
		for i := range d.Clauses {
			cl := &d.Clauses[i]
			visit(&cl.Test)
			visit(&cl.Target)
			visit(&cl.Params)
			visit(&cl.Returns)
		}
	}
}

// Blocks returns the nested blocks of a compound statement.
func (s *Stmts) Blocks(id StmtID) []*Block {
	d, ok := s.Compound(id)
	if !ok {
		return nil
	}
	out := make([]*Block, len(d.Clauses))
	for i := range d.Clauses {
		out[i] = &d.Clauses[i].Body
	}
	return out
}

// Inspect calls fn for every statement of blk and its nested blocks,
// parents first. depth is 0 for the statements of blk itself.
func (b *Builder) Inspect(blk *Block, fn func(id StmtID, depth int)) {
	b.inspect(blk, 0, fn)
}

func (b *Builder) inspect(blk *Block, depth int, fn func(id StmtID, depth int)) {
	for _, id := range blk.Stmts {
		fn(id, depth)
		for _, nested := range b.Stmts.Blocks(id) {
			b.inspect(nested, depth+1, fn)
		}
	}
}
