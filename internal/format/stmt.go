package format

import (
	"strings"

	"coral/internal/ast"
	"coral/internal/normalize"
)

// slotMode selects the layouts a statement slot may take.
type slotMode uint8

const (
	slotPlain slotMode = iota
	// slotParen may gain parentheses of its own when that helps it fit.
	slotParen
	// slotImports prints flat without parentheses or exploded inside them.
	slotImports
	// slotWith prints flat without parentheses or broken inside them.
	slotWith
)

// part is a run of header text or an expression slot.
type part struct {
	text string
	slot ast.ExprID
	mode slotMode
	// first marks the slot to break before any other.
	first bool
}

func word(s string) part {
	return part{text: s}
}

type printer struct {
	*layout
	st *ast.Stmts
	w  *Writer
}

func (p *printer) block(blk *ast.Block, indent int) {
	for _, id := range blk.Stmts {
		p.stmt(id, indent)
	}
	p.w.Comments(indent, blk.Dangling)
}

func (p *printer) stmt(id ast.StmtID, indent int) {
	st := p.st.Get(id)
	p.w.Comments(indent, st.Leading)
	p.w.Blank(st.Blank)
	if st.Kind == ast.StmtCompound {
		p.compound(id, indent)
		return
	}
	p.w.Lines(indent, trail(p.header(p.simple(id), indent), st.Trailing))
}

func (p *printer) compound(id ast.StmtID, indent int) {
	d, _ := p.st.Compound(id)
	for _, dec := range d.Decorators {
		p.w.Comments(indent, dec.Leading)
		p.w.Blank(dec.Blank)
		lines := p.header([]part{word("@"), {slot: dec.Value}}, indent)
		p.w.Lines(indent, trail(lines, dec.Trailing))
	}
	slots := parenSlots(p.st, id)
	for i := range d.Clauses {
		cl := &d.Clauses[i]
		p.w.Comments(indent, cl.Leading)
		p.w.Blank(cl.Blank)
		lines := p.header(p.clause(cl, slots), indent)
		p.w.Lines(indent, trail(lines, cl.Trailing))
		p.block(&cl.Body, indent+indentWidth)
	}
}

// parenSlots is the set of slots of id that may take introduced parentheses.
func parenSlots(st *ast.Stmts, id ast.StmtID) map[*ast.ExprID]bool {
	set := make(map[*ast.ExprID]bool)
	for _, slot := range normalize.ValueSlots(st, id) {
		set[slot] = true
	}
	return set
}

func slotOf(set map[*ast.ExprID]bool, ref *ast.ExprID) part {
	if set[ref] {
		return part{slot: *ref, mode: slotParen}
	}
	return part{slot: *ref}
}

// simple splits a simple statement into header parts.
func (p *printer) simple(id ast.StmtID) []part {
	set := parenSlots(p.st, id)
	switch p.st.Get(id).Kind {
	case ast.StmtExpr:
		d, _ := p.st.Expr(id)
		return []part{slotOf(set, &d.Value)}
	case ast.StmtAssign:
		d, _ := p.st.Assign(id)
		var ps []part
		if d.Keyword != "" {
			ps = append(ps, word(d.Keyword+" "))
		}
		for i := range d.Targets {
			if i > 0 {
				ps = append(ps, word(" = "))
			}
			ps = append(ps, slotOf(set, &d.Targets[i]))
		}
		if d.Annotation != ast.NoExprID {
			ps = append(ps, word(": "), slotOf(set, &d.Annotation))
		}
		if d.Value != ast.NoExprID {
			ps = append(ps, word(" "+d.Op+" "), slotOf(set, &d.Value))
		}
		return ps
	case ast.StmtKeyword:
		d, _ := p.st.Keyword(id)
		if len(d.Names) > 0 {
			return []part{word(d.Keyword + " " + strings.Join(d.Names, ", "))}
		}
		ps := []part{word(d.Keyword)}
		if d.Value != ast.NoExprID {
			ps = append(ps, word(" "), slotOf(set, &d.Value))
		}
		if d.Extra != ast.NoExprID {
			sep := " from "
			if d.Keyword == "assert" {
				sep = ", "
			}
			ps = append(ps, word(sep), slotOf(set, &d.Extra))
		}
		return ps
	case ast.StmtImport:
		d, _ := p.st.Import(id)
		if !d.From {
			return []part{word("import "), {slot: d.Names}}
		}
		return []part{word("from " + d.Module + " import "), {slot: d.Names, mode: slotImports}}
	case ast.StmtShell:
		d, _ := p.st.Shell(id)
		return []part{word(d.Text)}
	}
	return nil
}

// clause splits a clause header into parts, colon included.
func (p *printer) clause(cl *ast.Clause, set map[*ast.ExprID]bool) []part {
	kw := cl.Keyword
	if cl.Async {
		kw = "async " + kw
	}
	var ps []part
	switch cl.Keyword {
	case "if", "elif", "while", "match":
		ps = []part{word(kw + " "), slotOf(set, &cl.Test)}
	case "for":
		ps = []part{word(kw + " "), slotOf(set, &cl.Target), word(" in "), slotOf(set, &cl.Test)}
	case "except", "except*":
		ps = []part{word(kw)}
		if cl.Test != ast.NoExprID {
			ps = append(ps, word(" "), slotOf(set, &cl.Test))
		}
		if cl.Name != "" {
			ps = append(ps, word(" as "+cl.Name))
		}
	case "with":
		ps = []part{word(kw + " "), {slot: cl.Test, mode: slotWith}}
	case "def":
		ps = []part{word(kw + " " + cl.Name), {slot: cl.Params, first: true}}
		if cl.Returns != ast.NoExprID {
			ps = append(ps, word(" -> "), slotOf(set, &cl.Returns))
		}
	case "class":
		ps = []part{word(kw + " " + cl.Name)}
		if br, ok := p.ex.Bracket(cl.Params); ok && (len(br.Elems) > 0 || br.HasComments()) {
			ps = append(ps, part{slot: cl.Params})
		}
	case "case":
		ps = []part{word("case "), slotOf(set, &cl.Test)}
		if cl.Target != ast.NoExprID {
			ps = append(ps, word(" if "), slotOf(set, &cl.Target))
		}
	default:
		ps = []part{word(kw)}
	}
	return append(ps, word(":"))
}

// header lays out a statement header: flat when it fits, otherwise the
// best of breaking one slot at a time, tried from the right.
func (p *printer) header(parts []part, indent int) []string {
	c := ctx{col: indent, indent: indent}
	var cands []cand
	for _, lines := range p.assemble(parts, indent, -1, false) {
		if k := p.measure(lines, c); k.over == 0 && k.lines == 1 {
			return lines
		}
		cands = append(cands, cand{lines: lines})
	}
	for _, i := range splitOrder(parts) {
		for _, lines := range p.assemble(parts, indent, i, false) {
			cands = append(cands, cand{lines: lines})
		}
	}
	if best := p.pick(c, shapeAny, cands); best != nil {
		return best
	}
	// No layout kept every break inside brackets; keep the tokens anyway.
	for _, lines := range p.assemble(parts, indent, -1, true) {
		return lines
	}
	return text("")
}

// splitOrder lists the slots to break: marked ones first, then the rest
// from right to left.
func splitOrder(parts []part) []int {
	var first, rest []int
	for i, pt := range parts {
		switch {
		case pt.slot == ast.NoExprID:
		case pt.first:
			first = append(first, i)
		default:
			rest = append([]int{i}, rest...)
		}
	}
	return append(first, rest...)
}

// assemble renders parts with every slot in place, except split, whose
// every candidate layout yields a result of its own.
func (p *printer) assemble(parts []part, indent, split int, nested bool) [][]string {
	var out [][]string
	var walk func(i int, acc []string)
	walk = func(i int, acc []string) {
		if i == len(parts) {
			out = append(out, acc)
			return
		}
		pt := parts[i]
		if pt.slot == ast.NoExprID {
			walk(i+1, join(acc, text(pt.text)))
			return
		}
		c := ctx{col: endCol(acc, indent), indent: indent, suffix: p.partsWidth(parts[i+1:]), nested: nested}
		if i != split {
			if r := p.inPlace(pt, c); r != nil {
				walk(i+1, join(acc, r))
			}
			return
		}
		for _, r := range p.slotCands(pt, c) {
			if r != nil {
				walk(i+1, join(acc, r))
			}
		}
	}
	walk(0, text(""))
	return out
}

func (p *printer) partsWidth(parts []part) int {
	w := 0
	for _, pt := range parts {
		if pt.slot == ast.NoExprID {
			w += textWidth(pt.text)
			continue
		}
		if s, ok := p.slotFlat(pt); ok {
			w += textWidth(s)
		} else {
			w += textWidth(p.flat(pt.slot))
		}
	}
	return w
}

// slotFlat is the one-line rendering of a slot, if it has one.
func (p *printer) slotFlat(pt part) (string, bool) {
	switch pt.mode {
	case slotImports, slotWith:
		br, _ := p.ex.Bracket(pt.slot)
		if !p.bracketCanFlat(br) {
			return "", false
		}
		bare := *br
		bare.Open, bare.Close = "", ""
		return p.bracketFlat(p.ex.Kind(pt.slot), &bare), true
	}
	if !p.canFlat(pt.slot) {
		return "", false
	}
	return p.flat(pt.slot), true
}

// inPlace renders a slot that is not the one chosen to break.
func (p *printer) inPlace(pt part, c ctx) []string {
	if s, ok := p.slotFlat(pt); ok {
		return text(s)
	}
	cands := make([]cand, 0, 4)
	for _, lines := range p.slotCands(pt, c) {
		cands = append(cands, cand{lines: lines})
	}
	return p.pick(c, shapeAny, cands)
}

// parened returns the slot's list with parentheses of its own.
func (p *printer) parened(id ast.ExprID) *ast.Bracket {
	br, _ := p.ex.Bracket(id)
	syn := *br
	syn.Open, syn.Close = "(", ")"
	return &syn
}

func (p *printer) slotCands(pt part, c ctx) [][]string {
	kind := p.ex.Kind(pt.slot)
	var out [][]string
	switch pt.mode {
	case slotImports:
		s, ok := p.slotFlat(pt)
		if ok {
			out = append(out, text(s))
		}
		if !ok || s != "*" {
			out = append(out, p.exploded(kind, p.parened(pt.slot), c))
		}
		return out
	case slotWith:
		syn := p.parened(pt.slot)
		if !syn.Magic && !syn.HasComments() {
			bare := *syn
			bare.Open, bare.Close = "", ""
			for _, bc := range p.bare(kind, &bare, c) {
				out = append(out, bc.lines)
			}
		}
		return append(out, p.wrapped(kind, syn, c), p.exploded(kind, syn, c))
	case slotParen:
		// On a tie chains and conditionals take the parentheses, anything
		// else breaks in its own brackets.
		switch kind {
		case ast.ExprChain, ast.ExprTernary:
			out = append(out, p.introduced(pt.slot, c)...)
			return append(out, p.render(pt.slot, c))
		}
		out = append(out, p.render(pt.slot, c))
		return append(out, p.introduced(pt.slot, c)...)
	}
	return append(out, p.render(pt.slot, c))
}

// introduced wraps a slot in parentheses of its own so that it can break
// across lines or start further left. A bare tuple becomes a parenthesized
// one.
func (p *printer) introduced(id ast.ExprID, c ctx) [][]string {
	kind := p.ex.Kind(id)
	if kind == ast.ExprTuple {
		br, _ := p.ex.Bracket(id)
		if !br.Bare() {
			return nil
		}
		syn := p.parened(id)
		return [][]string{p.wrapped(kind, syn, c), p.exploded(kind, syn, c)}
	}
	if !normalize.Liftable(p.ex, id) {
		return nil
	}
	switch kind {
	case ast.ExprGroup, ast.ExprList, ast.ExprSet, ast.ExprDict, ast.ExprComp:
		return nil
	}
	at := inner(c)
	body := p.render(id, at)
	if body == nil {
		return nil
	}
	// An atom only moves when that makes it fit; anything else may also
	// move to shorten an overlong line.
	if over := p.measure(body, at).over; over > 0 && (kind.IsAtom() || over >= p.measure(p.render(id, c), c).over) {
		return nil
	}
	lines := text("(")
	lines = append(lines, indented(body, at.indent)...)
	return [][]string{append(lines, pad(c.indent)+")")}
}
