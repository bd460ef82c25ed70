package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the tree, one node per line. It is a
// debugging aid for `coral parse`; the format is not stable.
func Dump(w io.Writer, b *Builder, id FileID) error {
	d := dumper{b: b}
	if f := b.Files.Get(id); f != nil {
		d.line(0, "File")
		d.block(1, &f.Body)
	}
	_, err := io.WriteString(w, d.sb.String())
	return err
}

type dumper struct {
	b  *Builder
	sb strings.Builder
}

func (d *dumper) line(depth int, format string, args ...any) {
	d.sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&d.sb, format, args...)
	d.sb.WriteByte('\n')
}

func (d *dumper) comments(depth int, label string, cs []Comment) {
	for _, c := range cs {
		d.line(depth, "%s %q blank=%d", label, c.Text, c.Blank)
	}
}

func (d *dumper) block(depth int, blk *Block) {
	for _, s := range blk.Stmts {
		d.stmt(depth, s)
	}
	d.comments(depth, "dangling", blk.Dangling)
}

func (d *dumper) stmt(depth int, id StmtID) {
	st := d.b.Stmts.Get(id)
	if st == nil {
		return
	}
	d.comments(depth, "leading", st.Leading)
	header := st.Kind.String()
	if st.Blank > 0 {
		header += fmt.Sprintf(" blank=%d", st.Blank)
	}
	if st.Trailing != nil {
		header += fmt.Sprintf(" trailing=%q", st.Trailing.Text)
	}
	switch st.Kind {
	case StmtExpr:
		data, _ := d.b.Stmts.Expr(id)
		d.line(depth, "%s", header)
		d.expr(depth+1, "", data.Value)
	case StmtAssign:
		data, _ := d.b.Stmts.Assign(id)
		d.line(depth, "%s %s%s", header, data.Keyword, data.Op)
		for _, t := range data.Targets {
			d.expr(depth+1, "target: ", t)
		}
		d.expr(depth+1, "annotation: ", data.Annotation)
		d.expr(depth+1, "value: ", data.Value)
	case StmtKeyword:
		data, _ := d.b.Stmts.Keyword(id)
		d.line(depth, "%s %s %s", header, data.Keyword, strings.Join(data.Names, ","))
		d.expr(depth+1, "", data.Value)
		d.expr(depth+1, "extra: ", data.Extra)
	case StmtImport:
		data, _ := d.b.Stmts.Import(id)
		d.line(depth, "%s from=%v %s", header, data.From, data.Module)
		d.expr(depth+1, "", data.Names)
	case StmtShell:
		data, _ := d.b.Stmts.Shell(id)
		d.line(depth, "%s %q", header, data.Text)
	case StmtCompound:
		data, _ := d.b.Stmts.Compound(id)
		d.line(depth, "%s", header)
		for _, dec := range data.Decorators {
			d.comments(depth+1, "leading", dec.Leading)
			d.expr(depth+1, "@", dec.Value)
		}
		for i := range data.Clauses {
			cl := &data.Clauses[i]
			d.comments(depth+1, "leading", cl.Leading)
			d.line(depth+1, "Clause %s async=%v %s", cl.Keyword, cl.Async, cl.Name)
			d.expr(depth+2, "test: ", cl.Test)
			d.expr(depth+2, "target: ", cl.Target)
			d.expr(depth+2, "params: ", cl.Params)
			d.expr(depth+2, "returns: ", cl.Returns)
			d.block(depth+2, &cl.Body)
		}
	}
}

func (d *dumper) expr(depth int, label string, id ExprID) {
	x := d.b.Exprs.Get(id)
	if x == nil {
		return
	}
	ex := d.b.Exprs
	switch {
	case x.Kind == ExprString:
		s, _ := ex.String(id)
		texts := make([]string, len(s.Parts))
		for i, p := range s.Parts {
			texts[i] = p.Text
		}
		d.line(depth, "%s%s %s", label, x.Kind, strings.Join(texts, " "))
	case x.Kind.IsAtom():
		l, _ := ex.Leaf(id)
		d.line(depth, "%s%s %s", label, x.Kind, l.Text)
	case x.Kind == ExprChain:
		c, _ := ex.Chain(id)
		d.line(depth, "%s%s %s", label, x.Kind, strings.Join(c.Ops, " "))
		d.elems(depth+1, c.Operands)
	case x.Kind == ExprUnary:
		u, _ := ex.Unary(id)
		d.line(depth, "%s%s %s", label, x.Kind, u.Op)
		d.expr(depth+1, "", u.Operand)
	default:
		d.compound(depth, label, id, x)
	}
}

func (d *dumper) compound(depth int, label string, id ExprID, x *Expr) {
	ex := d.b.Exprs
	if p, ok := ex.Pair(id); ok {
		d.line(depth, "%s%s %s", label, x.Kind, p.Name)
		d.expr(depth+1, "", p.Left)
		d.expr(depth+1, "", p.Right)
		return
	}
	if a, ok := ex.Apply(id); ok {
		d.line(depth, "%s%s%s", label, x.Kind, bracketFlags(&a.Args))
		d.expr(depth+1, "target: ", a.Target)
		d.elems(depth+1, a.Args.Elems)
		d.comments(depth+1, "dangling", a.Args.Dangling)
		return
	}
	if l, ok := ex.List(id); ok {
		d.line(depth, "%s%s %s%s%s", label, x.Kind, l.Items.Open, l.Items.Close, bracketFlags(&l.Items))
		d.elems(depth+1, l.Items.Elems)
		d.comments(depth+1, "dangling", l.Items.Dangling)
		return
	}
	switch x.Kind {
	case ExprTernary:
		t, _ := ex.Ternary(id)
		d.line(depth, "%s%s", label, x.Kind)
		d.expr(depth+1, "", t.Body)
		d.expr(depth+1, "if: ", t.Cond)
		d.expr(depth+1, "else: ", t.Else)
	case ExprLambda:
		l, _ := ex.Lambda(id)
		d.line(depth, "%s%s", label, x.Kind)
		d.expr(depth+1, "", l.Params)
		d.expr(depth+1, "body: ", l.Body)
	case ExprAttr:
		a, _ := ex.Attr(id)
		d.line(depth, "%s%s .%s", label, x.Kind, a.Name)
		d.expr(depth+1, "", a.Target)
	case ExprSlice:
		s, _ := ex.Slice(id)
		d.line(depth, "%s%s step=%v", label, x.Kind, s.HasStep)
		d.expr(depth+1, "lower: ", s.Lower)
		d.expr(depth+1, "upper: ", s.Upper)
		d.expr(depth+1, "step: ", s.Step)
	case ExprCompFor, ExprCompIf:
		c, _ := ex.CompClause(id)
		d.line(depth, "%s%s async=%v", label, x.Kind, c.Async)
		d.expr(depth+1, "target: ", c.Target)
		d.expr(depth+1, "", c.Iter)
	case ExprParam:
		p, _ := ex.Param(id)
		d.line(depth, "%s%s %s%s", label, x.Kind, p.Star, p.Name)
		d.expr(depth+1, "annotation: ", p.Annotation)
		d.expr(depth+1, "default: ", p.Default)
	default:
		d.line(depth, "%s%s", label, x.Kind)
	}
}

func (d *dumper) elems(depth int, elems []Elem) {
	for _, e := range elems {
		d.comments(depth, "leading", e.Leading)
		d.expr(depth, "", e.Value)
		if e.Trailing != nil {
			d.line(depth+1, "trailing %q", e.Trailing.Text)
		}
	}
}

func bracketFlags(b *Bracket) string {
	var flags []string
	if b.TrailingComma {
		flags = append(flags, "trailing-comma")
	}
	if b.Magic {
		flags = append(flags, "magic")
	}
	if b.Multiline {
		flags = append(flags, "multiline")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, " ") + "]"
}
