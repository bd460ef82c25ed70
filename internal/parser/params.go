package parser

import (
	"coral/internal/ast"
	"coral/internal/token"
)

// params parses a parameter list. With a zero open token the list is bare
// (a lambda) and stops before close; otherwise open has been consumed and the
// list runs through close.
func (p *Parser) params(open token.Token, close string, annotations bool) (ast.ExprID, error) {
	item := func() (ast.ExprID, error) { return p.param(annotations) }
	if open.Kind == token.Invalid {
		start := p.peek().Span
		var b ast.Bracket
		for {
			x, err := item()
			if err != nil {
				return ast.NoExprID, err
			}
			b.Elems = append(b.Elems, ast.Elem{Value: x})
			if !p.eatOp(",") {
				break
			}
			if p.atOp(close) {
				b.TrailingComma = true
				break
			}
		}
		return p.b.Exprs.NewList(ast.ExprParams, p.spanFrom(start), b), nil
	}
	b, err := p.list(open, close, item)
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewList(ast.ExprParams, p.spanFrom(open.Span), b), nil
}

// param parses `/`, `*`, `*args`, `**kwargs` or `name[: ann][= default]`.
func (p *Parser) param(annotations bool) (ast.ExprID, error) {
	start := p.peek().Span
	var d ast.ExprParamData
	switch {
	case p.atOp("/"):
		p.advance()
		d.Name = "/"
		return p.b.Exprs.NewParam(start, d), nil
	case p.atOp("**"):
		p.advance()
		d.Star = "**"
	case p.atOp("*"):
		p.advance()
		d.Star = "*"
		if !p.at(token.Ident) {
			return p.b.Exprs.NewParam(start, d), nil
		}
	}
	name, err := p.expectName()
	if err != nil {
		return ast.NoExprID, err
	}
	d.Name = name.Text
	if annotations && p.eatOp(":") {
		if d.Star == "*" && p.atOp("*") {
			d.Annotation, err = p.unary(p.bitOr)
		} else {
			d.Annotation, err = p.test()
		}
		if err != nil {
			return ast.NoExprID, err
		}
	}
	if p.eatOp("=") {
		if d.Default, err = p.test(); err != nil {
			return ast.NoExprID, err
		}
	}
	return p.b.Exprs.NewParam(p.spanFrom(start), d), nil
}
