package parser

import (
	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/token"
)

// itemParser parses one element of a bracketed list.
type itemParser func() (ast.ExprID, error)

// collection parses a parenthesized form, a list or a dict/set display,
// including their comprehension forms. The opening bracket is current.
func (p *Parser) collection() (ast.ExprID, error) {
	open := p.advance()
	close := token.Closer(open.Text)
	item := p.starOrNamed
	if open.Text == "{" {
		item = p.dictOrSetItem
	}
	if open.Text == "(" && p.atKeyword("yield") {
		item = p.yield
	}

	b, comp, err := p.listOrComp(open, close, item)
	if err != nil {
		return ast.NoExprID, err
	}
	span := p.spanFrom(open.Span)
	ex := p.b.Exprs
	if comp {
		return ex.NewList(ast.ExprComp, span, b), nil
	}
	switch open.Text {
	case "(":
		if len(b.Elems) == 1 && !b.TrailingComma && !isStarred(ex, b.Elems[0].Value) {
			return ex.NewList(ast.ExprGroup, span, b), nil
		}
		return ex.NewList(ast.ExprTuple, span, b), nil
	case "[":
		return ex.NewList(ast.ExprList, span, b), nil
	default:
		if len(b.Elems) == 0 || isDictItem(ex, b.Elems[0].Value) {
			return ex.NewList(ast.ExprDict, span, b), nil
		}
		return ex.NewList(ast.ExprSet, span, b), nil
	}
}

func isStarred(ex *ast.Exprs, id ast.ExprID) bool {
	u, ok := ex.Unary(id)
	return ok && (u.Op == "*" || u.Op == "**")
}

func isDictItem(ex *ast.Exprs, id ast.ExprID) bool {
	if ex.Kind(id) == ast.ExprKeyValue {
		return true
	}
	u, ok := ex.Unary(id)
	return ok && u.Op == "**"
}

// dictOrSetItem parses `**mapping`, `key: value` or a set element.
func (p *Parser) dictOrSetItem() (ast.ExprID, error) {
	if p.atOp("**") {
		return p.unary(p.bitOr)
	}
	if p.atOp("*") {
		return p.unary(p.bitOr)
	}
	start := p.peek().Span
	key, err := p.namedExpr()
	if err != nil || !p.atOp(":") {
		return key, err
	}
	p.advance()
	value, err := p.test()
	if err != nil {
		return ast.NoExprID, err
	}
	if value, err = p.patternAs(value); err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewPair(ast.ExprKeyValue, p.spanFrom(start), key, value, ""), nil
}

// list parses comma-separated items up to close; the opening token has been
// consumed. Comments are anchored to the elements they follow or precede.
func (p *Parser) list(open token.Token, close string, item itemParser) (ast.Bracket, error) {
	b, _, err := p.items(open, close, item, false)
	return b, err
}

func (p *Parser) listOrComp(open token.Token, close string, item itemParser) (ast.Bracket, bool, error) {
	return p.items(open, close, item, true)
}

func (p *Parser) items(open token.Token, close string, item itemParser, allowComp bool) (ast.Bracket, bool, error) {
	b := ast.Bracket{Open: open.Text, Close: close, Exploded: true}
	var lead []ast.Comment
	b.OpenComment, lead = p.takeComments()

	for !p.atOp(close) {
		if p.at(token.EOF) || p.at(token.Newline) {
			return b, false, p.unclosed(open)
		}
		b.Exploded = b.Exploded && p.peek().OwnLine
		v, err := item()
		if err != nil {
			return b, false, err
		}
		i := len(b.Elems)
		b.Elems = append(b.Elems, ast.Elem{Value: v, Leading: lead})
		lead = p.attachTrailing(&b.Elems[i])

		if allowComp && i == 0 && p.atCompFor() {
			if err := p.compClauses(&b, lead); err != nil {
				return b, false, err
			}
			if err := p.closeBracket(open, close, &b); err != nil {
				return b, false, err
			}
			return b, true, nil
		}
		if !p.atOp(",") {
			b.TrailingComma = false
			break
		}
		p.advance()
		b.TrailingComma = true
		lead = append(lead, p.attachTrailing(&b.Elems[i])...)
	}
	b.Dangling = lead
	if err := p.closeBracket(open, close, &b); err != nil {
		return b, false, err
	}
	return b, false, nil
}

// closeBracket consumes close and records how the list was laid out.
func (p *Parser) closeBracket(open token.Token, close string, b *ast.Bracket) error {
	if !p.atOp(close) {
		if p.at(token.EOF) || p.at(token.Newline) {
			return p.unclosed(open)
		}
		return p.errorf(diag.SynUnexpectedToken, "expected ',' or '%s', found %s", close, describe(p.peek()))
	}
	b.Dangling = append(b.Dangling, p.ownComments()...)
	end := p.advance()
	b.Multiline = p.line(end.Span.Start) != p.line(open.Span.Start)
	b.Exploded = b.Exploded && len(b.Elems) > 0 && b.Multiline && end.OwnLine
	return nil
}

func (p *Parser) unclosed(open token.Token) error {
	code := diag.SynUnclosedParen
	switch open.Text {
	case "[":
		code = diag.SynUnclosedBracket
	case "{":
		code = diag.SynUnclosedBrace
	}
	return &syntaxError{code: code, span: open.Span, msg: "'" + open.Text + "' was never closed"}
}

func (p *Parser) atCompFor() bool {
	return p.atKeyword("for") || (p.atKeyword("async") && p.peekN(1).IsKeyword("for"))
}

// compClauses parses the for/if clauses of a comprehension into b after its
// element; lead holds own-line comments seen before the first clause.
func (p *Parser) compClauses(b *ast.Bracket, lead []ast.Comment) error {
	b.Spaced = true
	for p.atCompFor() || p.atKeyword("if") {
		start := p.peek().Span
		var clause ast.ExprID
		if p.atKeyword("if") {
			p.advance()
			cond, err := p.orTest()
			if err != nil {
				return err
			}
			clause = p.b.Exprs.NewCompClause(ast.ExprCompIf, p.spanFrom(start), false, ast.NoExprID, cond)
		} else {
			async := p.eatKeyword("async")
			p.advance()
			target, err := p.exprList(p.starTarget)
			if err != nil {
				return err
			}
			if _, err = p.expectKeyword("in"); err != nil {
				return err
			}
			iter, err := p.orTest()
			if err != nil {
				return err
			}
			clause = p.b.Exprs.NewCompClause(ast.ExprCompFor, p.spanFrom(start), async, target, iter)
		}
		b.Elems = append(b.Elems, ast.Elem{Value: clause, Leading: lead})
		lead = p.attachTrailing(&b.Elems[len(b.Elems)-1])
	}
	b.Dangling = lead
	return nil
}

// callArgs parses call arguments after '('. A sole generator argument is
// kept as an unbracketed comprehension.
func (p *Parser) callArgs(open token.Token) (ast.Bracket, error) {
	if err := p.enter(); err != nil {
		return ast.Bracket{}, err
	}
	defer p.leave()
	b, comp, err := p.listOrComp(open, ")", p.argument)
	if err != nil || !comp {
		return b, err
	}
	start := p.b.Exprs.Get(b.Elems[0].Value).Span
	end := p.b.Exprs.Get(b.Elems[len(b.Elems)-1].Value).Span
	gen := ast.Bracket{Elems: b.Elems, Spaced: true}
	id := p.b.Exprs.NewList(ast.ExprComp, start.Cover(end), gen)
	b.Elems = []ast.Elem{{Value: id}}
	b.Spaced = false
	return b, nil
}

// argument parses *args, **kwargs, name=value or a positional argument.
func (p *Parser) argument() (ast.ExprID, error) {
	switch {
	case p.atOp("*"), p.atOp("**"):
		return p.unary(p.test)
	case p.at(token.Ident) && p.peekN(1).IsOp("="):
		name := p.advance()
		p.advance()
		value, err := p.test()
		if err != nil {
			return ast.NoExprID, err
		}
		return p.b.Exprs.NewPair(ast.ExprKeyword, p.spanFrom(name.Span), ast.NoExprID, value, name.Text), nil
	}
	x, err := p.namedExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.patternAs(x)
}

// subscriptItem parses an index or a slice.
func (p *Parser) subscriptItem() (ast.ExprID, error) {
	if p.atOp("*") {
		return p.unary(p.bitOr)
	}
	start := p.peek().Span
	lower := ast.NoExprID
	if !p.atOp(":") {
		x, err := p.namedExpr()
		if err != nil || !p.atOp(":") {
			return x, err
		}
		lower = x
	}
	p.advance()
	upper, step := ast.NoExprID, ast.NoExprID
	var err error
	if !p.atSliceEnd() {
		if upper, err = p.test(); err != nil {
			return ast.NoExprID, err
		}
	}
	hasStep := p.eatOp(":")
	if hasStep && !p.atSliceEnd() {
		if step, err = p.test(); err != nil {
			return ast.NoExprID, err
		}
	}
	return p.b.Exprs.NewSlice(p.spanFrom(start), lower, upper, step, hasStep), nil
}

func (p *Parser) atSliceEnd() bool {
	return p.atOp(":") || p.atOp(",") || p.atOp("]")
}
