package parser

import (
	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/token"
)

// namedExpr parses `name := value` or a plain test.
func (p *Parser) namedExpr() (ast.ExprID, error) {
	if p.at(token.Ident) && p.peekN(1).IsOp(":=") {
		start := p.peek()
		name := p.b.Exprs.NewLeaf(ast.ExprName, start.Span, start.Text)
		p.advance()
		p.advance()
		value, err := p.test()
		if err != nil {
			return ast.NoExprID, err
		}
		return p.b.Exprs.NewPair(ast.ExprWalrus, p.spanFrom(start.Span), name, value, ""), nil
	}
	return p.test()
}

// test parses a conditional expression or a lambda.
func (p *Parser) test() (ast.ExprID, error) {
	if p.atKeyword("lambda") {
		return p.lambda()
	}
	start := p.peek().Span
	body, err := p.orTest()
	if err != nil || !p.atKeyword("if") {
		return body, err
	}
	p.advance()
	cond, err := p.orTest()
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err = p.expectKeyword("else"); err != nil {
		return ast.NoExprID, err
	}
	if err = p.enter(); err != nil {
		return ast.NoExprID, err
	}
	els, err := p.test()
	p.leave()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewTernary(p.spanFrom(start), body, cond, els), nil
}

func (p *Parser) lambda() (ast.ExprID, error) {
	start := p.advance().Span
	params := ast.NoExprID
	if !p.atOp(":") {
		var err error
		if params, err = p.params(token.Token{}, ":", false); err != nil {
			return ast.NoExprID, err
		}
	}
	if _, err := p.expectOp(":", diag.SynExpectColon); err != nil {
		return ast.NoExprID, err
	}
	if err := p.enter(); err != nil {
		return ast.NoExprID, err
	}
	defer p.leave()
	body, err := p.test()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewLambda(p.spanFrom(start), params, body), nil
}

func (p *Parser) orTest() (ast.ExprID, error) {
	return p.chain(ast.PrecOr)
}

// operand parses one level above prec.
func (p *Parser) operand(prec ast.Prec) (ast.ExprID, error) {
	switch prec + 1 {
	case ast.PrecNot:
		return p.notTest()
	case ast.PrecUnary:
		return p.factor()
	default:
		return p.chain(prec + 1)
	}
}

// chainOp reports the operator of level prec at the current token and how
// many tokens it spans.
func (p *Parser) chainOp(prec ast.Prec) (string, int) {
	tok := p.peek()
	switch prec {
	case ast.PrecOr:
		if tok.IsKeyword("or") {
			return "or", 1
		}
	case ast.PrecAnd:
		if tok.IsKeyword("and") {
			return "and", 1
		}
	case ast.PrecCompare:
		switch {
		case tok.Kind == token.Op:
			switch tok.Text {
			case "<", ">", "==", ">=", "<=", "!=":
				return tok.Text, 1
			}
		case tok.IsKeyword("in"):
			return "in", 1
		case tok.IsKeyword("not") && p.peekN(1).IsKeyword("in"):
			return "not in", 2
		case tok.IsKeyword("is"):
			if p.peekN(1).IsKeyword("not") {
				return "is not", 2
			}
			return "is", 1
		}
	case ast.PrecBitOr:
		if tok.IsOp("|") {
			return "|", 1
		}
	case ast.PrecBitXor:
		if tok.IsOp("^") {
			return "^", 1
		}
	case ast.PrecBitAnd:
		if tok.IsOp("&") {
			return "&", 1
		}
	case ast.PrecShift:
		if tok.IsOp("<<") || tok.IsOp(">>") {
			return tok.Text, 1
		}
	case ast.PrecArith:
		if tok.IsOp("+") || tok.IsOp("-") {
			return tok.Text, 1
		}
	case ast.PrecTerm:
		switch {
		case tok.IsOp("*"), tok.IsOp("/"), tok.IsOp("//"), tok.IsOp("%"), tok.IsOp("@"):
			return tok.Text, 1
		}
	}
	return "", 0
}

// chain parses a run of binary operators of one precedence level into a
// single flattened node. Comments between operands stay on the operands.
func (p *Parser) chain(prec ast.Prec) (ast.ExprID, error) {
	start := p.peek().Span
	first, err := p.operand(prec)
	if err != nil {
		return ast.NoExprID, err
	}
	op, n := p.chainOp(prec)
	if n == 0 {
		return first, nil
	}
	operands := []ast.Elem{{Value: first}}
	var ops []string
	for n > 0 {
		for range n {
			p.advance()
		}
		lead := p.attachTrailing(&operands[len(operands)-1])
		next, err := p.operand(prec)
		if err != nil {
			return ast.NoExprID, err
		}
		ops = append(ops, op)
		operands = append(operands, ast.Elem{Value: next, Leading: lead})
		op, n = p.chainOp(prec)
	}
	return p.b.Exprs.NewChain(p.spanFrom(start), prec, ops, operands), nil
}

// attachTrailing drains pending comments: a same-line one trails elem, the
// own-line ones are returned for whatever follows.
func (p *Parser) attachTrailing(elem *ast.Elem) []ast.Comment {
	trailing, own := p.takeComments()
	if trailing != nil {
		if elem.Trailing == nil {
			elem.Trailing = trailing
		} else {
			own = append([]ast.Comment{*trailing}, own...)
		}
	}
	return own
}

func (p *Parser) notTest() (ast.ExprID, error) {
	if !p.atKeyword("not") {
		return p.chain(ast.PrecCompare)
	}
	return p.unary(p.notTest)
}

// unary parses a prefix operator applied to the operand parsed by next.
func (p *Parser) unary(next func() (ast.ExprID, error)) (ast.ExprID, error) {
	tok := p.advance()
	if err := p.enter(); err != nil {
		return ast.NoExprID, err
	}
	defer p.leave()
	operand, err := next()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewUnary(p.spanFrom(tok.Span), tok.Text, operand), nil
}

func (p *Parser) factor() (ast.ExprID, error) {
	if p.atOp("-") || p.atOp("+") || p.atOp("~") {
		return p.unary(p.factor)
	}
	return p.power()
}

// power parses `a ** b ** c` as one right-associative chain. An operand
// written with a unary sign swallows the rest: a ** -b ** c.
func (p *Parser) power() (ast.ExprID, error) {
	start := p.peek().Span
	first, err := p.awaitPrimary()
	if err != nil || !p.atOp("**") {
		return first, err
	}
	operands := []ast.Elem{{Value: first}}
	var ops []string
	for p.atOp("**") {
		p.advance()
		lead := p.attachTrailing(&operands[len(operands)-1])
		signed := p.atOp("-") || p.atOp("+") || p.atOp("~")
		var next ast.ExprID
		if signed {
			next, err = p.factor()
		} else {
			next, err = p.awaitPrimary()
		}
		if err != nil {
			return ast.NoExprID, err
		}
		ops = append(ops, "**")
		operands = append(operands, ast.Elem{Value: next, Leading: lead})
		if signed {
			break
		}
	}
	return p.b.Exprs.NewChain(p.spanFrom(start), ast.PrecPower, ops, operands), nil
}

func (p *Parser) awaitPrimary() (ast.ExprID, error) {
	if p.atKeyword("await") {
		return p.unary(p.primary)
	}
	return p.primary()
}

// primary parses an atom followed by attribute, call and subscript trailers.
func (p *Parser) primary() (ast.ExprID, error) {
	start := p.peek().Span
	x, err := p.atom()
	if err != nil {
		return ast.NoExprID, err
	}
	// every trailer nests the tree one level deeper
	trailers := 0
	defer func() { p.depth -= trailers }()
	for {
		if p.atOp(".") || p.atOp("(") || p.atOp("[") {
			trailers++
			if err := p.enter(); err != nil {
				return ast.NoExprID, err
			}
		}
		switch {
		case p.atOp("."):
			p.advance()
			name, err := p.expectName()
			if err != nil {
				return ast.NoExprID, err
			}
			x = p.b.Exprs.NewAttr(p.spanFrom(start), x, name.Text)
		case p.atOp("("):
			open := p.advance()
			args, err := p.callArgs(open)
			if err != nil {
				return ast.NoExprID, err
			}
			x = p.b.Exprs.NewApply(ast.ExprCall, p.spanFrom(start), x, args)
		case p.atOp("["):
			open := p.advance()
			if err := p.enter(); err != nil {
				return ast.NoExprID, err
			}
			items, err := p.list(open, "]", p.subscriptItem)
			p.leave()
			if err != nil {
				return ast.NoExprID, err
			}
			x = p.b.Exprs.NewApply(ast.ExprSubscript, p.spanFrom(start), x, items)
		default:
			return x, nil
		}
	}
}

func (p *Parser) atom() (ast.ExprID, error) {
	tok := p.peek()
	ex := p.b.Exprs
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return ex.NewLeaf(ast.ExprName, tok.Span, tok.Text), nil
	case token.Number:
		p.advance()
		return ex.NewLeaf(ast.ExprNumber, tok.Span, tok.Text), nil
	case token.ShellFragment:
		p.advance()
		return ex.NewLeaf(ast.ExprShell, tok.Span, tok.Text), nil
	case token.String:
		return p.strings()
	case token.Keyword:
		switch tok.Text {
		case "None", "True", "False":
			p.advance()
			return ex.NewLeaf(ast.ExprConst, tok.Span, tok.Text), nil
		}
	case token.Op:
		switch tok.Text {
		case "...":
			p.advance()
			return ex.NewLeaf(ast.ExprEllipsis, tok.Span, tok.Text), nil
		case "(", "[", "{":
			if err := p.enter(); err != nil {
				return ast.NoExprID, err
			}
			defer p.leave()
			return p.collection()
		}
	}
	return ast.NoExprID, p.errorf(diag.SynExpectExpression, "expected expression, found %s", describe(tok))
}

// strings joins adjacent string literals into one implicit concatenation.
func (p *Parser) strings() (ast.ExprID, error) {
	start := p.peek().Span
	var parts []ast.StringPart
	for p.at(token.String) {
		tok := p.advance()
		parts = append(parts, ast.StringPart{Text: tok.Text, Span: tok.Span})
	}
	return p.b.Exprs.NewString(p.spanFrom(start), parts), nil
}

// starOrNamed parses a list or tuple element: *x or a named expression.
func (p *Parser) starOrNamed() (ast.ExprID, error) {
	if p.atOp("*") {
		return p.unary(p.bitOr)
	}
	x, err := p.namedExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.patternAs(x)
}

// patternAs wraps x in an 'as' capture while parsing case patterns.
func (p *Parser) patternAs(x ast.ExprID) (ast.ExprID, error) {
	if !p.pattern || !p.atKeyword("as") {
		return x, nil
	}
	p.advance()
	name, err := p.expectName()
	if err != nil {
		return ast.NoExprID, err
	}
	right := p.b.Exprs.NewLeaf(ast.ExprName, name.Span, name.Text)
	return p.b.Exprs.NewPair(ast.ExprAs, p.b.Exprs.Get(x).Span.Cover(name.Span), x, right, ""), nil
}

func (p *Parser) bitOr() (ast.ExprID, error) {
	return p.chain(ast.PrecBitOr)
}

// starOrTest parses an element of an unparenthesized expression list.
func (p *Parser) starOrTest() (ast.ExprID, error) {
	if p.atOp("*") {
		return p.unary(p.bitOr)
	}
	return p.test()
}

// starTarget parses an element of a for-loop or del target list.
func (p *Parser) starTarget() (ast.ExprID, error) {
	if p.atOp("*") {
		return p.unary(p.bitOr)
	}
	return p.bitOr()
}

// canStartExpr reports whether tok can begin an expression.
func canStartExpr(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.Number, token.String, token.ShellFragment:
		return true
	case token.Keyword:
		switch tok.Text {
		case "None", "True", "False", "not", "lambda", "await":
			return true
		}
	case token.Op:
		switch tok.Text {
		case "(", "[", "{", "-", "+", "~", "*", "...":
			return true
		}
	}
	return false
}

// exprList parses item (',' item)* [','] as a bare tuple when a comma is
// present.
func (p *Parser) exprList(item func() (ast.ExprID, error)) (ast.ExprID, error) {
	start := p.peek().Span
	first, err := item()
	if err != nil || !p.atOp(",") {
		return first, err
	}
	b := ast.Bracket{Elems: []ast.Elem{{Value: first}}}
	for p.atOp(",") {
		p.advance()
		if !canStartExpr(p.peek()) {
			b.TrailingComma = true
			break
		}
		next, err := item()
		if err != nil {
			return ast.NoExprID, err
		}
		b.Elems = append(b.Elems, ast.Elem{Value: next})
	}
	return p.b.Exprs.NewList(ast.ExprTuple, p.spanFrom(start), b), nil
}

// starExprs parses the right-hand side of a statement, including yield.
func (p *Parser) starExprs() (ast.ExprID, error) {
	if p.atKeyword("yield") {
		return p.yield()
	}
	return p.exprList(p.starOrTest)
}

func (p *Parser) yield() (ast.ExprID, error) {
	tok := p.advance()
	if p.atKeyword("from") {
		p.advance()
		value, err := p.test()
		if err != nil {
			return ast.NoExprID, err
		}
		return p.b.Exprs.NewUnary(p.spanFrom(tok.Span), "yield from", value), nil
	}
	value := ast.NoExprID
	if canStartExpr(p.peek()) {
		var err error
		if value, err = p.exprList(p.starOrTest); err != nil {
			return ast.NoExprID, err
		}
	}
	return p.b.Exprs.NewUnary(p.spanFrom(tok.Span), "yield", value), nil
}
