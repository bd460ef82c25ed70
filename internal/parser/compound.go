package parser

import (
	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/token"
)

// headerParser parses the part of a clause header between its keyword and
// the colon.
type headerParser func(cl *ast.Clause) error

// compound parses a (possibly decorated) compound statement and all of its
// continuation clauses.
func (p *Parser) compound() (ast.StmtID, error) {
	start := p.peek().Span
	var data ast.StmtCompoundData
	for p.atOp("@") {
		var d ast.Decorator
		if len(data.Decorators) > 0 {
			d.Leading = p.ownComments()
			d.Blank = p.peek().Blank
		}
		at := p.advance()
		v, err := p.namedExpr()
		if err != nil {
			return ast.NoStmtID, err
		}
		d.Value = v
		d.Span = p.spanFrom(at.Span)
		if d.Trailing, err = p.endLine(); err != nil {
			return ast.NoStmtID, err
		}
		data.Decorators = append(data.Decorators, d)
	}

	var lead []ast.Comment
	blank := 0
	kw := p.peek().Text
	if p.atKeyword("async") {
		kw = p.peekN(1).Text
	}
	if len(data.Decorators) > 0 {
		lead = p.ownComments()
		blank = p.peek().Blank
		if kw != "def" && kw != "class" {
			return ast.NoStmtID, p.errorf(diag.SynBadDecorator, "expected 'def' or 'class' after decorator, found %s", describe(p.peek()))
		}
	}

	var err error
	switch kw {
	case "if":
		data.Clauses, err = p.clauses(p.testHeader, "elif", p.testHeader, "else")
	case "while":
		data.Clauses, err = p.clauses(p.testHeader, "", nil, "else")
	case "for":
		data.Clauses, err = p.clauses(p.forHeader, "", nil, "else")
	case "try":
		data.Clauses, err = p.tryStatement()
	case "with":
		data.Clauses, err = p.clauses(p.withHeader, "", nil, "")
	case "def":
		data.Clauses, err = p.clauses(p.defHeader, "", nil, "")
	case "class":
		data.Clauses, err = p.clauses(p.classHeader, "", nil, "")
	default:
		err = p.errorf(diag.SynUnexpectedToken, "unexpected %s", describe(p.peek()))
	}
	if err != nil {
		return ast.NoStmtID, err
	}
	data.Clauses[0].Leading = lead
	data.Clauses[0].Blank = blank
	return p.b.Stmts.NewCompound(p.spanFrom(start), data), nil
}

// clauses parses a leading clause, any number of repeat clauses (elif) and
// an optional final clause (else).
func (p *Parser) clauses(first headerParser, repeat string, next headerParser, final string) ([]ast.Clause, error) {
	cl, err := p.clause(first)
	if err != nil {
		return nil, err
	}
	out := []ast.Clause{cl}
	for repeat != "" && p.atKeyword(repeat) {
		if cl, err = p.continuation(next); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	if final != "" && p.atKeyword(final) {
		if cl, err = p.continuation(noHeader); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, nil
}

func (p *Parser) tryStatement() ([]ast.Clause, error) {
	cl, err := p.clause(noHeader)
	if err != nil {
		return nil, err
	}
	out := []ast.Clause{cl}
	handlers := 0
	for p.atKeyword("except") {
		if cl, err = p.continuation(p.exceptHeader); err != nil {
			return nil, err
		}
		out = append(out, cl)
		handlers++
	}
	if handlers > 0 && p.atKeyword("else") {
		if cl, err = p.continuation(noHeader); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	if p.atKeyword("finally") {
		if cl, err = p.continuation(noHeader); err != nil {
			return nil, err
		}
		out = append(out, cl)
	} else if handlers == 0 {
		return nil, p.errorf(diag.SynUnexpectedToken, "expected 'except' or 'finally', found %s", describe(p.peek()))
	}
	return out, nil
}

// continuation parses a clause that follows another, claiming the comments
// between them.
func (p *Parser) continuation(header headerParser) (ast.Clause, error) {
	lead := p.ownComments()
	cl, err := p.clause(header)
	cl.Leading = lead
	return cl, err
}

// clause parses `[async] keyword header ':' suite`.
func (p *Parser) clause(header headerParser) (ast.Clause, error) {
	start := p.peek()
	cl := ast.Clause{Blank: start.Blank}
	cl.Async = p.eatKeyword("async")
	cl.Keyword = p.advance().Text
	if err := header(&cl); err != nil {
		return cl, err
	}
	if _, err := p.expectOp(":", diag.SynExpectColon); err != nil {
		return cl, err
	}
	cl.Span = p.spanFrom(start.Span)
	var err error
	cl.Trailing, cl.Body, err = p.suite()
	return cl, err
}

func noHeader(*ast.Clause) error { return nil }

func (p *Parser) testHeader(cl *ast.Clause) (err error) {
	cl.Test, err = p.namedExpr()
	return err
}

func (p *Parser) forHeader(cl *ast.Clause) (err error) {
	if cl.Target, err = p.exprList(p.starTarget); err != nil {
		return err
	}
	if _, err = p.expectKeyword("in"); err != nil {
		return err
	}
	cl.Test, err = p.exprList(p.starOrTest)
	return err
}

func (p *Parser) exceptHeader(cl *ast.Clause) (err error) {
	if p.eatOp("*") {
		cl.Keyword = "except*"
	}
	if p.atOp(":") {
		return nil
	}
	if cl.Test, err = p.exprList(p.test); err != nil {
		return err
	}
	if p.eatKeyword("as") {
		name, err := p.expectName()
		if err != nil {
			return err
		}
		cl.Name = name.Text
	}
	return nil
}

func (p *Parser) withHeader(cl *ast.Clause) (err error) {
	cl.Test, err = p.withItems()
	return err
}

// withItems parses the items of a with statement. A parenthesized item list
// is only recognized when the closing parenthesis is followed by the colon;
// otherwise the parenthesis belongs to the first item.
func (p *Parser) withItems() (ast.ExprID, error) {
	if p.atOp("(") {
		m := p.save()
		open := p.advance()
		b, err := p.list(open, ")", p.withItem)
		if err == nil && p.atOp(":") {
			return p.b.Exprs.NewList(ast.ExprWithItems, p.spanFrom(open.Span), b), nil
		}
		if isTooDeep(err) {
			return ast.NoExprID, err
		}
		p.reset(m)
	}
	start := p.peek().Span
	var b ast.Bracket
	for {
		x, err := p.withItem()
		if err != nil {
			return ast.NoExprID, err
		}
		b.Elems = append(b.Elems, ast.Elem{Value: x})
		if !p.eatOp(",") {
			break
		}
	}
	return p.b.Exprs.NewList(ast.ExprWithItems, p.spanFrom(start), b), nil
}

func (p *Parser) withItem() (ast.ExprID, error) {
	x, err := p.test()
	if err != nil || !p.atKeyword("as") {
		return x, err
	}
	p.advance()
	target, err := p.starTarget()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewPair(ast.ExprAs, p.b.Exprs.Get(x).Span.Cover(p.last.Span), x, target, ""), nil
}

func (p *Parser) defHeader(cl *ast.Clause) error {
	name, err := p.expectName()
	if err != nil {
		return err
	}
	cl.Name = name.Text
	if p.atOp("[") {
		return p.errorf(diag.SynUnexpectedToken, "type parameter lists are not supported")
	}
	open, err := p.expectOp("(", diag.SynUnexpectedToken)
	if err != nil {
		return err
	}
	if cl.Params, err = p.params(open, ")", true); err != nil {
		return err
	}
	if p.eatOp("->") {
		cl.Returns, err = p.test()
	}
	return err
}

func (p *Parser) classHeader(cl *ast.Clause) error {
	name, err := p.expectName()
	if err != nil {
		return err
	}
	cl.Name = name.Text
	if p.atOp("[") {
		return p.errorf(diag.SynUnexpectedToken, "type parameter lists are not supported")
	}
	if !p.atOp("(") {
		return nil
	}
	open := p.advance()
	b, err := p.list(open, ")", p.argument)
	if err != nil {
		return err
	}
	cl.Params = p.b.Exprs.NewList(ast.ExprArgs, p.spanFrom(open.Span), b)
	return nil
}

// suite parses the body after a clause colon: either simple statements on
// the same line or an indented block. The returned comment trails the header.
func (p *Parser) suite() (*ast.Comment, ast.Block, error) {
	if !p.at(token.Newline) {
		ids, err := p.simpleStatements()
		return nil, ast.Block{Stmts: ids}, err
	}
	trailing, err := p.endLine()
	if err != nil {
		return nil, ast.Block{}, err
	}
	if !p.at(token.Indent) {
		return nil, ast.Block{}, p.errorf(diag.SynExpectBlock, "expected an indented block, found %s", describe(p.peek()))
	}
	if err := p.enter(); err != nil {
		return nil, ast.Block{}, err
	}
	defer p.leave()
	p.advance()
	body := p.statements(token.Dedent)
	if p.at(token.Dedent) {
		p.advance()
	}
	return trailing, body, nil
}

// match tries to parse a match statement; ok is false when the line turned
// out not to be one and nothing was consumed.
func (p *Parser) match() (id ast.StmtID, ok bool, err error) {
	m := p.save()
	start := p.advance()
	subject, err := p.exprList(p.starOrNamed)
	if err != nil || !p.atOp(":") || p.peekN(1).Kind != token.Newline {
		if isTooDeep(err) {
			return ast.NoStmtID, true, err
		}
		p.reset(m)
		return ast.NoStmtID, false, nil
	}
	p.advance()
	cl := ast.Clause{Keyword: "match", Test: subject, Span: p.spanFrom(start.Span)}
	if cl.Trailing, err = p.endLine(); err != nil {
		return ast.NoStmtID, true, err
	}
	if !p.at(token.Indent) {
		return ast.NoStmtID, true, p.errorf(diag.SynExpectBlock, "expected an indented block, found %s", describe(p.peek()))
	}
	if err = p.enter(); err != nil {
		return ast.NoStmtID, true, err
	}
	defer p.leave()
	p.advance()
	for !p.at(token.Dedent) && !p.at(token.EOF) {
		lead := p.ownComments()
		tok := p.peek()
		if !tok.IsSoft("case") {
			return ast.NoStmtID, true, p.errorf(diag.SynUnexpectedToken, "expected 'case', found %s", describe(tok))
		}
		c, err := p.caseClause()
		if err != nil {
			return ast.NoStmtID, true, err
		}
		cid := p.b.Stmts.NewCompound(c.Span, ast.StmtCompoundData{Clauses: []ast.Clause{c}})
		st := p.b.Stmts.Get(cid)
		st.Leading = lead
		st.Blank = tok.Blank
		cl.Body.Stmts = append(cl.Body.Stmts, cid)
	}
	cl.Body.Dangling = p.ownComments()
	if p.at(token.Dedent) {
		p.advance()
	}
	return p.b.Stmts.NewCompound(p.spanFrom(start.Span), ast.StmtCompoundData{Clauses: []ast.Clause{cl}}), true, nil
}

func (p *Parser) caseClause() (ast.Clause, error) {
	start := p.advance()
	cl := ast.Clause{Keyword: "case"}
	saved := p.pattern
	p.pattern = true
	pat, err := p.exprList(p.patternItem)
	p.pattern = saved
	if err != nil {
		return cl, err
	}
	cl.Test = pat
	if p.eatKeyword("if") {
		if cl.Target, err = p.namedExpr(); err != nil {
			return cl, err
		}
	}
	if _, err = p.expectOp(":", diag.SynExpectColon); err != nil {
		return cl, err
	}
	cl.Span = p.spanFrom(start.Span)
	cl.Trailing, cl.Body, err = p.suite()
	return cl, err
}

// patternItem parses one element of an open sequence pattern.
func (p *Parser) patternItem() (ast.ExprID, error) {
	if p.atOp("*") {
		return p.unary(p.bitOr)
	}
	x, err := p.orTest()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.patternAs(x)
}
