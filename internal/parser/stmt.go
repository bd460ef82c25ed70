package parser

import (
	"strings"

	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/token"
)

// statements parses a block body until end (EOF or DEDENT). Errors are
// reported and parsing resumes at the next logical line.
func (p *Parser) statements(end token.Kind) ast.Block {
	var blk ast.Block
	for !p.at(end) && !p.at(token.EOF) {
		before := p.pos
		ids, err := p.statement()
		if err != nil {
			p.report(err)
			if isTooDeep(err) || p.opts.Enough() {
				p.abort()
				break
			}
			p.resync()
			if p.pos == before && !p.at(token.EOF) {
				p.pos++
				p.skipComments()
			}
			continue
		}
		blk.Stmts = append(blk.Stmts, ids...)
	}
	blk.Dangling = p.ownComments()
	return blk
}

// abort stops parsing: the rest of the input is skipped.
func (p *Parser) abort() {
	p.pos = len(p.toks) - 1
	p.pending = nil
}

// resync skips the rest of the logical line and any block indented under it.
func (p *Parser) resync() {
	p.pending = nil
	for !p.at(token.Newline) && !p.at(token.EOF) && !p.at(token.Dedent) {
		if p.at(token.Indent) {
			break
		}
		p.pos++
	}
	if p.at(token.Newline) {
		p.pos++
	}
	if p.at(token.Indent) {
		depth := 0
		for !p.at(token.EOF) {
			switch p.peek().Kind {
			case token.Indent:
				depth++
			case token.Dedent:
				depth--
			}
			p.pos++
			if depth == 0 {
				break
			}
		}
	}
	p.skipComments()
}

// statement parses one statement line (several when joined by semicolons)
// or one compound statement, with the comments and blank lines above it.
func (p *Parser) statement() ([]ast.StmtID, error) {
	lead := p.ownComments()
	tok := p.peek()
	blank := tok.Blank

	var ids []ast.StmtID
	var err error
	switch {
	case tok.Kind == token.Indent:
		err = p.errorf(diag.SynUnexpectedToken, "unexpected indent")
	case tok.Kind == token.Keyword:
		switch tok.Text {
		case "if", "while", "for", "try", "with", "def", "class":
			ids, err = p.one(p.compound())
		case "async":
			next := p.peekN(1)
			if next.IsKeyword("def") || next.IsKeyword("for") || next.IsKeyword("with") {
				ids, err = p.one(p.compound())
			} else {
				ids, err = p.simpleLine()
			}
		case "elif", "else", "except", "finally":
			err = p.errorf(diag.SynOrphanClause, "'%s' without a matching statement", tok.Text)
		default:
			ids, err = p.simpleLine()
		}
	case tok.IsOp("@"):
		ids, err = p.one(p.compound())
	case tok.IsSoft("match"):
		var id ast.StmtID
		var ok bool
		if id, ok, err = p.match(); ok || err != nil {
			ids = []ast.StmtID{id}
		} else {
			ids, err = p.simpleLine()
		}
	default:
		ids, err = p.simpleLine()
	}
	if err != nil {
		return nil, err
	}
	st := p.b.Stmts.Get(ids[0])
	st.Leading = lead
	st.Blank = blank
	return ids, nil
}

func (p *Parser) one(id ast.StmtID, err error) ([]ast.StmtID, error) {
	if err != nil {
		return nil, err
	}
	return []ast.StmtID{id}, nil
}

// simpleLine parses a line of simple statements. A line that does not parse
// as Python, or that reads like a command invocation, becomes one opaque
// shell statement.
func (p *Parser) simpleLine() ([]ast.StmtID, error) {
	m := p.save()
	if !p.looksLikeCommand() {
		ids, err := p.simpleStatements()
		if err == nil || !shellable(err) || !p.canBeShell(m) {
			return ids, err
		}
		p.reset(m)
	}
	id, err := p.shellLine()
	if err != nil {
		return nil, err
	}
	return []ast.StmtID{id}, nil
}

// shellable reports whether a failed parse may be retried as a shell line.
// Unbalanced brackets and runaway nesting are errors either way.
func shellable(err error) bool {
	se, ok := err.(*syntaxError)
	if !ok {
		return true
	}
	switch se.code {
	case diag.SynTooDeep, diag.SynUnclosedParen, diag.SynUnclosedBracket, diag.SynUnclosedBrace:
		return false
	}
	return true
}

// looksLikeCommand matches `name -flag`: a dash separated from the name but
// glued to what follows.
func (p *Parser) looksLikeCommand() bool {
	t0, t1, t2 := p.peekN(0), p.peekN(1), p.peekN(2)
	if t0.Kind != token.Ident || !t1.IsOp("-") {
		return false
	}
	if t1.Span.Start == t0.Span.End || t2.Span.Start != t1.Span.End {
		return false
	}
	return t2.Kind == token.Ident || t2.IsOp("-")
}

func (p *Parser) canBeShell(m mark) bool {
	tok := p.toks[m.pos]
	switch tok.Kind {
	case token.Ident, token.ShellFragment:
		return true
	case token.Op:
		return tok.Text == "/" || tok.Text == "." || tok.Text == "~"
	}
	return false
}

// shellLine turns the rest of the logical line into a StmtShell. A comment
// after the last token trails the statement.
func (p *Parser) shellLine() (ast.StmtID, error) {
	start := p.peek()
	end := start
	i := p.pos
	for p.toks[i].Kind != token.Newline && p.toks[i].Kind != token.EOF {
		if p.toks[i].Kind != token.Comment {
			end = p.toks[i]
		}
		i++
	}
	p.pending = nil
	for j := p.pos; j < i; j++ {
		if p.toks[j].Kind == token.Comment && p.toks[j].Span.Start >= end.Span.End {
			p.pending = append(p.pending, p.toks[j])
		}
	}
	p.pos = i
	p.last = end
	span := start.Span.Cover(end.Span)
	text := strings.TrimRight(p.file.Slice(span), " \t")
	trailing, err := p.endLine()
	if err != nil {
		return ast.NoStmtID, err
	}
	id := p.b.Stmts.NewShell(span, text)
	p.b.Stmts.Get(id).Trailing = trailing
	return id, nil
}

// simpleStatements parses `stmt (; stmt)* [;] NEWLINE`.
func (p *Parser) simpleStatements() ([]ast.StmtID, error) {
	var ids []ast.StmtID
	for {
		id, err := p.smallStatement()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		if !p.eatOp(";") || p.at(token.Newline) || p.at(token.EOF) {
			break
		}
	}
	trailing, err := p.endLine()
	if err != nil {
		return nil, err
	}
	p.b.Stmts.Get(ids[len(ids)-1]).Trailing = trailing
	return ids, nil
}

func (p *Parser) smallStatement() (ast.StmtID, error) {
	tok := p.peek()
	st := p.b.Stmts
	if tok.Kind == token.Keyword {
		switch tok.Text {
		case "pass", "break", "continue":
			p.advance()
			return st.NewKeyword(tok.Span, ast.StmtKeywordData{Keyword: tok.Text}), nil
		case "return", "del", "raise", "assert":
			return p.keywordStatement()
		case "global", "nonlocal":
			p.advance()
			var names []string
			for {
				name, err := p.expectName()
				if err != nil {
					return ast.NoStmtID, err
				}
				names = append(names, name.Text)
				if !p.eatOp(",") {
					break
				}
			}
			return st.NewKeyword(p.spanFrom(tok.Span), ast.StmtKeywordData{Keyword: tok.Text, Names: names}), nil
		case "import":
			return p.importStatement()
		case "from":
			return p.fromImport()
		}
	}
	if tok.IsSoft("type") && p.peekN(1).Kind == token.Ident && p.peekN(2).IsOp("=") {
		p.advance()
		name := p.advance()
		p.advance()
		value, err := p.test()
		if err != nil {
			return ast.NoStmtID, err
		}
		target := p.b.Exprs.NewLeaf(ast.ExprName, name.Span, name.Text)
		return st.NewAssign(p.spanFrom(tok.Span), ast.StmtAssignData{
			Keyword: "type", Targets: []ast.ExprID{target}, Op: "=", Value: value,
		}), nil
	}
	return p.exprStatement()
}

func (p *Parser) keywordStatement() (ast.StmtID, error) {
	tok := p.advance()
	data := ast.StmtKeywordData{Keyword: tok.Text}
	var err error
	switch tok.Text {
	case "return":
		if canStartExpr(p.peek()) {
			data.Value, err = p.exprList(p.starOrTest)
		}
	case "del":
		data.Value, err = p.exprList(p.starTarget)
	case "raise":
		if canStartExpr(p.peek()) {
			if data.Value, err = p.test(); err == nil && p.eatKeyword("from") {
				data.Extra, err = p.test()
			}
		}
	case "assert":
		if data.Value, err = p.test(); err == nil && p.eatOp(",") {
			data.Extra, err = p.test()
		}
	}
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewKeyword(p.spanFrom(tok.Span), data), nil
}

// exprStatement parses expression statements and every assignment form.
func (p *Parser) exprStatement() (ast.StmtID, error) {
	start := p.peek().Span
	first, err := p.starExprs()
	if err != nil {
		return ast.NoStmtID, err
	}
	st := p.b.Stmts
	tok := p.peek()
	switch {
	case tok.IsOp(":"):
		p.advance()
		ann, err := p.test()
		if err != nil {
			return ast.NoStmtID, err
		}
		data := ast.StmtAssignData{Targets: []ast.ExprID{first}, Annotation: ann}
		if p.eatOp("=") {
			data.Op = "="
			if data.Value, err = p.starExprs(); err != nil {
				return ast.NoStmtID, err
			}
		}
		return st.NewAssign(p.spanFrom(start), data), nil
	case tok.Kind == token.Op && token.IsAugAssign(tok.Text):
		p.advance()
		value, err := p.starExprs()
		if err != nil {
			return ast.NoStmtID, err
		}
		return st.NewAssign(p.spanFrom(start), ast.StmtAssignData{
			Targets: []ast.ExprID{first}, Op: tok.Text, Value: value,
		}), nil
	case tok.IsOp("="):
		targets := []ast.ExprID{first}
		var value ast.ExprID
		for p.eatOp("=") {
			v, err := p.starExprs()
			if err != nil {
				return ast.NoStmtID, err
			}
			if p.atOp("=") {
				targets = append(targets, v)
				continue
			}
			value = v
		}
		return st.NewAssign(p.spanFrom(start), ast.StmtAssignData{Targets: targets, Op: "=", Value: value}), nil
	}
	return st.NewExpr(p.spanFrom(start), first), nil
}

// dottedName parses a.b.c, returning its text.
func (p *Parser) dottedName() (token.Token, error) {
	first, err := p.expectName()
	if err != nil {
		return first, err
	}
	var sb strings.Builder
	sb.WriteString(first.Text)
	span := first.Span
	for p.atOp(".") {
		p.advance()
		next, err := p.expectName()
		if err != nil {
			return next, err
		}
		sb.WriteByte('.')
		sb.WriteString(next.Text)
		span = span.Cover(next.Span)
	}
	return token.Token{Kind: token.Ident, Span: span, Text: sb.String()}, nil
}

// importName parses `name [as alias]` where name may be dotted.
func (p *Parser) importName(dotted bool) (ast.ExprID, error) {
	var name token.Token
	var err error
	if dotted {
		name, err = p.dottedName()
	} else {
		name, err = p.expectName()
	}
	if err != nil {
		return ast.NoExprID, err
	}
	ex := p.b.Exprs
	x := ex.NewLeaf(ast.ExprName, name.Span, name.Text)
	if !p.eatKeyword("as") {
		return x, nil
	}
	alias, err := p.expectName()
	if err != nil {
		return ast.NoExprID, err
	}
	right := ex.NewLeaf(ast.ExprName, alias.Span, alias.Text)
	return ex.NewPair(ast.ExprAs, name.Span.Cover(alias.Span), x, right, ""), nil
}

func (p *Parser) importStatement() (ast.StmtID, error) {
	start := p.advance().Span
	namesStart := p.peek().Span
	var b ast.Bracket
	for {
		x, err := p.importName(true)
		if err != nil {
			return ast.NoStmtID, err
		}
		b.Elems = append(b.Elems, ast.Elem{Value: x})
		if !p.eatOp(",") {
			break
		}
	}
	names := p.b.Exprs.NewList(ast.ExprImports, p.spanFrom(namesStart), b)
	return p.b.Stmts.NewImport(p.spanFrom(start), ast.StmtImportData{Names: names}), nil
}

func (p *Parser) fromImport() (ast.StmtID, error) {
	start := p.advance().Span
	var module strings.Builder
	for p.atOp(".") || p.atOp("...") {
		module.WriteString(p.advance().Text)
	}
	if !p.atKeyword("import") {
		name, err := p.dottedName()
		if err != nil {
			return ast.NoStmtID, err
		}
		module.WriteString(name.Text)
	}
	if _, err := p.expectKeyword("import"); err != nil {
		return ast.NoStmtID, err
	}

	ex := p.b.Exprs
	var names ast.ExprID
	switch {
	case p.atOp("*"):
		star := p.advance()
		b := ast.Bracket{Elems: []ast.Elem{{Value: ex.NewLeaf(ast.ExprName, star.Span, "*")}}}
		names = ex.NewList(ast.ExprImports, star.Span, b)
	case p.atOp("("):
		open := p.advance()
		b, err := p.list(open, ")", func() (ast.ExprID, error) { return p.importName(false) })
		if err != nil {
			return ast.NoStmtID, err
		}
		names = ex.NewList(ast.ExprImports, p.spanFrom(open.Span), b)
	default:
		namesStart := p.peek().Span
		var b ast.Bracket
		for {
			x, err := p.importName(false)
			if err != nil {
				return ast.NoStmtID, err
			}
			b.Elems = append(b.Elems, ast.Elem{Value: x})
			if !p.eatOp(",") {
				break
			}
		}
		names = ex.NewList(ast.ExprImports, p.spanFrom(namesStart), b)
	}
	return p.b.Stmts.NewImport(p.spanFrom(start), ast.StmtImportData{
		From: true, Module: module.String(), Names: names,
	}), nil
}
