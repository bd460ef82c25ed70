package parser

import (
	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/token"
)

func toComment(tok token.Token) ast.Comment {
	return ast.Comment{Text: tok.Text, Span: tok.Span, Blank: tok.Blank}
}

// takeComments drains the pending comments. A first comment that shares a
// line with the code before it is returned as trailing; the rest are own-line
// comments in source order.
func (p *Parser) takeComments() (trailing *ast.Comment, own []ast.Comment) {
	for i, tok := range p.pending {
		c := toComment(tok)
		if i == 0 && !tok.OwnLine {
			trailing = &c
			continue
		}
		own = append(own, c)
	}
	p.pending = nil
	return trailing, own
}

// ownComments drains the pending comments as a run of own-line comments.
func (p *Parser) ownComments() []ast.Comment {
	if len(p.pending) == 0 {
		return nil
	}
	out := make([]ast.Comment, 0, len(p.pending))
	for _, tok := range p.pending {
		out = append(out, toComment(tok))
	}
	p.pending = nil
	return out
}

// endLine consumes the NEWLINE ending a statement or header and returns the
// comment that trailed it on the same line.
func (p *Parser) endLine() (*ast.Comment, error) {
	var trailing *ast.Comment
	if len(p.pending) > 0 && !p.pending[0].OwnLine {
		c := toComment(p.pending[0])
		trailing = &c
		p.pending = p.pending[1:]
	}
	switch {
	case p.at(token.Newline):
		p.advance()
	case p.at(token.EOF), p.at(token.Dedent):
	default:
		return nil, p.errorf(diag.SynExpectNewline, "expected end of line, found %s", describe(p.peek()))
	}
	return trailing, nil
}
