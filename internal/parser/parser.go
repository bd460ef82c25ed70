package parser

import (
	"fmt"

	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/source"
	"coral/internal/token"
)

// DefaultMaxDepth bounds expression and block nesting.
const DefaultMaxDepth = 200

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// MaxDepth is the deepest nesting accepted before parsing stops with
	// SynTooDeep. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state for one file. It reads a fully lexed token slice so
// that speculative productions (match statements, parenthesized with items,
// the shell-line fallback) can rewind.
type Parser struct {
	file  *source.File
	toks  []token.Token
	pos   int
	b     *ast.Builder
	opts  Options
	depth int

	// pending collects comment tokens skipped by advance until a list or
	// statement boundary claims them.
	pending []token.Token
	// pattern enables 'as' inside brackets while parsing case patterns.
	pattern bool
	last    token.Token
}

// syntaxError is the failure of one production. It becomes a diagnostic
// once no enclosing production can recover from it.
type syntaxError struct {
	code diag.Code
	span source.Span
	msg  string
}

func (e *syntaxError) Error() string { return e.msg }

type mark struct {
	pos     int
	pending []token.Token
	depth   int
	last    token.Token
}

// ParseFile builds the tree for file from its tokens. Diagnostics go to
// opts.Reporter; the file node is returned even when errors were reported.
func ParseFile(file *source.File, toks []token.Token, b *ast.Builder, opts Options) Result {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	end := uint32(len(file.Content))
	p := Parser{
		file: file,
		toks: toks,
		b:    b,
		opts: opts,
	}
	if len(p.toks) == 0 || p.toks[len(p.toks)-1].Kind != token.EOF {
		p.toks = append(p.toks, token.Token{Kind: token.EOF, Span: source.Span{File: file.ID, Start: end, End: end}})
	}
	p.skipComments()

	id := b.NewFile(source.Span{File: file.ID, Start: 0, End: end})
	body := p.statements(token.EOF)
	b.Files.Get(id).Body = body

	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = br.Bag
	case *diag.BagReporter:
		bag = br.Bag
	}
	return Result{File: id, Bag: bag}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN looks n significant tokens ahead, skipping comments.
func (p *Parser) peekN(n int) token.Token {
	i := p.pos
	for {
		if p.toks[i].Kind == token.EOF {
			return p.toks[i]
		}
		if p.toks[i].Kind != token.Comment {
			if n == 0 {
				return p.toks[i]
			}
			n--
		}
		i++
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *Parser) atOp(op string) bool {
	return p.toks[p.pos].IsOp(op)
}

func (p *Parser) atKeyword(kw string) bool {
	return p.toks[p.pos].IsKeyword(kw)
}

// advance consumes the current token and any comments after it.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.last = tok
	}
	p.skipComments()
	return tok
}

func (p *Parser) skipComments() {
	for p.toks[p.pos].Kind == token.Comment {
		p.pending = append(p.pending, p.toks[p.pos])
		p.pos++
	}
}

func (p *Parser) save() mark {
	return mark{pos: p.pos, pending: p.pending, depth: p.depth, last: p.last}
}

func (p *Parser) reset(m mark) {
	p.pos, p.pending, p.depth, p.last = m.pos, m.pending, m.depth, m.last
}

func (p *Parser) eatOp(op string) bool {
	if p.atOp(op) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatKeyword(kw string) bool {
	if p.atKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectOp(op string, code diag.Code) (token.Token, error) {
	if p.atOp(op) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorf(code, "expected '%s', found %s", op, describe(p.peek()))
}

func (p *Parser) expectKeyword(kw string) (token.Token, error) {
	if p.atKeyword(kw) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorf(diag.SynUnexpectedToken, "expected '%s', found %s", kw, describe(p.peek()))
}

func (p *Parser) expectName() (token.Token, error) {
	if p.at(token.Ident) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorf(diag.SynExpectIdentifier, "expected identifier, found %s", describe(p.peek()))
}

func (p *Parser) errorf(code diag.Code, format string, args ...any) error {
	return &syntaxError{code: code, span: p.errSpan(), msg: fmt.Sprintf(format, args...)}
}

// errSpan points at the current token, or just past the previous one when
// the current token is synthetic.
func (p *Parser) errSpan() source.Span {
	tok := p.peek()
	if tok.Span.Empty() && p.last.Kind != token.Invalid {
		return source.Span{File: p.last.Span.File, Start: p.last.Span.End, End: p.last.Span.End}
	}
	return tok.Span
}

func (p *Parser) report(err error) {
	se, ok := err.(*syntaxError)
	if !ok {
		se = &syntaxError{code: diag.SynUnexpectedToken, span: p.errSpan(), msg: err.Error()}
	}
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil && (p.opts.MaxErrors == 0 || p.opts.CurrentErrors <= p.opts.MaxErrors) {
		p.opts.Reporter.Report(se.code, diag.SevError, se.span, se.msg, nil)
	}
}

// enter guards recursion depth; every call must be paired with leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		return &syntaxError{
			code: diag.SynTooDeep,
			span: p.peek().Span,
			msg:  fmt.Sprintf("nesting exceeds the limit of %d levels", p.opts.MaxDepth),
		}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func isTooDeep(err error) bool {
	se, ok := err.(*syntaxError)
	return ok && se.code == diag.SynTooDeep
}

func (p *Parser) line(off uint32) uint32 {
	return p.file.Position(off).Line
}

func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.last.Span)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indent"
	case token.Dedent:
		return "dedent"
	default:
		return fmt.Sprintf("'%s'", tok.Text)
	}
}
