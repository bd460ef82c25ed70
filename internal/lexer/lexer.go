package lexer

import (
	"fmt"

	"coral/internal/diag"
	"coral/internal/source"
	"coral/internal/token"
)

const tabSize = 8

// indentLevel is the width of a line's leading whitespace measured twice:
// with tabs expanded to multiples of eight and with tabs counted as one
// column. Both orderings must agree for indentation to be consistent.
type indentLevel struct {
	cols int
	tabs int
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	queue []token.Token // tokens of the current logical line
	head  int
	done  bool

	indents  []indentLevel
	brackets []token.Token // open brackets of the current logical line
	comments []token.Token // own-line comments waiting for the next code line
	blank    int           // blank lines seen since the last non-blank line
	pending  []diag.Diagnostic
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:    file,
		cursor:  NewCursor(file),
		opts:    opts,
		indents: []indentLevel{{}},
	}
}

// Tokenize lexes the whole file. The result always ends with EOF; lexical
// errors go to opts.Reporter.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	for lx.head >= len(lx.queue) {
		if lx.done {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}
		lx.queue = lx.queue[:0]
		lx.head = 0
		lx.fill()
		lx.flushDiags()
	}
	tok := lx.queue[lx.head]
	lx.head++
	return tok
}

// fill consumes blank and comment-only lines, then one logical line of code.
func (lx *Lexer) fill() {
	for {
		if lx.cursor.EOF() {
			lx.finish()
			return
		}
		level := lx.scanIndent()
		switch b := lx.cursor.Peek(); {
		case lx.cursor.EOF():
			// whitespace-only last line
		case b == '\n':
			lx.cursor.Bump()
			lx.blank++
		case b == '#':
			tok := lx.scanComment()
			tok.OwnLine = true
			tok.Indent = level.cols
			tok.Blank = lx.blank
			lx.blank = 0
			lx.comments = append(lx.comments, tok)
			lx.cursor.Eat('\n')
		default:
			lx.indentTo(level)
			lx.scanLogicalLine(level.cols)
			return
		}
	}
}

func (lx *Lexer) finish() {
	lx.flushComments(0)
	at := lx.emptySpan()
	for len(lx.indents) > 1 {
		lx.popIndent(at)
	}
	lx.emit(token.Token{Kind: token.EOF, Span: at, Blank: lx.blank})
	lx.done = true
}

func (lx *Lexer) scanLogicalLine(indent int) {
	start := lx.cursor.Mark()
	lineIndent := indent
	queueMark, diagMark := len(lx.queue), len(lx.pending)
	blank := lx.blank
	lx.blank = 0
	firstOnLine := true

	for {
		lx.skipSpaces()
		if lx.cursor.EOF() {
			if n := len(lx.brackets); n > 0 {
				open := lx.brackets[n-1]
				lx.errLex(diag.LexUnclosedBracket, open.Span, fmt.Sprintf("'%s' was never closed", open.Text))
				lx.brackets = lx.brackets[:0]
			}
			lx.emit(token.Token{Kind: token.Newline, Span: lx.emptySpan(), Indent: lineIndent})
			return
		}

		switch b := lx.cursor.Peek(); b {
		case '\n':
			m := lx.cursor.Mark()
			lx.cursor.Bump()
			if len(lx.brackets) == 0 {
				lx.emit(token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(m), Indent: lineIndent})
				return
			}
			if firstOnLine {
				blank++
			}
			indent = lx.scanIndent().cols
			firstOnLine = true
			continue
		case '\\':
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				indent = lx.scanIndent().cols
				firstOnLine = false
				continue
			}
			if lx.cursor.Off+1 >= lx.cursor.limit() {
				m := lx.cursor.Mark()
				lx.cursor.Bump()
				lx.errLex(diag.LexBadContinuation, lx.cursor.SpanFrom(m), "unexpected end of file after line continuation")
				continue
			}
			lx.relexShell(start, queueMark, diagMark, lineIndent, blank)
			return
		case '#':
			tok := lx.scanComment()
			tok.Indent = indent
			tok.OwnLine = firstOnLine
			if firstOnLine {
				tok.Blank = blank
				blank = 0
			}
			firstOnLine = false
			lx.emit(tok)
			continue
		}

		tok, ok := lx.scanToken()
		if !ok {
			lx.relexShell(start, queueMark, diagMark, lineIndent, blank)
			return
		}
		tok.Indent = indent
		tok.OwnLine = firstOnLine
		if firstOnLine {
			tok.Blank = blank
			blank = 0
		}
		firstOnLine = false
		lx.trackBracket(tok)
		lx.emit(tok)
	}
}

// relexShell drops what was lexed of the current logical line and re-reads
// it as one opaque shell fragment.
func (lx *Lexer) relexShell(start Mark, queueMark, diagMark, indent, blank int) {
	lx.queue = lx.queue[:queueMark]
	lx.pending = lx.pending[:diagMark]
	lx.brackets = lx.brackets[:0]
	lx.cursor.Reset(start)

	frag := lx.scanShellLine()
	frag.Indent = indent
	frag.OwnLine = true
	frag.Blank = blank
	lx.emit(frag)

	lx.skipSpaces()
	if lx.cursor.Peek() == '#' {
		c := lx.scanComment()
		c.Indent = indent
		lx.emit(c)
	}
	m := lx.cursor.Mark()
	lx.cursor.Eat('\n')
	lx.emit(token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(m), Indent: indent})
}

func (lx *Lexer) trackBracket(tok token.Token) {
	switch {
	case tok.IsOpen():
		lx.brackets = append(lx.brackets, tok)
	case tok.IsClose():
		n := len(lx.brackets)
		if n == 0 {
			lx.errLex(diag.LexUnmatchedBracket, tok.Span, fmt.Sprintf("unmatched '%s'", tok.Text))
			return
		}
		open := lx.brackets[n-1]
		if token.Closer(open.Text) != tok.Text {
			d := diag.NewError(diag.LexUnmatchedBracket, tok.Span,
				fmt.Sprintf("closing parenthesis '%s' does not match opening parenthesis '%s'", tok.Text, open.Text))
			lx.pending = append(lx.pending, d.WithNote(open.Span, fmt.Sprintf("'%s' opened here", open.Text)))
		}
		lx.brackets = lx.brackets[:n-1]
	}
}

func (lx *Lexer) emit(tok token.Token) {
	lx.queue = append(lx.queue, tok)
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) skipSpaces() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\f':
			lx.cursor.Bump()
		default:
			return
		}
	}
}
