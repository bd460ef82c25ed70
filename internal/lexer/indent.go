package lexer

import (
	"coral/internal/diag"
	"coral/internal/source"
	"coral/internal/token"
)

func (lx *Lexer) scanIndent() indentLevel {
	var lvl indentLevel
	for {
		switch lx.cursor.Peek() {
		case ' ':
			lvl.cols++
			lvl.tabs++
		case '\t':
			lvl.cols = (lvl.cols/tabSize + 1) * tabSize
			lvl.tabs++
		case '\f':
			lvl = indentLevel{}
		default:
			return lvl
		}
		lx.cursor.Bump()
	}
}

// indentTo emits INDENT/DEDENT tokens moving the block stack to level, with
// the buffered own-line comments placed between them.
func (lx *Lexer) indentTo(level indentLevel) {
	at := lx.emptySpan()
	top := lx.indents[len(lx.indents)-1]
	if level.cols > top.cols {
		if level.tabs <= top.tabs {
			lx.errLex(diag.LexInconsistentTabs, at, "inconsistent use of tabs and spaces in indentation")
		}
		lx.flushComments(top.cols)
		lx.indents = append(lx.indents, level)
		lx.emit(token.Token{Kind: token.Indent, Span: at, Indent: level.cols})
		return
	}

	lx.flushComments(level.cols)
	for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1].cols > level.cols {
		lx.popIndent(at)
	}
	top = lx.indents[len(lx.indents)-1]
	if top.cols != level.cols {
		lx.errLex(diag.LexBadDedent, at, "unindent does not match any outer indentation level")
		return
	}
	if top.tabs != level.tabs {
		lx.errLex(diag.LexInconsistentTabs, at, "inconsistent use of tabs and spaces in indentation")
	}
}

// flushComments emits buffered own-line comments. A comment indented less
// than the innermost block closes that block first, as long as target (the
// indentation of the following code) is shallower too.
func (lx *Lexer) flushComments(target int) {
	for _, c := range lx.comments {
		for len(lx.indents) > 1 {
			top := lx.indents[len(lx.indents)-1].cols
			if top <= c.Indent || top <= target {
				break
			}
			lx.popIndent(c.Span.Point())
		}
		lx.emit(c)
	}
	lx.comments = lx.comments[:0]
}

func (lx *Lexer) popIndent(at source.Span) {
	lx.indents = lx.indents[:len(lx.indents)-1]
	lx.emit(token.Token{Kind: token.Dedent, Span: at, Indent: lx.indents[len(lx.indents)-1].cols})
}
