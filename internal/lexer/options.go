package lexer

import (
	"coral/internal/diag"
	"coral/internal/source"
)

type Options struct {
	Reporter diag.Reporter // may be nil: errors are dropped but lexing continues
}

// errLex queues a diagnostic for the logical line being scanned. Queued
// diagnostics are discarded when the line is re-read as a shell fragment.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.pending = append(lx.pending, diag.NewError(code, sp, msg))
}

func (lx *Lexer) flushDiags() {
	if lx.opts.Reporter != nil {
		for _, d := range lx.pending {
			lx.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	lx.pending = lx.pending[:0]
}
