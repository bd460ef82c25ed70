package ast

import (
	"coral/internal/source"
)

type Hints struct{ Files, Stmts, Exprs uint }

type Builder struct {
	Files *Files
	Stmts *Stmts
	Exprs *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 10
	}
	return &Builder{
		Files: NewFiles(hints.Files),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

// HintsFor sizes the arenas from the length of the source.
func HintsFor(size int) Hints {
	if size <= 0 {
		return Hints{}
	}
	n := uint(size)
	return Hints{Files: 1, Stmts: n/24 + 16, Exprs: n/4 + 64}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

// Verbatim reproduces the source text of the file without any rewriting.
func (b *Builder) Verbatim(f *source.File, id FileID) string {
	file := b.Files.Get(id)
	if file == nil {
		return ""
	}
	return f.Slice(file.Span)
}
