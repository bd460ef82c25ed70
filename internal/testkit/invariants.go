// Package testkit holds structural checks shared by parser, format and fuzz
// tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"coral/internal/ast"
	"coral/internal/source"
)

// CheckSpanInvariants checks the spans of a parsed file:
// 1) the file span covers the whole content, so the tree is lossless
// 2) every statement span is non-empty and inside the file span
// 3) sibling statements start in source order
// 4) nested statements start after their parent does
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	if f.Span.Start != 0 || f.Span.End != size {
		return fmt.Errorf("file span %v does not cover content of %d bytes", f.Span, size)
	}
	if got := b.Verbatim(sf, fileID); got != string(sf.Content) {
		return fmt.Errorf("file span does not reproduce the input")
	}
	return checkBlock(b, &f.Body, f.Span, sf.ID)
}

func checkBlock(b *ast.Builder, blk *ast.Block, parent source.Span, file source.FileID) error {
	var prev *ast.Stmt
	for _, id := range blk.Stmts {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := st.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", st.Kind, sp)
		}
		if sp.File != file {
			return fmt.Errorf("statement span file mismatch: got=%d want=%d", sp.File, file)
		}
		if sp.Start < parent.Start || sp.End > parent.End {
			return fmt.Errorf("%s span %v is outside its parent %v", st.Kind, sp, parent)
		}
		if prev != nil && sp.Start <= prev.Span.Start {
			return fmt.Errorf("%s span %v starts before its sibling %v", st.Kind, sp, prev.Span)
		}
		prev = st
		for _, nested := range b.Stmts.Blocks(id) {
			// a clause body lies past the header but may reach past the
			// statement span when trailing comments are attached
			if err := checkBlock(b, nested, source.Span{File: file, Start: sp.Start, End: parent.End}, file); err != nil {
				return err
			}
		}
	}
	return nil
}
