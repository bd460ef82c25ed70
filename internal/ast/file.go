package ast

import (
	"coral/internal/source"
)

// File is the root of one parsed source file. Its span covers the whole
// input, so slicing the source with it reproduces the input exactly.
type File struct {
	Span source.Span
	Body Block
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: sp}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
