package driver

import (
	"bytes"

	"coral/internal/ast"
	"coral/internal/format"
	"coral/internal/source"
)

// Verify checks that out, the formatting of file, parses back to an
// equivalent tree and is itself already formatted. Failures come back as
// *format.UnstableError.
func Verify(file *source.File, out []byte, opts format.Options) error {
	b1, f1, err := format.Parse(file)
	if err != nil {
		return &format.UnstableError{Reason: "input no longer parses", Err: err}
	}

	fs := source.NewFileSet()
	second := fs.Get(fs.AddRaw(file.Path, out))
	b2, f2, err := format.Parse(second)
	if err != nil {
		return &format.UnstableError{Reason: "output does not parse", Err: err}
	}
	if !ast.Equivalent(b1, f1, b2, f2) {
		return &format.UnstableError{Reason: "output parses to a different tree"}
	}

	again, err := format.File(second, opts)
	if err != nil {
		return &format.UnstableError{Reason: "output does not format", Err: err}
	}
	if !bytes.Equal(again, out) {
		return &format.UnstableError{Reason: "formatting the output changes it again"}
	}
	return nil
}
