package fuzztests

import (
	"errors"
	"testing"

	"coral/internal/ast"
	"coral/internal/format"
	"coral/internal/source"
)

// FuzzFormatRoundTrip formats every input the parser accepts and checks
// that the output parses to the same tree and formats to itself.
func FuzzFormatRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddRaw("fuzz.py", input))

		out, err := format.File(file, format.DefaultOptions())
		if err != nil {
			var (
				lexErr   *format.LexError
				parseErr *format.ParseError
				deepErr  *format.StructureTooDeepError
			)
			if !errors.As(err, &lexErr) && !errors.As(err, &parseErr) && !errors.As(err, &deepErr) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			return
		}

		b1, f1, err := format.Parse(file)
		if err != nil {
			t.Fatalf("input parsed once but not twice: %v", err)
		}
		outFile := fs.Get(fs.AddRaw("fuzz.out.py", out))
		b2, f2, err := format.Parse(outFile)
		if err != nil {
			t.Fatalf("output does not parse: %v\ninput: %q\noutput: %q", err, input, out)
		}
		if !ast.Equivalent(b1, f1, b2, f2) {
			t.Fatalf("output tree differs\ninput: %q\noutput: %q", input, out)
		}
		again, err := format.File(outFile, format.DefaultOptions())
		if err != nil {
			t.Fatalf("second pass failed: %v", err)
		}
		if string(again) != string(out) {
			t.Fatalf("formatting is not idempotent\nfirst:  %q\nsecond: %q", out, again)
		}
	})
}
