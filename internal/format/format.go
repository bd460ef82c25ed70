package format

import (
	"strings"

	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/lexer"
	"coral/internal/normalize"
	"coral/internal/parser"
	"coral/internal/source"
)

// DefaultLineWidth is the line budget used when Options.LineWidth is zero.
const DefaultLineWidth = 88

type Options struct {
	LineWidth int
	// TrailingNewline ends the output with a newline even when the input
	// did not end with one. The zero Options keeps a missing final newline
	// missing; DefaultOptions turns it on.
	TrailingNewline bool
	// Skip disables individual normalizer rules.
	Skip normalize.Rule
}

func DefaultOptions() Options {
	return Options{LineWidth: DefaultLineWidth, TrailingNewline: true}
}

func (o Options) withDefaults() Options {
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	return o
}

// Text formats one Python or xonsh source text. On error no text is
// returned; the error is a *LexError, *ParseError or
// *StructureTooDeepError.
func Text(src string, opts Options) (string, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddRaw("<input>", []byte(src)))
	return formatFile(file, opts)
}

// Check reports whether Text would change src.
func Check(src string, opts Options) (bool, error) {
	out, err := Text(src, opts)
	if err != nil {
		return false, err
	}
	return out != src, nil
}

// File formats a file that is already part of a file set.
func File(file *source.File, opts Options) ([]byte, error) {
	out, err := formatFile(file, opts)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func formatFile(file *source.File, opts Options) (string, error) {
	opts = opts.withDefaults()
	b, fid, err := Parse(file)
	if err != nil {
		return "", err
	}
	normalize.File(b, fid, normalize.Options{Skip: opts.Skip})
	out := Print(b, fid, opts.LineWidth)
	if !opts.TrailingNewline && file.Flags&source.FileMissingNewline != 0 {
		out = strings.TrimSuffix(out, "\n")
	}
	return out, nil
}

// Parse lexes and parses file, stopping at the first error.
func Parse(file *source.File) (*ast.Builder, ast.FileID, error) {
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	if d, ok := bag.First(); ok {
		return nil, ast.NoFileID, diagnosticError(file, d)
	}
	b := ast.NewBuilder(ast.HintsFor(len(file.Content)))
	res := parser.ParseFile(file, toks, b, parser.Options{Reporter: reporter, MaxErrors: 1})
	if d, ok := bag.First(); ok {
		return nil, ast.NoFileID, diagnosticError(file, d)
	}
	return b, res.File, nil
}

// Print renders a normalized tree within width columns.
func Print(b *ast.Builder, id ast.FileID, width int) string {
	f := b.Files.Get(id)
	if f == nil {
		return ""
	}
	p := printer{
		layout: newLayout(b, width),
		st:     b.Stmts,
		w:      NewWriter(int(f.Span.Len()) + 64),
	}
	p.block(&f.Body, 0)
	return string(p.w.Bytes())
}
