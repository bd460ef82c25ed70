package driver

import (
	"fortio.org/safecast"

	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/lexer"
	"coral/internal/parser"
	"coral/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse loads path and parses it with error recovery, up to maxDiagnostics
// errors.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.HintsFor(len(file.Content)))

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	result := parser.ParseFile(file, toks, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  result.File,
		Bag:     bag,
	}, nil
}
