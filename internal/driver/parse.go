package driver

import (
	"fortio.org/safecast"

	"csmerge/internal/ast"
	"csmerge/internal/diag"
	"csmerge/internal/lexer"
	"csmerge/internal/merge"
	"csmerge/internal/parser"
	"csmerge/internal/source"
)

// ParseResult is the structural tree of one file, for `csmerge parse`.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Unit    *ast.Unit
	Bag     *diag.Bag
}

// ParseOptions tune Parse.
type ParseOptions struct {
	MaxDiagnostics int
	Symbols        []string
	// Internalize applies the visibility rewrite to the parsed unit.
	Internalize bool
}

// Parse parses the file at path.
func Parse(filePath string, opts ParseOptions) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep, Symbols: opts.Symbols})
	result := parser.ParseFile(lx, parser.Options{Reporter: rep, MaxErrors: maxErrors})

	unit := result.Unit
	if opts.Internalize && !bag.HasErrors() {
		unit = merge.Internalize(unit)
	}
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Unit:    unit,
		Bag:     bag,
	}, nil
}
