package driver

import (
	"csmerge/internal/diag"
	"csmerge/internal/lexer"
	"csmerge/internal/source"
	"csmerge/internal/token"
)

// TokenizeResult is the token stream of one file, for `csmerge tokenize`.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path with the given conditional symbols.
func Tokenize(path string, maxDiagnostics int, symbols []string) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Symbols:  symbols,
	})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}
