// Package extract turns one JavaScript module into executable code plus the
// ordered list of import specifiers it depends on.
package extract

import (
	"context"
	"errors"
	"fmt"
)

// Transformer lowers ES module source into code that runs when invoked with
// (require, module, exports) and contains no import/export syntax.
type Transformer interface {
	Transform(filePath string, sourceCode []byte) (string, error)
}

// Result is the output of extracting a single module.
type Result struct {
	Code         string
	Dependencies []Specifier
}

// Extractor parses a module's imports with tree-sitter and delegates code
// generation to a Transformer.
type Extractor struct {
	transformer Transformer
}

// New returns an Extractor that lowers modules with transformer.
func New(transformer Transformer) *Extractor {
	return &Extractor{transformer: transformer}
}

// Extract parses sourceCode, records its specifiers in source order, and
// transforms it. Parse failures are *SyntaxError; transform failures are
// *TransformError.
func (e *Extractor) Extract(ctx context.Context, filePath string, sourceCode []byte) (Result, error) {
	if e.transformer == nil {
		return Result{}, fmt.Errorf("transformer is required")
	}

	specifiers, err := ParseSpecifiers(ctx, filePath, sourceCode)
	if err != nil {
		return Result{}, err
	}

	code, err := e.transformer.Transform(filePath, sourceCode)
	if err != nil {
		var transformErr *TransformError
		if errors.As(err, &transformErr) {
			return Result{}, err
		}
		return Result{}, &TransformError{Path: filePath, Message: err.Error()}
	}

	return Result{Code: code, Dependencies: specifiers}, nil
}
