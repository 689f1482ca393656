package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransformer struct {
	code  string
	err   error
	calls []string
}

func (s *stubTransformer) Transform(filePath string, _ []byte) (string, error) {
	s.calls = append(s.calls, filePath)
	return s.code, s.err
}

func TestExtract_ReturnsTransformedCodeAndSpecifiers(t *testing.T) {
	transformer := &stubTransformer{code: `var m = require("./math.js");`}
	extractor := New(transformer)

	result, err := extractor.Extract(context.Background(), "/project/entry.js",
		[]byte("import { add } from './math.js';\nimport chalk from 'chalk';\n"))

	require.NoError(t, err)
	assert.Equal(t, `var m = require("./math.js");`, result.Code)
	assert.Equal(t, []string{"./math.js", "chalk"}, extractPaths(result.Dependencies))
	assert.Equal(t, []string{"/project/entry.js"}, transformer.calls)
}

func TestExtract_SyntaxErrorSkipsTransformer(t *testing.T) {
	transformer := &stubTransformer{}
	extractor := New(transformer)

	_, err := extractor.Extract(context.Background(), "/project/broken.js", []byte("import { from;\n"))

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr), "expected *SyntaxError, got %v", err)
	assert.Empty(t, transformer.calls)
}

func TestExtract_WrapsPlainTransformerErrors(t *testing.T) {
	extractor := New(&stubTransformer{err: errors.New("unsupported syntax")})

	_, err := extractor.Extract(context.Background(), "/project/entry.js", []byte("export const a = 1;\n"))

	var transformErr *TransformError
	require.True(t, errors.As(err, &transformErr), "expected *TransformError, got %v", err)
	assert.Equal(t, "/project/entry.js", transformErr.Path)
	assert.Equal(t, "/project/entry.js: transform failed: unsupported syntax", err.Error())
}

func TestExtract_PassesTransformErrorThrough(t *testing.T) {
	original := &TransformError{Path: "/project/entry.js", Line: 2, Column: 5, Message: "boom"}
	extractor := New(&stubTransformer{err: original})

	_, err := extractor.Extract(context.Background(), "/project/entry.js", []byte("export const a = 1;\n"))

	assert.Same(t, original, err)
}

func TestExtract_RequiresTransformer(t *testing.T) {
	_, err := New(nil).Extract(context.Background(), "/project/entry.js", []byte(""))

	require.Error(t, err)
}
