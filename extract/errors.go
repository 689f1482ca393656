package extract

import "fmt"

// SyntaxError reports source that could not be parsed.
type SyntaxError struct {
	Path   string
	Line   int
	Column int
	// Snippet is the offending source text, truncated.
	Snippet string
}

func (e *SyntaxError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("%s:%d:%d: syntax error", e.Path, e.Line, e.Column)
	}
	return fmt.Sprintf("%s:%d:%d: syntax error near %q", e.Path, e.Line, e.Column, e.Snippet)
}

// TransformError reports source the Transformer rejected.
type TransformError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *TransformError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: transform failed: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: transform failed: %s", e.Path, e.Line, e.Column, e.Message)
}
