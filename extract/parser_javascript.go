package extract

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

const maxSnippetLength = 40

// ParseSpecifiers parses JavaScript/JSX source and returns one Specifier per
// top-level import statement (and re-export with a source), in source order.
func ParseSpecifiers(ctx context.Context, filePath string, sourceCode []byte) ([]Specifier, error) {
	// tree-sitter-javascript covers JSX as well.
	lang := javascript.GetLanguage()

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("parsing %s interrupted: %w", filePath, ctxErr)
		}
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxErrorAt(filePath, firstErrorNode(root), sourceCode)
	}

	return topLevelSpecifiers(root, sourceCode), nil
}

// topLevelSpecifiers walks the program's statements without descending into
// nested scopes, so dynamic import() and require() calls are not collected.
func topLevelSpecifiers(root *sitter.Node, sourceCode []byte) []Specifier {
	var specifiers []Specifier

	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt == nil {
			continue
		}

		switch stmt.Type() {
		case "import_statement", "export_statement":
		default:
			continue
		}

		source := stmt.ChildByFieldName("source")
		if source == nil {
			// export statement without a "from" clause
			continue
		}

		importPath := cleanImportPath(source.Content(sourceCode))
		if importPath == "" {
			continue
		}

		point := source.StartPoint()
		specifiers = append(specifiers, Specifier{
			Path:   importPath,
			Kind:   Classify(importPath),
			Line:   int(point.Row) + 1,
			Column: int(point.Column) + 1,
		})
	}

	return specifiers
}

// firstErrorNode returns the first ERROR or MISSING node in document order.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}

func syntaxErrorAt(filePath string, node *sitter.Node, sourceCode []byte) *SyntaxError {
	if node == nil {
		return &SyntaxError{Path: filePath, Line: 1, Column: 1}
	}

	point := node.StartPoint()
	snippet := strings.TrimSpace(node.Content(sourceCode))
	if idx := strings.IndexByte(snippet, '\n'); idx >= 0 {
		snippet = snippet[:idx]
	}
	if len(snippet) > maxSnippetLength {
		snippet = snippet[:maxSnippetLength]
	}

	return &SyntaxError{
		Path:    filePath,
		Line:    int(point.Row) + 1,
		Column:  int(point.Column) + 1,
		Snippet: snippet,
	}
}

// cleanImportPath removes quotes from import path strings
func cleanImportPath(raw string) string {
	cleaned := strings.Trim(raw, "'\"")
	return strings.TrimSpace(cleaned)
}
