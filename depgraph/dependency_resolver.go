package depgraph

import (
	"path/filepath"
	"slices"

	"github.com/LegacyCodeHQ/minipack/extract"
)

// DefaultExtensions is the JavaScript resolution order used when extension
// probing is enabled without an explicit list.
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs"}

// ResolveSpecifier turns a local specifier into a file path: relative
// specifiers are joined against the importing file's directory, absolute
// ones are used verbatim. Bare specifiers report false.
func ResolveSpecifier(importerPath string, spec extract.Specifier) (string, bool) {
	if !spec.IsLocal() {
		return "", false
	}
	if spec.Kind == extract.KindAbsolute {
		return spec.Path, true
	}
	return filepath.Join(filepath.Dir(importerPath), spec.Path), true
}

// candidatePaths lists the files tried for a resolved path. Without
// extensions only the path itself is tried. With extensions, a path that
// already carries one of them is exact; otherwise path+ext, then
// path/index+ext, then the path itself are tried in order.
func candidatePaths(resolved string, extensions []string) []string {
	if len(extensions) == 0 || slices.Contains(extensions, filepath.Ext(resolved)) {
		return []string{resolved}
	}

	candidates := make([]string, 0, 2*len(extensions)+1)
	for _, ext := range extensions {
		candidates = append(candidates, resolved+ext)
	}
	for _, ext := range extensions {
		candidates = append(candidates, filepath.Join(resolved, "index"+ext))
	}
	return append(candidates, resolved)
}
