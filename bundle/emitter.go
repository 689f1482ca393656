// Package bundle serializes an asset graph into one self-contained program
// with an id-indexed module registry and a small require(id) loader.
package bundle

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/LegacyCodeHQ/minipack/depgraph"
)

//go:embed loader.js.tmpl
var loaderSource string

var loaderTemplate = template.Must(template.New("loader").Parse(loaderSource))

// Options control bundle emission.
type Options struct {
	// CacheInstances makes require(id) evaluate each module once and hand
	// out the same exports afterwards. Off by default: every require(id)
	// re-runs the module with a fresh exports object.
	CacheInstances bool
	// BaseDir is the directory module names are made relative to in error
	// messages. Defaults to the entry asset's directory.
	BaseDir string
}

type moduleEntry struct {
	ID      int
	Code    string
	Mapping string
	Name    string
}

type loaderData struct {
	CacheInstances bool
	Modules        []moduleEntry
}

// Emit renders the graph as a single program that bootstraps with require(0).
func Emit(g *depgraph.Graph, opts Options) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph is required")
	}
	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("invalid graph: %w", err)
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(g.Entry().FilePath)
	}

	data := loaderData{
		CacheInstances: opts.CacheInstances,
		Modules:        make([]moduleEntry, 0, g.Len()),
	}
	for _, asset := range g.Assets {
		entry, err := newModuleEntry(asset, baseDir)
		if err != nil {
			return "", err
		}
		data.Modules = append(data.Modules, entry)
	}

	var sb strings.Builder
	if err := loaderTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render bundle: %w", err)
	}
	return sb.String(), nil
}

func newModuleEntry(asset *depgraph.Asset, baseDir string) (moduleEntry, error) {
	mapping := asset.Mapping
	if mapping == nil {
		mapping = map[string]int{}
	}
	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return moduleEntry{}, fmt.Errorf("failed to encode mapping of %s: %w", asset.FilePath, err)
	}

	nameJSON, err := json.Marshal(ModuleName(asset.FilePath, baseDir))
	if err != nil {
		return moduleEntry{}, fmt.Errorf("failed to encode name of %s: %w", asset.FilePath, err)
	}

	return moduleEntry{
		ID: asset.ID,
		// The closing brace goes on its own line so a trailing line comment cannot swallow it.
		Code:    strings.TrimRight(stripHashbang(asset.Code), "\n"),
		Mapping: string(mappingJSON),
		Name:    string(nameJSON),
	}, nil
}

// stripHashbang drops a leading #! line, which is only legal at the very
// start of a script and not inside the module wrapper.
func stripHashbang(code string) string {
	if !strings.HasPrefix(code, "#!") {
		return code
	}
	if i := strings.IndexByte(code, '\n'); i >= 0 {
		return code[i+1:]
	}
	return ""
}

// ModuleName is the slash-separated path of filePath relative to baseDir.
func ModuleName(filePath, baseDir string) string {
	rel, err := filepath.Rel(baseDir, filePath)
	if err != nil {
		return filepath.ToSlash(filepath.Base(filePath))
	}
	return filepath.ToSlash(rel)
}
