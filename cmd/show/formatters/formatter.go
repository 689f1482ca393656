// Package formatters renders asset graphs for the show command.
package formatters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/minipack/bundle"
	"github.com/LegacyCodeHQ/minipack/depgraph"
)

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatMermaid OutputFormat = "mermaid"
)

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

var supportedFormats = []OutputFormat{OutputFormatDOT, OutputFormatMermaid, OutputFormatJSON}

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(format string) (OutputFormat, bool) {
	for _, f := range supportedFormats {
		if strings.EqualFold(format, f.String()) {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats lists the accepted format names, comma-separated.
func SupportedFormats() string {
	names := make([]string, len(supportedFormats))
	for i, f := range supportedFormats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

// RenderOptions contains optional parameters for rendering asset graphs.
type RenderOptions struct {
	// Label is an optional title for the graph
	Label string
	// BaseDir is the directory node names are relative to. Defaults to the entry's directory.
	BaseDir string
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	Format(g *depgraph.Graph, opts RenderOptions) (string, error)
	// GenerateURL returns a link to an online viewer, or false if the format has none.
	GenerateURL(output string) (string, bool)
}

// NewFormatter creates a Formatter for the specified format type.
func NewFormatter(format string) (Formatter, error) {
	f, ok := ParseOutputFormat(format)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, SupportedFormats())
	}

	switch f {
	case OutputFormatDOT:
		return dotFormatter{}, nil
	case OutputFormatMermaid:
		return mermaidFormatter{}, nil
	default:
		return jsonFormatter{}, nil
	}
}

// edge is one import link between two assets, labeled by the specifier.
type edge struct {
	from, to  int
	specifier string
}

// assetEdges lists each asset's local specifiers once, in source order.
func assetEdges(g *depgraph.Graph) []edge {
	var edges []edge
	for _, asset := range g.Assets {
		seen := make(map[string]bool)
		for _, dep := range asset.Dependencies {
			to, ok := asset.Mapping[dep.Path]
			if !ok || seen[dep.Path] {
				continue
			}
			seen[dep.Path] = true
			edges = append(edges, edge{from: asset.ID, to: to, specifier: dep.Path})
		}
	}
	return edges
}

func baseDir(g *depgraph.Graph, opts RenderOptions) string {
	if opts.BaseDir != "" {
		return opts.BaseDir
	}
	return filepath.Dir(g.Entry().FilePath)
}

func relName(asset *depgraph.Asset, base string) string {
	return bundle.ModuleName(asset.FilePath, base)
}

func nodeLabel(asset *depgraph.Asset, base string) string {
	return fmt.Sprintf("[%d] %s", asset.ID, relName(asset, base))
}

func validate(g *depgraph.Graph) error {
	if g == nil {
		return fmt.Errorf("graph is required")
	}
	return g.Validate()
}
