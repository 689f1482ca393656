package formatters

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/minipack/depgraph"
)

// dotFormatter formats asset graphs as Graphviz DOT.
type dotFormatter struct{}

// Format converts the asset graph to Graphviz DOT format. Nodes are asset ids,
// so a module discovered twice appears twice.
func (dotFormatter) Format(g *depgraph.Graph, opts RenderOptions) (string, error) {
	if err := validate(g); err != nil {
		return "", err
	}
	base := baseDir(g, opts)

	var sb strings.Builder
	sb.WriteString("digraph assets {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	for _, asset := range g.Assets {
		color := "white"
		if asset.ID == 0 {
			color = "lightblue"
		}
		sb.WriteString(fmt.Sprintf("  \"%d\" [label=%q, style=filled, fillcolor=%s];\n", asset.ID, nodeLabel(asset, base), color))
	}

	edges := assetEdges(g)
	if len(edges) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("  \"%d\" -> \"%d\" [label=%q];\n", e.from, e.to, e.specifier))
	}

	sb.WriteString("}")
	return sb.String(), nil
}

// GenerateURL creates a GraphvizOnline URL with the DOT graph embedded.
func (dotFormatter) GenerateURL(output string) (string, bool) {
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", url.PathEscape(output)), true
}
