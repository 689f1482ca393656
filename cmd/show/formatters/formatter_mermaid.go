package formatters

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/minipack/depgraph"
)

// mermaidFormatter formats asset graphs as Mermaid.js flowcharts.
type mermaidFormatter struct{}

// Format converts the asset graph to Mermaid.js flowchart format.
func (mermaidFormatter) Format(g *depgraph.Graph, opts RenderOptions) (string, error) {
	if err := validate(g); err != nil {
		return "", err
	}
	base := baseDir(g, opts)

	var sb strings.Builder
	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}
	sb.WriteString("flowchart LR\n")

	// Node ids can't contain dots, so assets are named n<id>.
	for _, asset := range g.Assets {
		sb.WriteString(fmt.Sprintf("  n%d[\"%s\"]\n", asset.ID, escapeMermaid(nodeLabel(asset, base))))
	}
	for _, e := range assetEdges(g) {
		sb.WriteString(fmt.Sprintf("  n%d -->|\"%s\"| n%d\n", e.from, escapeMermaid(e.specifier), e.to))
	}
	sb.WriteString("  style n0 fill:#ADD8E6")

	return sb.String(), nil
}

// GenerateURL creates a mermaid.live URL with the diagram embedded.
func (mermaidFormatter) GenerateURL(output string) (string, bool) {
	payload := map[string]interface{}{
		"code": output,
		"mermaid": map[string]interface{}{
			"theme": "default",
		},
		"autoSync":      true,
		"updateDiagram": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("https://mermaid.live/edit#%s", url.PathEscape(output)), true
	}

	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", base64.URLEncoding.EncodeToString(jsonBytes)), true
}

func escapeMermaid(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
