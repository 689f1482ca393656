package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/minipack/depgraph"
)

// jsonFormatter formats asset graphs as JSON. Transformed code is omitted.
type jsonFormatter struct{}

type jsonGraph struct {
	Label  string      `json:"label,omitempty"`
	Assets []jsonAsset `json:"assets"`
}

type jsonAsset struct {
	ID           int              `json:"id"`
	File         string           `json:"file"`
	Importer     int              `json:"importer"`
	Mapping      map[string]int   `json:"mapping"`
	Dependencies []jsonDependency `json:"dependencies"`
}

type jsonDependency struct {
	Specifier string `json:"specifier"`
	Kind      string `json:"kind"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
}

// Format converts the asset graph to indented JSON.
func (jsonFormatter) Format(g *depgraph.Graph, opts RenderOptions) (string, error) {
	if err := validate(g); err != nil {
		return "", err
	}
	base := baseDir(g, opts)

	out := jsonGraph{Label: opts.Label, Assets: make([]jsonAsset, 0, g.Len())}
	for _, asset := range g.Assets {
		mapping := asset.Mapping
		if mapping == nil {
			mapping = map[string]int{}
		}
		deps := make([]jsonDependency, 0, len(asset.Dependencies))
		for _, dep := range asset.Dependencies {
			deps = append(deps, jsonDependency{
				Specifier: dep.Path,
				Kind:      dep.Kind.String(),
				Line:      dep.Line,
				Column:    dep.Column,
			})
		}
		out.Assets = append(out.Assets, jsonAsset{
			ID:           asset.ID,
			File:         relName(asset, base),
			Importer:     asset.Importer,
			Mapping:      mapping,
			Dependencies: deps,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GenerateURL returns false as JSON format does not support URL generation.
func (jsonFormatter) GenerateURL(string) (string, bool) {
	return "", false
}
