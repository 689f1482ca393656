package depgraph

import (
	"fmt"

	"github.com/LegacyCodeHQ/minipack/extract"
)

// NoImporter is the Importer of the entry asset.
const NoImporter = -1

// Asset is one parsed module. Everything but Mapping is fixed at creation;
// Mapping is filled once, when the builder dequeues the asset.
type Asset struct {
	ID           int
	FilePath     string
	Dependencies []extract.Specifier
	Code         string
	// Mapping resolves a relative or absolute specifier to the id of the
	// asset created for it. Bare specifiers never appear here.
	Mapping map[string]int
	// Importer is the id of the asset whose specifier discovered this one.
	Importer int
}

// Graph is the ordered, append-only arena of assets produced by one build.
// Assets[i].ID == i and the entry is always Assets[0].
type Graph struct {
	Assets []*Asset
}

// Len returns the number of assets.
func (g *Graph) Len() int {
	return len(g.Assets)
}

// Entry returns the entry asset, or nil for an empty graph.
func (g *Graph) Entry() *Asset {
	if len(g.Assets) == 0 {
		return nil
	}
	return g.Assets[0]
}

// Asset looks up an asset by id.
func (g *Graph) Asset(id int) (*Asset, bool) {
	if id < 0 || id >= len(g.Assets) {
		return nil, false
	}
	return g.Assets[id], true
}

// Validate checks the arena invariants: ids match positions and every mapping
// entry is a local specifier pointing at an asset in this graph.
func (g *Graph) Validate() error {
	if len(g.Assets) == 0 {
		return fmt.Errorf("graph has no entry asset")
	}

	for i, asset := range g.Assets {
		if asset.ID != i {
			return fmt.Errorf("asset at index %d has id %d", i, asset.ID)
		}
		for specifier, id := range asset.Mapping {
			if extract.Classify(specifier) == extract.KindBare {
				return fmt.Errorf("asset %d maps bare specifier %q", asset.ID, specifier)
			}
			if _, ok := g.Asset(id); !ok {
				return fmt.Errorf("asset %d maps %q to unknown id %d", asset.ID, specifier, id)
			}
		}
	}
	return nil
}
