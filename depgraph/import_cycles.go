package depgraph

import (
	"errors"
	"fmt"
	"path/filepath"

	graphlib "github.com/dominikbraun/graph"
)

// cycleGuard tracks file-level import edges for one build. Assets are not
// deduplicated by path, so an import cycle would otherwise expand forever;
// the file graph refuses any edge that closes a cycle.
type cycleGuard struct {
	files graphlib.Graph[string, string]
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{
		files: graphlib.New(graphlib.StringHash, graphlib.Directed(), graphlib.PreventCycles()),
	}
}

func (c *cycleGuard) addFile(path string) error {
	path = filepath.Clean(path)
	if err := c.files.AddVertex(path); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to track %s: %w", path, err)
	}
	return nil
}

// addImport records that importer imports imported and returns a
// *CycleError when imported can already reach importer.
func (c *cycleGuard) addImport(importer, imported string) error {
	importer, imported = filepath.Clean(importer), filepath.Clean(imported)
	if err := c.addFile(importer); err != nil {
		return err
	}
	if err := c.addFile(imported); err != nil {
		return err
	}

	err := c.files.AddEdge(importer, imported)
	switch {
	case err == nil, errors.Is(err, graphlib.ErrEdgeAlreadyExists):
		return nil
	case errors.Is(err, graphlib.ErrEdgeCreatesCycle):
		return &CycleError{Cycle: c.cyclePath(importer, imported)}
	default:
		return fmt.Errorf("failed to track import %s -> %s: %w", importer, imported, err)
	}
}

// cyclePath returns imported -> ... -> importer -> imported.
func (c *cycleGuard) cyclePath(importer, imported string) []string {
	if importer == imported {
		return []string{importer, imported}
	}

	path, err := graphlib.ShortestPath(c.files, imported, importer)
	if err != nil || len(path) == 0 {
		return []string{imported, importer, imported}
	}
	return append(path, imported)
}
