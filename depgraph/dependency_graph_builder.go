// Package depgraph discovers the modules reachable from an entry file and
// arranges them into an id-addressed asset graph.
package depgraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/LegacyCodeHQ/minipack/extract"
	"github.com/LegacyCodeHQ/minipack/vcs"
)

// DefaultMaxAssets is the size bound used by DefaultOptions.
const DefaultMaxAssets = 10000

// ImportExtractor parses and transforms a single module.
type ImportExtractor interface {
	Extract(ctx context.Context, filePath string, sourceCode []byte) (extract.Result, error)
}

// Options tune a Builder. The zero value reproduces the plain algorithm:
// no path deduplication, no extension probing, no size bound.
type Options struct {
	Logger *log.Logger
	// DedupeByPath reuses the asset already built for a resolved path
	// instead of creating a new one for every import edge.
	DedupeByPath bool
	// Extensions enables extension and index-file probing for paths that
	// do not name one of these extensions.
	Extensions []string
	// MaxAssets aborts the build with ErrTooManyAssets once exceeded; zero disables it.
	MaxAssets int
}

// DefaultOptions returns the options the CLI starts from.
func DefaultOptions() Options {
	return Options{MaxAssets: DefaultMaxAssets}
}

// Builder builds asset graphs. It holds no per-build state and may be reused.
type Builder struct {
	extractor     ImportExtractor
	contentReader vcs.ContentReader
	opts          Options
}

// NewBuilder returns a Builder reading files through contentReader.
func NewBuilder(extractor ImportExtractor, contentReader vcs.ContentReader, opts Options) *Builder {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Builder{extractor: extractor, contentReader: contentReader, opts: opts}
}

// buildState is everything owned by a single Build call.
type buildState struct {
	*Builder
	graph  *Graph
	nextID int
	cycles *cycleGuard
	byPath map[string]*Asset
}

// Build discovers every module reachable from entryPath breadth-first,
// visiting each file's specifiers in source order. Any failure aborts the
// build and no graph is returned.
func (b *Builder) Build(ctx context.Context, entryPath string) (*Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.extractor == nil {
		return nil, fmt.Errorf("import extractor is required")
	}
	if b.contentReader == nil {
		return nil, fmt.Errorf("content reader is required")
	}

	absEntry, err := filepath.Abs(entryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", entryPath, err)
	}

	state := &buildState{
		Builder: b,
		graph:   &Graph{},
		cycles:  newCycleGuard(),
		byPath:  make(map[string]*Asset),
	}

	entrySource, err := state.read(absEntry, "")
	if err != nil {
		return nil, err
	}
	if err := state.cycles.addFile(absEntry); err != nil {
		return nil, err
	}
	entry, err := state.createAsset(ctx, absEntry, entrySource, NoImporter)
	if err != nil {
		return nil, err
	}

	queue := []*Asset{entry}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		asset := queue[0]
		queue = queue[1:]

		discovered, err := state.linkDependencies(ctx, asset)
		if err != nil {
			return nil, err
		}
		queue = append(queue, discovered...)
	}

	return state.graph, nil
}

// linkDependencies fills asset.Mapping and returns the assets it created.
func (s *buildState) linkDependencies(ctx context.Context, asset *Asset) ([]*Asset, error) {
	asset.Mapping = make(map[string]int)

	var discovered []*Asset
	for _, spec := range asset.Dependencies {
		resolved, ok := ResolveSpecifier(asset.FilePath, spec)
		if !ok {
			s.opts.Logger.Debug("skipping bare specifier", "specifier", spec.Path, "importer", asset.FilePath)
			continue
		}

		path, source, err := s.load(resolved, asset.FilePath)
		if err != nil {
			return nil, err
		}
		if err := s.cycles.addImport(asset.FilePath, path); err != nil {
			return nil, err
		}

		if existing, ok := s.byPath[path]; ok && s.opts.DedupeByPath {
			asset.Mapping[spec.Path] = existing.ID
			continue
		}

		child, err := s.createAsset(ctx, path, source, asset.ID)
		if err != nil {
			return nil, err
		}
		// A specifier repeated within one file maps to the last asset built for it.
		asset.Mapping[spec.Path] = child.ID
		discovered = append(discovered, child)
	}

	return discovered, nil
}

// createAsset extracts a module and appends it to the arena with the next id.
func (s *buildState) createAsset(ctx context.Context, path string, source []byte, importer int) (*Asset, error) {
	if s.opts.MaxAssets > 0 && s.nextID >= s.opts.MaxAssets {
		return nil, fmt.Errorf("%w: %s would be asset %d, limit is %d", ErrTooManyAssets, path, s.nextID+1, s.opts.MaxAssets)
	}

	result, err := s.extractor.Extract(ctx, path, source)
	if err != nil {
		// extractor errors already name the file
		return nil, err
	}

	asset := &Asset{
		ID:           s.nextID,
		FilePath:     path,
		Dependencies: result.Dependencies,
		Code:         result.Code,
		Importer:     importer,
	}
	s.nextID++
	s.graph.Assets = append(s.graph.Assets, asset)
	if _, seen := s.byPath[path]; !seen {
		s.byPath[path] = asset
	}

	s.opts.Logger.Debug("asset discovered", "id", asset.ID, "path", path, "dependencies", len(asset.Dependencies))
	return asset, nil
}

// load reads the first existing candidate for a resolved path.
func (s *buildState) load(resolved, importer string) (string, []byte, error) {
	candidates := candidatePaths(resolved, s.opts.Extensions)

	var lastErr error
	for _, candidate := range candidates {
		source, err := s.read(candidate, importer)
		if err == nil {
			return candidate, source, nil
		}
		lastErr = err
		if !errors.Is(err, fs.ErrNotExist) {
			break
		}
	}

	if len(candidates) > 1 && errors.Is(lastErr, fs.ErrNotExist) {
		// report the specifier's path rather than the last candidate tried
		return "", nil, &FileReadError{Path: resolved, Importer: importer, Err: fs.ErrNotExist}
	}
	return "", nil, lastErr
}

func (s *buildState) read(path, importer string) ([]byte, error) {
	source, err := s.contentReader(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Importer: importer, Err: err}
	}
	return source, nil
}
