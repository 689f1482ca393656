package build

import (
	"context"
	"fmt"

	"github.com/LegacyCodeHQ/minipack/bundle"
	"github.com/LegacyCodeHQ/minipack/depgraph"
	"github.com/LegacyCodeHQ/minipack/extract"
	"github.com/LegacyCodeHQ/minipack/extract/transform"
	"github.com/LegacyCodeHQ/minipack/internal/logging"
	"github.com/LegacyCodeHQ/minipack/vcs"
	"github.com/LegacyCodeHQ/minipack/vcs/git"
)

// Result is the outcome of building an entry.
type Result struct {
	EntryPath string
	BaseDir   string
	Graph     *depgraph.Graph
	// Program is the emitted bundle. Only Bundle sets it.
	Program string
}

// Graph resolves entry and builds its asset graph.
func Graph(ctx context.Context, entry string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	resolver, err := NewPathResolver(opts.RepoPath, opts.AllowOutside)
	if err != nil {
		return nil, fmt.Errorf("failed to create path resolver: %w", err)
	}
	entryPath, err := resolver.Resolve(RawPath(entry))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entry: %w", err)
	}

	contentReader, err := selectContentReader(ctx, resolver.BaseDir(), opts.CommitID)
	if err != nil {
		return nil, err
	}

	builder := depgraph.NewBuilder(
		extract.New(transform.NewESBuild()),
		contentReader,
		depgraph.Options{
			Logger:       logging.FromContext(ctx),
			DedupeByPath: opts.Dedupe,
			Extensions:   opts.Extensions,
			MaxAssets:    opts.MaxAssets,
		},
	)
	graph, err := builder.Build(ctx, entryPath.String())
	if err != nil {
		return nil, err
	}

	return &Result{
		EntryPath: entryPath.String(),
		BaseDir:   resolver.BaseDir(),
		Graph:     graph,
	}, nil
}

// Bundle builds entry and emits the bundle program.
func Bundle(ctx context.Context, entry string, opts Options) (*Result, error) {
	result, err := Graph(ctx, entry, opts)
	if err != nil {
		return nil, err
	}

	program, err := bundle.Emit(result.Graph, bundle.Options{CacheInstances: opts.CacheModules})
	if err != nil {
		return nil, fmt.Errorf("failed to emit bundle: %w", err)
	}
	result.Program = program
	return result, nil
}

func selectContentReader(ctx context.Context, repoPath, commitID string) (vcs.ContentReader, error) {
	if commitID == "" {
		return vcs.FilesystemContentReader(), nil
	}

	repoRoot, err := git.GetRepositoryRoot(ctx, repoPath)
	if err != nil {
		return nil, fmt.Errorf("--commit requires a git repository: %w", err)
	}
	if err := git.ValidateCommit(ctx, repoRoot, commitID); err != nil {
		return nil, err
	}
	return git.GitCommitContentReader(ctx, repoRoot, commitID), nil
}
