package git

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/minipack/vcs"
)

// GetRepositoryRoot returns the absolute path to the repository root
func GetRepositoryRoot(ctx context.Context, repoPath string) (string, error) {
	stdout, stderr, err := gitOutput(ctx, repoPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", commandFailure(err, stderr)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// ValidateCommit checks if the given commit reference exists in the repository
func ValidateCommit(ctx context.Context, repoPath, commitID string) error {
	if err := validateGitRef(commitID); err != nil {
		return err
	}

	_, stderr, err := gitOutput(ctx, repoPath, "rev-parse", "--verify", commitID+"^{commit}")
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		if stderr != "" {
			return fmt.Errorf("invalid commit reference '%s': %s", commitID, stderr)
		}
		return fmt.Errorf("invalid commit reference '%s'", commitID)
	}
	return nil
}

// GetFileContentFromCommit reads the content of a file at a specific commit
// using 'git show commit:path'. The filePath should be relative to the repository root.
func GetFileContentFromCommit(ctx context.Context, repoPath, commitID, filePath string) ([]byte, error) {
	if err := validateGitRef(commitID); err != nil {
		return nil, err
	}
	if err := validateGitRelPath(filePath); err != nil {
		return nil, err
	}

	ref := fmt.Sprintf("%s:%s", commitID, filepath.ToSlash(filePath))
	stdout, stderr, err := gitOutput(ctx, repoPath, "show", ref)
	if err != nil {
		if isMissingPathError(stderr) {
			return nil, &fs.PathError{Op: "git show", Path: filePath, Err: fs.ErrNotExist}
		}
		return nil, commandFailure(err, stderr)
	}
	return stdout, nil
}

// GitCommitContentReader returns a reader that serves absolute working-tree
// paths from the tree of commitID instead of the filesystem. repoRoot is the
// top-level directory reported by GetRepositoryRoot. Reads stop once ctx is done.
func GitCommitContentReader(ctx context.Context, repoRoot, commitID string) vcs.ContentReader {
	resolvedRoot := resolveSymlinks(repoRoot)
	return func(filePath string) ([]byte, error) {
		// The file may only exist in the commit, so resolve symlinks on its directory.
		target := filepath.Join(resolveSymlinks(filepath.Dir(filePath)), filepath.Base(filePath))
		relPath, err := filepath.Rel(resolvedRoot, target)
		if err != nil {
			return nil, fmt.Errorf("failed to make %s relative to %s: %w", filePath, repoRoot, err)
		}
		return GetFileContentFromCommit(ctx, repoRoot, commitID, relPath)
	}
}

func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git reference cannot be empty")
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("git reference cannot start with '-' : %q", ref)
	}
	if strings.ContainsAny(ref, "\x00\n\r\t ") {
		return fmt.Errorf("git reference contains whitespace or NUL: %q", ref)
	}
	return nil
}

func validateGitRelPath(path string) error {
	if path == "" {
		return fmt.Errorf("git path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("git path must be relative: %q", path)
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("git path contains NUL: %q", path)
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("git path escapes repository: %q", path)
	}
	return nil
}

// isMissingPathError recognizes git's "path does not exist in <rev>" family of messages.
func isMissingPathError(stderr string) bool {
	return strings.Contains(stderr, "does not exist in") ||
		strings.Contains(stderr, "exists on disk, but not in")
}

func resolveSymlinks(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
