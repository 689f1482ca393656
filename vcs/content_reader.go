package vcs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// ContentReader is a function that reads file content given a file path.
// This allows the caller to control how files are read (filesystem, git, etc.)
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader reads files from the working tree.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}

// MapContentReader serves file contents from memory, keyed by cleaned path.
// Missing keys report fs.ErrNotExist so callers can tell them apart from I/O failures.
func MapContentReader(files map[string]string) ContentReader {
	cleaned := make(map[string]string, len(files))
	for path, content := range files {
		cleaned[filepath.Clean(path)] = content
	}

	return func(filePath string) ([]byte, error) {
		content, ok := cleaned[filepath.Clean(filePath)]
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
		}
		return []byte(content), nil
	}
}
