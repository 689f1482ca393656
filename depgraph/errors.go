package depgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTooManyAssets is returned when a build exceeds Options.MaxAssets.
var ErrTooManyAssets = errors.New("too many assets")

// FileReadError reports a module file that could not be read.
type FileReadError struct {
	Path string
	// Importer is the file whose specifier led here; empty for the entry.
	Importer string
	Err      error
}

func (e *FileReadError) Error() string {
	if e.Importer == "" {
		return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to read %s (imported from %s): %v", e.Path, e.Importer, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// CycleError reports an import cycle. Cycle starts and ends with the same file.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return "import cycle detected: " + strings.Join(e.Cycle, " -> ")
}

// Files returns the distinct files taking part in the cycle.
func (e *CycleError) Files() []string {
	if len(e.Cycle) <= 1 {
		return e.Cycle
	}
	return e.Cycle[:len(e.Cycle)-1]
}
