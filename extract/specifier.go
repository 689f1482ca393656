package extract

import (
	"path/filepath"
	"strings"
)

// Kind classifies an import specifier.
type Kind int

const (
	// KindBare is a package name or anything else that is never followed.
	KindBare Kind = iota
	// KindRelative starts with ./ or ../ and resolves against the importing file.
	KindRelative
	// KindAbsolute is already a filesystem-absolute path.
	KindAbsolute
)

func (k Kind) String() string {
	switch k {
	case KindRelative:
		return "relative"
	case KindAbsolute:
		return "absolute"
	default:
		return "bare"
	}
}

// Specifier is the raw string following an import keyword.
type Specifier struct {
	Path string
	Kind Kind
	// Line and Column locate the specifier string in the source, 1-based.
	Line   int
	Column int
}

// IsLocal reports whether the specifier names a file in the project.
func (s Specifier) IsLocal() bool {
	return s.Kind == KindRelative || s.Kind == KindAbsolute
}

// Classify reports how an import specifier is to be treated. It never touches the filesystem.
func Classify(specifier string) Kind {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		return KindRelative
	}
	if filepath.IsAbs(specifier) {
		return KindAbsolute
	}
	return KindBare
}
