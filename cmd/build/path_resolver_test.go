package build

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPathResolverResolve_RelativePathJoinsBaseDir(t *testing.T) {
	resolver, err := NewPathResolver(t.TempDir(), false)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	resolved, err := resolver.Resolve(RawPath(filepath.Join("src", "entry.js")))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	expected := filepath.Join(resolver.BaseDir(), "src", "entry.js")
	if resolved.String() != expected {
		t.Fatalf("expected %q, got %q", expected, resolved.String())
	}
}

func TestPathResolverResolve_RejectsPathsOutsideBase(t *testing.T) {
	resolver, err := NewPathResolver(t.TempDir(), false)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	for _, raw := range []string{"../entry.js", filepath.Join(string(filepath.Separator), "elsewhere", "entry.js")} {
		_, err := resolver.Resolve(RawPath(raw))
		if err == nil {
			t.Fatalf("Resolve(%q) expected error, got nil", raw)
		}
		if !strings.Contains(err.Error(), "path must be within") {
			t.Fatalf("Resolve(%q) unexpected error: %v", raw, err)
		}
	}
}

func TestPathResolverResolve_AllowOutside(t *testing.T) {
	resolver, err := NewPathResolver(t.TempDir(), true)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	resolved, err := resolver.Resolve(RawPath("../entry.js"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	expected := filepath.Join(filepath.Dir(resolver.BaseDir()), "entry.js")
	if resolved.String() != expected {
		t.Fatalf("expected %q, got %q", expected, resolved.String())
	}
}

func TestPathResolverResolve_EmptyPath(t *testing.T) {
	resolver, err := NewPathResolver("", false)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	if _, err := resolver.Resolve(""); err == nil {
		t.Fatalf("Resolve(\"\") expected error, got nil")
	}
}
