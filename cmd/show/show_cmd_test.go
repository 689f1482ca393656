package show

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("os.MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("os.WriteFile() error = %v", err)
		}
	}
	return dir
}

func executeShow(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCommand()
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func diamondProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"entry.js":  "import './a.js';\nimport './b.js';\n",
		"a.js":      "import './shared.js';\n",
		"b.js":      "import './shared.js';\n",
		"shared.js": "export const value = 1;\n",
	})
}

func TestShow_DOTListsEveryAsset(t *testing.T) {
	dir := diamondProject(t)

	output, _, err := executeShow(t, "entry.js", "--repo", dir)
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if !strings.HasPrefix(output, "digraph assets {") {
		t.Fatalf("expected DOT output, got:\n%s", output)
	}
	for _, want := range []string{`"[3] shared.js"`, `"[4] shared.js"`, `"1" -> "3" [label="./shared.js"];`, `"2" -> "4" [label="./shared.js"];`} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %s, got:\n%s", want, output)
		}
	}
}

func TestShow_DedupeCollapsesSharedModule(t *testing.T) {
	dir := diamondProject(t)

	output, _, err := executeShow(t, "entry.js", "--repo", dir, "--dedupe", "-f", "mermaid")
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if strings.Contains(output, "[4]") {
		t.Fatalf("expected no fifth asset with --dedupe, got:\n%s", output)
	}
	if !strings.Contains(output, `n2 -->|"./shared.js"| n3`) {
		t.Fatalf("expected b.js to link to the shared asset, got:\n%s", output)
	}
}

func TestShow_JSONFormat(t *testing.T) {
	dir := diamondProject(t)

	output, _, err := executeShow(t, "entry.js", "--repo", dir, "-f", "json")
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if !strings.Contains(output, `"label": "entry.js"`) || !strings.Contains(output, `"importer": -1`) {
		t.Fatalf("unexpected JSON output:\n%s", output)
	}
}

func TestShow_URLUnsupportedForJSON(t *testing.T) {
	dir := diamondProject(t)

	output, stderr, err := executeShow(t, "entry.js", "--repo", dir, "-f", "json", "-u")
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if !strings.Contains(stderr, "URL generation is not supported for json format") {
		t.Fatalf("expected warning on stderr, got %q", stderr)
	}
	if !strings.Contains(output, `"assets"`) {
		t.Fatalf("expected JSON output to still be printed, got:\n%s", output)
	}
}

func TestShow_UnknownFormat(t *testing.T) {
	dir := diamondProject(t)

	_, _, err := executeShow(t, "entry.js", "--repo", dir, "-f", "svg")
	if err == nil || !strings.Contains(err.Error(), "unknown format: svg") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestShow_CycleFails(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"a.js": "import './b.js';\n",
		"b.js": "import './a.js';\n",
	})

	_, _, err := executeShow(t, "a.js", "--repo", dir)
	if err == nil || !strings.Contains(err.Error(), "import cycle detected") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}
