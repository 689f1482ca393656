package build

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/LegacyCodeHQ/minipack/bundle"
)

const (
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
	colorHigh    = lipgloss.Color("#3B82F6")
)

var (
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	pathStyle    = lipgloss.NewStyle().Foreground(colorHigh)
)

// WriteSummary prints a one-line report of a finished bundle to w.
func WriteSummary(w io.Writer, result *Result, outFile string) error {
	modules := "modules"
	if result.Graph.Len() == 1 {
		modules = "module"
	}
	target := "stdout"
	if outFile != "" {
		target = outFile
	}

	_, err := fmt.Fprintf(w, "%s bundled %d %s from %s %s %s\n",
		successStyle.Render("✓"),
		result.Graph.Len(),
		modules,
		pathStyle.Render(bundle.ModuleName(result.EntryPath, result.BaseDir)),
		mutedStyle.Render("→"),
		pathStyle.Render(target),
	)
	return err
}
