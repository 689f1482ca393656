// Package build holds the flags and pipeline shared by the commands that
// turn an entry file into an asset graph or a bundle.
package build

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/minipack/internal/config"
)

// Options are the build flags common to bundle, run and show.
type Options struct {
	RepoPath     string
	CommitID     string
	AllowOutside bool
	Dedupe       bool
	CacheModules bool
	Extensions   []string
	MaxAssets    int
}

// AddFlags registers the build flags on cmd. Emission-only flags are added
// by the commands that emit.
func (o *Options) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.RepoPath, "repo", "r", "", "Base directory, and git repository for --commit (default: current directory)")
	cmd.Flags().StringVarP(&o.CommitID, "commit", "c", "", "Read sources as of this git revision instead of the working tree")
	cmd.Flags().BoolVar(&o.AllowOutside, "allow-outside-repo", false, "Allow an entry path outside the base directory")
	cmd.Flags().BoolVar(&o.Dedupe, "dedupe", false, "Reuse one module per resolved path instead of one per import")
	cmd.Flags().StringSliceVar(&o.Extensions, "ext", nil, "Probe these extensions and index files for extensionless specifiers (comma-separated, e.g. .js,.mjs)")
	cmd.Flags().IntVar(&o.MaxAssets, "max-assets", 0, "Abort once more than this many modules are discovered (0 disables the limit)")
}

// AddEmitFlags registers flags that only matter when a bundle is emitted.
func (o *Options) AddEmitFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.CacheModules, "cache-modules", false, "Evaluate each module once and share its exports")
}

// ApplyConfig fills every option whose flag was not set explicitly from cfg.
func (o *Options) ApplyConfig(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		flag := cmd.Flags().Lookup(name)
		return flag != nil && flag.Changed
	}
	if !changed("dedupe") {
		o.Dedupe = cfg.Dedupe
	}
	if !changed("cache-modules") {
		o.CacheModules = cfg.CacheModules
	}
	if !changed("ext") {
		o.Extensions = cfg.Extensions
	}
	if !changed("max-assets") {
		o.MaxAssets = cfg.MaxAssets
	}
}

// Validate checks the size bound and normalizes the extension list.
func (o *Options) Validate() error {
	if o.MaxAssets < 0 {
		return fmt.Errorf("--max-assets must not be negative, got %d", o.MaxAssets)
	}
	if len(o.Extensions) == 0 {
		return nil
	}
	exts, err := normalizeExtensions("--ext", o.Extensions)
	if err != nil {
		return err
	}
	o.Extensions = exts
	return nil
}

func normalizeExtensions(flagName string, rawExts []string) ([]string, error) {
	exts := make([]string, 0, len(rawExts))
	seen := make(map[string]struct{}, len(rawExts))

	for _, part := range rawExts {
		ext := strings.TrimSpace(part)
		if ext == "" {
			return nil, fmt.Errorf("%s cannot contain empty extensions", flagName)
		}
		if strings.Contains(ext, string(filepath.Separator)) {
			return nil, fmt.Errorf("%s must be file extensions, got %q", flagName, part)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if ext == "." {
			return nil, fmt.Errorf("%s must include extension characters", flagName)
		}

		ext = strings.ToLower(ext)
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	return exts, nil
}
