package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/minipack/cmd/build"
	"github.com/LegacyCodeHQ/minipack/internal/config"
	"github.com/LegacyCodeHQ/minipack/internal/logging"
)

type bundleOptions struct {
	build   build.Options
	outFile string
}

// NewCommand returns a new bundle command instance.
func NewCommand() *cobra.Command {
	opts := &bundleOptions{}

	cmd := &cobra.Command{
		Use:   "bundle <entry>",
		Short: "Bundle an entry file and its relative imports into one script",
		Long: `Bundle an entry file and every module it reaches through relative or
absolute import paths into one self-contained script. Bare specifiers such as
'react' are left out and fail only when the bundle runs.

Examples:
  minipack bundle src/entry.js                     # bundle to stdout
  minipack bundle src/entry.js -o dist/bundle.js   # bundle to a file
  minipack bundle src/entry.js --dedupe --cache-modules
  minipack bundle src/entry.js -c HEAD~2           # bundle sources at a revision`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, args[0], opts)
		},
	}

	opts.build.AddFlags(cmd)
	opts.build.AddEmitFlags(cmd)
	cmd.Flags().StringVarP(&opts.outFile, "out", "o", "", "Write the bundle to this file instead of stdout")

	return cmd
}

func runBundle(cmd *cobra.Command, entry string, opts *bundleOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	opts.build.ApplyConfig(cmd, cfg)
	if !cmd.Flags().Changed("out") {
		opts.outFile = cfg.OutFile
	}

	result, err := build.Bundle(ctx, entry, opts.build)
	if err != nil {
		return err
	}

	logger := logging.FromContext(ctx)
	if opts.outFile == "" {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), result.Program); err != nil {
			return err
		}
		logger.Info("bundle written", "entry", entry, "assets", result.Graph.Len())
		return nil
	}

	if err := writeBundle(opts.outFile, result.Program); err != nil {
		return err
	}
	logger.Info("bundle written", "entry", entry, "assets", result.Graph.Len(), "out", opts.outFile)
	return build.WriteSummary(cmd.ErrOrStderr(), result, opts.outFile)
}

func writeBundle(path, program string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(program), 0o644); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	return nil
}
