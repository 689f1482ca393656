package run

import (
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/minipack/cmd/build"
	"github.com/LegacyCodeHQ/minipack/host"
	"github.com/LegacyCodeHQ/minipack/internal/config"
	"github.com/LegacyCodeHQ/minipack/internal/logging"
)

// NewCommand returns a new run command instance.
func NewCommand() *cobra.Command {
	opts := &build.Options{}

	cmd := &cobra.Command{
		Use:   "run <entry>",
		Short: "Bundle an entry file and execute it in-process",
		Long: `Bundle an entry file and execute the result in an embedded JavaScript
engine. console.log, info and debug write to stdout; console.warn and error
write to stderr. An uncaught exception fails the command.

Examples:
  minipack run src/entry.js
  minipack run src/entry.js --cache-modules`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntry(cmd, args[0], opts)
		},
	}

	opts.AddFlags(cmd)
	opts.AddEmitFlags(cmd)

	return cmd
}

func runEntry(cmd *cobra.Command, entry string, opts *build.Options) error {
	ctx := cmd.Context()
	opts.ApplyConfig(cmd, config.FromContext(ctx))

	result, err := build.Bundle(ctx, entry, *opts)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("running bundle", "entry", entry, "assets", result.Graph.Len())

	return host.Run(ctx, result.Program, host.Options{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
}
