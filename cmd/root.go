package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	bundlecmd "github.com/LegacyCodeHQ/minipack/cmd/bundle"
	configcmd "github.com/LegacyCodeHQ/minipack/cmd/config"
	"github.com/LegacyCodeHQ/minipack/cmd/run"
	"github.com/LegacyCodeHQ/minipack/cmd/show"
	"github.com/LegacyCodeHQ/minipack/internal/config"
	"github.com/LegacyCodeHQ/minipack/internal/logging"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

type rootOptions struct {
	cfgFile string
	verbose bool
}

// NewRootCommand returns the minipack command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "minipack",
		Short: "Bundle JavaScript modules into a single self-contained script",
		Long: `minipack follows the relative imports of an entry file, lowers every
module to CommonJS and writes one script with an id-indexed module registry
and a small require(id) loader.

Use 'minipack --help' to see all available commands, or 'minipack <command> --help'
for detailed information about a specific command.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadSettings(cmd, opts)
		},
	}

	rootCmd.AddCommand(bundlecmd.NewCommand())
	rootCmd.AddCommand(run.NewCommand())
	rootCmd.AddCommand(show.NewCommand())
	rootCmd.AddCommand(configcmd.NewCommand())

	// Initialize annotations for version template
	rootCmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return rootCmd
}

// loadSettings resolves configuration and stores it, with a logger, on the
// context of the command being executed.
func loadSettings(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	cfg, path, err := config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.cfgFile})
	if err != nil {
		return err
	}

	verbose := opts.verbose || cfg.Verbose
	if cmd.Flags().Changed("verbose") {
		verbose = opts.verbose
	}
	cfg.Verbose = verbose

	logger := logging.New(cmd.ErrOrStderr(), verbose)
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}

	ctx = config.NewContext(ctx, cfg)
	ctx = logging.NewContext(ctx, logger)
	cmd.SetContext(ctx)
	return nil
}

// Execute runs the root command through fang and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
