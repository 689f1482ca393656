package show

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/minipack/bundle"
	"github.com/LegacyCodeHQ/minipack/cmd/build"
	"github.com/LegacyCodeHQ/minipack/cmd/show/formatters"
	"github.com/LegacyCodeHQ/minipack/internal/config"
)

type showOptions struct {
	build        build.Options
	outputFormat string
	generateURL  bool
}

// NewCommand returns a new show command instance.
func NewCommand() *cobra.Command {
	opts := &showOptions{
		outputFormat: formatters.OutputFormatDOT.String(),
	}

	cmd := &cobra.Command{
		Use:   "show <entry>",
		Short: "Show the asset graph discovered from an entry file",
		Long: `Show the asset graph discovered from an entry file.

Every node is one asset with the id it gets in the bundle, so a file imported
along two paths appears twice unless --dedupe is set.

Examples:
  minipack show src/entry.js                  # Graphviz DOT
  minipack show src/entry.js -f mermaid       # Mermaid flowchart
  minipack show src/entry.js -f json --dedupe # one asset per file
  minipack show src/entry.js -c HEAD~1 -u     # graph at a revision, as a URL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], opts)
		},
	}

	opts.build.AddFlags(cmd)
	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Generate visualization URL (supported formats: dot, mermaid)")

	return cmd
}

func runShow(cmd *cobra.Command, entry string, opts *showOptions) error {
	formatter, err := formatters.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	opts.build.ApplyConfig(cmd, config.FromContext(ctx))

	result, err := build.Graph(ctx, entry, opts.build)
	if err != nil {
		return err
	}

	output, err := formatter.Format(result.Graph, formatters.RenderOptions{
		Label:   bundle.ModuleName(result.EntryPath, result.BaseDir),
		BaseDir: result.BaseDir,
	})
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	if opts.generateURL {
		if urlStr, ok := formatter.GenerateURL(output); ok {
			fmt.Fprintln(cmd.OutOrStdout(), urlStr)
			return nil
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: URL generation is not supported for %s format\n\n", opts.outputFormat)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
