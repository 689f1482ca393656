package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/minipack/internal/config"
)

// NewCommand returns a new config command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect minipack configuration",
		Long: `Inspect minipack configuration.

Settings are read from ` + config.FileName + ` in the working directory (or the
file given with --config), then from ` + config.EnvPrefix + `_* environment
variables. Command-line flags override both.`,
	}
	cmd.AddCommand(newShowCommand())
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.TOML(config.FromContext(cmd.Context()))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}
