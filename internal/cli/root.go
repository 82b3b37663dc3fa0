// internal/cli/root.go
//
// Command tree for the quantumbox binary.
// Responsibilities:
//   - Global flags (--log-level, --format) and their validation.
//   - Loading process configuration once per invocation.
//   - Mapping command errors to exit codes.

package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/robalobadob/quantumbox/internal/config"
)

// RootOptions holds global flags and the loaded configuration.
type RootOptions struct {
	LogLevel string
	Format   string // "text" | "json"
	Config   config.Config
}

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{"text", "json"}

// NewRootCommand builds the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "quantumbox",
		Short: "Save the cat before the atom decays",
		Long: `quantumbox is a memory-sequence minigame framed as a quantum thought
experiment: repeat the colored sequence before the countdown runs out and the
cat in the box survives.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := config.Load()
			if err != nil {
				return WrapExitError(ExitCommandError, "load configuration", err)
			}
			if opts.LogLevel != "" {
				cfg.LogLevel = opts.LogLevel
			}
			opts.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (trace|debug|info|warn|error); overrides LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewScriptCommand(opts))
	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
