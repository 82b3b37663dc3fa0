package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/quantumbox/internal/scenario"
)

// NewScriptCommand creates the script command.
func NewScriptCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "script FILE...",
		Short: "Run scripted challenge scenarios",
		Long: `Run scenario files on a virtual clock and print their transcripts.

Exit codes:
  0 - every expectation held
  1 - one or more scenarios failed
  2 - a file could not be read or parsed

Examples:
  quantumbox script scenarios/solve.yaml
  quantumbox script --format json scenarios/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(rootOpts, cmd, args)
		},
	}
}

func runScripts(opts *RootOptions, cmd *cobra.Command, paths []string) error {
	setupLogging(opts.Config.LogLevel, cmd.ErrOrStderr())
	settings := opts.Config.GameSettings()

	results := make([]*scenario.Result, 0, len(paths))
	failed := 0
	for _, path := range paths {
		sc, err := scenario.LoadFile(path)
		if err != nil {
			return WrapExitError(ExitCommandError, path, err)
		}
		res, err := scenario.Run(sc, settings)
		if err != nil {
			return WrapExitError(ExitCommandError, path, err)
		}
		if !res.Passed() {
			failed++
		}
		log.Info().Str("scenario", sc.Name).Bool("passed", res.Passed()).Msg("scenario run")
		results = append(results, res)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			if err := res.WriteText(out); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", failed, len(results)))
	}
	return nil
}
