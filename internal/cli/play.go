package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/quantumbox/internal/clock"
	"github.com/robalobadob/quantumbox/internal/daily"
	"github.com/robalobadob/quantumbox/internal/game"
	"github.com/robalobadob/quantumbox/internal/i18n"
	"github.com/robalobadob/quantumbox/internal/store"
	"github.com/robalobadob/quantumbox/internal/tui"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Daily bool
	Decay time.Duration
	Lang  string
	Mute  bool
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Open the box in the terminal.

Keys: space or enter starts a round and resets after the reveal, 1-4 repeat
the sequence, q or Esc quits.

With --daily every player gets the same sequences and decay times for the
current UTC date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Daily, "daily", false, "seed rounds from today's date")
	cmd.Flags().DurationVar(&opts.Decay, "decay", 0, "fixed decay time instead of a random one")
	cmd.Flags().StringVar(&opts.Lang, "lang", "", "interface language (defaults to QB_LANG)")
	cmd.Flags().BoolVar(&opts.Mute, "mute", false, "disable the terminal bell")
	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	cfg := opts.Config

	// The terminal belongs to tcell; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return WrapExitError(ExitCommandError, "open log file", err)
		}
		defer f.Close()
		logOut = f
	}
	setupLogging(cfg.LogLevel, logOut)

	lang := opts.Lang
	if lang == "" {
		lang = cfg.Lang
	}
	printer, err := i18n.New(lang)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	policy := cfg.Policy()
	if opts.Decay > 0 {
		policy.DecayMin, policy.DecayMax = opts.Decay, opts.Decay
	}
	if err := policy.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "decay", err)
	}

	var seed uint64
	if opts.Daily {
		today := time.Now().UTC()
		seed = daily.Seed(today, cfg.DailySalt)
		log.Info().Str("date", daily.DateKey(today)).Msg("daily mode")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	loop := clock.NewLoop(64)
	app, err := tui.New(screen, loop, tui.Options{
		Printer:  printer,
		Store:    store.NewMemoryStore(),
		Policy:   policy,
		Settings: cfg.GameSettings(),
		Rand:     game.NewRand(seed),
		Mute:     opts.Mute,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	log.Info().Str("lang", printer.Locale()).Msg("session started")
	return app.Run(ctx, loop)
}
