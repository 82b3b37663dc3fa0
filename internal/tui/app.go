// internal/tui/app.go
//
// Terminal front end for the quantum box.
// Responsibilities:
//   - Own the tcell screen for the lifetime of a session.
//   - Map keys to host actions: digits answer, space/enter begins or resets,
//     q/Esc/Ctrl-C quits.
//   - Redraw after every host change, including countdown ticks.
//   - Provide the host's audio device (terminal bell).
//
// HandleEvent and Draw must run on the scheduler's goroutine. Run wires a
// clock.Loop, the input poller and the screen together.

package tui

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quantumbox/internal/clock"
	"github.com/robalobadob/quantumbox/internal/game"
	"github.com/robalobadob/quantumbox/internal/i18n"
	"github.com/robalobadob/quantumbox/internal/simulation"
	"github.com/robalobadob/quantumbox/internal/store"
)

// Options configure an App.
type Options struct {
	Printer  *i18n.Printer // required
	Store    store.Store   // optional; enables the best-time line
	Policy   simulation.Policy
	Settings game.Settings
	Rand     *rand.Rand
	Mute     bool
}

// App is one interactive session.
type App struct {
	screen   tcell.Screen
	sim      *simulation.Simulation
	printer  *i18n.Printer
	store    store.Store
	alphabet int

	view    simulation.View
	best    time.Duration
	hasBest bool
}

// New builds an App drawing on screen. The screen must already be initialised.
func New(screen tcell.Screen, sched clock.Scheduler, opts Options) (*App, error) {
	if opts.Printer == nil {
		return nil, errors.New("tui: printer is required")
	}
	a := &App{screen: screen, printer: opts.Printer, store: opts.Store}

	var audio simulation.AudioDevice
	if !opts.Mute {
		audio = bell{screen: screen}
	}
	sim, err := simulation.New(sched, simulation.Options{
		Policy:   opts.Policy,
		Settings: opts.Settings,
		Rand:     opts.Rand,
		Audio:    audio,
		Store:    opts.Store,
		OnChange: a.update,
	})
	if err != nil {
		return nil, err
	}
	a.sim = sim
	a.alphabet = sim.Engine().Settings().AlphabetSize
	a.view = sim.View()
	return a, nil
}

// Simulation exposes the host driven by this App.
func (a *App) Simulation() *simulation.Simulation { return a.sim }

// Run drives the session on loop until ctx is cancelled or the player quits.
// The caller owns screen.Init and screen.Fini; Fini unblocks the input
// poller.
func (a *App) Run(ctx context.Context, loop *clock.Loop) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			if !loop.Post(func() {
				if a.HandleEvent(ev) {
					cancel()
				}
			}) {
				return
			}
		}
	}()

	loop.Post(a.Draw)
	err := loop.Run(ctx)
	a.sim.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// HandleEvent applies one terminal event and reports whether to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyEnter:
			a.sim.Toggle()
		case tcell.KeyRune:
			r := ev.Rune()
			switch {
			case r == 'q' || r == 'Q':
				return true
			case r == ' ':
				a.sim.Toggle()
			case r >= '1' && r <= '9':
				a.sim.Press(game.Symbol(r - '0'))
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.Draw()
	}
	return false
}

// Draw renders the latest view.
func (a *App) Draw() {
	draw(a.screen, a.printer, a.view, a.alphabet, a.best, a.hasBest)
}

func (a *App) update(v simulation.View) {
	a.view = v
	if v.Stage == simulation.StageRevealing && a.store != nil {
		best, ok, err := a.store.Best(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("load best round")
		}
		a.best, a.hasBest = best.Elapsed, ok
	}
	a.Draw()
}

// bell plays every cue as the terminal bell.
type bell struct{ screen tcell.Screen }

func (b bell) Open() (simulation.AudioChannel, error) { return b, nil }
func (b bell) Play(simulation.Cue) error             { return b.screen.Beep() }
func (b bell) Pause()                                {}
func (b bell) Close() error                          { return nil }
