package scenario

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quantumbox/internal/clock"
	"github.com/robalobadob/quantumbox/internal/game"
)

// epoch is the virtual start time of every run.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Entry is one transcript line: a non-tick engine event.
type Entry struct {
	At        time.Duration // since the run began
	Kind      game.EventKind
	Symbol    game.Symbol
	Phase     game.Phase
	Prompt    game.Prompt
	Highlight game.Symbol
	Cursor    int
	Retries   int
	Remaining time.Duration
}

// Result is the outcome of one scenario run.
type Result struct {
	Name     string
	Entries  []Entry
	Outcome  game.Outcome
	Elapsed  time.Duration // from the resolving callback; 0 when unresolved
	Solved   int
	Expired  int
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Run plays sc against a fresh engine with settings on a virtual clock.
func Run(sc *Scenario, settings game.Settings) (*Result, error) {
	seq, err := parseSymbols(sc.Sequence)
	if err != nil {
		return nil, err
	}

	clk := clock.NewVirtual(epoch)
	res := &Result{Name: sc.Name}
	eng := game.New(clk,
		game.WithSettings(settings),
		game.WithRand(game.NewRand(sc.Seed)),
		game.WithObserver(func(ev game.Event) {
			if ev.Kind == game.EventTick {
				return
			}
			res.Entries = append(res.Entries, Entry{
				At:        ev.At.Sub(epoch),
				Kind:      ev.Kind,
				Symbol:    ev.Symbol,
				Phase:     ev.Snapshot.Phase,
				Prompt:    ev.Snapshot.Prompt,
				Highlight: ev.Snapshot.Highlight,
				Cursor:    ev.Snapshot.Cursor,
				Retries:   ev.Snapshot.Retries,
				Remaining: ev.Snapshot.Remaining,
			})
		}),
	)

	resolved := func(gr game.Result) {
		res.Outcome = gr.Outcome
		res.Elapsed = gr.Elapsed
		if gr.Outcome == game.OutcomeSolved {
			res.Solved++
		} else {
			res.Expired++
		}
	}
	if _, err := eng.Create(game.Config{
		Deadline:  sc.Deadline,
		Sequence:  seq,
		OnSolved:  resolved,
		OnExpired: resolved,
	}); err != nil {
		return nil, err
	}

	for _, st := range sc.Steps {
		switch {
		case st.Start:
			eng.Start()
		case st.Wait > 0:
			clk.Advance(st.Wait)
		case len(st.Submit) > 0:
			syms, err := parseSymbols(st.Submit)
			if err != nil {
				return nil, err
			}
			for _, s := range syms {
				eng.Submit(s)
			}
		case st.SubmitSequence:
			full := eng.Sequence()
			for _, s := range full[min(eng.Snapshot().Cursor, len(full)):] {
				eng.Submit(s)
			}
		case st.SubmitWrong:
			if s, ok := wrongSymbol(eng); ok {
				eng.Submit(s)
			}
		case st.Abort:
			eng.Abort()
		}
	}

	res.check(sc.Expect, eng.Snapshot(), clk.Pending())
	log.Debug().Str("scenario", sc.Name).Int("events", len(res.Entries)).
		Int("failures", len(res.Failures)).Msg("scenario finished")
	return res, nil
}

// wrongSymbol picks the lowest alphabet symbol that is not the next expected one.
func wrongSymbol(eng *game.Engine) (game.Symbol, bool) {
	seq := eng.Sequence()
	cur := eng.Snapshot().Cursor
	if cur >= len(seq) {
		return game.NoSymbol, false
	}
	for s := game.Symbol(1); int(s) <= eng.Settings().AlphabetSize; s++ {
		if s != seq[cur] {
			return s, true
		}
	}
	return game.NoSymbol, false
}

func (r *Result) check(exp Expect, snap game.Snapshot, pending int) {
	if exp.Outcome != "" && exp.Outcome != r.Outcome.String() {
		r.fail("outcome: want %s, got %s", exp.Outcome, r.Outcome)
	}
	if exp.Solved != nil && *exp.Solved != r.Solved {
		r.fail("solved callbacks: want %d, got %d", *exp.Solved, r.Solved)
	}
	if exp.Expired != nil && *exp.Expired != r.Expired {
		r.fail("expired callbacks: want %d, got %d", *exp.Expired, r.Expired)
	}
	if exp.Cursor != nil && *exp.Cursor != snap.Cursor {
		r.fail("cursor: want %d, got %d", *exp.Cursor, snap.Cursor)
	}
	if exp.Phase != "" && exp.Phase != snap.Phase.String() {
		r.fail("phase: want %s, got %s", exp.Phase, snap.Phase)
	}
	if exp.PendingTimers != nil && *exp.PendingTimers != pending {
		r.fail("pending timers: want %d, got %d", *exp.PendingTimers, pending)
	}
}

func (r *Result) fail(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}
