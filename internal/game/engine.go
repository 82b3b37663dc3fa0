// internal/game/engine.go
//
// Sequence challenge engine: one memory-sequence round at a time.
// Responsibilities:
//   - Create challenges with a generated (or fixed) symbol sequence.
//   - Play the sequence back on a fixed cadence, then accept input.
//   - Match input against the stored sequence; replay it after a wrong input.
//   - Run the decay countdown from Start until it empties or the round is solved.
//   - Fire exactly one of OnSolved / OnExpired per challenge.
//
// Notes:
//   - All timing goes through a clock.Scheduler. Each challenge owns one
//     timer per slot (tick, playback, flash, settle); resolving or aborting
//     stops them together.
//   - The engine is not safe for concurrent use. Drive it from the
//     scheduler's goroutine (clock.Loop or clock.Virtual).
//   - Submit and tick outside their phase are no-ops, never errors.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quantumbox/internal/clock"
)

// EventKind classifies observer events.
type EventKind int

const (
	EventCreated EventKind = iota
	EventPhase
	EventPrompt
	EventHighlight
	EventInput
	EventTick
	EventSolved
	EventExpired
	EventAborted
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventPhase:
		return "phase"
	case EventPrompt:
		return "prompt"
	case EventHighlight:
		return "highlight"
	case EventInput:
		return "input"
	case EventTick:
		return "tick"
	case EventSolved:
		return "solved"
	case EventExpired:
		return "expired"
	case EventAborted:
		return "aborted"
	}
	return "unknown"
}

// Event is delivered to the observer after every state change.
type Event struct {
	Kind     EventKind
	At       time.Time
	Symbol   Symbol // the pressed symbol for EventInput
	Snapshot Snapshot
}

type timerSlot int

const (
	slotTick timerSlot = iota
	slotPlayback
	slotFlash
	slotSettle
	numSlots
)

type challenge struct {
	id        uuid.UUID
	seq       []Symbol
	step      int // playback position
	cursor    int
	phase     Phase
	prompt    Prompt
	outcome   Outcome
	deadline  time.Duration
	remaining time.Duration
	highlight Symbol
	flashing  bool // highlight comes from an input flash, not playback
	retries   int
	startedAt time.Time
	onSolved  func(Result)
	onExpired func(Result)
	timers    [numSlots]clock.Timer
}

func (c *challenge) snapshot() Snapshot {
	return Snapshot{
		ID:        c.id,
		Phase:     c.phase,
		Prompt:    c.prompt,
		Outcome:   c.outcome,
		Deadline:  c.deadline,
		Remaining: c.remaining,
		Highlight: c.highlight,
		Cursor:    c.cursor,
		Length:    len(c.seq),
		Retries:   c.retries,
	}
}

// Engine runs sequence challenges on a Scheduler.
type Engine struct {
	sched    clock.Scheduler
	settings Settings
	rng      *rand.Rand
	observe  func(Event)
	cur      *challenge
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSettings replaces the default timings and ranges.
func WithSettings(s Settings) Option { return func(e *Engine) { e.settings = s } }

// WithRand sets the generator used for sequences.
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }

// WithObserver registers fn to receive every Event.
func WithObserver(fn func(Event)) Option { return func(e *Engine) { e.observe = fn } }

// New constructs an Engine with no challenge.
func New(sched clock.Scheduler, opts ...Option) *Engine {
	e := &Engine{sched: sched, settings: DefaultSettings()}
	for _, o := range opts {
		o(e)
	}
	if e.rng == nil {
		e.rng = NewRand(0)
	}
	return e
}

// Settings returns the engine's settings.
func (e *Engine) Settings() Settings { return e.settings }

// Create allocates a new Idle challenge, discarding any current one.
// No timers are armed until Start.
func (e *Engine) Create(cfg Config) (Handle, error) {
	if cfg.Deadline <= 0 {
		return Handle{}, fmt.Errorf("%w: deadline must be positive, got %s", ErrInvalidConfiguration, cfg.Deadline)
	}
	if err := e.settings.Validate(); err != nil {
		return Handle{}, err
	}
	var seq []Symbol
	if cfg.Sequence != nil {
		if err := checkSequence(cfg.Sequence, e.settings); err != nil {
			return Handle{}, err
		}
		seq = append([]Symbol(nil), cfg.Sequence...)
	} else {
		seq = Generate(e.rng, e.settings)
	}

	e.Abort()
	ch := &challenge{
		id:        uuid.New(),
		seq:       seq,
		phase:     PhaseIdle,
		prompt:    PromptPreparing,
		deadline:  cfg.Deadline,
		remaining: cfg.Deadline,
		onSolved:  cfg.OnSolved,
		onExpired: cfg.OnExpired,
	}
	e.cur = ch
	log.Debug().Str("challenge", ch.id.String()).Int("length", len(seq)).
		Dur("deadline", cfg.Deadline).Msg("challenge created")
	e.emit(EventCreated, ch, NoSymbol)
	return Handle{ID: ch.id, Length: len(seq)}, nil
}

// Start begins playback and arms the countdown. Only an Idle challenge
// starts; otherwise Start does nothing.
func (e *Engine) Start() {
	ch := e.cur
	if ch == nil || ch.phase != PhaseIdle {
		return
	}
	ch.startedAt = e.sched.Now()
	e.setPhase(ch, PhasePlayback, PromptShowingSequence)
	e.armTick(ch)
	e.playFromStart(ch)
	log.Debug().Str("challenge", ch.id.String()).Msg("challenge started")
}

// Submit records one player action. It is ignored unless the challenge is
// awaiting input and sym belongs to the alphabet.
func (e *Engine) Submit(sym Symbol) {
	ch := e.cur
	if ch == nil || ch.phase != PhaseAwaitingInput || !e.settings.valid(sym) {
		return
	}

	e.setHighlight(ch, sym, true)
	e.arm(ch, slotFlash, e.settings.InputFlash, func() {
		if ch.flashing {
			e.setHighlight(ch, NoSymbol, false)
		}
	})

	if sym == ch.seq[ch.cursor] {
		ch.cursor++
		e.emit(EventInput, ch, sym)
		if ch.cursor == len(ch.seq) {
			e.solve(ch)
		}
		return
	}

	ch.cursor = 0
	ch.retries++
	e.emit(EventInput, ch, sym)
	e.setPhase(ch, PhasePlayback, PromptErrorRetry)
	e.arm(ch, slotPlayback, e.settings.RetryPause, func() {
		e.setPrompt(ch, PromptShowingSequence)
		e.playFromStart(ch)
	})
}

// Abort cancels every pending callback and discards the challenge. Safe in
// any phase and when there is no challenge.
func (e *Engine) Abort() {
	ch := e.cur
	if ch == nil {
		return
	}
	e.stopAll(ch)
	e.cur = nil
	log.Debug().Str("challenge", ch.id.String()).Str("phase", ch.phase.String()).Msg("challenge aborted")
	e.emit(EventAborted, ch, NoSymbol)
}

// Reset is Abort.
func (e *Engine) Reset() { e.Abort() }

// Active reports whether a challenge exists.
func (e *Engine) Active() bool { return e.cur != nil }

// Snapshot returns the current challenge state, or the zero Snapshot.
func (e *Engine) Snapshot() Snapshot {
	if e.cur == nil {
		return Snapshot{}
	}
	return e.cur.snapshot()
}

// Sequence returns a copy of the current challenge's sequence.
func (e *Engine) Sequence() []Symbol {
	if e.cur == nil {
		return nil
	}
	return append([]Symbol(nil), e.cur.seq...)
}

// ---------------------------------------------------------------------------
// playback

// playFromStart shows seq[i] at (i+1)*SequenceInterval from now.
func (e *Engine) playFromStart(ch *challenge) {
	ch.step = 0
	e.arm(ch, slotPlayback, e.settings.SequenceInterval, func() { e.showStep(ch) })
}

func (e *Engine) showStep(ch *challenge) {
	e.setHighlight(ch, ch.seq[ch.step], false)
	e.arm(ch, slotPlayback, e.settings.Highlight, func() { e.hideStep(ch) })
}

func (e *Engine) hideStep(ch *challenge) {
	e.setHighlight(ch, NoSymbol, false)
	if ch.step == len(ch.seq)-1 {
		ch.cursor = 0
		e.setPhase(ch, PhaseAwaitingInput, PromptAwaitingInput)
		return
	}
	ch.step++
	e.arm(ch, slotPlayback, e.settings.SequenceInterval-e.settings.Highlight, func() { e.showStep(ch) })
}

// ---------------------------------------------------------------------------
// countdown

func (e *Engine) armTick(ch *challenge) {
	step := min(e.settings.Tick, ch.remaining)
	e.arm(ch, slotTick, step, func() { e.tick(ch, step) })
}

func (e *Engine) tick(ch *challenge, step time.Duration) {
	if !ch.phase.Live() {
		return
	}
	ch.remaining = max(ch.remaining-step, 0)
	e.emit(EventTick, ch, NoSymbol)
	if ch.remaining == 0 {
		e.expire(ch)
		return
	}
	e.armTick(ch)
}

// ---------------------------------------------------------------------------
// resolution

func (e *Engine) solve(ch *challenge) {
	e.stop(ch, slotTick)
	e.stop(ch, slotPlayback)
	ch.outcome = OutcomeSolved
	e.setPhase(ch, PhaseResolved, PromptSolved)
	res := e.result(ch)
	log.Debug().Str("challenge", ch.id.String()).Dur("elapsed", res.Elapsed).
		Int("retries", ch.retries).Msg("challenge solved")
	e.arm(ch, slotSettle, e.settings.SettleDelay, func() {
		e.emit(EventSolved, ch, NoSymbol)
		if ch.onSolved != nil {
			ch.onSolved(res)
		}
	})
}

func (e *Engine) expire(ch *challenge) {
	e.stopAll(ch)
	e.setHighlight(ch, NoSymbol, false)
	ch.outcome = OutcomeExpired
	e.setPhase(ch, PhaseResolved, PromptExpired)
	res := e.result(ch)
	log.Debug().Str("challenge", ch.id.String()).Int("cursor", ch.cursor).
		Int("retries", ch.retries).Msg("challenge expired")
	e.emit(EventExpired, ch, NoSymbol)
	if ch.onExpired != nil {
		ch.onExpired(res)
	}
}

func (e *Engine) result(ch *challenge) Result {
	return Result{
		ID:        ch.id,
		Outcome:   ch.outcome,
		Elapsed:   e.sched.Now().Sub(ch.startedAt),
		Remaining: ch.remaining,
		Retries:   ch.retries,
		Length:    len(ch.seq),
	}
}

// ---------------------------------------------------------------------------
// state helpers

func (e *Engine) setPhase(ch *challenge, p Phase, prompt Prompt) {
	ch.phase = p
	ch.prompt = prompt
	e.emit(EventPhase, ch, NoSymbol)
}

func (e *Engine) setPrompt(ch *challenge, prompt Prompt) {
	if ch.prompt == prompt {
		return
	}
	ch.prompt = prompt
	e.emit(EventPrompt, ch, NoSymbol)
}

func (e *Engine) setHighlight(ch *challenge, sym Symbol, flash bool) {
	changed := ch.highlight != sym
	ch.highlight, ch.flashing = sym, flash
	if changed {
		e.emit(EventHighlight, ch, NoSymbol)
	}
}

func (e *Engine) emit(kind EventKind, ch *challenge, sym Symbol) {
	if e.observe == nil {
		return
	}
	e.observe(Event{Kind: kind, At: e.sched.Now(), Symbol: sym, Snapshot: ch.snapshot()})
}

// ---------------------------------------------------------------------------
// timers

// arm replaces the timer in slot with fn after d. The callback is dropped if
// ch is no longer the engine's challenge.
func (e *Engine) arm(ch *challenge, slot timerSlot, d time.Duration, fn func()) {
	e.stop(ch, slot)
	ch.timers[slot] = e.sched.AfterFunc(d, func() {
		if e.cur != ch {
			return
		}
		ch.timers[slot] = nil
		fn()
	})
}

func (e *Engine) stop(ch *challenge, slot timerSlot) {
	if t := ch.timers[slot]; t != nil {
		t.Stop()
		ch.timers[slot] = nil
	}
}

func (e *Engine) stopAll(ch *challenge) {
	for s := timerSlot(0); s < numSlots; s++ {
		e.stop(ch, s)
	}
}
