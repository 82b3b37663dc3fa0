// internal/game/types.go
//
// Core type definitions for the sequence challenge engine.
// Defines:
//   - Symbol:   one value of the fixed alphabet the player recalls.
//   - Phase:    lifecycle stage of a challenge.
//   - Outcome:  terminal result of a challenge.
//   - Prompt:   instructional state a view turns into a message.
//   - Snapshot: read-only view of the live challenge.
//   - Result:   what the host is told when a challenge resolves.

package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Symbol is one value of the challenge alphabet, numbered from 1.
// NoSymbol marks "nothing highlighted".
type Symbol uint8

const NoSymbol Symbol = 0

// Palette names for the product's four symbols.
const (
	Blue   Symbol = 1
	Red    Symbol = 2
	Green  Symbol = 3
	Yellow Symbol = 4
)

var colorNames = map[Symbol]string{
	Blue:   "blue",
	Red:    "red",
	Green:  "green",
	Yellow: "yellow",
}

// Color returns the display color for s. Symbols beyond the four-color
// palette are named "symbol-N".
func (s Symbol) Color() string {
	if s == NoSymbol {
		return "none"
	}
	if c, ok := colorNames[s]; ok {
		return c
	}
	return "symbol-" + strconv.Itoa(int(s))
}

func (s Symbol) String() string { return s.Color() }

// ParseSymbol accepts a digit ("1".."9") or a palette color name.
func ParseSymbol(v string) (Symbol, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > 9 {
			return NoSymbol, fmt.Errorf("symbol %d out of range", n)
		}
		return Symbol(n), nil
	}
	for s, name := range colorNames {
		if name == v {
			return s, nil
		}
	}
	return NoSymbol, fmt.Errorf("unknown symbol %q", v)
}

// Phase is the lifecycle stage of a challenge.
//
// Phases only move forward, except AwaitingInput → Playback after a wrong
// input, when the stored sequence is replayed.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlayback
	PhaseAwaitingInput
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlayback:
		return "playback"
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseResolved:
		return "resolved"
	}
	return "unknown"
}

// Live reports whether the countdown runs in this phase.
func (p Phase) Live() bool { return p == PhasePlayback || p == PhaseAwaitingInput }

// Outcome is set exactly when the phase is PhaseResolved.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSolved
	OutcomeExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeExpired:
		return "expired"
	}
	return "none"
}

// Prompt is the instructional state shown alongside a challenge.
type Prompt int

const (
	PromptNone Prompt = iota
	PromptPreparing
	PromptShowingSequence
	PromptAwaitingInput
	PromptErrorRetry
	PromptSolved
	PromptExpired
)

func (p Prompt) String() string {
	switch p {
	case PromptPreparing:
		return "preparing"
	case PromptShowingSequence:
		return "showing_sequence"
	case PromptAwaitingInput:
		return "awaiting_input"
	case PromptErrorRetry:
		return "error_retry"
	case PromptSolved:
		return "solved"
	case PromptExpired:
		return "expired"
	}
	return "none"
}

// Snapshot is a copy of the observable challenge state.
type Snapshot struct {
	ID        uuid.UUID
	Phase     Phase
	Prompt    Prompt
	Outcome   Outcome
	Deadline  time.Duration
	Remaining time.Duration
	Highlight Symbol // NoSymbol when nothing is lit
	Cursor    int    // correctly entered symbols so far
	Length    int
	Retries   int // wrong inputs so far
}

// Percentage is the share of the deadline still remaining, 0..100.
func (s Snapshot) Percentage() float64 {
	if s.Deadline <= 0 {
		return 0
	}
	return float64(s.Remaining) / float64(s.Deadline) * 100
}

// Seconds formats the remaining time with one decimal, e.g. "4.7".
func (s Snapshot) Seconds() string {
	return strconv.FormatFloat(s.Remaining.Seconds(), 'f', 1, 64)
}

// Result is delivered to the host's OnSolved/OnExpired callback.
type Result struct {
	ID        uuid.UUID
	Outcome   Outcome
	Elapsed   time.Duration // from Start to the solving input, or to expiry
	Remaining time.Duration
	Retries   int
	Length    int
}

// Handle identifies a created challenge.
type Handle struct {
	ID     uuid.UUID
	Length int
}

// Config describes one challenge.
type Config struct {
	// Deadline is the total countdown. Must be positive.
	Deadline time.Duration

	// Sequence fixes the symbols instead of generating them. It must respect
	// the engine's alphabet and length range.
	Sequence []Symbol

	// OnSolved fires once, SettleDelay after the solving input.
	OnSolved func(Result)

	// OnExpired fires once, on the tick that empties the countdown.
	OnExpired func(Result)
}
