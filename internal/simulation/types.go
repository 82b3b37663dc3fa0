package simulation

import (
	"fmt"
	"time"

	"github.com/robalobadob/quantumbox/internal/game"
)

// Stage is where the host is in a round.
type Stage int

const (
	StagePreSimulation Stage = iota // box open, waiting for the player
	StageSuperposition              // box closed, minigame running
	StageRevealing                  // box open again, fate shown
)

func (s Stage) String() string {
	switch s {
	case StagePreSimulation:
		return "pre_simulation"
	case StageSuperposition:
		return "superposition"
	case StageRevealing:
		return "revealing"
	}
	return "unknown"
}

// Fate is the cat's state; undetermined until the challenge resolves.
type Fate int

const (
	FateUndetermined Fate = iota
	FateAlive
	FateDead
)

func (f Fate) String() string {
	switch f {
	case FateAlive:
		return "alive"
	case FateDead:
		return "dead"
	}
	return "undetermined"
}

// Policy holds the host's own timings.
type Policy struct {
	DecayMin     time.Duration // countdown drawn from whole seconds in [DecayMin, DecayMax]
	DecayMax     time.Duration
	RevealDelay  time.Duration // Begin to minigame shown (box closing)
	EntryDelay   time.Duration // minigame shown to engine Start (entry animation)
	MeowDuration time.Duration // how long the opening cue plays
}

// DefaultPolicy returns the product's timings.
func DefaultPolicy() Policy {
	return Policy{
		DecayMin:     3 * time.Second,
		DecayMax:     30 * time.Second,
		RevealDelay:  3 * time.Second,
		EntryDelay:   1500 * time.Millisecond,
		MeowDuration: 2 * time.Second,
	}
}

// Validate checks ranges. Errors wrap game.ErrInvalidConfiguration.
func (p Policy) Validate() error {
	if p.DecayMin <= 0 || p.DecayMax < p.DecayMin {
		return fmt.Errorf("%w: decay range [%s,%s]", game.ErrInvalidConfiguration, p.DecayMin, p.DecayMax)
	}
	if p.RevealDelay < 0 || p.EntryDelay < 0 || p.MeowDuration < 0 {
		return fmt.Errorf("%w: host delays must not be negative", game.ErrInvalidConfiguration)
	}
	return nil
}

// Cue names a sound the presentation layer can play.
type Cue int

const (
	CueMeow Cue = iota
)

func (c Cue) String() string {
	if c == CueMeow {
		return "meow"
	}
	return "unknown"
}

// AudioDevice hands out audio channels. The host opens one channel when a
// round begins and closes it when the round is reset or the host closes.
type AudioDevice interface {
	Open() (AudioChannel, error)
}

// AudioChannel plays cues until closed.
type AudioChannel interface {
	Play(c Cue) error
	Pause()
	Close() error
}

// ResultText holds catalog keys for the reveal panel.
type ResultText struct {
	TitleKey  string
	TextKey   string
	ButtonKey string
}

// View is everything a presentation layer needs to draw the host.
type View struct {
	Stage     Stage
	Fate      Fate
	Round     int
	Decay     time.Duration // drawn countdown for this round; 0 before Begin
	ShowGame  bool
	SolveTime time.Duration // set when the cat was saved
	HeaderKey string
	Result    *ResultText // nil unless revealing
	Challenge game.Snapshot
}
