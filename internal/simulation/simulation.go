// internal/simulation/simulation.go
//
// Host application around the sequence challenge: the box, the cat, and
// the round flow that decides the cat's fate.
// Responsibilities:
//   - Begin a round: close the box, play the opening cue, draw the decay
//     deadline, reveal the minigame, then start it after the entry delay.
//   - Translate the engine's outcome into the cat's fate.
//   - Record finished rounds and own the audio channel for the round.
//   - Reset back to an open box from any stage.
//
// All methods must run on the scheduler's goroutine, like the engine.
package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quantumbox/internal/clock"
	"github.com/robalobadob/quantumbox/internal/game"
	"github.com/robalobadob/quantumbox/internal/store"
)

// Options configure a Simulation. Zero values pick defaults; Audio and Store
// are optional.
type Options struct {
	Policy   Policy
	Settings game.Settings
	Rand     *rand.Rand
	Audio    AudioDevice
	Store    store.Store
	OnChange func(View)       // after every visible change, including ticks
	Observer func(game.Event) // raw engine events
}

// Simulation drives one box and one challenge engine.
type Simulation struct {
	sched    clock.Scheduler
	engine   *game.Engine
	policy   Policy
	rng      *rand.Rand
	audio    AudioDevice
	channel  AudioChannel
	store    store.Store
	onChange func(View)

	stage     Stage
	fate      Fate
	round     int
	decay     time.Duration
	showGame  bool
	solveTime time.Duration

	reveal clock.Timer
	entry  clock.Timer
	meow   clock.Timer
}

// New builds a Simulation in StagePreSimulation.
func New(sched clock.Scheduler, opts Options) (*Simulation, error) {
	if opts.Policy == (Policy{}) {
		opts.Policy = DefaultPolicy()
	}
	if opts.Settings == (game.Settings{}) {
		opts.Settings = game.DefaultSettings()
	}
	if err := opts.Policy.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = game.NewRand(0)
	}

	s := &Simulation{
		sched:    sched,
		policy:   opts.Policy,
		rng:      opts.Rand,
		audio:    opts.Audio,
		store:    opts.Store,
		onChange: opts.OnChange,
		round:    1,
	}
	observer := opts.Observer
	s.engine = game.New(sched,
		game.WithSettings(opts.Settings),
		game.WithRand(opts.Rand),
		game.WithObserver(func(ev game.Event) {
			if observer != nil {
				observer(ev)
			}
			s.changed()
		}),
	)
	return s, nil
}

// Engine exposes the underlying challenge engine.
func (s *Simulation) Engine() *game.Engine { return s.engine }

// Begin closes the box and schedules the minigame. Only valid before a round.
func (s *Simulation) Begin() {
	if s.stage != StagePreSimulation {
		return
	}
	s.stage = StageSuperposition
	s.decay = s.drawDecay()

	s.acquireAudio()
	s.play(CueMeow)
	s.meow = s.sched.AfterFunc(s.policy.MeowDuration, func() {
		s.meow = nil
		if s.channel != nil {
			s.channel.Pause()
		}
	})
	s.reveal = s.sched.AfterFunc(s.policy.RevealDelay, func() {
		s.reveal = nil
		s.showChallenge()
	})

	log.Info().Int("round", s.round).Dur("decay", s.decay).Msg("simulation started")
	s.changed()
}

// Press forwards a symbol to the engine while the minigame is visible.
func (s *Simulation) Press(sym game.Symbol) {
	if !s.showGame {
		return
	}
	s.engine.Submit(sym)
}

// Toggle is the space bar: begin before a round, reset after the reveal.
func (s *Simulation) Toggle() {
	switch s.stage {
	case StagePreSimulation:
		s.Begin()
	case StageRevealing:
		s.Reset()
	}
}

// Reset aborts the challenge, cancels host timers, releases audio and opens
// the box for the next round. Safe from any stage.
func (s *Simulation) Reset() {
	s.teardown()
	s.stage = StagePreSimulation
	s.fate = FateUndetermined
	s.showGame = false
	s.solveTime = 0
	s.decay = 0
	s.round++
	log.Info().Int("round", s.round).Msg("simulation reset")
	s.changed()
}

// Close releases every resource without notifying OnChange.
func (s *Simulation) Close() {
	s.onChange = nil
	s.teardown()
}

// View returns the current state for rendering.
func (s *Simulation) View() View {
	v := View{
		Stage:     s.stage,
		Fate:      s.fate,
		Round:     s.round,
		Decay:     s.decay,
		ShowGame:  s.showGame,
		SolveTime: s.solveTime,
		Challenge: s.engine.Snapshot(),
	}
	switch s.stage {
	case StagePreSimulation:
		v.HeaderKey = "header.pre_simulation"
	case StageSuperposition:
		v.HeaderKey = "header.superposition"
	case StageRevealing:
		v.HeaderKey = "header." + s.fate.String()
		v.Result = &ResultText{
			TitleKey:  fmt.Sprintf("result.%s.title", s.fate),
			TextKey:   fmt.Sprintf("result.%s.text", s.fate),
			ButtonKey: fmt.Sprintf("result.%s.button", s.fate),
		}
	}
	return v
}

func (s *Simulation) showChallenge() {
	_, err := s.engine.Create(game.Config{
		Deadline:  s.decay,
		OnSolved:  s.solved,
		OnExpired: s.expired,
	})
	if err != nil {
		log.Error().Err(err).Msg("create challenge")
		return
	}
	s.showGame = true
	s.entry = s.sched.AfterFunc(s.policy.EntryDelay, func() {
		s.entry = nil
		s.engine.Start()
	})
	s.changed()
}

func (s *Simulation) solved(res game.Result) {
	s.stage = StageRevealing
	s.fate = FateAlive
	s.showGame = false
	s.solveTime = res.Elapsed
	s.play(CueMeow)
	s.record(res)
	log.Info().Int("round", s.round).Dur("elapsed", res.Elapsed).Int("retries", res.Retries).Msg("cat saved")
	s.changed()
}

func (s *Simulation) expired(res game.Result) {
	s.stage = StageRevealing
	s.fate = FateDead
	s.showGame = false
	s.record(res)
	log.Info().Int("round", s.round).Int("retries", res.Retries).Msg("atom decayed")
	s.changed()
}

func (s *Simulation) record(res game.Result) {
	if s.store == nil {
		return
	}
	err := s.store.Save(context.Background(), store.Round{
		ID:       res.ID,
		Number:   s.round,
		Outcome:  res.Outcome,
		Elapsed:  res.Elapsed,
		Deadline: s.decay,
		Retries:  res.Retries,
		Length:   res.Length,
		EndedAt:  s.sched.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("save round")
	}
}

// drawDecay picks whole seconds uniformly in the policy range. Ranges that
// contain no whole second fall back to DecayMin.
func (s *Simulation) drawDecay() time.Duration {
	lo := int((s.policy.DecayMin + time.Second - 1) / time.Second)
	hi := int(s.policy.DecayMax / time.Second)
	if hi < lo {
		return s.policy.DecayMin
	}
	return time.Duration(lo+s.rng.IntN(hi-lo+1)) * time.Second
}

func (s *Simulation) teardown() {
	s.engine.Abort()
	for _, t := range []*clock.Timer{&s.reveal, &s.entry, &s.meow} {
		if *t != nil {
			(*t).Stop()
			*t = nil
		}
	}
	s.releaseAudio()
}

func (s *Simulation) acquireAudio() {
	if s.audio == nil || s.channel != nil {
		return
	}
	ch, err := s.audio.Open()
	if err != nil {
		log.Warn().Err(err).Msg("open audio")
		return
	}
	s.channel = ch
}

func (s *Simulation) play(c Cue) {
	if s.channel == nil {
		return
	}
	if err := s.channel.Play(c); err != nil {
		log.Warn().Err(err).Str("cue", c.String()).Msg("play audio")
	}
}

func (s *Simulation) releaseAudio() {
	if s.channel == nil {
		return
	}
	if err := s.channel.Close(); err != nil {
		log.Warn().Err(err).Msg("close audio")
	}
	s.channel = nil
}

func (s *Simulation) changed() {
	if s.onChange != nil {
		s.onChange(s.View())
	}
}
