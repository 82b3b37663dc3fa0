// internal/scenario/scenario.go
//
// Scripted challenge runs.
// A scenario fixes a deadline (and optionally the sequence or the RNG seed),
// lists timed player actions, and states what the run must end with. Runs
// use a virtual clock so every transcript is exact and repeatable.

package scenario

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/quantumbox/internal/game"
)

// Scenario is one scripted run.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Deadline    time.Duration `yaml:"deadline"`

	// Sequence fixes the symbols; when empty the engine generates them
	// from Seed.
	Sequence []string `yaml:"sequence,omitempty"`
	Seed     uint64   `yaml:"seed,omitempty"`

	Steps  []Step `yaml:"steps"`
	Expect Expect `yaml:"expect"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Start          bool          `yaml:"start,omitempty"`
	Wait           time.Duration `yaml:"wait,omitempty"`
	Submit         []string      `yaml:"submit,omitempty"`
	SubmitSequence bool          `yaml:"submit_sequence,omitempty"`
	SubmitWrong    bool          `yaml:"submit_wrong,omitempty"`
	Abort          bool          `yaml:"abort,omitempty"`
}

// Expect lists end-of-run checks. Unset fields are not checked.
type Expect struct {
	Outcome       string `yaml:"outcome,omitempty"`
	Solved        *int   `yaml:"solved,omitempty"`
	Expired       *int   `yaml:"expired,omitempty"`
	Cursor        *int   `yaml:"cursor,omitempty"`
	Phase         string `yaml:"phase,omitempty"`
	PendingTimers *int   `yaml:"pending_timers,omitempty"`
}

// LoadFile reads and validates a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario, rejecting unknown fields.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", sc.Name, err)
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sc.Deadline <= 0 {
		return fmt.Errorf("deadline must be positive")
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("steps must not be empty")
	}
	if _, err := parseSymbols(sc.Sequence); err != nil {
		return fmt.Errorf("sequence: %w", err)
	}
	for i, st := range sc.Steps {
		if n := st.actions(); n != 1 {
			return fmt.Errorf("step %d: want exactly one action, got %d", i+1, n)
		}
		if st.Wait < 0 {
			return fmt.Errorf("step %d: negative wait", i+1)
		}
		if _, err := parseSymbols(st.Submit); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{st.Start, st.Wait > 0, len(st.Submit) > 0, st.SubmitSequence, st.SubmitWrong, st.Abort} {
		if set {
			n++
		}
	}
	return n
}

func parseSymbols(vs []string) ([]game.Symbol, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	out := make([]game.Symbol, 0, len(vs))
	for _, v := range vs {
		s, err := game.ParseSymbol(v)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
