package game

import (
	"fmt"
	"time"
)

// Settings holds the engine's tunables. DefaultSettings matches the product.
type Settings struct {
	AlphabetSize     int
	MinLength        int
	MaxLength        int
	SequenceInterval time.Duration // playback start to first symbol, and symbol to symbol
	Highlight        time.Duration // how long a played-back symbol stays lit
	InputFlash       time.Duration // feedback flash for a pressed symbol
	RetryPause       time.Duration // wrong input to replay
	SettleDelay      time.Duration // solving input to OnSolved
	Tick             time.Duration // countdown granularity
}

// DefaultSettings returns the reference timings.
func DefaultSettings() Settings {
	return Settings{
		AlphabetSize:     4,
		MinLength:        3,
		MaxLength:        6,
		SequenceInterval: 1000 * time.Millisecond,
		Highlight:        600 * time.Millisecond,
		InputFlash:       200 * time.Millisecond,
		RetryPause:       1500 * time.Millisecond,
		SettleDelay:      1000 * time.Millisecond,
		Tick:             100 * time.Millisecond,
	}
}

// Validate checks ranges. Errors wrap ErrInvalidConfiguration.
func (s Settings) Validate() error {
	if s.AlphabetSize < 2 || s.AlphabetSize > 9 {
		return fmt.Errorf("%w: alphabet size %d not in [2,9]", ErrInvalidConfiguration, s.AlphabetSize)
	}
	if s.MinLength < 1 || s.MaxLength < s.MinLength {
		return fmt.Errorf("%w: length range [%d,%d]", ErrInvalidConfiguration, s.MinLength, s.MaxLength)
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"sequence interval", s.SequenceInterval},
		{"highlight", s.Highlight},
		{"input flash", s.InputFlash},
		{"retry pause", s.RetryPause},
		{"settle delay", s.SettleDelay},
		{"tick", s.Tick},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfiguration, d.name)
		}
	}
	if s.Highlight > s.SequenceInterval {
		return fmt.Errorf("%w: highlight %s exceeds sequence interval %s",
			ErrInvalidConfiguration, s.Highlight, s.SequenceInterval)
	}
	return nil
}
