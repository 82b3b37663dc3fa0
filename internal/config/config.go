// internal/config/config.go
//
// Process configuration, read from the environment.
// A .env file in the working directory is loaded first when present
// (development convenience); real environment variables win over it.
//
// Environment variables (defaults in envDefault tags):
//   LOG_LEVEL, QB_LOG_FILE, QB_LANG, QB_DAILY_SALT
//   QB_DECAY_MIN, QB_DECAY_MAX, QB_REVEAL_DELAY, QB_ENTRY_DELAY, QB_MEOW_DURATION
//   QB_GAME_* engine knobs (see GameConfig)

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/quantumbox/internal/game"
	"github.com/robalobadob/quantumbox/internal/simulation"
)

// Config is the full process configuration.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile   string `env:"QB_LOG_FILE"`
	Lang      string `env:"QB_LANG" envDefault:"pt-BR"`
	DailySalt string `env:"QB_DAILY_SALT" envDefault:"local_dev_salt"`

	DecayMin     time.Duration `env:"QB_DECAY_MIN" envDefault:"3s"`
	DecayMax     time.Duration `env:"QB_DECAY_MAX" envDefault:"30s"`
	RevealDelay  time.Duration `env:"QB_REVEAL_DELAY" envDefault:"3s"`
	EntryDelay   time.Duration `env:"QB_ENTRY_DELAY" envDefault:"1500ms"`
	MeowDuration time.Duration `env:"QB_MEOW_DURATION" envDefault:"2s"`

	Game GameConfig `envPrefix:"QB_GAME_"`
}

// GameConfig mirrors game.Settings.
type GameConfig struct {
	AlphabetSize     int           `env:"ALPHABET_SIZE" envDefault:"4"`
	MinLength        int           `env:"MIN_LENGTH" envDefault:"3"`
	MaxLength        int           `env:"MAX_LENGTH" envDefault:"6"`
	SequenceInterval time.Duration `env:"SEQUENCE_INTERVAL" envDefault:"1s"`
	Highlight        time.Duration `env:"HIGHLIGHT" envDefault:"600ms"`
	InputFlash       time.Duration `env:"INPUT_FLASH" envDefault:"200ms"`
	RetryPause       time.Duration `env:"RETRY_PAUSE" envDefault:"1500ms"`
	SettleDelay      time.Duration `env:"SETTLE_DELAY" envDefault:"1s"`
	Tick             time.Duration `env:"TICK" envDefault:"100ms"`
}

// Load reads .env (if any) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment only and validates the result.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the engine settings and host policy.
func (c Config) Validate() error {
	if err := c.GameSettings().Validate(); err != nil {
		return fmt.Errorf("game settings: %w", err)
	}
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("host policy: %w", err)
	}
	return nil
}

// GameSettings converts the QB_GAME_* block.
func (c Config) GameSettings() game.Settings {
	g := c.Game
	return game.Settings{
		AlphabetSize:     g.AlphabetSize,
		MinLength:        g.MinLength,
		MaxLength:        g.MaxLength,
		SequenceInterval: g.SequenceInterval,
		Highlight:        g.Highlight,
		InputFlash:       g.InputFlash,
		RetryPause:       g.RetryPause,
		SettleDelay:      g.SettleDelay,
		Tick:             g.Tick,
	}
}

// Policy converts the host timings.
func (c Config) Policy() simulation.Policy {
	return simulation.Policy{
		DecayMin:     c.DecayMin,
		DecayMax:     c.DecayMax,
		RevealDelay:  c.RevealDelay,
		EntryDelay:   c.EntryDelay,
		MeowDuration: c.MeowDuration,
	}
}
