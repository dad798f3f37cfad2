package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/lazharichir/drawpoker/domain"
)

const (
	MinStartingChips = 10
	MaxStartingChips = 10000
	ChipStep         = 10
	MinTurnTimeout   = 5 * time.Second
	MaxTurnTimeout   = 300 * time.Second
	MinDiscardsLimit = 1
	MaxDiscardsLimit = 5
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the table settings and the optional outer services.
// Players, StartingChips and TurnTimeout left at zero are asked for at startup;
// a negative TurnTimeout disables the turn timer.
type Config struct {
	Players       int           `env:"POKER_PLAYERS" env-description:"number of players (2-6)"`
	StartingChips int           `env:"POKER_STARTING_CHIPS" env-description:"starting chips (10-10000, steps of 10)"`
	MinBet        int           `env:"POKER_MIN_BET" env-default:"10" env-description:"minimum bet and raise"`
	TurnTimeout   time.Duration `env:"POKER_TURN_TIMEOUT" env-description:"time per decision (5s-300s, negative for none)"`
	MaxDiscards   int           `env:"POKER_MAX_DISCARDS" env-default:"3" env-description:"cards a player may replace (1-5)"`
	PlayerNames   []string      `env:"POKER_PLAYER_NAMES" env-separator:"," env-description:"player names, comma separated"`

	LogLevel string `env:"POKER_LOG_LEVEL" env-default:"info" env-description:"logrus level"`
	LogFile  string `env:"POKER_LOG_FILE" env-default:"drawpoker.log" env-description:"log file, keeps logs off the game screen"`
	LogDir   string `env:"POKER_TABLE_LOG_DIR" env-description:"directory receiving the table log at the end of a game"`

	RedisAddr  string `env:"POKER_REDIS_ADDR" env-description:"redis address for the action queue, empty disables it"`
	RedisDB    int    `env:"POKER_REDIS_DB" env-default:"0"`
	RedisQueue string `env:"POKER_REDIS_QUEUE" env-default:"drawpoker_actions"`

	SpectatorAddr string `env:"POKER_SPECTATOR_ADDR" env-description:"listen address of the spectator feed, empty disables it"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// Usage describes every environment variable, for --help
func Usage() (string, error) {
	return cleanenv.GetDescription(&Config{}, nil)
}

// Complete reports whether every table setting is known
func (c *Config) Complete() bool {
	return c.Players != 0 && c.StartingChips != 0 && c.TurnTimeout != 0
}

// Timeout is the per-decision limit handed to the table, 0 meaning none
func (c *Config) Timeout() time.Duration {
	if c.TurnTimeout < 0 {
		return 0
	}
	return c.TurnTimeout
}

// Rules builds the table rules
func (c *Config) Rules() domain.TableRules {
	return domain.TableRules{
		MinBet:      c.MinBet,
		TurnTimeout: c.Timeout(),
		MaxDiscards: c.MaxDiscards,
	}
}

// Validate checks every table setting against its range
func (c *Config) Validate() error {
	if err := ValidatePlayers(c.Players); err != nil {
		return err
	}
	if err := ValidateStartingChips(c.StartingChips); err != nil {
		return err
	}
	if c.TurnTimeout > 0 {
		if err := ValidateTurnTimeout(c.TurnTimeout); err != nil {
			return err
		}
	}
	if c.MinBet <= 0 {
		return fmt.Errorf("%w: minimum bet must be positive", ErrInvalidConfig)
	}
	if c.MaxDiscards < MinDiscardsLimit || c.MaxDiscards > MaxDiscardsLimit {
		return fmt.Errorf("%w: max discards must be between %d and %d", ErrInvalidConfig, MinDiscardsLimit, MaxDiscardsLimit)
	}
	if len(c.PlayerNames) > c.Players {
		return fmt.Errorf("%w: %d names for %d players", ErrInvalidConfig, len(c.PlayerNames), c.Players)
	}
	if err := c.Rules().Validate(c.Players); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func ValidatePlayers(n int) error {
	if n < domain.MinPlayers || n > domain.MaxPlayers {
		return fmt.Errorf("%w: players must be between %d and %d", ErrInvalidConfig, domain.MinPlayers, domain.MaxPlayers)
	}
	return nil
}

func ValidateStartingChips(chips int) error {
	if chips < MinStartingChips || chips > MaxStartingChips || chips%ChipStep != 0 {
		return fmt.Errorf("%w: starting chips must be between %d and %d in steps of %d", ErrInvalidConfig, MinStartingChips, MaxStartingChips, ChipStep)
	}
	return nil
}

func ValidateTurnTimeout(d time.Duration) error {
	if d < MinTurnTimeout || d > MaxTurnTimeout {
		return fmt.Errorf("%w: turn timeout must be between %s and %s", ErrInvalidConfig, MinTurnTimeout, MaxTurnTimeout)
	}
	return nil
}
