package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string   `yaml:"log-file" env:"LOG_FILE"`
	Game     Game     `yaml:"game"`
	Opponent Opponent `yaml:"opponent"`
}

type Game struct {
	BoardSize  int    `yaml:"board-size" env:"GAME_BOARD_SIZE" env-default:"4"`
	FirstMover string `yaml:"first-mover" env:"GAME_FIRST_MOVER" env-default:"X"`
	// FixedFirstMover keeps the same player opening every tournament round.
	FixedFirstMover  bool `yaml:"fixed-first-mover" env:"GAME_FIXED_FIRST_MOVER"`
	DefaultRounds    int  `yaml:"default-rounds" env:"GAME_DEFAULT_ROUNDS" env-default:"3"`
	ConsistencyCheck bool `yaml:"consistency-check" env:"GAME_CONSISTENCY_CHECK"`
}

type Opponent struct {
	// Seed for the random opponent, 0 seeds from the clock.
	Seed       int64         `yaml:"seed" env:"OPPONENT_SEED"`
	ThinkDelay time.Duration `yaml:"think-delay" env:"OPPONENT_THINK_DELAY" env-default:"500ms"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the YAML file at path with environment overrides. A missing file falls back to
// environment variables and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log-level %q", ErrInvalidConfig, that.LogLevel)
	}

	if that.Game.BoardSize < entity.MinBoardSize {
		return fmt.Errorf("%w: board-size %d, must be at least %d", ErrInvalidConfig, that.Game.BoardSize, entity.MinBoardSize)
	}

	if _, err := entity.ParseMark(that.Game.FirstMover); err != nil {
		return fmt.Errorf("%w: first-mover: %w", ErrInvalidConfig, err)
	}

	if that.Game.DefaultRounds < 1 {
		return fmt.Errorf("%w: default-rounds %d, must be positive", ErrInvalidConfig, that.Game.DefaultRounds)
	}

	if that.Opponent.ThinkDelay < 0 {
		return fmt.Errorf("%w: negative think-delay %s", ErrInvalidConfig, that.Opponent.ThinkDelay)
	}

	return nil
}

// FirstMoverMark returns the configured first mover. Call after Validate.
func (that *Game) FirstMoverMark() entity.Mark {
	mark, err := entity.ParseMark(that.FirstMover)
	if err != nil {
		return entity.PlayerX
	}

	return mark
}
