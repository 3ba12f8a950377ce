package config

import (
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/telemetry"
	"ctchen222/tictactoe-minimax/internal/validator"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string           `yaml:"log-level" env:"LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
	Board      game.BoardConfig `yaml:"board"`
	HumanMark  string           `yaml:"human-mark" env:"HUMAN_MARK" env-default:"X" validate:"mark"`
	FirstTurn  string           `yaml:"first-turn" env:"FIRST_TURN" validate:"omitempty,mark"`
	Opponent   Opponent         `yaml:"opponent"`
	Seed       uint64           `yaml:"seed" env:"SEED" env-default:"0"`
	AgentDelay time.Duration    `yaml:"agent-delay" env:"AGENT_DELAY" env-default:"500ms"`
	Telemetry  telemetry.Config `yaml:"telemetry"`
}

type Opponent struct {
	Kind     string `yaml:"kind" env:"OPPONENT_KIND" env-default:"agent" validate:"oneof=human agent bot ai"`
	Strategy string `yaml:"strategy" env:"OPPONENT_STRATEGY" env-default:"optimal"`
}

// Load reads the YAML file at path, applies environment overrides and validates the
// result. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := validator.GetValidator().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

// HumanPlayerMark returns the configured human mark.
func (that *Config) HumanPlayerMark() game.PlayerMark {
	return game.PlayerMark(that.HumanMark)
}

// FirstPlayerMark returns the fixed first mark, or game.None for a random draw.
func (that *Config) FirstPlayerMark() game.PlayerMark {
	return game.PlayerMark(that.FirstTurn)
}
