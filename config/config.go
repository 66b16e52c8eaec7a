// Package config loads the settings of a play session: defaults, then a YAML
// or JSON file, then MCTS_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"mcts/engine"
	"mcts/searcher"
)

// Games that can be played
var Games = []string{"minigame", "tictactoe", "2048", "adv2048"}

type Config struct {
	Game         string        `json:"game" yaml:"game"`
	EnsembleSize int           `json:"ensemble_size" yaml:"ensemble_size"`
	TimePerMove  time.Duration `json:"time_per_move" yaml:"time_per_move"`
	// Samples switches to a fixed number of iterations per member and move.
	Samples     int     `json:"samples" yaml:"samples"`
	Exploration float64 `json:"exploration" yaml:"exploration"`
	Repeats     int     `json:"repeats" yaml:"repeats"`
	MaxMoves    int     `json:"max_moves" yaml:"max_moves"`
	Seed        uint64  `json:"seed" yaml:"seed"`
	BatchMin    int     `json:"batch_min" yaml:"batch_min"`
	BatchMax    int     `json:"batch_max" yaml:"batch_max"`
	BatchCutoff int     `json:"batch_cutoff" yaml:"batch_cutoff"`
	OutputDir   string  `json:"output_dir" yaml:"output_dir"`
	LogLevel    string  `json:"log_level" yaml:"log_level"`
}

func Default() Config {
	return Config{
		Game:         "adv2048",
		EnsembleSize: 10,
		TimePerMove:  time.Second,
		Exploration:  searcher.Exploration,
		Repeats:      1,
		MaxMoves:     engine.MaxMoves,
		BatchMin:     searcher.MinBatch,
		BatchMax:     searcher.MaxBatch,
		BatchCutoff:  searcher.BatchCutoff,
		LogLevel:     "info",
	}
}

// Load applies path (if not empty) and the environment on top of the
// defaults and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	loadEnv(&config)

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}

	return nil
}

func loadEnv(config *Config) {
	if v := os.Getenv("MCTS_GAME"); v != "" {
		config.Game = v
	}
	if v := os.Getenv("MCTS_ENSEMBLE_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.EnsembleSize = i
		}
	}
	if v := os.Getenv("MCTS_TIME_PER_MOVE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TimePerMove = d
		}
	}
	if v := os.Getenv("MCTS_SAMPLES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Samples = i
		}
	}
	if v := os.Getenv("MCTS_EXPLORATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Exploration = f
		}
	}
	if v := os.Getenv("MCTS_REPEATS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Repeats = i
		}
	}
	if v := os.Getenv("MCTS_MAX_MOVES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.MaxMoves = i
		}
	}
	if v := os.Getenv("MCTS_SEED"); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Seed = u
		}
	}
	if v := os.Getenv("MCTS_BATCH_MIN"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.BatchMin = i
		}
	}
	if v := os.Getenv("MCTS_BATCH_MAX"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.BatchMax = i
		}
	}
	if v := os.Getenv("MCTS_BATCH_CUTOFF"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.BatchCutoff = i
		}
	}
	if v := os.Getenv("MCTS_OUTPUT_DIR"); v != "" {
		config.OutputDir = v
	}
	if v := os.Getenv("MCTS_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
}

func (c Config) Validate() error {
	if !lo.Contains(Games, c.Game) {
		return fmt.Errorf("unknown game %q, expected one of %v", c.Game, Games)
	}
	if c.EnsembleSize <= 0 {
		return fmt.Errorf("ensemble_size must be positive, got %d", c.EnsembleSize)
	}
	if c.Samples < 0 {
		return fmt.Errorf("samples cannot be negative, got %d", c.Samples)
	}
	if c.Samples == 0 && c.TimePerMove <= 0 {
		return fmt.Errorf("either samples or time_per_move must be positive")
	}
	if c.Exploration < 0 {
		return fmt.Errorf("exploration cannot be negative, got %v", c.Exploration)
	}
	if c.Repeats <= 0 {
		return fmt.Errorf("repeats must be positive, got %d", c.Repeats)
	}
	if c.MaxMoves <= 0 {
		return fmt.Errorf("max_moves must be positive, got %d", c.MaxMoves)
	}
	if c.BatchMin <= 0 || c.BatchMax < c.BatchMin {
		return fmt.Errorf("batch band [%d, %d] is invalid", c.BatchMin, c.BatchMax)
	}
	if c.BatchCutoff <= 0 {
		return fmt.Errorf("batch_cutoff must be positive, got %d", c.BatchCutoff)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the configured log level, or info if it does not parse.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

