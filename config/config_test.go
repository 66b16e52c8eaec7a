package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate(), "Defaults should be valid")
	require.Equal(t, "adv2048", config.Game)
	require.Equal(t, time.Second, config.TimePerMove)
	require.Equal(t, zerolog.InfoLevel, config.Level())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(c *Config) {}},
		{name: "fixed samples without time", modify: func(c *Config) { c.TimePerMove = 0; c.Samples = 100 }},
		{name: "unknown game", modify: func(c *Config) { c.Game = "chess" }, wantErr: true},
		{name: "empty ensemble", modify: func(c *Config) { c.EnsembleSize = 0 }, wantErr: true},
		{name: "no search limit", modify: func(c *Config) { c.TimePerMove = 0 }, wantErr: true},
		{name: "negative samples", modify: func(c *Config) { c.Samples = -1 }, wantErr: true},
		{name: "negative exploration", modify: func(c *Config) { c.Exploration = -0.1 }, wantErr: true},
		{name: "zero repeats", modify: func(c *Config) { c.Repeats = 0 }, wantErr: true},
		{name: "zero max moves", modify: func(c *Config) { c.MaxMoves = 0 }, wantErr: true},
		{name: "inverted batch band", modify: func(c *Config) { c.BatchMin = 200 }, wantErr: true},
		{name: "zero batch cutoff", modify: func(c *Config) { c.BatchCutoff = 0 }, wantErr: true},
		{name: "bad log level", modify: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modify(&config)
			err := config.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		config, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), config)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		config, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		require.Equal(t, Default(), config)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcts.yaml")
		data := "game: \"2048\"\nensemble_size: 4\ntime_per_move: 250ms\nexploration: 0.5\nrepeats: 3\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		config, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "2048", config.Game)
		require.Equal(t, 4, config.EnsembleSize)
		require.Equal(t, 250*time.Millisecond, config.TimePerMove)
		require.Equal(t, 0.5, config.Exploration)
		require.Equal(t, 3, config.Repeats)
		require.Equal(t, 100, config.BatchMax, "Unset fields should keep their defaults")
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcts.json")
		data := `{"game": "tictactoe", "samples": 50, "seed": 9}`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		config, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "tictactoe", config.Game)
		require.Equal(t, 50, config.Samples)
		require.Equal(t, uint64(9), config.Seed)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("game: \"2048\"\nensemble_size: 4\n"), 0644))
		t.Setenv("MCTS_ENSEMBLE_SIZE", "6")
		t.Setenv("MCTS_TIME_PER_MOVE", "2s")
		t.Setenv("MCTS_SEED", "17")
		t.Setenv("MCTS_LOG_LEVEL", "debug")

		config, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "2048", config.Game)
		require.Equal(t, 6, config.EnsembleSize)
		require.Equal(t, 2*time.Second, config.TimePerMove)
		require.Equal(t, uint64(17), config.Seed)
		require.Equal(t, zerolog.DebugLevel, config.Level())
	})

	t.Run("environment sets the batch band", func(t *testing.T) {
		t.Setenv("MCTS_BATCH_MIN", "20")
		t.Setenv("MCTS_BATCH_MAX", "400")
		t.Setenv("MCTS_BATCH_CUTOFF", "8")

		config, err := Load("")
		require.NoError(t, err)
		require.Equal(t, 20, config.BatchMin)
		require.Equal(t, 400, config.BatchMax)
		require.Equal(t, 8, config.BatchCutoff)
	})

	t.Run("unparsable environment values are ignored", func(t *testing.T) {
		t.Setenv("MCTS_REPEATS", "many")

		config, err := Load("")
		require.NoError(t, err)
		require.Equal(t, 1, config.Repeats)
	})

	t.Run("invalid result", func(t *testing.T) {
		t.Setenv("MCTS_GAME", "go")

		_, err := Load("")
		require.ErrorContains(t, err, "invalid config")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("game: [unterminated\n"), 0644))

		_, err := Load(path)
		require.ErrorContains(t, err, "load config file")
	})
}
