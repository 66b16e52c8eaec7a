package main

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mcts/config"
	"mcts/game/minigame"
)

func TestRandomSeed(t *testing.T) {
	for i := 0; i < 100; i++ {
		require.Less(t, randomSeed(), uint64(math.MaxInt64))
	}
}

func TestRunGames(t *testing.T) {
	t.Run("cancellation returns finished games", func(t *testing.T) {
		cfg := config.Default()
		cfg.Game = "minigame"
		cfg.EnsembleSize = 1
		cfg.Samples = 20
		cfg.Repeats = 2
		cfg.Seed = 3

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		summary, finals, err := runGames[minigame.Move](ctx, cfg, func(seed uint64) *minigame.State {
			if seed == cfg.Seed+1 {
				cancel()
			}
			return minigame.FromSum(8)
		}, nil)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, summary.Games)
		require.Len(t, finals, 1, "Finished games should still be printable")
	})
}

func TestApplyFlags(t *testing.T) {
	t.Run("only changed flags override", func(t *testing.T) {
		cmd := newPlayCommand()
		require.NoError(t, cmd.Flags().Parse([]string{"--game", "2048", "--time", "250ms", "-e", "3"}))

		cfg := config.Default()
		cfg.Repeats = 7
		var f playFlags
		f.game, f.timePerMove, f.ensemble = "2048", 250*time.Millisecond, 3
		applyFlags(cmd, f, &cfg)

		require.Equal(t, "2048", cfg.Game)
		require.Equal(t, 250*time.Millisecond, cfg.TimePerMove)
		require.Equal(t, 3, cfg.EnsembleSize)
		require.Equal(t, 7, cfg.Repeats, "Unset flags should keep the config value")
	})

	t.Run("verbose switches to debug", func(t *testing.T) {
		cmd := newPlayCommand()
		cfg := config.Default()
		applyFlags(cmd, playFlags{verbose: true}, &cfg)
		require.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestPlay(t *testing.T) {
	for _, game := range config.Games {
		t.Run(game, func(t *testing.T) {
			cfg := config.Default()
			cfg.Game = game
			cfg.EnsembleSize = 2
			cfg.Samples = 5
			cfg.MaxMoves = 3
			cfg.Seed = 1
			require.NoError(t, play(context.Background(), cfg))
		})
	}

	t.Run("unknown game", func(t *testing.T) {
		cfg := config.Default()
		cfg.Game = "chess"
		require.Error(t, play(context.Background(), cfg))
	})
}
