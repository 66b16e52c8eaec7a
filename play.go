package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mcts/config"
	"mcts/experiments"
	"mcts/game/adv2048"
	"mcts/game/minigame"
	"mcts/game/tictactoe"
	"mcts/game/twofortyeight"
	"mcts/searcher"
)

type playFlags struct {
	config      string
	game        string
	timePerMove time.Duration
	samples     int
	ensemble    int
	exploration float64
	repeat      int
	seed        uint64
	maxMoves    int
	output      string
	logLevel    string
	verbose     bool
}

func newPlayCommand() *cobra.Command {
	var f playFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play games with the ensemble searcher choosing every move",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return err
			}
			applyFlags(cmd, f, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") && cfg.Seed == 0 {
				cfg.Seed = randomSeed()
			}
			zerolog.SetGlobalLevel(cfg.Level())

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return play(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.config, "config", "", "YAML or JSON config file")
	flags.StringVar(&f.game, "game", "", fmt.Sprintf("game to play, one of %v", config.Games))
	flags.DurationVar(&f.timePerMove, "time", 0, "search time per move")
	flags.IntVar(&f.samples, "samples", 0, "fixed iterations per ensemble member and move, overrides --time")
	flags.IntVarP(&f.ensemble, "ensemble", "e", 0, "ensemble size")
	flags.Float64Var(&f.exploration, "exploration", 0, "UCT1 exploration constant")
	flags.IntVarP(&f.repeat, "repeat", "r", 0, "number of games")
	flags.Uint64Var(&f.seed, "seed", 0, "seed of the first game")
	flags.IntVar(&f.maxMoves, "max-moves", 0, "stop a game after this many moves")
	flags.StringVarP(&f.output, "output", "o", "", "directory for CSV/JSON records")
	flags.StringVar(&f.logLevel, "log-level", "", "zerolog level")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log every move, same as --log-level debug")
	return cmd
}

// applyFlags overrides the loaded config with the flags set on the command line.
func applyFlags(cmd *cobra.Command, f playFlags, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("game") {
		cfg.Game = f.game
	}
	if flags.Changed("time") {
		cfg.TimePerMove = f.timePerMove
	}
	if flags.Changed("samples") {
		cfg.Samples = f.samples
	}
	if flags.Changed("ensemble") {
		cfg.EnsembleSize = f.ensemble
	}
	if flags.Changed("exploration") {
		cfg.Exploration = f.exploration
	}
	if flags.Changed("repeat") {
		cfg.Repeats = f.repeat
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("max-moves") {
		cfg.MaxMoves = f.maxMoves
	}
	if flags.Changed("output") {
		cfg.OutputDir = f.output
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.verbose {
		cfg.LogLevel = zerolog.DebugLevel.String()
	}
}

func play(ctx context.Context, cfg config.Config) error {
	out := termenv.NewOutput(os.Stdout)

	var summary experiments.Summary
	var finals []fmt.Stringer
	var err error
	switch cfg.Game {
	case "minigame":
		summary, finals, err = runGames[minigame.Move](ctx, cfg, func(uint64) *minigame.State { return minigame.New() }, nil)
	case "tictactoe":
		summary, finals, err = runGames[tictactoe.Move](ctx, cfg, func(uint64) *tictactoe.State { return tictactoe.New() }, nil)
	case "2048":
		summary, finals, err = runGames[twofortyeight.Direction](ctx, cfg, twofortyeight.New, nil)
	case "adv2048":
		summary, finals, err = runGames[adv2048.Action](ctx, cfg, adv2048.New, func(g *adv2048.Game) error {
			g.RandomSpawn()
			return nil
		})
	default:
		return fmt.Errorf("unknown game %q", cfg.Game)
	}
	for i, final := range finals {
		printState(out, fmt.Sprintf("game %d", i+1), final)
	}
	if summary.Games > 0 {
		printSummary(out, summary)
	}
	return err
}

type printable[A comparable, S any] interface {
	searcher.State[A, S]
	fmt.Stringer
}

func runGames[A comparable, S printable[A, S]](ctx context.Context, cfg config.Config, newGame func(uint64) S, respond func(S) error) (experiments.Summary, []fmt.Stringer, error) {
	summary, finals, err := experiments.Run[A](ctx, cfg, newGame, respond)
	states := make([]fmt.Stringer, len(finals))
	for i, final := range finals {
		states[i] = final
	}
	return summary, states, err
}
