package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"mcts/config"
	"mcts/experiments"
	"mcts/game/adv2048"
	"mcts/game/minigame"
	"mcts/game/tictactoe"
	"mcts/game/twofortyeight"
)

func newRolloutCommand() *cobra.Command {
	var game string
	var playouts int
	var seed uint64
	cmd := &cobra.Command{
		Use:   "rollout",
		Short: "Measure random playouts from a game's starting position",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = randomSeed()
			}

			var result experiments.Throughput
			var err error
			switch game {
			case "minigame":
				result, err = experiments.MeasureThroughput[minigame.Move](minigame.New(), playouts, seed)
			case "tictactoe":
				result, err = experiments.MeasureThroughput[tictactoe.Move](tictactoe.New(), playouts, seed)
			case "2048":
				result, err = experiments.MeasureThroughput[twofortyeight.Direction](twofortyeight.New(seed), playouts, seed)
			case "adv2048":
				result, err = experiments.MeasureThroughput[adv2048.Action](adv2048.New(seed), playouts, seed)
			default:
				return fmt.Errorf("unknown game %q, expected one of %v", game, config.Games)
			}
			if err != nil {
				return err
			}

			out := termenv.NewOutput(os.Stdout)
			fmt.Fprintf(out, "%s %d playouts in %v (%.0f/s), expected reward %.4f\n",
				out.String(game).Bold(), result.Playouts, result.Duration, result.PlayoutsPerSecond, result.ExpectedReward)
			return nil
		},
	}
	cmd.Flags().StringVar(&game, "game", "2048", fmt.Sprintf("game to measure, one of %v", config.Games))
	cmd.Flags().IntVarP(&playouts, "samples", "n", 1000, "number of playouts")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the game and the playouts")
	return cmd
}
