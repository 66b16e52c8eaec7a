package main

import (
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"lukechampine.com/frand"
)

// randomSeed draws a seed that also fits signed 64-bit consumers.
func randomSeed() uint64 {
	return frand.Uint64n(math.MaxInt64)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:           "mcts",
		Short:         "Ensemble Monte Carlo tree search for 2048 and friends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPlayCommand(), newRolloutCommand())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
