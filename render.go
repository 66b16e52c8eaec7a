package main

import (
	"fmt"

	"github.com/muesli/termenv"

	"mcts/experiments"
)

func printState(out *termenv.Output, title string, state fmt.Stringer) {
	header := out.String(title).Bold().Foreground(out.Color("6"))
	fmt.Fprintln(out, header)
	fmt.Fprintln(out, state)
}

func printSummary(out *termenv.Output, summary experiments.Summary) {
	label := out.String("summary").Bold().Foreground(out.Color("2"))
	fmt.Fprintf(out, "%s %v (%d finished)\n", label, summary, summary.Terminal)
}
