package main

import (
	"flag"
	"fmt"
	"os"

	"chessmove/internal/chess"
	"chessmove/internal/engine"
)

func main() {
	flag.Parse()
	placement := flag.Arg(0)

	pos := chess.NewInitialPosition()
	if placement != "" {
		var err error
		if pos, err = chess.Parse(placement); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fmt.Println("FEN:", pos.Encode())
	fmt.Print(pos.Pretty())
	for _, side := range []chess.Side{chess.Maximizer, chess.Minimizer} {
		fmt.Printf("%v: %d children\n", side, chess.Count(pos, side))
		for _, m := range chess.Moves(pos, side) {
			fmt.Print(" ", m)
		}
		fmt.Println()
	}
	fmt.Println("static score:", engine.Evaluate(pos, chess.Minimizer, engine.DefaultWeights()))
}
