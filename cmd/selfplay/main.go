package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"chessmove/internal/chess"
	"chessmove/internal/engine"
	"chessmove/internal/logging"
)

func main() {
	start := flag.String("fen", "", "start placement (default: initial position)")
	maxMoves := flag.Int("maxmoves", 40, "max plies to play")
	budget := flag.Duration("budget", time.Second, "time budget per move")
	depth := flag.Int("depth", engine.DefaultMaxDepth, "deepening ceiling")
	games := flag.Int("games", 0, "play a match of this many games between -depth and -vs-depth instead")
	vsDepth := flag.Int("vs-depth", 2, "ceiling of the second player in a match")
	level := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log, err := logging.New(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	pos := chess.NewInitialPosition()
	if *start != "" {
		if pos, err = chess.Parse(*start); err != nil {
			log.Fatal().Err(err).Msg("bad start position")
		}
	}

	cfg := engine.DefaultConfig()
	cfg.TimeBudget = *budget
	cfg.MaxDepth = *depth
	e := engine.NewEngine(cfg).WithLogger(log)

	if *games > 0 {
		other := cfg
		other.MaxDepth = *vsDepth
		runMatch(e, e.WithConfig(other), pos, *games, *maxMoves)
		return
	}

	ctx := context.Background()
	side := chess.Maximizer
	fmt.Println(pos.Encode())
	for i := 0; i < *maxMoves && !chess.IsOver(pos); i++ {
		res, err := e.Search(ctx, pos, side)
		if err != nil {
			log.Warn().Err(err).Stringer("side", side).Msg("no move")
			break
		}
		pos = res.Position
		fmt.Printf("%3d %-9v %s  depth=%d score=%d nodes=%d time=%v\n",
			i+1, side, res.Move, res.Depth, res.Score, res.Nodes, res.TimeUsed.Round(time.Millisecond))
		fmt.Println(pos.Encode())
		side = side.Opposite()
	}
	if w := pos.Winner(); w != chess.NoColor {
		fmt.Printf("%v wins\n", w)
	}
}
