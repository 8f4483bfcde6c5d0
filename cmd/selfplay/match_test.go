package main

import (
	"testing"
	"time"

	"chessmove/internal/chess"
	"chessmove/internal/engine"
)

func TestPlayGameEndsOnKingCapture(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.MaxDepth = 2
	cfg.TimeBudget = time.Minute
	e := engine.NewEngine(cfg)

	start, err := chess.Parse("4k3/4R3/8/8/8/8/8/4K3")
	if err != nil {
		t.Fatal(err)
	}
	if w := playGame(e, e, start, 10); w != chess.Light {
		t.Fatalf("winner %v, want light", w)
	}
}

func TestPlayGameStuckSideLoses(t *testing.T) {
	e := engine.NewEngine(engine.DefaultConfig())
	// Light king is walled in by its own pawns, none of which can move.
	start, err := chess.Parse("KP6/PP6/8/8/8/8/8/4k3")
	if err != nil {
		t.Fatal(err)
	}
	if w := playGame(e, e, start, 10); w != chess.Dark {
		t.Fatalf("winner %v, want dark", w)
	}
}
