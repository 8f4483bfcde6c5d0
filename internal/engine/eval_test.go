package engine

import (
	"testing"

	"chessmove/internal/chess"
)

func mustParse(t *testing.T, s string) *chess.Position {
	t.Helper()
	pos, err := chess.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return pos
}

func TestEvaluateTerminal(t *testing.T) {
	w := DefaultWeights()
	sides := []chess.Side{chess.Maximizer, chess.Minimizer}

	noLightKing := mustParse(t, "4k3/8/8/8/8/8/3Q4/8")
	noDarkKing := mustParse(t, "8/3q4/8/8/8/8/8/4K3")
	for _, s := range sides {
		if got := Evaluate(noLightKing, s, w); got != MinScore {
			t.Fatalf("light king gone, %v just moved: got %d want MinScore", s, got)
		}
		if got := Evaluate(noDarkKing, s, w); got != MaxScore {
			t.Fatalf("dark king gone, %v just moved: got %d want MaxScore", s, got)
		}
	}

	// Unreachable through play; the side that just moved is credited.
	empty := mustParse(t, "8/8/8/8/8/8/8/8")
	if got := Evaluate(empty, chess.Maximizer, w); got != MaxScore {
		t.Fatalf("no kings, maximizer moved: got %d", got)
	}
	if got := Evaluate(empty, chess.Minimizer, w); got != MinScore {
		t.Fatalf("no kings, minimizer moved: got %d", got)
	}
}

func TestEvaluateStatic(t *testing.T) {
	w := DefaultWeights()
	cases := []struct {
		name      string
		placement string
		want      int
	}{
		{"bare kings", "4k3/8/8/8/8/8/8/4K3", 0},
		{"initial", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", 0},
		// +100 material, +1 row of advancement, mobility 5-5.
		{"light pawn", "4k3/8/8/8/8/8/4P3/4K3", 110},
		{"dark pawn", "4k3/4p3/8/8/8/8/8/4K3", -110},
		// Pawn on the 6th row: 4 rows advanced; light mobility king 5 + pawn 1, dark king 5.
		{"advanced pawn", "4k3/8/4P3/8/8/8/8/4K3", 100 + 10*5 + 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos := mustParse(t, c.placement)
			for _, s := range []chess.Side{chess.Maximizer, chess.Minimizer} {
				got := Evaluate(pos, s, w)
				if got != c.want {
					t.Fatalf("%v just moved: got %d want %d", s, got, c.want)
				}
				if got <= MinScore || got >= MaxScore {
					t.Fatalf("static score %d reached a terminal bound", got)
				}
			}
		})
	}
}

func TestEvaluateUsesWeights(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/8/8/8/8/R3K3")
	w := DefaultWeights()
	base := Evaluate(pos, chess.Maximizer, w)
	w.Rook = 0
	if got := Evaluate(pos, chess.Maximizer, w); got != base-500 {
		t.Fatalf("rook weight not applied: base=%d got=%d", base, got)
	}
}
