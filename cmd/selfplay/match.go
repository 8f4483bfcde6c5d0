package main

import (
	"context"
	"fmt"

	"chessmove/internal/chess"
	"chessmove/internal/engine"
)

// runMatch plays a and b against each other, swapping colours every game.
func runMatch(a, b *engine.Engine, start *chess.Position, games, maxMoves int) {
	nameA := fmt.Sprintf("depth<=%d", a.Config().MaxDepth)
	nameB := fmt.Sprintf("depth<=%d", b.Config().MaxDepth)
	var winsA, winsB, draws int

	for g := 0; g < games; g++ {
		light, dark := a, b
		if g%2 == 1 {
			light, dark = b, a
		}
		lightName, darkName := nameA, nameB
		if light == b {
			lightName, darkName = nameB, nameA
		}
		fmt.Printf("\n=== game %d: light %s, dark %s ===\n", g+1, lightName, darkName)

		switch w := playGame(light, dark, start, maxMoves); {
		case w == chess.NoColor:
			draws++
			fmt.Println("draw")
		case (w == chess.Light) == (light == a):
			winsA++
			fmt.Printf("%s wins\n", nameA)
		default:
			winsB++
			fmt.Printf("%s wins\n", nameB)
		}
	}

	fmt.Printf("\n=== final ===\n%s: %d\n%s: %d\ndraws: %d\n", nameA, winsA, nameB, winsB, draws)
}

// playGame returns the winning colour, or NoColor when maxMoves runs out.
// A side left without moves loses.
func playGame(light, dark *engine.Engine, start *chess.Position, maxMoves int) chess.Color {
	pos := start
	side := chess.Maximizer
	for i := 0; i < maxMoves; i++ {
		e := light
		if side == chess.Minimizer {
			e = dark
		}
		res, err := e.Search(context.Background(), pos, side)
		if err != nil {
			return side.Opposite().Color()
		}
		pos = res.Position
		if w := pos.Winner(); w != chess.NoColor {
			return w
		}
		side = side.Opposite()
	}
	return chess.NoColor
}
