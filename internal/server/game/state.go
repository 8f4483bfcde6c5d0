package game

import (
	"time"

	"chessmove/internal/chess"
)

type Status string

const (
	Ongoing   Status = "ongoing"
	LightWins Status = "light_wins"
	DarkWins  Status = "dark_wins"
)

// StatusOf reads the outcome off the board: a side wins once the other king is gone.
func StatusOf(pos *chess.Position) Status {
	switch pos.Winner() {
	case chess.Light:
		return LightWins
	case chess.Dark:
		return DarkWins
	}
	return Ongoing
}

type GameState struct {
	ID        string
	Pos       *chess.Position
	ToMove    chess.Side
	Status    Status
	Plies     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// snapshot is handed out by the manager so callers never share the stored struct.
func (g *GameState) snapshot() *GameState {
	cp := *g
	cp.Pos = g.Pos.Clone()
	cp.Pos.Last = g.Pos.Last
	return &cp
}
