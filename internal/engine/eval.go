package engine

import (
	"math"

	"chessmove/internal/chess"
)

const (
	// MaxScore and MinScore mark a captured king; nothing else reaches them.
	MaxScore = math.MaxInt
	MinScore = math.MinInt
)

// Weights are the evaluation constants. King weight is symmetric and never
// decides anything since king loss is terminal.
type Weights struct {
	Pawn        int `json:"pawn"`
	Knight      int `json:"knight"`
	Bishop      int `json:"bishop"`
	Rook        int `json:"rook"`
	Queen       int `json:"queen"`
	King        int `json:"king"`
	Advancement int `json:"advancement"`
}

func DefaultWeights() Weights {
	return Weights{
		Pawn:        100,
		Knight:      320,
		Bishop:      330,
		Rook:        500,
		Queen:       900,
		King:        20000,
		Advancement: 10,
	}
}

func (w Weights) value(k chess.Kind) int {
	switch k {
	case chess.Pawn:
		return w.Pawn
	case chess.Knight:
		return w.Knight
	case chess.Bishop:
		return w.Bishop
	case chess.Rook:
		return w.Rook
	case chess.Queen:
		return w.Queen
	case chess.King:
		return w.King
	}
	return 0
}

// wins reports whether side has taken the opposing king.
func wins(pos *chess.Position, side chess.Side) bool {
	return !pos.KingExists(side.Opposite().Color())
}

func winScore(side chess.Side) int {
	if side == chess.Maximizer {
		return MaxScore
	}
	return MinScore
}

// Evaluate scores pos from the maximizer's (light) point of view. sideJustMoved
// only matters for finished games: its win is checked first.
func Evaluate(pos *chess.Position, sideJustMoved chess.Side, w Weights) int {
	if chess.IsOver(pos) {
		if wins(pos, sideJustMoved) {
			return winScore(sideJustMoved)
		}
		if wins(pos, sideJustMoved.Opposite()) {
			return winScore(sideJustMoved.Opposite())
		}
		return 0
	}
	return evaluateMaterial(pos, w) + w.Advancement*evaluateAdvancement(pos) + evaluateMobility(pos)
}

// light material - dark material
func evaluateMaterial(pos *chess.Position, w Weights) int {
	score := 0
	for r := 0; r < chess.Size; r++ {
		for c := 0; c < chess.Size; c++ {
			pc := pos.Grid[r][c]
			switch {
			case pc.IsLight():
				score += w.value(pc.Kind())
			case pc.IsDark():
				score -= w.value(pc.Kind())
			}
		}
	}
	return score
}

// Pawns earn one point per row advanced toward their promotion row.
func evaluateAdvancement(pos *chess.Position) int {
	light, dark := 0, 0
	for r := 0; r < chess.Size; r++ {
		for c := 0; c < chess.Size; c++ {
			switch pos.Grid[r][c] {
			case chess.MakePiece(chess.Light, chess.Pawn):
				light += chess.Size - 1 - r
			case chess.MakePiece(chess.Dark, chess.Pawn):
				dark += r
			}
		}
	}
	return light - dark
}

// Full move generation for both sides; this dominates leaf cost.
func evaluateMobility(pos *chess.Position) int {
	return chess.Count(pos, chess.Maximizer) - chess.Count(pos, chess.Minimizer)
}
