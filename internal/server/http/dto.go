package httpserver

import (
	"time"

	"chessmove/internal/chess"
	"chessmove/internal/engine"
	"chessmove/internal/server/game"
)

// Sides travel as integers on the JSON API: 0 = light (maximizer), 1 = dark.
func sideToInt(s chess.Side) int {
	if s == chess.Minimizer {
		return 1
	}
	return 0
}

func intToSide(v int) chess.Side {
	if v == 1 {
		return chess.Minimizer
	}
	return chess.Maximizer
}

// MoveDTO uses coordinate notation for both squares, e.g. {"from":"e2","to":"e4"}.
type MoveDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func moveToDTO(m chess.Move) MoveDTO {
	return MoveDTO{From: m.From.String(), To: m.To.String()}
}

func movesToDTO(ms []chess.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func dtoToMove(d MoveDTO) (chess.Move, error) {
	return chess.ParseMove(d.From + d.To)
}

// StateResponse is shared by new_game, play and state.
type StateResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"`
	ToMove     int       `json:"to_move"`
	LastMove   string    `json:"last_move,omitempty"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	Status     string    `json:"status"`
	Plies      int       `json:"plies"`
}

func stateResponse(g *game.GameState) StateResponse {
	resp := StateResponse{
		GameID:     g.ID,
		Position:   g.Pos.Encode(),
		ToMove:     sideToInt(g.ToMove),
		LegalMoves: []MoveDTO{},
		Status:     string(g.Status),
		Plies:      g.Plies,
	}
	if !g.Pos.Last.IsZero() {
		resp.LastMove = g.Pos.Last.String()
	}
	if g.Status == game.Ongoing {
		resp.LegalMoves = movesToDTO(chess.Moves(g.Pos, g.ToMove))
	}
	return resp
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type StateRequest struct {
	GameID string `json:"game_id"`
}

// AiMoveRequest asks the engine for a move. With GameID the stored game is
// searched and the move applied; otherwise Position/ToMove are used as given.
type AiMoveRequest struct {
	GameID   string `json:"game_id"`
	Position string `json:"position"`
	ToMove   int    `json:"to_move"`
	MaxDepth int    `json:"max_depth"`
	TimeMs   int64  `json:"time_ms"`
	Pruning  *bool  `json:"pruning,omitempty"`
}

// config overlays the request's limits on base.
func (r AiMoveRequest) config(base engine.Config) engine.Config {
	cfg := base
	if r.MaxDepth > 0 && r.MaxDepth < cfg.MaxDepth {
		cfg.MaxDepth = r.MaxDepth
	}
	if r.TimeMs > 0 {
		cfg.TimeBudget = time.Duration(r.TimeMs) * time.Millisecond
	}
	if r.Pruning != nil {
		cfg.Pruning = *r.Pruning
	}
	return cfg
}

type AiMoveResponse struct {
	SearchID  string  `json:"search_id"`
	BestMove  MoveDTO `json:"best_move"`
	Score     int     `json:"score"`
	Depth     int     `json:"depth"`
	Nodes     int64   `json:"nodes"`
	TimeMs    int64   `json:"time_ms"`
	Cancelled bool    `json:"cancelled"`
	Position  string  `json:"position"` // after the move
	ToMove    int     `json:"to_move"`  // side to move after the move
	Status    string  `json:"status"`

	// set when the move was applied to a stored game
	Game *StateResponse `json:"game,omitempty"`
}

func aiMoveResponse(res engine.SearchResult, mover chess.Side) AiMoveResponse {
	return AiMoveResponse{
		SearchID:  res.ID,
		BestMove:  moveToDTO(res.Move),
		Score:     res.Score,
		Depth:     res.Depth,
		Nodes:     res.Nodes,
		TimeMs:    res.TimeUsed.Milliseconds(),
		Cancelled: res.Cancelled,
		Position:  res.Position.Encode(),
		ToMove:    sideToInt(mover.Opposite()),
		Status:    string(game.StatusOf(res.Position)),
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
