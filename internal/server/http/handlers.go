package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"chessmove/internal/chess"
	"chessmove/internal/engine"
	"chessmove/internal/render"
	"chessmove/internal/server/game"
)

const maxBody = 1 << 16

// Handler serves /move, /board.svg and the /api/* game endpoints.
type Handler struct {
	eng   *engine.Engine
	games *game.Manager
	cache *engine.Cache // /move only; nil disables
}

func NewHandler(eng *engine.Engine, games *game.Manager) *Handler {
	if games == nil {
		games = game.NewManager()
	}
	return &Handler{eng: eng, games: games}
}

// WithCache lets /move answer repeated positions without searching again.
func (h *Handler) WithCache(c *engine.Cache) *Handler {
	h.cache = c
	return h
}

func (h *Handler) Engine() *engine.Engine { return h.eng }
func (h *Handler) Games() *game.Manager   { return h.games }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/move":
		if !allow(w, r, http.MethodGet) {
			return
		}
		h.handleMove(w, r)
	case "/board.svg":
		if !allow(w, r, http.MethodGet) {
			return
		}
		h.handleBoard(w, r)
	case "/api/new_game":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleNewGame(w, r)
	case "/api/play":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handlePlay(w, r)
	case "/api/state":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleState(w, r)
	case "/api/ai_move":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleAiMove(w, r)
	default:
		http.NotFound(w, r)
	}
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

// handleMove answers with the encoded position after the engine's move.
// The engine plays dark unless side=w.
func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	q := r.URL.Query()
	fen := q.Get("fen")
	if fen == "" {
		http.Error(w, "missing fen", http.StatusBadRequest)
		return
	}
	pos, err := chess.Parse(fen)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	side := chess.Minimizer
	switch q.Get("side") {
	case "", "b":
	case "w":
		side = chess.Maximizer
	default:
		http.Error(w, "side must be w or b", http.StatusBadRequest)
		return
	}

	res, hit := h.cache.Get(pos, side)
	if !hit {
		var err error
		res, err = h.eng.Search(r.Context(), pos, side)
		if err != nil {
			status, msg := statusFor(err)
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("fen", fen).Msg("move failed")
			http.Error(w, msg, status)
			return
		}
		h.cache.Put(pos, side, res)
	}
	zerolog.Ctx(r.Context()).Debug().Bool("cached", hit).Stringer("move", res.Move).Int("depth", res.Depth).Msg("move")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, res.Position.Encode())
}

func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fen := q.Get("fen")
	if fen == "" {
		http.Error(w, "missing fen", http.StatusBadRequest)
		return
	}
	pos, err := chess.Parse(fen)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var opts []render.Option
	if v := q.Get("move"); v != "" {
		mv, err := chess.ParseMove(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts = append(opts, render.Highlight(mv))
	}

	var buf bytes.Buffer
	if err := render.Board(&buf, pos, opts...); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// NewGameRequest optionally starts from a given placement.
type NewGameRequest struct {
	Position string `json:"position"`
	ToMove   int    `json:"to_move"`
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	var g *game.GameState
	if req.Position == "" {
		g = h.games.NewGame()
	} else {
		pos, err := chess.Parse(req.Position)
		if err != nil {
			writeError(w, r, err)
			return
		}
		g = h.games.Start(pos, intToSide(req.ToMove))
	}
	zerolog.Ctx(r.Context()).Info().Str("game", g.ID).Msg("game created")
	writeJSON(w, http.StatusOK, stateResponse(g))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	mv, err := dtoToMove(req.Move)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	g, err := h.games.Play(req.GameID, mv)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(g))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(g))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	var (
		pos  *chess.Position
		side chess.Side
	)
	switch {
	case req.GameID != "":
		g, err := h.games.Get(req.GameID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if g.Status != game.Ongoing {
			writeError(w, r, game.ErrFinished)
			return
		}
		pos, side = g.Pos, g.ToMove
	case req.Position != "":
		p, err := chess.Parse(req.Position)
		if err != nil {
			writeError(w, r, err)
			return
		}
		pos, side = p, intToSide(req.ToMove)
	default:
		http.Error(w, "missing position", http.StatusBadRequest)
		return
	}

	eng := h.eng.WithConfig(req.config(h.eng.Config()))
	res, err := eng.Search(r.Context(), pos, side)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := aiMoveResponse(res, side)

	if req.GameID != "" {
		g, err := h.games.Play(req.GameID, res.Move)
		if errors.Is(err, game.ErrIllegalMove) || errors.Is(err, game.ErrFinished) {
			// the game moved on while the engine was thinking
			writeJSONError(w, r, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		st := stateResponse(g)
		resp.Game = &st
	}
	writeJSON(w, http.StatusOK, resp)
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP statuses. Unknown errors become a
// bare 500 so internals never reach the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, chess.ErrMalformedPosition), errors.Is(err, chess.ErrMalformedMove):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, game.ErrIllegalMove):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, game.ErrFinished),
		errors.Is(err, engine.ErrNoLegalMoves),
		errors.Is(err, engine.ErrGameOver):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	ev := zerolog.Ctx(r.Context()).Info()
	if status >= 500 {
		ev = zerolog.Ctx(r.Context()).Error()
	}
	ev.Err(err).Int("status", status).Msg("request failed")
	writeJSONError(w, r, status, msg)
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestID(r.Context())})
}
