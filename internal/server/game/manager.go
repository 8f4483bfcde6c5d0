package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"chessmove/internal/chess"
)

var (
	ErrNotFound    = errors.New("game not found")
	ErrIllegalMove = errors.New("illegal move")
	ErrFinished    = errors.New("game already finished")
)

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
	now   func() time.Time
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState), now: time.Now}
}

// NewGame starts from the initial placement with light to move.
func (m *Manager) NewGame() *GameState {
	return m.Start(chess.NewInitialPosition(), chess.Maximizer)
}

// Start registers a game from an arbitrary position.
func (m *Manager) Start(pos *chess.Position, toMove chess.Side) *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	g := &GameState{
		ID:        uuid.NewString(),
		Pos:       pos.Clone(),
		ToMove:    toMove,
		Status:    StatusOf(pos),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.games[g.ID] = g
	return g.snapshot()
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return g.snapshot(), nil
}

// Update stores pos as the result of toMove.Opposite() having moved.
func (m *Manager) Update(id string, pos *chess.Position, toMove chess.Side) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	g.Pos = pos.Clone()
	g.Pos.Last = pos.Last
	g.ToMove = toMove
	g.Status = StatusOf(pos)
	g.Plies++
	g.UpdatedAt = m.now()
	return g.snapshot(), nil
}

// Play validates mv against the generated moves of the side to move and
// applies it under the write lock.
func (m *Manager) Play(id string, mv chess.Move) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if g.Status != Ongoing {
		return nil, ErrFinished
	}
	next, ok := g.Pos.Apply(mv, g.ToMove)
	if !ok {
		return nil, fmt.Errorf("%w: %s for %s", ErrIllegalMove, mv, g.ToMove)
	}
	g.Pos = next
	g.ToMove = g.ToMove.Opposite()
	g.Status = StatusOf(next)
	g.Plies++
	g.UpdatedAt = m.now()
	return g.snapshot(), nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
