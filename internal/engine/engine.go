package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrNoLegalMoves: the side to move has no generated move at the root.
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrGameOver: a king is already missing from the root position.
	ErrGameOver = errors.New("game already over")
	// ErrNoMoveFound: not even the depth-1 pass completed.
	ErrNoMoveFound = errors.New("no move found")
	// ErrCancelled is returned by a pass unwound through its context.
	ErrCancelled = errors.New("search cancelled")
)

const (
	DefaultTimeBudget = 7 * time.Second
	DefaultMaxDepth   = 35
)

// Config carries every tunable number of the engine. Zero TimeBudget and
// MaxDepth fall back to the defaults; Pruning is taken as given.
type Config struct {
	Weights    Weights       `json:"weights"`
	TimeBudget time.Duration `json:"time_budget"`
	MaxDepth   int           `json:"max_depth"`
	Pruning    bool          `json:"pruning"`
}

func DefaultConfig() Config {
	return Config{
		Weights:    DefaultWeights(),
		TimeBudget: DefaultTimeBudget,
		MaxDepth:   DefaultMaxDepth,
		Pruning:    true,
	}
}

func (c Config) normalized() Config {
	if c.TimeBudget <= 0 {
		c.TimeBudget = DefaultTimeBudget
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.Weights == (Weights{}) {
		c.Weights = DefaultWeights()
	}
	return c
}

// Engine is safe for concurrent use: it holds no per-search state.
type Engine struct {
	cfg   Config
	clock Clock
	log   zerolog.Logger

	// test hook, runs on the worker before each timed pass
	beforePass func(ctx context.Context, depth int)
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:   cfg.normalized(),
		clock: realClock{},
		log:   zerolog.Nop(),
	}
}

func (e *Engine) WithLogger(l zerolog.Logger) *Engine {
	e.log = l
	return e
}

func (e *Engine) WithClock(c Clock) *Engine {
	if c != nil {
		e.clock = c
	}
	return e
}

func (e *Engine) Config() Config { return e.cfg }

// WithConfig returns a copy of e that searches with cfg, sharing clock and logger.
func (e *Engine) WithConfig(cfg Config) *Engine {
	cp := *e
	cp.cfg = cfg.normalized()
	return &cp
}
