package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"chessmove/internal/chess"
)

var errPassTimedOut = errors.New("pass timed out")

// SearchResult describes the move chosen by the deepest completed pass.
type SearchResult struct {
	ID        string          // search id, also on every log line
	Position  *chess.Position // position after the chosen move, Last set
	Move      chess.Move
	Score     int           // value of the chosen child, light-positive
	Depth     int           // depth of the pass that produced Move
	Nodes     int64         // nodes of that pass
	TimeUsed  time.Duration // whole search, cancelled passes included
	Cancelled bool          // a deeper pass was abandoned on the budget
}

type passResult struct {
	best         *Node
	nodes        int64
	depthLimited bool
}

func (e *Engine) runPass(ctx context.Context, pos *chess.Position, side chess.Side, depth int) (passResult, error) {
	s := &pass{ctx: ctx, weights: e.cfg.Weights, pruning: e.cfg.Pruning}
	root, err := s.expand(pos, side, depth, MinScore, MaxScore)
	if err != nil {
		return passResult{}, err
	}
	return passResult{
		best:         root.Best(side),
		nodes:        s.nodes,
		depthLimited: s.depthLimited,
	}, nil
}

// timedPass runs one pass on its own worker and waits at most remaining for
// it. On timeout the pass is cancelled and its partial tree dropped.
func (e *Engine) timedPass(ctx context.Context, pos *chess.Position, side chess.Side, depth int, remaining time.Duration) (passResult, error) {
	passCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeout := e.clock.After(remaining)

	var (
		g   errgroup.Group
		res passResult
	)
	g.Go(func() error {
		if e.beforePass != nil {
			e.beforePass(passCtx, depth)
		}
		var err error
		res, err = e.runPass(passCtx, pos, side, depth)
		return err
	})
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return passResult{}, err
		}
		return res, nil
	case <-timeout:
		cancel()
		<-done
		return passResult{}, errPassTimedOut
	}
}

// SearchDepth runs a single pass at exactly depth with no time limit.
func (e *Engine) SearchDepth(ctx context.Context, pos *chess.Position, side chess.Side, depth int) (SearchResult, error) {
	if chess.IsOver(pos) {
		return SearchResult{}, ErrGameOver
	}
	if depth < 1 {
		depth = 1
	}
	start := e.clock.Now()
	pr, err := e.runPass(ctx, pos, side, depth)
	if err != nil {
		return SearchResult{}, err
	}
	if pr.best == nil {
		return SearchResult{}, ErrNoLegalMoves
	}
	res := resultOf(pr, depth)
	res.ID = uuid.NewString()
	res.TimeUsed = e.clock.Now().Sub(start)
	return res, nil
}

func resultOf(pr passResult, depth int) SearchResult {
	return SearchResult{
		Position: pr.best.Position,
		Move:     pr.best.Position.Last,
		Score:    pr.best.Value,
		Depth:    depth,
		Nodes:    pr.nodes,
	}
}

// Search picks a move for side by iterative deepening under the configured
// time budget. Depth 1 always runs to completion (only ctx can stop it); each
// deeper pass gets whatever budget is left and is discarded if it overruns.
func (e *Engine) Search(ctx context.Context, pos *chess.Position, side chess.Side) (SearchResult, error) {
	id := uuid.NewString()
	log := e.log.With().Str("search", id).Stringer("side", side).Logger()

	if chess.IsOver(pos) {
		return SearchResult{}, ErrGameOver
	}

	start := e.clock.Now()
	first, err := e.runPass(ctx, pos, side, 1)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: %v", ErrNoMoveFound, err)
	}
	if first.best == nil {
		return SearchResult{}, ErrNoLegalMoves
	}
	result := resultOf(first, 1)
	result.ID = id
	log.Debug().Int("depth", 1).Int64("nodes", first.nodes).Int("score", first.best.Value).
		Stringer("move", result.Move).Msg("pass complete")

	last := first
	for depth := 2; depth <= e.cfg.MaxDepth; depth++ {
		if !last.depthLimited {
			log.Debug().Int("depth", depth-1).Msg("tree fully resolved")
			break
		}
		remaining := e.cfg.TimeBudget - e.clock.Now().Sub(start)
		if remaining <= 0 {
			break
		}

		passStart := e.clock.Now()
		pr, err := e.timedPass(ctx, pos, side, depth, remaining)
		if err != nil {
			result.Cancelled = true
			log.Info().Err(err).Int("depth", depth).Int("kept_depth", result.Depth).Msg("pass cancelled")
			break
		}
		last = pr
		result = resultOf(pr, depth)
		result.ID = id
		log.Debug().Int("depth", depth).Int64("nodes", pr.nodes).Int("score", pr.best.Value).
			Stringer("move", result.Move).Dur("elapsed", e.clock.Now().Sub(passStart)).Msg("pass complete")
	}

	result.TimeUsed = e.clock.Now().Sub(start)
	log.Info().Int("depth", result.Depth).Stringer("move", result.Move).Int("score", result.Score).
		Dur("time", result.TimeUsed).Msg("search done")
	return result, nil
}
