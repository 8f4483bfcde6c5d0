package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chessmove/internal/chess"
)

// fakeClock only moves when Advance is called.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	waiters []fakeWaiter
}

type fakeWaiter struct {
	at time.Time
	ch chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}
	c.waiters = append(c.waiters, fakeWaiter{at: c.now.Add(d), ch: ch})
	return ch
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	keep := c.waiters[:0]
	for _, w := range c.waiters {
		if w.at.After(c.now) {
			keep = append(keep, w)
			continue
		}
		w.ch <- c.now
	}
	c.waiters = keep
}

const midgame = "r3k3/pp6/2n5/8/8/5N2/PP6/R3K3"

func TestSearchReachesCeilingWithAmpleTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 4
	e := NewEngine(cfg).WithClock(newFakeClock())

	var seen []int
	e.beforePass = func(_ context.Context, depth int) { seen = append(seen, depth) }

	pos := mustParse(t, midgame)
	res, err := e.Search(context.Background(), pos, chess.Minimizer)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Depth != 4 || res.Cancelled {
		t.Fatalf("depth=%d cancelled=%v, want depth 4", res.Depth, res.Cancelled)
	}
	if len(seen) != 3 || seen[0] != 2 || seen[1] != 3 || seen[2] != 4 {
		t.Fatalf("passes ran at depths %v, want [2 3 4]", seen)
	}

	want, err := e.SearchDepth(context.Background(), pos, chess.Minimizer, 4)
	if err != nil {
		t.Fatalf("search depth: %v", err)
	}
	if res.Move != want.Move || res.Score != want.Score {
		t.Fatalf("deepening picked %v/%d, fixed depth 4 picked %v/%d", res.Move, res.Score, want.Move, want.Score)
	}
}

func TestSearchKeepsLastCompletedPassOnTimeout(t *testing.T) {
	clock := newFakeClock()
	cfg := DefaultConfig()
	cfg.TimeBudget = 5 * time.Second
	e := NewEngine(cfg).WithClock(clock)

	// The depth-3 pass eats the whole budget and only resumes once cancelled.
	e.beforePass = func(ctx context.Context, depth int) {
		if depth == 3 {
			clock.Advance(cfg.TimeBudget)
			<-ctx.Done()
		}
	}

	pos := mustParse(t, midgame)
	res, err := e.Search(context.Background(), pos, chess.Maximizer)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Depth != 2 || !res.Cancelled {
		t.Fatalf("depth=%d cancelled=%v, want depth 2 and a cancelled pass", res.Depth, res.Cancelled)
	}

	want, err := e.SearchDepth(context.Background(), pos, chess.Maximizer, 2)
	if err != nil {
		t.Fatalf("search depth: %v", err)
	}
	if res.Move != want.Move || res.Score != want.Score {
		t.Fatalf("kept %v/%d, depth 2 alone picks %v/%d", res.Move, res.Score, want.Move, want.Score)
	}
	if res.TimeUsed != cfg.TimeBudget {
		t.Fatalf("time used %v, want %v", res.TimeUsed, cfg.TimeBudget)
	}
}

func TestSearchFallsBackToDepthOne(t *testing.T) {
	clock := newFakeClock()
	cfg := DefaultConfig()
	cfg.TimeBudget = time.Millisecond
	e := NewEngine(cfg).WithClock(clock)
	e.beforePass = func(ctx context.Context, depth int) {
		clock.Advance(time.Second)
		<-ctx.Done()
	}

	res, err := e.Search(context.Background(), chess.NewInitialPosition(), chess.Minimizer)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Depth != 1 || !res.Cancelled || res.Move.IsZero() {
		t.Fatalf("got depth %d move %v cancelled=%v, want a depth-1 move", res.Depth, res.Move, res.Cancelled)
	}
}

func TestSearchRealClock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 2
	cfg.TimeBudget = time.Minute
	res, err := NewEngine(cfg).Search(context.Background(), chess.NewInitialPosition(), chess.Minimizer)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Depth != 2 {
		t.Fatalf("depth %d, want 2", res.Depth)
	}
	if res.Position.Last != res.Move {
		t.Fatalf("result position carries %v, move is %v", res.Position.Last, res.Move)
	}
	if res.ID == "" {
		t.Fatalf("missing search id")
	}
}

func TestSearchStopsOnResolvedTree(t *testing.T) {
	e := NewEngine(DefaultConfig()).WithClock(newFakeClock())
	e.beforePass = func(_ context.Context, depth int) {
		t.Errorf("unexpected pass at depth %d", depth)
	}
	// Rook takes the king with its first generated move; nothing else is searched.
	pos := mustParse(t, "3k4/3R4/8/8/8/8/8/4K3")
	res, err := e.Search(context.Background(), pos, chess.Maximizer)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Depth != 1 || res.Move.String() != "d7d8" || res.Score != MaxScore {
		t.Fatalf("got depth %d %v/%d", res.Depth, res.Move, res.Score)
	}
}

func TestSearchErrors(t *testing.T) {
	e := NewEngine(DefaultConfig()).WithClock(newFakeClock())
	ctx := context.Background()

	if _, err := e.Search(ctx, mustParse(t, "8/8/8/8/8/8/8/4K3"), chess.Minimizer); !errors.Is(err, ErrGameOver) {
		t.Fatalf("king missing: got %v want ErrGameOver", err)
	}

	// Dark king boxed in by its own immobile pawns.
	stuck := mustParse(t, "4K3/8/8/8/8/8/6pp/6pk")
	if _, err := e.Search(ctx, stuck, chess.Minimizer); !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("no moves: got %v want ErrNoLegalMoves", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := e.Search(cancelled, chess.NewInitialPosition(), chess.Maximizer); !errors.Is(err, ErrNoMoveFound) {
		t.Fatalf("cancelled: got %v want ErrNoMoveFound", err)
	}
}
