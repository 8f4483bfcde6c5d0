package game

import (
	"errors"
	"sync"
	"testing"

	"chessmove/internal/chess"
)

func TestNewGame(t *testing.T) {
	m := NewManager()
	g := m.NewGame()
	if g.ID == "" {
		t.Fatalf("empty id")
	}
	if g.ToMove != chess.Maximizer || g.Status != Ongoing {
		t.Fatalf("to_move=%v status=%v", g.ToMove, g.Status)
	}
	if !g.Pos.Equal(chess.NewInitialPosition()) {
		t.Fatalf("not the initial placement")
	}
	if other := m.NewGame(); other.ID == g.ID {
		t.Fatalf("ids collide")
	}
	if m.Len() != 2 {
		t.Fatalf("len=%d", m.Len())
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := NewManager().Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v want ErrNotFound", err)
	}
}

func TestPlay(t *testing.T) {
	m := NewManager()
	g := m.NewGame()

	mv, _ := chess.ParseMove("e2e4")
	after, err := m.Play(g.ID, mv)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if after.ToMove != chess.Minimizer || after.Plies != 1 || after.Pos.Last != mv {
		t.Fatalf("unexpected state %+v", after)
	}

	// Single-square advance from the start row is not generated.
	bad, _ := chess.ParseMove("e7e6")
	if _, err := m.Play(g.ID, bad); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("got %v want ErrIllegalMove", err)
	}
	// Light may not move twice.
	again, _ := chess.ParseMove("d2d4")
	if _, err := m.Play(g.ID, again); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("got %v want ErrIllegalMove", err)
	}
}

func TestPlayFinishedGame(t *testing.T) {
	m := NewManager()
	pos, err := chess.Parse("4k3/4R3/8/8/8/8/8/4K3")
	if err != nil {
		t.Fatal(err)
	}
	g := m.Start(pos, chess.Maximizer)
	take, _ := chess.ParseMove("e7e8")
	after, err := m.Play(g.ID, take)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if after.Status != LightWins {
		t.Fatalf("status %v want light_wins", after.Status)
	}
	reply, _ := chess.ParseMove("e1e2")
	if _, err := m.Play(g.ID, reply); !errors.Is(err, ErrFinished) {
		t.Fatalf("got %v want ErrFinished", err)
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	m := NewManager()
	g := m.NewGame()
	g.Pos.Grid[0][0] = chess.Empty

	stored, err := m.Get(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Pos.Grid[0][0] == chess.Empty {
		t.Fatalf("caller mutation leaked into the manager")
	}
}

func TestUpdate(t *testing.T) {
	m := NewManager()
	g := m.NewGame()
	pos, _ := chess.Parse("4k3/8/8/8/8/8/8/8")
	got, err := m.Update(g.ID, pos, chess.Maximizer)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != DarkWins {
		t.Fatalf("status %v want dark_wins", got.Status)
	}
	if _, err := m.Update("missing", pos, chess.Maximizer); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v want ErrNotFound", err)
	}
}

func TestConcurrentPlay(t *testing.T) {
	m := NewManager()
	g := m.NewGame()
	mv, _ := chess.ParseMove("e2e4")

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Play(g.ID, mv); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if ok != 1 {
		t.Fatalf("%d goroutines applied the same move, want exactly 1", ok)
	}
}
