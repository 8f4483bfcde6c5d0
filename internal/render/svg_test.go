package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"chessmove/internal/chess"
)

func TestBoardInitial(t *testing.T) {
	var buf bytes.Buffer
	if err := Board(&buf, chess.NewInitialPosition()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<rect"); n != 64 {
		t.Fatalf("got %d squares want 64", n)
	}
	if n := strings.Count(out, "♟"); n != 8 {
		t.Fatalf("got %d dark pawns want 8", n)
	}
	if n := strings.Count(out, "♔"); n != 1 {
		t.Fatalf("got %d light kings want 1", n)
	}
}

func TestBoardHighlight(t *testing.T) {
	mv, err := chess.ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	var plain, marked bytes.Buffer
	pos := chess.NewInitialPosition()
	if err := Board(&plain, pos); err != nil {
		t.Fatal(err)
	}
	if err := Board(&marked, pos, Highlight(mv), SquareSize(30)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), lastTo) {
		t.Fatalf("unmarked board uses the highlight colour")
	}
	if !strings.Contains(marked.String(), lastFrom) || !strings.Contains(marked.String(), lastTo) {
		t.Fatalf("highlight missing")
	}
	if !strings.Contains(marked.String(), `width="240"`) {
		t.Fatalf("square size not applied")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestBoardReportsWriteError(t *testing.T) {
	if err := Board(failWriter{}, chess.NewInitialPosition()); err == nil {
		t.Fatalf("expected the write error")
	}
}
