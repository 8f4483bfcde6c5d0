package chess

import (
	"errors"
	"fmt"
	"strings"
)

const Size = 8

var ErrMalformedMove = errors.New("malformed move")

// Square addresses the grid. Row 0 is rank 8 (the dark home rank), column 0 is file a.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func (s Square) Valid() bool { return onBoard(s.Row, s.Col) }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.Col), byte('0' + Size - s.Row)})
}

func ParseSquare(v string) (Square, error) {
	if len(v) != 2 {
		return Square{}, fmt.Errorf("%w: bad square %q", ErrMalformedMove, v)
	}
	sq := Square{Row: Size - int(v[1]-'0'), Col: int(v[0] - 'a')}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%w: bad square %q", ErrMalformedMove, v)
	}
	return sq, nil
}

// Move is the origin and destination of the last ply. The zero value means
// "no move": a generated move never starts and ends on the same square.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) IsZero() bool { return m.From == m.To }

func (m Move) String() string {
	if m.IsZero() {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove reads coordinate notation ("e2e4"). A trailing promotion letter is
// accepted and ignored since pawns always become queens.
func ParseMove(v string) (Move, error) {
	v = strings.TrimSpace(v)
	if len(v) != 4 && len(v) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, v)
	}
	from, err := ParseSquare(v[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(v[2:4])
	if err != nil {
		return Move{}, err
	}
	if from == to {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, v)
	}
	return Move{From: from, To: to}, nil
}

// Position is a board snapshot. It is treated as immutable: every move is
// applied to a Clone. Last is presentation metadata only.
type Position struct {
	Grid [Size][Size]Piece
	Last Move
}

func (p *Position) At(s Square) Piece { return p.Grid[s.Row][s.Col] }

// Clone returns an independent copy of the grid. Last is not carried over.
func (p *Position) Clone() *Position {
	return &Position{Grid: p.Grid}
}

// Equal compares piece placement only.
func (p *Position) Equal(o *Position) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Grid == o.Grid
}

// KingExists reports whether c still has its king on the board.
func (p *Position) KingExists(c Color) bool {
	king := MakePiece(c, King)
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			if p.Grid[r][col] == king {
				return true
			}
		}
	}
	return false
}

// IsOver is true once either king has been captured.
func IsOver(p *Position) bool {
	return !p.KingExists(Light) || !p.KingExists(Dark)
}

// Winner returns the color whose opponent has lost its king, or NoColor.
// With both kings gone it also returns NoColor.
func (p *Position) Winner() Color {
	light, dark := p.KingExists(Light), p.KingExists(Dark)
	switch {
	case light && !dark:
		return Light
	case dark && !light:
		return Dark
	}
	return NoColor
}

const initialPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func NewInitialPosition() *Position {
	pos, err := Parse(initialPlacement)
	if err != nil {
		panic("initial placement: " + err.Error())
	}
	return pos
}

// Pretty renders the grid with rank and file labels, '.' for empty squares.
func (p *Position) Pretty() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		sb.WriteByte(byte('0' + Size - r))
		sb.WriteByte(' ')
		for c := 0; c < Size; c++ {
			ch := pieceToChar(p.Grid[r][c])
			if ch == 0 {
				ch = '.'
			}
			sb.WriteByte(ch)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
