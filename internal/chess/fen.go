package chess

import (
	"errors"
	"fmt"
	"strings"
)

// Trailer is appended by Encode regardless of the real game state: white to
// move, no castling rights, no en-passant square, fixed counters.
const Trailer = " w - - 1 2"

var ErrMalformedPosition = errors.New("malformed position")

var letterToKind = map[byte]Kind{
	'k': King,
	'q': Queen,
	'r': Rook,
	'b': Bishop,
	'n': Knight,
	'p': Pawn,
}

var kindToLetter = [...]byte{
	King:   'k',
	Queen:  'q',
	Rook:   'r',
	Bishop: 'b',
	Knight: 'n',
	Pawn:   'p',
}

func pieceToChar(p Piece) byte {
	if p == Empty {
		return 0
	}
	ch := kindToLetter[p.Kind()]
	if p.IsLight() {
		ch -= 'a' - 'A'
	}
	return ch
}

func charToPiece(ch byte) (Piece, bool) {
	c := Dark
	if ch >= 'A' && ch <= 'Z' {
		c = Light
		ch += 'a' - 'A'
	}
	k, ok := letterToKind[ch]
	if !ok {
		return Empty, false
	}
	return MakePiece(c, k), true
}

// Parse reads the placement field of a FEN-like string, top rank first. Any
// fields after the first space are ignored; side to move is always supplied
// separately by the caller.
func Parse(placement string) (*Position, error) {
	placement = strings.TrimSpace(placement)
	if i := strings.IndexByte(placement, ' '); i >= 0 {
		placement = placement[:i]
	}
	if placement == "" {
		return nil, fmt.Errorf("%w: empty placement", ErrMalformedPosition)
	}
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return nil, fmt.Errorf("%w: %d ranks, want %d", ErrMalformedPosition, len(ranks), Size)
	}

	pos := &Position{}
	for r, rank := range ranks {
		c := 0
		for i := 0; i < len(rank); i++ {
			ch := rank[i]
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				if c > Size {
					return nil, fmt.Errorf("%w: rank %d overflows", ErrMalformedPosition, Size-r)
				}
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return nil, fmt.Errorf("%w: rank %d: unexpected %q", ErrMalformedPosition, Size-r, ch)
			}
			if c >= Size {
				return nil, fmt.Errorf("%w: rank %d overflows", ErrMalformedPosition, Size-r)
			}
			pos.Grid[r][c] = pc
			c++
		}
		if c != Size {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrMalformedPosition, Size-r, c)
		}
	}
	return pos, nil
}

// Placement encodes the grid only, run-length compressing empty squares.
func (p *Position) Placement() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Size; c++ {
			pc := p.Grid[r][c]
			if pc == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// Encode is Placement plus the fixed Trailer. Not an inverse of Parse: the
// trailer never reflects who is to move.
func (p *Position) Encode() string {
	return p.Placement() + Trailer
}

func Serialize(p *Position) string { return p.Encode() }
