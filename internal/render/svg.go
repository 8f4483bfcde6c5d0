// Package render draws positions as SVG diagrams.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"chessmove/internal/chess"
)

const (
	lightSquare = "#f0d9b5"
	darkSquare  = "#b58863"
	lastFrom    = "#cdd16a"
	lastTo      = "#aaa23a"
)

var glyphs = map[chess.Piece]string{}

func init() {
	runes := map[chess.Kind][2]string{
		chess.King:   {"♔", "♚"},
		chess.Queen:  {"♕", "♛"},
		chess.Rook:   {"♖", "♜"},
		chess.Bishop: {"♗", "♝"},
		chess.Knight: {"♘", "♞"},
		chess.Pawn:   {"♙", "♟"},
	}
	for k, r := range runes {
		glyphs[chess.MakePiece(chess.Light, k)] = r[0]
		glyphs[chess.MakePiece(chess.Dark, k)] = r[1]
	}
}

type options struct {
	square      int
	highlight   chess.Move
	coordinates bool
}

type Option func(*options)

// SquareSize sets the edge of one square in pixels.
func SquareSize(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.square = px
		}
	}
}

// Highlight marks the origin and target squares of m.
func Highlight(m chess.Move) Option {
	return func(o *options) { o.highlight = m }
}

func Coordinates(on bool) Option {
	return func(o *options) { o.coordinates = on }
}

// errWriter keeps the first write error; svgo itself does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, nil
}

// Board writes an SVG diagram of pos to w, rank 8 at the top.
func Board(w io.Writer, pos *chess.Position, opts ...Option) error {
	o := options{square: 45, coordinates: true}
	for _, fn := range opts {
		fn(&o)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	size := o.square * chess.Size
	canvas.Start(size, size)

	for r := 0; r < chess.Size; r++ {
		for c := 0; c < chess.Size; c++ {
			sq := chess.Square{Row: r, Col: c}
			x, y := c*o.square, r*o.square
			canvas.Rect(x, y, o.square, o.square, "fill:"+squareFill(sq, o.highlight))

			if o.coordinates {
				if c == 0 {
					canvas.Text(x+2, y+o.square/4, fmt.Sprint(chess.Size-r), coordStyle(sq))
				}
				if r == chess.Size-1 {
					canvas.Text(x+o.square-8, y+o.square-3, string(rune('a'+c)), coordStyle(sq))
				}
			}

			if g, ok := glyphs[pos.Grid[r][c]]; ok {
				canvas.Text(x+o.square/2, y+o.square*4/5, g,
					fmt.Sprintf("text-anchor:middle;font-size:%dpx", o.square*4/5))
			}
		}
	}
	canvas.End()
	return ew.err
}

func squareFill(sq chess.Square, hl chess.Move) string {
	if !hl.IsZero() {
		switch sq {
		case hl.From:
			return lastFrom
		case hl.To:
			return lastTo
		}
	}
	if (sq.Row+sq.Col)%2 == 0 {
		return lightSquare
	}
	return darkSquare
}

func coordStyle(sq chess.Square) string {
	fill := darkSquare
	if (sq.Row+sq.Col)%2 == 1 {
		fill = lightSquare
	}
	return "font-size:10px;fill:" + fill
}
