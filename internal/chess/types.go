package chess

// Color of an occupied square. Light pieces are the upper-case letters of the
// placement notation and start on rows 6-7.
type Color int8

const (
	NoColor Color = -1
	Light   Color = 0
	Dark    Color = 1
)

func (c Color) Other() Color {
	switch c {
	case Light:
		return Dark
	case Dark:
		return Light
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Light:
		return "light"
	case Dark:
		return "dark"
	}
	return "none"
}

type Kind int8

const (
	NoKind Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// Piece is 0 for an empty square, positive for light, negative for dark;
// the absolute value is the Kind.
type Piece int8

const Empty Piece = 0

func MakePiece(c Color, k Kind) Piece {
	if k == NoKind || c == NoColor {
		return Empty
	}
	if c == Light {
		return Piece(k)
	}
	return -Piece(k)
}

func (p Piece) IsEmpty() bool { return p == Empty }
func (p Piece) IsLight() bool { return p > 0 }
func (p Piece) IsDark() bool  { return p < 0 }

func (p Piece) Kind() Kind {
	if p < 0 {
		return Kind(-p)
	}
	return Kind(p)
}

func (p Piece) Color() Color {
	switch {
	case p > 0:
		return Light
	case p < 0:
		return Dark
	}
	return NoColor
}

// CapturableBy reports whether a piece of color c may land on this square:
// it is empty or holds a piece of the other color.
func (p Piece) CapturableBy(c Color) bool {
	if p == Empty {
		return true
	}
	return p.Color() != c
}

// CanCapture reports whether mover may move onto target.
func CanCapture(mover, target Piece) bool {
	if mover == Empty {
		return false
	}
	return target.CapturableBy(mover.Color())
}

// Side is a search role. The maximizer owns the light pieces.
type Side int8

const (
	Maximizer Side = iota
	Minimizer
)

func (s Side) Opposite() Side {
	if s == Maximizer {
		return Minimizer
	}
	return Maximizer
}

func (s Side) Color() Color {
	if s == Maximizer {
		return Light
	}
	return Dark
}

func (s Side) String() string {
	if s == Maximizer {
		return "maximizer"
	}
	return "minimizer"
}

// SideOf maps a color back to the role that moves it.
func SideOf(c Color) Side {
	if c == Dark {
		return Minimizer
	}
	return Maximizer
}
