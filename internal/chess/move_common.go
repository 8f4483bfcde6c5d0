package chess

// emitFunc receives one pseudo-legal move: the piece on from ends up on to as placed
// (placed differs from the mover only on promotion).
type emitFunc func(from, to Square, placed Piece)

var (
	kingOffsets = [8][2]int{
		{+1, 0}, {-1, 0}, {0, +1}, {0, -1},
		{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1},
	}
	knightOffsets = [8][2]int{
		{+2, +1}, {+2, -1}, {-2, +1}, {-2, -1},
		{-1, +2}, {+1, +2}, {-1, -2}, {+1, -2},
	}
	rookDirs   = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [4][2]int{{-1, -1}, {+1, +1}, {-1, +1}, {+1, -1}}
)

// King and knight: fixed jumps, blocked only by own pieces and the board edge.
func genSteps(p *Position, from Square, offsets *[8][2]int, emit emitFunc) {
	pc := p.At(from)
	for _, d := range offsets {
		r, c := from.Row+d[0], from.Col+d[1]
		if !onBoard(r, c) {
			continue
		}
		if CanCapture(pc, p.Grid[r][c]) {
			emit(from, Square{r, c}, pc)
		}
	}
}

// Sliders: walk each ray until the first occupied square, which is a capture
// when it holds the other color.
func genSlides(p *Position, from Square, dirs *[4][2]int, emit emitFunc) {
	pc := p.At(from)
	for _, d := range dirs {
		r, c := from.Row+d[0], from.Col+d[1]
		for onBoard(r, c) {
			dst := p.Grid[r][c]
			if dst == Empty {
				emit(from, Square{r, c}, pc)
			} else {
				if CanCapture(pc, dst) {
					emit(from, Square{r, c}, pc)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

func genKingMoves(p *Position, from Square, emit emitFunc) {
	genSteps(p, from, &kingOffsets, emit)
}

func genKnightMoves(p *Position, from Square, emit emitFunc) {
	genSteps(p, from, &knightOffsets, emit)
}

func genRookMoves(p *Position, from Square, emit emitFunc) {
	genSlides(p, from, &rookDirs, emit)
}

func genBishopMoves(p *Position, from Square, emit emitFunc) {
	genSlides(p, from, &bishopDirs, emit)
}

func genQueenMoves(p *Position, from Square, emit emitFunc) {
	genSlides(p, from, &rookDirs, emit)
	genSlides(p, from, &bishopDirs, emit)
}
