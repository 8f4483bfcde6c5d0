package chess

// Dark pawns advance toward row 7, light pawns toward row 0.
func pawnDir(c Color) int {
	if c == Dark {
		return +1
	}
	return -1
}

func pawnStartRow(c Color) int {
	if c == Dark {
		return 1
	}
	return Size - 2
}

func promotionRow(c Color) int {
	if c == Dark {
		return Size - 1
	}
	return 0
}

// From the start row a pawn only has the combined two-square advance; the
// one-square advance is generated from every other row. Diagonal moves are
// captures only. Reaching the last row always promotes to a queen.
func genPawnMoves(p *Position, from Square, emit emitFunc) {
	pc := p.At(from)
	color := pc.Color()
	dir := pawnDir(color)
	queen := MakePiece(color, Queen)

	land := func(r, c int) {
		placed := pc
		if r == promotionRow(color) {
			placed = queen
		}
		emit(from, Square{r, c}, placed)
	}

	r1 := from.Row + dir
	if !onBoard(r1, from.Col) {
		return
	}

	if from.Row == pawnStartRow(color) {
		r2 := from.Row + 2*dir
		if p.Grid[r1][from.Col] == Empty && onBoard(r2, from.Col) && p.Grid[r2][from.Col] == Empty {
			land(r2, from.Col)
		}
	} else if p.Grid[r1][from.Col] == Empty {
		land(r1, from.Col)
	}

	for _, dc := range [2]int{-1, +1} {
		c := from.Col + dc
		if !onBoard(r1, c) {
			continue
		}
		dst := p.Grid[r1][c]
		if dst != Empty && dst.Color() != color {
			land(r1, c)
		}
	}
}
