package chess

// visitMoves walks the pseudo-legal moves of side in generation order:
// squares row-major, then the per-kind rule order.
func visitMoves(p *Position, side Side, emit emitFunc) {
	color := side.Color()
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			pc := p.Grid[r][c]
			if pc == Empty || pc.Color() != color {
				continue
			}
			from := Square{r, c}
			switch pc.Kind() {
			case King:
				genKingMoves(p, from, emit)
			case Queen:
				genQueenMoves(p, from, emit)
			case Rook:
				genRookMoves(p, from, emit)
			case Bishop:
				genBishopMoves(p, from, emit)
			case Knight:
				genKnightMoves(p, from, emit)
			case Pawn:
				genPawnMoves(p, from, emit)
			}
		}
	}
}

// Generate returns every position reachable by one pseudo-legal move of side.
// No king-safety filtering is done. Each child is a fresh Clone with Last set.
func Generate(p *Position, side Side) []*Position {
	var children []*Position
	visitMoves(p, side, func(from, to Square, placed Piece) {
		child := p.Clone()
		child.Grid[from.Row][from.Col] = Empty
		child.Grid[to.Row][to.Col] = placed
		child.Last = Move{From: from, To: to}
		children = append(children, child)
	})
	return children
}

// Moves lists the same moves as Generate, in the same order, without building boards.
func Moves(p *Position, side Side) []Move {
	var moves []Move
	visitMoves(p, side, func(from, to Square, _ Piece) {
		moves = append(moves, Move{From: from, To: to})
	})
	return moves
}

// Count is len(Generate(p, side)) without the allocations.
func Count(p *Position, side Side) int {
	n := 0
	visitMoves(p, side, func(Square, Square, Piece) { n++ })
	return n
}

// Apply returns the child produced by m if m is one of side's generated moves.
func (p *Position) Apply(m Move, side Side) (*Position, bool) {
	var child *Position
	visitMoves(p, side, func(from, to Square, placed Piece) {
		if child != nil || from != m.From || to != m.To {
			return
		}
		child = p.Clone()
		child.Grid[from.Row][from.Col] = Empty
		child.Grid[to.Row][to.Col] = placed
		child.Last = m
	})
	return child, child != nil
}
