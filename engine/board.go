// Board: piece placement, side-to-move, castling/EP/halfmove state, attack
// queries and make/undo with incremental Zobrist hashing. The generator and
// make/undo dispatch on the PieceType tag, never by interface/inheritance.

package engine

// Board is mutable game state for one game. Its lifetime spans the game;
// Reset returns it to the standard starting position.
type Board struct {
	pieces      [64]Piece
	stm         Color
	epSquare    Square // NoSquare, or the square a pawn just double-pushed over
	castling    uint8  // bitmask: CastleWK|CastleWQ|CastleBK|CastleBQ
	halfmove    int
	hash        uint64
	zobrist     *ZobristTable
	kingSquare  [NColors]Square
}

// NewBoard constructs a board at the standard starting position using the
// process-wide Zobrist table. Use NewBoardWithZobrist to inject an
// independent table (e.g. for reproducibility tests).
func NewBoard() *Board {
	return NewBoardWithZobrist(defaultZobrist)
}

func NewBoardWithZobrist(zt *ZobristTable) *Board {
	b := &Board{zobrist: zt}
	b.Reset()
	return b
}

// Reset returns the board to the standard starting position: White to
// move, all four castling rights set, no en passant, halfmove clock 0.
func (b *Board) Reset() {
	for i := range b.pieces {
		b.pieces[i] = EmptyPiece
	}
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := 0; f < 8; f++ {
		b.pieces[sqOf(f, 0)] = Piece{back[f], White}
		b.pieces[sqOf(f, 1)] = Piece{Pawn, White}
		b.pieces[sqOf(f, 6)] = Piece{Pawn, Black}
		b.pieces[sqOf(f, 7)] = Piece{back[f], Black}
	}
	b.stm = White
	b.epSquare = NoSquare
	b.castling = CastleWK | CastleWQ | CastleBK | CastleBQ
	b.halfmove = 0
	b.kingSquare[White] = sqOf(4, 0)
	b.kingSquare[Black] = sqOf(4, 7)
	b.hash = b.zobrist.recomputeHash(b)
}

func (b *Board) PieceAt(sq Square) Piece { return b.pieces[sq] }
func (b *Board) SideToMove() Color       { return b.stm }
func (b *Board) Hash() uint64            { return b.hash }
func (b *Board) HalfmoveClock() int      { return b.halfmove }
func (b *Board) EpSquare() Square        { return b.epSquare }
func (b *Board) CastlingRights() uint8   { return b.castling }

// RecomputeHash rebuilds the hash from scratch; used by tests to check the
// invariant hash == recomputeHash(board).
func (b *Board) RecomputeHash() uint64 { return b.zobrist.recomputeHash(b) }

// Clone returns an independent copy suitable for handing to a search run
// on another goroutine: the Zobrist pointer is shared (it is read-only
// after construction) but nothing else is.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

var knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingOffsets = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// isSquareAttacked returns true iff any piece of colour `by` attacks sq.
func (b *Board) isSquareAttacked(sq Square, by Color) bool {
	f, r := sq.File(), sq.Rank()

	// Pawn diagonals, one rank toward sq from by's perspective.
	pawnRankDelta := 1
	if by == Black {
		pawnRankDelta = -1
	}
	for _, df := range [2]int{-1, 1} {
		pf, pr := f+df, r-pawnRankDelta
		if onBoardFR(pf, pr) {
			p := b.pieces[sqOf(pf, pr)]
			if p.Type == Pawn && p.Color == by {
				return true
			}
		}
	}

	for _, d := range knightOffsets {
		nf, nr := f+d[0], r+d[1]
		if onBoardFR(nf, nr) {
			p := b.pieces[sqOf(nf, nr)]
			if p.Type == Knight && p.Color == by {
				return true
			}
		}
	}

	for _, d := range kingOffsets {
		nf, nr := f+d[0], r+d[1]
		if onBoardFR(nf, nr) {
			p := b.pieces[sqOf(nf, nr)]
			if p.Type == King && p.Color == by {
				return true
			}
		}
	}

	for _, d := range bishopDirs {
		if b.rayHits(f, r, d[0], d[1], by, Bishop, Queen) {
			return true
		}
	}
	for _, d := range rookDirs {
		if b.rayHits(f, r, d[0], d[1], by, Rook, Queen) {
			return true
		}
	}

	return false
}

// rayHits scans from (f,r) in direction (df,dr), stopping at the first
// occupied square; returns true iff that blocker is a `by`-coloured piece
// of type want1 or want2.
func (b *Board) rayHits(f, r, df, dr int, by Color, want1, want2 PieceType) bool {
	for {
		f, r = f+df, r+dr
		if !onBoardFR(f, r) {
			return false
		}
		p := b.pieces[sqOf(f, r)]
		if p.Type == NoPieceType {
			continue
		}
		return p.Color == by && (p.Type == want1 || p.Type == want2)
	}
}

func onBoardFR(f, r int) bool { return f >= 0 && f < 8 && r >= 0 && r < 8 }

// InCheck reports whether c's king is attacked by the other colour.
func (b *Board) InCheck(c Color) bool {
	return b.isSquareAttacked(b.kingSquare[c], c.other())
}

// MakeMove performs m, returning false (and fully unwinding) iff it would
// leave the mover's king in check.
func (b *Board) MakeMove(m Move, u *Undo) bool {
	mover := b.pieces[m.From]

	u.Move = m
	u.Captured = EmptyPiece
	u.CapturedAt = m.To
	u.PrevEpSquare = b.epSquare
	u.PrevCastling = b.castling
	u.PrevHalfmove = b.halfmove
	u.PrevHash = b.hash

	resetHalf := mover.Type == Pawn || m.IsCapture || m.IsEnPassant
	if resetHalf {
		b.halfmove = 0
	} else {
		b.halfmove++
	}

	zt := b.zobrist
	b.hash ^= zt.epFile[epFileIndex(b.epSquare)]
	b.hash ^= zt.castling[b.castling]
	if b.stm == Black {
		b.hash ^= zt.side
	}

	b.epSquare = NoSquare

	if m.IsEnPassant {
		capSq := sqOf(m.To.File(), m.From.Rank())
		captured := b.pieces[capSq]
		u.Captured = captured
		u.CapturedAt = capSq
		b.hash ^= zt.psq[captured.Color][captured.Type][capSq]
		b.pieces[capSq] = EmptyPiece
	} else if m.IsCapture {
		captured := b.pieces[m.To]
		u.Captured = captured
		b.hash ^= zt.psq[captured.Color][captured.Type][m.To]
	}

	b.hash ^= zt.psq[mover.Color][mover.Type][m.From]
	b.pieces[m.From] = EmptyPiece
	placed := mover
	b.pieces[m.To] = placed
	b.hash ^= zt.psq[placed.Color][placed.Type][m.To]

	if m.Promo != NoPieceType {
		b.hash ^= zt.psq[mover.Color][Pawn][m.To]
		placed = Piece{m.Promo, mover.Color}
		b.pieces[m.To] = placed
		b.hash ^= zt.psq[placed.Color][placed.Type][m.To]
	}

	if mover.Type == King {
		b.kingSquare[mover.Color] = m.To
	}

	if m.IsCastle {
		b.castleRook(mover.Color, m.To, zt, false)
	}

	b.updateCastlingRights(m, mover)

	if mover.Type == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		b.epSquare = sqOf(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	b.stm = b.stm.other()

	if b.InCheck(b.stm.other()) {
		b.UndoMove(u)
		return false
	}

	b.hash ^= zt.epFile[epFileIndex(b.epSquare)]
	b.hash ^= zt.castling[b.castling]
	if b.stm == Black {
		b.hash ^= zt.side
	}

	return true
}

// castleRook shifts the rook across the king for a castling move. When
// undo is true it reverses the shift (f/d -> h/a).
func (b *Board) castleRook(c Color, kingTo Square, zt *ZobristTable, undo bool) {
	rank := kingTo.Rank()
	kingside := kingTo.File() == 6
	var rookFrom, rookTo Square
	if kingside {
		rookFrom, rookTo = sqOf(7, rank), sqOf(5, rank)
	} else {
		rookFrom, rookTo = sqOf(0, rank), sqOf(3, rank)
	}
	if undo {
		rookFrom, rookTo = rookTo, rookFrom
	}
	rook := b.pieces[rookFrom]
	b.hash ^= zt.psq[rook.Color][rook.Type][rookFrom]
	b.pieces[rookFrom] = EmptyPiece
	b.pieces[rookTo] = rook
	b.hash ^= zt.psq[rook.Color][rook.Type][rookTo]
}

// updateCastlingRights clears rights touched by this move: any touch of a
// king-home square clears both of that colour's rights; any touch of a
// home rook square (including via capture) clears that specific side.
func (b *Board) updateCastlingRights(m Move, mover Piece) {
	clearIfTouched := func(sq Square) {
		switch sq {
		case sqOf(4, 0):
			b.castling &^= CastleWK | CastleWQ
		case sqOf(4, 7):
			b.castling &^= CastleBK | CastleBQ
		case sqOf(7, 0):
			b.castling &^= CastleWK
		case sqOf(0, 0):
			b.castling &^= CastleWQ
		case sqOf(7, 7):
			b.castling &^= CastleBK
		case sqOf(0, 7):
			b.castling &^= CastleBQ
		}
	}
	clearIfTouched(m.From)
	clearIfTouched(m.To)
}

// UndoMove reverses the effects of a prior MakeMove using the saved Undo.
func (b *Board) UndoMove(u *Undo) {
	m := u.Move

	b.stm = b.stm.other()

	mover := b.pieces[m.To]
	if m.Promo != NoPieceType {
		mover = Piece{Pawn, mover.Color}
	}

	b.pieces[m.To] = EmptyPiece
	b.pieces[m.From] = mover

	if mover.Type == King {
		b.kingSquare[mover.Color] = m.From
	}

	if m.IsCastle {
		b.castleRook(mover.Color, m.To, b.zobrist, true)
	}

	if m.IsEnPassant {
		b.pieces[u.CapturedAt] = u.Captured
	} else if m.IsCapture {
		b.pieces[m.To] = u.Captured
	}

	b.epSquare = u.PrevEpSquare
	b.castling = u.PrevCastling
	b.halfmove = u.PrevHalfmove
	b.hash = u.PrevHash
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
