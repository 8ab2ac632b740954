// Pseudo-move generation and the legality filter. Dispatch is by PieceType
// tag, never by interface.

package engine

var promoTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// GenPseudoMoves enumerates moves for the side to move, ignoring self-check.
func (b *Board) GenPseudoMoves() []Move {
	moves := make([]Move, 0, 48)
	c := b.stm
	for sq := Square(0); sq < 64; sq++ {
		p := b.pieces[sq]
		if p.Type == NoPieceType || p.Color != c {
			continue
		}
		switch p.Type {
		case Pawn:
			b.genPawnMoves(sq, c, &moves)
		case Knight:
			b.genOffsetMoves(sq, c, knightOffsets, &moves)
		case King:
			b.genOffsetMoves(sq, c, kingOffsets, &moves)
			b.genCastleMoves(sq, c, &moves)
		case Bishop:
			b.genSliderMoves(sq, c, bishopDirs, &moves)
		case Rook:
			b.genSliderMoves(sq, c, rookDirs, &moves)
		case Queen:
			b.genSliderMoves(sq, c, bishopDirs, &moves)
			b.genSliderMoves(sq, c, rookDirs, &moves)
		}
	}
	return moves
}

func (b *Board) genOffsetMoves(sq Square, c Color, offsets [8][2]int, moves *[]Move) {
	f, r := sq.File(), sq.Rank()
	for _, d := range offsets {
		nf, nr := f+d[0], r+d[1]
		if !onBoardFR(nf, nr) {
			continue
		}
		to := sqOf(nf, nr)
		target := b.pieces[to]
		if target.Type != NoPieceType && target.Color == c {
			continue
		}
		*moves = append(*moves, Move{From: sq, To: to, IsCapture: target.Type != NoPieceType})
	}
}

func (b *Board) genSliderMoves(sq Square, c Color, dirs [4][2]int, moves *[]Move) {
	f, r := sq.File(), sq.Rank()
	for _, d := range dirs {
		nf, nr := f, r
		for {
			nf, nr = nf+d[0], nr+d[1]
			if !onBoardFR(nf, nr) {
				break
			}
			to := sqOf(nf, nr)
			target := b.pieces[to]
			if target.Type == NoPieceType {
				*moves = append(*moves, Move{From: sq, To: to})
				continue
			}
			if target.Color != c {
				*moves = append(*moves, Move{From: sq, To: to, IsCapture: true})
			}
			break
		}
	}
}

func (b *Board) genPawnMoves(sq Square, c Color, moves *[]Move) {
	f, r := sq.File(), sq.Rank()
	fwd, startRank, lastRank := 1, 1, 7
	if c == Black {
		fwd, startRank, lastRank = -1, 6, 0
	}

	addPawnMove := func(from, to Square, isCapture bool) {
		if to.Rank() == lastRank {
			for _, pt := range promoTypes {
				*moves = append(*moves, Move{From: from, To: to, Promo: pt, IsCapture: isCapture})
			}
		} else {
			*moves = append(*moves, Move{From: from, To: to, IsCapture: isCapture})
		}
	}

	oneRank := r + fwd
	if onBoardFR(f, oneRank) {
		oneTo := sqOf(f, oneRank)
		if b.pieces[oneTo].Type == NoPieceType {
			addPawnMove(sq, oneTo, false)
			if r == startRank {
				twoTo := sqOf(f, r+2*fwd)
				if b.pieces[twoTo].Type == NoPieceType {
					*moves = append(*moves, Move{From: sq, To: twoTo})
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		nf := f + df
		if !onBoardFR(nf, oneRank) {
			continue
		}
		to := sqOf(nf, oneRank)
		target := b.pieces[to]
		if target.Type != NoPieceType && target.Color != c {
			addPawnMove(sq, to, true)
		} else if to == b.epSquare {
			*moves = append(*moves, Move{From: sq, To: to, IsCapture: true, IsEnPassant: true})
		}
	}
}

// genCastleMoves emits castling as pseudo-moves, gated by: correct rook on
// its home square, the squares between king and rook empty, the king not
// currently in check, and neither the square the king passes through nor
// its destination attacked by the enemy. b1/b8 must be empty for
// queenside but may be attacked.
func (b *Board) genCastleMoves(kingSq Square, c Color, moves *[]Move) {
	rank := 0
	kingRight, queenRight := CastleWK, CastleWQ
	if c == Black {
		rank = 7
		kingRight, queenRight = CastleBK, CastleBQ
	}
	if kingSq != sqOf(4, rank) {
		return
	}
	enemy := c.other()
	if b.InCheck(c) {
		return
	}

	if b.castling&kingRight != 0 {
		fSq, gSq, hSq := sqOf(5, rank), sqOf(6, rank), sqOf(7, rank)
		rook := b.pieces[hSq]
		if rook.Type == Rook && rook.Color == c &&
			b.pieces[fSq].Type == NoPieceType && b.pieces[gSq].Type == NoPieceType &&
			!b.isSquareAttacked(fSq, enemy) && !b.isSquareAttacked(gSq, enemy) {
			*moves = append(*moves, Move{From: kingSq, To: gSq, IsCastle: true})
		}
	}

	if b.castling&queenRight != 0 {
		bSq, cSq, dSq, aSq := sqOf(1, rank), sqOf(2, rank), sqOf(3, rank), sqOf(0, rank)
		rook := b.pieces[aSq]
		if rook.Type == Rook && rook.Color == c &&
			b.pieces[bSq].Type == NoPieceType && b.pieces[cSq].Type == NoPieceType && b.pieces[dSq].Type == NoPieceType &&
			!b.isSquareAttacked(cSq, enemy) && !b.isSquareAttacked(dSq, enemy) {
			*moves = append(*moves, Move{From: kingSq, To: cSq, IsCastle: true})
		}
	}
}

// GenLegalMoves filters pseudo-moves by trial make/undo.
func (b *Board) GenLegalMoves() []Move {
	pseudo := b.GenPseudoMoves()
	legal := make([]Move, 0, len(pseudo))
	var u Undo
	for _, m := range pseudo {
		if b.MakeMove(m, &u) {
			b.UndoMove(&u)
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMovesFrom filters legal moves originating at sq, for UI click/drag.
func (b *Board) LegalMovesFrom(sq Square) []Move {
	all := b.GenLegalMoves()
	out := make([]Move, 0, 8)
	for _, m := range all {
		if m.From == sq {
			out = append(out, m)
		}
	}
	return out
}

// TerminalStateKind describes why a game has ended.
type TerminalStateKind int

const (
	Ongoing TerminalStateKind = iota
	Checkmate
	Stalemate
	InsufficientMaterial
)

type TerminalState struct {
	Kind  TerminalStateKind
	Loser Color // valid only when Kind == Checkmate
}

// Terminal computes the current terminal state. legalMoves may be passed
// in if already computed to avoid regenerating them.
func (b *Board) Terminal(legalMoves []Move) TerminalState {
	if b.IsInsufficientMaterial() {
		return TerminalState{Kind: InsufficientMaterial}
	}
	if legalMoves == nil {
		legalMoves = b.GenLegalMoves()
	}
	if len(legalMoves) == 0 {
		if b.InCheck(b.stm) {
			return TerminalState{Kind: Checkmate, Loser: b.stm}
		}
		return TerminalState{Kind: Stalemate}
	}
	return TerminalState{Kind: Ongoing}
}

// IsInsufficientMaterial reports the draw rule: after removing kings, no
// side has a Pawn/Rook/Queen and one of {both sides bare, one side has a
// single minor, both sides one bishop each}.
func (b *Board) IsInsufficientMaterial() bool {
	var minors [NColors]int
	var bishops [NColors]int
	for sq := Square(0); sq < 64; sq++ {
		p := b.pieces[sq]
		switch p.Type {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			minors[p.Color]++
		case Bishop:
			minors[p.Color]++
			bishops[p.Color]++
		}
	}
	totalMinors := minors[White] + minors[Black]
	if totalMinors == 0 {
		return true
	}
	if totalMinors == 1 {
		return true
	}
	if bishops[White] == 1 && bishops[Black] == 1 && minors[White] == 1 && minors[Black] == 1 {
		return true
	}
	return false
}

// IsDrawAtNode is the search-time draw check: insufficient material,
// halfmove clock >= 100, or the current hash appears >= 2 times already
// on the repetition stack.
func (b *Board) IsDrawAtNode(rep *RepetitionStack) bool {
	if b.halfmove >= 100 {
		return true
	}
	if b.IsInsufficientMaterial() {
		return true
	}
	return rep.Count(b.hash) >= 2
}
