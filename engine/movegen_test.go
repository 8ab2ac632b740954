package engine

import "testing"

func TestStartingPositionMoveCount(t *testing.T) {
	b := NewBoard()
	if got := len(b.GenLegalMoves()); got != 20 {
		t.Errorf("expected 20 legal moves from the starting position, got %d", got)
	}
}

func TestStalemateIsNotMisclassified(t *testing.T) {
	b := NewBoard()
	// A king and queen versus king position with no legal moves for the
	// side to move and no check is a stalemate, not a checkmate.
	for i := range b.pieces {
		b.pieces[i] = EmptyPiece
	}
	b.pieces[sqOf(0, 0)] = Piece{King, Black}
	b.pieces[sqOf(2, 1)] = Piece{King, White}
	b.pieces[sqOf(1, 2)] = Piece{Queen, White}
	b.kingSquare[Black] = sqOf(0, 0)
	b.kingSquare[White] = sqOf(2, 1)
	b.stm = Black
	b.castling = 0
	b.epSquare = NoSquare
	b.hash = b.RecomputeHash()

	legal := b.GenLegalMoves()
	ts := b.Terminal(legal)
	if ts.Kind != Stalemate {
		t.Errorf("expected stalemate, got %+v (legal moves: %v)", ts, legal)
	}
}

func TestInsufficientMaterialKingsOnly(t *testing.T) {
	b := NewBoard()
	for i := range b.pieces {
		b.pieces[i] = EmptyPiece
	}
	b.pieces[sqOf(4, 0)] = Piece{King, White}
	b.pieces[sqOf(4, 7)] = Piece{King, Black}
	b.kingSquare[White] = sqOf(4, 0)
	b.kingSquare[Black] = sqOf(4, 7)

	if !b.IsInsufficientMaterial() {
		t.Errorf("expected king vs king to be insufficient material")
	}
}

func TestInsufficientMaterialKingAndRookIsNotDraw(t *testing.T) {
	b := NewBoard()
	for i := range b.pieces {
		b.pieces[i] = EmptyPiece
	}
	b.pieces[sqOf(4, 0)] = Piece{King, White}
	b.pieces[sqOf(0, 0)] = Piece{Rook, White}
	b.pieces[sqOf(4, 7)] = Piece{King, Black}
	b.kingSquare[White] = sqOf(4, 0)
	b.kingSquare[Black] = sqOf(4, 7)

	if b.IsInsufficientMaterial() {
		t.Errorf("king and rook vs king should not be insufficient material")
	}
}

func TestRepetitionDrawAfterThreeOccurrences(t *testing.T) {
	b := NewBoard()
	rep := NewRepetitionStack(b.Hash())

	shuttle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for cycle := 0; cycle < 2; cycle++ {
		for _, uci := range shuttle {
			m, ok := uciToMove(uci, b.GenLegalMoves())
			if !ok {
				t.Fatalf("move %s not legal", uci)
			}
			var u Undo
			if !b.MakeMove(m, &u) {
				t.Fatalf("move %s rejected", uci)
			}
			rep.Push(b.Hash())
		}
	}

	if !b.IsDrawAtNode(rep) {
		t.Errorf("expected a draw after the position repeats three times")
	}
}
