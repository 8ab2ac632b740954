package engine

import "testing"

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	b := NewBoard()
	if got := Evaluate(b); got != 0 {
		t.Errorf("expected a balanced evaluation at the starting position, got %d", got)
	}
}

func TestEvaluateRewardsMaterialAdvantage(t *testing.T) {
	b := NewBoard()
	for i := range b.pieces {
		b.pieces[i] = EmptyPiece
	}
	b.pieces[sqOf(4, 0)] = Piece{King, White}
	b.pieces[sqOf(4, 7)] = Piece{King, Black}
	b.pieces[sqOf(0, 0)] = Piece{Queen, White}
	b.kingSquare[White] = sqOf(4, 0)
	b.kingSquare[Black] = sqOf(4, 7)
	b.stm = White
	b.hash = b.RecomputeHash()

	if got := Evaluate(b); got <= 0 {
		t.Errorf("expected a material advantage for White with an extra queen, got %d", got)
	}
}

func TestEvaluateIsFromSideToMovePerspective(t *testing.T) {
	b := NewBoard()
	for i := range b.pieces {
		b.pieces[i] = EmptyPiece
	}
	b.pieces[sqOf(4, 0)] = Piece{King, White}
	b.pieces[sqOf(4, 7)] = Piece{King, Black}
	b.pieces[sqOf(0, 0)] = Piece{Queen, White}
	b.kingSquare[White] = sqOf(4, 0)
	b.kingSquare[Black] = sqOf(4, 7)

	b.stm = White
	b.hash = b.RecomputeHash()
	white := Evaluate(b)

	b.stm = Black
	b.hash = b.RecomputeHash()
	black := Evaluate(b)

	if white != -black {
		t.Errorf("negamax evaluation should flip sign with side to move: white=%d black=%d", white, black)
	}
}

func TestIsInsufficientMaterialOneBishopEachIsDraw(t *testing.T) {
	b := NewBoard()
	for i := range b.pieces {
		b.pieces[i] = EmptyPiece
	}
	b.pieces[sqOf(4, 0)] = Piece{King, White}
	b.pieces[sqOf(4, 7)] = Piece{King, Black}
	b.pieces[sqOf(2, 0)] = Piece{Bishop, White} // c1, dark square
	b.pieces[sqOf(2, 7)] = Piece{Bishop, Black} // c8, light square
	b.kingSquare[White] = sqOf(4, 0)
	b.kingSquare[Black] = sqOf(4, 7)

	if !b.IsInsufficientMaterial() {
		t.Errorf("one bishop each, even on opposite colors, should be insufficient material")
	}
}
