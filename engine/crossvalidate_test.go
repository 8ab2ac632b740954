package engine

import (
	"math/rand"
	"sort"
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"
)

// legalUCISet returns the sorted set of UCI strings for a hand-built Board.
func legalUCISet(b *Board) []string {
	legal := b.GenLegalMoves()
	out := make([]string, len(legal))
	for i, m := range legal {
		out[i] = m.UCI()
	}
	sort.Strings(out)
	return out
}

// dragonUCISet returns the sorted set of UCI strings for a dragontoothmg
// board, used as an independent oracle for legal move generation.
func dragonUCISet(db *dragon.Board) []string {
	moves := db.GenerateLegalMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func uciSetsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestCrossValidateLegalMoveCounts walks random legal-move sequences in
// lockstep on the hand-built Board and a dragontoothmg board parsed from
// the same starting FEN, checking at every ply that the two generators
// agree on the exact set of legal moves. Divergence here means a move
// generation bug, not a style difference, since both boards start from
// an identical position and apply identical moves.
func TestCrossValidateLegalMoveCounts(t *testing.T) {
	const trials = 8
	const maxPlies = 40

	for trial := 0; trial < trials; trial++ {
		rng := rand.New(rand.NewSource(int64(1000 + trial)))

		b := NewBoard()
		db := dragon.ParseFen(dragon.Startpos)

		for ply := 0; ply < maxPlies; ply++ {
			ours := legalUCISet(b)
			theirs := dragonUCISet(&db)

			if !uciSetsEqual(ours, theirs) {
				t.Fatalf("trial %d ply %d: legal move sets diverge\nours:   %v\ntheirs: %v", trial, ply, ours, theirs)
			}
			if len(ours) == 0 {
				break
			}

			idx := rng.Intn(len(ours))
			uci := ours[idx]

			legal := b.GenLegalMoves()
			m, ok := uciToMove(uci, legal)
			if !ok {
				t.Fatalf("trial %d ply %d: failed to resolve %s against our own legal moves", trial, ply, uci)
			}
			var u Undo
			if !b.MakeMove(m, &u) {
				t.Fatalf("trial %d ply %d: our board rejected %s as illegal", trial, ply, uci)
			}

			dm, ok := dragonMoveForUCI(&db, uci)
			if !ok {
				t.Fatalf("trial %d ply %d: dragontoothmg has no move matching %s", trial, ply, uci)
			}
			db.Apply(dm)
		}
	}
}

func dragonMoveForUCI(db *dragon.Board, uci string) (dragon.Move, bool) {
	for _, m := range db.GenerateLegalMoves() {
		if m.String() == uci {
			return m, true
		}
	}
	return 0, false
}

// TestCrossValidatePerftDepth2 checks the depth-2 move count (the replies
// summed over every root move) against dragontoothmg for the standard
// opening position, independent of
// the exhaustive perft counts asserted in perft_test.go.
func TestCrossValidatePerftDepth2(t *testing.T) {
	b := NewBoard()
	db := dragon.ParseFen(dragon.Startpos)

	ourTotal := 0
	for _, m := range b.GenLegalMoves() {
		var u Undo
		b.MakeMove(m, &u)
		ourTotal += len(b.GenLegalMoves())
		b.UndoMove(&u)
	}

	theirTotal := 0
	for _, m := range db.GenerateLegalMoves() {
		unapply := db.Apply(m)
		theirTotal += len(db.GenerateLegalMoves())
		unapply()
	}

	if ourTotal != theirTotal {
		t.Errorf("depth-2 move count mismatch: ours=%d dragontoothmg=%d", ourTotal, theirTotal)
	}
	if ourTotal != 400 {
		t.Errorf("depth-2 move count from standard position should be 400, got %d", ourTotal)
	}
}
