// Package orryx is the narrow façade external collaborators — a GUI, a
// CLI, a lichess-style client — consume instead of reaching into the
// engine package directly: reset, query, move, search, all behind one
// small surface.
package orryx

import (
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/tiraaamisuuu/Orryx-Chess-Engine/engine"
)

var (
	ErrIllegalMove  = errors.New("orryx: move is not legal in the current position")
	ErrOutOfBounds  = errors.New("orryx: square index out of bounds")
	ErrNoLegalMoves = errors.New("orryx: search called on a terminal position")
)

// Engine is the façade a UI drives. It owns the Board, the repetition
// stack that must survive across UI-driven moves (not just inside one
// search call), and a SearchContext whose transposition table is
// preserved across Reset.
type Engine struct {
	board   *engine.Board
	rep     *engine.RepetitionStack
	search  *engine.SearchContext
	logger  *log.Logger
}

// New builds an Engine at the standard starting position with the given
// search configuration.
func New(cfg engine.Config) *Engine {
	b := engine.NewBoard()
	e := &Engine{
		board:  b,
		rep:    engine.NewRepetitionStack(b.Hash()),
		search: engine.NewSearchContext(cfg),
		logger: log.Default(),
	}
	return e
}

// Reset returns the engine to the starting position and clears repetition;
// the transposition table survives because the Zobrist keys it was built
// against are fixed.
func (e *Engine) Reset() {
	e.board.Reset()
	e.rep.Reset(e.board.Hash())
}

func validSquare(sq int) bool { return sq >= 0 && sq < 64 }

// PieceAt returns the piece on sq, or an error for an out-of-bounds index.
func (e *Engine) PieceAt(sq int) (engine.Piece, error) {
	if !validSquare(sq) {
		return engine.EmptyPiece, ErrOutOfBounds
	}
	return e.board.PieceAt(engine.Square(sq)), nil
}

func (e *Engine) SideToMove() engine.Color { return e.board.SideToMove() }

func (e *Engine) InCheck(c engine.Color) bool { return e.board.InCheck(c) }

// LegalMovesFrom enumerates legal moves originating at sq.
func (e *Engine) LegalMovesFrom(sq int) ([]engine.Move, error) {
	if !validSquare(sq) {
		return nil, ErrOutOfBounds
	}
	return e.board.LegalMovesFrom(engine.Square(sq)), nil
}

// LegalMoves enumerates all legal moves for the side to move.
func (e *Engine) LegalMoves() []engine.Move { return e.board.GenLegalMoves() }

// ResolveDragMove picks the move a UI should apply when a user drags
// from->to and several legal moves share those squares differing only in
// promotion: the façade always picks the queen promotion.
func (e *Engine) ResolveDragMove(from, to int) (engine.Move, bool) {
	if !validSquare(from) || !validSquare(to) {
		return engine.Move{}, false
	}
	candidates := e.board.LegalMovesFrom(engine.Square(from))
	var queenPromo engine.Move
	found := false
	for _, m := range candidates {
		if m.To != engine.Square(to) {
			continue
		}
		if m.Promo == engine.NoPieceType {
			return m, true
		}
		if m.Promo == engine.Queen {
			queenPromo = m
			found = true
		}
	}
	return queenPromo, found
}

// MakeMove applies m, which must be a member of LegalMoves(), and keeps the
// repetition stack in sync so a later Search() sees the positions already
// played in the game when it checks for repetition draws.
func (e *Engine) MakeMove(m engine.Move) (engine.Undo, error) {
	if !e.isLegal(m) {
		return engine.Undo{}, ErrIllegalMove
	}
	var u engine.Undo
	if !e.board.MakeMove(m, &u) {
		return engine.Undo{}, ErrIllegalMove
	}
	e.rep.Push(e.board.Hash())
	return u, nil
}

func (e *Engine) isLegal(m engine.Move) bool {
	for _, lm := range e.board.GenLegalMoves() {
		if lm.Equals(m) {
			return true
		}
	}
	return false
}

// Undo reverses a previously applied move.
func (e *Engine) Undo(u engine.Undo) {
	e.rep.Pop()
	e.board.UndoMove(&u)
}

// TerminalState reports why the game has ended, or Ongoing. The halfmove
// cap and threefold repetition are search-time draw heuristics and don't
// appear in the TerminalState enum, so a UI wanting to offer a draw claim
// on those grounds should watch HalfmoveClock() and the repetition count
// itself.
func (e *Engine) TerminalState() engine.TerminalState {
	return e.board.Terminal(e.board.GenLegalMoves())
}

// Search runs iterative deepening from the current position and returns
// the best move with its statistics. Each run gets a fresh UUID that
// appears only in the diagnostic log line; it is not returned to the
// caller.
func (e *Engine) Search(maxDepth int, timeLimitMs int) (engine.Move, engine.SearchStats, error) {
	legal := e.board.GenLegalMoves()
	if len(legal) == 0 {
		return engine.NoMove, engine.SearchStats{}, ErrNoLegalMoves
	}

	runID := uuid.New()

	move, stats := e.search.Search(e.board, e.rep, maxDepth, timeLimitMs)
	e.logger.Printf("search %s depth=%d nodes=%d qnodes=%d score=%d time=%dms",
		runID, stats.DepthReached, stats.Nodes, stats.QNodes, stats.BestScore, stats.TimeMs)
	return move, stats, nil
}

// Board exposes the underlying board for callers that need the full
// engine surface (e.g. cross-validation tests); not part of the narrow
// façade surface itself.
func (e *Engine) Board() *engine.Board { return e.board }
