// Iterative deepening driver, negamax with alpha-beta, quiescence and move
// ordering (killers/history/LMR/aspiration).

package engine

import (
	"math"
	"sort"
	"sync/atomic"
	"time"
)

// SearchContext owns all mutable search state for one caller: the
// transposition table, killer/history tables and configuration. It is
// never shared across goroutines — a caller wanting to search
// concurrently should give each worker its own SearchContext over a
// cloned Board.
type SearchContext struct {
	cfg     Config
	tt      *TT
	killers KillerTable
	history HistoryTable

	deadline time.Time
	stopped  bool
	external *atomic.Bool // optional externally-set stop flag

	stats SearchStats
}

func NewSearchContext(cfg Config) *SearchContext {
	return &SearchContext{
		cfg: cfg,
		tt:  NewTT(cfg.TTSizeMB),
	}
}

// SetExternalStop wires an atomic flag a caller can set from another
// goroutine to cancel an in-flight search; negamax re-checks it at every
// entry.
func (sc *SearchContext) SetExternalStop(flag *atomic.Bool) { sc.external = flag }

func (sc *SearchContext) timeUp() bool {
	if sc.stopped {
		return true
	}
	if sc.external != nil && sc.external.Load() {
		sc.stopped = true
		return true
	}
	if !sc.deadline.IsZero() && time.Now().After(sc.deadline) {
		sc.stopped = true
		return true
	}
	return false
}

const negInf = EvalCp(math.MinInt16 + 1)
const posInf = EvalCp(math.MaxInt16 - 1)

// Search runs iterative deepening up to maxDepth or until timeLimitMs
// elapses, returning the best move found and accumulated stats. rep must
// already contain the hash of b's current position. maxDepth and
// timeLimitMs override the SearchContext's Config defaults for this one
// call; a value <= 0 falls back to the Config default.
func (sc *SearchContext) Search(b *Board, rep *RepetitionStack, maxDepth int, timeLimitMs int) (Move, SearchStats) {
	if maxDepth <= 0 {
		maxDepth = sc.cfg.MaxDepth
	}
	if timeLimitMs <= 0 {
		timeLimitMs = sc.cfg.TimeLimitMs
	}

	sc.stats = SearchStats{}
	sc.stopped = false
	start := time.Now()
	if timeLimitMs > 0 {
		sc.deadline = start.Add(time.Duration(timeLimitMs) * time.Millisecond)
	} else {
		sc.deadline = time.Time{}
	}

	rootMoves := b.GenLegalMoves()
	if len(rootMoves) == 0 {
		sc.stats.TimeMs = time.Since(start).Milliseconds()
		return NoMove, sc.stats
	}

	bestMove := rootMoves[0]
	bestScore := negInf

	rootTTMove := NoMove
	if e := sc.tt.Probe(b.Hash()); sc.cfg.UseTT && e.Key == b.Hash() {
		rootTTMove = e.Best
	}

	for depth := 1; depth <= maxDepth && depth <= MaxDepth; depth++ {
		if sc.timeUp() {
			break
		}

		alpha, beta := negInf, posInf
		if depth >= 3 && sc.cfg.UseAspiration && bestScore > negInf {
			alpha, beta = bestScore-50, bestScore+50
		}

		moves := append([]Move(nil), rootMoves...)
		if sc.cfg.UseMoveOrdering {
			sc.orderMoves(moves, b, rootTTMove, 0)
		}

		localBest := moves[0]
		localScore := negInf
		aborted := false

		for _, m := range moves {
			var u Undo
			b.MakeMove(m, &u)
			rep.Push(b.Hash())
			score := -sc.negamax(b, depth-1, -beta, -alpha, 1, rep)
			rep.Pop()
			b.UndoMove(&u)

			if sc.stopped {
				aborted = true
				break
			}

			if score > localScore {
				localScore = score
				localBest = m
			}
			if score > alpha {
				alpha = score
			}

			if alpha >= beta {
				// Aspiration fail-high at root: abandon ordering, re-search
				// this move with the full window, then stop the root loop.
				// The next iterative-deepening pass re-searches the rest.
				var u2 Undo
				b.MakeMove(m, &u2)
				rep.Push(b.Hash())
				full := -sc.negamax(b, depth-1, negInf, posInf, 1, rep)
				rep.Pop()
				b.UndoMove(&u2)
				if !sc.stopped {
					localScore, localBest = full, m
				}
				break
			}
		}

		if !aborted && !sc.stopped {
			bestMove, bestScore = localBest, localScore
			sc.stats.DepthReached = depth
			rootTTMove = bestMove
		}
	}

	sc.stats.TimeMs = time.Since(start).Milliseconds()
	if b.SideToMove() == White {
		sc.stats.BestScore = bestScore
	} else {
		sc.stats.BestScore = -bestScore
	}
	return bestMove, sc.stats
}

// negamax returns a score from stm's perspective at the given node.
func (sc *SearchContext) negamax(b *Board, depth int, alpha, beta EvalCp, ply int, rep *RepetitionStack) EvalCp {
	if sc.timeUp() {
		return 0
	}
	sc.stats.Nodes++

	if b.IsDrawAtNode(rep) {
		return DrawEval
	}

	hash := b.Hash()
	var ttMove Move
	if sc.cfg.UseTT {
		entry := sc.tt.Probe(hash)
		if entry.Key == hash {
			sc.stats.TTHits++
			ttMove = entry.Best
			if int(entry.Depth) >= depth {
				score := EvalCp(entry.Score)
				switch entry.Flag {
				case TTExact:
					return score
				case TTLower:
					if score > alpha {
						alpha = score
					}
				case TTUpper:
					if score < beta {
						beta = score
					}
				}
				if alpha >= beta {
					sc.stats.TTCuts++
					return score
				}
			}
		}
	}

	if depth == 0 {
		return sc.quiescence(b, alpha, beta, rep)
	}

	legal := b.GenLegalMoves()
	if len(legal) == 0 {
		if b.InCheck(b.SideToMove()) {
			return -(MateEval - EvalCp(ply))
		}
		return DrawEval
	}

	if sc.cfg.UseMoveOrdering {
		sc.orderMoves(legal, b, ttMove, ply)
	}

	originalAlpha := alpha
	best := negInf
	bestMove := NoMove

	for i, m := range legal {
		var u Undo
		b.MakeMove(m, &u)
		rep.Push(b.Hash())

		quiet := !m.IsCapture && !m.IsEnPassant && m.Promo == NoPieceType

		var score EvalCp
		if sc.cfg.UseLMR && depth >= 4 && i >= 4 && quiet && !b.InCheck(b.SideToMove()) {
			score = -sc.negamax(b, depth-2, -alpha-1, -alpha, ply+1, rep)
			if score > alpha {
				score = -sc.negamax(b, depth-1, -beta, -alpha, ply+1, rep)
			}
		} else {
			score = -sc.negamax(b, depth-1, -beta, -alpha, ply+1, rep)
		}

		rep.Pop()
		b.UndoMove(&u)

		if sc.stopped {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			sc.stats.BetaCutoffs++
			if quiet && ply < MaxPly {
				if sc.cfg.UseKillers {
					sc.killers.Add(m, ply)
					sc.stats.KillerCuts++
				}
				if sc.cfg.UseHistory {
					sc.history.Add(b.SideToMove(), m.From, m.To, depth)
					sc.stats.HistoryCuts++
				}
			}
			break
		}
	}

	if sc.cfg.UseTT {
		var flag TTFlag
		switch {
		case best <= originalAlpha:
			flag = TTUpper
		case best >= beta:
			flag = TTLower
		default:
			flag = TTExact
		}
		sc.tt.Store(hash, int16(best), int8(depth), flag, bestMove)
	}

	return best
}

// quiescence extends the search over captures/promotions only, to avoid
// the horizon effect.
func (sc *SearchContext) quiescence(b *Board, alpha, beta EvalCp, rep *RepetitionStack) EvalCp {
	if sc.timeUp() {
		return 0
	}
	sc.stats.QNodes++

	stand := Evaluate(b)
	if stand >= beta {
		return beta
	}
	if stand > alpha {
		alpha = stand
	}

	pseudo := b.GenPseudoMoves()
	noisy := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if m.IsCapture || m.IsEnPassant || m.Promo != NoPieceType {
			noisy = append(noisy, m)
		}
	}
	sc.orderCaptures(noisy, b)

	var u Undo
	for _, m := range noisy {
		if !b.MakeMove(m, &u) {
			continue
		}
		rep.Push(b.Hash())
		score := -sc.quiescence(b, -beta, -alpha, rep)
		rep.Pop()
		b.UndoMove(&u)

		if sc.stopped {
			return 0
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// scoreMove ranks candidate moves for ordering: TT move first, then
// captures by MVV-LVA, then killers, then history.
func (sc *SearchContext) scoreMove(b *Board, m Move, ttMove Move, ply int) int {
	if m.Equals(ttMove) {
		return 1000000
	}
	if m.IsCapture || m.IsEnPassant {
		return 100000 + mvvLva(b, m)
	}
	if ply < MaxPly {
		if m.Equals(sc.killers.First(ply)) {
			return 90000
		}
		if m.Equals(sc.killers.Second(ply)) {
			return 80000
		}
	}
	return sc.history.Get(b.SideToMove(), m.From, m.To)
}

func mvvLva(b *Board, m Move) int {
	victim := Pawn
	if !m.IsEnPassant {
		victim = b.PieceAt(m.To).Type
	}
	attacker := b.PieceAt(m.From).Type
	return 10*int(pieceValue[victim]) - int(pieceValue[attacker])
}

type scoredMove struct {
	move  Move
	score int
}

func (sc *SearchContext) orderMoves(moves []Move, b *Board, ttMove Move, ply int) {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{m, sc.scoreMove(b, m, ttMove, ply)}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	for i, sm := range scored {
		moves[i] = sm.move
	}
}

func (sc *SearchContext) orderCaptures(moves []Move, b *Board) {
	sort.Slice(moves, func(i, j int) bool {
		return mvvLva(b, moves[i]) > mvvLva(b, moves[j])
	})
}
