// SearchStats reports per-search diagnostics: node counts, depth reached,
// and move-ordering efficiency, which is otherwise untestable from
// outside the package.

package engine

type SearchStats struct {
	Nodes        uint64
	QNodes       uint64
	DepthReached int
	BestScore    EvalCp // centipawns from White's perspective
	TimeMs       int64

	TTHits      uint64
	TTCuts      uint64
	KillerCuts  uint64
	HistoryCuts uint64
	BetaCutoffs uint64
}
