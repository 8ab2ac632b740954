// History heuristic: per-(side, from, to) counter of cutoffs used to order
// quiet moves that aren't killers.

package engine

const historyCap = 90000

type HistoryTable [NColors][64][64]int

func (ht *HistoryTable) Add(c Color, from, to Square, depth int) {
	v := &ht[c][from][to]
	*v += depth * depth * 8
	if *v > historyCap {
		*v = historyCap
	}
}

func (ht *HistoryTable) Get(c Color, from, to Square) int {
	return ht[c][from][to]
}
