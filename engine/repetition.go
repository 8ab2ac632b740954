// Repetition tracking for the search driver: a stack of hashes pushed on
// each make and popped on each undo, initialised with the current
// position's hash before any search begins.

package engine

type RepetitionStack struct {
	hashes []uint64
	counts map[uint64]int
}

func NewRepetitionStack(initialHash uint64) *RepetitionStack {
	rs := &RepetitionStack{
		hashes: make([]uint64, 0, 128),
		counts: make(map[uint64]int, 128),
	}
	rs.Push(initialHash)
	return rs
}

func (rs *RepetitionStack) Push(hash uint64) {
	rs.hashes = append(rs.hashes, hash)
	rs.counts[hash]++
}

func (rs *RepetitionStack) Pop() {
	n := len(rs.hashes)
	hash := rs.hashes[n-1]
	rs.hashes = rs.hashes[:n-1]
	rs.counts[hash]--
	if rs.counts[hash] == 0 {
		delete(rs.counts, hash)
	}
}

func (rs *RepetitionStack) Count(hash uint64) int { return rs.counts[hash] }

// Reset clears the stack and reseeds it with a single hash, for use after
// the façade's Reset operation.
func (rs *RepetitionStack) Reset(initialHash uint64) {
	rs.hashes = rs.hashes[:0]
	for k := range rs.counts {
		delete(rs.counts, k)
	}
	rs.Push(initialHash)
}
