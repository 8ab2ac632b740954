package engine

import "testing"

func TestTTSizeIsPowerOfTwo(t *testing.T) {
	tt := NewTT(1)
	if tt.Len()&(tt.Len()-1) != 0 {
		t.Errorf("expected entry count to be a power of two, got %d", tt.Len())
	}
}

func TestTTStoreAndProbe(t *testing.T) {
	tt := NewTT(1)
	key := uint64(0xDEADBEEF)
	m := Move{From: sqOf(4, 1), To: sqOf(4, 3)}
	tt.Store(key, 150, 6, TTExact, m)

	e := tt.Probe(key)
	if e.Key != key {
		t.Fatalf("probe returned the wrong slot")
	}
	if e.Score != 150 || e.Depth != 6 || e.Flag != TTExact || !e.Best.Equals(m) {
		t.Errorf("stored entry mismatch: %+v", e)
	}
}

func TestTTShallowStoreDoesNotOverwriteDeeper(t *testing.T) {
	tt := NewTT(1)
	key := uint64(1) // index 1 under any mask of at least one bit
	other := key + uint64(len(tt.entries))
	m1 := Move{From: sqOf(4, 1), To: sqOf(4, 3)}
	m2 := Move{From: sqOf(3, 1), To: sqOf(3, 3)}

	tt.Store(key, 100, 10, TTExact, m1)
	tt.Store(other, 50, 2, TTExact, m2)

	e := tt.Probe(key)
	if e.Key != key || e.Depth != 10 {
		t.Errorf("a shallower store for a colliding key should not replace a deeper entry, got %+v", e)
	}
}

func TestTTClear(t *testing.T) {
	tt := NewTT(1)
	tt.Store(42, 10, 1, TTExact, NoMove)
	tt.Clear()
	e := tt.Probe(42)
	if e.Key != 0 {
		t.Errorf("expected Clear to reset entries, got key %#x", e.Key)
	}
}
