package model

import "testing"

func TestStore_IncrementCreatesContextAndSymbol(t *testing.T) {
	s := NewStore()
	history := []byte("AB")

	if s.Has(history) {
		t.Fatal("Has() = true before any Increment")
	}

	s.Increment(history, ByteSymbol('x'))

	if !s.Has(history) {
		t.Fatal("Has() = false after Increment")
	}
	if !s.HasSymbol(history, ByteSymbol('x')) {
		t.Fatal("HasSymbol() = false for the symbol just incremented")
	}
	if got := s.GetCount(history, ByteSymbol('x')); got != 1 {
		t.Fatalf("GetCount() = %d, want 1", got)
	}
}

func TestStore_IncrementOnUnseenKeyCreatesEscOnlyEntry(t *testing.T) {
	s := NewStore()
	history := []byte("Z")

	s.Increment(history, Esc)

	if !s.Has(history) {
		t.Fatal("Has() = false after escape-only Increment")
	}
	entries, total := s.Cumulative(history)
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if len(entries) != 1 || entries[0].Symbol != Esc || entries[0].Count != 1 {
		t.Fatalf("entries = %+v, want single Esc entry with count 1", entries)
	}
}

func TestStore_CumulativePreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	history := []byte("")

	order := []Symbol{ByteSymbol('c'), ByteSymbol('a'), ByteSymbol('b')}
	for _, sym := range order {
		s.Increment(history, sym)
	}
	s.Increment(history, ByteSymbol('a')) // second occurrence, no reorder

	entries, total := s.Cumulative(history)
	if total != 4 {
		t.Fatalf("total = %d, want 4", total)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	var cum uint32
	for i, want := range order {
		e := entries[i]
		if e.Symbol != want {
			t.Fatalf("entries[%d].Symbol = %v, want %v", i, e.Symbol, want)
		}
		if e.Low != cum {
			t.Fatalf("entries[%d].Low = %d, want %d", i, e.Low, cum)
		}
		cum += e.Count
	}
}

func TestStore_DistinctContextsAreIndependent(t *testing.T) {
	s := NewStore()
	s.Increment([]byte("A"), ByteSymbol('x'))

	if s.Has([]byte("B")) {
		t.Fatal("Has(\"B\") = true, should be independent of context \"A\"")
	}
	if s.GetCount([]byte("A"), ByteSymbol('y')) != 0 {
		t.Fatal("GetCount for never-incremented symbol should be 0")
	}
}

func TestStore_CumulativeOnAbsentKeyReturnsZeroTotal(t *testing.T) {
	s := NewStore()
	entries, total := s.Cumulative([]byte("never-seen"))
	if entries != nil || total != 0 {
		t.Fatalf("Cumulative on absent key = (%v, %d), want (nil, 0)", entries, total)
	}
}
