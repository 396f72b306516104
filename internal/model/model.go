// Package model implements the per-context frequency-table store that
// backs ppmzip's PPM driver: a mapping from history-suffix context keys to
// insertion-ordered symbol counts. The fixed order-(-1) fallback is not
// stored here; the driver codes it directly over a total of 256.
package model

// Symbol is a coded value: either a literal byte (0-255) or the escape
// sentinel. Using a dedicated type instead of reserving integer 256 keeps
// total-width arithmetic and table iteration unambiguous, per the design
// notes this module follows.
type Symbol uint16

// Esc is the escape sentinel, distinct from every byte value.
const Esc Symbol = 256

// ByteSymbol returns the Symbol for a literal byte value.
func ByteSymbol(b byte) Symbol {
	return Symbol(b)
}

// MaxOrder bounds the configurable context order; keys are materialized as
// fixed-size arrays sized to this bound.
const MaxOrder = 8

// contextKey is a materialized suffix of the history window, used as a map
// key. It must not alias the mutable ring buffer it was copied from.
type contextKey struct {
	bytes [MaxOrder]byte
	n     uint8
}

func newContextKey(history []byte) contextKey {
	var k contextKey
	k.n = uint8(len(history))
	copy(k.bytes[:], history)
	return k
}

// Entry is one (symbol, cumulative-low, count) triple from a context's
// cumulative view, in insertion order.
type Entry struct {
	Symbol Symbol
	Low    uint32
	Count  uint32
}

// table holds one context's frequency counts plus the order symbols were
// first observed in, which cumulative ranges must be built from.
type table struct {
	counts map[Symbol]uint32
	order  []Symbol
}

func newTable() *table {
	return &table{counts: make(map[Symbol]uint32)}
}

func (t *table) increment(s Symbol) {
	if _, ok := t.counts[s]; !ok {
		t.order = append(t.order, s)
	}
	t.counts[s]++
}

// Store is the context model: every context key seen so far, mapped to its
// frequency table. It grows monotonically for the lifetime of one stream.
type Store struct {
	contexts map[contextKey]*table
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{contexts: make(map[contextKey]*table)}
}

// Has reports whether key has ever been created in the store (via
// Increment), regardless of which symbols it holds.
func (s *Store) Has(history []byte) bool {
	_, ok := s.contexts[newContextKey(history)]
	return ok
}

// HasSymbol reports whether symbol sym has been observed under the context
// denoted by history.
func (s *Store) HasSymbol(history []byte, sym Symbol) bool {
	t, ok := s.contexts[newContextKey(history)]
	if !ok {
		return false
	}
	_, ok = t.counts[sym]
	return ok
}

// GetCount returns the current count of sym under history, or 0 if absent.
func (s *Store) GetCount(history []byte, sym Symbol) uint32 {
	t, ok := s.contexts[newContextKey(history)]
	if !ok {
		return 0
	}
	return t.counts[sym]
}

// Increment adds one to sym's count under history, creating the context
// and/or the symbol entry if either is new. This is the only mutator: the
// store never removes entries or decrements counts.
func (s *Store) Increment(history []byte, sym Symbol) {
	k := newContextKey(history)
	t, ok := s.contexts[k]
	if !ok {
		t = newTable()
		s.contexts[k] = t
	}
	t.increment(sym)
}

// Cumulative returns history's frequency table as an ordered list of
// entries (insertion order) plus the total count across all symbols. For a
// history that is not in the store it returns (nil, 0).
func (s *Store) Cumulative(history []byte) ([]Entry, uint32) {
	t, ok := s.contexts[newContextKey(history)]
	if !ok {
		return nil, 0
	}
	entries := make([]Entry, len(t.order))
	var cum uint32
	for i, sym := range t.order {
		count := t.counts[sym]
		entries[i] = Entry{Symbol: sym, Low: cum, Count: count}
		cum += count
	}
	return entries, cum
}
