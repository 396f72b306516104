// Package ppmcoder implements the PPM driver: the symbol-by-symbol loop
// that walks context orders from the configured maximum down to -1,
// escaping through the model store until a symbol matches, then updating
// the symbol's count in every context from order 0 up to min(order,
// len(history)), whichever context matched. Encoder and decoder share this
// exact mutation order, which is the contract that keeps their arithmetic
// coders synchronized bit-for-bit.
package ppmcoder

import (
	"github.com/golang-ppm/ppmzip/internal/model"
	"github.com/golang-ppm/ppmzip/internal/rangecoder"
)

// Driver holds the sliding history window shared by one encode or decode
// pass over a stream.
type Driver struct {
	order   int
	history []byte
}

// New returns a driver configured for the given maximum context order.
func New(order int) *Driver {
	return &Driver{order: order, history: make([]byte, 0, order)}
}

// currentOrder returns min(order, len(history)) — the highest context
// order available given how much history has accumulated so far.
func (d *Driver) currentOrder() int {
	if len(d.history) < d.order {
		return len(d.history)
	}
	return d.order
}

// suffix returns the last k bytes of history as a key for the model store.
func (d *Driver) suffix(k int) []byte {
	return d.history[len(d.history)-k:]
}

// append pushes b onto the history window, dropping the oldest byte once
// the window reaches the configured order.
func (d *Driver) append(b byte) {
	d.history = append(d.history, b)
	if len(d.history) > d.order {
		d.history = d.history[len(d.history)-d.order:]
	}
}

// lookupSymbol returns the (low, count) of sym within entries, and whether
// it was found.
func lookupSymbol(entries []model.Entry, sym model.Symbol) (low, count uint32, ok bool) {
	for _, e := range entries {
		if e.Symbol == sym {
			return e.Low, e.Count, true
		}
	}
	return 0, 0, false
}

// findByValue returns the last entry whose cumulative-low is <= v; entries
// is sorted by ascending Low, so this is the unique entry covering v.
func findByValue(entries []model.Entry, v uint32) model.Entry {
	var found model.Entry
	for _, e := range entries {
		if e.Low > v {
			break
		}
		found = e
	}
	return found
}

// updateModel increments sym under every context order 0..upTo, per the
// model-update rule that runs once a symbol (real or, at order -1,
// directly from the uniform fallback) has been fully coded.
func (d *Driver) updateModel(store *model.Store, upTo int, sym model.Symbol) {
	for k := 0; k <= upTo; k++ {
		store.Increment(d.suffix(k), sym)
	}
}

// EncodeSymbol codes one input byte b: it walks contexts from the current
// order down to 0, emitting an escape at every context already present
// that doesn't hold b, incrementing that context's escape count as it goes
// (even for contexts not yet present), until b is found or every context
// has escaped, in which case the order -1 uniform model codes b directly.
func (d *Driver) EncodeSymbol(store *model.Store, enc *rangecoder.Encoder, b byte) {
	sym := model.ByteSymbol(b)
	maxOrder := d.currentOrder()
	matched := false

	for k := maxOrder; k >= 0; k-- {
		key := d.suffix(k)
		if store.HasSymbol(key, sym) {
			entries, total := store.Cumulative(key)
			l, count, _ := lookupSymbol(entries, sym)
			enc.Narrow(l, l+count, total)
			matched = true
			break
		}
		if store.Has(key) {
			entries, total := store.Cumulative(key)
			l, count, ok := lookupSymbol(entries, model.Esc)
			if ok {
				enc.Narrow(l, l+count, total)
			}
		}
		store.Increment(key, model.Esc)
	}

	if !matched {
		enc.Narrow(uint32(b), uint32(b)+1, 256)
	}

	d.updateModel(store, maxOrder, sym)
	d.append(b)
}

// DecodeSymbol decodes and returns one byte, mirroring EncodeSymbol's walk
// and model mutation order exactly.
func (d *Driver) DecodeSymbol(store *model.Store, dec *rangecoder.Decoder) byte {
	maxOrder := d.currentOrder()

	for k := maxOrder; k >= 0; k-- {
		key := d.suffix(k)
		if !store.Has(key) {
			store.Increment(key, model.Esc)
			continue
		}

		entries, total := store.Cumulative(key)
		v := dec.SymbolValue(total)
		entry := findByValue(entries, v)
		dec.Narrow(entry.Low, entry.Low+entry.Count, total)

		if entry.Symbol != model.Esc {
			b := byte(entry.Symbol)
			d.updateModel(store, maxOrder, entry.Symbol)
			d.append(b)
			return b
		}
		store.Increment(key, model.Esc)
	}

	v := dec.SymbolValue(256)
	dec.Narrow(v, v+1, 256)
	sym := model.ByteSymbol(byte(v))
	d.updateModel(store, maxOrder, sym)
	b := byte(v)
	d.append(b)
	return b
}
