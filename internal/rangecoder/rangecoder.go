// Package rangecoder implements the 32-bit binary arithmetic coder that
// drives ppmzip's PPM model: a low/high interval coder with E1/E2/E3
// renormalization (Witten-Neal-Cleary carry counting), operating over
// cumulative-frequency ranges supplied by the context model.
//
// Encoder and Decoder are the symmetric halves of one coder; callers must
// narrow both sides through the identical sequence of (low, high, total)
// triples for the decoded output to match the encoded input bit-for-bit.
package rangecoder

import "github.com/golang-ppm/ppmzip/internal/bitio"

const (
	half    = uint32(1) << 31
	quarter = uint32(1) << 30
	// threeQuarter is 3*quarter without overflowing uint32 arithmetic.
	threeQuarter = half + quarter
)

// Encoder narrows [low, high] as symbols are encoded and emits bits through
// its renormalization loop, per spec section 4.2.
type Encoder struct {
	low, high uint32
	pending   uint32
	out       *bitio.Writer
}

// NewEncoder returns an encoder with the full [0, 2^32) interval open.
func NewEncoder() *Encoder {
	return &Encoder{
		low:  0,
		high: 0xFFFFFFFF,
		out:  bitio.NewWriter(),
	}
}

// Narrow restricts the current interval to the sub-range [l, h) of total,
// then renormalizes. total == 0 is the empty-context short-circuit: the
// interval is left untouched.
func (e *Encoder) Narrow(l, h, total uint32) {
	if total == 0 {
		return
	}
	rng := uint64(e.high-e.low) + 1
	e.high = e.low + uint32(rng*uint64(h)/uint64(total)) - 1
	e.low = e.low + uint32(rng*uint64(l)/uint64(total))
	e.renormalize()
}

// renormalize performs the E1/E2/E3 shift-and-carry loop until the current
// interval is at least a quarter of the full range wide.
func (e *Encoder) renormalize() {
	for {
		switch {
		case e.high < half: // E1
			e.emitBit(0)
			for ; e.pending > 0; e.pending-- {
				e.emitBit(1)
			}
		case e.low >= half: // E2
			e.emitBit(1)
			for ; e.pending > 0; e.pending-- {
				e.emitBit(0)
			}
			e.low -= half
			e.high -= half
		case e.low >= quarter && e.high < threeQuarter: // E3
			e.pending++
			e.low -= quarter
			e.high -= quarter
		default:
			return
		}
		e.low <<= 1
		e.high = (e.high << 1) | 1
	}
}

func (e *Encoder) emitBit(bit int) {
	e.out.WriteBit(bit)
}

// Flush emits enough bits to disambiguate the final interval and returns
// the complete packed bit stream. The encoder must not be used afterward.
//
// renormalize only exits once low < half <= high, so half always lies in
// the open interval and is always safe to commit to: emit a 1 bit (the
// top bit of half) followed by pending 0 bits (the complement, resolving
// the straddled E3 folds), then let the decoder's zero-padding supply the
// rest of half's all-zero tail. Choosing the bit from low's position
// relative to quarter instead (as if finishing a single E1/E2/E3 step)
// is not sufficient: low and high can straddle both quarter and
// three-quarter at once, and that bit can fall outside [low, high).
func (e *Encoder) Flush() []byte {
	e.pending++
	const bit = 1
	e.emitBit(bit)
	const comp = 1 - bit
	for i := uint32(0); i < e.pending-1; i++ {
		e.emitBit(comp)
	}
	return e.out.Flush()
}

// Decoder mirrors Encoder, tracking code alongside low/high and consuming
// bits from a packed stream, per spec section 4.3.
type Decoder struct {
	low, high, code uint32
	in              *bitio.Reader
}

// NewDecoder initializes a decoder over bits, shifting in the first 32
// bits of code (zero-padded if the stream is shorter).
func NewDecoder(bits []byte) *Decoder {
	d := &Decoder{
		low:  0,
		high: 0xFFFFFFFF,
		in:   bitio.NewReader(bits),
	}
	d.code = d.in.ReadBits(32)
	return d
}

// SymbolValue returns v in [0, total) identifying where code falls within
// the current interval, scaled to total.
func (d *Decoder) SymbolValue(total uint32) uint32 {
	rng := uint64(d.high-d.low) + 1
	v := ((uint64(d.code-d.low)+1)*uint64(total) - 1) / rng
	return uint32(v)
}

// Narrow restricts the current interval exactly as Encoder.Narrow does,
// and renormalizes code alongside low/high.
func (d *Decoder) Narrow(l, h, total uint32) {
	if total == 0 {
		return
	}
	rng := uint64(d.high-d.low) + 1
	d.high = d.low + uint32(rng*uint64(h)/uint64(total)) - 1
	d.low = d.low + uint32(rng*uint64(l)/uint64(total))
	d.renormalize()
}

func (d *Decoder) renormalize() {
	for {
		switch {
		case d.high < half: // E1
		case d.low >= half: // E2
			d.low -= half
			d.high -= half
			d.code -= half
		case d.low >= quarter && d.high < threeQuarter: // E3
			d.low -= quarter
			d.high -= quarter
			d.code -= quarter
		default:
			return
		}
		d.low <<= 1
		d.high = (d.high << 1) | 1
		d.code = (d.code << 1) | uint32(d.in.ReadBit())
	}
}
