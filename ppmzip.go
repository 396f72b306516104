// Package ppmzip implements a lossless byte-stream compressor and
// decompressor based on Prediction by Partial Matching (PPM) with escape
// method A, driving a 32-bit binary arithmetic coder. Given an input byte
// stream and a maximum context order, Encoder produces a packed bit stream
// that the matching Decoder restores bit-for-bit.
//
// Basic usage for encoding:
//
//	enc := ppmzip.NewEncoder(ppmzip.DefaultOrder)
//	packed, err := enc.Encode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Basic usage for decoding, given the original length out-of-band (see the
// cmd/ppmzip file framing, which carries it as a 4-byte header):
//
//	dec := ppmzip.NewDecoder(ppmzip.DefaultOrder)
//	data, err := dec.Decode(packed, len(original))
//	if err != nil {
//	    log.Fatal(err)
//	}
package ppmzip

import (
	"fmt"

	"github.com/golang-ppm/ppmzip/internal/model"
	"github.com/golang-ppm/ppmzip/internal/ppmcoder"
	"github.com/golang-ppm/ppmzip/internal/rangecoder"
)

// DefaultOrder is the context order used when none is specified, matching
// the file format's out-of-band default order requirement.
const DefaultOrder = 3

// MaxOrder is the highest context order the core API accepts.
const MaxOrder = model.MaxOrder

// Encoder compresses byte streams at a fixed context order. An Encoder
// owns its context model store exclusively for the lifetime of one Encode
// call; it is not reused across streams.
type Encoder struct {
	order int
}

// NewEncoder returns an Encoder configured for the given maximum context
// order, which must be in [0, MaxOrder].
func NewEncoder(order int) *Encoder {
	return &Encoder{order: order}
}

// Encode compresses input and returns the packed bit stream. The caller
// must record len(input) out-of-band (see cmd/ppmzip's framing) since the
// packed stream's trailing zero padding does not by itself identify where
// useful content ends.
func (e *Encoder) Encode(input []byte) ([]byte, error) {
	if e.order < 0 || e.order > MaxOrder {
		return nil, fmt.Errorf("ppmzip: order %d out of range [0, %d]", e.order, MaxOrder)
	}
	store := model.NewStore()
	enc := rangecoder.NewEncoder()
	driver := ppmcoder.New(e.order)

	for _, b := range input {
		driver.EncodeSymbol(store, enc, b)
	}
	return enc.Flush(), nil
}

// Decoder decompresses byte streams produced by an Encoder of the same
// order. A Decoder owns its context model store exclusively for the
// lifetime of one Decode call.
type Decoder struct {
	order int
}

// NewDecoder returns a Decoder configured for the given maximum context
// order, which must match the Encoder's order exactly.
func NewDecoder(order int) *Decoder {
	return &Decoder{order: order}
}

// Decode restores exactly length bytes from the packed bit stream bits.
// Bits consumed past the end of the supplied slice are treated as zero,
// per the format's flush-tail reconstruction contract.
func (d *Decoder) Decode(bits []byte, length int) ([]byte, error) {
	if d.order < 0 || d.order > MaxOrder {
		return nil, fmt.Errorf("ppmzip: order %d out of range [0, %d]", d.order, MaxOrder)
	}
	if length < 0 {
		return nil, fmt.Errorf("ppmzip: negative length %d", length)
	}
	store := model.NewStore()
	dec := rangecoder.NewDecoder(bits)
	driver := ppmcoder.New(d.order)

	out := make([]byte, length)
	for i := range out {
		out[i] = driver.DecodeSymbol(store, dec)
	}
	return out, nil
}
