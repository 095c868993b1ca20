/*
Copyright 2021-2026 the rans-go authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package coder

import (
	"errors"
	"fmt"

	rans "github.com/rans-codec/rans-go"
)

// Encoder is a multi-stream rANS encoder over a fixed symbol table.
//
// Symbols are assigned to streams round-robin and the input is walked in
// reverse, so the decoder can walk it forward. Each stream owns a private
// state and word buffer; the symbol table is the only shared data and is
// read-only, so one table may serve many encoders.
//
// Every stream state x stays in [L, L*2^w) where L is the renormalization
// lower bound and w the word size. Before a symbol is absorbed, words are
// shifted out until the post-update state fits the interval again; with
// precision at most w this emits at most one word per symbol.
type Encoder struct {
	table      SymbolTable
	tag        CoderTag
	stateBits  uint
	wordBits   uint
	lBits      uint
	lowerBound uint64
	numStreams int
}

// NewEncoder creates an encoder over the provided symbol table.
// The configuration geometry is validated against the table precision.
func NewEncoder(table SymbolTable, cfg Config) (*Encoder, error) {
	if table == nil {
		return nil, errors.New("Invalid null symbol table parameter")
	}

	params, err := resolveParams(cfg, table.Precision())

	if err != nil {
		return nil, err
	}

	return &Encoder{
		table:      table,
		tag:        params.tag,
		stateBits:  params.stateBits,
		wordBits:   params.wordBits,
		lBits:      params.lowerBoundBits,
		lowerBound: uint64(1) << params.lowerBoundBits,
		numStreams: params.numStreams,
	}, nil
}

// NumStreams returns the number of interleaved streams
func (this *Encoder) NumStreams() int {
	return this.numStreams
}

// Table returns the underlying symbol table
func (this *Encoder) Table() SymbolTable {
	return this.table
}

// Encode compresses the samples into the bitstream.
//
// Layout: per stream varint byte length, then per stream terminal state,
// then per stream renormalization words, streams 0 to N-1. The symbol count
// is not part of the payload; the decoder must be given it.
//
// Encoding a value absent from the model fails with ErrUnknownSymbol and
// nothing is written to the bitstream.
func (this *Encoder) Encode(samples []int32, obs rans.OutputBitStream) error {
	if obs == nil {
		return errors.New("Invalid null bitstream parameter")
	}

	n := this.numStreams
	wordBytes := int(this.wordBits) >> 3
	p := this.table.Precision()
	wordMask := (uint64(1) << this.wordBits) - 1
	states := make([]uint64, n)
	pos := make([]int, n)
	bufs := make([][]byte, n)

	// At most one word per symbol per stream
	bufSize := ((len(samples)+n-1)/n + 1) * wordBytes

	for s := 0; s < n; s++ {
		states[s] = this.lowerBound
		bufs[s] = make([]byte, bufSize)
		pos[s] = bufSize
	}

	// Walk the input in reverse so the decoder emits in forward order.
	// Word buffers fill from the end for the same reason.
	for i := len(samples) - 1; i >= 0; i-- {
		s := i % n
		sym, ok := this.table.Lookup(samples[i])

		if ok == false {
			return fmt.Errorf("%w: value %d not in the model", ErrUnknownSymbol, samples[i])
		}

		x := states[s]
		xMax := uint64(sym.freq) << (this.lBits - p + this.wordBits)

		for x >= xMax {
			pos[s] -= wordBytes
			putWord(bufs[s][pos[s]:], x&wordMask, wordBytes)
			x >>= this.wordBits
		}

		if this.tag == Compact32 {
			x = x + uint64(sym.bias) + ((x*sym.invFreq)>>sym.invShift)*uint64(sym.cmplFreq)
		} else {
			f := uint64(sym.freq)
			x = (x/f)<<p + x%f + uint64(sym.cumFreq)
		}

		states[s] = x
	}

	for s := 0; s < n; s++ {
		rans.WriteVarInt(obs, uint32(len(bufs[s])-pos[s]))
	}

	for s := 0; s < n; s++ {
		obs.WriteBits(states[s], this.stateBits)
	}

	for s := 0; s < n; s++ {
		if sz := len(bufs[s]) - pos[s]; sz > 0 {
			obs.WriteArray(bufs[s][pos[s]:], 8*uint(sz))
		}
	}

	return nil
}

// putWord stores one big-endian renormalization word
func putWord(dst []byte, word uint64, wordBytes int) {
	if wordBytes == 2 {
		dst[0] = byte(word >> 8)
		dst[1] = byte(word)
	} else {
		dst[0] = byte(word >> 24)
		dst[1] = byte(word >> 16)
		dst[2] = byte(word >> 8)
		dst[3] = byte(word)
	}
}
