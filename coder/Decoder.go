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

// Decoder is the inverse state machine of Encoder. It must be built with the
// same symbol table content and configuration; the payload itself does not
// carry the model.
type Decoder struct {
	table      SymbolTable
	stateBits  uint
	wordBits   uint
	lowerBound uint64
	numStreams int
}

// NewDecoder creates a decoder over the provided symbol table.
// The configuration geometry is validated against the table precision.
func NewDecoder(table SymbolTable, cfg Config) (*Decoder, error) {
	if table == nil {
		return nil, errors.New("Invalid null symbol table parameter")
	}

	params, err := resolveParams(cfg, table.Precision())

	if err != nil {
		return nil, err
	}

	return &Decoder{
		table:      table,
		stateBits:  params.stateBits,
		wordBits:   params.wordBits,
		lowerBound: uint64(1) << params.lowerBoundBits,
		numStreams: params.numStreams,
	}, nil
}

// NumStreams returns the number of interleaved streams
func (this *Decoder) NumStreams() int {
	return this.numStreams
}

// Table returns the underlying symbol table
func (this *Decoder) Table() SymbolTable {
	return this.table
}

// Decode reads one encoded payload from the bitstream and returns the
// decoded samples. 'count' is the number of symbols originally encoded.
//
// After 'count' symbols every stream must have consumed all of its words
// and returned exactly to the renormalization lower bound; any leftover is
// reported as ErrDesync and the decoded data must be discarded.
func (this *Decoder) Decode(count int, ibs rans.InputBitStream) ([]int32, error) {
	if ibs == nil {
		return nil, errors.New("Invalid null bitstream parameter")
	}

	if count < 0 {
		return nil, fmt.Errorf("Invalid symbol count: %d", count)
	}

	n := this.numStreams
	wordBytes := int(this.wordBits) >> 3
	maxSize := ((count+n-1)/n + 1) * wordBytes
	sizes := make([]int, n)

	for s := 0; s < n; s++ {
		sizes[s] = int(rans.ReadVarInt(ibs))

		if sizes[s]%wordBytes != 0 || sizes[s] > maxSize {
			return nil, fmt.Errorf("Invalid bitstream: incorrect stream length %d", sizes[s])
		}
	}

	states := make([]uint64, n)

	for s := 0; s < n; s++ {
		states[s] = ibs.ReadBits(this.stateBits)

		// Valid interval is [L, L << wordBits); the upper bound may not fit
		// an uint64, hence the shifted comparison
		if states[s] < this.lowerBound || (states[s]>>this.wordBits) >= this.lowerBound {
			return nil, fmt.Errorf("Invalid bitstream: initial state %d out of range", states[s])
		}
	}

	bufs := make([][]byte, n)
	pos := make([]int, n)

	for s := 0; s < n; s++ {
		bufs[s] = make([]byte, sizes[s])

		if sizes[s] > 0 {
			ibs.ReadArray(bufs[s], 8*uint(sizes[s]))
		}
	}

	p := this.table.Precision()
	mask := (uint32(1) << p) - 1
	res := make([]int32, count)

	for i := 0; i < count; i++ {
		s := i % n
		x := states[s]
		slot := uint32(x) & mask
		v, sym := this.table.Slot(slot)
		res[i] = v

		// D(x) = (s, f*(x>>p) + (x mod 2^p) - cum)
		x = uint64(sym.freq)*(x>>p) + uint64(slot) - uint64(sym.cumFreq)

		for x < this.lowerBound && pos[s] < len(bufs[s]) {
			x = (x << this.wordBits) | getWord(bufs[s][pos[s]:], wordBytes)
			pos[s] += wordBytes
		}

		states[s] = x
	}

	for s := 0; s < n; s++ {
		if states[s] != this.lowerBound || pos[s] != len(bufs[s]) {
			return nil, fmt.Errorf("%w: stream %d did not return to its initial state", ErrDesync, s)
		}
	}

	return res, nil
}

// getWord loads one big-endian renormalization word
func getWord(src []byte, wordBytes int) uint64 {
	if wordBytes == 2 {
		return uint64(src[0])<<8 | uint64(src[1])
	}

	return uint64(src[0])<<24 | uint64(src[1])<<16 | uint64(src[2])<<8 | uint64(src[3])
}
