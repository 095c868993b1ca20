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

// Package coder implements a range Asymmetric Numeral System entropy coder
// over arbitrary int32 alphabets.
// See "Asymmetric Numeral System" by Jarek Duda at http://arxiv.org/abs/0902.0271
// Some code has been ported from https://github.com/rygorous/ryg_rans
//
// The probability model is a renormed histogram (see the histogram package).
// Encoder and Decoder run a configurable number of interleaved rANS streams
// over a shared read-only symbol table; the 32-bit coder replaces the state
// update division with a fixed-point reciprocal multiplication.
package coder

import "errors"

// Errors reported by the coding state machines. They are returned wrapped
// with context and can be matched with errors.Is.
var (
	// ErrUnknownSymbol is reported when encoding a value absent from the model
	ErrUnknownSymbol = errors.New("Unknown symbol")

	// ErrDesync is reported when a decoded stream does not return to its
	// initial state after the expected number of symbols
	ErrDesync = errors.New("Decoder desynchronized")
)

// Symbol carries the per-symbol coding data derived from a normalized
// frequency: the frequency itself, its cumulative offset and a fixed-point
// reciprocal so the 32-bit encoder can replace the division of the state
// update with a multiplication.
type Symbol struct {
	invFreq  uint64 // Fixed-point reciprocal frequency
	bias     uint32 // Bias
	freq     uint32 // Normalized frequency
	cumFreq  uint32 // Cumulative frequency
	cmplFreq uint32 // Complement of frequency: (1 << precision) - freq
	invShift uint8  // Reciprocal shift
}

func newSymbol(cumFreq, freq uint32, precision uint) Symbol {
	this := Symbol{}
	this.freq = freq
	this.cumFreq = cumFreq
	this.cmplFreq = (uint32(1) << precision) - freq

	if freq < 2 {
		this.invFreq = 0xFFFFFFFF
		this.invShift = 32
		this.bias = cumFreq + (uint32(1) << precision) - 1
	} else {
		shift := uint(0)

		for freq > 1<<shift {
			shift++
		}

		// Alverson, "Integer Division using reciprocals"
		this.invFreq = (((1 << (shift + 31)) + uint64(freq-1)) / uint64(freq)) & 0xFFFFFFFF
		this.invShift = uint8(32 + shift - 1)
		this.bias = cumFreq
	}

	return this
}

// Freq returns the normalized frequency of the symbol
func (this *Symbol) Freq() uint32 {
	return this.freq
}

// CumFreq returns the cumulative frequency of the symbol
func (this *Symbol) CumFreq() uint32 {
	return this.cumFreq
}
