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

	"github.com/rans-codec/rans-go/histogram"
)

// SymbolTable gives the coding state machines access to the probability
// model. A table is immutable once built and safe for concurrent readers.
//
// All four backings are built from the same renormed histogram and answer
// identical queries; they only trade lookup cost against memory.
type SymbolTable interface {
	// Precision returns the renorming precision p (total frequency is 2^p).
	Precision() uint

	// AlphabetSize returns the number of coded values.
	AlphabetSize() int

	// Min returns the smallest coded value.
	Min() int32

	// Max returns the largest coded value.
	Max() int32

	// Lookup returns the coding data of value v (nil, false if not coded).
	Lookup(v int32) (*Symbol, bool)

	// Slot returns the value owning the provided slot in [0..2^p) together
	// with its coding data.
	Slot(slot uint32) (int32, *Symbol)
}

// buildSymbols derives the per-symbol coding data from a renormed histogram,
// in ascending value order (which is also ascending cumulative order).
func buildSymbols(rh *histogram.RenormedHistogram) ([]int32, []Symbol, error) {
	if rh == nil {
		return nil, nil, errors.New("Invalid null renormed histogram parameter")
	}

	n := rh.AlphabetSize()
	values := make([]int32, 0, n)
	symbols := make([]Symbol, 0, n)
	cum := uint32(0)

	rh.Each(func(v int32, freq uint32) {
		values = append(values, v)
		symbols = append(symbols, newSymbol(cum, freq, rh.Precision()))
		cum += freq
	})

	return values, symbols, nil
}

// DenseSymbolTable stores the coding data in an array indexed by
// 'value - min' and keeps a direct slot to value map of size 2^p, giving
// O(1) lookups in both directions at the price of memory proportional to
// the value span plus the full slot range.
type DenseSymbolTable struct {
	precision   uint
	min         int32
	max         int32
	count       int
	symbols     []Symbol // indexed by value - min, zero freq marks a hole
	slotToValue []int32  // indexed by slot
}

// NewDenseSymbolTable builds a DenseSymbolTable from the renormed histogram
func NewDenseSymbolTable(rh *histogram.RenormedHistogram) (*DenseSymbolTable, error) {
	values, symbols, err := buildSymbols(rh)

	if err != nil {
		return nil, err
	}

	this := &DenseSymbolTable{}
	this.precision = rh.Precision()
	this.min = rh.Min()
	this.max = rh.Max()
	this.count = len(values)
	span := int(int64(this.max)-int64(this.min)) + 1
	this.symbols = make([]Symbol, span)
	this.slotToValue = make([]int32, uint32(1)<<this.precision)

	for i, v := range values {
		sym := symbols[i]
		this.symbols[v-this.min] = sym

		for j := uint32(0); j < sym.freq; j++ {
			this.slotToValue[sym.cumFreq+j] = v
		}
	}

	return this, nil
}

// Precision returns the renorming precision
func (this *DenseSymbolTable) Precision() uint {
	return this.precision
}

// AlphabetSize returns the number of coded values
func (this *DenseSymbolTable) AlphabetSize() int {
	return this.count
}

// Min returns the smallest coded value
func (this *DenseSymbolTable) Min() int32 {
	return this.min
}

// Max returns the largest coded value
func (this *DenseSymbolTable) Max() int32 {
	return this.max
}

// Lookup returns the coding data of value v
func (this *DenseSymbolTable) Lookup(v int32) (*Symbol, bool) {
	if v < this.min || v > this.max {
		return nil, false
	}

	sym := &this.symbols[v-this.min]

	if sym.freq == 0 {
		return nil, false
	}

	return sym, true
}

// Slot returns the value owning the provided slot and its coding data
func (this *DenseSymbolTable) Slot(slot uint32) (int32, *Symbol) {
	v := this.slotToValue[slot]
	return v, &this.symbols[v-this.min]
}
