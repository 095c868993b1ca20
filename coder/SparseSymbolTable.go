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
	"sort"

	"github.com/rans-codec/rans-go/histogram"
)

// SparseSymbolTable stores the coding data in value-ordered parallel slices
// and resolves both directions with a binary search. Memory is proportional
// to the alphabet size, which makes it the backing of choice for wide but
// sparse alphabets.
type SparseSymbolTable struct {
	precision uint
	values    []int32  // ascending
	symbols   []Symbol // parallel to values, ascending cumFreq
}

// NewSparseSymbolTable builds a SparseSymbolTable from the renormed histogram
func NewSparseSymbolTable(rh *histogram.RenormedHistogram) (*SparseSymbolTable, error) {
	values, symbols, err := buildSymbols(rh)

	if err != nil {
		return nil, err
	}

	return &SparseSymbolTable{
		precision: rh.Precision(),
		values:    values,
		symbols:   symbols,
	}, nil
}

// Precision returns the renorming precision
func (this *SparseSymbolTable) Precision() uint {
	return this.precision
}

// AlphabetSize returns the number of coded values
func (this *SparseSymbolTable) AlphabetSize() int {
	return len(this.values)
}

// Min returns the smallest coded value
func (this *SparseSymbolTable) Min() int32 {
	return this.values[0]
}

// Max returns the largest coded value
func (this *SparseSymbolTable) Max() int32 {
	return this.values[len(this.values)-1]
}

// Lookup returns the coding data of value v
func (this *SparseSymbolTable) Lookup(v int32) (*Symbol, bool) {
	idx := sort.Search(len(this.values), func(i int) bool { return this.values[i] >= v })

	if idx < len(this.values) && this.values[idx] == v {
		return &this.symbols[idx], true
	}

	return nil, false
}

// Slot returns the value owning the provided slot and its coding data.
// The owner is the last symbol whose cumulative frequency is at most slot.
func (this *SparseSymbolTable) Slot(slot uint32) (int32, *Symbol) {
	idx := sort.Search(len(this.symbols), func(i int) bool { return this.symbols[i].cumFreq > slot }) - 1
	return this.values[idx], &this.symbols[idx]
}
