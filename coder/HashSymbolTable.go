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

// HashSymbolTable resolves encode lookups through a map and decode lookups
// through a binary search over the cumulative-ordered slice. It keeps O(1)
// encode lookups without the span-proportional memory of the dense backing.
type HashSymbolTable struct {
	precision uint
	values    []int32  // ascending
	symbols   []Symbol // parallel to values, ascending cumFreq
	index     map[int32]int
}

// NewHashSymbolTable builds a HashSymbolTable from the renormed histogram
func NewHashSymbolTable(rh *histogram.RenormedHistogram) (*HashSymbolTable, error) {
	values, symbols, err := buildSymbols(rh)

	if err != nil {
		return nil, err
	}

	index := make(map[int32]int, len(values))

	for i, v := range values {
		index[v] = i
	}

	return &HashSymbolTable{
		precision: rh.Precision(),
		values:    values,
		symbols:   symbols,
		index:     index,
	}, nil
}

// Precision returns the renorming precision
func (this *HashSymbolTable) Precision() uint {
	return this.precision
}

// AlphabetSize returns the number of coded values
func (this *HashSymbolTable) AlphabetSize() int {
	return len(this.values)
}

// Min returns the smallest coded value
func (this *HashSymbolTable) Min() int32 {
	return this.values[0]
}

// Max returns the largest coded value
func (this *HashSymbolTable) Max() int32 {
	return this.values[len(this.values)-1]
}

// Lookup returns the coding data of value v
func (this *HashSymbolTable) Lookup(v int32) (*Symbol, bool) {
	idx, ok := this.index[v]

	if ok == false {
		return nil, false
	}

	return &this.symbols[idx], true
}

// Slot returns the value owning the provided slot and its coding data
func (this *HashSymbolTable) Slot(slot uint32) (int32, *Symbol) {
	idx := sort.Search(len(this.symbols), func(i int) bool { return this.symbols[i].cumFreq > slot }) - 1
	return this.values[idx], &this.symbols[idx]
}
