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

import "github.com/rans-codec/rans-go/histogram"

// SetSymbolTable resolves both directions with a linear scan over a small
// value-ordered slice. No auxiliary structures, minimal memory; meant for
// tiny alphabets where a scan beats a search.
type SetSymbolTable struct {
	precision uint
	values    []int32  // ascending
	symbols   []Symbol // parallel to values, ascending cumFreq
}

// NewSetSymbolTable builds a SetSymbolTable from the renormed histogram
func NewSetSymbolTable(rh *histogram.RenormedHistogram) (*SetSymbolTable, error) {
	values, symbols, err := buildSymbols(rh)

	if err != nil {
		return nil, err
	}

	return &SetSymbolTable{
		precision: rh.Precision(),
		values:    values,
		symbols:   symbols,
	}, nil
}

// Precision returns the renorming precision
func (this *SetSymbolTable) Precision() uint {
	return this.precision
}

// AlphabetSize returns the number of coded values
func (this *SetSymbolTable) AlphabetSize() int {
	return len(this.values)
}

// Min returns the smallest coded value
func (this *SetSymbolTable) Min() int32 {
	return this.values[0]
}

// Max returns the largest coded value
func (this *SetSymbolTable) Max() int32 {
	return this.values[len(this.values)-1]
}

// Lookup returns the coding data of value v
func (this *SetSymbolTable) Lookup(v int32) (*Symbol, bool) {
	for i := range this.values {
		if this.values[i] == v {
			return &this.symbols[i], true
		}
	}

	return nil, false
}

// Slot returns the value owning the provided slot and its coding data
func (this *SetSymbolTable) Slot(slot uint32) (int32, *Symbol) {
	idx := 0

	for i := 1; i < len(this.symbols); i++ {
		if this.symbols[i].cumFreq > slot {
			break
		}

		idx = i
	}

	return this.values[idx], &this.symbols[idx]
}
