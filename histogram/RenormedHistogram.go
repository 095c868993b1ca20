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

package histogram

import "sort"

// RenormedHistogram is a histogram whose counts have been rescaled so their
// sum equals exactly 2^precision. It is immutable once constructed: the
// nonzero (value, frequency) pairs are stored in ascending value order,
// which is also the cumulative frequency order used by the symbol tables.
type RenormedHistogram struct {
	precision uint
	min       int32
	max       int32
	values    []int32
	freqs     []uint32
}

// Precision returns the renorming precision p (total frequency is 2^p)
func (this *RenormedHistogram) Precision() uint {
	return this.precision
}

// Total returns the normalized total frequency 2^precision
func (this *RenormedHistogram) Total() uint32 {
	return uint32(1) << this.precision
}

// AlphabetSize returns the number of values with a nonzero frequency
func (this *RenormedHistogram) AlphabetSize() int {
	return len(this.values)
}

// Min returns the smallest value with a nonzero frequency
func (this *RenormedHistogram) Min() int32 {
	return this.min
}

// Max returns the largest value with a nonzero frequency
func (this *RenormedHistogram) Max() int32 {
	return this.max
}

// At returns the i-th (value, frequency) pair in ascending value order
func (this *RenormedHistogram) At(i int) (int32, uint32) {
	return this.values[i], this.freqs[i]
}

// Frequency returns the normalized frequency of value v (0 if not coded)
func (this *RenormedHistogram) Frequency(v int32) uint32 {
	idx := sort.Search(len(this.values), func(i int) bool { return this.values[i] >= v })

	if idx < len(this.values) && this.values[idx] == v {
		return this.freqs[idx]
	}

	return 0
}

// Each calls f for every (value, frequency) pair in ascending value order
func (this *RenormedHistogram) Each(f func(v int32, freq uint32)) {
	for i, v := range this.values {
		f(v, this.freqs[i])
	}
}

// Equals returns true if both renormed histograms have identical content
func (this *RenormedHistogram) Equals(other *RenormedHistogram) bool {
	if other == nil || this.precision != other.precision || len(this.values) != len(other.values) {
		return false
	}

	for i := range this.values {
		if this.values[i] != other.values[i] || this.freqs[i] != other.freqs[i] {
			return false
		}
	}

	return true
}
