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

import (
	"fmt"
	"math"
	"sort"
)

// SparseHistogram keeps counts only for observed values, ordered by value.
// It is backed by two parallel slices maintained in ascending value order,
// which makes iteration and cumulative frequency derivation cheap while
// memory stays proportional to the number of distinct values. Best suited
// for alphabets with a large span but low occupancy.
type SparseHistogram struct {
	values []int32
	counts []uint32
	total  uint64
}

// NewSparseHistogram creates an empty SparseHistogram
func NewSparseHistogram() *SparseHistogram {
	return &SparseHistogram{}
}

// SparseFromSamples builds a SparseHistogram from the given samples
func SparseFromSamples(samples []int32) (*SparseHistogram, error) {
	h := NewSparseHistogram()

	if err := h.AddSamples(samples); err != nil {
		return nil, err
	}

	return h, nil
}

func (this *SparseHistogram) addCount(v int32, count uint32) error {
	idx := sort.Search(len(this.values), func(i int) bool { return this.values[i] >= v })

	if idx < len(this.values) && this.values[idx] == v {
		if this.counts[idx] > math.MaxUint32-count {
			return fmt.Errorf("%w for value %d", ErrCountOverflow, v)
		}

		this.counts[idx] += count
	} else {
		this.values = append(this.values, 0)
		this.counts = append(this.counts, 0)
		copy(this.values[idx+1:], this.values[idx:])
		copy(this.counts[idx+1:], this.counts[idx:])
		this.values[idx] = v
		this.counts[idx] = count
	}

	this.total += uint64(count)
	return nil
}

// AddSamples accumulates counts for the provided samples
func (this *SparseHistogram) AddSamples(samples []int32) error {
	for _, v := range samples {
		if err := this.addCount(v, 1); err != nil {
			return err
		}
	}

	return nil
}

// AddSamplesRange accumulates counts, restricting the observed alphabet
// to [min..max]
func (this *SparseHistogram) AddSamplesRange(samples []int32, min, max int32) error {
	if min > max {
		return fmt.Errorf("Invalid range parameters: min %d > max %d", min, max)
	}

	for _, v := range samples {
		if v < min || v > max {
			return fmt.Errorf("%w: value %d outside [%d..%d]", ErrOutOfRange, v, min, max)
		}

		if err := this.addCount(v, 1); err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of occurrences of value v
func (this *SparseHistogram) Count(v int32) uint32 {
	idx := sort.Search(len(this.values), func(i int) bool { return this.values[i] >= v })

	if idx < len(this.values) && this.values[idx] == v {
		return this.counts[idx]
	}

	return 0
}

// Total returns the number of samples added
func (this *SparseHistogram) Total() uint64 {
	return this.total
}

// NumNonzero returns the number of distinct values with a nonzero count
func (this *SparseHistogram) NumNonzero() int {
	return len(this.values)
}

// Min returns the smallest value with a nonzero count
func (this *SparseHistogram) Min() int32 {
	if len(this.values) == 0 {
		return 0
	}

	return this.values[0]
}

// Max returns the largest value with a nonzero count
func (this *SparseHistogram) Max() int32 {
	if len(this.values) == 0 {
		return 0
	}

	return this.values[len(this.values)-1]
}

// Each calls f for every nonzero (value, count) pair in ascending value order
func (this *SparseHistogram) Each(f func(v int32, count uint32)) {
	for i, v := range this.values {
		f(v, this.counts[i])
	}
}

// Merge adds the counts of the other histogram into this one
func (this *SparseHistogram) Merge(other Histogram) error {
	var err error

	other.Each(func(v int32, count uint32) {
		if err == nil {
			err = this.addCount(v, count)
		}
	})

	return err
}
