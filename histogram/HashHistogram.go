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

// HashHistogram accumulates counts in an unordered associative map. The hot
// accumulation path carries no ordering overhead; values are sorted only when
// an ordered walk is requested. Best suited for very large sparse alphabets.
type HashHistogram struct {
	counts map[int32]uint32
	total  uint64
}

// NewHashHistogram creates an empty HashHistogram
func NewHashHistogram() *HashHistogram {
	return &HashHistogram{counts: make(map[int32]uint32)}
}

// HashFromSamples builds a HashHistogram from the given samples
func HashFromSamples(samples []int32) (*HashHistogram, error) {
	h := NewHashHistogram()

	if err := h.AddSamples(samples); err != nil {
		return nil, err
	}

	return h, nil
}

func (this *HashHistogram) addCount(v int32, count uint32) error {
	if this.counts[v] > math.MaxUint32-count {
		return fmt.Errorf("%w for value %d", ErrCountOverflow, v)
	}

	this.counts[v] += count
	this.total += uint64(count)
	return nil
}

// AddSamples accumulates counts for the provided samples
func (this *HashHistogram) AddSamples(samples []int32) error {
	for _, v := range samples {
		if err := this.addCount(v, 1); err != nil {
			return err
		}
	}

	return nil
}

// AddSamplesRange accumulates counts, restricting the observed alphabet
// to [min..max]
func (this *HashHistogram) AddSamplesRange(samples []int32, min, max int32) error {
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
func (this *HashHistogram) Count(v int32) uint32 {
	return this.counts[v]
}

// Total returns the number of samples added
func (this *HashHistogram) Total() uint64 {
	return this.total
}

// NumNonzero returns the number of distinct values with a nonzero count
func (this *HashHistogram) NumNonzero() int {
	return len(this.counts)
}

func (this *HashHistogram) sortedValues() []int32 {
	values := make([]int32, 0, len(this.counts))

	for v := range this.counts {
		values = append(values, v)
	}

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// Min returns the smallest value with a nonzero count
func (this *HashHistogram) Min() int32 {
	res := int32(0)
	first := true

	for v := range this.counts {
		if first == true || v < res {
			res = v
			first = false
		}
	}

	return res
}

// Max returns the largest value with a nonzero count
func (this *HashHistogram) Max() int32 {
	res := int32(0)
	first := true

	for v := range this.counts {
		if first == true || v > res {
			res = v
			first = false
		}
	}

	return res
}

// Each calls f for every nonzero (value, count) pair in ascending value order
func (this *HashHistogram) Each(f func(v int32, count uint32)) {
	for _, v := range this.sortedValues() {
		f(v, this.counts[v])
	}
}

// Merge adds the counts of the other histogram into this one
func (this *HashHistogram) Merge(other Histogram) error {
	var err error

	other.Each(func(v int32, count uint32) {
		if err == nil {
			err = this.addCount(v, count)
		}
	})

	return err
}
