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

// SetHistogram is specialized for alphabets with very few distinct values:
// counts live in a small unsorted slice and every lookup is a linear scan,
// which beats any indexed structure at this size.
type SetHistogram struct {
	entries []setEntry
	total   uint64
}

type setEntry struct {
	value int32
	count uint32
}

// NewSetHistogram creates an empty SetHistogram
func NewSetHistogram() *SetHistogram {
	return &SetHistogram{}
}

// SetFromSamples builds a SetHistogram from the given samples
func SetFromSamples(samples []int32) (*SetHistogram, error) {
	h := NewSetHistogram()

	if err := h.AddSamples(samples); err != nil {
		return nil, err
	}

	return h, nil
}

func (this *SetHistogram) addCount(v int32, count uint32) error {
	for i := range this.entries {
		if this.entries[i].value == v {
			if this.entries[i].count > math.MaxUint32-count {
				return fmt.Errorf("%w for value %d", ErrCountOverflow, v)
			}

			this.entries[i].count += count
			this.total += uint64(count)
			return nil
		}
	}

	this.entries = append(this.entries, setEntry{value: v, count: count})
	this.total += uint64(count)
	return nil
}

// AddSamples accumulates counts for the provided samples
func (this *SetHistogram) AddSamples(samples []int32) error {
	for _, v := range samples {
		if err := this.addCount(v, 1); err != nil {
			return err
		}
	}

	return nil
}

// AddSamplesRange accumulates counts, restricting the observed alphabet
// to [min..max]
func (this *SetHistogram) AddSamplesRange(samples []int32, min, max int32) error {
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
func (this *SetHistogram) Count(v int32) uint32 {
	for i := range this.entries {
		if this.entries[i].value == v {
			return this.entries[i].count
		}
	}

	return 0
}

// Total returns the number of samples added
func (this *SetHistogram) Total() uint64 {
	return this.total
}

// NumNonzero returns the number of distinct values with a nonzero count
func (this *SetHistogram) NumNonzero() int {
	return len(this.entries)
}

// Min returns the smallest value with a nonzero count
func (this *SetHistogram) Min() int32 {
	if len(this.entries) == 0 {
		return 0
	}

	res := this.entries[0].value

	for _, e := range this.entries[1:] {
		if e.value < res {
			res = e.value
		}
	}

	return res
}

// Max returns the largest value with a nonzero count
func (this *SetHistogram) Max() int32 {
	if len(this.entries) == 0 {
		return 0
	}

	res := this.entries[0].value

	for _, e := range this.entries[1:] {
		if e.value > res {
			res = e.value
		}
	}

	return res
}

// Each calls f for every nonzero (value, count) pair in ascending value order
func (this *SetHistogram) Each(f func(v int32, count uint32)) {
	ordered := make([]setEntry, len(this.entries))
	copy(ordered, this.entries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].value < ordered[j].value })

	for _, e := range ordered {
		f(e.value, e.count)
	}
}

// Merge adds the counts of the other histogram into this one
func (this *SetHistogram) Merge(other Histogram) error {
	var err error

	other.Each(func(v int32, count uint32) {
		if err == nil {
			err = this.addCount(v, count)
		}
	})

	return err
}
