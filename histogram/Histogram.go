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

// Package histogram implements the statistical modeling stage of the rans-go
// engine: histogram construction over arbitrary int32 alphabets, descriptive
// metrics and renormalization of raw counts into a power-of-two probability
// model.
//
// Four histogram representations trade memory and build time for alphabets
// of different size and sparsity. All of them answer the same queries and
// are interchangeable inputs to Renorm.
package histogram

import (
	"errors"
	"fmt"
	"math"
)

// Errors reported by histogram construction. They are returned wrapped with
// context and can be matched with errors.Is.
var (
	// ErrEmptyHistogram is reported when an operation requires at least one sample
	ErrEmptyHistogram = errors.New("Empty histogram: no samples")

	// ErrOutOfRange is reported by a bounded build when a sample falls outside the window
	ErrOutOfRange = errors.New("Sample out of range")

	// ErrCountOverflow is reported when a symbol counter would wrap around
	ErrCountOverflow = errors.New("Symbol count overflow")
)

// Histogram counts occurrences of source symbols over one or more input
// ranges. A histogram is created empty, filled by AddSamples (append-only and
// repeatable: building from multiple calls equals building from the
// concatenation) and handed read-only to Renorm.
type Histogram interface {
	// AddSamples accumulates counts for the provided samples.
	AddSamples(samples []int32) error

	// AddSamplesRange accumulates counts, restricting the observed alphabet
	// to [min..max]. Any sample outside the window fails the build with
	// ErrOutOfRange and leaves the histogram content undefined.
	AddSamplesRange(samples []int32, min, max int32) error

	// Count returns the number of occurrences of value v (0 if never seen).
	Count(v int32) uint32

	// Total returns the number of samples added.
	Total() uint64

	// NumNonzero returns the number of distinct values with a nonzero count.
	NumNonzero() int

	// Min returns the smallest value with a nonzero count (0 if empty).
	Min() int32

	// Max returns the largest value with a nonzero count (0 if empty).
	Max() int32

	// Each calls f for every nonzero (value, count) pair in ascending
	// value order.
	Each(f func(v int32, count uint32))

	// Merge adds the counts of the other histogram into this one.
	// Merging is commutative and associative, so a sample sequence may be
	// partitioned, counted per partition and merged in any order.
	Merge(other Histogram) error
}

// DenseHistogram is backed by a contiguous array indexed by 'value - offset'.
// Lookup is O(1) and memory is proportional to the alphabet span, which makes
// it the representation of choice for small or contiguous alphabets.
type DenseHistogram struct {
	counts []uint32
	offset int32
	total  uint64
}

// NewDenseHistogram creates an empty DenseHistogram
func NewDenseHistogram() *DenseHistogram {
	return &DenseHistogram{}
}

// DenseFromSamples builds a DenseHistogram from the given samples
func DenseFromSamples(samples []int32) (*DenseHistogram, error) {
	h := NewDenseHistogram()

	if err := h.AddSamples(samples); err != nil {
		return nil, err
	}

	return h, nil
}

// DenseFromSamplesRange builds a DenseHistogram from the given samples,
// restricting the observed alphabet to [min..max].
func DenseFromSamplesRange(samples []int32, min, max int32) (*DenseHistogram, error) {
	h := NewDenseHistogram()

	if err := h.AddSamplesRange(samples, min, max); err != nil {
		return nil, err
	}

	return h, nil
}

// slot grows the backing array as needed and returns the index for value v
func (this *DenseHistogram) slot(v int32) int {
	if len(this.counts) == 0 {
		this.offset = v
		this.counts = make([]uint32, 1, 64)
		return 0
	}

	idx := int(int64(v) - int64(this.offset))

	if idx < 0 {
		ext := make([]uint32, len(this.counts)-idx)
		copy(ext[-idx:], this.counts)
		this.counts = ext
		this.offset = v
		return 0
	}

	if idx >= len(this.counts) {
		this.counts = append(this.counts, make([]uint32, idx-len(this.counts)+1)...)
	}

	return idx
}

func (this *DenseHistogram) addCount(v int32, count uint32) error {
	idx := this.slot(v)

	if this.counts[idx] > math.MaxUint32-count {
		return fmt.Errorf("%w for value %d", ErrCountOverflow, v)
	}

	this.counts[idx] += count
	this.total += uint64(count)
	return nil
}

// AddSamples accumulates counts for the provided samples
func (this *DenseHistogram) AddSamples(samples []int32) error {
	for _, v := range samples {
		if err := this.addCount(v, 1); err != nil {
			return err
		}
	}

	return nil
}

// AddSamplesRange accumulates counts, restricting the observed alphabet
// to [min..max]
func (this *DenseHistogram) AddSamplesRange(samples []int32, min, max int32) error {
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
func (this *DenseHistogram) Count(v int32) uint32 {
	idx := int(int64(v) - int64(this.offset))

	if idx < 0 || idx >= len(this.counts) {
		return 0
	}

	return this.counts[idx]
}

// Total returns the number of samples added
func (this *DenseHistogram) Total() uint64 {
	return this.total
}

// NumNonzero returns the number of distinct values with a nonzero count
func (this *DenseHistogram) NumNonzero() int {
	res := 0

	for _, c := range this.counts {
		if c != 0 {
			res++
		}
	}

	return res
}

// Min returns the smallest value with a nonzero count
func (this *DenseHistogram) Min() int32 {
	for i, c := range this.counts {
		if c != 0 {
			return this.offset + int32(i)
		}
	}

	return 0
}

// Max returns the largest value with a nonzero count
func (this *DenseHistogram) Max() int32 {
	for i := len(this.counts) - 1; i >= 0; i-- {
		if this.counts[i] != 0 {
			return this.offset + int32(i)
		}
	}

	return 0
}

// Each calls f for every nonzero (value, count) pair in ascending value order
func (this *DenseHistogram) Each(f func(v int32, count uint32)) {
	for i, c := range this.counts {
		if c != 0 {
			f(this.offset+int32(i), c)
		}
	}
}

// Merge adds the counts of the other histogram into this one
func (this *DenseHistogram) Merge(other Histogram) error {
	var err error

	other.Each(func(v int32, count uint32) {
		if err == nil {
			err = this.addCount(v, count)
		}
	})

	return err
}
