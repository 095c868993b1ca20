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
	"math"

	rans "github.com/rans-codec/rans-go"
)

// Metrics is a read-only snapshot of a histogram: entropy estimate, alphabet
// size and dynamic range. It is recomputed on demand and used to pick a
// renormalization precision under the Auto policy.
type Metrics struct {
	total        uint64
	alphabetSize int
	min          int32
	max          int32
	entropy      float64
}

// ComputeMetrics derives the metrics of the provided histogram
func ComputeMetrics(h Histogram) *Metrics {
	this := &Metrics{}
	this.total = h.Total()
	this.alphabetSize = h.NumNonzero()
	this.min = h.Min()
	this.max = h.Max()

	if this.total > 0 {
		invTotal := 1.0 / float64(this.total)

		h.Each(func(v int32, count uint32) {
			p := float64(count) * invTotal
			this.entropy -= p * math.Log2(p)
		})
	}

	return this
}

// Total returns the number of samples in the underlying histogram
func (this *Metrics) Total() uint64 {
	return this.total
}

// AlphabetSize returns the number of distinct values with a nonzero count
func (this *Metrics) AlphabetSize() int {
	return this.alphabetSize
}

// Min returns the smallest value with a nonzero count
func (this *Metrics) Min() int32 {
	return this.min
}

// Max returns the largest value with a nonzero count
func (this *Metrics) Max() int32 {
	return this.max
}

// Entropy returns the Shannon entropy of the distribution in bits per symbol
func (this *Metrics) Entropy() float64 {
	return this.entropy
}

// EntropyBits returns a lower bound for the compressed size in bits
func (this *Metrics) EntropyBits() uint64 {
	return uint64(math.Ceil(this.entropy * float64(this.total)))
}

// SuggestedPrecision computes a renormalization precision for the Auto
// policy: wider alphabets get a larger precision, bounded by the provided
// minimum and maximum and never below the feasibility floor
// ceil(log2(alphabetSize)).
func (this *Metrics) SuggestedPrecision(minPrecision, maxPrecision uint) uint {
	floor := rans.CeilLog2(uint32(this.alphabetSize))
	p := floor + 6

	if p < minPrecision {
		p = minPrecision
	}

	if p > maxPrecision {
		p = maxPrecision
	}

	if p < floor {
		p = floor
	}

	return p
}
