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
	"errors"
	"fmt"
	"sort"

	rans "github.com/rans-codec/rans-go"
)

const (
	// MinAutoPrecision is the default lower bound of the Auto policy
	MinAutoPrecision = 10

	// MaxAutoPrecision is the default upper bound of the Auto policy
	MaxAutoPrecision = 20

	// MaxPrecision is the largest precision accepted by Renorm
	MaxPrecision = 24
)

// ErrPrecision is reported when the requested precision cannot give every
// distinct symbol a nonzero frequency or exceeds the maximum table size.
var ErrPrecision = errors.New("Infeasible renorming precision")

// RenormPolicy selects how the renormalization precision is chosen
type RenormPolicy int

const (
	// PolicyAuto derives the precision from the histogram metrics
	PolicyAuto RenormPolicy = iota

	// PolicyFixed uses the precision provided in the configuration
	PolicyFixed
)

// RenormConfig carries the renormalization parameters.
// The zero value selects the Auto policy with default bounds.
type RenormConfig struct {
	Policy       RenormPolicy
	Precision    uint // target precision, used by PolicyFixed
	MinPrecision uint // Auto policy lower bound, 0 means MinAutoPrecision
	MaxPrecision uint // Auto policy upper bound, 0 means MaxAutoPrecision
}

// Renorm rescales the raw counts of the histogram so that their sum equals
// 2^precision. Every value with a nonzero raw count keeps a frequency of at
// least 1; values never seen stay excluded from the coding alphabet.
//
// Renorm takes ownership of the histogram: the caller must not reuse it
// afterwards (build a copy first if the raw counts are still needed).
//
// The rescaling is proportional with round-to-nearest, followed by a
// deterministic redistribution of the remainder: symbols ordered by
// decreasing scaled frequency (ties broken by ascending value) absorb one
// unit corrections cyclically, and no frequency ever drops below 1. Two runs
// on identical input and configuration produce identical output.
func Renorm(h Histogram, cfg RenormConfig) (*RenormedHistogram, error) {
	if h == nil {
		return nil, errors.New("Invalid null histogram parameter")
	}

	total := h.Total()

	if total == 0 {
		return nil, fmt.Errorf("%w: cannot renorm", ErrEmptyHistogram)
	}

	n := h.NumNonzero()
	floor := rans.CeilLog2(uint32(n))
	var p uint

	switch cfg.Policy {
	case PolicyFixed:
		p = cfg.Precision

	case PolicyAuto:
		minP := cfg.MinPrecision
		maxP := cfg.MaxPrecision

		if minP == 0 {
			minP = MinAutoPrecision
		}

		if maxP == 0 {
			maxP = MaxAutoPrecision
		}

		p = ComputeMetrics(h).SuggestedPrecision(minP, maxP)

	default:
		return nil, fmt.Errorf("Invalid renorming policy: %d", cfg.Policy)
	}

	if p < 1 || p > MaxPrecision {
		return nil, fmt.Errorf("%w: precision %d (must be in [1..%d])", ErrPrecision, p, MaxPrecision)
	}

	if p < floor {
		return nil, fmt.Errorf("%w: precision %d too small for %d distinct symbols", ErrPrecision, p, n)
	}

	values := make([]int32, 0, n)
	raw := make([]uint64, 0, n)

	h.Each(func(v int32, count uint32) {
		values = append(values, v)
		raw = append(raw, uint64(count))
	})

	scale := uint64(1) << p
	freqs := make([]uint32, n)

	if n == 1 {
		freqs[0] = uint32(scale)
	} else {
		sum := uint64(0)

		// Proportional scaling, round-to-nearest, at least one quantum per symbol
		for i, c := range raw {
			sf := (c*scale + total/2) / total

			if sf == 0 {
				sf = 1
			}

			freqs[i] = uint32(sf)
			sum += sf
		}

		if err := redistribute(values, freqs, int64(sum)-int64(scale)); err != nil {
			return nil, fmt.Errorf("%w: precision %d too small for %d distinct symbols", ErrPrecision, p, n)
		}
	}

	return &RenormedHistogram{
		precision: p,
		min:       values[0],
		max:       values[n-1],
		values:    values,
		freqs:     freqs,
	}, nil
}

// RenormFixed is a shortcut for Renorm with an explicit precision
func RenormFixed(h Histogram, precision uint) (*RenormedHistogram, error) {
	return Renorm(h, RenormConfig{Policy: PolicyFixed, Precision: precision})
}

// RenormAuto is a shortcut for Renorm with the Auto policy and default bounds
func RenormAuto(h Histogram) (*RenormedHistogram, error) {
	return Renorm(h, RenormConfig{Policy: PolicyAuto})
}

// redistribute spreads the scaling remainder over the frequencies: one unit
// corrections are applied cyclically to symbols ordered by decreasing scaled
// frequency (ties broken by ascending value), skipping any symbol whose
// frequency would drop below 1.
func redistribute(values []int32, freqs []uint32, delta int64) error {
	if delta == 0 {
		return nil
	}

	order := make([]int, len(freqs))

	for i := range order {
		order[i] = i
	}

	sort.Slice(order, func(a, b int) bool {
		ia := order[a]
		ib := order[b]

		if freqs[ia] != freqs[ib] {
			return freqs[ia] > freqs[ib]
		}

		return values[ia] < values[ib]
	})

	for delta != 0 {
		progress := false

		for _, idx := range order {
			if delta == 0 {
				break
			}

			if delta > 0 {
				if freqs[idx] > 1 {
					freqs[idx]--
					delta--
					progress = true
				}
			} else {
				freqs[idx]++
				delta++
				progress = true
			}
		}

		if progress == false {
			return errors.New("Cannot redistribute remainder")
		}
	}

	return nil
}
