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
	"math/rand"
	"testing"
)

func randomSamples(r *rand.Rand, count, span int, offset int32) []int32 {
	samples := make([]int32, count)

	for i := range samples {
		samples[i] = offset + int32(r.Intn(span))
	}

	return samples
}

func buildAll(t *testing.T, samples []int32) []Histogram {
	t.Helper()
	dense, err := DenseFromSamples(samples)

	if err != nil {
		t.Fatalf("Dense build failed: %v", err)
	}

	sparse, err := SparseFromSamples(samples)

	if err != nil {
		t.Fatalf("Sparse build failed: %v", err)
	}

	hash, err := HashFromSamples(samples)

	if err != nil {
		t.Fatalf("Hash build failed: %v", err)
	}

	set, err := SetFromSamples(samples)

	if err != nil {
		t.Fatalf("Set build failed: %v", err)
	}

	return []Histogram{dense, sparse, hash, set}
}

func TestHistogramRepresentationsAgree(t *testing.T) {
	r := rand.New(rand.NewSource(20240901))

	for test := 0; test < 10; test++ {
		samples := randomSamples(r, 2000, 100+test*500, int32(-250*test))
		all := buildAll(t, samples)
		ref := all[0]

		for k, h := range all[1:] {
			if h.Total() != ref.Total() {
				t.Errorf("Representation %v: got total %v, expected %v", k+1, h.Total(), ref.Total())
			}

			if h.NumNonzero() != ref.NumNonzero() {
				t.Errorf("Representation %v: got %v nonzero, expected %v", k+1, h.NumNonzero(), ref.NumNonzero())
			}

			if h.Min() != ref.Min() || h.Max() != ref.Max() {
				t.Errorf("Representation %v: got bounds [%v..%v], expected [%v..%v]",
					k+1, h.Min(), h.Max(), ref.Min(), ref.Max())
			}
		}

		// Pairwise counts through Each, against direct lookups
		ref.Each(func(v int32, count uint32) {
			for k, h := range all[1:] {
				if h.Count(v) != count {
					t.Errorf("Representation %v: got count %v for value %v, expected %v", k+1, h.Count(v), v, count)
				}
			}
		})
	}
}

func TestHistogramEachAscending(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	samples := randomSamples(r, 500, 1000, -500)

	for k, h := range buildAll(t, samples) {
		prev := int32(-1 << 31)
		first := true

		h.Each(func(v int32, count uint32) {
			if count == 0 {
				t.Errorf("Representation %v: Each visited value %v with a zero count", k, v)
			}

			if first == false && v <= prev {
				t.Errorf("Representation %v: Each visited %v after %v", k, v, prev)
			}

			prev = v
			first = false
		})
	}
}

func TestHistogramBoundedBuild(t *testing.T) {
	samples := []int32{0, 5, 3, 9, 5}

	h := NewDenseHistogram()

	if err := h.AddSamplesRange(samples, 0, 9); err != nil {
		t.Errorf("Bounded build rejected in-range samples: %v", err)
	}

	if h.Count(5) != 2 || h.Total() != 5 {
		t.Errorf("Got count %v and total %v, expected 2 and 5", h.Count(5), h.Total())
	}

	h2 := NewDenseHistogram()
	err := h2.AddSamplesRange(samples, 0, 8)

	if errors.Is(err, ErrOutOfRange) == false {
		t.Errorf("Got %v, expected an out of range error", err)
	}
}

func TestHistogramMerge(t *testing.T) {
	r := rand.New(rand.NewSource(777))
	samples := randomSamples(r, 3000, 300, -150)
	half := len(samples) / 2

	whole, err := DenseFromSamples(samples)

	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	left, _ := DenseFromSamples(samples[:half])
	right, _ := SparseFromSamples(samples[half:])

	if err := left.Merge(right); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if left.Total() != whole.Total() || left.NumNonzero() != whole.NumNonzero() {
		t.Fatalf("Merged total %v (%v distinct), expected %v (%v distinct)",
			left.Total(), left.NumNonzero(), whole.Total(), whole.NumNonzero())
	}

	whole.Each(func(v int32, count uint32) {
		if left.Count(v) != count {
			t.Errorf("Got merged count %v for value %v, expected %v", left.Count(v), v, count)
		}
	})
}

func TestHistogramIncrementalEqualsBatch(t *testing.T) {
	r := rand.New(rand.NewSource(31415))
	samples := randomSamples(r, 1000, 64, 0)

	batch, _ := DenseFromSamples(samples)
	inc := NewDenseHistogram()

	for i := 0; i < len(samples); i += 100 {
		if err := inc.AddSamples(samples[i : i+100]); err != nil {
			t.Fatalf("Incremental build failed: %v", err)
		}
	}

	batch.Each(func(v int32, count uint32) {
		if inc.Count(v) != count {
			t.Errorf("Got incremental count %v for value %v, expected %v", inc.Count(v), v, count)
		}
	})
}

func TestHistogramParallelEqualsSequential(t *testing.T) {
	r := rand.New(rand.NewSource(271828))
	samples := randomSamples(r, 50000, 4096, -2048)

	seq, err := DenseFromSamples(samples)

	if err != nil {
		t.Fatalf("Sequential build failed: %v", err)
	}

	for _, jobs := range []uint{1, 2, 3, 8} {
		par, err := FromSamplesParallel(samples, jobs)

		if err != nil {
			t.Fatalf("Parallel build with %v jobs failed: %v", jobs, err)
		}

		if par.Total() != seq.Total() || par.NumNonzero() != seq.NumNonzero() {
			t.Fatalf("Parallel build with %v jobs: total %v (%v distinct), expected %v (%v distinct)",
				jobs, par.Total(), par.NumNonzero(), seq.Total(), seq.NumNonzero())
		}

		seq.Each(func(v int32, count uint32) {
			if par.Count(v) != count {
				t.Errorf("Parallel build with %v jobs: count %v for value %v, expected %v", jobs, par.Count(v), v, count)
			}
		})
	}
}

func TestHistogramEmpty(t *testing.T) {
	h := NewDenseHistogram()

	if h.Total() != 0 || h.NumNonzero() != 0 {
		t.Errorf("Empty histogram reports total %v and %v distinct values", h.Total(), h.NumNonzero())
	}

	if _, err := RenormAuto(h); errors.Is(err, ErrEmptyHistogram) == false {
		t.Errorf("Got %v, expected an empty histogram error", err)
	}
}
