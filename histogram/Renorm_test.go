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

func checkRenormed(t *testing.T, rh *RenormedHistogram, h Histogram) {
	t.Helper()
	sum := uint64(0)

	rh.Each(func(v int32, freq uint32) {
		if freq == 0 {
			t.Errorf("Coded value %v got a zero frequency", v)
		}

		if h != nil && h.Count(v) == 0 {
			t.Errorf("Value %v coded but never observed", v)
		}

		sum += uint64(freq)
	})

	if sum != uint64(1)<<rh.Precision() {
		t.Errorf("Frequencies sum to %v, expected %v", sum, uint64(1)<<rh.Precision())
	}

	if h != nil && rh.AlphabetSize() != h.NumNonzero() {
		t.Errorf("Got %v coded values, expected %v", rh.AlphabetSize(), h.NumNonzero())
	}
}

func TestRenormInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(918273))

	for test := 0; test < 10; test++ {
		samples := randomSamples(r, 5000, 50+test*100, int32(-100*test))
		h, err := DenseFromSamples(samples)

		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		n := h.NumNonzero()
		rh, err := RenormFixed(h, 14)

		if err != nil {
			t.Fatalf("Renorm failed for %v distinct values: %v", n, err)
		}

		checkRenormed(t, rh, nil)

		if rh.AlphabetSize() != n {
			t.Errorf("Got %v coded values, expected %v", rh.AlphabetSize(), n)
		}
	}
}

func TestRenormDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(555))
	samples := randomSamples(r, 4000, 700, -350)

	h1, _ := DenseFromSamples(samples)
	h2, _ := SparseFromSamples(samples)
	rh1, err1 := RenormFixed(h1, 12)
	rh2, err2 := RenormFixed(h2, 12)

	if err1 != nil || err2 != nil {
		t.Fatalf("Renorm failed: %v, %v", err1, err2)
	}

	if rh1.Equals(rh2) == false {
		t.Errorf("Two renorms of the same distribution differ")
	}
}

func TestRenormScenario(t *testing.T) {
	samples := []int32{0, 0, 0, 1, 1, 2}
	h, _ := DenseFromSamples(samples)
	rh, err := RenormFixed(h, 3)

	if err != nil {
		t.Fatalf("Renorm failed: %v", err)
	}

	expected := []uint32{4, 3, 1}

	for i, want := range expected {
		if v, freq := rh.At(i); v != int32(i) || freq != want {
			t.Errorf("Got (%v, %v) at index %v, expected (%v, %v)", v, freq, i, i, want)
		}
	}
}

func TestRenormSingleSymbol(t *testing.T) {
	h, _ := DenseFromSamples([]int32{42, 42, 42, 42})
	rh, err := RenormFixed(h, 5)

	if err != nil {
		t.Fatalf("Renorm failed: %v", err)
	}

	if rh.AlphabetSize() != 1 || rh.Frequency(42) != 32 {
		t.Errorf("Got %v values and frequency %v, expected 1 and 32", rh.AlphabetSize(), rh.Frequency(42))
	}
}

func TestRenormSkewed(t *testing.T) {
	// One dominant value and many rare ones: the rare ones must keep
	// a frequency of at least 1 each.
	samples := make([]int32, 0, 10100)

	for i := 0; i < 10000; i++ {
		samples = append(samples, 0)
	}

	for v := int32(1); v <= 100; v++ {
		samples = append(samples, v)
	}

	h, _ := DenseFromSamples(samples)
	rh, err := RenormFixed(h, 8)

	if err != nil {
		t.Fatalf("Renorm failed: %v", err)
	}

	checkRenormed(t, rh, h)
}

func TestRenormInfeasiblePrecision(t *testing.T) {
	samples := make([]int32, 100)

	for i := range samples {
		samples[i] = int32(i)
	}

	h, _ := DenseFromSamples(samples)

	// 100 distinct values cannot fit in 2^6 slots
	if _, err := RenormFixed(h, 6); errors.Is(err, ErrPrecision) == false {
		t.Errorf("Got %v, expected a precision error", err)
	}

	h2, _ := DenseFromSamples(samples)

	if _, err := RenormFixed(h2, MaxPrecision+1); errors.Is(err, ErrPrecision) == false {
		t.Errorf("Got %v, expected a precision error", err)
	}
}

func TestRenormAutoPolicy(t *testing.T) {
	r := rand.New(rand.NewSource(8080))
	samples := randomSamples(r, 3000, 256, 0)
	h, _ := DenseFromSamples(samples)
	n := h.NumNonzero()

	rh, err := RenormAuto(h)

	if err != nil {
		t.Fatalf("Renorm failed: %v", err)
	}

	p := rh.Precision()

	if p < MinAutoPrecision || p > MaxAutoPrecision {
		t.Errorf("Auto policy picked precision %v outside [%v..%v]", p, MinAutoPrecision, MaxAutoPrecision)
	}

	if int(1)<<p < n {
		t.Errorf("Auto policy picked precision %v, too small for %v distinct values", p, n)
	}

	checkRenormed(t, rh, nil)
}
