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
	"math/rand"
	"testing"

	"github.com/rans-codec/rans-go/bitstream"
	"github.com/rans-codec/rans-go/internal"
)

func transmit(t *testing.T, rh *RenormedHistogram) *RenormedHistogram {
	t.Helper()
	bs := internal.NewBufferStream()
	obs, err := bitstream.NewDefaultOutputBitStream(bs, 16384)

	if err != nil {
		t.Fatalf("Cannot create output bitstream: %v", err)
	}

	if err := rh.Write(obs); err != nil {
		t.Fatalf("Serialization failed: %v", err)
	}

	if err := obs.Close(); err != nil {
		t.Fatalf("Error closing output bitstream: %v", err)
	}

	ibs, err := bitstream.NewDefaultInputBitStream(bs, 16384)

	if err != nil {
		t.Fatalf("Cannot create input bitstream: %v", err)
	}

	res, err := ReadRenormedHistogram(ibs)

	if err != nil {
		t.Fatalf("Deserialization failed: %v", err)
	}

	ibs.Close()
	return res
}

func TestSerializeContiguousAlphabet(t *testing.T) {
	r := rand.New(rand.NewSource(1111))
	samples := make([]int32, 5000)

	for i := range samples {
		samples[i] = int32(r.Intn(200)) - 100
	}

	// Make the alphabet contiguous
	for v := int32(-100); v < 100; v++ {
		samples = append(samples, v)
	}

	h, _ := DenseFromSamples(samples)
	rh, err := RenormFixed(h, 12)

	if err != nil {
		t.Fatalf("Renorm failed: %v", err)
	}

	if got := transmit(t, rh); got.Equals(rh) == false {
		t.Errorf("Round trip changed the histogram")
	}
}

func TestSerializeGappedAlphabet(t *testing.T) {
	r := rand.New(rand.NewSource(2222))
	samples := make([]int32, 3000)

	for i := range samples {
		// Large gaps between coded values
		samples[i] = int32(r.Intn(50))*1000 - 25000
	}

	h, _ := SparseFromSamples(samples)
	rh, err := RenormFixed(h, 10)

	if err != nil {
		t.Fatalf("Renorm failed: %v", err)
	}

	if got := transmit(t, rh); got.Equals(rh) == false {
		t.Errorf("Round trip changed the histogram")
	}
}

func TestSerializeSingleSymbol(t *testing.T) {
	h, _ := DenseFromSamples([]int32{-12345, -12345})
	rh, err := RenormFixed(h, 7)

	if err != nil {
		t.Fatalf("Renorm failed: %v", err)
	}

	got := transmit(t, rh)

	if got.Equals(rh) == false || got.Frequency(-12345) != 128 {
		t.Errorf("Round trip changed the histogram")
	}
}

func TestSerializeManyPrecisions(t *testing.T) {
	r := rand.New(rand.NewSource(3333))
	samples := randomSamples(r, 8000, 500, -250)

	for _, p := range []uint{9, 12, 16, 20} {
		h, _ := DenseFromSamples(samples)
		rh, err := RenormFixed(h, p)

		if err != nil {
			t.Fatalf("Renorm failed at precision %v: %v", p, err)
		}

		if got := transmit(t, rh); got.Equals(rh) == false {
			t.Errorf("Round trip changed the histogram at precision %v", p)
		}
	}
}
