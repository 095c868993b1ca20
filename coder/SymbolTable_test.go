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

package coder

import (
	"math/rand"
	"testing"

	"github.com/rans-codec/rans-go/histogram"
)

func renormFromSamples(t *testing.T, samples []int32, precision uint) *histogram.RenormedHistogram {
	t.Helper()
	h, err := histogram.DenseFromSamples(samples)

	if err != nil {
		t.Fatalf("Histogram build failed: %v", err)
	}

	rh, err := histogram.RenormFixed(h, precision)

	if err != nil {
		t.Fatalf("Renorm failed: %v", err)
	}

	return rh
}

func allTables(t *testing.T, rh *histogram.RenormedHistogram) []SymbolTable {
	t.Helper()
	res := make([]SymbolTable, 0, 4)

	for _, kind := range []TableKind{TableDense, TableSparse, TableHash, TableSet} {
		table, err := NewSymbolTable(rh, kind)

		if err != nil {
			t.Fatalf("Cannot build table kind %v: %v", kind, err)
		}

		res = append(res, table)
	}

	return res
}

func TestSymbolTablesAgree(t *testing.T) {
	r := rand.New(rand.NewSource(123))
	samples := make([]int32, 4000)

	for i := range samples {
		samples[i] = int32(r.Intn(60))*7 - 200
	}

	rh := renormFromSamples(t, samples, 10)
	tables := allTables(t, rh)
	ref := tables[0]

	for k, table := range tables {
		if table.Precision() != rh.Precision() || table.AlphabetSize() != rh.AlphabetSize() {
			t.Errorf("Table %v: precision %v and size %v, expected %v and %v",
				k, table.Precision(), table.AlphabetSize(), rh.Precision(), rh.AlphabetSize())
		}

		if table.Min() != rh.Min() || table.Max() != rh.Max() {
			t.Errorf("Table %v: bounds [%v..%v], expected [%v..%v]",
				k, table.Min(), table.Max(), rh.Min(), rh.Max())
		}
	}

	// Encode direction
	rh.Each(func(v int32, freq uint32) {
		for k, table := range tables {
			sym, ok := table.Lookup(v)

			if ok == false {
				t.Fatalf("Table %v: coded value %v not found", k, v)
			}

			if sym.Freq() != freq {
				t.Errorf("Table %v: frequency %v for value %v, expected %v", k, sym.Freq(), v, freq)
			}
		}
	})

	// Decode direction, every slot
	for slot := uint32(0); slot < rh.Total(); slot++ {
		refVal, refSym := ref.Slot(slot)

		if slot < refSym.CumFreq() || slot >= refSym.CumFreq()+refSym.Freq() {
			t.Fatalf("Slot %v resolved outside its owner's range", slot)
		}

		for k, table := range tables[1:] {
			v, sym := table.Slot(slot)

			if v != refVal || sym.Freq() != refSym.Freq() || sym.CumFreq() != refSym.CumFreq() {
				t.Fatalf("Table %v: slot %v resolved to value %v, expected %v", k+1, slot, v, refVal)
			}
		}
	}
}

func TestSymbolTableUnknownValue(t *testing.T) {
	rh := renormFromSamples(t, []int32{1, 1, 5, 5, 9}, 6)

	for k, table := range allTables(t, rh) {
		for _, v := range []int32{0, 2, 8, 10, -100} {
			if _, ok := table.Lookup(v); ok == true {
				t.Errorf("Table %v: found a symbol for the uncoded value %v", k, v)
			}
		}
	}
}

func TestSymbolReciprocal(t *testing.T) {
	// The reciprocal path of the state update must match plain division
	// for every frequency and a spread of states.
	r := rand.New(rand.NewSource(456))
	p := uint(12)

	for _, freq := range []uint32{1, 2, 3, 5, 255, 256, 1000, 4095} {
		sym := newSymbol(17, freq, p)

		for i := 0; i < 1000; i++ {
			x := uint64(r.Uint32())
			want := (x/uint64(freq))<<p + x%uint64(freq) + 17
			got := x + uint64(sym.bias) + ((x*sym.invFreq)>>sym.invShift)*uint64(sym.cmplFreq)

			if got != want {
				t.Fatalf("Got %v for state %v and frequency %v, expected %v", got, x, freq, want)
			}
		}
	}
}
