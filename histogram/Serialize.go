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
	"math"

	rans "github.com/rans-codec/rans-go"
)

// Bitstream layout of a renormed histogram:
// - 5 bits: precision
// - varint: alphabet size
// - varint: zigzag encoded minimum value
// - 1 bit: contiguous alphabet flag
// - if not contiguous, one varint gap (delta - 1) per value after the first
// - frequencies minus one, packed by chunks sharing a bit width; the first
//   frequency is not transmitted and is inferred from the total on read.

const (
	_CONTIGUOUS_ALPHABET = 1
	_GAPPED_ALPHABET     = 0
)

func zigzagEncode(v int32) uint32 {
	return (uint32(v) << 1) ^ uint32(v>>31)
}

func zigzagDecode(u uint32) int32 {
	return int32((u >> 1) ^ (^(u & 1) + 1))
}

// freqChunkSize returns the number of frequencies sharing one bit width
func freqChunkSize(alphabetSize int) int {
	if alphabetSize < 64 {
		return 6
	}

	return 8
}

// logMaxBits returns the number of bits used to transmit a chunk bit width
func logMaxBits(precision uint) uint {
	llr := uint(3)

	for 1<<llr <= precision {
		llr++
	}

	return llr
}

// Write serializes the renormed histogram to the bitstream.
// The layout is the wire contract of ReadRenormedHistogram.
func (this *RenormedHistogram) Write(obs rans.OutputBitStream) error {
	if obs == nil {
		return errors.New("Invalid null bitstream parameter")
	}

	n := len(this.values)
	obs.WriteBits(uint64(this.precision), 5)
	rans.WriteVarInt(obs, uint32(n))
	rans.WriteVarInt(obs, zigzagEncode(this.min))

	contiguous := int64(this.max)-int64(this.min) == int64(n-1)

	if contiguous {
		obs.WriteBit(_CONTIGUOUS_ALPHABET)
	} else {
		obs.WriteBit(_GAPPED_ALPHABET)

		for i := 1; i < n; i++ {
			rans.WriteVarInt(obs, uint32(int64(this.values[i])-int64(this.values[i-1])-1))
		}
	}

	if n <= 1 {
		return nil
	}

	chkSize := freqChunkSize(n)
	llr := logMaxBits(this.precision)

	// Transmit all frequencies but the first one by chunks
	for i := 1; i < n; i += chkSize {
		endj := min(i+chkSize, n)
		max := this.freqs[i] - 1
		logMax := uint(0)

		for j := i + 1; j < endj; j++ {
			if this.freqs[j]-1 > max {
				max = this.freqs[j] - 1
			}
		}

		for 1<<logMax <= max {
			logMax++
		}

		obs.WriteBits(uint64(logMax), llr)

		if logMax == 0 {
			// all frequencies equal one in this chunk
			continue
		}

		for j := i; j < endj; j++ {
			obs.WriteBits(uint64(this.freqs[j]-1), logMax)
		}
	}

	return nil
}

// ReadRenormedHistogram deserializes a renormed histogram from the bitstream.
// The decoder side of Write.
func ReadRenormedHistogram(ibs rans.InputBitStream) (*RenormedHistogram, error) {
	if ibs == nil {
		return nil, errors.New("Invalid null bitstream parameter")
	}

	p := uint(ibs.ReadBits(5))

	if p < 1 || p > MaxPrecision {
		return nil, fmt.Errorf("Invalid bitstream: precision %d (must be in [1..%d])", p, MaxPrecision)
	}

	scale := uint32(1) << p
	n := int(rans.ReadVarInt(ibs))

	if n < 1 || uint32(n) > scale {
		return nil, fmt.Errorf("Invalid bitstream: incorrect alphabet size %d for precision %d", n, p)
	}

	minValue := zigzagDecode(rans.ReadVarInt(ibs))
	values := make([]int32, n)
	values[0] = minValue

	if ibs.ReadBit() == _CONTIGUOUS_ALPHABET {
		for i := 1; i < n; i++ {
			values[i] = minValue + int32(i)
		}
	} else {
		prev := int64(minValue)

		for i := 1; i < n; i++ {
			prev += int64(rans.ReadVarInt(ibs)) + 1

			if prev > math.MaxInt32 {
				return nil, errors.New("Invalid bitstream: symbol value out of range")
			}

			values[i] = int32(prev)
		}
	}

	freqs := make([]uint32, n)

	if n == 1 {
		freqs[0] = scale
	} else {
		chkSize := freqChunkSize(n)
		llr := logMaxBits(p)
		sum := uint32(0)

		for i := 1; i < n; i += chkSize {
			logMax := uint(ibs.ReadBits(llr))

			if logMax > p {
				return nil, fmt.Errorf("Invalid bitstream: incorrect frequency size %d", logMax)
			}

			endj := min(i+chkSize, n)

			for j := i; j < endj; j++ {
				freq := uint32(1)

				if logMax > 0 {
					freq = 1 + uint32(ibs.ReadBits(logMax))

					if freq >= scale {
						return nil, fmt.Errorf("Invalid bitstream: incorrect frequency %d for value %d", freq, values[j])
					}
				}

				freqs[j] = freq
				sum += freq
			}
		}

		// Infer first frequency
		if sum >= scale {
			return nil, fmt.Errorf("Invalid bitstream: frequencies sum %d exceeds total %d", sum, scale)
		}

		freqs[0] = scale - sum
	}

	return &RenormedHistogram{
		precision: p,
		min:       values[0],
		max:       values[n-1],
		values:    values,
		freqs:     freqs,
	}, nil
}
