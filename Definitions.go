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

// Package rans defines the top level interfaces used in the rans-go
// entropy coding engine.
//
// The engine turns a stream of discrete symbols with a measured frequency
// distribution into a near optimal compressed bitstream and reverses the
// process exactly. The implementations are available in sub-folders:
// histogram contains the statistical modeling (histograms, metrics and
// frequency renormalization), coder contains the symbol tables and the
// encoder/decoder state machines, bitstream contains the bit level I/O.
package rans

// InputBitStream is a bitstream reader
type InputBitStream interface {
	// ReadBit returns the next bit in the bitstream. Panics if closed or EOS is reached.
	ReadBit() int

	// ReadBits reads 'length' (in [1..64]) bits from the bitstream.
	// Returns the bits read as an uint64.
	// Panics if closed or EOS is reached.
	ReadBits(length uint) uint64

	// ReadArray reads 'length' bits from the bitstream and put them in the byte slice.
	// Returns the number of bits read.
	// Panics if closed or EOS is reached.
	ReadArray(bits []byte, length uint) uint

	// Close makes the bitstream unavailable for further reads.
	Close() error

	// Read returns the number of bits read
	Read() uint64
}

// OutputBitStream is a bitstream writer
type OutputBitStream interface {
	// WriteBit writes the least significant bit of the input integer.
	// Panics if closed or an IO error is received.
	WriteBit(bit int)

	// WriteBits writes the least significant bits of 'bits' to the bitstream.
	// Length is the number of bits to write (in [1..64]).
	// Returns the number of bits written.
	// Panics if closed or an IO error is received.
	WriteBits(bits uint64, length uint) uint

	// WriteArray writes bits out of the byte slice. Length is the number of bits.
	// Returns the number of bits written.
	// Panics if closed or an IO error is received.
	WriteArray(bits []byte, length uint) uint

	// Close makes the bitstream unavailable for further writes.
	Close() error

	// Written returns the number of bits written
	Written() uint64
}
