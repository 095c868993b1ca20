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
	"fmt"

	"github.com/rans-codec/rans-go/histogram"
)

// CoderTag selects the state machine geometry
type CoderTag int

const (
	// Compact32 runs 32-bit states with 16-bit renormalization words and a
	// reciprocal-multiply state update. Default geometry.
	Compact32 CoderTag = iota

	// Wide64 runs 64-bit states with 32-bit renormalization words and a
	// plain-division state update, allowing larger lower bounds.
	Wide64
)

// TableKind selects the symbol table backing
type TableKind int

const (
	// TableDense backs the table with direct-indexed arrays
	TableDense TableKind = iota

	// TableSparse backs the table with sorted slices and binary search
	TableSparse

	// TableHash backs the table with a map on the encode path
	TableHash

	// TableSet backs the table with a linear scan over a small slice
	TableSet
)

const (
	// MaxStreams is the largest supported number of interleaved streams
	MaxStreams = 256
)

// Config carries the construction parameters of a coding session. The zero
// value selects Compact32 geometry, per-tag default stream count and lower
// bound, and the dense table backing.
type Config struct {
	Tag            CoderTag
	NumStreams     int       // 0 selects the per-tag default
	LowerBoundBits uint      // 0 selects the per-tag default
	Table          TableKind // symbol table backing
}

// coderParams is a validated, fully resolved configuration
type coderParams struct {
	tag            CoderTag
	stateBits      uint
	wordBits       uint
	lowerBoundBits uint
	numStreams     int
}

// resolveParams applies the per-tag defaults and validates the geometry
// against the model precision.
func resolveParams(cfg Config, precision uint) (coderParams, error) {
	res := coderParams{tag: cfg.Tag}

	switch cfg.Tag {
	case Compact32:
		res.stateBits = 32
		res.wordBits = 16
		res.lowerBoundBits = 16
		res.numStreams = 4

	case Wide64:
		res.stateBits = 64
		res.wordBits = 32
		res.lowerBoundBits = 31
		res.numStreams = 2

	default:
		return res, fmt.Errorf("Invalid coder tag: %d", cfg.Tag)
	}

	if cfg.NumStreams != 0 {
		if cfg.NumStreams < 1 || cfg.NumStreams > MaxStreams {
			return res, fmt.Errorf("Invalid number of streams: %d (must be in [1..%d])", cfg.NumStreams, MaxStreams)
		}

		res.numStreams = cfg.NumStreams
	}

	if cfg.LowerBoundBits != 0 {
		res.lowerBoundBits = cfg.LowerBoundBits
	}

	if res.lowerBoundBits+res.wordBits > res.stateBits {
		return res, fmt.Errorf("Invalid lower bound: %d bits (at most %d for this geometry)",
			res.lowerBoundBits, res.stateBits-res.wordBits)
	}

	if precision > res.lowerBoundBits {
		return res, fmt.Errorf("Invalid precision: %d (at most the lower bound %d bits)",
			precision, res.lowerBoundBits)
	}

	if precision > res.wordBits {
		return res, fmt.Errorf("Invalid precision: %d (at most the word size %d bits)",
			precision, res.wordBits)
	}

	return res, nil
}

// NewSymbolTable builds a symbol table of the requested kind from the
// renormed histogram.
func NewSymbolTable(rh *histogram.RenormedHistogram, kind TableKind) (SymbolTable, error) {
	switch kind {
	case TableDense:
		return NewDenseSymbolTable(rh)
	case TableSparse:
		return NewSparseSymbolTable(rh)
	case TableHash:
		return NewHashSymbolTable(rh)
	case TableSet:
		return NewSetSymbolTable(rh)
	default:
		return nil, fmt.Errorf("Invalid symbol table kind: %d", kind)
	}
}

// EncoderFromRenormed builds the symbol table selected by the configuration
// and an encoder on top of it.
func EncoderFromRenormed(rh *histogram.RenormedHistogram, cfg Config) (*Encoder, error) {
	table, err := NewSymbolTable(rh, cfg.Table)

	if err != nil {
		return nil, err
	}

	return NewEncoder(table, cfg)
}

// DecoderFromRenormed builds the symbol table selected by the configuration
// and a decoder on top of it.
func DecoderFromRenormed(rh *histogram.RenormedHistogram, cfg Config) (*Decoder, error) {
	table, err := NewSymbolTable(rh, cfg.Table)

	if err != nil {
		return nil, err
	}

	return NewDecoder(table, cfg)
}

// autoRenorm renorms the histogram with the Auto policy, capping the
// precision to what the coder geometry accepts.
func autoRenorm(h histogram.Histogram, cfg Config) (*histogram.RenormedHistogram, error) {
	params, err := resolveParams(cfg, 1)

	if err != nil {
		return nil, err
	}

	maxP := uint(histogram.MaxAutoPrecision)

	if params.lowerBoundBits < maxP {
		maxP = params.lowerBoundBits
	}

	if params.wordBits < maxP {
		maxP = params.wordBits
	}

	return histogram.Renorm(h, histogram.RenormConfig{Policy: histogram.PolicyAuto, MaxPrecision: maxP})
}

// EncoderFromHistogram renorms the histogram under the Auto policy and
// builds an encoder. The renormed histogram is returned as well: the decoder
// side needs it to rebuild an identical model.
// The histogram must not be reused afterwards.
func EncoderFromHistogram(h histogram.Histogram, cfg Config) (*Encoder, *histogram.RenormedHistogram, error) {
	rh, err := autoRenorm(h, cfg)

	if err != nil {
		return nil, nil, err
	}

	enc, err := EncoderFromRenormed(rh, cfg)

	if err != nil {
		return nil, nil, err
	}

	return enc, rh, nil
}

// DecoderFromHistogram renorms the histogram under the Auto policy and
// builds a decoder. The histogram must not be reused afterwards.
func DecoderFromHistogram(h histogram.Histogram, cfg Config) (*Decoder, *histogram.RenormedHistogram, error) {
	rh, err := autoRenorm(h, cfg)

	if err != nil {
		return nil, nil, err
	}

	dec, err := DecoderFromRenormed(rh, cfg)

	if err != nil {
		return nil, nil, err
	}

	return dec, rh, nil
}

// EncoderFromSamples counts the samples, renorms under the Auto policy and
// builds an encoder, all in one step.
func EncoderFromSamples(samples []int32, cfg Config) (*Encoder, *histogram.RenormedHistogram, error) {
	h, err := histogram.DenseFromSamples(samples)

	if err != nil {
		return nil, nil, err
	}

	return EncoderFromHistogram(h, cfg)
}

// DecoderFromSamples counts the samples, renorms under the Auto policy and
// builds a decoder, all in one step.
func DecoderFromSamples(samples []int32, cfg Config) (*Decoder, *histogram.RenormedHistogram, error) {
	h, err := histogram.DenseFromSamples(samples)

	if err != nil {
		return nil, nil, err
	}

	return DecoderFromHistogram(h, cfg)
}
