// Copyright (c) 2024 HNSW Contributors
//
// Permission is hereby granted, free of charge, to any person
// obtaining a copy of this software and associated documentation
// files (the "Software"), to deal in the Software without
// restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following
// conditions:
//
// The above copyright notice and this permission notice shall be
// included in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package hnsw

import "errors"

var (
	// ErrDimensionMismatch is returned when a vector's length does not
	// match the index's configured dimensionality.
	ErrDimensionMismatch = errors.New("hnsw: dimension mismatch")

	// ErrCapacityExceeded is returned when push would grow the index
	// beyond IndexConfig.MaxElemCount.
	ErrCapacityExceeded = errors.New("hnsw: push would exceed maxElemCount")

	// ErrInvalidK is returned when k is zero or negative. A k larger than
	// the number of elements in the index is accepted; the unfilled result
	// slots are padded (see QueryResults).
	ErrInvalidK = errors.New("hnsw: invalid k")

	// ErrInvalidConfig is returned by construct for a structurally
	// invalid IndexConfig (mMax < 2, zero workers, ...).
	ErrInvalidConfig = errors.New("hnsw: invalid index configuration")

	// ErrUnsupportedSIMD is returned when the requested SIMD tier is not
	// supported by the running CPU.
	ErrUnsupportedSIMD = errors.New("hnsw: requested SIMD tier is not supported by this CPU")

	// ErrInvalidSIMDTier is returned when a SIMD tier string does not
	// name a known tier.
	ErrInvalidSIMDTier = errors.New("hnsw: invalid SIMD tier")

	// ErrReproducibility is a fatal invariant-violation error: two
	// sequential builds with identical seed and inputs produced
	// different adjacency. Used by benchmarking/testing harnesses to
	// detect non-determinism; never returned by ordinary index use.
	ErrReproducibility = errors.New("hnsw: reproducibility check failed")
)
