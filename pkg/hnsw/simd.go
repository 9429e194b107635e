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

// Package hnsw implements a Hierarchical Navigable Small World graph for
// approximate nearest-neighbor search over dense float32 vectors.
//
// Two index variants share the same search and insertion algorithms:
// SequentialIndex (single-threaded, deterministic) and ParallelIndex
// (worker-pool backed, fine-grained locking). Both support Euclidean and
// angular (cosine-via-inner-product) distance, with distance kernels
// dispatched by requested SIMD tier and runtime CPU capability.
package hnsw

import (
	"fmt"
	"strings"

	"golang.org/x/sys/cpu"
)

// SIMDTier names a requested distance-kernel width. BEST resolves to the
// widest tier the running CPU supports.
type SIMDTier int

const (
	SIMDNone SIMDTier = iota
	SIMDSSE
	SIMDAVX
	SIMDAVX512
	SIMDBest
)

// ParseSIMDTier parses a case-insensitive tier name ("none", "sse", "avx",
// "avx512", "best").
func ParseSIMDTier(s string) (SIMDTier, error) {
	switch strings.ToLower(s) {
	case "none":
		return SIMDNone, nil
	case "sse":
		return SIMDSSE, nil
	case "avx":
		return SIMDAVX, nil
	case "avx512":
		return SIMDAVX512, nil
	case "best":
		return SIMDBest, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSIMDTier, s)
	}
}

func (t SIMDTier) String() string {
	switch t {
	case SIMDNone:
		return "none"
	case SIMDSSE:
		return "sse"
	case SIMDAVX:
		return "avx"
	case SIMDAVX512:
		return "avx512"
	case SIMDBest:
		return "best(" + bestSIMDTier().String() + ")"
	default:
		return "unknown"
	}
}

// laneWidth is the number of float32 values a tier's kernel processes per
// chunk. Go has no portable SIMD intrinsics outside assembly, so each
// tier runs the same scalar accumulation over width-sized chunks rather
// than true vector instructions — see widenedAccumulate and DESIGN.md for
// why this is the idiomatic Go rendition of "lane width" used by the
// dispatch/residual logic of spec.md §4.1.
func (t SIMDTier) laneWidth() int {
	switch t {
	case SIMDSSE:
		return 4
	case SIMDAVX:
		return 8
	case SIMDAVX512:
		return 16
	default:
		return 1
	}
}

// bestSIMDTier probes runtime CPU capability via golang.org/x/sys/cpu and
// returns the widest tier supported.
func bestSIMDTier() SIMDTier {
	switch {
	case cpu.X86.HasAVX512F:
		return SIMDAVX512
	case cpu.X86.HasAVX2:
		return SIMDAVX
	case cpu.X86.HasSSE41:
		return SIMDSSE
	default:
		return SIMDNone
	}
}

// cpuSupports reports whether the running CPU provides the given tier.
func cpuSupports(t SIMDTier) bool {
	switch t {
	case SIMDNone:
		return true
	case SIMDSSE:
		return cpu.X86.HasSSE41
	case SIMDAVX:
		return cpu.X86.HasAVX2
	case SIMDAVX512:
		return cpu.X86.HasAVX512F
	default:
		return false
	}
}

// distKernel computes a non-negative, order-preserving distance between
// two equal-length float32 slices. Kernels need not be true metrics; they
// only need to be monotone with the relevant ordering (squared Euclidean,
// or 1 - dot product).
type distKernel func(a, b []float32) float32

// partialSum accumulates the additive term of a distance formula over a
// sub-range of a vector pair (squared differences, or raw dot products).
// Unlike the final distance, partial sums are safely addable across
// chunks, which is what makes a "residual kernel" (wide-lane prefix +
// scalar tail) correct.
type partialSum func(a, b []float32) float32

func sqDiffSum(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func dotSum(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// resolveKernel selects the widest kernel for tier: width-1 (SIMDNone)
// runs the plain scalar accumulator, every wider tier runs the residual
// kernel, which processes dim's aligned width-sized prefix in chunks and
// scores any remainder with a scalar tail (spec.md §4.1's "largest
// aligned prefix + scalar tail" requirement — exercised for every dim,
// not only the ones that happen to divide width evenly). Requesting an
// unsupported tier is a configuration error.
func resolveKernel(dim int, tier SIMDTier, euclidean bool) (distKernel, error) {
	resolved := tier
	if resolved == SIMDBest {
		resolved = bestSIMDTier()
	} else if !cpuSupports(resolved) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSIMD, resolved)
	}

	sum := dotSum
	if euclidean {
		sum = sqDiffSum
	}

	width := resolved.laneWidth()
	acc := scalarAccumulate(sum)
	if width > 1 {
		acc = widenedAccumulate(sum, width)
	}

	if euclidean {
		return acc, nil
	}
	return func(a, b []float32) float32 { return 1 - acc(a, b) }, nil
}

// scalarAccumulate runs a partial sum over the whole vector in one pass.
func scalarAccumulate(sum partialSum) distKernel {
	return func(a, b []float32) float32 { return sum(a, b) }
}

// widenedAccumulate splits the vector into width-sized chunks and a
// scalar tail for the remainder. The "width" only sets the chunk size —
// Go offers no portable wide-lane instructions without assembly, so the
// arithmetic itself is always the same scalar accumulation loop (see
// DESIGN.md). Kept distinct from scalarAccumulate so dispatch selection
// (by tier/capability) is observably exercised and testable.
func widenedAccumulate(sum partialSum, width int) distKernel {
	return func(a, b []float32) float32 {
		n := len(a)
		aligned := n - n%width
		var total float32
		for i := 0; i < aligned; i += width {
			total += sum(a[i:i+width], b[i:i+width])
		}
		if aligned < n {
			total += sum(a[aligned:], b[aligned:])
		}
		return total
	}
}
