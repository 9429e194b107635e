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

import "math"

// epsilon guards angular-space normalization against division by zero for
// near-zero vectors.
const epsilon = 1e-30

// SpaceKind selects the distance metric a Space (and therefore an index)
// uses.
type SpaceKind int

const (
	// Euclidean scores by squared L2 distance.
	Euclidean SpaceKind = iota
	// Angular scores by 1 - cosine similarity, computed as 1 - dot(â, b̂)
	// after unit-normalizing both operands.
	Angular
)

// ArrayView is a non-owning, row-major view over a flat buffer shaped
// (elemCount x dim). It underlies both the Space vector store and
// QueryResults.
type ArrayView[T any] struct {
	data     []T
	dim      int
	elemCount int
}

// NewArrayView wraps data as an (elemCount x dim) row-major view. data
// must have length dim*elemCount.
func NewArrayView[T any](data []T, dim, elemCount int) ArrayView[T] {
	return ArrayView[T]{data: data, dim: dim, elemCount: elemCount}
}

// Dim returns the row width.
func (v ArrayView[T]) Dim() int { return v.dim }

// ElemCount returns the number of rows.
func (v ArrayView[T]) ElemCount() int { return v.elemCount }

// Row returns the elemIdx-th row as a slice sharing the view's backing
// array.
func (v ArrayView[T]) Row(elemIdx int) []T {
	start := elemIdx * v.dim
	return v.data[start : start+v.dim]
}

// Get returns the value at (elemIdx, valIdx).
func (v ArrayView[T]) Get(elemIdx, valIdx int) T {
	return v.data[elemIdx*v.dim+valIdx]
}

// Set writes the value at (elemIdx, valIdx).
func (v ArrayView[T]) Set(elemIdx, valIdx int, val T) {
	v.data[elemIdx*v.dim+valIdx] = val
}

// Space is the vector store (spec.md §4.2): contiguous row-major storage
// of fixed-dimension float32 vectors indexed by element id. In angular
// space it stores unit-normalized copies and discards the original.
type Space struct {
	kernel    distKernel
	data      []float32
	view      ArrayView[float32]
	dim       int
	normalize bool
}

// NewSpace allocates a standalone vector store for maxElemCount vectors
// of the given dimension, using the same distance-kernel dispatch as an
// index's internal Space. Exported for ground-truth scanners (e.g.
// internal/bench's brute-force index) that need to score vectors with
// the identical kernel an index under test uses, without going through
// SequentialIndex/ParallelIndex's graph machinery.
func NewSpace(dim int, kind SpaceKind, maxElemCount int, tier SIMDTier) (*Space, error) {
	return newSpace(dim, kind, maxElemCount, tier)
}

// newSpace allocates storage for maxElemCount vectors of the given
// dimension and resolves the distance kernel for (dim, tier, kind).
func newSpace(dim int, kind SpaceKind, maxElemCount int, tier SIMDTier) (*Space, error) {
	kernel, err := resolveKernel(dim, tier, kind == Euclidean)
	if err != nil {
		return nil, err
	}

	data := make([]float32, dim*maxElemCount)
	return &Space{
		kernel:    kernel,
		data:      data,
		view:      NewArrayView(data, dim, maxElemCount),
		dim:       dim,
		normalize: kind == Angular,
	}, nil
}

func (s *Space) norm(v []float32) float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	return float32(math.Sqrt(float64(sum)))
}

// normalizeInto writes the unit-normalized copy of src into dst.
func (s *Space) normalizeInto(src, dst []float32) {
	invNorm := 1 / (s.norm(src) + epsilon)
	for i, x := range src {
		dst[i] = x * invNorm
	}
}

// getData returns the stored vector for id (read-only by convention).
func (s *Space) getData(id uint32) []float32 {
	return s.view.Row(int(id))
}

// push stores src at id: copied verbatim for Euclidean space,
// unit-normalized for Angular space. The original is discarded after the
// copy (spec.md §3).
func (s *Space) push(id uint32, src []float32) {
	dst := s.view.Row(int(id))
	if s.normalize {
		s.normalizeInto(src, dst)
	} else {
		copy(dst, src)
	}
}

// distance scores two stored vectors.
func (s *Space) distance(aID, bID uint32) float32 {
	return s.kernel(s.getData(aID), s.getData(bID))
}

// distanceToPtr scores a stored vector against an arbitrary query buffer.
func (s *Space) distanceToPtr(aID uint32, q []float32) float32 {
	return s.kernel(s.getData(aID), q)
}

// distancePtrPtr scores two arbitrary buffers with the space's kernel.
func (s *Space) distancePtrPtr(a, b []float32) float32 {
	return s.kernel(a, b)
}

// normalizeQuery returns the buffer a query should be scored with: q
// itself in Euclidean space, or its unit-normalized copy written into
// scratch in Angular space (spec.md §4.9 — queryBatch normalizes each
// query before scoring, matching the normalization push already applied
// to every stored vector). scratch must have length s.dim; it is only
// written to, and only returned, when the space normalizes.
func (s *Space) normalizeQuery(q, scratch []float32) []float32 {
	if !s.normalize {
		return q
	}
	s.normalizeInto(q, scratch)
	return scratch
}

// Push is the exported form of push, for standalone Space users outside
// pkg/hnsw (e.g. a brute-force ground-truth scanner).
func (s *Space) Push(id uint32, src []float32) { s.push(id, src) }

// Get is the exported form of getData.
func (s *Space) Get(id uint32) []float32 { return s.getData(id) }

// DistanceToPtr is the exported form of distanceToPtr.
func (s *Space) DistanceToPtr(aID uint32, q []float32) float32 { return s.distanceToPtr(aID, q) }

// Distance is the exported form of distance.
func (s *Space) Distance(aID, bID uint32) float32 { return s.distance(aID, bID) }
