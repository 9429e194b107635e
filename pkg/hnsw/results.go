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

// QueryResults holds the outcome of a batch of k-NN queries as two
// row-major m x k views: ids and their distances, both in ascending
// distance order per row (spec.md §4.9). A row with fewer than k matches
// (graph smaller than k) pads with noMatch / +Inf.
type QueryResults struct {
	k     int
	ids   ArrayView[uint32]
	dists ArrayView[float32]
}

// noMatch fills unused slots in a short result row.
const noMatch = ^uint32(0)

// newQueryResults allocates storage for m queries x k neighbors each.
func newQueryResults(m, k int) *QueryResults {
	return &QueryResults{
		k:     k,
		ids:   NewArrayView(make([]uint32, m*k), k, m),
		dists: NewArrayView(make([]float32, m*k), k, m),
	}
}

// setRow drains w (closest-k-bounded) into row in ascending-distance
// order, padding any unfilled tail slots.
func (r *QueryResults) setRow(row int, w *FarHeap) {
	near := NewNearHeapFromFar(w)
	n := near.Len()

	i := 0
	for ; i < n && i < r.k; i++ {
		node := near.ExtractTop()
		r.ids.Set(row, i, node.ID)
		r.dists.Set(row, i, node.Dist)
	}
	for ; i < r.k; i++ {
		r.ids.Set(row, i, noMatch)
		r.dists.Set(row, i, float32(math.Inf(1)))
	}
}

// K returns the per-query neighbor count.
func (r *QueryResults) K() int { return r.k }

// IDs returns the m x k view of result ids.
func (r *QueryResults) IDs() ArrayView[uint32] { return r.ids }

// Distances returns the m x k view of result distances, aligned with IDs.
func (r *QueryResults) Distances() ArrayView[float32] { return r.dists }
