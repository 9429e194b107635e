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

import "fmt"

// SequentialIndex is a single-writer HNSW index (spec.md §5): every Push
// runs to completion before the next begins, so its Connections store can
// borrow live slices instead of copying them, and builds with the same
// seed are bitwise-reproducible.
type SequentialIndex struct {
	cfg   IndexConfig
	space *Space
	conn  *Connections
	ep    entryPointState
	lg    *levelGenerator
	count int
}

// NewSequentialIndex builds an empty index over vectors of dimension dim
// scored by kind, ready to accept up to cfg.MaxElemCount pushes.
func NewSequentialIndex(dim int, kind SpaceKind, cfg IndexConfig, tier SIMDTier, seed uint32) (*SequentialIndex, error) {
	space, err := newSpace(dim, kind, cfg.MaxElemCount, tier)
	if err != nil {
		return nil, err
	}

	return &SequentialIndex{
		cfg:   cfg,
		space: space,
		conn:  newConnections(cfg.MaxElemCount, cfg.MMax, cfg.MMax0),
		lg:    newLevelGenerator(cfg.getML(), seed),
	}, nil
}

// Len returns the number of elements pushed so far.
func (idx *SequentialIndex) Len() int { return idx.count }

// Push inserts vec (length must equal the index's dimension) as the next
// element id (= current Len) and runs the full insertion pipeline.
func (idx *SequentialIndex) Push(vec []float32) (uint32, error) {
	if len(vec) != idx.space.dim {
		return 0, fmt.Errorf("hnsw: %w: expected %d, got %d", ErrDimensionMismatch, idx.space.dim, len(vec))
	}
	if idx.count >= idx.cfg.MaxElemCount {
		return 0, fmt.Errorf("hnsw: %w: capacity %d", ErrCapacityExceeded, idx.cfg.MaxElemCount)
	}

	id := uint32(idx.count)
	level := idx.lg.nextLevel()
	insertWithLevel(idx.space, idx.conn, idx.cfg, &idx.ep, idx.cfg.MaxElemCount, id, level, vec)
	idx.count++

	return id, nil
}

// PushBatch pushes every row of vectors (an ElemCount() x Dim() view) in
// order, returning their assigned ids.
func (idx *SequentialIndex) PushBatch(vectors ArrayView[float32]) ([]uint32, error) {
	ids := make([]uint32, vectors.ElemCount())
	for i := 0; i < vectors.ElemCount(); i++ {
		id, err := idx.Push(vectors.Row(i))
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// Query runs a single k-NN query with the given ef (search-time beam
// width; effective ef is max(efSearch, k)). In Angular space vec is
// normalized into a scratch buffer before scoring, since stored vectors
// were normalized on push.
func (idx *SequentialIndex) Query(vec []float32, efSearch, k int) (*FarHeap, error) {
	if len(vec) != idx.space.dim {
		return nil, fmt.Errorf("hnsw: %w: expected %d, got %d", ErrDimensionMismatch, idx.space.dim, len(vec))
	}
	if k < 1 {
		return nil, fmt.Errorf("hnsw: %w: k must be >= 1, got %d", ErrInvalidK, k)
	}
	scratch := make([]float32, idx.space.dim)
	q := idx.space.normalizeQuery(vec, scratch)
	return queryOne(idx.space, idx.conn, idx.cfg.MaxElemCount, &idx.ep, efSearch, k, q), nil
}

// QueryBatch runs queries.ElemCount() independent k-NN queries and packs
// them into a QueryResults. A single scratch buffer is reused across
// rows to normalize each query in Angular space, matching the original's
// per-call normalization buffer.
func (idx *SequentialIndex) QueryBatch(queries ArrayView[float32], efSearch, k int) (*QueryResults, error) {
	if queries.Dim() != idx.space.dim {
		return nil, fmt.Errorf("hnsw: %w: expected %d, got %d", ErrDimensionMismatch, idx.space.dim, queries.Dim())
	}
	if k < 1 {
		return nil, fmt.Errorf("hnsw: %w: k must be >= 1, got %d", ErrInvalidK, k)
	}

	res := newQueryResults(queries.ElemCount(), k)
	scratch := make([]float32, idx.space.dim)
	for i := 0; i < queries.ElemCount(); i++ {
		q := idx.space.normalizeQuery(queries.Row(i), scratch)
		w := queryOne(idx.space, idx.conn, idx.cfg.MaxElemCount, &idx.ep, efSearch, k, q)
		res.setRow(i, w)
	}
	return res, nil
}
