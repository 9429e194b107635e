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

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ParallelIndex is a multi-writer HNSW index (spec.md §4.10): a worker
// pool of goroutines inserts disjoint elements concurrently against a
// ThreadSafeConnections store. An insertion also rewrites the buckets of
// the neighbors it links to, so each element's buckets are guarded by
// that element's own mutex in ThreadSafeConnections; the one shared
// mutable scalar, the entry point, has its own mutex in entryPointState.
//
// Builds are not bitwise-reproducible across worker-count or scheduling
// changes — insertion order among concurrent workers is not
// deterministic — but recall converges to the same distribution as a
// sequential build of the same data.
type ParallelIndex struct {
	cfg     IndexConfig
	space   *Space
	conn    *ThreadSafeConnections
	ep      entryPointState
	workers int

	nextID   atomic.Uint32
	pushSeed uint32
	pushMu   sync.Mutex
	pushLG   *levelGenerator
}

// NewParallelIndex builds an empty index over vectors of dimension dim
// scored by kind, served by workers goroutines. baseSeed seeds both the
// ad-hoc Push path and every Build worker's private level-generator
// stream (worker i uses baseSeed+i+1; the single-insert Push path uses
// baseSeed+0).
func NewParallelIndex(dim int, kind SpaceKind, cfg IndexConfig, tier SIMDTier, workers int, baseSeed uint32) (*ParallelIndex, error) {
	if workers < 1 {
		return nil, fmt.Errorf("hnsw: %w: workers must be >= 1, got %d", ErrInvalidConfig, workers)
	}

	space, err := newSpace(dim, kind, cfg.MaxElemCount, tier)
	if err != nil {
		return nil, err
	}

	return &ParallelIndex{
		cfg:      cfg,
		space:    space,
		conn:     newThreadSafeConnections(cfg.MaxElemCount, cfg.MMax, cfg.MMax0),
		workers:  workers,
		pushSeed: baseSeed,
		pushLG:   newLevelGenerator(cfg.getML(), baseSeed),
	}, nil
}

// Len returns the number of elements inserted so far.
func (idx *ParallelIndex) Len() int { return int(idx.nextID.Load()) }

// Push inserts vec as the next element, assigning its id from a shared
// atomic cursor so concurrent callers never collide. Safe to call from
// multiple goroutines; level draws come from one mutex-guarded generator
// since ad-hoc callers have no stable worker index to seed a private
// stream from. The first-ever call to an empty index and any call that
// draws a promoting level serialize against each other through
// insertWithLevel's entry-point mutex (spec.md §4.10), so two concurrent
// bootstrap calls can never both believe the entry point is unset.
func (idx *ParallelIndex) Push(vec []float32) (uint32, error) {
	if len(vec) != idx.space.dim {
		return 0, fmt.Errorf("hnsw: %w: expected %d, got %d", ErrDimensionMismatch, idx.space.dim, len(vec))
	}

	id := idx.nextID.Add(1) - 1
	if id >= uint32(idx.cfg.MaxElemCount) {
		idx.nextID.Add(^uint32(0))
		return 0, fmt.Errorf("hnsw: %w: capacity %d", ErrCapacityExceeded, idx.cfg.MaxElemCount)
	}

	idx.pushMu.Lock()
	level := idx.pushLG.nextLevel()
	idx.pushMu.Unlock()

	insertWithLevel(idx.space, idx.conn, idx.cfg, &idx.ep, idx.cfg.MaxElemCount, id, level, vec)
	return id, nil
}

// Build fans vectors.ElemCount() rows out across idx.workers goroutines
// and inserts them concurrently (spec.md §4.10). Element 0 is inserted
// synchronously first so every worker starts with a valid entry point;
// the remaining elements are claimed from a shared atomic cursor, so no
// two workers ever insert the same id. Each worker owns a private
// levelGenerator seeded baseSeed+workerIndex+1, giving reproducible
// per-worker streams even though the interleaving across workers is not
// deterministic.
func (idx *ParallelIndex) Build(vectors ArrayView[float32]) error {
	n := vectors.ElemCount()
	if n == 0 {
		return nil
	}
	if vectors.Dim() != idx.space.dim {
		return fmt.Errorf("hnsw: %w: expected %d, got %d", ErrDimensionMismatch, idx.space.dim, vectors.Dim())
	}
	if uint32(n) > uint32(idx.cfg.MaxElemCount) {
		return fmt.Errorf("hnsw: %w: capacity %d", ErrCapacityExceeded, idx.cfg.MaxElemCount)
	}

	bootLG := newLevelGenerator(idx.cfg.getML(), idx.pushSeed)
	insertWithLevel(idx.space, idx.conn, idx.cfg, &idx.ep, idx.cfg.MaxElemCount, 0, bootLG.nextLevel(), vectors.Row(0))

	var cursor atomic.Uint32
	cursor.Store(1)

	var wg sync.WaitGroup
	for w := 0; w < idx.workers; w++ {
		wg.Add(1)
		go func(workerIdx int) {
			defer wg.Done()
			lg := newLevelGenerator(idx.cfg.getML(), idx.pushSeed+uint32(workerIdx)+1)
			for {
				id := cursor.Add(1) - 1
				if id >= uint32(n) {
					return
				}
				insertWithLevel(idx.space, idx.conn, idx.cfg, &idx.ep, idx.cfg.MaxElemCount, id, lg.nextLevel(), vectors.Row(int(id)))
			}
		}(w)
	}
	wg.Wait()

	idx.nextID.Store(uint32(n))
	return nil
}

// Query runs a single k-NN query. Safe to call concurrently with other
// queries and with Push/Build, since ThreadSafeConnections copies every
// read under lock. In Angular space vec is normalized into a scratch
// buffer before scoring, since stored vectors were normalized on push.
func (idx *ParallelIndex) Query(vec []float32, efSearch, k int) (*FarHeap, error) {
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

// QueryBatch runs queries.ElemCount() independent k-NN queries fanned
// out across idx.workers goroutines and packs them into a QueryResults.
// Each worker owns a private scratch buffer to normalize its queries in
// Angular space, since the buffer cannot be shared across goroutines.
func (idx *ParallelIndex) QueryBatch(queries ArrayView[float32], efSearch, k int) (*QueryResults, error) {
	if queries.Dim() != idx.space.dim {
		return nil, fmt.Errorf("hnsw: %w: expected %d, got %d", ErrDimensionMismatch, idx.space.dim, queries.Dim())
	}
	if k < 1 {
		return nil, fmt.Errorf("hnsw: %w: k must be >= 1, got %d", ErrInvalidK, k)
	}

	res := newQueryResults(queries.ElemCount(), k)

	var cursor atomic.Uint32
	var wg sync.WaitGroup
	n := queries.ElemCount()

	for w := 0; w < idx.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scratch := make([]float32, idx.space.dim)
			for {
				row := cursor.Add(1) - 1
				if row >= uint32(n) {
					return
				}
				q := idx.space.normalizeQuery(queries.Row(int(row)), scratch)
				found := queryOne(idx.space, idx.conn, idx.cfg.MaxElemCount, &idx.ep, efSearch, k, q)
				res.setRow(int(row), found)
			}
		}()
	}
	wg.Wait()

	return res, nil
}
