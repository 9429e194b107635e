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

import "sync"

// entryPointState is the single shared mutable scalar in the whole graph:
// the current entry element and its level (spec.md §4.8). SequentialIndex
// and ParallelIndex both route every read and promotion through this type;
// the mutex is uncontended in the sequential case and load-bearing in the
// parallel one.
type entryPointState struct {
	mu    sync.Mutex
	id    uint32
	level uint32
	set   bool
}

// snapshot returns the current entry point and whether one has been set
// yet (false only before the very first insert). Used by query, which
// never mutates the entry point and only needs a consistent read.
func (e *entryPointState) snapshot() (id uint32, level uint32, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id, e.level, e.set
}

// acquireForInsert implements spec.md §4.10's entry-point protocol for a
// candidate insertion at level: lock, read the current entry, and either
// keep the lock held (when no entry is set yet, or level could promote
// it) or release it immediately. The caller must run its insert and then
// call commit exactly once with the holding flag returned here. Holding
// the lock across the whole insert — not just this read — is what
// serializes concurrent promoting insertions with each other and makes
// the entry update atomic with respect to the insertion that produced it.
func (e *entryPointState) acquireForInsert(level uint32) (epID uint32, epLevel uint32, ok bool, holding bool) {
	e.mu.Lock()
	epID, epLevel, ok = e.id, e.level, e.set
	holding = !ok || level > epLevel
	if !holding {
		e.mu.Unlock()
	}
	return epID, epLevel, ok, holding
}

// commit installs (id, level) as the entry point and unlocks, if holding
// is true (the mutex is still held from a matching acquireForInsert);
// otherwise it is a no-op, since the mutex was already released.
func (e *entryPointState) commit(id uint32, level uint32, holding bool) {
	if !holding {
		return
	}
	e.id, e.level, e.set = id, level, true
	e.mu.Unlock()
}

// insertWithLevel runs the full insertion pipeline for element id at the
// given vec and level (spec.md §4.8): descend greedily through upper
// layers from entryLevel down to level+1, then beam-search and rewire
// every layer from min(level, entryLevel) down to 0, finally promoting
// the entry point if level exceeds it. Shared verbatim between
// SequentialIndex and ParallelIndex; they differ only in the
// connectionBackend and levelGenerator they supply.
//
// The entry-point mutex is acquired once up front via acquireForInsert
// and, for a candidate that could promote the entry, held across the
// entire search-and-rewire pipeline below (spec.md §4.10 steps 2-4):
// this serializes concurrent promoting insertions with each other and
// makes the final commit atomic with respect to the insertion that
// produced it. A non-promoting candidate releases the mutex immediately
// and runs fully concurrently with everything else.
func insertWithLevel(
	space *Space, conn connectionBackend, cfg IndexConfig,
	ep *entryPointState, elemCount int,
	id uint32, level uint32, vec []float32,
) {
	space.push(id, vec)
	// Score against the stored copy, which is unit-normalized in Angular
	// space, so every distance below uses normalized operands.
	vec = space.getData(id)
	conn.init(id, level)

	epID, epLevel, ok, holding := ep.acquireForInsert(level)
	if !ok {
		ep.commit(id, level, holding)
		return
	}

	cur := Node{ID: epID, Dist: space.distanceToPtr(epID, vec)}

	for lc := epLevel; lc > level; lc-- {
		cur = searchUpperLayer(space, conn, cur, lc, vec)
	}

	top := level
	if epLevel < top {
		top = epLevel
	}

	for lc := int(top); lc >= 0; lc-- {
		m, m0 := cfg.MMax, cfg.MMax0
		layerCap := m
		if lc == 0 {
			layerCap = m0
		}

		w := searchLowerLayer(space, conn, elemCount, cfg.EfConstruction, cur, uint32(lc), vec, false)
		near := NewNearHeapFromFar(w)
		if near.Len() > 0 {
			cur = near.Top()
		}

		neighbors := selectNeighbors(space, layerCap, vec, near)
		ids := make([]uint32, len(neighbors))
		for i, n := range neighbors {
			ids[i] = n.ID
		}
		conn.writeNeighbors(id, uint32(lc), ids)

		for _, n := range neighbors {
			rewireNeighbor(space, conn, n.ID, id, uint32(lc), layerCap)
		}
	}

	ep.commit(id, level, holding)
}

// rewireNeighbor adds id as a back-connection of neighbor at layer lc,
// pruning neighbor's own connection list down to cap via
// selectNeighbors if it would otherwise overflow (spec.md §4.8).
func rewireNeighbor(space *Space, conn connectionBackend, neighbor, id uint32, lc uint32, cap int) {
	existing := conn.readNeighbors(neighbor, lc)

	if len(existing) < cap {
		merged := make([]uint32, len(existing), len(existing)+1)
		copy(merged, existing)
		merged = append(merged, id)
		conn.writeNeighbors(neighbor, lc, merged)
		return
	}

	q := space.getData(neighbor)
	cand := getNearHeap(space, existing, q)
	cand.Push(Node{Dist: space.distance(neighbor, id), ID: id})

	pruned := selectNeighbors(space, cap, q, cand)
	ids := make([]uint32, len(pruned))
	for i, p := range pruned {
		ids[i] = p.ID
	}
	conn.writeNeighbors(neighbor, lc, ids)
}

// queryOne runs a single k-NN query against the graph (spec.md §4.9):
// greedy descent through the upper layers from the entry point, then an
// ef-bounded beam search at layer 0 with ef = max(efSearch, k), trimmed
// to the k closest results.
func queryOne(
	space *Space, conn connectionBackend, elemCount int,
	ep *entryPointState, efSearch, k int, q []float32,
) *FarHeap {
	epID, epLevel, ok := ep.snapshot()
	if !ok {
		return NewFarHeap()
	}

	cur := Node{ID: epID, Dist: space.distanceToPtr(epID, q)}
	for lc := epLevel; lc > 0; lc-- {
		cur = searchUpperLayer(space, conn, cur, lc, q)
	}

	ef := efSearch
	if k > ef {
		ef = k
	}

	w := searchLowerLayer(space, conn, elemCount, ef, cur, 0, q, true)
	for w.Len() > k {
		w.Pop()
	}
	return w
}
