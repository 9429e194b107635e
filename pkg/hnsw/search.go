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

// searchUpperLayer performs the greedy, non-beam descent used on layers
// above the base layer (spec.md §4.7): start at ep and repeatedly move to
// any neighbor strictly closer to q, stopping when a full scan of the
// current node's neighbors yields no improvement.
func searchUpperLayer(space *Space, conn connectionBackend, ep Node, lc uint32, q []float32) Node {
	m := ep

	for {
		prev := m.ID
		for _, cand := range conn.readNeighbors(m.ID, lc) {
			d := space.distanceToPtr(cand, q)
			if d < m.Dist {
				m.Dist = d
				m.ID = cand
			}
		}
		if m.ID == prev {
			return m
		}
	}
}

// searchLowerLayer runs the ef-bounded beam search used on the base/lower
// layers (spec.md §4.7). searching=false is the insertion-time call
// (ef=efConstruction); searching=true is the query-time call
// (ef=max(efSearch,k)).
func searchLowerLayer(
	space *Space, conn connectionBackend, elemCount int,
	ef int, ep Node, lc uint32, q []float32, searching bool,
) *FarHeap {
	C := NewNearHeapFrom(ep)
	visited := newVisitedSet(elemCount, ep.ID)
	W := NewFarHeapFrom(ep)

	for C.Len() > 0 {
		c := C.ExtractTop()
		f := W.Top()

		if (searching || W.Len() == ef) && space.distanceToPtr(c.ID, q) > space.distanceToPtr(f.ID, q) {
			break
		}

		for _, eID := range conn.readNeighbors(c.ID, lc) {
			if visited.isMarked(eID) {
				continue
			}
			visited.mark(eID)

			f = W.Top()
			e := Node{Dist: space.distanceToPtr(eID, q), ID: eID}

			if W.Len() < ef || f.Dist > e.Dist {
				C.Push(e)
				W.Push(e)
				if W.Len() > ef {
					W.Pop()
				}
			}
		}
	}

	return W
}

// getNearHeap scores a snapshot of neighbor ids against q and returns
// them as a NearHeap.
func getNearHeap(space *Space, neighbors []uint32, q []float32) *NearHeap {
	h := NewNearHeap()
	for _, id := range neighbors {
		h.Push(Node{Dist: space.distanceToPtr(id, q), ID: id})
	}
	return h
}

// selectNeighbors is the diversity-aware neighbor-selection heuristic
// (spec.md §4.7, the "extend"-less HNSW heuristic): with at most M
// candidates, keep them all; above M, accept a candidate only if no already-accepted
// neighbor is closer to it than the query is.
func selectNeighbors(space *Space, m int, q []float32, w *NearHeap) []Node {
	r := make([]Node, 0, m)

	if w.Len() <= m {
		for w.Len() > 0 {
			r = append(r, w.ExtractTop())
		}
		return r
	}

	for w.Len() > 0 && len(r) < m {
		e := w.ExtractTop()
		close := true
		for _, kept := range r {
			if space.distance(e.ID, kept.ID) < e.Dist {
				close = false
				break
			}
		}
		if close {
			r = append(r, e)
		}
	}

	return r
}
