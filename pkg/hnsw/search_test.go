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
	"math/rand"
	"testing"
)

// buildTestGraph returns a tiny fully-connected single-layer graph: n
// points on a line, each connected to every other.
func buildTestGraph(t *testing.T, n int) (*Space, *Connections) {
	t.Helper()
	space, err := newSpace(1, Euclidean, n, SIMDNone)
	if err != nil {
		t.Fatalf("newSpace: %v", err)
	}
	for i := 0; i < n; i++ {
		space.push(uint32(i), []float32{float32(i)})
	}

	conn := newConnections(n, n, n)
	for i := 0; i < n; i++ {
		conn.init(uint32(i), 0)
		nbrs := make([]uint32, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				nbrs = append(nbrs, uint32(j))
			}
		}
		conn.writeNeighbors(uint32(i), 0, nbrs)
	}
	return space, conn
}

func TestSearchLowerLayerAlwaysReturnsNonNil(t *testing.T) {
	space, conn := buildTestGraph(t, 10)
	ep := Node{ID: 0, Dist: space.distanceToPtr(0, []float32{5})}

	// Both the insertion-time (searching=false) and query-time
	// (searching=true) call paths must return a usable result set; a
	// missing return here would be a bug, not an allowed shortcut.
	w1 := searchLowerLayer(space, conn, 10, 3, ep, 0, []float32{5}, false)
	if w1 == nil {
		t.Fatal("searchLowerLayer returned nil for searching=false")
	}
	w2 := searchLowerLayer(space, conn, 10, 3, ep, 0, []float32{5}, true)
	if w2 == nil {
		t.Fatal("searchLowerLayer returned nil for searching=true")
	}
}

func TestSearchLowerLayerFindsNearestPoint(t *testing.T) {
	space, conn := buildTestGraph(t, 20)
	ep := Node{ID: 0, Dist: space.distanceToPtr(0, []float32{14})}

	// FarHeap.Top is the farthest of the bounded result set, not the
	// nearest; drain into a NearHeap to find the closest match.
	w := searchLowerLayer(space, conn, 20, 5, ep, 0, []float32{14}, true)
	near := NewNearHeapFromFar(w)
	if got := near.Top().ID; got != 14 {
		t.Fatalf("expected point 14 nearest, got %d", got)
	}
}

func TestSearchUpperLayerConvergesToLocalMinimum(t *testing.T) {
	space, conn := buildTestGraph(t, 10)
	start := Node{ID: 9, Dist: space.distanceToPtr(9, []float32{0})}

	got := searchUpperLayer(space, conn, start, 0, []float32{0})
	if got.ID != 0 {
		t.Fatalf("got id %d, want 0 (closest point in a fully-connected layer)", got.ID)
	}
}

func TestSelectNeighborsReturnsAllWhenUnderCap(t *testing.T) {
	space, _ := buildTestGraph(t, 5)
	near := NewNearHeap()
	for i := 0; i < 3; i++ {
		near.Push(Node{ID: uint32(i), Dist: space.distanceToPtr(uint32(i), []float32{0})})
	}

	got := selectNeighbors(space, 10, []float32{0}, near)
	if len(got) != 3 {
		t.Fatalf("got %d neighbors, want 3", len(got))
	}
}

func TestSelectNeighborsCapsAtM(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	const dim, n = 4, 30
	space, err := newSpace(dim, Euclidean, n, SIMDNone)
	if err != nil {
		t.Fatalf("newSpace: %v", err)
	}
	for i := 0; i < n; i++ {
		space.push(uint32(i), randomVector(dim, rng))
	}

	near := NewNearHeap()
	q := randomVector(dim, rng)
	for i := 0; i < n; i++ {
		near.Push(Node{ID: uint32(i), Dist: space.distanceToPtr(uint32(i), q)})
	}

	const m = 5
	got := selectNeighbors(space, m, q, near)
	if len(got) > m {
		t.Fatalf("got %d neighbors, want <= %d", len(got), m)
	}
}

func TestGetNearHeapOrdersByDistanceToQuery(t *testing.T) {
	space, _ := buildTestGraph(t, 10)
	ids := []uint32{9, 0, 5, 3}

	h := getNearHeap(space, ids, []float32{4})
	if h.Len() != len(ids) {
		t.Fatalf("got %d entries, want %d", h.Len(), len(ids))
	}
	if got := h.ExtractTop().ID; got != 5 && got != 3 {
		t.Fatalf("nearest to 4 among %v should be 5 or 3 (tied distance 1), got %d", ids, got)
	}
}
