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

import "container/heap"

// Node pairs an element id with a distance. Outside of a search, dist is
// semantics-free; it is populated whenever the node is scored against a
// query or another node.
type Node struct {
	Dist float32
	ID   uint32
}

// nodeSlice backs both heap orders. maxFirst selects FarHeap ordering
// (largest distance on top) vs NearHeap ordering (smallest distance on
// top).
type nodeSlice struct {
	nodes    []Node
	maxFirst bool
}

func (s *nodeSlice) Len() int { return len(s.nodes) }

func (s *nodeSlice) Less(i, j int) bool {
	if s.maxFirst {
		return s.nodes[i].Dist > s.nodes[j].Dist
	}
	return s.nodes[i].Dist < s.nodes[j].Dist
}

func (s *nodeSlice) Swap(i, j int) { s.nodes[i], s.nodes[j] = s.nodes[j], s.nodes[i] }

func (s *nodeSlice) Push(x any) { s.nodes = append(s.nodes, x.(Node)) }

func (s *nodeSlice) Pop() any {
	n := len(s.nodes)
	top := s.nodes[n-1]
	s.nodes = s.nodes[:n-1]
	return top
}

// FarHeap is a max-heap by distance: Top returns the farthest node. It is
// the "result set" heap of the beam search (§4.7) — bounded to ef, with
// the farthest candidate evicted first when it overflows.
type FarHeap struct {
	s nodeSlice
}

// NewFarHeap returns an empty FarHeap.
func NewFarHeap() *FarHeap {
	return &FarHeap{s: nodeSlice{maxFirst: true}}
}

// NewFarHeapFrom returns a FarHeap seeded with a single node.
func NewFarHeapFrom(n Node) *FarHeap {
	h := NewFarHeap()
	h.Push(n)
	return h
}

func (h *FarHeap) Len() int   { return h.s.Len() }
func (h *FarHeap) Push(n Node) { heap.Push(&h.s, n) }
func (h *FarHeap) Pop()        { heap.Pop(&h.s) }
func (h *FarHeap) Top() Node   { return h.s.nodes[0] }

// ExtractTop pops and returns the farthest node.
func (h *FarHeap) ExtractTop() Node {
	n := h.Top()
	h.Pop()
	return n
}

// NearHeap is a min-heap by distance: Top returns the closest node. It is
// the "candidate frontier" heap of the beam search and the input/output
// order of the neighbor-selection heuristic (§4.7).
type NearHeap struct {
	s nodeSlice
}

// NewNearHeap returns an empty NearHeap.
func NewNearHeap() *NearHeap {
	return &NearHeap{s: nodeSlice{maxFirst: false}}
}

// NewNearHeapFrom returns a NearHeap seeded with a single node.
func NewNearHeapFrom(n Node) *NearHeap {
	h := NewNearHeap()
	h.Push(n)
	return h
}

// NewNearHeapFromFar drains a FarHeap into a NearHeap, reordering by the
// opposite comparator (§4.4: "a heap of one order is constructible from a
// heap of the other by draining").
func NewNearHeapFromFar(f *FarHeap) *NearHeap {
	h := NewNearHeap()
	for f.Len() > 0 {
		h.Push(f.ExtractTop())
	}
	return h
}

func (h *NearHeap) Len() int    { return h.s.Len() }
func (h *NearHeap) Push(n Node) { heap.Push(&h.s, n) }
func (h *NearHeap) Pop()        { heap.Pop(&h.s) }
func (h *NearHeap) Top() Node   { return h.s.nodes[0] }

// ExtractTop pops and returns the closest node.
func (h *NearHeap) ExtractTop() Node {
	n := h.Top()
	h.Pop()
	return n
}
