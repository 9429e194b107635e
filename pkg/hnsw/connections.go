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

// connectionBackend is the capability the insertion pipeline and search
// primitives need from a connection store: read a snapshot of a bucket,
// replace a bucket, and lazily allocate upper-layer storage. Sequential
// and parallel indexes satisfy it with different locking strategies
// (spec.md §9's "Polymorphism across index variants").
type connectionBackend interface {
	init(id uint32, level uint32)
	readNeighbors(id uint32, lc uint32) []uint32
	writeNeighbors(id uint32, lc uint32, ids []uint32)
}

// Connections is the single-writer connection store (spec.md §4.3): a
// length-prefixed flat arena for layer 0, plus lazily-allocated
// per-element upper-layer buckets. Layout per bucket: [len, n0, n1, ...].
// Safe for one writer at a time; readers may borrow the live slice
// without copying because nothing else mutates concurrently.
type Connections struct {
	mMax, mMax0 int
	maxLen      int // mMax + 1
	maxLen0     int // mMax0 + 1
	layer0      []uint32
	upper       [][]uint32
}

// newConnections allocates the base-layer arena (maxElemCount x
// (mMax0+1) uint32 slots) up front; upper-layer storage is allocated
// lazily via init.
func newConnections(maxElemCount int, mMax, mMax0 int) *Connections {
	return &Connections{
		mMax:    mMax,
		mMax0:   mMax0,
		maxLen:  mMax + 1,
		maxLen0: mMax0 + 1,
		layer0:  make([]uint32, maxElemCount*(mMax0+1)),
		upper:   make([][]uint32, maxElemCount),
	}
}

func (c *Connections) bucket(id uint32, lc uint32) []uint32 {
	if lc == 0 {
		start := int(id) * c.maxLen0
		return c.layer0[start : start+c.maxLen0]
	}
	start := int(lc-1) * c.maxLen
	return c.upper[id][start : start+c.maxLen]
}

func (c *Connections) init(id uint32, level uint32) {
	if level > 0 {
		c.upper[id] = make([]uint32, int(level)*c.maxLen)
	}
}

// readNeighbors returns the live neighbor slice (borrowed, not copied) —
// safe here because Connections has exactly one writer.
func (c *Connections) readNeighbors(id uint32, lc uint32) []uint32 {
	b := c.bucket(id, lc)
	n := b[0]
	return b[1 : 1+n]
}

// writeNeighbors replaces the bucket's contents and length prefix. No
// bounds check beyond the bucket's fixed capacity (mMax/mMax0), matching
// the invariant that callers never select more than cap neighbors.
func (c *Connections) writeNeighbors(id uint32, lc uint32, ids []uint32) {
	b := c.bucket(id, lc)
	b[0] = uint32(len(ids))
	copy(b[1:1+len(ids)], ids)
}

// ThreadSafeConnections is the multi-writer connection store: identical
// layout to Connections, plus one mutex per element. Reads take the lock,
// copy the bucket, and release; writes take the lock, mutate the live
// bucket in place, and release. A reader never observes a torn bucket,
// but across independent read/write calls it may observe the bucket
// before or after a concurrent rewrite (spec.md §4.10).
type ThreadSafeConnections struct {
	Connections
	mus []sync.Mutex
}

func newThreadSafeConnections(maxElemCount int, mMax, mMax0 int) *ThreadSafeConnections {
	return &ThreadSafeConnections{
		Connections: *newConnections(maxElemCount, mMax, mMax0),
		mus:         make([]sync.Mutex, maxElemCount),
	}
}

func (c *ThreadSafeConnections) mutex(id uint32) *sync.Mutex {
	return &c.mus[id]
}

func (c *ThreadSafeConnections) readNeighbors(id uint32, lc uint32) []uint32 {
	c.mutex(id).Lock()
	defer c.mutex(id).Unlock()

	b := c.bucket(id, lc)
	n := b[0]
	cp := make([]uint32, n)
	copy(cp, b[1:1+n])
	return cp
}

func (c *ThreadSafeConnections) writeNeighbors(id uint32, lc uint32, ids []uint32) {
	c.mutex(id).Lock()
	defer c.mutex(id).Unlock()

	b := c.bucket(id, lc)
	b[0] = uint32(len(ids))
	copy(b[1:1+len(ids)], ids)
}
