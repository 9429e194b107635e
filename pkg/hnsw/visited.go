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

// VisitedSet is a dense bitmap over element ids, allocated fresh per
// search (spec.md §4.5) and pre-marked at the entry point.
type VisitedSet struct {
	marked []bool
}

// newVisitedSet allocates a bitmap of size elemCount with epID pre-marked.
func newVisitedSet(elemCount int, epID uint32) *VisitedSet {
	v := &VisitedSet{marked: make([]bool, elemCount)}
	v.mark(epID)
	return v
}

func (v *VisitedSet) isMarked(id uint32) bool { return v.marked[id] }
func (v *VisitedSet) mark(id uint32)          { v.marked[id] = true }
