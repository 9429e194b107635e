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

// GetRecall compares a brute-force ground-truth id matrix against an
// index's result id matrix, both m x k views (ArrayView semantics: GetRecall
// owns neither), and returns the fraction of found ids that appear
// anywhere in the matching ground-truth row (spec.md §9).
func GetRecall(correct, found ArrayView[uint32]) float32 {
	m := correct.ElemCount()
	k := correct.Dim()

	var hits int
	for row := 0; row < m; row++ {
		want := correct.Row(row)
		set := make(map[uint32]struct{}, len(want))
		for _, id := range want {
			set[id] = struct{}{}
		}
		for _, id := range found.Row(row) {
			if _, ok := set[id]; ok {
				hits++
			}
		}
	}

	if m == 0 || k == 0 {
		return 0
	}
	return float32(hits) / float32(m*k)
}
