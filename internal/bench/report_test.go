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

package bench

import (
	"strings"
	"testing"

	"github.com/hnswgraph/hnsw/pkg/hnsw"
)

func TestBenchmarkPrintSummaryMentionsEveryEfSearch(t *testing.T) {
	d, err := NewDataset(4, 2, 41, hnsw.Euclidean, 4, 40)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	b := NewBenchmark(d, 16, []int{4, 8}, 6, false, 1, 1, 1)
	if err := b.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := b.PrintSummary()
	for _, want := range []string{"4", "8"} {
		if !strings.Contains(out, want) {
			t.Fatalf("PrintSummary output missing %q:\n%s", want, out)
		}
	}
}

func TestRecallTablePrintSummaryMentionsIndexKind(t *testing.T) {
	d, err := NewDataset(4, 2, 51, hnsw.Euclidean, 4, 40)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	rt := NewRecallTable(RecallTableConfig{
		Dataset:        d,
		EfConstruction: 16,
		EfSearchValues: []int{4},
		MMax:           6,
		Seed:           1,
	})
	if err := rt.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := rt.PrintSummary()
	if !strings.Contains(out, "sequential") {
		t.Fatalf("PrintSummary output missing index kind:\n%s", out)
	}
}
