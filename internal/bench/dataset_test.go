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

func TestNewDatasetProducesGroundTruthWithinRange(t *testing.T) {
	d, err := NewDataset(8, 5, 1, hnsw.Euclidean, 10, 200)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	gt := d.GroundTruth()
	if gt.ElemCount() != 10 || gt.Dim() != 5 {
		t.Fatalf("GroundTruth shape = (%d, %d), want (10, 5)", gt.ElemCount(), gt.Dim())
	}
	for i := 0; i < gt.ElemCount(); i++ {
		for j := 0; j < gt.Dim(); j++ {
			if id := gt.Get(i, j); id >= 200 {
				t.Fatalf("ground truth id %d out of train range at (%d,%d)", id, i, j)
			}
		}
	}
}

func TestNewDatasetTrainAndTestUseDifferentSeeds(t *testing.T) {
	d, err := NewDataset(4, 3, 7, hnsw.Euclidean, 5, 5)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	same := true
	train := d.TrainView()
	test := d.TestView()
	for i := 0; i < 4; i++ {
		if train.Get(0, i) != test.Get(0, i) {
			same = false
			break
		}
	}
	if same {
		t.Fatal("train and test rows are identical, seeds likely collided")
	}
}

func TestDatasetRecallIsPerfectAgainstItsOwnGroundTruth(t *testing.T) {
	d, err := NewDataset(6, 4, 3, hnsw.Angular, 8, 50)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	got := d.Recall(d.GroundTruth())
	if got != 1.0 {
		t.Fatalf("Recall against own ground truth = %v, want 1.0", got)
	}
}

func TestDatasetStringIncludesSpaceKind(t *testing.T) {
	d, err := NewDataset(2, 1, 1, hnsw.Angular, 1, 1)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	got := d.String()
	if !strings.Contains(got, "angular") {
		t.Fatalf("String() = %q, want it to mention angular", got)
	}
}
