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

// Package bench generates synthetic benchmarking datasets and runs
// timed build/query passes against pkg/hnsw indexes, restoring the
// benchmarking harness the spec's distillation treated as an external
// collaborator.
package bench

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/hnswgraph/hnsw/pkg/hnsw"
)

// bruteforceIndex is a linear-scan ground-truth index: every queryOne
// call scores the query against every stored vector and returns the k
// closest by full sort.
type bruteforceIndex struct {
	space *hnsw.Space
	n     int
	dim   int
}

func newBruteforceIndex(dim int, maxElemCount int, kind hnsw.SpaceKind) (*bruteforceIndex, error) {
	space, err := hnsw.NewSpace(dim, kind, maxElemCount, hnsw.SIMDBest)
	if err != nil {
		return nil, err
	}
	return &bruteforceIndex{space: space, dim: dim}, nil
}

func (b *bruteforceIndex) push(vectors hnsw.ArrayView[float32]) {
	for i := 0; i < vectors.ElemCount(); i++ {
		b.space.Push(uint32(b.n), vectors.Row(i))
		b.n++
	}
}

// queryBatch scores every query against every pushed vector and returns
// the k nearest ids per query, ascending by distance.
func (b *bruteforceIndex) queryBatch(queries hnsw.ArrayView[float32], k int) hnsw.ArrayView[uint32] {
	out := make([]uint32, queries.ElemCount()*k)
	view := hnsw.NewArrayView(out, k, queries.ElemCount())

	type scored struct {
		id   uint32
		dist float32
	}

	for qi := 0; qi < queries.ElemCount(); qi++ {
		q := queries.Row(qi)
		all := make([]scored, b.n)
		for id := 0; id < b.n; id++ {
			all[id] = scored{id: uint32(id), dist: b.space.DistanceToPtr(uint32(id), q)}
		}
		sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })
		limit := k
		if limit > len(all) {
			limit = len(all)
		}
		for i := 0; i < limit; i++ {
			view.Set(qi, i, all[i].id)
		}
	}

	return view
}

// Dataset owns deterministic synthetic train/test vectors and their
// brute-force ground-truth neighbors, mirroring the teacher's
// benchmarking collaborator (original_source's Dataset/BruteforceIndex).
type Dataset struct {
	Dim        int
	K          int
	Kind       hnsw.SpaceKind
	TestCount  int
	TrainCount int

	train             []float32
	test              []float32
	neighbors         []uint32
	bruteforceElapsed time.Duration
}

// NewDataset generates trainCount training vectors and testCount query
// vectors of dimension dim from seed (test vectors use seed+1, matching
// the teacher's "generate(test, seed+1); generate(train, seed)" order),
// then computes k-nearest ground truth for every test vector via a
// brute-force scan.
func NewDataset(dim, k int, seed uint32, kind hnsw.SpaceKind, testCount, trainCount int) (*Dataset, error) {
	d := &Dataset{Dim: dim, K: k, Kind: kind, TestCount: testCount, TrainCount: trainCount}
	d.test = generate(dim, testCount, seed+1)
	d.train = generate(dim, trainCount, seed)

	bf, err := newBruteforceIndex(dim, trainCount, kind)
	if err != nil {
		return nil, fmt.Errorf("bench: building ground-truth index: %w", err)
	}

	start := time.Now()
	bf.push(hnsw.NewArrayView(d.train, dim, trainCount))
	res := bf.queryBatch(hnsw.NewArrayView(d.test, dim, testCount), k)
	d.bruteforceElapsed = time.Since(start)

	d.neighbors = make([]uint32, testCount*k)
	for i := 0; i < testCount; i++ {
		copy(d.neighbors[i*k:(i+1)*k], res.Row(i))
	}

	return d, nil
}

func generate(dim, count int, seed uint32) []float32 {
	rng := rand.New(rand.NewSource(int64(seed)))
	v := make([]float32, dim*count)
	for i := range v {
		v[i] = rng.Float32()
	}
	return v
}

// BruteforceElapsed returns how long the ground-truth scan took.
func (d *Dataset) BruteforceElapsed() time.Duration { return d.bruteforceElapsed }

// TrainView returns the training vectors as a (TrainCount x Dim) view.
func (d *Dataset) TrainView() hnsw.ArrayView[float32] {
	return hnsw.NewArrayView(d.train, d.Dim, d.TrainCount)
}

// TestView returns the test/query vectors as a (TestCount x Dim) view.
func (d *Dataset) TestView() hnsw.ArrayView[float32] {
	return hnsw.NewArrayView(d.test, d.Dim, d.TestCount)
}

// GroundTruth returns the (TestCount x K) brute-force nearest-neighbor
// ids.
func (d *Dataset) GroundTruth() hnsw.ArrayView[uint32] {
	return hnsw.NewArrayView(d.neighbors, d.K, d.TestCount)
}

// Recall scores a found-id matrix against the dataset's ground truth.
func (d *Dataset) Recall(found hnsw.ArrayView[uint32]) float32 {
	return hnsw.GetRecall(d.GroundTruth(), found)
}

// String summarizes the dataset, mirroring Dataset::getString.
func (d *Dataset) String() string {
	return fmt.Sprintf(
		"Dataset: %s space, dimension = %d, trainCount = %d, testCount = %d, k = %d",
		spaceKindString(d.Kind), d.Dim, d.TrainCount, d.TestCount, d.K,
	)
}

func spaceKindString(k hnsw.SpaceKind) string {
	if k == hnsw.Angular {
		return "angular"
	}
	return "euclidean"
}
