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
	"fmt"
	"time"

	"github.com/hnswgraph/hnsw/pkg/hnsw"
)

// Stats summarizes a set of timed runs.
type Stats struct {
	Avg time.Duration
	Max time.Duration
	Min time.Duration
}

func newStats(samples []time.Duration) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	var sum, max, min time.Duration
	min = samples[0]
	for _, s := range samples {
		sum += s
		if s > max {
			max = s
		}
		if s < min {
			min = s
		}
	}
	return Stats{Avg: sum / time.Duration(len(samples)), Max: max, Min: min}
}

// QueryStats summarizes timing and recall across runsCount independent
// query measurements at a single efSearch value.
type QueryStats struct {
	Stats
	AvgRecall float32
	MaxRecall float32
	MinRecall float32
}

// Benchmark repeatedly builds an index over a Dataset and times queries
// at a set of efSearch values (spec.md §9's Benchmark collaborator,
// original_source's Benchmark.cpp). Build timing is sampled across
// RunsCount independent builds; query timing and recall are sampled as
// RunsCount independent query batches per efSearch against one retained
// build — the non-quadratic reading of the Open Question in DESIGN.md,
// not runsCount builds each queried runsCount times.
type Benchmark struct {
	Dataset        *Dataset
	EfConstruction int
	EfSearchValues []int
	MMax           int
	Parallel       bool
	RunsCount      int
	Seed           uint32
	WorkerCount    int

	buildTimes []time.Duration
	queryRuns  map[int][]queryRun
}

type queryRun struct {
	elapsed time.Duration
	recall  float32
}

// NewBenchmark configures a Benchmark; WorkerCount is ignored unless
// Parallel is true.
func NewBenchmark(dataset *Dataset, efConstruction int, efSearchValues []int, mMax int, parallel bool, seed uint32, runsCount, workerCount int) *Benchmark {
	return &Benchmark{
		Dataset:        dataset,
		EfConstruction: efConstruction,
		EfSearchValues: efSearchValues,
		MMax:           mMax,
		Parallel:       parallel,
		RunsCount:      runsCount,
		Seed:           seed,
		WorkerCount:    workerCount,
		queryRuns:      make(map[int][]queryRun, len(efSearchValues)),
	}
}

// GetParallel returns a copy of this Benchmark configured to build a
// ParallelIndex with the given worker count instead, mirroring
// Benchmark::getParallel.
func (b *Benchmark) GetParallel(workerCount int) *Benchmark {
	return NewBenchmark(b.Dataset, b.EfConstruction, b.EfSearchValues, b.MMax, true, b.Seed, b.RunsCount, workerCount)
}

func (b *Benchmark) buildIndex() (queryer, error) {
	cfg, err := hnsw.NewIndexConfig(b.EfConstruction, b.MMax, b.Dataset.TrainCount)
	if err != nil {
		return nil, err
	}

	if b.Parallel {
		idx, err := hnsw.NewParallelIndex(b.Dataset.Dim, b.Dataset.Kind, cfg, hnsw.SIMDBest, b.WorkerCount, b.Seed)
		if err != nil {
			return nil, err
		}
		if err := idx.Build(b.Dataset.TrainView()); err != nil {
			return nil, err
		}
		return idx, nil
	}

	idx, err := hnsw.NewSequentialIndex(b.Dataset.Dim, b.Dataset.Kind, cfg, hnsw.SIMDBest, b.Seed)
	if err != nil {
		return nil, err
	}
	if _, err := idx.PushBatch(b.Dataset.TrainView()); err != nil {
		return nil, err
	}
	return idx, nil
}

// queryer is the common surface Benchmark needs from either index
// variant.
type queryer interface {
	QueryBatch(queries hnsw.ArrayView[float32], efSearch, k int) (*hnsw.QueryResults, error)
}

// Run executes RunsCount builds (for build-time stats) and, against the
// last build, RunsCount independent query batches per efSearch value
// (for query-time and recall stats).
func (b *Benchmark) Run() error {
	b.buildTimes = make([]time.Duration, 0, b.RunsCount)
	for k := range b.queryRuns {
		delete(b.queryRuns, k)
	}
	for _, ef := range b.EfSearchValues {
		b.queryRuns[ef] = make([]queryRun, 0, b.RunsCount)
	}

	var last queryer
	for i := 0; i < b.RunsCount; i++ {
		start := time.Now()
		idx, err := b.buildIndex()
		if err != nil {
			return fmt.Errorf("bench: build run %d: %w", i, err)
		}
		b.buildTimes = append(b.buildTimes, time.Since(start))
		last = idx
	}

	for _, ef := range b.EfSearchValues {
		for i := 0; i < b.RunsCount; i++ {
			start := time.Now()
			res, err := last.QueryBatch(b.Dataset.TestView(), ef, b.Dataset.K)
			if err != nil {
				return fmt.Errorf("bench: query run %d at efSearch=%d: %w", i, ef, err)
			}
			elapsed := time.Since(start)
			recall := b.Dataset.Recall(res.IDs())
			b.queryRuns[ef] = append(b.queryRuns[ef], queryRun{elapsed: elapsed, recall: recall})
		}
	}

	return nil
}

// BuildStats returns avg/max/min over the RunsCount builds.
func (b *Benchmark) BuildStats() Stats {
	return newStats(b.buildTimes)
}

// QueryStats returns avg/max/min timing and recall for every configured
// efSearch value.
func (b *Benchmark) QueryStats() map[int]QueryStats {
	out := make(map[int]QueryStats, len(b.queryRuns))
	for ef, runs := range b.queryRuns {
		elapsed := make([]time.Duration, len(runs))
		var sumRecall, maxRecall, minRecall float32
		for i, r := range runs {
			elapsed[i] = r.elapsed
			sumRecall += r.recall
			if i == 0 || r.recall > maxRecall {
				maxRecall = r.recall
			}
			if i == 0 || r.recall < minRecall {
				minRecall = r.recall
			}
		}
		var avgRecall float32
		if len(runs) > 0 {
			avgRecall = sumRecall / float32(len(runs))
		}
		out[ef] = QueryStats{
			Stats:     newStats(elapsed),
			AvgRecall: avgRecall,
			MaxRecall: maxRecall,
			MinRecall: minRecall,
		}
	}
	return out
}
