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

// RecallTableConfig configures a single build queried at several
// efSearch values, grounded on original_source's RecallTableConfig.
type RecallTableConfig struct {
	Dataset        *Dataset
	EfConstruction int
	EfSearchValues []int
	MMax           int
	Parallel       bool
	Seed           uint32
	WorkerCount    int
}

// GetOpposite returns a copy of cfg with Parallel flipped, mirroring
// RecallTableConfig::getOpposite.
func (cfg RecallTableConfig) GetOpposite() RecallTableConfig {
	cfg.Parallel = !cfg.Parallel
	return cfg
}

// RecallTableRow is one efSearch measurement.
type RecallTableRow struct {
	EfSearch int
	Recall   float32
	Elapsed  time.Duration
}

// RecallTable builds exactly one index and queries it once per
// configured efSearch value, recording elapsed time and recall for
// each — unlike Benchmark, it never repeats the build or a given
// efSearch (original_source's RecallTable::run).
type RecallTable struct {
	Cfg RecallTableConfig

	BuildElapsed time.Duration
	IndexStr     string
	Rows         []RecallTableRow
}

// NewRecallTable constructs a RecallTable ready to Run.
func NewRecallTable(cfg RecallTableConfig) *RecallTable {
	return &RecallTable{Cfg: cfg}
}

// Run builds the index once and queries it once per EfSearchValues
// entry, populating Rows in configured order.
func (rt *RecallTable) Run() error {
	cfg, err := hnsw.NewIndexConfig(rt.Cfg.EfConstruction, rt.Cfg.MMax, rt.Cfg.Dataset.TrainCount)
	if err != nil {
		return err
	}

	var idx queryer
	start := time.Now()
	if rt.Cfg.Parallel {
		pIdx, err := hnsw.NewParallelIndex(rt.Cfg.Dataset.Dim, rt.Cfg.Dataset.Kind, cfg, hnsw.SIMDBest, rt.Cfg.WorkerCount, rt.Cfg.Seed)
		if err != nil {
			return err
		}
		if err := pIdx.Build(rt.Cfg.Dataset.TrainView()); err != nil {
			return err
		}
		rt.IndexStr = fmt.Sprintf("parallel index, workers = %d", rt.Cfg.WorkerCount)
		idx = pIdx
	} else {
		sIdx, err := hnsw.NewSequentialIndex(rt.Cfg.Dataset.Dim, rt.Cfg.Dataset.Kind, cfg, hnsw.SIMDBest, rt.Cfg.Seed)
		if err != nil {
			return err
		}
		if _, err := sIdx.PushBatch(rt.Cfg.Dataset.TrainView()); err != nil {
			return err
		}
		rt.IndexStr = "sequential index"
		idx = sIdx
	}
	rt.BuildElapsed = time.Since(start)

	rt.Rows = make([]RecallTableRow, 0, len(rt.Cfg.EfSearchValues))
	for _, ef := range rt.Cfg.EfSearchValues {
		qStart := time.Now()
		res, err := idx.QueryBatch(rt.Cfg.Dataset.TestView(), ef, rt.Cfg.Dataset.K)
		if err != nil {
			return fmt.Errorf("bench: recall table query at efSearch=%d: %w", ef, err)
		}
		elapsed := time.Since(qStart)
		recall := rt.Cfg.Dataset.Recall(res.IDs())
		rt.Rows = append(rt.Rows, RecallTableRow{EfSearch: ef, Recall: recall, Elapsed: elapsed})
	}

	return nil
}
