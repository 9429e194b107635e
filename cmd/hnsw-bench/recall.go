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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnswgraph/hnsw/internal/bench"
	"github.com/hnswgraph/hnsw/pkg/hnsw"
)

var recallCmd = &cobra.Command{
	Use:   "recall",
	Short: "Build once and report recall/timing per efSearch value",
	RunE:  runRecall,
}

func init() {
	flags := recallCmd.Flags()
	flags.Int("dim", 32, "vector dimension")
	flags.Int("k", 10, "neighbors per query")
	flags.Uint32("seed", 1, "dataset and index seed")
	flags.Int("train-count", 2000, "number of training vectors")
	flags.Int("test-count", 100, "number of query vectors")
	flags.Bool("angular", false, "use angular distance instead of euclidean")
	flags.Int("ef-construction", 200, "build-time beam width")
	flags.Int("m-max", 16, "neighbor cap per upper layer")
	flags.String("ef-search", "10,50,100", "comma-separated efSearch values to report")
	flags.Bool("parallel", false, "build a ParallelIndex instead of a SequentialIndex")
	flags.Bool("both", false, "also report the opposite (sequential/parallel) configuration")
	flags.Int("workers", 4, "worker pool size when --parallel (or --both) is set")
}

func runRecall(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	dim, _ := flags.GetInt("dim")
	k, _ := flags.GetInt("k")
	seed, _ := flags.GetUint32("seed")
	trainCount, _ := flags.GetInt("train-count")
	testCount, _ := flags.GetInt("test-count")
	angular, _ := flags.GetBool("angular")
	efConstruction, _ := flags.GetInt("ef-construction")
	mMax, _ := flags.GetInt("m-max")
	efSearchStr, _ := flags.GetString("ef-search")
	parallel, _ := flags.GetBool("parallel")
	both, _ := flags.GetBool("both")
	workers, _ := flags.GetInt("workers")

	efSearchValues, err := parseEfSearchValues(efSearchStr)
	if err != nil {
		return err
	}

	kind := hnsw.Euclidean
	if angular {
		kind = hnsw.Angular
	}

	cmd.Println("Generating dataset and computing brute-force ground truth.")
	dataset, err := bench.NewDataset(dim, k, seed, kind, testCount, trainCount)
	if err != nil {
		return fmt.Errorf("building dataset: %w", err)
	}

	cfg := bench.RecallTableConfig{
		Dataset:        dataset,
		EfConstruction: efConstruction,
		EfSearchValues: efSearchValues,
		MMax:           mMax,
		Parallel:       parallel,
		Seed:           seed,
		WorkerCount:    workers,
	}

	rt := bench.NewRecallTable(cfg)
	if err := rt.Run(); err != nil {
		return fmt.Errorf("running recall table: %w", err)
	}
	cmd.Println(rt.PrintSummary())

	if both {
		opp := bench.NewRecallTable(cfg.GetOpposite())
		if err := opp.Run(); err != nil {
			return fmt.Errorf("running opposite recall table: %w", err)
		}
		cmd.Println(opp.PrintSummary())
	}

	return nil
}
