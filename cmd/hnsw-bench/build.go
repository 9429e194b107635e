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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hnswgraph/hnsw/internal/bench"
	"github.com/hnswgraph/hnsw/pkg/hnsw"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Time repeated builds and queries across efSearch values",
	RunE:  runBuild,
}

func init() {
	flags := buildCmd.Flags()
	flags.Int("dim", 32, "vector dimension")
	flags.Int("k", 10, "neighbors per query")
	flags.Uint32("seed", 1, "dataset and index seed")
	flags.Int("train-count", 2000, "number of training vectors")
	flags.Int("test-count", 100, "number of query vectors")
	flags.Bool("angular", false, "use angular distance instead of euclidean")
	flags.Int("ef-construction", 200, "build-time beam width")
	flags.Int("m-max", 16, "neighbor cap per upper layer")
	flags.String("ef-search", "10,50,100", "comma-separated efSearch values to report")
	flags.Int("runs", 3, "independent build/query measurements")
	flags.Bool("parallel", false, "build a ParallelIndex instead of a SequentialIndex")
	flags.Int("workers", 4, "worker pool size when --parallel is set")
}

func parseEfSearchValues(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid efSearch value %q: %w", p, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
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
	runs, _ := flags.GetInt("runs")
	parallel, _ := flags.GetBool("parallel")
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

	b := bench.NewBenchmark(dataset, efConstruction, efSearchValues, mMax, parallel, seed, runs, workers)
	if err := b.Run(); err != nil {
		return fmt.Errorf("running benchmark: %w", err)
	}

	cmd.Println(b.PrintSummary())
	return nil
}
