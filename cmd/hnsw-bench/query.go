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

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Build a single index and run one ad-hoc k-NN query against it",
	RunE:  runQuery,
}

func init() {
	flags := queryCmd.Flags()
	flags.Int("dim", 32, "vector dimension")
	flags.Int("k", 10, "neighbors to return")
	flags.Uint32("seed", 1, "dataset and index seed")
	flags.Int("train-count", 2000, "number of training vectors")
	flags.Bool("angular", false, "use angular distance instead of euclidean")
	flags.Int("ef-construction", 200, "build-time beam width")
	flags.Int("m-max", 16, "neighbor cap per upper layer")
	flags.Int("ef-search", 100, "search-time beam width")
	flags.Int("row", 0, "index of the dataset's test vector to query with")
}

func runQuery(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	dim, _ := flags.GetInt("dim")
	k, _ := flags.GetInt("k")
	seed, _ := flags.GetUint32("seed")
	trainCount, _ := flags.GetInt("train-count")
	angular, _ := flags.GetBool("angular")
	efConstruction, _ := flags.GetInt("ef-construction")
	mMax, _ := flags.GetInt("m-max")
	efSearch, _ := flags.GetInt("ef-search")
	row, _ := flags.GetInt("row")

	kind := hnsw.Euclidean
	if angular {
		kind = hnsw.Angular
	}

	dataset, err := bench.NewDataset(dim, k, seed, kind, row+1, trainCount)
	if err != nil {
		return fmt.Errorf("building dataset: %w", err)
	}

	idx, err := hnsw.NewSequential(dim, kind,
		hnsw.WithEfConstruction(efConstruction),
		hnsw.WithMMax(mMax),
		hnsw.WithMaxElemCount(trainCount),
		hnsw.WithSeed(seed),
	)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	if _, err := idx.PushBatch(dataset.TrainView()); err != nil {
		return fmt.Errorf("pushing training vectors: %w", err)
	}

	found, err := idx.Query(dataset.TestView().Row(row), efSearch, k)
	if err != nil {
		return fmt.Errorf("querying: %w", err)
	}

	near := hnsw.NewNearHeapFromFar(found)
	cmd.Printf("Query results for test row %d (efSearch=%d, k=%d):\n", row, efSearch, k)
	for near.Len() > 0 {
		n := near.ExtractTop()
		cmd.Printf("  id=%d dist=%f\n", n.ID, n.Dist)
	}

	return nil
}
