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

// Command hnsw-server serves a single in-memory HNSW index over HTTP.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/hnswgraph/hnsw/internal/api"
	"github.com/hnswgraph/hnsw/pkg/hnsw"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	dimensions := flag.Int("dimensions", 128, "vector dimensions")
	maxElemCount := flag.Int("max-elements", 100000, "maximum number of vectors the index can hold")
	efConstruction := flag.Int("ef-construction", 200, "build-time beam width")
	mMax := flag.Int("m-max", 16, "neighbor cap per upper layer")
	seed := flag.Uint("seed", 1, "level generator seed")
	angular := flag.Bool("angular", false, "use angular (cosine) distance instead of euclidean")
	parallel := flag.Bool("parallel", false, "build a ParallelIndex instead of a SequentialIndex")
	workers := flag.Int("workers", 4, "worker pool size when -parallel is set")
	flag.Parse()

	kind := hnsw.Euclidean
	if *angular {
		kind = hnsw.Angular
	}

	opts := []hnsw.Option{
		hnsw.WithEfConstruction(*efConstruction),
		hnsw.WithMMax(*mMax),
		hnsw.WithMaxElemCount(*maxElemCount),
		hnsw.WithSeed(uint32(*seed)),
	}

	var h *api.Handler
	if *parallel {
		idx, err := hnsw.NewParallel(*dimensions, kind, append(opts, hnsw.WithWorkers(*workers))...)
		if err != nil {
			log.Fatalf("failed to build parallel index: %v", err)
		}
		h = api.NewHandler(idx, *dimensions, kind, true)
	} else {
		idx, err := hnsw.NewSequential(*dimensions, kind, opts...)
		if err != nil {
			log.Fatalf("failed to build sequential index: %v", err)
		}
		h = api.NewHandler(idx, *dimensions, kind, false)
	}

	router := api.NewRouter(h)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("hnsw-server listening on %s (dimensions=%d, parallel=%v)", addr, *dimensions, *parallel)
	log.Printf("  POST /push        - insert one vector")
	log.Printf("  POST /push/batch  - insert several vectors")
	log.Printf("  POST /query       - k-NN search")
	log.Printf("  GET  /health      - health check")
	log.Printf("  GET  /stats       - index statistics")

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
