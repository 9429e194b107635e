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

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hnswgraph/hnsw/pkg/hnsw"
)

// vectorIndex is the subset of SequentialIndex/ParallelIndex a Handler
// needs; both satisfy it.
type vectorIndex interface {
	Push(vec []float32) (uint32, error)
	Query(vec []float32, efSearch, k int) (*hnsw.FarHeap, error)
	QueryBatch(queries hnsw.ArrayView[float32], efSearch, k int) (*hnsw.QueryResults, error)
	Len() int
}

// Handler holds the index a router dispatches HTTP requests against.
type Handler struct {
	idx        vectorIndex
	dimensions int
	spaceKind  hnsw.SpaceKind
	parallel   bool
}

// NewHandler wraps an already-constructed index (sequential or parallel)
// for serving over HTTP.
func NewHandler(idx vectorIndex, dimensions int, kind hnsw.SpaceKind, parallel bool) *Handler {
	return &Handler{idx: idx, dimensions: dimensions, spaceKind: kind, parallel: parallel}
}

// HandlePush handles POST /push: inserts one vector, returning its
// assigned id.
func (h *Handler) HandlePush(w http.ResponseWriter, r *http.Request) {
	var req PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	if len(req.Vector) != h.dimensions {
		sendJSON(w, http.StatusBadRequest, ErrorResponse{Error: "vector dimension mismatch"})
		return
	}

	id, err := h.idx.Push(req.Vector)
	if err != nil {
		sendJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	sendJSON(w, http.StatusOK, PushResponse{ID: id})
}

// HandlePushBatch handles POST /push/batch: inserts several vectors in
// request order, one Push call each (no bulk PushBatch operation exists
// for ParallelIndex, which only batches via Build at construction time).
func (h *Handler) HandlePushBatch(w http.ResponseWriter, r *http.Request) {
	var req PushBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	for _, v := range req.Vectors {
		if len(v) != h.dimensions {
			sendJSON(w, http.StatusBadRequest, ErrorResponse{Error: "vector dimension mismatch"})
			return
		}
	}

	ids := make([]uint32, 0, len(req.Vectors))
	for _, v := range req.Vectors {
		id, err := h.idx.Push(v)
		if err != nil {
			sendJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		ids = append(ids, id)
	}

	sendJSON(w, http.StatusOK, PushBatchResponse{IDs: ids})
}

// HandleQuery handles POST /query: runs a single k-NN search.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	if len(req.Vector) != h.dimensions {
		sendJSON(w, http.StatusBadRequest, ErrorResponse{Error: "vector dimension mismatch"})
		return
	}
	if req.K <= 0 {
		req.K = 10
	}
	if req.EfSearch <= 0 {
		req.EfSearch = req.K
	}

	start := time.Now()
	found, err := h.idx.Query(req.Vector, req.EfSearch, req.K)
	if err != nil {
		sendJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	latency := float64(time.Since(start).Microseconds()) / 1000.0

	near := hnsw.NewNearHeapFromFar(found)
	results := make([]QueryResult, 0, near.Len())
	for near.Len() > 0 {
		n := near.ExtractTop()
		results = append(results, QueryResult{ID: n.ID, Distance: n.Dist})
	}

	sendJSON(w, http.StatusOK, QueryResponse{Results: results, LatencyMs: latency})
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, HealthResponse{Status: "ok", VectorCount: h.idx.Len()})
}

// HandleStats handles GET /stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, StatsResponse{
		VectorCount: h.idx.Len(),
		Dimensions:  h.dimensions,
		SpaceKind:   spaceKindString(h.spaceKind),
		Parallel:    h.parallel,
	})
}

func spaceKindString(k hnsw.SpaceKind) string {
	if k == hnsw.Angular {
		return "angular"
	}
	return "euclidean"
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
