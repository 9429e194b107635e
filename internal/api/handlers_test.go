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
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/hnswgraph/hnsw/pkg/hnsw"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	idx, err := hnsw.NewSequential(4, hnsw.Euclidean,
		hnsw.WithMaxElemCount(64),
		hnsw.WithMMax(4),
		hnsw.WithEfConstruction(32),
	)
	if err != nil {
		t.Fatalf("NewSequential: %v", err)
	}
	return NewHandler(idx, 4, hnsw.Euclidean, false)
}

func TestHandlePushAssignsSequentialIDs(t *testing.T) {
	h := newTestHandler(t)
	router := NewRouter(h)

	for i, vec := range [][]float32{{1, 0, 0, 0}, {0, 1, 0, 0}} {
		body, _ := json.Marshal(PushRequest{Vector: vec})
		req := httptest.NewRequest("POST", "/push", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != 200 {
			t.Fatalf("push %d: status = %d, body = %s", i, rec.Code, rec.Body.String())
		}

		var resp PushResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ID != uint32(i) {
			t.Fatalf("push %d: ID = %d, want %d", i, resp.ID, i)
		}
	}
}

func TestHandlePushRejectsDimensionMismatch(t *testing.T) {
	h := newTestHandler(t)
	router := NewRouter(h)

	body, _ := json.Marshal(PushRequest{Vector: []float32{1, 2}})
	req := httptest.NewRequest("POST", "/push", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleQueryReturnsNearestFirst(t *testing.T) {
	h := newTestHandler(t)
	router := NewRouter(h)

	vectors := [][]float32{{10, 0, 0, 0}, {0, 10, 0, 0}, {0, 0, 10, 0}}
	for _, v := range vectors {
		body, _ := json.Marshal(PushRequest{Vector: v})
		req := httptest.NewRequest("POST", "/push", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != 200 {
			t.Fatalf("push: status = %d", rec.Code)
		}
	}

	qBody, _ := json.Marshal(QueryRequest{Vector: []float32{0, 10, 0, 0}, K: 1, EfSearch: 10})
	req := httptest.NewRequest("POST", "/query", bytes.NewReader(qBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("query: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(resp.Results))
	}
	if resp.Results[0].ID != 1 {
		t.Fatalf("nearest id = %d, want 1", resp.Results[0].ID)
	}
}

func TestHandleHealthReportsVectorCount(t *testing.T) {
	h := newTestHandler(t)
	router := NewRouter(h)

	for _, v := range [][]float32{{1, 0, 0, 0}, {0, 1, 0, 0}} {
		body, _ := json.Marshal(PushRequest{Vector: v})
		req := httptest.NewRequest("POST", "/push", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
	}

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.VectorCount != 2 {
		t.Fatalf("VectorCount = %d, want 2", resp.VectorCount)
	}
}

func TestHandlePushBatchAssignsOneIDPerVector(t *testing.T) {
	h := newTestHandler(t)
	router := NewRouter(h)

	body, _ := json.Marshal(PushBatchRequest{Vectors: [][]float32{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}})
	req := httptest.NewRequest("POST", "/push/batch", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp PushBatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.IDs) != 3 {
		t.Fatalf("len(IDs) = %d, want 3", len(resp.IDs))
	}
}
