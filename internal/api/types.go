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

// Package api exposes pkg/hnsw's push/queryBatch operations over HTTP.
// It never exposes deletion, persistence, or filtered search: an index
// served this way is write-once-per-element, in-memory only.
package api

// PushRequest is the request body for inserting a single vector.
type PushRequest struct {
	Vector []float32 `json:"vector"`
}

// PushResponse is the response body for a successful insert.
type PushResponse struct {
	ID uint32 `json:"id"`
}

// PushBatchRequest is the request body for inserting several vectors in
// one call.
type PushBatchRequest struct {
	Vectors [][]float32 `json:"vectors"`
}

// PushBatchResponse reports the ids assigned to a batch insert, in the
// same order as the request's Vectors.
type PushBatchResponse struct {
	IDs []uint32 `json:"ids"`
}

// QueryRequest is the request body for a single k-NN query.
type QueryRequest struct {
	Vector   []float32 `json:"vector"`
	K        int       `json:"k"`
	EfSearch int       `json:"ef_search"`
}

// QueryResult is one ranked match, ascending by distance.
type QueryResult struct {
	ID       uint32  `json:"id"`
	Distance float32 `json:"distance"`
}

// QueryResponse is the response body for a k-NN query.
type QueryResponse struct {
	Results   []QueryResult `json:"results"`
	LatencyMs float64       `json:"latency_ms"`
}

// ErrorResponse is the response body for a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	VectorCount int    `json:"vector_count"`
}

// StatsResponse is the response body for GET /stats.
type StatsResponse struct {
	VectorCount int    `json:"vector_count"`
	Dimensions  int    `json:"dimensions"`
	SpaceKind   string `json:"space_kind"`
	Parallel    bool   `json:"parallel"`
}
