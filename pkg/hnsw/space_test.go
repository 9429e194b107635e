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

package hnsw

import (
	"math"
	"math/rand"
	"testing"
)

func randomVector(dims int, rng *rand.Rand) []float32 {
	v := make([]float32, dims)
	for i := range v {
		v[i] = rng.Float32()*2 - 1
	}
	return v
}

func TestArrayViewRowIsLiveBackingSlice(t *testing.T) {
	data := make([]float32, 12)
	view := NewArrayView(data, 4, 3)

	view.Set(1, 2, 9)
	if got := view.Get(1, 2); got != 9 {
		t.Fatalf("Get after Set: got %v, want 9", got)
	}

	row := view.Row(1)
	row[0] = 42
	if got := view.Get(1, 0); got != 42 {
		t.Fatalf("Row should share backing storage: got %v, want 42", got)
	}
}

func TestSpacePushNormalizesInAngularSpace(t *testing.T) {
	space, err := newSpace(4, Angular, 2, SIMDNone)
	if err != nil {
		t.Fatalf("newSpace: %v", err)
	}

	space.push(0, []float32{3, 4, 0, 0})
	stored := space.getData(0)

	var sumSq float64
	for _, x := range stored {
		sumSq += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(sumSq)-1) > 1e-4 {
		t.Fatalf("stored vector is not unit length: norm^2=%v", sumSq)
	}
}

func TestSpacePushCopiesVerbatimInEuclideanSpace(t *testing.T) {
	space, err := newSpace(3, Euclidean, 2, SIMDNone)
	if err != nil {
		t.Fatalf("newSpace: %v", err)
	}

	src := []float32{1, -2, 3}
	space.push(0, src)
	got := space.getData(0)
	for i := range src {
		if got[i] != src[i] {
			t.Fatalf("Euclidean push must copy verbatim: got %v, want %v", got, src)
		}
	}
}

func TestSpaceDistanceSelfIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, kind := range []SpaceKind{Euclidean, Angular} {
		space, err := newSpace(16, kind, 4, SIMDNone)
		if err != nil {
			t.Fatalf("newSpace: %v", err)
		}
		v := randomVector(16, rng)
		space.push(0, v)
		if d := space.distance(0, 0); math.Abs(float64(d)) > 1e-3 {
			t.Fatalf("kind %v: self-distance = %v, want ~0", kind, d)
		}
	}
}
