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
)

// levelGenerator draws layer assignments from a geometric-like
// distribution with parameter mL = 1/ln(mMax) (spec.md §4.6). Each
// parallel insert worker owns its own generator, seeded as
// baseSeed + workerIndex + 1, so per-worker streams are reproducible but
// independent (spec.md §4.6).
type levelGenerator struct {
	rng *rand.Rand
	mL  float64
}

func newLevelGenerator(mL float64, seed uint32) *levelGenerator {
	return &levelGenerator{rng: rand.New(rand.NewSource(int64(seed))), mL: mL}
}

// nextLevel returns floor(-ln(U) * mL) for U uniform in (0, 1].
func (g *levelGenerator) nextLevel() uint32 {
	u := g.rng.Float64()
	for u == 0 {
		u = g.rng.Float64()
	}
	return uint32(math.Floor(-math.Log(u) * g.mL))
}

// mLFromMMax computes the level generator's distribution parameter from
// the per-upper-layer neighbor cap.
func mLFromMMax(mMax int) float64 {
	return 1 / math.Log(float64(mMax))
}
