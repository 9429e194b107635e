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

import "fmt"

// IndexConfig holds the tunables shared by SequentialIndex and
// ParallelIndex (spec.md §6).
//
// Parameter tuning guide, carried from the teacher's own HNSW notes:
//
//   - MMax (connections per upper layer): higher = better recall, more
//     memory, slower construction. Recommended 12-48; mMax0 is fixed at
//     2*MMax for the base layer, which is denser because most elements
//     only ever live there.
//   - EfConstruction (build-time beam width): recommended >= 2*MMax;
//     higher improves graph quality at the cost of build time.
//   - MaxElemCount: hard capacity: push beyond it fails with
//     ErrCapacityExceeded rather than growing the arena, because the
//     base-layer connection arena is allocated up front.
type IndexConfig struct {
	EfConstruction int
	MMax           int
	MMax0          int
	MaxElemCount   int
}

// NewIndexConfig builds an IndexConfig from efConstruction, mMax and
// maxElemCount, deriving mMax0 = 2*mMax per spec.md §6.
func NewIndexConfig(efConstruction, mMax, maxElemCount int) (IndexConfig, error) {
	cfg := IndexConfig{
		EfConstruction: efConstruction,
		MMax:           mMax,
		MMax0:          mMax * 2,
		MaxElemCount:   maxElemCount,
	}
	if err := cfg.validate(); err != nil {
		return IndexConfig{}, err
	}
	return cfg, nil
}

func (c IndexConfig) validate() error {
	if c.MMax < 2 {
		return fmt.Errorf("%w: mMax must be >= 2, got %d", ErrInvalidConfig, c.MMax)
	}
	if c.EfConstruction < 1 {
		return fmt.Errorf("%w: efConstruction must be >= 1, got %d", ErrInvalidConfig, c.EfConstruction)
	}
	if c.MaxElemCount < 1 {
		return fmt.Errorf("%w: maxElemCount must be >= 1, got %d", ErrInvalidConfig, c.MaxElemCount)
	}
	return nil
}

// getML returns the level generator's distribution parameter,
// 1/ln(mMax).
func (c IndexConfig) getML() float64 {
	return mLFromMMax(c.MMax)
}
