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

// Option configures a new index via NewSequential / NewParallel. The
// zero value of options below is never used directly; defaultOptions
// seeds sane defaults that each Option then overrides.
type Option func(*options)

type options struct {
	efConstruction int
	mMax           int
	maxElemCount   int
	seed           uint32
	tier           SIMDTier
	workers        int
}

func defaultOptions() options {
	return options{
		efConstruction: 200,
		mMax:           16,
		maxElemCount:   10000,
		seed:           1,
		tier:           SIMDBest,
		workers:        4,
	}
}

// WithEfConstruction sets the build-time beam width (spec.md §6).
func WithEfConstruction(v int) Option {
	return func(o *options) { o.efConstruction = v }
}

// WithMMax sets the per-upper-layer neighbor cap; the base layer cap
// mMax0 is always derived as 2*mMax (spec.md §6).
func WithMMax(v int) Option {
	return func(o *options) { o.mMax = v }
}

// WithMaxElemCount sets the hard capacity of the index's connection
// arena.
func WithMaxElemCount(v int) Option {
	return func(o *options) { o.maxElemCount = v }
}

// WithSeed sets the level-generator seed. SequentialIndex uses it
// directly; ParallelIndex derives baseSeed+workerIndex+1 per worker from
// it.
func WithSeed(v uint32) Option {
	return func(o *options) { o.seed = v }
}

// WithSIMDTier pins the distance-kernel tier instead of auto-detecting
// the widest one the CPU supports.
func WithSIMDTier(t SIMDTier) Option {
	return func(o *options) { o.tier = t }
}

// WithWorkers sets the goroutine pool size for ParallelIndex.Build and
// QueryBatch; ignored by NewSequential.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// NewSequential builds a SequentialIndex from functional options,
// applying the teacher's WithM/WithEfConstruction configuration idiom to
// IndexConfig.
func NewSequential(dim int, kind SpaceKind, opts ...Option) (*SequentialIndex, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := NewIndexConfig(o.efConstruction, o.mMax, o.maxElemCount)
	if err != nil {
		return nil, err
	}
	return NewSequentialIndex(dim, kind, cfg, o.tier, o.seed)
}

// NewParallel builds a ParallelIndex from functional options.
func NewParallel(dim int, kind SpaceKind, opts ...Option) (*ParallelIndex, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := NewIndexConfig(o.efConstruction, o.mMax, o.maxElemCount)
	if err != nil {
		return nil, err
	}
	return NewParallelIndex(dim, kind, cfg, o.tier, o.workers, o.seed)
}
