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
	"errors"
	"testing"
)

func TestNewIndexConfigDerivesMMax0(t *testing.T) {
	cfg, err := NewIndexConfig(200, 16, 1000)
	if err != nil {
		t.Fatalf("NewIndexConfig: %v", err)
	}
	if cfg.MMax0 != 32 {
		t.Fatalf("MMax0 = %d, want 32", cfg.MMax0)
	}
}

func TestNewIndexConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name                             string
		efConstruction, mMax, maxElemCount int
	}{
		{"mMax too small", 10, 1, 100},
		{"efConstruction zero", 0, 16, 100},
		{"maxElemCount zero", 10, 16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndexConfig(tt.efConstruction, tt.mMax, tt.maxElemCount)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got err %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestIndexConfigGetMLMatchesLevelGenerator(t *testing.T) {
	cfg, err := NewIndexConfig(200, 16, 100)
	if err != nil {
		t.Fatalf("NewIndexConfig: %v", err)
	}
	if got, want := cfg.getML(), mLFromMMax(16); got != want {
		t.Fatalf("getML() = %v, want %v", got, want)
	}
}
