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
	"bytes"
	"strings"
	"testing"
)

func TestParseEfSearchValuesParsesCommaSeparatedList(t *testing.T) {
	got, err := parseEfSearchValues("10, 50,100")
	if err != nil {
		t.Fatalf("parseEfSearchValues: %v", err)
	}
	want := []int{10, 50, 100}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseEfSearchValuesRejectsNonInteger(t *testing.T) {
	if _, err := parseEfSearchValues("10,abc"); err == nil {
		t.Fatal("expected error for non-integer efSearch value")
	}
}

func TestBuildCommandRunsEndToEnd(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"build",
		"--dim", "4",
		"--k", "2",
		"--train-count", "50",
		"--test-count", "5",
		"--ef-search", "5,10",
		"--runs", "1",
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(out.String(), "5") {
		t.Fatalf("output missing expected efSearch column:\n%s", out.String())
	}
}
