// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matstack

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func eqInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want []int
	}{
		{nil, nil, []int{}},
		{[]int{3}, nil, []int{3}},
		{[]int{2, 3}, []int{3}, []int{2, 3}},
		{[]int{4, 1}, []int{3}, []int{4, 3}},
		{[]int{1}, []int{5, 1}, []int{5, 1}},
		{[]int{2, 1, 3}, []int{4, 1}, []int{2, 4, 3}},
	}
	for _, test := range tests {
		got, err := BroadcastShapes(test.a, test.b)
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v) failed: %v", test.a, test.b, err)
			continue
		}
		if !eqInts(got, test.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", test.a, test.b, got, test.want)
		}
	}

	if _, err := BroadcastShapes([]int{2}, []int{3}); !errors.Is(err, ErrShape) {
		t.Errorf("BroadcastShapes({2}, {3}) = %v, want ErrShape", err)
	}
}

func TestIndexer(t *testing.T) {
	// Broadcasting {3} into {2, 3}: the source index cycles over
	// the last axis.
	ix, err := NewIndexer([]int{2, 3}, []int{3})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2, 0, 1, 2}
	for i, w := range want {
		if got := ix.Map(i); got != w {
			t.Errorf("Map(%d) = %d, want %d", i, got, w)
		}
	}

	// Broadcasting {2, 1} into {2, 3}: the source index is constant
	// over the last axis.
	ix, err = NewIndexer([]int{2, 3}, []int{2, 1})
	if err != nil {
		t.Fatal(err)
	}
	want = []int{0, 0, 0, 1, 1, 1}
	for i, w := range want {
		if got := ix.Map(i); got != w {
			t.Errorf("Map(%d) = %d, want %d", i, got, w)
		}
	}

	// A scalar source maps everything to 0.
	ix, err = NewIndexer([]int{4}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if got := ix.Map(i); got != 0 {
			t.Errorf("Map(%d) = %d, want 0", i, got)
		}
	}

	if _, err := NewIndexer([]int{2, 3}, []int{4}); !errors.Is(err, ErrShape) {
		t.Errorf("NewIndexer({2,3}, {4}) = %v, want ErrShape", err)
	}
}

func TestStackSlotSharesStorage(t *testing.T) {
	s := NewStack([]int{2}, 2, 2)
	s.Slot(1).Set(0, 1, 7)
	if got := s.Slot(1).At(0, 1); got != 7 {
		t.Errorf("Slot(1).At(0,1) = %v, want 7", got)
	}
	if got := s.Slot(0).At(0, 1); got != 0 {
		t.Errorf("Slot(0).At(0,1) = %v, want 0", got)
	}
}

func TestStackExpand(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	s := StackOf(m)
	e, err := s.Expand([]int{3})
	if err != nil {
		t.Fatal(err)
	}
	if !eqInts(e.Shape(), []int{3}) {
		t.Fatalf("expanded shape = %v, want [3]", e.Shape())
	}
	for i := 0; i < 3; i++ {
		if !mat.Equal(e.Slot(i), m) {
			t.Errorf("slot %d differs from source matrix", i)
		}
	}
	// The expansion is a copy: writing a slot does not alias the
	// source.
	e.Slot(0).Set(0, 0, 99)
	if s.Slot(0).At(0, 0) != 1 {
		t.Error("Expand aliases source storage")
	}
}

func TestFloatsExpand(t *testing.T) {
	f := NewFloats([]int{2, 1}, []float64{5, 6})
	e, err := f.Expand([]int{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{5, 5, 5, 6, 6, 6}
	for i, w := range want {
		if e.At(i) != w {
			t.Errorf("At(%d) = %v, want %v", i, e.At(i), w)
		}
	}

	if _, err := f.Expand([]int{3, 3}); !errors.Is(err, ErrShape) {
		t.Errorf("Expand to incompatible shape = %v, want ErrShape", err)
	}
}

func TestScalar(t *testing.T) {
	f := Scalar(2.5)
	if f.Len() != 1 || f.At(0) != 2.5 {
		t.Errorf("Scalar(2.5) = len %d, At(0) %v", f.Len(), f.At(0))
	}
	if len(f.Shape()) != 0 {
		t.Errorf("Scalar shape = %v, want empty", f.Shape())
	}
}
