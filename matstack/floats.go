// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matstack

import "fmt"

// A Floats is a shaped array of float64 values stored in row-major
// order. The zero shape is a scalar.
type Floats struct {
	shape []int
	data  []float64
}

// NewFloats returns a Floats with the given shape. If data is nil, a
// zero-filled array is allocated; otherwise data is used as backing
// storage and must have exactly Size(shape) elements.
func NewFloats(shape []int, data []float64) *Floats {
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("matstack: negative dimension in shape %v", shape))
		}
	}
	sh := make([]int, len(shape))
	copy(sh, shape)
	n := Size(sh)
	if data == nil {
		data = make([]float64, n)
	} else if len(data) != n {
		panic(fmt.Sprintf("matstack: %d values for shape %v (want %d)", len(data), shape, n))
	}
	return &Floats{shape: sh, data: data}
}

// Scalar returns a Floats with an empty shape holding the single
// value v.
func Scalar(v float64) *Floats {
	return NewFloats(nil, []float64{v})
}

// Shape returns a copy of the shape.
func (f *Floats) Shape() []int {
	sh := make([]int, len(f.shape))
	copy(sh, f.shape)
	return sh
}

// Len returns the number of elements.
func (f *Floats) Len() int {
	return Size(f.shape)
}

// At returns the i'th element in row-major order.
func (f *Floats) At(i int) float64 {
	return f.data[i]
}

// Data returns the backing storage of f. Writes to the returned slice
// are visible in f.
func (f *Floats) Data() []float64 {
	return f.data
}

// Clone returns a deep copy of f.
func (f *Floats) Clone() *Floats {
	data := make([]float64, len(f.data))
	copy(data, f.data)
	return NewFloats(f.shape, data)
}

// Expand returns a copy of f broadcast to the given shape. It fails
// with ErrShape if f's shape does not broadcast to shape.
func (f *Floats) Expand(shape []int) (*Floats, error) {
	ix, err := NewIndexer(shape, f.shape)
	if err != nil {
		return nil, err
	}
	out := NewFloats(shape, nil)
	for i := range out.data {
		out.data[i] = f.data[ix.Map(i)]
	}
	return out, nil
}
