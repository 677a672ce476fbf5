// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matstack provides dense stacks of equally sized matrices
// and shaped float64 arrays with trailing-edge broadcasting.
//
// A Stack pairs an arbitrary leading "batch" shape with r×c dense
// matrices stored contiguously; individual matrices are exposed as
// gonum mat.Dense views so the full gonum toolkit (Cholesky,
// triangular solves, log-determinants) applies to each slot. It is
// the thin batching layer over gonum that batched distribution code
// builds on.
package matstack // import "github.com/aclements/go-wishart/matstack"

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// A Stack is a dense, row-major stack of r×c matrices with an
// arbitrary leading batch shape. The zero leading shape is a single
// matrix.
type Stack struct {
	shape      []int
	rows, cols int
	data       []float64
}

// NewStack returns a zero-filled Stack with the given leading shape
// and matrix dimensions. It panics if r or c is not positive or any
// shape dimension is negative.
func NewStack(shape []int, r, c int) *Stack {
	if r <= 0 || c <= 0 {
		panic(fmt.Sprintf("matstack: non-positive matrix dimensions %d×%d", r, c))
	}
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("matstack: negative dimension in shape %v", shape))
		}
	}
	sh := make([]int, len(shape))
	copy(sh, shape)
	return &Stack{
		shape: sh,
		rows:  r,
		cols:  c,
		data:  make([]float64, Size(sh)*r*c),
	}
}

// StackOf returns a Stack with an empty leading shape holding a copy
// of the single matrix m.
func StackOf(m mat.Matrix) *Stack {
	r, c := m.Dims()
	s := NewStack(nil, r, c)
	s.Slot(0).Copy(m)
	return s
}

// Shape returns a copy of the leading batch shape.
func (s *Stack) Shape() []int {
	sh := make([]int, len(s.shape))
	copy(sh, s.shape)
	return sh
}

// Dims returns the dimensions of each matrix in the stack.
func (s *Stack) Dims() (r, c int) {
	return s.rows, s.cols
}

// Len returns the number of matrices in the stack.
func (s *Stack) Len() int {
	return Size(s.shape)
}

// Slot returns the i'th matrix of the stack in row-major order over
// the leading shape. The returned matrix shares storage with the
// stack: writes through it are visible in the stack.
func (s *Stack) Slot(i int) *mat.Dense {
	sz := s.rows * s.cols
	return mat.NewDense(s.rows, s.cols, s.data[i*sz:(i+1)*sz])
}

// Clone returns a deep copy of the stack.
func (s *Stack) Clone() *Stack {
	out := NewStack(s.shape, s.rows, s.cols)
	copy(out.data, s.data)
	return out
}

// Expand returns a copy of the stack broadcast to the given leading
// shape. It fails with ErrShape if the stack's shape does not
// broadcast to shape.
func (s *Stack) Expand(shape []int) (*Stack, error) {
	ix, err := NewIndexer(shape, s.shape)
	if err != nil {
		return nil, err
	}
	out := NewStack(shape, s.rows, s.cols)
	sz := s.rows * s.cols
	for i := 0; i < out.Len(); i++ {
		j := ix.Map(i)
		copy(out.data[i*sz:(i+1)*sz], s.data[j*sz:(j+1)*sz])
	}
	return out, nil
}
