// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matstack

import (
	"errors"
	"fmt"
)

// ErrShape is returned when shapes are invalid or incompatible for
// broadcasting.
var ErrShape = errors.New("matstack: invalid or incompatible shape")

// Size returns the number of elements in shape. An empty shape has
// size 1 (a scalar).
func Size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// BroadcastShapes returns the broadcast of shapes a and b. Shapes are
// aligned at their trailing edge; each pair of dimensions must be
// equal or one of them must be 1, in which case the result takes the
// other. Missing leading dimensions are treated as 1.
func BroadcastShapes(a, b []int) ([]int, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int, n)
	for i := 1; i <= n; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db:
			out[n-i] = da
		case da == 1:
			out[n-i] = db
		case db == 1:
			out[n-i] = da
		default:
			return nil, fmt.Errorf("%w: cannot broadcast %v with %v", ErrShape, a, b)
		}
	}
	return out, nil
}

// An Indexer maps flat indices in a broadcast result shape to flat
// indices in the shape of one of the broadcast operands. Broadcast
// axes of the operand (dimensions of size 1 or missing leading
// dimensions) contribute a stride of 0, so all result indices along
// such an axis read the same operand element.
type Indexer struct {
	dims    []int
	strides []int
}

// NewIndexer returns an Indexer from shape dst to shape src. It fails
// with ErrShape if src does not broadcast to dst.
func NewIndexer(dst, src []int) (Indexer, error) {
	if len(src) > len(dst) {
		return Indexer{}, fmt.Errorf("%w: shape %v does not broadcast to %v", ErrShape, src, dst)
	}
	srcStrides := make([]int, len(src))
	st := 1
	for i := len(src) - 1; i >= 0; i-- {
		srcStrides[i] = st
		st *= src[i]
	}
	strides := make([]int, len(dst))
	off := len(dst) - len(src)
	for i := len(dst) - 1; i >= 0; i-- {
		j := i - off
		if j < 0 {
			strides[i] = 0
			continue
		}
		switch {
		case src[j] == dst[i]:
			strides[i] = srcStrides[j]
		case src[j] == 1:
			strides[i] = 0
		default:
			return Indexer{}, fmt.Errorf("%w: shape %v does not broadcast to %v", ErrShape, src, dst)
		}
	}
	dims := make([]int, len(dst))
	copy(dims, dst)
	return Indexer{dims: dims, strides: strides}, nil
}

// Map returns the flat source index corresponding to flat result
// index i.
func (ix Indexer) Map(i int) int {
	off := 0
	for k := len(ix.dims) - 1; k >= 0; k-- {
		d := ix.dims[k]
		off += (i % d) * ix.strides[k]
		i /= d
	}
	return off
}
