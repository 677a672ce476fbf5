// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishart

import (
	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-wishart/matstack"
)

// ScaleTril returns the lower-triangular scale factor broadcast to
// batchShape + (p, p). The result is computed once and cached; it is
// shared, so callers must not modify it.
func (w *Wishart) ScaleTril() *matstack.Stack {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tril == nil {
		t, err := w.scale.Expand(w.batchShape)
		if err != nil {
			// The batch shape was derived by broadcasting the
			// scale shape.
			panic(err)
		}
		w.tril = t
	}
	return w.tril
}

// CovarianceMatrix returns the covariance L·Lᵗ broadcast to
// batchShape + (p, p). The result is computed once and cached; it is
// shared, so callers must not modify it.
func (w *Wishart) CovarianceMatrix() *matstack.Stack {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cov == nil {
		cov := matstack.NewStack(w.scale.Shape(), w.dim, w.dim)
		var s mat.SymDense
		for i := 0; i < w.scale.Len(); i++ {
			s.SymOuterK(1, w.scale.Slot(i))
			cov.Slot(i).Copy(&s)
		}
		c, err := cov.Expand(w.batchShape)
		if err != nil {
			panic(err)
		}
		w.cov = c
	}
	return w.cov
}

// PrecisionMatrix returns the inverse of the covariance broadcast to
// batchShape + (p, p), computed by a Cholesky-based solve against the
// identity (two triangular solves), never a generic matrix inverse.
// The result is computed once and cached; it is shared, so callers
// must not modify it.
func (w *Wishart) PrecisionMatrix() *matstack.Stack {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.prec == nil {
		prec := matstack.NewStack(w.scale.Shape(), w.dim, w.dim)
		var s mat.SymDense
		for i := 0; i < w.scale.Len(); i++ {
			ch := cholFromTril(w.scale.Slot(i))
			if err := ch.InverseTo(&s); err != nil {
				// A Condition error reports ill-conditioning;
				// the inverse is still computed.
				if _, ok := err.(mat.Condition); !ok {
					panic(err)
				}
			}
			prec.Slot(i).Copy(&s)
		}
		p, err := prec.Expand(w.batchShape)
		if err != nil {
			panic(err)
		}
		w.prec = p
	}
	return w.prec
}

// Mean returns the distribution mean df·covariance, shape
// batchShape + (p, p).
func (w *Wishart) Mean() *matstack.Stack {
	out := w.CovarianceMatrix().Clone()
	for b := 0; b < out.Len(); b++ {
		slot := out.Slot(b)
		slot.Scale(w.df.At(b), slot)
	}
	return out
}

// Variance returns the elementwise variance of each matrix entry,
// df·(cov_ij² + cov_ii·cov_jj), shape batchShape + (p, p).
func (w *Wishart) Variance() *matstack.Stack {
	cov := w.CovarianceMatrix()
	out := matstack.NewStack(w.batchShape, w.dim, w.dim)
	for b := 0; b < out.Len(); b++ {
		v := cov.Slot(b)
		dst := out.Slot(b)
		df := w.df.At(b)
		for i := 0; i < w.dim; i++ {
			for j := 0; j < w.dim; j++ {
				vij := v.At(i, j)
				dst.Set(i, j, df*(vij*vij+v.At(i, i)*v.At(j, j)))
			}
		}
	}
	return out
}

// cholFromTril returns the Cholesky decomposition whose lower factor
// is the given lower-triangular matrix.
func cholFromTril(l mat.Matrix) *mat.Cholesky {
	n, _ := l.Dims()
	u := mat.NewTriDense(n, mat.Upper, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			u.SetTri(i, j, l.At(j, i))
		}
	}
	var ch mat.Cholesky
	ch.SetFromU(u)
	return &ch
}
