// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishart

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-wishart/matstack"
)

type paramKind int

const (
	paramNone paramKind = iota
	paramCovariance
	paramPrecision
	paramScaleTril
)

func (k paramKind) String() string {
	switch k {
	case paramCovariance:
		return "covariance"
	case paramPrecision:
		return "precision"
	case paramScaleTril:
		return "scaleTril"
	}
	return "none"
}

// A Param supplies exactly one of the three matrix parameterizations
// of a Wishart distribution to New. Construct one with Covariance,
// Precision or ScaleTril. The zero Param supplies nothing and is
// rejected by New.
type Param struct {
	kind paramKind
	m    *matstack.Stack
}

// Covariance parameterizes the distribution by its positive-definite
// covariance matrix (or a batch of them). The canonical scale factor
// is recovered by Cholesky factorization at construction.
func Covariance(m *matstack.Stack) Param {
	return Param{paramCovariance, m}
}

// Precision parameterizes the distribution by its positive-definite
// precision matrix, the inverse of the covariance. The scale factor
// is recovered by a Cholesky factorization of the precision followed
// by a triangular back-substitution against the identity; no dense
// inverse is ever formed.
func Precision(m *matstack.Stack) Param {
	return Param{paramPrecision, m}
}

// ScaleTril parameterizes the distribution directly by the
// lower-triangular scale factor L with positive diagonal such that
// L·Lᵗ is the covariance. This is the most efficient
// parameterization: all internal computation uses the scale factor,
// so the input is used as-is.
func ScaleTril(m *matstack.Stack) Param {
	return Param{paramScaleTril, m}
}

// resolve converts the supplied parameterization into the canonical
// lower-triangular scale factor. The returned stack owns its storage.
func (p Param) resolve(validate bool) (*matstack.Stack, error) {
	switch p.kind {
	case paramScaleTril:
		if validate {
			if err := checkLowerTri(p.m); err != nil {
				return nil, err
			}
		}
		return p.m.Clone(), nil
	case paramCovariance:
		return covarianceToScaleTril(p.m)
	case paramPrecision:
		return precisionToScaleTril(p.m)
	}
	panic("wishart: unresolvable parameterization")
}

// checkLowerTri verifies that every slot of m is lower-triangular
// with strictly positive diagonal.
func checkLowerTri(m *matstack.Stack) error {
	n, _ := m.Dims()
	for s := 0; s < m.Len(); s++ {
		slot := m.Slot(s)
		for i := 0; i < n; i++ {
			if slot.At(i, i) <= 0 {
				return fmt.Errorf("%w: scaleTril diagonal entry (%d,%d) is not positive", ErrInvalidArgument, i, i)
			}
			for j := i + 1; j < n; j++ {
				if slot.At(i, j) != 0 {
					return fmt.Errorf("%w: scaleTril entry (%d,%d) above the diagonal is nonzero", ErrInvalidArgument, i, j)
				}
			}
		}
	}
	return nil
}

// covarianceToScaleTril Cholesky-factorizes each covariance slot.
func covarianceToScaleTril(m *matstack.Stack) (*matstack.Stack, error) {
	n, _ := m.Dims()
	out := matstack.NewStack(m.Shape(), n, n)
	sym := mat.NewSymDense(n, nil)
	tri := mat.NewTriDense(n, mat.Lower, nil)
	var ch mat.Cholesky
	for s := 0; s < m.Len(); s++ {
		symFromDense(sym, m.Slot(s))
		if !ch.Factorize(sym) {
			return nil, fmt.Errorf("%w: Cholesky factorization of covariance slot %d failed", ErrNotPositiveDefinite, s)
		}
		ch.LTo(tri)
		out.Slot(s).Copy(tri)
	}
	return out, nil
}

// precisionToScaleTril recovers the lower Cholesky factor of the
// covariance from each precision slot without forming the inverse:
// reverse both axes of the precision, factorize, flip-transpose the
// factor (which is again lower-triangular) and back-substitute it
// against the identity.
func precisionToScaleTril(m *matstack.Stack) (*matstack.Stack, error) {
	n, _ := m.Dims()
	out := matstack.NewStack(m.Shape(), n, n)
	flip := mat.NewSymDense(n, nil)
	lf := mat.NewTriDense(n, mat.Lower, nil)
	linv := mat.NewTriDense(n, mat.Lower, nil)
	eye := identity(n)
	var ch mat.Cholesky
	var l mat.Dense
	for s := 0; s < m.Len(); s++ {
		slot := m.Slot(s)
		// The axis-reversed precision is symmetric whenever the
		// precision is.
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				flip.SetSym(i, j, (slot.At(n-1-i, n-1-j)+slot.At(n-1-j, n-1-i))/2)
			}
		}
		if !ch.Factorize(flip) {
			return nil, fmt.Errorf("%w: Cholesky factorization of precision slot %d failed", ErrNotPositiveDefinite, s)
		}
		ch.LTo(lf)
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				linv.SetTri(i, j, lf.At(n-1-j, n-1-i))
			}
		}
		// linv · L = I, solved by triangular back-substitution.
		if err := l.Solve(linv, eye); err != nil {
			return nil, fmt.Errorf("%w: precision slot %d is numerically singular", ErrNotPositiveDefinite, s)
		}
		lowerFromDense(out.Slot(s), &l)
	}
	return out, nil
}

// symFromDense copies the symmetric part of d into sym.
func symFromDense(sym *mat.SymDense, d *mat.Dense) {
	n, _ := d.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sym.SetSym(i, j, (d.At(i, j)+d.At(j, i))/2)
		}
	}
}

// lowerFromDense copies the lower triangle of src into dst, zeroing
// the strict upper triangle.
func lowerFromDense(dst, src *mat.Dense) {
	n, _ := src.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j <= i {
				dst.Set(i, j, src.At(i, j))
			} else {
				dst.Set(i, j, 0)
			}
		}
	}
}

// identity returns the n×n identity matrix.
func identity(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}
