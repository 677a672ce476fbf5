// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishart

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// A Constraint describes the support of a distribution. It can be
// used as an external validation hook for values before they are
// passed to LogProb.
type Constraint interface {
	// Check reports whether m satisfies the constraint.
	Check(m mat.Matrix) bool
}

// PositiveDefinite is the support of the Wishart distribution:
// square matrices that are symmetric (within a small relative
// tolerance) and strictly positive-definite. Definiteness is tested
// by attempting a Cholesky factorization.
var PositiveDefinite Constraint = positiveDefinite{}

type positiveDefinite struct{}

// symTol is the relative tolerance for the symmetry test.
const symTol = 1e-8

func (positiveDefinite) Check(m mat.Matrix) bool {
	r, c := m.Dims()
	if r != c || r == 0 {
		return false
	}
	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j <= i; j++ {
			a, b := m.At(i, j), m.At(j, i)
			scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
			if math.Abs(a-b) > symTol*scale {
				return false
			}
			sym.SetSym(i, j, (a+b)/2)
		}
	}
	var ch mat.Cholesky
	return ch.Factorize(sym)
}
