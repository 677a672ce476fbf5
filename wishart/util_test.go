// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishart

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-wishart/matstack"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// aeqMat compares matrices entry-wise within tol.
func aeqMat(t *testing.T, want, got mat.Matrix, tol float64) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	if wr != gr || wc != gc {
		t.Fatalf("dimensions %d×%d, want %d×%d", gr, gc, wr, wc)
	}
	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			if math.Abs(want.At(i, j)-got.At(i, j)) > tol {
				t.Fatalf("got:\n%.6g\nwant:\n%.6g", mat.Formatted(got), mat.Formatted(want))
			}
		}
	}
}

func eqShape(a, b []int) bool {
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

// identityWishart returns a Wishart with scale factor I(p), the given
// df, and warnings silenced.
func identityWishart(t *testing.T, p int, df float64, opts ...Option) *Wishart {
	t.Helper()
	eye := mat.NewDense(p, p, nil)
	for i := 0; i < p; i++ {
		eye.Set(i, i, 1)
	}
	opts = append([]Option{WithWarningHandler(nil)}, opts...)
	w, err := New(matstack.Scalar(df), ScaleTril(matstack.StackOf(eye)), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

// testCovariance is a well-conditioned SPD matrix used throughout the
// tests, with precision testPrecision = testCovariance⁻¹.
var (
	testCovariance = mat.NewDense(2, 2, []float64{4, 2, 2, 3})
	testPrecision  = mat.NewDense(2, 2, []float64{3.0 / 8, -1.0 / 4, -1.0 / 4, 1.0 / 2})
)
