// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishart

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-wishart/matstack"
)

func TestMean(t *testing.T) {
	// Wishart(df=2, scale=I(2)) has mean 2·I.
	w := identityWishart(t, 2, 2)
	want := mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	aeqMat(t, want, w.Mean().Slot(0), 1e-12)
}

func TestVariance(t *testing.T) {
	// var(x_ij) = df·(Σ_ij² + Σ_ii·Σ_jj) for Σ = testCovariance,
	// df = 3.
	w, err := New(matstack.Scalar(3), Covariance(matstack.StackOf(testCovariance)))
	if err != nil {
		t.Fatal(err)
	}
	want := mat.NewDense(2, 2, []float64{
		3 * (16 + 16), 3 * (4 + 12),
		3 * (4 + 12), 3 * (9 + 9),
	})
	aeqMat(t, want, w.Variance().Slot(0), 1e-10)
}

func TestShapes(t *testing.T) {
	w := identityWishart(t, 3, 5)
	if w.Dim() != 3 {
		t.Errorf("Dim = %d, want 3", w.Dim())
	}
	if !eqShape(w.EventShape(), []int{3, 3}) {
		t.Errorf("EventShape = %v, want [3 3]", w.EventShape())
	}
	if !eqShape(w.BatchShape(), []int{}) {
		t.Errorf("BatchShape = %v, want []", w.BatchShape())
	}

	// df with leading shape broadcasts against a single parameter
	// matrix.
	df := matstack.NewFloats([]int{4}, []float64{3, 4, 5, 6})
	wb, err := New(df, Covariance(matstack.StackOf(testCovariance)))
	if err != nil {
		t.Fatal(err)
	}
	if !eqShape(wb.BatchShape(), []int{4}) {
		t.Errorf("BatchShape = %v, want [4]", wb.BatchShape())
	}
	if wb.DF().Len() != 4 || wb.DF().At(2) != 5 {
		t.Errorf("broadcast df = %v", wb.DF().Data())
	}
}

func TestCacheIdempotence(t *testing.T) {
	w, err := New(matstack.Scalar(4), Covariance(matstack.StackOf(testCovariance)))
	if err != nil {
		t.Fatal(err)
	}
	c1 := w.CovarianceMatrix()
	c2 := w.CovarianceMatrix()
	if c1 != c2 {
		t.Error("CovarianceMatrix recomputed on second read")
	}
	p1 := w.PrecisionMatrix()
	p2 := w.PrecisionMatrix()
	if p1 != p2 {
		t.Error("PrecisionMatrix recomputed on second read")
	}
	s1 := w.ScaleTril()
	s2 := w.ScaleTril()
	if s1 != s2 {
		t.Error("ScaleTril recomputed on second read")
	}
}

func TestExpand(t *testing.T) {
	w, err := New(matstack.Scalar(3), Covariance(matstack.StackOf(testCovariance)))
	if err != nil {
		t.Fatal(err)
	}
	// Materialize the covariance cache before expanding; the clone
	// must carry it over by broadcasting.
	cov := w.CovarianceMatrix()

	we, err := w.Expand([]int{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if !eqShape(we.BatchShape(), []int{2, 3}) {
		t.Fatalf("expanded BatchShape = %v, want [2 3]", we.BatchShape())
	}
	if we.DF().Len() != 6 {
		t.Fatalf("expanded df has %d elements, want 6", we.DF().Len())
	}
	for b := 0; b < 6; b++ {
		if we.DF().At(b) != 3 {
			t.Errorf("expanded df[%d] = %v, want 3", b, we.DF().At(b))
		}
		aeqMat(t, cov.Slot(0), we.CovarianceMatrix().Slot(b), 1e-12)
		aeqMat(t, w.ScaleTril().Slot(0), we.ScaleTril().Slot(b), 1e-12)
	}

	// The source is unchanged.
	if !eqShape(w.BatchShape(), []int{}) {
		t.Errorf("source BatchShape changed to %v", w.BatchShape())
	}
	if w.DF().Len() != 1 {
		t.Errorf("source df changed: %v", w.DF().Data())
	}

	// Shrinking is not a broadcast.
	if _, err := we.Expand([]int{3}); err == nil {
		t.Error("Expand to a smaller shape succeeded")
	}
}

func TestSupport(t *testing.T) {
	w := identityWishart(t, 2, 3)
	if !w.Support().Check(testCovariance) {
		t.Error("Support rejected a PD matrix")
	}
	if w.Support().Check(mat.NewDense(2, 2, []float64{1, 2, 2, 1})) {
		t.Error("Support accepted an indefinite matrix")
	}
	if w.Support().Check(mat.NewDense(2, 2, []float64{1, 0.5, 0, 1})) {
		t.Error("Support accepted an asymmetric matrix")
	}
	// A singular matrix is on the boundary, outside the support.
	if w.Support().Check(mat.NewDense(2, 2, []float64{1, 1, 1, 1})) {
		t.Error("Support accepted a singular matrix")
	}
}
