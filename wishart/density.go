// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishart

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-wishart/mathx"
	"github.com/aclements/go-wishart/matstack"
)

// LogProb returns the log of the probability density evaluated at
// each slot of value. value must hold p×p matrices; its leading shape
// broadcasts against the batch shape, and the result has the
// broadcast shape.
//
// When validation is enabled, a value outside the support (not
// symmetric positive-definite) fails with ErrInvalidSample. With
// validation disabled such values yield -Inf, the convention for
// singular samples returned by RSample after failed correction.
func (w *Wishart) LogProb(value *matstack.Stack) (*matstack.Floats, error) {
	if value == nil {
		return nil, fmt.Errorf("%w: nil value", ErrInvalidArgument)
	}
	if r, c := value.Dims(); r != w.dim || c != w.dim {
		return nil, fmt.Errorf("%w: value is %d×%d, want %d×%d", ErrInvalidArgument, r, c, w.dim, w.dim)
	}
	shape, err := matstack.BroadcastShapes(value.Shape(), w.batchShape)
	if err != nil {
		return nil, fmt.Errorf("%w: value shape %v does not broadcast against batch shape %v", ErrInvalidArgument, value.Shape(), w.batchShape)
	}
	vIdx, err := matstack.NewIndexer(shape, value.Shape())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	bIdx, err := matstack.NewIndexer(shape, w.batchShape)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	p := float64(w.dim)
	out := matstack.NewFloats(shape, nil)
	data := out.Data()

	// Per-scale-slot quantities are reused across result slots.
	chols := make([]*mat.Cholesky, w.scale.Len())
	logDiags := make([]float64, w.scale.Len())
	var solved mat.Dense
	sym := mat.NewSymDense(w.dim, nil)
	var chv mat.Cholesky

	for i := 0; i < out.Len(); i++ {
		b := bIdx.Map(i)
		v := value.Slot(vIdx.Map(i))
		df := w.df.At(b)

		if w.validate && !PositiveDefinite.Check(v) {
			return nil, fmt.Errorf("%w: value slot %d is not symmetric positive-definite", ErrInvalidSample, vIdx.Map(i))
		}

		si := w.scaleIdx.Map(b)
		if chols[si] == nil {
			scale := w.scale.Slot(si)
			chols[si] = cholFromTril(scale)
			for k := 0; k < w.dim; k++ {
				logDiags[si] += math.Log(scale.At(k, k))
			}
		}

		mvlg, err := mathx.MvLgamma(df/2, w.dim)
		if err != nil {
			return nil, err
		}

		symFromDense(sym, v)
		if !chv.Factorize(sym) {
			// Density is zero outside the support.
			data[i] = math.Inf(-1)
			continue
		}

		// trace(Σ⁻¹·value) via a Cholesky solve of value against
		// the scale factor.
		if err := chols[si].SolveTo(&solved, v); err != nil {
			if _, ok := err.(mat.Condition); !ok {
				return nil, fmt.Errorf("%w: %v", ErrNotPositiveDefinite, err)
			}
		}
		trace := 0.0
		for k := 0; k < w.dim; k++ {
			trace += solved.At(k, k)
		}

		data[i] = -df*p*math.Ln2/2 -
			df*logDiags[si] -
			mvlg +
			(df-p-1)/2*chv.LogDet() -
			trace/2
	}
	return out, nil
}

// Entropy returns the differential entropy of each batch element,
// shape batchShape.
func (w *Wishart) Entropy() (*matstack.Floats, error) {
	p := float64(w.dim)
	out := matstack.NewFloats(w.batchShape, nil)
	data := out.Data()
	logDiags := make([]float64, w.scale.Len())
	seen := make([]bool, w.scale.Len())
	for b := 0; b < out.Len(); b++ {
		df := w.df.At(b)
		si := w.scaleIdx.Map(b)
		if !seen[si] {
			scale := w.scale.Slot(si)
			for k := 0; k < w.dim; k++ {
				logDiags[si] += math.Log(scale.At(k, k))
			}
			seen[si] = true
		}
		mvlg, err := mathx.MvLgamma(df/2, w.dim)
		if err != nil {
			return nil, err
		}
		mvdg, err := mathx.MvDigamma(df/2, w.dim)
		if err != nil {
			return nil, err
		}
		data[b] = (p+1)*logDiags[si] +
			p*(p+1)*math.Ln2/2 +
			mvlg -
			(df-p-1)/2*mvdg +
			df*p/2
	}
	return out, nil
}

// NaturalParameters returns the exponential-family natural parameters
// of the distribution: η₁ = (df-p-1)/2 with shape batchShape, and
// η₂ = -precision/2 with shape batchShape + (p, p).
func (w *Wishart) NaturalParameters() (*matstack.Floats, *matstack.Stack) {
	eta1 := matstack.NewFloats(w.batchShape, nil)
	data := eta1.Data()
	for b := range data {
		data[b] = (w.df.At(b) - float64(w.dim) - 1) / 2
	}
	eta2 := w.PrecisionMatrix().Clone()
	for b := 0; b < eta2.Len(); b++ {
		slot := eta2.Slot(b)
		slot.Scale(-0.5, slot)
	}
	return eta1, eta2
}

// LogNormalizer evaluates the derivative-consistent log-normalizer of
// the natural parameterization,
//
//	A(η) = η₁·(-log det(-2·η₂) + p·log 2) + ψ_p(η₁)
//
// with the matrix dimension p taken from eta2. This is the quantity
// whose gradient in η recovers the expected sufficient statistics; it
// is not the log-partition term of the density itself, which callers
// should obtain from LogProb's normalizing terms instead.
//
// It fails with ErrNotPositiveDefinite if -2·η₂ is not positive
// definite and with mathx.ErrDomain if η₁ ≤ (p-1)/2 for any element.
func LogNormalizer(eta1 *matstack.Floats, eta2 *matstack.Stack) (*matstack.Floats, error) {
	if eta1 == nil || eta2 == nil {
		return nil, fmt.Errorf("%w: nil natural parameter", ErrInvalidArgument)
	}
	p, c := eta2.Dims()
	if p != c {
		return nil, fmt.Errorf("%w: η₂ is %d×%d, want square", ErrInvalidArgument, p, c)
	}
	shape, err := matstack.BroadcastShapes(eta1.Shape(), eta2.Shape())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	ix1, err := matstack.NewIndexer(shape, eta1.Shape())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	ix2, err := matstack.NewIndexer(shape, eta2.Shape())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	out := matstack.NewFloats(shape, nil)
	data := out.Data()
	prec := mat.NewDense(p, p, nil)
	sym := mat.NewSymDense(p, nil)
	var ch mat.Cholesky
	for i := 0; i < out.Len(); i++ {
		x := eta1.At(ix1.Map(i))
		prec.Scale(-2, eta2.Slot(ix2.Map(i)))
		symFromDense(sym, prec)
		if !ch.Factorize(sym) {
			return nil, fmt.Errorf("%w: -2·η₂ slot %d is not positive definite", ErrNotPositiveDefinite, ix2.Map(i))
		}
		mvdg, err := mathx.MvDigamma(x, p)
		if err != nil {
			return nil, err
		}
		data[i] = x*(-ch.LogDet()+float64(p)*math.Ln2) + mvdg
	}
	return out, nil
}
