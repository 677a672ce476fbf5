// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishart

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-wishart/matstack"
)

// buildChiDF returns the per-diagonal-slot chi-squared degrees of
// freedom used by the Bartlett decomposition, shape
// batchShape + (p,): slot i of batch element b holds df_b - i.
func buildChiDF(df *matstack.Floats, p int) *matstack.Floats {
	out := matstack.NewFloats(append(df.Shape(), p), nil)
	data := out.Data()
	for b := 0; b < df.Len(); b++ {
		v := df.At(b)
		for i := 0; i < p; i++ {
			data[b*p+i] = v - float64(i)
		}
	}
	return out
}

// bartlettSlot draws one sample for batch element b into dst using
// the Bartlett decomposition: a lower-triangular factor A with
// A_ii = sqrt(Chi²(df-i)) and iid standard-normal entries strictly
// below the diagonal satisfies L·A·Aᵗ·Lᵗ ~ Wishart(df, L·Lᵗ). dst is
// exactly symmetric on return.
func (w *Wishart) bartlettSlot(b int, a, chol, dst *mat.Dense, sym *mat.SymDense) {
	p := w.dim
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: w.src}
	a.Zero()
	for i := 0; i < p; i++ {
		chi2 := distuv.ChiSquared{K: w.chiDF.At(b*p + i), Src: w.src}
		a.Set(i, i, math.Sqrt(chi2.Rand()))
		for j := 0; j < i; j++ {
			a.Set(i, j, norm.Rand())
		}
	}
	chol.Mul(w.scale.Slot(w.scaleIdx.Map(b)), a)
	sym.SymOuterK(1, chol)
	dst.Copy(sym)
}

// RSample draws matrices from the distribution. The result has shape
// drawShape + batchShape + (p, p); with no arguments it holds one
// draw per batch element.
//
// The Bartlett sampling algorithm can return numerically singular
// samples, especially for degrees of freedom close to p-1. Each drawn
// slot is tested for positive definiteness and singular slots — only
// those slots, not the whole batch — are redrawn up to the configured
// maximum number of correction attempts (WithMaxTryCorrection). A
// slot still singular after the final attempt is returned as-is, and
// a single warning is emitted if any singular slot was seen; LogProb
// of such a sample is -Inf, not an error. Under WithStaticRetry the
// correction loop always runs the full number of iterations, drawing
// full-shape candidates and selecting per slot.
//
// RSample is the reparameterized sampling path; in this
// implementation Sample is the identical algorithm.
func (w *Wishart) RSample(drawShape ...int) *matstack.Stack {
	shape := make([]int, 0, len(drawShape)+len(w.batchShape))
	shape = append(shape, drawShape...)
	shape = append(shape, w.batchShape...)
	out := matstack.NewStack(shape, w.dim, w.dim)

	n := out.Len()
	nbatch := matstack.Size(w.batchShape)
	a := mat.NewDense(w.dim, w.dim, nil)
	chol := mat.NewDense(w.dim, w.dim, nil)
	sym := mat.NewSymDense(w.dim, nil)

	singular := make([]bool, n)
	nsingular := 0
	for s := 0; s < n; s++ {
		slot := out.Slot(s)
		w.bartlettSlot(s%nbatch, a, chol, slot, sym)
		if !PositiveDefinite.Check(slot) {
			singular[s] = true
			nsingular++
		}
	}
	if nsingular > 0 {
		w.warnf("wishart: singular sample detected")
	}

	tmp := mat.NewDense(w.dim, w.dim, nil)
	for try := 0; try < w.maxTry; try++ {
		if nsingular == 0 && !w.static {
			break
		}
		for s := 0; s < n; s++ {
			if !w.static && !singular[s] {
				continue
			}
			// In static mode a candidate is drawn for every slot
			// each iteration; non-singular slots keep their value.
			w.bartlettSlot(s%nbatch, a, chol, tmp, sym)
			if !singular[s] {
				continue
			}
			out.Slot(s).Copy(tmp)
			if PositiveDefinite.Check(tmp) {
				singular[s] = false
				nsingular--
			}
		}
	}
	return out
}

// Sample draws matrices from the distribution; see RSample. The two
// methods run the same algorithm and exist so that callers written
// against the reparameterized/non-reparameterized sampling split can
// use either name.
func (w *Wishart) Sample(drawShape ...int) *matstack.Stack {
	return w.RSample(drawShape...)
}
