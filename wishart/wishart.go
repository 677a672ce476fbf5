// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishart

import (
	"fmt"
	"log"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/aclements/go-wishart/matstack"
)

// Default retry bounds for singular-sample correction. See RSample.
const (
	defaultMaxTryCorrection       = 10
	defaultMaxTryCorrectionStatic = 3
)

// A Wishart is a Wishart distribution over p×p symmetric
// positive-definite matrices. It is immutable after construction;
// all methods are safe for concurrent use.
type Wishart struct {
	dim        int
	batchShape []int
	df         *matstack.Floats // broadcast to batchShape
	scale      *matstack.Stack  // unbroadcast canonical lower-triangular factor
	scaleIdx   matstack.Indexer // batchShape → scale shape
	chiDF      *matstack.Floats // batchShape + (p,)

	src      rand.Source
	maxTry   int
	static   bool
	validate bool
	warnf    func(format string, args ...interface{})

	// Lazily materialized derived matrices, broadcast to
	// batchShape. Guarded by mu; computed at most once.
	mu   sync.Mutex
	tril *matstack.Stack
	cov  *matstack.Stack
	prec *matstack.Stack
}

type config struct {
	src      rand.Source
	maxTry   int // -1 = unset
	static   bool
	validate bool
	warnf    func(format string, args ...interface{})
}

// An Option configures a Wishart distribution at construction.
type Option func(*config)

// WithSource sets the random source used by Sample and RSample. The
// default is the shared global source of golang.org/x/exp/rand.
func WithSource(src rand.Source) Option {
	return func(c *config) { c.src = src }
}

// WithMaxTryCorrection sets the maximum number of redraw attempts for
// singular samples. n = 0 disables correction: raw draws are returned
// even if singular. The default is 10, or 3 under WithStaticRetry.
// It panics if n is negative.
func WithMaxTryCorrection(n int) Option {
	if n < 0 {
		panic("wishart: negative max try correction")
	}
	return func(c *config) { c.maxTry = n }
}

// WithStaticRetry makes the sampler's singular-sample correction loop
// run a fixed number of iterations with full-shape redraws and
// per-slot selection, instead of exiting early and redrawing only the
// slots still singular. The two forms produce samples with identical
// distribution; the static form is the shape-stable variant required
// when every draw must follow a fixed computation schedule.
func WithStaticRetry() Option {
	return func(c *config) { c.static = true }
}

// WithoutValidation disables argument and support validation.
// Validation is enabled by default; without it, LogProb returns -Inf
// for values outside the support instead of ErrInvalidSample, and
// ScaleTril inputs are trusted to be lower-triangular.
func WithoutValidation() Option {
	return func(c *config) { c.validate = false }
}

// WithWarningHandler sets the destination for non-fatal warnings (low
// degrees of freedom at construction, singular samples during
// drawing). The default handler writes to the standard logger. A nil
// handler silences warnings.
func WithWarningHandler(f func(format string, args ...interface{})) Option {
	return func(c *config) {
		if f == nil {
			f = func(string, ...interface{}) {}
		}
		c.warnf = f
	}
}

// New constructs a Wishart distribution with the given degrees of
// freedom and exactly one matrix parameterization. df must be a
// scalar or an array whose shape broadcasts against the parameter's
// leading batch shape; every element must be strictly greater than
// p-1, where p is the matrix dimension.
//
// Degrees of freedom between p-1 and p are legal but draw singular
// samples with high probability; a non-fatal warning is emitted for
// them.
func New(df *matstack.Floats, param Param, opts ...Option) (*Wishart, error) {
	cfg := config{
		maxTry:   -1,
		validate: true,
		warnf:    log.Printf,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxTry < 0 {
		if cfg.static {
			cfg.maxTry = defaultMaxTryCorrectionStatic
		} else {
			cfg.maxTry = defaultMaxTryCorrection
		}
	}

	if param.kind == paramNone || param.m == nil {
		return nil, fmt.Errorf("%w: exactly one of covariance, precision or scaleTril must be supplied", ErrInvalidArgument)
	}
	r, c := param.m.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %s parameter is %d×%d, want square", ErrInvalidArgument, param.kind, r, c)
	}
	p := r
	if df == nil {
		return nil, fmt.Errorf("%w: degrees of freedom not supplied", ErrInvalidArgument)
	}

	batchShape, err := matstack.BroadcastShapes(df.Shape(), param.m.Shape())
	if err != nil {
		return nil, fmt.Errorf("%w: df shape %v does not broadcast against parameter shape %v", ErrInvalidArgument, df.Shape(), param.m.Shape())
	}
	dfb, err := df.Expand(batchShape)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	lowDF := false
	for _, v := range dfb.Data() {
		if v <= float64(p-1) {
			return nil, fmt.Errorf("%w: df=%v must be greater than dimension-1=%d", ErrInvalidArgument, v, p-1)
		}
		if v < float64(p) {
			lowDF = true
		}
	}
	if lowDF {
		cfg.warnf("wishart: low df values detected; singular samples are highly likely for %d < df < %d", p-1, p)
	}

	scale, err := param.resolve(cfg.validate)
	if err != nil {
		return nil, err
	}
	scaleIdx, err := matstack.NewIndexer(batchShape, scale.Shape())
	if err != nil {
		// batchShape was derived by broadcasting the scale shape.
		panic(err)
	}

	return &Wishart{
		dim:        p,
		batchShape: batchShape,
		df:         dfb,
		scale:      scale,
		scaleIdx:   scaleIdx,
		chiDF:      buildChiDF(dfb, p),
		src:        cfg.src,
		maxTry:     cfg.maxTry,
		static:     cfg.static,
		validate:   cfg.validate,
		warnf:      cfg.warnf,
	}, nil
}

// Dim returns the matrix dimension p.
func (w *Wishart) Dim() int {
	return w.dim
}

// BatchShape returns the distribution's batch shape, the broadcast of
// the degrees-of-freedom shape against the parameter's leading shape.
func (w *Wishart) BatchShape() []int {
	sh := make([]int, len(w.batchShape))
	copy(sh, w.batchShape)
	return sh
}

// EventShape returns the shape of a single event, always {p, p}.
func (w *Wishart) EventShape() []int {
	return []int{w.dim, w.dim}
}

// DF returns the degrees of freedom broadcast to the batch shape. The
// returned array is shared; callers must not modify it.
func (w *Wishart) DF() *matstack.Floats {
	return w.df
}

// Support returns the constraint describing the distribution's
// support: symmetric positive-definite matrices.
func (w *Wishart) Support() Constraint {
	return PositiveDefinite
}

// Expand returns a new distribution with all stored arrays broadcast
// to the given batch shape, which the current batch shape must
// broadcast to. This is a structural clone: already-materialized
// derived matrices are carried over by broadcasting rather than
// re-derived, and the result shares no mutable state with w.
func (w *Wishart) Expand(batchShape []int) (*Wishart, error) {
	dfb, err := w.df.Expand(batchShape)
	if err != nil {
		return nil, fmt.Errorf("%w: batch shape %v does not broadcast to %v", ErrInvalidArgument, w.batchShape, batchShape)
	}
	scaleIdx, err := matstack.NewIndexer(batchShape, w.scale.Shape())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	nw := &Wishart{
		dim:        w.dim,
		batchShape: dfb.Shape(),
		df:         dfb,
		scale:      w.scale.Clone(),
		scaleIdx:   scaleIdx,
		chiDF:      buildChiDF(dfb, w.dim),
		src:        w.src,
		maxTry:     w.maxTry,
		static:     w.static,
		validate:   w.validate,
		warnf:      w.warnf,
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tril != nil {
		if nw.tril, err = w.tril.Expand(batchShape); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	if w.cov != nil {
		if nw.cov, err = w.cov.Expand(batchShape); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	if w.prec != nil {
		if nw.prec, err = w.prec.Expand(batchShape); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	return nw, nil
}
