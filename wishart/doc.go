// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wishart implements the Wishart probability distribution
// over symmetric positive-definite matrices.
//
// A Wishart distribution is parameterized by a degrees-of-freedom
// value df and exactly one of a covariance matrix, a precision
// matrix, or a lower-triangular scale factor L with L·Lᵗ equal to
// the covariance. All internal computation is based on the scale
// factor, so supplying ScaleTril is the most efficient
// parameterization; Covariance and Precision inputs are converted
// once via Cholesky factorization at construction.
//
// Both df and the matrix parameter may carry leading batch
// dimensions. The distribution's batch shape is the broadcast of the
// two, and sampling, log-density and entropy evaluate element-wise over
// that shape.
//
// Sampling uses the Bartlett decomposition: a lower-triangular factor
// with chi-squared diagonal and standard-normal subdiagonal entries,
// multiplied through the scale factor. Draws that come out
// numerically singular are detected per batch slot and redrawn;
// see RSample.
package wishart // import "github.com/aclements/go-wishart/wishart"
