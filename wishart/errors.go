// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishart

import "errors"

// Sentinel errors returned by this package. Callers match them with
// errors.Is; returned errors may wrap these with additional context.
var (
	// ErrInvalidArgument is returned for construction-time
	// parameter errors: no matrix parameterization supplied, a
	// non-square parameter, or a degrees-of-freedom value not
	// strictly greater than p-1.
	ErrInvalidArgument = errors.New("wishart: invalid argument")

	// ErrNotPositiveDefinite is returned when the Cholesky
	// factorization of a supplied covariance or precision matrix
	// fails.
	ErrNotPositiveDefinite = errors.New("wishart: matrix is not positive definite")

	// ErrInvalidSample is returned by LogProb when a value lies
	// outside the distribution's support and validation is
	// enabled.
	ErrInvalidSample = errors.New("wishart: value outside distribution support")
)
