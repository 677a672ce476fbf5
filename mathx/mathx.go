// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mathx implements multivariate special functions that are
// not provided by gonum's mathext package.
package mathx // import "github.com/aclements/go-wishart/mathx"

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
)

// ErrDomain is returned when a special function is evaluated outside
// its domain.
var ErrDomain = errors.New("mathx: argument outside function domain")

const logPi = 1.14472988584940017414342735135305871164729481291531157151362307

// MvLgamma returns the natural logarithm of the multivariate gamma
// function of order p,
//
//	log Γ_p(x) = p(p-1)/4·log π + Σ_{j=0}^{p-1} log Γ(x - j/2)
//
// which generalizes the log-gamma function to the integrals arising
// in Wishart and related matrix distribution densities. It fails with
// ErrDomain if x ≤ (p-1)/2.
func MvLgamma(x float64, p int) (float64, error) {
	if x <= float64(p-1)/2 {
		return math.NaN(), fmt.Errorf("%w: MvLgamma(%v, %d)", ErrDomain, x, p)
	}
	r := float64(p*(p-1)) / 4 * logPi
	for j := 0; j < p; j++ {
		lg, _ := math.Lgamma(x - float64(j)/2)
		r += lg
	}
	return r, nil
}

// MvDigamma returns the multivariate digamma function of order p,
//
//	ψ_p(x) = Σ_{i=0}^{p-1} ψ(x - i/2)
//
// the derivative of MvLgamma with respect to x. It fails with
// ErrDomain if x ≤ (p-1)/2.
func MvDigamma(x float64, p int) (float64, error) {
	if x <= float64(p-1)/2 {
		return math.NaN(), fmt.Errorf("%w: MvDigamma(%v, %d)", ErrDomain, x, p)
	}
	r := 0.0
	for i := 0; i < p; i++ {
		r += mathext.Digamma(x - float64(i)/2)
	}
	return r, nil
}
