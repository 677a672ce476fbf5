// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// wishartdist describes a Wishart distribution by simulation: it
// prints the distribution's mean, entropy and variance and compares
// them with moments estimated from random draws.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/aclements/go-wishart/matstack"
	"github.com/aclements/go-wishart/wishart"
)

var (
	flagDim   = flag.Int("p", 2, "matrix dimension")
	flagDF    = flag.Float64("df", 3, "degrees of freedom (must exceed p-1)")
	flagDraws = flag.Int("n", 10000, "number of draws")
	flagSeed  = flag.Uint64("seed", 1, "random seed")
)

func main() {
	flag.Parse()
	p, df, n := *flagDim, *flagDF, *flagDraws

	eye := mat.NewDense(p, p, nil)
	for i := 0; i < p; i++ {
		eye.Set(i, i, 1)
	}
	w, err := wishart.New(matstack.Scalar(df), wishart.ScaleTril(matstack.StackOf(eye)),
		wishart.WithSource(rand.NewSource(*flagSeed)))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Wishart(df=%g, scale=I(%d))\n", df, p)
	fmt.Printf("mean:\n%.6g\n", mat.Formatted(w.Mean().Slot(0)))
	ent, err := w.Entropy()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("entropy: %.6g\n\n", ent.At(0))

	samples := w.Sample(n)
	series := make([][]float64, p*p)
	for k := range series {
		series[k] = make([]float64, n)
	}
	singular := 0
	for s := 0; s < samples.Len(); s++ {
		slot := samples.Slot(s)
		if !w.Support().Check(slot) {
			singular++
		}
		for i := 0; i < p; i++ {
			for j := 0; j < p; j++ {
				series[i*p+j][s] = slot.At(i, j)
			}
		}
	}

	fmt.Printf("sample mean over %d draws (expect df·I):\n", n)
	printGrid(p, func(i, j int) float64 { return stat.Mean(series[i*p+j], nil) })
	fmt.Printf("sample variance of entries (expect Variance()):\n")
	printGrid(p, func(i, j int) float64 { return stat.Variance(series[i*p+j], nil) })
	variance := w.Variance().Slot(0)
	printGridLabel("Variance():", p, variance.At)
	fmt.Printf("singular draws: %d/%d\n", singular, n)

	lp, err := w.LogProb(w.Mean())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logProb(mean): %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("logProb(mean) = %.6g\n", lp.At(0))
}

func printGrid(p int, at func(i, j int) float64) {
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			fmt.Printf(" %10.6g", at(i, j))
		}
		fmt.Println()
	}
}

func printGridLabel(label string, p int, at func(i, j int) float64) {
	fmt.Println(label)
	printGrid(p, at)
}
