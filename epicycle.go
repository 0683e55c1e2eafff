/*
Package epicycle reconstructs a traced 2D path from rotating vectors
("epicycles"). It holds the small set of value types shared by the
sub-packages: points, view transforms and colors.

The pipeline is spread over sub-packages:

	glyph    text outlines → ordered sample points
	polygon  ordered sample containers, fallback shapes
	dft      sample points → Fourier coefficients, ranking
	animate  epicycle summation and the draw/fade lifecycle
	view     window and terminal frontends

A typical client samples a path, transforms it and runs the lifecycle
machine, once per display refresh:

	pts := glyph.SampleOrFallback(sampler, "Go", 200)
	spectrum, err := dft.Transform(pts)
	m := animate.New(spectrum, animate.DefaultOptions())
	for {
	    frame := m.Advance(16 * time.Millisecond)
	    frame.Paint(painter)
	}

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package epicycle

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle'
func tracer() tracing.Trace {
	return tracing.Select("epicycle")
}

// TwoPi is the length of one full revolution of the time parameter.
const TwoPi = 2 * math.Pi

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Finite is a predicate: is n neither NaN nor ±Inf?
func Finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}
