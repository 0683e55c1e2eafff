// Package dft computes the discrete Fourier transform of an ordered
// sequence of 2D sample points and ranks the resulting coefficients.
//
// Points are interpreted as complex numbers x + iy. Coefficient k is
//
//	X_k = 1/N · Σ_{n=0}^{N-1} z_n · e^{-2πikn/N}
//
// so that every sample is recovered as the sum of N rotating vectors
// ("epicycles") at time t = 2πn/N:
//
//	z_n = Σ_k |X_k| · e^{i(k·t + arg X_k)}
package dft

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle.dft'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.dft")
}

var (
	// ErrNoSamples indicates an empty sample sequence.
	ErrNoSamples = errors.New("no sample points to transform")
	// ErrDegenerateInput indicates a sample or a result which is not a finite number.
	ErrDegenerateInput = errors.New("degenerate input")
)

// Coefficient is one frequency component of a transform.
type Coefficient struct {
	Re    float64 // real part of X_k
	Im    float64 // imaginary part of X_k
	Freq  int     // frequency index k
	Amp   float64 // |X_k|, always ≥ 0
	Phase float64 // arg X_k
}

// C returns the coefficient as a complex number.
func (c Coefficient) C() complex128 {
	return complex(c.Re, c.Im)
}

// At returns the rotating vector of c at time t.
func (c Coefficient) At(t float64) epicycle.Pair {
	return epicycle.Polar(c.Amp, float64(c.Freq)*t+c.Phase)
}

func (c Coefficient) String() string {
	return fmt.Sprintf("[k=%d amp=%.4g phase=%.4g]", c.Freq, c.Amp, c.Phase)
}

func newCoefficient(k int, re, im float64) Coefficient {
	return Coefficient{
		Re:    re,
		Im:    im,
		Freq:  k,
		Amp:   math.Hypot(re, im),
		Phase: math.Atan2(im, re),
	}
}

// Degenerate is the single all-zero coefficient substituted for an empty
// transform.
var Degenerate = Coefficient{}

// Transform computes the direct (non-FFT) discrete Fourier transform of
// points, in O(N²) time. The returned spectrum has exactly len(points)
// coefficients, in frequency order.
//
// Transform returns ErrNoSamples for an empty input and ErrDegenerateInput if
// any sample is NaN or infinite or if a result is not finite.
func Transform(points []epicycle.Pair) (*Spectrum, error) {
	if err := validate(points); err != nil {
		return nil, err
	}
	coeffs := direct(points)
	for _, c := range coeffs {
		if !isFinite(c) {
			return nil, fmt.Errorf("%w: coefficient %d is not finite", ErrDegenerateInput, c.Freq)
		}
	}
	tracer().Debugf("transformed %d samples", len(points))
	return &Spectrum{coeffs: coeffs, n: len(points)}, nil
}

// MustTransform is like Transform, but panics on error.
func MustTransform(points []epicycle.Pair) *Spectrum {
	s, err := Transform(points)
	if err != nil {
		panic(err)
	}
	return s
}

// TransformLenient never fails. An empty input yields a spectrum of the single
// Degenerate coefficient (with sample count 1, to keep time steps finite).
// NaN or infinite samples are taken as the origin, and non-finite values in
// Re, Im, Amp or Phase are replaced by 0.
//
// This masks degenerate input instead of reporting it; use Transform where the
// difference matters.
func TransformLenient(points []epicycle.Pair) *Spectrum {
	if len(points) == 0 {
		tracer().Errorf("empty sample sequence, substituting degenerate coefficient")
		return &Spectrum{coeffs: []Coefficient{Degenerate}, n: 1}
	}
	if bad := countInvalid(points); bad > 0 {
		tracer().Errorf("%d samples are not finite", bad)
		valid := make([]epicycle.Pair, len(points))
		for i, p := range points {
			valid[i] = epicycle.C2P(p.C())
		}
		points = valid
	}
	coeffs := direct(points)
	clamped := 0
	for i := range coeffs {
		if clampNonFinite(&coeffs[i]) {
			clamped++
		}
	}
	if clamped > 0 {
		tracer().Errorf("clamped %d coefficients with non-finite components to zero", clamped)
	}
	return &Spectrum{coeffs: coeffs, n: len(points)}
}

func countInvalid(points []epicycle.Pair) int {
	n := 0
	for _, p := range points {
		if !p.IsValid() {
			n++
		}
	}
	return n
}

func validate(points []epicycle.Pair) error {
	if len(points) == 0 {
		return ErrNoSamples
	}
	for i, p := range points {
		if !p.IsValid() {
			return fmt.Errorf("%w: sample %d is %v", ErrDegenerateInput, i, p)
		}
	}
	return nil
}

func direct(points []epicycle.Pair) []Coefficient {
	n := len(points)
	N := float64(n)
	coeffs := make([]Coefficient, n)
	for k := 0; k < n; k++ {
		var re, im float64
		for i, z := range points {
			phi := epicycle.TwoPi * float64(k) * float64(i) / N
			sin, cos := math.Sincos(phi)
			x, y := z.F()
			re += x*cos + y*sin
			im += y*cos - x*sin
		}
		coeffs[k] = newCoefficient(k, re/N, im/N)
	}
	return coeffs
}

func isFinite(c Coefficient) bool {
	return epicycle.Finite(c.Re) && epicycle.Finite(c.Im) &&
		epicycle.Finite(c.Amp) && epicycle.Finite(c.Phase)
}

// clampNonFinite zeroes NaN and infinite components of c and reports whether
// it did.
func clampNonFinite(c *Coefficient) bool {
	clamped := false
	for _, v := range []*float64{&c.Re, &c.Im, &c.Amp, &c.Phase} {
		if !epicycle.Finite(*v) {
			*v = 0
			clamped = true
		}
	}
	return clamped
}
