package dft

import (
	"github.com/npillmayer/epicycle"
	"gonum.org/v1/gonum/dsp/fourier"
)

// TransformFast computes the same spectrum as Transform, using a complex FFT
// in O(N log N). Results agree with Transform up to rounding.
func TransformFast(points []epicycle.Pair) (*Spectrum, error) {
	if err := validate(points); err != nil {
		return nil, err
	}
	n := len(points)
	seq := make([]complex128, n)
	for i, p := range points {
		seq[i] = p.C()
	}
	fft := fourier.NewCmplxFFT(n)
	out := fft.Coefficients(nil, seq)
	coeffs := make([]Coefficient, n)
	N := float64(n)
	for k, x := range out {
		coeffs[k] = newCoefficient(k, real(x)/N, imag(x)/N)
	}
	tracer().Debugf("fast-transformed %d samples", n)
	return &Spectrum{coeffs: coeffs, n: n}, nil
}
