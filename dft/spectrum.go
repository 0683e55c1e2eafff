package dft

import (
	"sort"

	"github.com/npillmayer/epicycle"
)

// Spectrum is the result of a transform: one coefficient per sample, in
// frequency order. Spectra are read-only after creation.
type Spectrum struct {
	coeffs []Coefficient
	n      int // original sample count
}

// N is the number of samples the spectrum was computed from.
func (s *Spectrum) N() int {
	return s.n
}

// Len is the number of coefficients. It equals N for every spectrum
// created by a transform.
func (s *Spectrum) Len() int {
	return len(s.coeffs)
}

// Coefficients returns a copy of the coefficients in frequency order.
func (s *Spectrum) Coefficients() []Coefficient {
	c := make([]Coefficient, len(s.coeffs))
	copy(c, s.coeffs)
	return c
}

// Coefficient returns the coefficient with frequency index freq.
func (s *Spectrum) Coefficient(freq int) (Coefficient, bool) {
	if freq >= 0 && freq < len(s.coeffs) && s.coeffs[freq].Freq == freq {
		return s.coeffs[freq], true
	}
	for _, c := range s.coeffs {
		if c.Freq == freq {
			return c, true
		}
	}
	return Coefficient{}, false
}

// Ranked returns the coefficients ordered by descending amplitude.
func (s *Spectrum) Ranked() []Coefficient {
	return Rank(s.coeffs)
}

// TimeStep is the advance of the time parameter per sample, 2π/N.
// Exactly N steps make up one revolution.
func (s *Spectrum) TimeStep() float64 {
	if s.n == 0 {
		return epicycle.TwoPi
	}
	return epicycle.TwoPi / float64(s.n)
}

// Centered returns a spectrum with signed frequencies: indices k > N/2 are
// replaced by k − N. At the sample times t = 2πn/N both spectra trace the
// same points; between samples the signed variant takes the shorter way
// round and produces less wobbly motion.
func (s *Spectrum) Centered() *Spectrum {
	c := &Spectrum{coeffs: s.Coefficients(), n: s.n}
	for i := range c.coeffs {
		if c.coeffs[i].Freq > s.n/2 {
			c.coeffs[i].Freq -= s.n
		}
	}
	return c
}

// Reconstruct sums all rotating vectors at time t.
func (s *Spectrum) Reconstruct(t float64) epicycle.Pair {
	return Sum(s.coeffs, t)
}

// Inverse evaluates the spectrum at the N sample times and returns the
// reconstructed sample sequence.
func (s *Spectrum) Inverse() []epicycle.Pair {
	pts := make([]epicycle.Pair, s.n)
	dt := s.TimeStep()
	for i := range pts {
		pts[i] = s.Reconstruct(float64(i) * dt)
	}
	return pts
}

// Sum adds the rotating vectors of coeffs at time t. The order of coeffs
// does not matter.
func Sum(coeffs []Coefficient, t float64) epicycle.Pair {
	var z epicycle.Pair
	for _, c := range coeffs {
		z += c.At(t)
	}
	return z
}

// Rank returns a copy of coeffs, stable-sorted by descending amplitude.
// Coefficients of equal amplitude keep their relative order, so ranking a
// ranked list changes nothing.
func Rank(coeffs []Coefficient) []Coefficient {
	ranked := make([]Coefficient, len(coeffs))
	copy(ranked, coeffs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amp > ranked[j].Amp
	})
	return ranked
}
