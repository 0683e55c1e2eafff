package animate

import (
	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/dft"
)

// Epicycles chains the rotating vectors of coeffs at time t, starting at
// center, and returns the tip of the chain.
//
// For every coefficient with an amplitude of at least minAmp a Circle (its
// orbit) and a Line (its arm) are emitted, drawn with s. Smaller
// coefficients still move the tip but are not drawn. With a fully
// transparent stroke no commands are emitted at all.
func Epicycles(center epicycle.Pair, coeffs []dft.Coefficient, t float64, s Stroke,
	minAmp float64) (epicycle.Pair, []Command) {
	var cmds []Command
	visible := s.Color.A > 0
	if visible {
		cmds = make([]Command, 0, 2*len(coeffs))
	}
	z := center
	for _, c := range coeffs {
		prev := z
		z += c.At(t)
		if visible && c.Amp >= minAmp {
			cmds = append(cmds,
				Circle{Center: prev, Radius: c.Amp, Stroke: s},
				Line{From: prev, To: z, Stroke: s})
		}
	}
	return z, cmds
}
