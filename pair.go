package epicycle

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Pair is a 2D point or vector. Sample points, path points and epicycle
// vectors are all pairs; arithmetic on them is complex arithmetic.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Polar creates a pair from a radius and an angle (in radians).
func Polar(r, theta float64) Pair {
	return Pair(cmplx.Rect(r, theta))
}

// C2P returns a Pair from a complex number.
// NaN and Inf values are mapped onto the origin.
func C2P(c complex128) Pair {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		tracer().Errorf("created pair for non-finite %v, using origin", c)
		return Origin
	}
	return Pair(c)
}

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// Abs is the length of p as a vector.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// IsValid is a predicate: are both coordinates finite numbers?
func (p Pair) IsValid() bool {
	return Finite(p.X()) && Finite(p.Y())
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs, within Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Near compares two pairs within a caller supplied tolerance.
func (p Pair) Near(p2 Pair, tol float64) bool {
	return math.Abs(p.X()-p2.X()) <= tol && math.Abs(p.Y()-p2.Y()) <= tol
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

