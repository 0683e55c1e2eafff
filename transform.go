package epicycle

import (
	"fmt"
	"math"
)

// AT is an affine transform, a matrix type used for transforming vectors.
// Frontends use it to map the centered model space of a path onto
// device coordinates.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	return make([]float64, 9)
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	return []float64{m[col], m[3+col], m[6+col]}
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Scaling transform. Scale x and y independently; a negative sy flips the
// y-axis.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Fit returns a transform which scales a box of half-extent (w,h) around the
// origin uniformly to fit into a device of size (dw,dh), with the origin
// mapped to the device center. margin is a fraction of the device size kept
// free at each side.
func Fit(w, h, dw, dh, margin float64) AT {
	if w <= 0 || h <= 0 {
		return Translation(P(dw/2, dh/2))
	}
	avail := 1 - 2*margin
	s := math.Min(dw*avail/(2*w), dh*avail/(2*h))
	return Scaling(s, s).Combine(Translation(P(dw/2, dh/2)))
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Combine 2 affine transformation to a new one: m is applied first, then n.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Scale returns the uniform scale factor of m, i.e. the length a unit
// vector along x is mapped to. Used to scale radii of circles.
func (m AT) Scale() float64 {
	return math.Hypot(m.get(0, 0), m.get(1, 0))
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	v := []float64{p.X(), p.Y(), 1.0}
	return P(dotProd(m.row(0), v), dotProd(m.row(1), v))
}
