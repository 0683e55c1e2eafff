/*
Package polygon holds ordered point sequences: sampled glyph contours,
recorded paths and the fallback shape used when no samples are available.

Polygons are built with a small builder API:

	pg := NullPolygon().Knot(P(0,0)).Knot(P(1,3)).Knot(P(3,0)).Cycle()

Knot order is significant; it is the order in which an epicycle
reconstruction will trace the points.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"
	"strings"

	"github.com/akavel/polyclip-go"
	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to the polygon tracer.
func L() tracing.Trace {
	return tracing.Select("epicycle.polygon")
}

// Polygon is an ordered sequence of knots, either open or cyclic.
type Polygon struct {
	knots []epicycle.Pair
	cycle bool
}

// NullPolygon creates an empty polygon, to be extended by Knot(…).
func NullPolygon() *Polygon {
	return &Polygon{}
}

// FromPoints creates an open polygon from a slice of points. The slice is copied.
func FromPoints(pts []epicycle.Pair) *Polygon {
	pg := &Polygon{knots: make([]epicycle.Pair, len(pts))}
	copy(pg.knots, pts)
	return pg
}

// Knot appends a knot. Part of builder functionality.
func (pg *Polygon) Knot(p epicycle.Pair) *Polygon {
	pg.knots = append(pg.knots, p)
	return pg
}

// Cycle closes a polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// IsCycle is a predicate: is this polygon closed?
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	if pg == nil {
		return 0
	}
	return len(pg.knots)
}

// Z returns the knot at position (i mod N).
func (pg *Polygon) Z(i int) epicycle.Pair {
	n := pg.N()
	i %= n
	if i < 0 {
		i += n
	}
	return pg.knots[i]
}

// Points returns a copy of the knots in order.
func (pg *Polygon) Points() []epicycle.Pair {
	if pg == nil {
		return nil
	}
	pts := make([]epicycle.Pair, len(pg.knots))
	copy(pts, pg.knots)
	return pts
}

// Length is the sum of the edge lengths, including the closing edge for
// cyclic polygons.
func (pg *Polygon) Length() float64 {
	n := pg.N()
	if n < 2 {
		return 0
	}
	l := 0.0
	for i := 1; i < n; i++ {
		l += (pg.knots[i] - pg.knots[i-1]).Abs()
	}
	if pg.cycle {
		l += (pg.knots[0] - pg.knots[n-1]).Abs()
	}
	return l
}

// Translated returns a new polygon with every knot shifted by v.
func (pg *Polygon) Translated(v epicycle.Pair) *Polygon {
	q := &Polygon{knots: make([]epicycle.Pair, pg.N()), cycle: pg.cycle}
	for i, k := range pg.knots {
		q.knots[i] = k + v
	}
	return q
}

// contour converts pg to a polyclip contour.
func (pg *Polygon) contour() polyclip.Contour {
	c := make(polyclip.Contour, 0, pg.N())
	for _, k := range pg.knots {
		c.Add(polyclip.Point{X: k.X(), Y: k.Y()})
	}
	return c
}

// BoundingBox returns the lower left and upper right corners of the
// smallest axis-parallel box enclosing all knots of all polygons.
// Empty input yields a box of (0,0)–(0,0).
func BoundingBox(pgs ...*Polygon) (epicycle.Pair, epicycle.Pair) {
	var poly polyclip.Polygon
	for _, pg := range pgs {
		if pg.N() > 0 {
			poly.Add(pg.contour())
		}
	}
	if len(poly) == 0 {
		return epicycle.Origin, epicycle.Origin
	}
	bb := poly.BoundingBox()
	return epicycle.P(bb.Min.X, bb.Min.Y), epicycle.P(bb.Max.X, bb.Max.Y)
}

// BoundingBox of a single polygon, see BoundingBox(…).
func (pg *Polygon) BoundingBox() (epicycle.Pair, epicycle.Pair) {
	return BoundingBox(pg)
}

// Center returns the center of the bounding box of all polygons.
func Center(pgs ...*Polygon) epicycle.Pair {
	ll, ur := BoundingBox(pgs...)
	return (ll + ur).Scaled(0.5)
}

// Centered returns a copy of pg, translated so that the center of its
// bounding box is the origin.
func (pg *Polygon) Centered() *Polygon {
	return pg.Translated(-Center(pg))
}

// Box creates a cyclic polygon from two opposite corners. Knots are
// ordered counter-clockwise, starting at the lower left corner.
func Box(p, q epicycle.Pair) *Polygon {
	llx, urx := math.Min(p.X(), q.X()), math.Max(p.X(), q.X())
	lly, ury := math.Min(p.Y(), q.Y()), math.Max(p.Y(), q.Y())
	return NullPolygon().
		Knot(epicycle.P(llx, lly)).Knot(epicycle.P(urx, lly)).
		Knot(epicycle.P(urx, ury)).Knot(epicycle.P(llx, ury)).Cycle()
}

// Circle creates a cyclic polygon of n knots evenly spaced on a circle.
// n is forced to be at least 1.
func Circle(center epicycle.Pair, r float64, n int) *Polygon {
	if n < 1 {
		n = 1
	}
	pg := &Polygon{knots: make([]epicycle.Pair, n), cycle: true}
	for i := 0; i < n; i++ {
		theta := epicycle.TwoPi * float64(i) / float64(n)
		pg.knots[i] = center + epicycle.Polar(r, theta)
	}
	return pg
}

// Concat joins the knots of several polygons into one open polygon,
// preserving order.
func Concat(pgs ...*Polygon) *Polygon {
	n := 0
	for _, pg := range pgs {
		n += pg.N()
	}
	q := &Polygon{knots: make([]epicycle.Pair, 0, n)}
	for _, pg := range pgs {
		if pg != nil {
			q.knots = append(q.knots, pg.knots...)
		}
	}
	return q
}

// AsString returns a polygon as a (debugging) string, in MetaPost-like
// notation.
func AsString(pg *Polygon) string {
	var sb strings.Builder
	for i, k := range pg.knots {
		if i > 0 {
			sb.WriteString(" -- ")
		}
		fmt.Fprintf(&sb, "(%.4g,%.4g)", k.X(), k.Y())
	}
	if pg.cycle {
		sb.WriteString(" -- cycle")
	}
	return sb.String()
}
