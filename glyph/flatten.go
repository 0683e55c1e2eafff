package glyph

import (
	"math"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/polygon"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"
)

func fix2float(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

func fix2pair(p fixed.Point26_6) epicycle.Pair {
	return epicycle.P(fix2float(p.X), fix2float(p.Y))
}

// flatten converts glyph segments into one polygon per contour, shifted
// by origin.
func flatten(segs sfnt.Segments, origin epicycle.Pair, density float64) []*polygon.Polygon {
	var contours []*polygon.Polygon
	var pg *polygon.Polygon
	var pen epicycle.Pair
	closeContour := func() {
		if pg == nil {
			return
		}
		if n := pg.N(); n > 1 && pg.Z(n-1).Equal(pg.Z(0)) {
			pg = polygon.FromPoints(pg.Points()[:n-1])
		}
		contours = append(contours, pg.Cycle())
		pg = nil
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			pen = origin + fix2pair(seg.Args[0])
			pg = polygon.NullPolygon().Knot(pen)
		case sfnt.SegmentOpLineTo:
			p1 := origin + fix2pair(seg.Args[0])
			line(pg, pen, p1, density)
			pen = p1
		case sfnt.SegmentOpQuadTo:
			c := origin + fix2pair(seg.Args[0])
			p1 := origin + fix2pair(seg.Args[1])
			quad(pg, pen, c, p1, density)
			pen = p1
		case sfnt.SegmentOpCubeTo:
			c1 := origin + fix2pair(seg.Args[0])
			c2 := origin + fix2pair(seg.Args[1])
			p1 := origin + fix2pair(seg.Args[2])
			cube(pg, pen, c1, c2, p1, density)
			pen = p1
		}
	}
	closeContour()
	return contours
}

// steps is the number of points a piece of outline of length l gets.
func steps(l, density float64) int {
	return max(1, int(math.Ceil(l*density)))
}

// line appends the points of p0–p1, excluding p0.
func line(pg *polygon.Polygon, p0, p1 epicycle.Pair, density float64) {
	if pg == nil {
		return
	}
	n := steps((p1 - p0).Abs(), density)
	for i := 1; i <= n; i++ {
		u := float64(i) / float64(n)
		pg.Knot(p0 + (p1 - p0).Scaled(u))
	}
}

// arcAccuracy bounds the error of arc length computations, in pixels.
const arcAccuracy = 1e-6

func pt(p epicycle.Pair) curve.Point {
	return curve.Pt(p.X(), p.Y())
}

func fromPt(p curve.Point) epicycle.Pair {
	return epicycle.P(p.X, p.Y)
}

// quad appends the points of a quadratic Bézier curve, excluding p0.
// Points are evenly spaced along the curve.
func quad(pg *polygon.Polygon, p0, c, p1 epicycle.Pair, density float64) {
	if pg == nil {
		return
	}
	q := curve.QuadBez{P0: pt(p0), P1: pt(c), P2: pt(p1)}
	l := q.Arclen(arcAccuracy)
	n := steps(l, density)
	for i := 1; i < n; i++ {
		t := curve.SolveForArclen(q, l*float64(i)/float64(n), arcAccuracy)
		pg.Knot(fromPt(q.Eval(t)))
	}
	pg.Knot(p1)
}

// cube appends the points of a cubic Bézier curve, excluding p0.
// Points are evenly spaced along the curve.
func cube(pg *polygon.Polygon, p0, c1, c2, p1 epicycle.Pair, density float64) {
	if pg == nil {
		return
	}
	cb := curve.CubicBez{P0: pt(p0), P1: pt(c1), P2: pt(c2), P3: pt(p1)}
	l := cb.Arclen(arcAccuracy)
	n := steps(l, density)
	for i := 1; i < n; i++ {
		t := curve.SolveForArclen(cb, l*float64(i)/float64(n), arcAccuracy)
		pg.Knot(fromPt(cb.Eval(t)))
	}
	pg.Knot(p1)
}
