// Package view has the pieces shared by the frontends: mapping the model
// space of an animation onto a device and a frame clock.
package view

import (
	"math"
	"time"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/polygon"
	"github.com/npillmayer/schuko/tracing"
)

// Tracer writes to trace with key 'epicycle.view'
func Tracer() tracing.Trace {
	return tracing.Select("epicycle.view")
}

// Margin is the fraction of the device kept free at each border.
const Margin = 0.05

// Extent returns the half-width and half-height of the box around the
// origin which encloses all points. Epicycles swing out beyond the path, so
// the box is padded by pad (a fraction, e.g. 0.25).
func Extent(pts []epicycle.Pair, pad float64) epicycle.Pair {
	ll, ur := polygon.FromPoints(pts).BoundingBox()
	w := math.Max(math.Abs(ll.X()), math.Abs(ur.X()))
	h := math.Max(math.Abs(ll.Y()), math.Abs(ur.Y()))
	return epicycle.P(w*(1+pad), h*(1+pad))
}

// Viewport maps model coordinates onto a device.
type Viewport struct {
	at    epicycle.AT
	scale float64
}

// NewViewport fits a model of half-extent ext into a device of size (w,h).
// aspect is the height of a device pixel relative to its width; it is 1 for
// screens and about 2 for terminal cells.
func NewViewport(ext epicycle.Pair, w, h, aspect float64) Viewport {
	if aspect <= 0 {
		aspect = 1
	}
	at := epicycle.Fit(ext.X(), ext.Y(), w, h*aspect, Margin)
	at = at.Combine(epicycle.Scaling(1, 1/aspect))
	return Viewport{at: at, scale: at.Scale()}
}

// Map transforms a model point onto the device.
func (v Viewport) Map(p epicycle.Pair) epicycle.Pair {
	return v.at.Transform(p)
}

// Length scales a model length (e.g. a radius) to device units along x.
func (v Viewport) Length(l float64) float64 {
	return l * v.scale
}

// Clock measures wall clock time between frames.
type Clock struct {
	last time.Time
	now  func() time.Time
}

// NewClock creates a clock on the monotonic system time.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Tick returns the time passed since the previous tick. The first tick
// returns 0.
func (c *Clock) Tick() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	return dt
}
