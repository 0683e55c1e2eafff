package animate

import (
	"errors"
	"fmt"

	"github.com/npillmayer/epicycle"
)

// ErrPaint is returned by Frame.Paint if a painter fails on a frame.
var ErrPaint = errors.New("painting frame failed")

// Stroke is the pen a command is drawn with.
type Stroke struct {
	Color epicycle.Color
	Width float64
}

// Painter is implemented by frontends. Coordinates are in model space, i.e.
// relative to the center of the sampled path; mapping onto a device is the
// painter's business.
//
// A painter may panic on failure. Frame.Paint recovers and reports it.
type Painter interface {
	Circle(center epicycle.Pair, radius float64, s Stroke)
	Line(from, to epicycle.Pair, s Stroke)
	Polyline(pts []epicycle.Pair, s Stroke)
}

// Command is a single drawing instruction of a frame.
type Command interface {
	Paint(p Painter)
}

// Circle is the orbit of one epicycle.
type Circle struct {
	Center epicycle.Pair
	Radius float64
	Stroke Stroke
}

// Paint implements Command.
func (c Circle) Paint(p Painter) { p.Circle(c.Center, c.Radius, c.Stroke) }

// Line is the arm of one epicycle, from its center to its tip.
type Line struct {
	From, To epicycle.Pair
	Stroke   Stroke
}

// Paint implements Command.
func (l Line) Paint(p Painter) { p.Line(l.From, l.To, l.Stroke) }

// Polyline is the recorded path.
type Polyline struct {
	Points []epicycle.Pair
	Stroke Stroke
}

// Paint implements Command.
func (pl Polyline) Paint(p Painter) { p.Polyline(pl.Points, pl.Stroke) }

// Paint replays the commands of f into p, in order. If p panics, painting
// stops and an error wrapping ErrPaint is returned; the frame is lost but
// the machine that produced it is unaffected.
func (f *Frame) Paint(p Painter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPaint, r)
			tracer().Errorf("skipping frame in state %s: %v", f.State, r)
		}
	}()
	for _, cmd := range f.Commands {
		cmd.Paint(p)
	}
	return nil
}
