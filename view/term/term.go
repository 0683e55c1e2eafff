// Package term shows an epicycle animation in a terminal, one character
// cell per device pixel.
package term

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/animate"
	"github.com/npillmayer/epicycle/view"
)

// CellAspect is the height of a terminal cell relative to its width.
const CellAspect = 2.0

const (
	pathRune   = '*'
	armRune    = '·'
	circleRune = '.'
)

// Run animates m on the terminal until ctx is done or the user presses
// q, Escape or Ctrl-C. ext is the half-extent of the model, see
// view.Extent.
func Run(ctx context.Context, m *animate.Machine, ext epicycle.Pair, frameTime time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	return loop(ctx, screen, m, ext, frameTime)
}

func loop(ctx context.Context, screen tcell.Screen, m *animate.Machine, ext epicycle.Pair,
	frameTime time.Duration) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil { // screen finalized
				return
			}
			events <- ev
		}
	}()
	w, h := screen.Size()
	g := newGrid(w, h, view.NewViewport(ext, float64(w), float64(h), CellAspect))
	clock := view.NewClock()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				w, h = screen.Size()
				g = newGrid(w, h, view.NewViewport(ext, float64(w), float64(h), CellAspect))
				screen.Sync()
				m.Reset()
				view.Tracer().Infof("terminal resized to %dx%d, restarting", w, h)
			}
		case <-ticker.C:
			f := m.Advance(clock.Tick())
			g.clear()
			if err := f.Paint(g); err != nil {
				view.Tracer().Errorf("terminal: %v", err)
				continue
			}
			g.flush(screen)
			screen.Show()
		}
	}
}

type cell struct {
	ch    rune
	color epicycle.Color
}

// grid is a character raster. It implements animate.Painter.
type grid struct {
	w, h  int
	cells []cell
	vp    view.Viewport
}

func newGrid(w, h int, vp view.Viewport) *grid {
	return &grid{w: w, h: h, cells: make([]cell, w*h), vp: vp}
}

func (g *grid) clear() {
	for i := range g.cells {
		g.cells[i] = cell{}
	}
}

// plot sets the cell at device position p. Brighter strokes win over
// dimmer ones; the path is drawn last and wins ties.
func (g *grid) plot(p epicycle.Pair, ch rune, c epicycle.Color) {
	x, y := int(math.Floor(p.X())), int(math.Floor(p.Y()))
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	i := y*g.w + x
	if g.cells[i].ch != 0 && g.cells[i].color.A > c.A {
		return
	}
	g.cells[i] = cell{ch: ch, color: c}
}

func (g *grid) line(a, b epicycle.Pair, ch rune, c epicycle.Color) {
	d := b - a
	n := int(math.Ceil(math.Max(math.Abs(d.X()), math.Abs(d.Y()))))
	if n == 0 {
		g.plot(a, ch, c)
		return
	}
	for i := 0; i <= n; i++ {
		g.plot(a+d.Scaled(float64(i)/float64(n)), ch, c)
	}
}

// Circle implements animate.Painter.
func (g *grid) Circle(center epicycle.Pair, radius float64, s animate.Stroke) {
	r := g.vp.Length(radius)
	if r < 1 {
		return
	}
	c := g.vp.Map(center)
	n := int(math.Ceil(epicycle.TwoPi * r))
	for i := 0; i < n; i++ {
		theta := epicycle.TwoPi * float64(i) / float64(n)
		g.plot(c+epicycle.P(r*math.Cos(theta), r*math.Sin(theta)/CellAspect), circleRune, s.Color)
	}
}

// Line implements animate.Painter.
func (g *grid) Line(from, to epicycle.Pair, s animate.Stroke) {
	g.line(g.vp.Map(from), g.vp.Map(to), armRune, s.Color)
}

// Polyline implements animate.Painter.
func (g *grid) Polyline(pts []epicycle.Pair, s animate.Stroke) {
	if len(pts) == 1 {
		g.plot(g.vp.Map(pts[0]), pathRune, s.Color)
		return
	}
	for i := 1; i < len(pts); i++ {
		g.line(g.vp.Map(pts[i-1]), g.vp.Map(pts[i]), pathRune, s.Color)
	}
}

// style maps a color onto a terminal style; opacity becomes brightness on
// a black background.
func style(c epicycle.Color) tcell.Style {
	k := c.Intensity()
	fg := tcell.NewRGBColor(int32(float64(c.R)*k), int32(float64(c.G)*k), int32(float64(c.B)*k))
	return tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack)
}

func (g *grid) flush(screen tcell.Screen) {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			c := g.cells[y*g.w+x]
			if c.ch == 0 || c.color.A == 0 {
				screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(tcell.ColorBlack))
				continue
			}
			screen.SetContent(x, y, c.ch, nil, style(c.color))
		}
	}
}
