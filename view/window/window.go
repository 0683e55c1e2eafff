// Package window shows an epicycle animation in a desktop window.
package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/animate"
	"github.com/npillmayer/epicycle/view"
)

// Settings for the window.
type Settings struct {
	Title          string
	Width, Height  int
	TicksPerSecond int
}

// Run opens a window and animates m until the window is closed or Escape
// is pressed. ext is the half-extent of the model, see view.Extent.
// It blocks until the window closes.
func Run(m *animate.Machine, ext epicycle.Pair, s Settings) error {
	g := &game{m: m, ext: ext, clock: view.NewClock()}
	ebiten.SetWindowTitle(s.Title)
	ebiten.SetWindowSize(s.Width, s.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(s.TicksPerSecond)
	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type game struct {
	m      *animate.Machine
	ext    epicycle.Pair
	clock  *view.Clock
	frame  *animate.Frame
	vp     view.Viewport
	w, h   int
	failed int // frames skipped because painting failed
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.frame = g.m.Advance(g.clock.Tick())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if g.frame == nil {
		return
	}
	p := &painter{dst: screen, vp: g.vp}
	if err := g.frame.Paint(p); err != nil {
		g.failed++
		view.Tracer().Errorf("window: %v (%d frames skipped)", err, g.failed)
	}
}

// Layout follows the window size. A resize restarts the animation.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		if g.w != 0 {
			view.Tracer().Infof("window resized to %dx%d, restarting", outsideWidth, outsideHeight)
			g.m.Reset()
			g.frame = nil
		}
		g.w, g.h = outsideWidth, outsideHeight
		g.vp = view.NewViewport(g.ext, float64(g.w), float64(g.h), 1)
	}
	return g.w, g.h
}

// painter draws render commands onto an ebiten image.
type painter struct {
	dst *ebiten.Image
	vp  view.Viewport
}

func (p *painter) Circle(center epicycle.Pair, radius float64, s animate.Stroke) {
	c := p.vp.Map(center)
	vector.StrokeCircle(p.dst, float32(c.X()), float32(c.Y()), float32(p.vp.Length(radius)),
		float32(s.Width), s.Color, true)
}

func (p *painter) Line(from, to epicycle.Pair, s animate.Stroke) {
	a, b := p.vp.Map(from), p.vp.Map(to)
	vector.StrokeLine(p.dst, float32(a.X()), float32(a.Y()), float32(b.X()), float32(b.Y()),
		float32(s.Width), s.Color, true)
}

func (p *painter) Polyline(pts []epicycle.Pair, s animate.Stroke) {
	if len(pts) < 2 {
		return
	}
	prev := p.vp.Map(pts[0])
	for _, pt := range pts[1:] {
		next := p.vp.Map(pt)
		vector.StrokeLine(p.dst, float32(prev.X()), float32(prev.Y()), float32(next.X()), float32(next.Y()),
			float32(s.Width), s.Color, true)
		prev = next
	}
}
