package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/animate"
	"github.com/npillmayer/epicycle/dft"
	"github.com/npillmayer/epicycle/view"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridPlotsPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	vp := view.NewViewport(epicycle.P(10, 10), 40, 20, CellAspect)
	g := newGrid(40, 20, vp)
	s := animate.Stroke{Color: epicycle.White}
	g.Polyline([]epicycle.Pair{epicycle.P(-5, 0), epicycle.P(5, 0)}, s)
	mid := vp.Map(epicycle.Origin)
	c := g.cells[int(mid.Y())*g.w+int(mid.X())]
	assert.Equal(t, pathRune, c.ch)
	// off-device points are dropped silently
	g.plot(epicycle.P(-1, 3), pathRune, epicycle.White)
	g.plot(epicycle.P(40, 3), pathRune, epicycle.White)
}

func TestBrighterStrokeWins(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := newGrid(4, 4, view.NewViewport(epicycle.P(1, 1), 4, 4, 1))
	g.plot(epicycle.P(1, 1), pathRune, epicycle.White)
	g.plot(epicycle.P(1, 1), armRune, epicycle.White.WithAlpha(100))
	assert.Equal(t, pathRune, g.cells[1*4+1].ch)
}

func TestFlushToScreen(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)
	g := newGrid(40, 20, view.NewViewport(epicycle.P(10, 10), 40, 20, CellAspect))
	g.Circle(epicycle.Origin, 8, animate.Stroke{Color: epicycle.White})
	g.flush(screen)
	screen.Show()
	found := false
	for y := 0; y < 20 && !found; y++ {
		for x := 0; x < 40; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r == circleRune {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "circle must show up on the screen")
}

func TestLoopStopsOnContext(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)
	pts := []epicycle.Pair{epicycle.P(5, 0), epicycle.P(0, 5), epicycle.P(-5, 0), epicycle.P(0, -5)}
	m := animate.New(dft.MustTransform(pts), animate.DefaultOptions())
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := loop(ctx, screen, m, view.Extent(pts, 0.25), 10*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotEqual(t, animate.Drawing, m.State(), "four drawing frames should have passed")
}

func simulationScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)
	return screen
}

func squareMachine() (*animate.Machine, epicycle.Pair) {
	pts := []epicycle.Pair{epicycle.P(5, 0), epicycle.P(0, 5), epicycle.P(-5, 0), epicycle.P(0, -5)}
	return animate.New(dft.MustTransform(pts), animate.DefaultOptions()), view.Extent(pts, 0.25)
}

// runLoop runs the event loop with a frame time long enough that only
// events reach the machine.
func runLoop(t *testing.T, screen tcell.Screen, m *animate.Machine, ext epicycle.Pair) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return loop(ctx, screen, m, ext, time.Hour)
}

func TestLoopQuitsOnKeys(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	keys := map[string]*tcell.EventKey{
		"q":      tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		"escape": tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		"ctrl-c": tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	}
	for name, ev := range keys {
		t.Run(name, func(t *testing.T) {
			screen := simulationScreen(t)
			m, ext := squareMachine()
			require.NoError(t, screen.PostEvent(ev))
			assert.NoError(t, runLoop(t, screen, m, ext))
		})
	}
}

func TestLoopIgnoresOtherKeys(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	screen := simulationScreen(t)
	m, ext := squareMachine()
	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := loop(ctx, screen, m, ext, time.Hour)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "only q, Escape and Ctrl-C quit")
}

func TestLoopRestartsOnResize(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	screen := simulationScreen(t)
	m, ext := squareMachine()
	m.Advance(0)
	m.Advance(0)
	require.Len(t, m.Path(), 2)
	screen.SetSize(60, 30)
	require.NoError(t, screen.PostEvent(tcell.NewEventResize(60, 30)))
	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	require.NoError(t, runLoop(t, screen, m, ext))
	assert.Empty(t, m.Path(), "resize discards the recorded path")
	assert.Equal(t, animate.Drawing, m.State())
	f := m.Advance(0)
	assert.Equal(t, 0, f.Step, "drawing starts over at t = 0")
}
