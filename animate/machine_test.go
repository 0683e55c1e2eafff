package animate

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/dft"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameTime = 100 * time.Millisecond

func unitSquare() []epicycle.Pair {
	return []epicycle.Pair{epicycle.P(1, 0), epicycle.P(0, 1), epicycle.P(-1, 0), epicycle.P(0, -1)}
}

func squareMachine(t *testing.T, opts Options) *Machine {
	t.Helper()
	s, err := dft.Transform(unitSquare())
	require.NoError(t, err)
	return New(s, opts)
}

// recorder is a Painter counting what it is asked to draw.
type recorder struct {
	circles, lines, polylines int
	last                      Stroke
}

func (r *recorder) Circle(c epicycle.Pair, radius float64, s Stroke) { r.circles++; r.last = s }
func (r *recorder) Line(a, b epicycle.Pair, s Stroke)                { r.lines++; r.last = s }
func (r *recorder) Polyline(pts []epicycle.Pair, s Stroke)           { r.polylines++; r.last = s }

type failingPainter struct{ recorder }

func (fp *failingPainter) Polyline(pts []epicycle.Pair, s Stroke) { panic("surface lost") }

func TestDrawingRetracesSamples(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := squareMachine(t, DefaultOptions())
	assert.InDelta(t, math.Pi/2, m.TimeStep(), 1e-12)
	for i := 0; i < 4; i++ {
		f := m.Advance(frameTime)
		require.Equal(t, Drawing, f.State)
		assert.Equal(t, i, f.Step)
		assert.Len(t, f.Path, i+1)
		assert.True(t, f.Tip.Near(unitSquare()[i], 1e-9), "step %d: tip %v", i, f.Tip)
		assert.Equal(t, 100.0, f.EpicycleAlpha)
	}
	assert.Equal(t, EpicyclesFading, m.State())
	for i, p := range m.Path() {
		assert.True(t, p.Near(unitSquare()[i], 1e-9))
	}
}

func TestSmallEpicyclesAreNotDrawn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	coeffs := []dft.Coefficient{
		{Freq: 1, Amp: 2}, {Freq: 2, Amp: 0.05}, {Freq: 3, Amp: 0.5},
	}
	s := Stroke{Color: epicycle.White.WithAlpha(100), Width: 1}
	tip, cmds := Epicycles(epicycle.Origin, coeffs, 0, s, 0.1)
	assert.Len(t, cmds, 4, "two visible epicycles, circle and line each")
	assert.True(t, tip.Near(epicycle.P(2.55, 0), 1e-12), "tiny epicycle must still move the tip: %v", tip)
	_, cmds = Epicycles(epicycle.Origin, coeffs, 0, Stroke{}, 0.1)
	assert.Empty(t, cmds)
}

func TestFullCycleDuration(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := squareMachine(t, DefaultOptions())
	frames := 0
	seen := map[State]bool{}
	for {
		f := m.Advance(frameTime)
		frames++
		seen[f.State] = true
		if m.Cycles() == 1 {
			break
		}
		require.Less(t, frames, 1000, "lifecycle did not complete")
	}
	// 4 drawing frames + 1s epicycle fade + 10s hold + 1s path fade
	want := 4*frameTime + 1000*time.Millisecond + 10000*time.Millisecond + 1000*time.Millisecond
	assert.Equal(t, want, time.Duration(frames)*frameTime)
	assert.Len(t, seen, 4)
	assert.Equal(t, Drawing, m.State())
	assert.Empty(t, m.Path())
	assert.Equal(t, 0.0, m.T())
}

func TestSimpleLifecycleSkipsEpicycleFade(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opts := DefaultOptions()
	opts.SkipEpicycleFade = true
	m := squareMachine(t, opts)
	frames := 0
	for m.Cycles() == 0 {
		f := m.Advance(frameTime)
		assert.NotEqual(t, EpicyclesFading, f.State)
		frames++
	}
	assert.Equal(t, 4+100+10, frames)
}

func TestEveryStateReachesDrawing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, start := range []State{Drawing, EpicyclesFading, PathVisible, PathFading} {
		m := squareMachine(t, DefaultOptions())
		for m.State() != start {
			m.Advance(frameTime)
		}
		left := false
		for i := 0; i < 500; i++ {
			m.Advance(frameTime)
			if m.State() != start {
				left = true
			}
			if left && m.State() == Drawing {
				break
			}
		}
		assert.Equal(t, Drawing, m.State(), "stuck after starting in %s", start)
	}
}

func TestOpacityMonotonic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := squareMachine(t, DefaultOptions())
	var epi, path []float64
	for m.Cycles() == 0 {
		f := m.Advance(30 * time.Millisecond) // does not divide the fade durations
		switch f.State {
		case EpicyclesFading:
			epi = append(epi, f.EpicycleAlpha)
		case PathFading:
			path = append(path, f.PathAlpha)
		}
	}
	for _, seq := range [][]float64{epi, path} {
		require.NotEmpty(t, seq)
		for i := 1; i < len(seq); i++ {
			assert.LessOrEqual(t, seq[i], seq[i-1], "opacity increased at sample %d", i)
		}
		assert.Equal(t, 0.0, seq[len(seq)-1])
	}
	assert.LessOrEqual(t, len(epi), 1000/30+1)
}

func TestResetClearsPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := squareMachine(t, DefaultOptions())
	m.Advance(frameTime)
	m.Advance(frameTime)
	held := m.Path()
	m.Reset()
	assert.Equal(t, Drawing, m.State())
	assert.Empty(t, m.Path())
	assert.Len(t, held, 2, "earlier snapshots stay intact")
	f := m.Advance(frameTime)
	assert.Equal(t, 0, f.Step)
}

func TestPaintRecoversFromPainterFailure(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := squareMachine(t, DefaultOptions())
	f := m.Advance(frameTime)
	rec := &recorder{}
	require.NoError(t, f.Paint(rec))
	assert.Equal(t, 1, rec.circles)
	assert.Equal(t, 1, rec.lines)
	assert.Equal(t, 1, rec.polylines)
	assert.Equal(t, uint8(255), rec.last.Color.A)

	err := m.Advance(frameTime).Paint(&failingPainter{})
	assert.True(t, errors.Is(err, ErrPaint), "expected ErrPaint, got %v", err)
	f = m.Advance(frameTime)
	assert.Equal(t, 2, f.Step, "machine keeps running after a failed frame")
}

func TestDegenerateSpectrumAnimates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New(dft.TransformLenient(nil), DefaultOptions())
	f := m.Advance(frameTime)
	assert.True(t, f.Tip.IsOrigin())
	assert.Equal(t, EpicyclesFading, m.State())
}
