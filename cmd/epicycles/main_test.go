package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/animate"
	"github.com/npillmayer/epicycle/config"
	"github.com/npillmayer/epicycle/dft"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareText(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := config.Default()
	cfg.Text = "Go"
	cfg.FontSize = 60
	pts, s, err := prepare(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, pts)
	assert.Equal(t, len(pts), s.N())
	assert.Equal(t, len(pts), s.Len())
}

func TestPrepareFallsBackToCircle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := config.Default()
	cfg.Text = "   "
	pts, s, err := prepare(cfg)
	require.NoError(t, err)
	assert.Len(t, pts, 100)
	c, ok := s.Coefficient(1)
	require.True(t, ok)
	assert.InDelta(t, cfg.FontSize/2, c.Amp, 1e-9, "circle is carried by frequency 1")
}

func TestPrepareSignedFrequencies(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := config.Default()
	cfg.Text = "   "
	cfg.SignedFrequencies = true
	cfg.FastTransform = true
	_, s, err := prepare(cfg)
	require.NoError(t, err)
	for _, c := range s.Coefficients() {
		assert.LessOrEqual(t, c.Freq, s.N()/2)
	}
}

func TestPrepareMissingFont(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := config.Default()
	cfg.FontFile = filepath.Join(t.TempDir(), "missing.ttf")
	_, _, err := prepare(cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSettingsFromFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := filepath.Join(t.TempDir(), "epicycles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("text: Hi\nhold: 3s\n"), 0o644))
	cfg, err := settings(path)
	require.NoError(t, err)
	assert.Equal(t, "Hi", cfg.Text)
	assert.Equal(t, 3*time.Second, cfg.Hold)
}

func TestHeadlessRunsOneCycle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []epicycle.Pair{epicycle.P(1, 0), epicycle.P(0, 1), epicycle.P(-1, 0)}
	opts := animate.DefaultOptions()
	opts.EpicycleFade = 5 * time.Millisecond
	opts.Hold = 5 * time.Millisecond
	opts.PathFade = 5 * time.Millisecond
	m := animate.New(dft.MustTransform(pts), opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, runHeadless(ctx, m, time.Millisecond, 0))
	assert.Equal(t, 1, m.Cycles())
	assert.Equal(t, animate.Drawing, m.State())
}

func TestHeadlessFrameLimit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []epicycle.Pair{epicycle.P(1, 0), epicycle.P(0, 1), epicycle.P(-1, 0), epicycle.P(0, -1)}
	m := animate.New(dft.MustTransform(pts), animate.DefaultOptions())
	require.NoError(t, runHeadless(context.Background(), m, time.Millisecond, 2))
	assert.Len(t, m.Path(), 2)
}

func TestReport(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []epicycle.Pair{epicycle.P(1, 1), epicycle.P(-1, 1), epicycle.P(-1, -1), epicycle.P(1, -1)}
	out := Report(dft.MustTransform(pts), 2)
	assert.Contains(t, out, "Spectrum of 4 samples")
	assert.Contains(t, out, "2 of 4 epicycles")
	assert.Contains(t, out, "1.4142")
	assert.Contains(t, out, "100.0%")
}
