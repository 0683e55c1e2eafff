/*
Package animate runs an epicycle reconstruction as an endless animation.

A Machine owns the whole animation state. It is driven by a frame loop
calling Advance once per display refresh with the wall clock time passed
since the previous call. Each call returns a Frame, a list of drawing
commands for a Painter.

The lifecycle is

	Drawing → EpicyclesFading → PathVisible → PathFading → Drawing …

Drawing takes exactly N frames for N samples, one per time step 2π/N.
The other phases are timed by wall clock: the epicycles fade out, the
completed path is held, then faded out, and the machine starts over with
an empty path.

A Machine is not safe for concurrent use; it is meant to be owned by a
single frame loop.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package animate

import (
	"fmt"
	"time"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/dft"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle.animate'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.animate")
}

// State is a phase of the animation lifecycle.
type State int

// Lifecycle phases, in order.
const (
	Drawing State = iota
	EpicyclesFading
	PathVisible
	PathFading
)

func (s State) String() string {
	switch s {
	case Drawing:
		return "drawing"
	case EpicyclesFading:
		return "epicycles-fading"
	case PathVisible:
		return "path-visible"
	case PathFading:
		return "path-fading"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Options configure a Machine. All values are fixed for the lifetime of
// the machine.
type Options struct {
	EpicycleFade     time.Duration // duration of the epicycle fade-out
	Hold             time.Duration // how long the completed path stays visible
	PathFade         time.Duration // duration of the path fade-out
	MinAmplitude     float64       // epicycles below are not drawn
	EpicycleAlpha    float64       // initial epicycle opacity, 0…255
	PathAlpha        float64       // initial path opacity, 0…255
	EpicycleStroke   Stroke        // alpha is overridden by the lifecycle
	PathStroke       Stroke        // alpha is overridden by the lifecycle
	Center           epicycle.Pair // where the epicycle chain is anchored
	SkipEpicycleFade bool          // go from Drawing straight to PathVisible
}

// DefaultOptions returns the standard timing: 1s epicycle fade, 10s hold,
// 1s path fade, epicycles at opacity 100, path at 255.
func DefaultOptions() Options {
	return Options{
		EpicycleFade:   1000 * time.Millisecond,
		Hold:           10000 * time.Millisecond,
		PathFade:       1000 * time.Millisecond,
		MinAmplitude:   0.1,
		EpicycleAlpha:  100,
		PathAlpha:      255,
		EpicycleStroke: Stroke{Color: epicycle.White, Width: 1},
		PathStroke:     Stroke{Color: epicycle.White, Width: 2},
		Center:         epicycle.Origin,
	}
}

// Frame is the outcome of one Advance: the state it was rendered in and the
// drawing commands for it.
type Frame struct {
	State         State
	Step          int     // time step within the drawing phase, 0…N-1
	T             float64 // time parameter, 0 ≤ T < 2π
	EpicycleAlpha float64
	PathAlpha     float64
	Tip           epicycle.Pair   // tip of the epicycle chain, if epicycles are shown
	Path          []epicycle.Pair // recorded path; shared, do not modify
	Commands      []Command
}

// Machine is the epicycle animation state machine.
type Machine struct {
	opts   Options
	ranked []dft.Coefficient
	n      int     // original sample count
	dt     float64 // time step per frame, 2π/n
	state  State
	step   int
	path   []epicycle.Pair
	clock  time.Duration // accumulated wall clock
	since  time.Duration // clock at entry into the current state
	epiA   float64
	pathA  float64
	cycles int
}

// New creates a machine for spectrum s. The coefficients are ranked once,
// so that the epicycle chain is drawn from the largest to the smallest
// circle.
func New(s *dft.Spectrum, opts Options) *Machine {
	n := s.N()
	if n < 1 {
		n = 1
	}
	m := &Machine{
		opts:   opts,
		ranked: s.Ranked(),
		n:      n,
		dt:     epicycle.TwoPi / float64(n),
	}
	m.Reset()
	tracer().Infof("animating %d epicycles for %d samples", len(m.ranked), n)
	return m
}

// Reset starts the lifecycle over: an empty path, t = 0, initial opacities.
func (m *Machine) Reset() {
	m.state = Drawing
	m.step = 0
	m.path = nil
	m.epiA = m.opts.EpicycleAlpha
	m.pathA = m.opts.PathAlpha
	m.since = m.clock
}

// State is the current lifecycle phase.
func (m *Machine) State() State {
	return m.state
}

// T is the current time parameter.
func (m *Machine) T() float64 {
	return float64(m.step%m.n) * m.dt
}

// TimeStep is the advance of the time parameter per drawing frame.
func (m *Machine) TimeStep() float64 {
	return m.dt
}

// Path returns the recorded path.
func (m *Machine) Path() []epicycle.Pair {
	return m.path[:len(m.path):len(m.path)]
}

// Cycles counts the completed lifecycles.
func (m *Machine) Cycles() int {
	return m.cycles
}

// Advance moves the animation by one frame, dt being the wall clock time
// passed since the previous frame. Negative dt counts as 0.
func (m *Machine) Advance(dt time.Duration) *Frame {
	if dt > 0 {
		m.clock += dt
	}
	f := &Frame{}
	switch m.state {
	case Drawing:
		m.draw(f)
	case EpicyclesFading:
		m.fadeEpicycles(f)
	case PathVisible:
		m.hold(f)
	case PathFading:
		m.fadePath(f)
	}
	return f
}

func (m *Machine) enter(s State) {
	tracer().Debugf("%s → %s after %v", m.state, s, m.clock-m.since)
	m.state = s
	m.since = m.clock
}

// ratio is the fraction of d passed since entering the current state,
// clamped to 0…1.
func (m *Machine) ratio(d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	r := float64(m.clock-m.since) / float64(d)
	if r > 1 {
		r = 1
	}
	return r
}

func (m *Machine) draw(f *Frame) {
	f.Step = m.step
	m.epicycles(f, m.T())
	m.path = append(m.path, f.Tip)
	m.pathFrame(f)
	m.step++
	if m.step >= m.n {
		if m.opts.SkipEpicycleFade {
			m.enter(PathVisible)
		} else {
			m.enter(EpicyclesFading)
		}
	}
}

func (m *Machine) fadeEpicycles(f *Frame) {
	r := m.ratio(m.opts.EpicycleFade)
	m.epiA = m.opts.EpicycleAlpha * (1 - r)
	if r >= 1 {
		m.epiA = 0
	}
	m.epicycles(f, m.T())
	m.pathFrame(f)
	if r >= 1 {
		m.enter(PathVisible)
	}
}

func (m *Machine) hold(f *Frame) {
	if m.clock-m.since >= m.opts.Hold {
		m.enter(PathFading)
		m.fadePath(f)
		return
	}
	m.pathFrame(f)
}

func (m *Machine) fadePath(f *Frame) {
	r := m.ratio(m.opts.PathFade)
	m.pathA = m.opts.PathAlpha * (1 - r)
	if r >= 1 {
		m.pathA = 0
	}
	m.pathFrame(f)
	if r >= 1 {
		m.cycles++
		tracer().Infof("lifecycle %d complete, restarting", m.cycles)
		m.Reset()
	}
}

// epicycles adds the epicycle chain at time t to f.
func (m *Machine) epicycles(f *Frame, t float64) {
	s := m.opts.EpicycleStroke
	s.Color = s.Color.WithAlpha(m.epiA)
	f.T = t
	f.EpicycleAlpha = m.epiA
	f.Tip, f.Commands = Epicycles(m.opts.Center, m.ranked, t, s, m.opts.MinAmplitude)
}

// pathFrame finishes f with the recorded path.
func (m *Machine) pathFrame(f *Frame) {
	f.State = m.state
	f.PathAlpha = m.pathA
	f.Path = m.Path()
	if len(f.Path) > 0 && m.pathA > 0 {
		s := m.opts.PathStroke
		s.Color = s.Color.WithAlpha(m.pathA)
		f.Commands = append(f.Commands, Polyline{Points: f.Path, Stroke: s})
	}
}
