package engine

import (
	"github.com/leanviz/layout3d/internal/graph"
	"github.com/leanviz/layout3d/internal/integrate"
	"github.com/leanviz/layout3d/internal/physics"
	"github.com/leanviz/layout3d/internal/stability"
	"github.com/leanviz/layout3d/internal/vec"
)

// StepResult summarizes one simulation step.
type StepResult struct {
	Movement     float64
	StableFrames int
	// BecameStable is set on exactly the step that crossed the
	// convergence threshold.
	BecameStable bool
}

// Session is the synchronous layout engine: force accumulation,
// integration and convergence tracking over one State. It has no
// notion of threads; Worker wraps it in a goroutine for callers that
// want the asynchronous protocol, and environments without one can
// drive a Session directly with identical results.
type Session struct {
	state   *State
	acc     *physics.Accumulator
	integ   integrate.Euler
	monitor *stability.Monitor
	steps   int
}

func NewSession() *Session {
	return &Session{
		acc:     physics.NewAccumulator(),
		integ:   integrate.NewEuler(),
		monitor: stability.NewMonitor(stability.DefaultThreshold, stability.DefaultRun),
	}
}

// SetStability replaces the convergence thresholds and resets the
// monitor.
func (s *Session) SetStability(threshold float64, run int) {
	s.monitor = stability.NewMonitor(threshold, run)
}

// Init replaces the simulation state. Velocities may be nil; missing
// entries start at rest. Any previous state, including convergence
// progress, is discarded.
func (s *Session) Init(positions, velocities map[string]vec.Vec3, edges []graph.Edge, cfg physics.Config, groups map[string][]string) {
	s.state = NewState(positions, velocities, edges, cfg, groups)
	s.monitor.Reset()
	s.steps = 0
}

// Step advances the simulation by dt (DefaultDt when dt <= 0). With no
// state or an empty node set it is a no-op reporting zero movement.
func (s *Session) Step(dt float64) StepResult {
	if dt <= 0 {
		dt = physics.DefaultDt
	}
	if s.state == nil || len(s.state.IDs) == 0 {
		return StepResult{}
	}

	forces := s.acc.Compute(s.state.Input(), s.state.Config)
	movement := s.integ.Step(s.state.IDs, s.state.Positions, s.state.Velocities, forces, s.state.Config, dt)
	frames, became := s.monitor.Observe(movement)
	s.steps++

	return StepResult{Movement: movement, StableFrames: frames, BecameStable: became}
}

// UpdatePhysics merges a partial config into the running state and
// resets convergence tracking. Without an initialized state only the
// reset happens; there is nothing to merge into, and the next Init
// carries a full config anyway.
func (s *Session) UpdatePhysics(p physics.Partial, groups map[string][]string) {
	if s.state != nil {
		p.Apply(&s.state.Config)
		if groups != nil {
			s.state.Groups = groups
		}
		s.state.ensureDegrees()
	}
	s.monitor.Reset()
}

// Positions returns a snapshot copy of the current positions, nil
// before Init.
func (s *Session) Positions() map[string]vec.Vec3 {
	if s.state == nil {
		return nil
	}
	return s.state.Snapshot()
}

// Stable reports whether the layout has converged.
func (s *Session) Stable() bool {
	return s.monitor.Stable()
}

// Steps returns the number of steps taken since the last Init.
func (s *Session) Steps() int {
	return s.steps
}

// Release drops all simulation state.
func (s *Session) Release() {
	s.state = nil
	s.monitor.Reset()
	s.steps = 0
}
