package engine

import (
	"github.com/leanviz/layout3d/internal/graph"
	"github.com/leanviz/layout3d/internal/physics"
	"github.com/leanviz/layout3d/internal/vec"
)

// Command is the closed set of messages a Worker accepts. The marker
// method keeps the union closed so the dispatch switch in the worker
// loop covers every kind by construction.
type Command interface{ isCommand() }

// Init builds a fresh simulation state and moves the worker to
// Initialized from any non-killed phase. Velocities and Groups are
// optional.
type Init struct {
	Positions  map[string]vec.Vec3
	Velocities map[string]vec.Vec3
	Edges      []graph.Edge
	Physics    physics.Config
	Groups     map[string][]string
}

// Step runs one simulation step. Dt <= 0 means the default timestep.
// Before Init it is a silent no-op; from Stopped it resumes.
type Step struct {
	Dt float64
}

// Stop pauses stepping; state is retained and a later Step resumes.
type Stop struct{}

// UpdatePhysics merges a partial config (and optionally new namespace
// groups) into the running state and resets convergence tracking.
type UpdatePhysics struct {
	Physics physics.Partial
	Groups  map[string][]string
}

// Kill terminates the worker and releases all state. Terminal.
type Kill struct{}

func (Init) isCommand()          {}
func (Step) isCommand()          {}
func (Stop) isCommand()          {}
func (UpdatePhysics) isCommand() {}
func (Kill) isCommand()          {}

// Event is the closed set of worker notifications.
type Event interface{ isEvent() }

// Positions carries a snapshot of node positions after a step together
// with the step's total movement and the consecutive quiet-step count.
type Positions struct {
	Positions    map[string]vec.Vec3
	Movement     float64
	StableFrames int
}

// Stable is emitted once per Init/UpdatePhysics cycle, on the step
// that crossed the convergence run. Consumers should stop requesting
// steps when they see it.
type Stable struct {
	StableFrames int
	Steps        int
}

func (Positions) isEvent() {}
func (Stable) isEvent()    {}

// Phase is the worker lifecycle state.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseInitialized
	PhaseRunning
	PhaseStopped
	PhaseKilled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitialized:
		return "initialized"
	case PhaseRunning:
		return "running"
	case PhaseStopped:
		return "stopped"
	case PhaseKilled:
		return "killed"
	}
	return "unknown"
}
