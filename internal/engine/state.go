package engine

import (
	"sort"

	"github.com/leanviz/layout3d/internal/graph"
	"github.com/leanviz/layout3d/internal/physics"
	"github.com/leanviz/layout3d/internal/vec"
)

// State is the complete mutable state of one running simulation:
// positions, velocities, topology, configuration and any derived
// values. It is owned by exactly one Session and never shared.
//
// Position and velocity key sets are always identical; NewState
// creates a zero velocity for any node the caller did not supply one
// for and drops velocities for unknown nodes.
type State struct {
	IDs        []string
	Positions  map[string]vec.Vec3
	Velocities map[string]vec.Vec3
	Edges      []graph.Edge
	Groups     map[string][]string
	Degrees    map[string]graph.Degree
	Config     physics.Config
}

func NewState(positions, velocities map[string]vec.Vec3, edges []graph.Edge, cfg physics.Config, groups map[string][]string) *State {
	s := &State{
		IDs:        make([]string, 0, len(positions)),
		Positions:  make(map[string]vec.Vec3, len(positions)),
		Velocities: make(map[string]vec.Vec3, len(positions)),
		Edges:      append([]graph.Edge(nil), edges...),
		Groups:     groups,
		Config:     cfg,
	}
	for id, p := range positions {
		s.IDs = append(s.IDs, id)
		s.Positions[id] = p
		s.Velocities[id] = velocities[id]
	}
	// Map iteration order is random; fix it so runs are reproducible.
	sort.Strings(s.IDs)

	s.ensureDegrees()
	return s
}

// ensureDegrees precomputes node degrees when adaptive springs need
// them. Doing this here, once, keeps the per-step hot loop free of
// conditional derivation.
func (s *State) ensureDegrees() {
	if s.Config.AdaptiveSpringEnabled && s.Degrees == nil {
		s.Degrees = graph.Degrees(s.Edges)
	}
}

// Input exposes the state to the force accumulator.
func (s *State) Input() physics.Input {
	return physics.Input{
		IDs:       s.IDs,
		Positions: s.Positions,
		Edges:     s.Edges,
		Groups:    s.Groups,
		Degrees:   s.Degrees,
	}
}

// Snapshot copies the current positions. The copy is what crosses the
// worker boundary; the live maps never leave the simulation.
func (s *State) Snapshot() map[string]vec.Vec3 {
	out := make(map[string]vec.Vec3, len(s.Positions))
	for id, p := range s.Positions {
		out[id] = p
	}
	return out
}
