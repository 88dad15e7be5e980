package server

import (
	"encoding/json"
	"fmt"

	"github.com/leanviz/layout3d/internal/engine"
	"github.com/leanviz/layout3d/internal/graph"
	"github.com/leanviz/layout3d/internal/physics"
	"github.com/leanviz/layout3d/internal/vec"
)

// wireCommand is the inbound JSON envelope. Type selects the command;
// the other fields are read per type and ignored otherwise.
type wireCommand struct {
	Type            string                `json:"type"`
	Positions       map[string][3]float64 `json:"positions,omitempty"`
	Velocities      map[string][3]float64 `json:"velocities,omitempty"`
	Edges           []graph.Edge          `json:"edges,omitempty"`
	Physics         json.RawMessage       `json:"physics,omitempty"`
	NamespaceGroups map[string][]string   `json:"namespaceGroups,omitempty"`
	Dt              float64               `json:"dt,omitempty"`
}

type wireEvent struct {
	Type         string                `json:"type"`
	Positions    map[string][3]float64 `json:"positions,omitempty"`
	Movement     float64               `json:"movement,omitempty"`
	StableFrames int                   `json:"stableFrames"`
	Steps        int                   `json:"steps,omitempty"`
}

func toVecs(m map[string][3]float64) map[string]vec.Vec3 {
	if m == nil {
		return nil
	}
	out := make(map[string]vec.Vec3, len(m))
	for id, p := range m {
		out[id] = vec.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

func fromVecs(m map[string]vec.Vec3) map[string][3]float64 {
	out := make(map[string][3]float64, len(m))
	for id, p := range m {
		out[id] = [3]float64{p.X, p.Y, p.Z}
	}
	return out
}

// decodeCommand translates one JSON message into an engine command.
func decodeCommand(data []byte) (engine.Command, error) {
	var w wireCommand
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}

	switch w.Type {
	case "init":
		// Absent physics fields fall back to defaults rather than
		// zeroes; a zero damping would never converge.
		cfg := physics.DefaultConfig()
		if len(w.Physics) > 0 {
			if err := json.Unmarshal(w.Physics, &cfg); err != nil {
				return nil, fmt.Errorf("decode physics: %w", err)
			}
		}
		return engine.Init{
			Positions:  toVecs(w.Positions),
			Velocities: toVecs(w.Velocities),
			Edges:      w.Edges,
			Physics:    cfg,
			Groups:     w.NamespaceGroups,
		}, nil
	case "step":
		return engine.Step{Dt: w.Dt}, nil
	case "stop":
		return engine.Stop{}, nil
	case "updatePhysics":
		var partial physics.Partial
		if len(w.Physics) > 0 {
			if err := json.Unmarshal(w.Physics, &partial); err != nil {
				return nil, fmt.Errorf("decode physics: %w", err)
			}
		}
		return engine.UpdatePhysics{Physics: partial, Groups: w.NamespaceGroups}, nil
	case "kill":
		return engine.Kill{}, nil
	}
	return nil, fmt.Errorf("unknown command type %q", w.Type)
}

// encodeEvent translates an engine event into its wire envelope.
func encodeEvent(e engine.Event) wireEvent {
	switch ev := e.(type) {
	case engine.Positions:
		return wireEvent{
			Type:         "positions",
			Positions:    fromVecs(ev.Positions),
			Movement:     ev.Movement,
			StableFrames: ev.StableFrames,
		}
	case engine.Stable:
		return wireEvent{
			Type:         "stable",
			StableFrames: ev.StableFrames,
			Steps:        ev.Steps,
		}
	}
	return wireEvent{Type: "unknown"}
}
