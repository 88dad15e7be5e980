package integrate

import (
	"github.com/leanviz/layout3d/internal/physics"
	"github.com/leanviz/layout3d/internal/vec"
)

// Euler is a semi-implicit Euler integrator: velocity is updated from
// the current forces first, then position from the new velocity.
// Forces here are evaluated explicitly with no implicit solve, so the
// damping factor is what makes the system converge at all.
type Euler struct{}

func NewEuler() Euler {
	return Euler{}
}

// Step advances every node by dt in place and returns the total
// movement, the sum of displacement magnitudes across all nodes.
// Nodes in ids with no force entry coast on their damped velocity.
func (Euler) Step(ids []string, pos, vel map[string]vec.Vec3, forces map[string]vec.Vec3, cfg physics.Config, dt float64) float64 {
	total := 0.0
	for _, id := range ids {
		v := vel[id].Add(forces[id].Scale(dt)).Scale(cfg.Damping)
		v = v.ClampLength(cfg.MaxVelocity)
		vel[id] = v

		d := v.Scale(dt)
		pos[id] = pos[id].Add(d)
		total += d.Length()
	}
	return total
}
