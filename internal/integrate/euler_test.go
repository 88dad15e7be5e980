package integrate

import (
	"math"
	"testing"

	"github.com/leanviz/layout3d/internal/physics"
	"github.com/leanviz/layout3d/internal/vec"
)

func TestVelocityClampPreservesDirection(t *testing.T) {
	cfg := physics.DefaultConfig()
	cfg.Damping = 1
	cfg.MaxVelocity = 10

	pos := map[string]vec.Vec3{"a": {}}
	vel := map[string]vec.Vec3{"a": {}}
	forces := map[string]vec.Vec3{"a": {X: 3e4, Y: 4e4}}

	NewEuler().Step([]string{"a"}, pos, vel, forces, cfg, 1.0)

	v := vel["a"]
	if math.Abs(v.Length()-10) > 1e-9 {
		t.Fatalf("|v| = %v, want clamp at 10", v.Length())
	}
	// Uniform rescale: direction of the 3-4-5 force is kept.
	if math.Abs(v.X-6) > 1e-9 || math.Abs(v.Y-8) > 1e-9 || v.Z != 0 {
		t.Errorf("v = %+v, want (6, 8, 0)", v)
	}
}

func TestDampingScalesVelocity(t *testing.T) {
	cfg := physics.DefaultConfig()
	cfg.Damping = 0.8

	pos := map[string]vec.Vec3{"a": {}}
	vel := map[string]vec.Vec3{"a": {X: 1}}
	forces := map[string]vec.Vec3{"a": {}}

	movement := NewEuler().Step([]string{"a"}, pos, vel, forces, cfg, 0.5)

	if math.Abs(vel["a"].X-0.8) > 1e-12 {
		t.Errorf("v = %+v, want x = 0.8", vel["a"])
	}
	if math.Abs(pos["a"].X-0.4) > 1e-12 {
		t.Errorf("p = %+v, want x = 0.4", pos["a"])
	}
	if math.Abs(movement-0.4) > 1e-12 {
		t.Errorf("movement = %v, want 0.4", movement)
	}
}

func TestTotalMovementSumsNodes(t *testing.T) {
	cfg := physics.DefaultConfig()
	cfg.Damping = 1

	pos := map[string]vec.Vec3{"a": {}, "b": {}}
	vel := map[string]vec.Vec3{"a": {X: 2}, "b": {Y: -3}}
	forces := map[string]vec.Vec3{"a": {}, "b": {}}

	movement := NewEuler().Step([]string{"a", "b"}, pos, vel, forces, cfg, 1.0)
	if math.Abs(movement-5) > 1e-12 {
		t.Errorf("movement = %v, want 5", movement)
	}
}
