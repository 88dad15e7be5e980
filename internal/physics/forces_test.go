package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/leanviz/layout3d/internal/graph"
	"github.com/leanviz/layout3d/internal/vec"
)

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.RepulsionStrength = 0
	cfg.SpringStrength = 0
	cfg.CenterStrength = 0
	cfg.ClusteringEnabled = false
	return cfg
}

func TestIsolatedNodeCenterGravity(t *testing.T) {
	cfg := quietConfig()
	cfg.CenterStrength = 0.05

	p := vec.Vec3{X: 3, Y: -2, Z: 5}
	in := Input{
		IDs:       []string{"a"},
		Positions: map[string]vec.Vec3{"a": p},
	}
	f := NewAccumulator().Compute(in, cfg)["a"]

	want := p.Scale(-0.05)
	if f.Sub(want).Length() > 1e-12 {
		t.Errorf("force = %+v, want exactly -p*c = %+v", f, want)
	}
}

func TestClusterSeparationPushesGroupsApart(t *testing.T) {
	cfg := quietConfig()
	cfg.ClusteringEnabled = true
	cfg.ClusteringStrength = 0
	cfg.ClusterSeparation = 1.0

	// Two groups with centroids 10 units apart on the x axis.
	positions := map[string]vec.Vec3{
		"a1": {X: -1}, "a2": {X: 1}, "a3": {Y: 1},
		"b1": {X: 9}, "b2": {X: 11}, "b3": {X: 10, Y: 1},
	}
	in := Input{
		IDs:       []string{"a1", "a2", "a3", "b1", "b2", "b3"},
		Positions: positions,
		Groups: map[string][]string{
			"ns.left":  {"a1", "a2", "a3"},
			"ns.right": {"b1", "b2", "b3"},
		},
	}
	forces := NewAccumulator().Compute(in, cfg)

	// Sign test on displacement along the inter-centroid axis: left
	// members are pushed toward -x, right members toward +x.
	for _, id := range []string{"a1", "a2", "a3"} {
		if forces[id].X >= 0 {
			t.Errorf("%s: force.X = %v, want < 0", id, forces[id].X)
		}
	}
	for _, id := range []string{"b1", "b2", "b3"} {
		if forces[id].X <= 0 {
			t.Errorf("%s: force.X = %v, want > 0", id, forces[id].X)
		}
	}
}

func TestClusteringPullsTowardOwnCentroid(t *testing.T) {
	cfg := quietConfig()
	cfg.ClusteringEnabled = true
	cfg.ClusteringStrength = 0.5
	cfg.ClusterSeparation = 0

	in := Input{
		IDs:       []string{"a", "b"},
		Positions: map[string]vec.Vec3{"a": {X: -2}, "b": {X: 2}},
		Groups:    map[string][]string{"ns": {"a", "b"}},
	}
	forces := NewAccumulator().Compute(in, cfg)

	// Centroid is the origin; both members are pulled inward with
	// strength*distance.
	if math.Abs(forces["a"].X-1) > 1e-12 || math.Abs(forces["b"].X+1) > 1e-12 {
		t.Errorf("centroid pull = %+v / %+v, want +1 / -1 on x", forces["a"], forces["b"])
	}
}

func TestDanglingReferencesSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClusteringEnabled = true

	in := Input{
		IDs:       []string{"a"},
		Positions: map[string]vec.Vec3{"a": {X: 1}},
		Edges: []graph.Edge{
			{Source: "a", Target: "gone"},
			{Source: "gone", Target: "a"},
		},
		Groups: map[string][]string{"ns": {"a", "gone"}, "empty": {"gone"}},
	}
	f := NewAccumulator().Compute(in, cfg)["a"]
	if !f.IsValid() {
		t.Fatalf("dangling references produced non-finite force %+v", f)
	}
}

func TestRepulsionSymmetric(t *testing.T) {
	cfg := quietConfig()
	cfg.RepulsionStrength = 100

	in := Input{
		IDs:       []string{"a", "b"},
		Positions: map[string]vec.Vec3{"a": {}, "b": {X: 5}},
	}
	forces := NewAccumulator().Compute(in, cfg)

	want := 100.0 / 25.0
	if math.Abs(forces["a"].X+want) > 1e-12 {
		t.Errorf("force on a = %+v, want x = %v", forces["a"], -want)
	}
	if forces["a"].Add(forces["b"]).Length() > 1e-12 {
		t.Errorf("pair forces do not cancel: %+v vs %+v", forces["a"], forces["b"])
	}
}

func TestTreeRepulsionMatchesExactPath(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ids := make([]string, 60)
	positions := make(map[string]vec.Vec3, len(ids))
	for i := range ids {
		ids[i] = string(rune('A' + i%26)) + string(rune('a'+i/26))
		positions[ids[i]] = vec.Vec3{
			X: (rng.Float64() - 0.5) * 80,
			Y: (rng.Float64() - 0.5) * 80,
			Z: (rng.Float64() - 0.5) * 80,
		}
	}
	in := Input{IDs: ids, Positions: positions}

	exact := quietConfig()
	exact.RepulsionStrength = 100
	exact.BarnesHutThreshold = 1000

	approx := exact
	approx.BarnesHutThreshold = 1 // force the octree path
	approx.Theta = 0.1

	fe := NewAccumulator().Compute(in, exact)
	fa := NewAccumulator().Compute(in, approx)
	for _, id := range ids {
		if diff := fe[id].Sub(fa[id]).Length(); diff > 0.05*fe[id].Length()+0.01 {
			t.Errorf("%s: tree force %+v deviates from exact %+v", id, fa[id], fe[id])
		}
	}
}
