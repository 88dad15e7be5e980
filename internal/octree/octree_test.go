package octree

import (
	"math/rand"
	"testing"

	"github.com/leanviz/layout3d/internal/vec"
)

func randomPoints(n int, seed int64, scale float64) []vec.Vec3 {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]vec.Vec3, n)
	for i := range pts {
		pts[i] = vec.Vec3{
			X: (rng.Float64() - 0.5) * scale,
			Y: (rng.Float64() - 0.5) * scale,
			Z: (rng.Float64() - 0.5) * scale,
		}
	}
	return pts
}

// exactForce is the direct O(n²) pairwise sum the tree approximates.
func exactForce(pts []vec.Vec3, i int, strength, minDist float64) vec.Vec3 {
	var f vec.Vec3
	for j, p := range pts {
		if j == i {
			continue
		}
		sep := pts[i].Sub(p)
		dist := sep.Length()
		if dist < minDist {
			dist = minDist
		}
		f = f.Add(sep.Normalize().Scale(strength / (dist * dist)))
	}
	return f
}

func TestRootAggregates(t *testing.T) {
	pts := randomPoints(50, 1, 100)
	tree := New()
	tree.Build(pts)

	if got := tree.RootMass(); got != 50 {
		t.Fatalf("root mass = %v, want 50", got)
	}

	var mean vec.Vec3
	for _, p := range pts {
		mean = mean.Add(p)
	}
	mean = mean.Scale(1.0 / 50)

	com := tree.RootCenter()
	if com.Distance(mean) > 1e-9 {
		t.Errorf("root center-of-mass = %+v, want mean %+v", com, mean)
	}
}

func TestZeroThetaMatchesExact(t *testing.T) {
	pts := randomPoints(80, 2, 50)
	tree := New()
	tree.Build(pts)

	for i := range pts {
		got := tree.ForceOn(i, 0, 100, 1e-4)
		want := exactForce(pts, i, 100, 1e-4)
		if got.Sub(want).Length() > 1e-9*want.Length()+1e-12 {
			t.Fatalf("body %d: theta=0 force %+v differs from exact %+v", i, got, want)
		}
	}
}

func TestApproximationError(t *testing.T) {
	pts := randomPoints(200, 3, 100)
	tree := New()
	tree.Build(pts)

	// Bodies near the middle of the cloud have a tiny net force, so
	// the bound mixes a relative and an absolute term instead of a
	// bare percentage.
	for i := 0; i < len(pts); i += 7 {
		got := tree.ForceOn(i, 0.5, 100, 1e-4)
		want := exactForce(pts, i, 100, 1e-4)
		if err := got.Sub(want).Length(); err > 0.15*want.Length()+0.3 {
			t.Errorf("body %d: approximation error %v too large for |exact| %v", i, err, want.Length())
		}
	}
}

func TestEmptyAndSingle(t *testing.T) {
	tree := New()
	tree.Build(nil)
	if tree.RootMass() != 0 {
		t.Errorf("empty tree mass = %v", tree.RootMass())
	}

	tree.Build([]vec.Vec3{{X: 1, Y: 2, Z: 3}})
	if tree.RootMass() != 1 {
		t.Errorf("single-point mass = %v", tree.RootMass())
	}
	if f := tree.ForceOn(0, 0.7, 100, 1e-4); !f.IsZero() {
		t.Errorf("lone body repels itself: %+v", f)
	}
}

func TestCoincidentPoints(t *testing.T) {
	pts := make([]vec.Vec3, 10)
	for i := range pts {
		pts[i] = vec.Vec3{X: 1, Y: 1, Z: 1}
	}
	tree := New()
	tree.Build(pts)

	if got := tree.RootMass(); got != 10 {
		t.Errorf("root mass = %v, want 10", got)
	}
	f := tree.ForceOn(0, 0.7, 100, 1e-4)
	if !f.IsValid() {
		t.Errorf("coincident points produced non-finite force %+v", f)
	}
}

func TestArenaReuse(t *testing.T) {
	pts := randomPoints(100, 4, 100)
	tree := New()
	tree.Build(pts)
	first := tree.Len()
	for i := 0; i < 5; i++ {
		tree.Build(pts)
	}
	if tree.Len() != first {
		t.Errorf("cell count drifted across rebuilds: %d != %d", tree.Len(), first)
	}
}

func BenchmarkBuild(b *testing.B) {
	pts := randomPoints(2000, 5, 200)
	tree := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Build(pts)
	}
}

func BenchmarkForceOn(b *testing.B) {
	pts := randomPoints(2000, 6, 200)
	tree := New()
	tree.Build(pts)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.ForceOn(i%len(pts), 0.7, 100, 1e-4)
	}
}
