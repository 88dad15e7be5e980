package physics

import (
	"github.com/leanviz/layout3d/internal/graph"
	"github.com/leanviz/layout3d/internal/octree"
	"github.com/leanviz/layout3d/internal/vec"
)

// Input is everything the force pass reads. IDs fixes the iteration
// order; Positions must have an entry for every id. Edges or group
// members referencing unknown ids are skipped for that term, since an
// upstream filter may be rewriting the graph while the layout runs.
type Input struct {
	IDs       []string
	Positions map[string]vec.Vec3
	Edges     []graph.Edge
	Groups    map[string][]string
	Degrees   map[string]graph.Degree
}

// Accumulator computes per-node net forces. It owns scratch buffers
// (octree arena, position slice, force map) that are reused across
// calls, so one Accumulator serves exactly one simulation.
type Accumulator struct {
	tree      *octree.Tree
	pts       []vec.Vec3
	forces    map[string]vec.Vec3
	centroids map[string]vec.Vec3
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		tree:      octree.New(),
		forces:    make(map[string]vec.Vec3),
		centroids: make(map[string]vec.Vec3),
	}
}

// Compute returns the net force on every node in in.IDs. The returned
// map is owned by the Accumulator and valid until the next Compute.
// Forces are additive, so the term order below is irrelevant.
func (a *Accumulator) Compute(in Input, cfg Config) map[string]vec.Vec3 {
	for id := range a.forces {
		delete(a.forces, id)
	}
	for _, id := range in.IDs {
		a.forces[id] = vec.Vec3{}
	}

	a.repulsion(in, cfg)
	a.springs(in, cfg)
	if cfg.ClusteringEnabled {
		a.clustering(in, cfg)
	}
	a.centerGravity(in, cfg)

	return a.forces
}

// repulsion applies strength/d² between every unordered pair, exactly
// for small graphs and through the Barnes-Hut octree above the
// configured threshold.
func (a *Accumulator) repulsion(in Input, cfg Config) {
	n := len(in.IDs)
	if n < 2 || cfg.RepulsionStrength == 0 {
		return
	}

	if n <= cfg.BarnesHutThreshold {
		a.repulsionExact(in, cfg)
		return
	}

	a.pts = a.pts[:0]
	for _, id := range in.IDs {
		a.pts = append(a.pts, in.Positions[id])
	}
	a.tree.Build(a.pts)
	for i, id := range in.IDs {
		f := a.tree.ForceOn(i, cfg.Theta, cfg.RepulsionStrength, DefaultMinDist)
		a.forces[id] = a.forces[id].Add(f)
	}
}

func (a *Accumulator) repulsionExact(in Input, cfg Config) {
	for i := 0; i < len(in.IDs); i++ {
		pi := in.Positions[in.IDs[i]]
		for j := i + 1; j < len(in.IDs); j++ {
			pj := in.Positions[in.IDs[j]]
			sep := pi.Sub(pj)
			dist := sep.Length()
			if dist < DefaultMinDist {
				dist = DefaultMinDist
				if sep.IsZero() {
					sep = vec.Vec3{X: DefaultMinDist}
				}
			}
			f := sep.Normalize().Scale(cfg.RepulsionStrength / (dist * dist))
			a.forces[in.IDs[i]] = a.forces[in.IDs[i]].Add(f)
			a.forces[in.IDs[j]] = a.forces[in.IDs[j]].Sub(f)
		}
	}
}

// springs applies Hooke's law along every edge toward its rest length.
// Edge direction is ignored; a dependency is a symmetric constraint.
func (a *Accumulator) springs(in Input, cfg Config) {
	for _, e := range in.Edges {
		ps, ok := in.Positions[e.Source]
		if !ok {
			continue
		}
		pt, ok := in.Positions[e.Target]
		if !ok {
			continue
		}

		rest := cfg.SpringLength
		if cfg.AdaptiveSpringEnabled {
			deg := in.Degrees[e.Source].Total
			if d := in.Degrees[e.Target].Total; d > deg {
				deg = d
			}
			rest = RestLength(cfg, deg)
		}

		sep := pt.Sub(ps)
		dist := sep.Length()
		if dist < DefaultMinDist {
			dist = DefaultMinDist
			if sep.IsZero() {
				sep = vec.Vec3{X: DefaultMinDist}
			}
		}
		// Positive stretch pulls the endpoints together.
		f := sep.Normalize().Scale(cfg.SpringStrength * (dist - rest))
		a.forces[e.Source] = a.forces[e.Source].Add(f)
		a.forces[e.Target] = a.forces[e.Target].Sub(f)
	}
}

// clustering pulls each group member toward its own group centroid and
// pushes it away from every other group's centroid, producing visually
// separated namespace clusters without hard boundaries.
func (a *Accumulator) clustering(in Input, cfg Config) {
	if len(in.Groups) == 0 {
		return
	}

	for gid := range a.centroids {
		delete(a.centroids, gid)
	}
	for gid, members := range in.Groups {
		var sum vec.Vec3
		count := 0
		for _, id := range members {
			if p, ok := in.Positions[id]; ok {
				sum = sum.Add(p)
				count++
			}
		}
		if count > 0 {
			a.centroids[gid] = sum.Scale(1 / float64(count))
		}
	}

	for gid, members := range in.Groups {
		own, ok := a.centroids[gid]
		if !ok {
			continue
		}
		for _, id := range members {
			p, ok := in.Positions[id]
			if !ok {
				continue
			}
			f := own.Sub(p).Scale(cfg.ClusteringStrength)
			for other, c := range a.centroids {
				if other == gid {
					continue
				}
				sep := p.Sub(c)
				dist := sep.Length()
				if dist < DefaultMinDist {
					dist = DefaultMinDist
					if sep.IsZero() {
						sep = vec.Vec3{X: DefaultMinDist}
					}
				}
				f = f.Add(sep.Normalize().Scale(cfg.ClusterSeparation / (dist * dist)))
			}
			a.forces[id] = a.forces[id].Add(f)
		}
	}
}

// centerGravity pulls everything toward the origin, bounding drift of
// the layout as a whole.
func (a *Accumulator) centerGravity(in Input, cfg Config) {
	if cfg.CenterStrength == 0 {
		return
	}
	for _, id := range in.IDs {
		a.forces[id] = a.forces[id].Add(in.Positions[id].Scale(-cfg.CenterStrength))
	}
}
