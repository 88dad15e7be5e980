package octree

import (
	"github.com/leanviz/layout3d/internal/vec"
)

const (
	none int32 = -1

	// Cells smaller than this stop subdividing; further bodies are
	// absorbed into the cell aggregates only. Keeps coincident points
	// from recursing forever.
	minCell = 1e-9

	// Bounding cube padding fraction, applied to the largest extent.
	padFraction = 0.1
)

// cell is one fixed-size octree record in the arena. A leaf holds at
// most one body index; an internal cell holds child arena indices.
// Every cell along an insertion path carries the aggregate mass and
// center-of-mass of the bodies beneath it.
type cell struct {
	center   vec.Vec3
	half     float64
	com      vec.Vec3
	mass     float64
	body     int32
	children [8]int32
	leaf     bool
}

// Tree is a Barnes-Hut octree over a point set. The arena of cells is
// reused across Build calls, so the per-step full rebuild settles into
// zero allocations once capacity is warm.
type Tree struct {
	cells []cell
	pts   []vec.Vec3
	stack []int32
	root  int32
}

func New() *Tree {
	return &Tree{root: none}
}

// Reset drops all cells but keeps the arena capacity.
func (t *Tree) Reset() {
	t.cells = t.cells[:0]
	t.pts = nil
	t.root = none
}

// Build rebuilds the tree from pts. The slice is retained until the
// next Build or Reset and must not be mutated while force queries run.
func (t *Tree) Build(pts []vec.Vec3) {
	t.Reset()
	t.pts = pts
	if len(pts) == 0 {
		return
	}

	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.Z < lo.Z {
			lo.Z = p.Z
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
		if p.Z > hi.Z {
			hi.Z = p.Z
		}
	}

	extent := hi.X - lo.X
	if e := hi.Y - lo.Y; e > extent {
		extent = e
	}
	if e := hi.Z - lo.Z; e > extent {
		extent = e
	}
	half := extent/2 + extent*padFraction
	if half == 0 {
		half = 1
	}
	center := lo.Add(hi).Scale(0.5)

	t.root = t.alloc(center, half)
	for i := range pts {
		t.insert(int32(i))
	}
}

func (t *Tree) alloc(center vec.Vec3, half float64) int32 {
	t.cells = append(t.cells, cell{
		center:   center,
		half:     half,
		body:     none,
		children: [8]int32{none, none, none, none, none, none, none, none},
		leaf:     true,
	})
	return int32(len(t.cells) - 1)
}

// insert walks body down from the root, updating mass and
// center-of-mass along the path and lazily subdividing leaves.
// Indices, never pointers, are held across alloc calls: the arena
// slice may move when it grows.
func (t *Tree) insert(body int32) {
	p := t.pts[body]
	n := t.root
	for {
		nd := t.cells[n]
		t.cells[n].com = nd.com.Scale(nd.mass).Add(p).Scale(1 / (nd.mass + 1))
		t.cells[n].mass = nd.mass + 1

		if !nd.leaf {
			n = t.child(n, p)
			continue
		}
		if nd.body == none {
			t.cells[n].body = body
			return
		}
		if nd.half*2 < minCell {
			// Coincident points: counted in the aggregates above,
			// not stored individually.
			return
		}

		old := nd.body
		t.cells[n].body = none
		t.cells[n].leaf = false
		oc := t.child(n, t.pts[old])
		t.cells[oc].com = t.pts[old]
		t.cells[oc].mass = 1
		t.cells[oc].body = old
		n = t.child(n, p)
	}
}

// child returns the octant of n containing p, allocating it on first
// use.
func (t *Tree) child(n int32, p vec.Vec3) int32 {
	c := t.cells[n].center
	o := 0
	if p.X >= c.X {
		o |= 1
	}
	if p.Y >= c.Y {
		o |= 2
	}
	if p.Z >= c.Z {
		o |= 4
	}
	ch := t.cells[n].children[o]
	if ch == none {
		h := t.cells[n].half / 2
		cc := c
		if o&1 != 0 {
			cc.X += h
		} else {
			cc.X -= h
		}
		if o&2 != 0 {
			cc.Y += h
		} else {
			cc.Y -= h
		}
		if o&4 != 0 {
			cc.Z += h
		} else {
			cc.Z -= h
		}
		ch = t.alloc(cc, h)
		t.cells[n].children[o] = ch
	}
	return ch
}

// ForceOn computes the approximate repulsive force on body i.
// Magnitude per contribution is strength*mass/d², directed away from
// the contributing mass. A cell whose size-to-distance ratio is below
// theta is taken whole at its center-of-mass; leaves are always exact.
// Distances are clamped to minDist to avoid singularities.
func (t *Tree) ForceOn(i int, theta, strength, minDist float64) vec.Vec3 {
	var f vec.Vec3
	if t.root == none {
		return f
	}
	p := t.pts[i]
	t.stack = append(t.stack[:0], t.root)
	for len(t.stack) > 0 {
		n := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		nd := &t.cells[n]
		if nd.mass == 0 {
			continue
		}
		if nd.leaf && nd.body == int32(i) {
			continue
		}

		sep := p.Sub(nd.com)
		dist := sep.Length()
		if nd.leaf || nd.half*2 < theta*dist {
			if dist < minDist {
				dist = minDist
				if sep.IsZero() {
					sep = vec.Vec3{X: minDist}
				}
			}
			mag := strength * nd.mass / (dist * dist)
			f = f.Add(sep.Normalize().Scale(mag))
			continue
		}
		for _, c := range nd.children {
			if c != none {
				t.stack = append(t.stack, c)
			}
		}
	}
	return f
}

// RootMass returns the total body count held by the tree.
func (t *Tree) RootMass() float64 {
	if t.root == none {
		return 0
	}
	return t.cells[t.root].mass
}

// RootCenter returns the center-of-mass of all bodies.
func (t *Tree) RootCenter() vec.Vec3 {
	if t.root == none {
		return vec.Vec3{}
	}
	return t.cells[t.root].com
}

// Len returns the number of allocated cells, mostly useful for
// inspecting arena reuse.
func (t *Tree) Len() int {
	return len(t.cells)
}
