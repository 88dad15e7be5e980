// Package octree implements the Barnes-Hut spatial index used for
// O(n log n) repulsion in the layout engine.
//
// The tree recursively partitions a padded bounding cube into octants,
// inserting one body per leaf with lazy subdivision. Aggregate mass and
// center-of-mass are maintained incrementally along every insertion
// path, so after Build the root invariants hold: root mass equals the
// body count and each cell's center-of-mass is the mass-weighted mean
// of its children.
//
// Force queries open a cell when size/distance >= theta and otherwise
// treat it as a single point mass. Smaller theta means more exact
// force sums at higher cost; as theta approaches zero the result
// converges to the direct pairwise sum.
//
// Cells live in a flat arena addressed by index rather than a pointer
// web. The tree is rebuilt from scratch every simulation step, and the
// arena is reused across rebuilds to keep the hot path free of
// allocator churn.
package octree
