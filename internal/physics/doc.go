// Package physics defines the force model for the 3D layout engine.
//
// Four force terms combine additively into a per-node net force:
//
//   - Repulsion: strength/d² between every unordered pair, computed
//     exactly for small graphs and through the Barnes-Hut octree above
//     [Config.BarnesHutThreshold] nodes.
//   - Adaptive springs: Hooke's law per edge toward a rest length that
//     optionally grows with node degree, see [RestLength].
//   - Namespace clustering: attraction to the own group centroid plus
//     inverse-square separation from other group centroids.
//   - Center gravity: -position·CenterStrength.
//
// The package is purely functional over its [Input]; it never touches
// velocities or positions, which belong to the integrator.
package physics
