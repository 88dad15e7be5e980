package graph

// Degree holds per-node edge counts. Total is In+Out, counting a
// self-loop twice, which is what the spring model wants: a hub's rest
// length grows with how crowded its neighborhood is.
type Degree struct {
	In    int
	Out   int
	Total int
}

// Degrees derives the degree map for every node mentioned by an edge.
// Nodes with no edges simply have no entry; lookups default to zero.
func Degrees(edges []Edge) map[string]Degree {
	degrees := make(map[string]Degree)
	for _, e := range edges {
		src := degrees[e.Source]
		src.Out++
		src.Total++
		degrees[e.Source] = src

		dst := degrees[e.Target]
		dst.In++
		dst.Total++
		degrees[e.Target] = dst
	}
	return degrees
}
