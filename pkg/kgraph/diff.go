package kgraph

// =============================================================================
// Structural Diffing
// =============================================================================

// nodeShape is the structural identity of a node for diffing purposes.
// Positions, props, and centrality do not participate: they may change
// without invalidating a running layout.
type nodeShape struct {
	id, typ, name string
}

// edgeShape is the structural identity of an edge for diffing purposes.
type edgeShape struct {
	id, source, target, typ string
}

// SameShape reports whether two snapshots are structurally equal: the same
// node set (by id/type/name) and the same edge set (by id/source/target/type),
// regardless of ordering.
//
// The layout engine uses this to skip re-layout when a refetch delivered the
// same graph, so a running simulation is not restarted for nothing.
func SameShape(a, b *Snapshot) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Nodes) != len(b.Nodes) || len(a.Edges) != len(b.Edges) {
		return false
	}

	nodes := make(map[nodeShape]int, len(a.Nodes))
	for _, n := range a.Nodes {
		nodes[nodeShape{n.ID, n.Type, n.Name}]++
	}
	for _, n := range b.Nodes {
		key := nodeShape{n.ID, n.Type, n.Name}
		nodes[key]--
		if nodes[key] < 0 {
			return false
		}
	}

	edges := make(map[edgeShape]int, len(a.Edges))
	for _, e := range a.Edges {
		edges[edgeShape{e.ID, e.Source, e.Target, e.Type}]++
	}
	for _, e := range b.Edges {
		key := edgeShape{e.ID, e.Source, e.Target, e.Type}
		edges[key]--
		if edges[key] < 0 {
			return false
		}
	}

	return true
}
