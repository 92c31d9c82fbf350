package kgraph

// =============================================================================
// Adjacency Precomputation
// =============================================================================

// Adjacency is a node-id → neighbor-id-set map precomputed once per snapshot
// so interaction-time lookups are O(1) instead of scanning the edge list on
// every hover or click.
type Adjacency map[string]map[string]struct{}

// BuildAdjacency builds the undirected node adjacency map from the edge list.
// Edges with missing endpoints contribute nothing; call Normalize first if
// the snapshot may contain dangling edges.
func BuildAdjacency(edges []Edge) Adjacency {
	adj := make(Adjacency)
	add := func(a, b string) {
		set, ok := adj[a]
		if !ok {
			set = make(map[string]struct{})
			adj[a] = set
		}
		set[b] = struct{}{}
	}
	for _, e := range edges {
		if e.Source == e.Target {
			continue
		}
		add(e.Source, e.Target)
		add(e.Target, e.Source)
	}
	return adj
}

// Neighbors returns the neighbor set of id, or nil when the node has none.
func (a Adjacency) Neighbors(id string) map[string]struct{} { return a[id] }

// Connected reports whether a and b share an edge in either direction.
func (a Adjacency) Connected(x, y string) bool {
	_, ok := a[x][y]
	return ok
}

// ClusterAdjacency maps cluster IDs to the set of clusters they share at
// least one inter-cluster edge with.
type ClusterAdjacency map[int]map[int]struct{}

// BuildClusterAdjacency lifts node adjacency to the cluster level: two
// clusters are adjacent when any edge connects a member of one to a member
// of the other. Nodes without a cluster assignment are ignored.
func BuildClusterAdjacency(s *Snapshot) ClusterAdjacency {
	clusterOf := make(map[string]int, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ClusterID != nil {
			clusterOf[n.ID] = *n.ClusterID
		}
	}

	adj := make(ClusterAdjacency)
	add := func(a, b int) {
		set, ok := adj[a]
		if !ok {
			set = make(map[int]struct{})
			adj[a] = set
		}
		set[b] = struct{}{}
	}
	for _, e := range s.Edges {
		ca, okA := clusterOf[e.Source]
		cb, okB := clusterOf[e.Target]
		if !okA || !okB || ca == cb {
			continue
		}
		add(ca, cb)
		add(cb, ca)
	}
	return adj
}

// Connected reports whether clusters a and b share an inter-cluster edge.
func (c ClusterAdjacency) Connected(a, b int) bool {
	_, ok := c[a][b]
	return ok
}
