package render

import (
	"github.com/conceptatlas/atlas/pkg/kgraph"
)

// =============================================================================
// Graph Data Adapter
// =============================================================================

// NodeRecord is a render-ready node: domain data reduced to the attributes
// the visual encoder needs.
type NodeRecord struct {
	ID          string
	Label       string
	Type        string
	SizeWeight  float64 // centrality-derived size input
	ColorKey    string  // cluster color key, empty when unclustered
	ClusterID   int     // valid only when ColorKey is non-empty
	Highlighted bool
	Bridge      bool
}

// EdgeRecord is a render-ready edge.
type EdgeRecord struct {
	ID          string
	Source      string
	Target      string
	WidthWeight float64 // raw weight; sinks normalize against the dataset max
	ColorKind   string  // relationship-type tag
	Ghost       bool
	Highlighted bool
}

// BuildNodes maps domain nodes to render records. Pure function of its
// inputs: same snapshot and highlight set, same records.
func BuildNodes(nodes []kgraph.Node, clusters []kgraph.Cluster, centrality kgraph.Centrality, highlighted map[string]struct{}) []NodeRecord {
	colorKeys := make(map[int]string, len(clusters))
	for _, c := range clusters {
		colorKeys[c.ID] = c.ColorKey()
	}

	out := make([]NodeRecord, 0, len(nodes))
	for _, n := range nodes {
		rec := NodeRecord{
			ID:         n.ID,
			Label:      n.DisplayName(),
			Type:       n.Type,
			SizeWeight: centrality.Get(n.ID),
			Bridge:     n.Bridge,
		}
		if n.ClusterID != nil {
			rec.ClusterID = *n.ClusterID
			if key, ok := colorKeys[*n.ClusterID]; ok {
				rec.ColorKey = key
			}
		}
		if _, ok := highlighted[n.ID]; ok {
			rec.Highlighted = true
		}
		out = append(out, rec)
	}
	return out
}

// BuildEdges maps domain edges to render records. Edges referencing nodes
// absent from the given node set are omitted, never an error.
func BuildEdges(edges []kgraph.Edge, nodeIDs map[string]struct{}, highlighted map[string]struct{}) []EdgeRecord {
	out := make([]EdgeRecord, 0, len(edges))
	for _, e := range edges {
		if _, ok := nodeIDs[e.Source]; !ok {
			continue
		}
		if _, ok := nodeIDs[e.Target]; !ok {
			continue
		}
		rec := EdgeRecord{
			ID:          e.ID,
			Source:      e.Source,
			Target:      e.Target,
			WidthWeight: e.Weight,
			ColorKind:   e.Type,
			Ghost:       e.Ghost,
		}
		if _, ok := highlighted[e.ID]; ok {
			rec.Highlighted = true
		}
		out = append(out, rec)
	}
	return out
}
