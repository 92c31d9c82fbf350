package kgraph

import "fmt"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// View modes for rendering.
const (
	ViewNodes  = "nodes"  // node-level 3-D view
	ViewTopics = "topics" // cluster-level 2-D view
)

// Entity types commonly attached to nodes. The set is open: unknown types
// fall back to default styling rather than failing.
const (
	EntityConcept = "concept"
	EntityPaper   = "paper"
	EntityAuthor  = "author"
	EntityMethod  = "method"
)

// Edge relationship types.
const (
	RelationRelated  = "related_to"
	RelationCites    = "cites"
	RelationAuthored = "authored_by"
	RelationGhost    = "ghost" // similarity-derived, not observed in the corpus
)

// =============================================================================
// Node - Knowledge-Graph Vertex
// =============================================================================

// Node is a single vertex of the knowledge graph: a concept, paper, or author
// extracted upstream from the corpus. Nodes are immutable for the lifetime of
// a snapshot.
type Node struct {
	ID        string         `json:"id" bson:"id"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"` // Display name (defaults to ID)
	Type      string         `json:"type,omitempty" bson:"type,omitempty"` // Entity type tag
	ClusterID *int           `json:"cluster_id,omitempty" bson:"cluster_id,omitempty"`
	Bridge    bool           `json:"bridge,omitempty" bson:"bridge,omitempty"` // Bridge-candidate flag
	Props     map[string]any `json:"props,omitempty" bson:"props,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// InCluster reports whether the node has a cluster assignment.
func (n *Node) InCluster() bool { return n.ClusterID != nil }

// =============================================================================
// Edge - Weighted, Typed Relationship
// =============================================================================

// Edge is a weighted relationship between two nodes. Ghost edges are
// similarity-derived suggestions rather than observed relationships and carry
// a similarity score in [0,1].
type Edge struct {
	ID         string  `json:"id,omitempty" bson:"id,omitempty"`
	Source     string  `json:"source" bson:"source"`
	Target     string  `json:"target" bson:"target"`
	Weight     float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	Type       string  `json:"type,omitempty" bson:"type,omitempty"`
	Ghost      bool    `json:"ghost,omitempty" bson:"ghost,omitempty"`
	Similarity float64 `json:"similarity,omitempty" bson:"similarity,omitempty"`
}

// =============================================================================
// Cluster - Upstream Topic Grouping
// =============================================================================

// Cluster is an upstream-computed topic grouping of nodes. A node belongs to
// at most one cluster per snapshot.
type Cluster struct {
	ID       int      `json:"id" bson:"id"`
	Label    string   `json:"label,omitempty" bson:"label,omitempty"`
	Size     int      `json:"size,omitempty" bson:"size,omitempty"`
	Density  float64  `json:"density,omitempty" bson:"density,omitempty"`
	Members  []string `json:"members,omitempty" bson:"members,omitempty"`
	Concepts []string `json:"concepts,omitempty" bson:"concepts,omitempty"` // Representative concept names
}

// DisplayLabel returns the label if set, otherwise "Cluster N".
func (c *Cluster) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("Cluster %d", c.ID)
}

// ColorKey returns the stable key used for deterministic color hashing.
// Unlabeled clusters hash their synthetic key so color survives relabeling
// of other clusters and reordering between fetches.
func (c *Cluster) ColorKey() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("cluster-%d", c.ID)
}

// MemberCount returns Size when present, falling back to the member list.
func (c *Cluster) MemberCount() int {
	if c.Size > 0 {
		return c.Size
	}
	return len(c.Members)
}

// =============================================================================
// Centrality - Per-Node Importance
// =============================================================================

// CentralityEntry is one row of the upstream betweenness-centrality metric.
type CentralityEntry struct {
	NodeID      string  `json:"node_id" bson:"node_id"`
	Betweenness float64 `json:"betweenness" bson:"betweenness"`
}

// Centrality maps node IDs to betweenness values. Absent entries imply 0.
type Centrality map[string]float64

// Get returns the betweenness value for id, or 0 when absent.
func (c Centrality) Get(id string) float64 { return c[id] }

// =============================================================================
// StructuralGap - Research Opportunity
// =============================================================================

// StructuralGap is a detected pair of weakly-connected clusters flagged as a
// research opportunity. Strength is in [0,1] where 0 is the weakest (most
// interesting) connection.
type StructuralGap struct {
	ID               string   `json:"id" bson:"id"`
	ClusterA         int      `json:"cluster_a" bson:"cluster_a"`
	ClusterB         int      `json:"cluster_b" bson:"cluster_b"`
	Strength         float64  `json:"strength" bson:"strength"`
	ClusterAConcepts []string `json:"cluster_a_concepts,omitempty" bson:"cluster_a_concepts,omitempty"`
	ClusterBConcepts []string `json:"cluster_b_concepts,omitempty" bson:"cluster_b_concepts,omitempty"`
	BridgeCandidates []string `json:"bridge_candidates,omitempty" bson:"bridge_candidates,omitempty"`
	Questions        []string `json:"questions,omitempty" bson:"questions,omitempty"`
}

// MemberIDs returns the union of both sides' member IDs plus bridge
// candidates, deduplicated, preserving first-seen order.
func (g *StructuralGap) MemberIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, group := range [][]string{g.ClusterAConcepts, g.ClusterBConcepts, g.BridgeCandidates} {
		for _, id := range group {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
