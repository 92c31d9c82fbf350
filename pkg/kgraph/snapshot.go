package kgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// =============================================================================
// Snapshot - Atomic Graph State
// =============================================================================

// Snapshot is one complete, immutable graph state as delivered by the data
// layer: nodes, edges, clusters, centrality, and structural gaps always
// arrive together, never as incremental deltas.
type Snapshot struct {
	Nodes      []Node            `json:"nodes" bson:"nodes"`
	Edges      []Edge            `json:"edges" bson:"edges"`
	Clusters   []Cluster         `json:"clusters,omitempty" bson:"clusters,omitempty"`
	Centrality []CentralityEntry `json:"centrality,omitempty" bson:"centrality,omitempty"`
	Gaps       []StructuralGap   `json:"gaps,omitempty" bson:"gaps,omitempty"`
}

// CentralityMap collapses the centrality entries into a lookup map.
// Duplicate node IDs keep the last entry.
func (s *Snapshot) CentralityMap() Centrality {
	m := make(Centrality, len(s.Centrality))
	for _, e := range s.Centrality {
		m[e.NodeID] = e.Betweenness
	}
	return m
}

// Node returns the node with the given ID and true, or a zero node and false.
func (s *Snapshot) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Cluster returns the cluster with the given ID and true, or false.
func (s *Snapshot) Cluster(id int) (Cluster, bool) {
	for _, c := range s.Clusters {
		if c.ID == id {
			return c, true
		}
	}
	return Cluster{}, false
}

// Gap returns the structural gap with the given ID and true, or false.
func (s *Snapshot) Gap(id string) (StructuralGap, bool) {
	for _, g := range s.Gaps {
		if g.ID == id {
			return g, true
		}
	}
	return StructuralGap{}, false
}

// NodeIDs returns the set of node IDs present in the snapshot.
func (s *Snapshot) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// Normalize returns a copy of the snapshot with degenerate input repaired:
//
//   - edges referencing a missing endpoint are dropped (never an error)
//   - negative edge weights and out-of-range similarities are clamped
//   - edges without an ID get a generated one so downstream sets stay keyed
//   - nodes claimed by more than one cluster keep their first assignment
//
// The receiver is not modified. Normalize is idempotent apart from ID
// generation, which only touches edges that arrived without one.
func (s *Snapshot) Normalize() Snapshot {
	out := Snapshot{
		Nodes:      append([]Node(nil), s.Nodes...),
		Clusters:   append([]Cluster(nil), s.Clusters...),
		Centrality: append([]CentralityEntry(nil), s.Centrality...),
		Gaps:       append([]StructuralGap(nil), s.Gaps...),
	}

	ids := s.NodeIDs()
	out.Edges = make([]Edge, 0, len(s.Edges))
	for _, e := range s.Edges {
		if _, ok := ids[e.Source]; !ok {
			continue
		}
		if _, ok := ids[e.Target]; !ok {
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Weight < 0 {
			e.Weight = 0
		}
		e.Similarity = clamp01(e.Similarity)
		out.Edges = append(out.Edges, e)
	}

	// A node belongs to at most one cluster per snapshot: first claim wins.
	claimed := make(map[string]int)
	for i := range out.Clusters {
		c := &out.Clusters[i]
		members := make([]string, 0, len(c.Members))
		for _, id := range c.Members {
			if owner, ok := claimed[id]; ok && owner != c.ID {
				continue
			}
			claimed[id] = c.ID
			members = append(members, id)
		}
		c.Members = members
	}

	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// ReadSnapshot decodes a JSON snapshot from r.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// ReadSnapshotFile reads a JSON snapshot from a file.
func ReadSnapshotFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// MarshalSnapshot serializes a snapshot to pretty-printed JSON bytes.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// WriteSnapshotFile writes a snapshot to a JSON file.
func WriteSnapshotFile(s Snapshot, path string) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
