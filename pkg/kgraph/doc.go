// Package kgraph defines the knowledge-graph data model and its snapshot
// serialization format.
//
// A Snapshot is one complete graph state as delivered by the upstream data
// layer: concept/paper/author nodes, weighted typed edges, topic clusters,
// betweenness-centrality metrics, and detected structural gaps. Snapshots
// are atomic and treated as immutable once loaded; the engine never mutates
// one in place.
//
// # Degenerate Input
//
// Real extraction pipelines produce imperfect data, so the package repairs
// rather than rejects: Normalize drops edges with missing endpoints, clamps
// out-of-range weights and similarities, and resolves nodes claimed by more
// than one cluster. Missing optional fields (labels, densities) are
// synthesized on access, never a hard failure.
//
// # Diffing
//
// SameShape compares two snapshots by structural identity (node id/type/name,
// edge id/source/target/type). Consumers use it to avoid restarting physics
// simulations when a refetch returned an unchanged graph.
//
// # Example
//
//	snap, err := kgraph.ReadSnapshotFile("corpus.json")
//	if err != nil {
//	    return err
//	}
//	snap = snap.Normalize()
//	adj := kgraph.BuildAdjacency(snap.Edges)
package kgraph
