// Package pkg provides the core libraries for Atlas knowledge graph visualization.
//
// # Overview
//
// Atlas turns knowledge graph snapshots into explorable visual maps: a
// node-level 3-D view where individual concepts float in a force-directed
// cloud, and a cluster-level 2-D topic view where whole topics pack onto a
// canvas. The pkg directory is organized into five main areas:
//
//  1. [kgraph] - Domain types (snapshots, nodes, edges, clusters, gaps)
//  2. [layout] - Force simulations (3-D node level, 2-D cluster level)
//  3. [render] - Visual encoding, level-of-detail, scene assembly, sinks
//  4. [camera], [interact] - Focus control and highlight coordination
//  5. [cache], [store] - Layout caching and snapshot persistence
//
// # Architecture
//
// The typical data flow through Atlas:
//
//	Snapshot JSON (upstream analysis pipeline)
//	         ↓
//	    [kgraph] package (decode + normalize)
//	         ↓
//	    [layout/force] or [layout/topic] (settle positions)
//	         ↓
//	    [render] package (encode + LOD + scene assembly)
//	         ↓
//	    [render/sink] SVG/PNG/DOT/JSON output
//
// # Quick Start
//
// Render a snapshot to SVG:
//
//	snap, err := kgraph.ReadSnapshotFile("snapshot.json")
//	if err != nil {
//	    return err
//	}
//	snap = snap.Normalize()
//
//	sim := topic.New(&snap, topic.DefaultConfig())
//	sim.Run()
//
//	strategy, _ := render.For(kgraph.ViewTopics)
//	scene, err := strategy.BuildScene(render.Input{
//	    Snapshot: &snap,
//	    Topics:   sim,
//	    Config:   render.DefaultConfig(),
//	})
//	if err != nil {
//	    return err
//	}
//	err = sink.WriteSVG(os.Stdout, scene)
//
// Supporting packages: [errors] for structured error codes, [observability]
// for optional instrumentation hooks, [buildinfo] for version stamping, and
// [httputil] for the HTTP host's request/response plumbing.
package pkg
