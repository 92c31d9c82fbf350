// Package render assembles sink-ready scenes from knowledge-graph
// snapshots, layout positions, and interaction state.
//
// # Pipeline
//
// The adapter (BuildNodes/BuildEdges) reduces domain entities to render
// records; the LOD selector picks the visible subset; the encode subpackage
// turns records into deterministic visual attributes; and a view-mode
// Strategy combines all of it with live layout positions into a Scene.
//
//	strategy, _ := render.For(kgraph.ViewTopics)
//	scene, err := strategy.BuildScene(render.Input{
//	    Snapshot: snap,
//	    Topics:   sim,
//	    Config:   render.DefaultConfig(),
//	    State:    coord.State(),
//	})
//
// Scenes are plain data: the sink subpackage serializes them to SVG, PNG,
// DOT, or JSON without re-deriving any visual decision.
//
// Key subpackages:
//   - [encode]: colors, sizes, bloom layers, hulls, label policy
//   - [lod]: level-of-detail culling
//   - [sink]: output formats
//
// [encode]: github.com/conceptatlas/atlas/pkg/render/encode
// [lod]: github.com/conceptatlas/atlas/pkg/render/lod
// [sink]: github.com/conceptatlas/atlas/pkg/render/sink
package render
