// Package lod implements level-of-detail culling: given per-node centrality
// and a target visibility fraction, it picks the rendered subset.
//
// Selection is a stable top-k over a total ordering (centrality descending,
// node ID ascending as tie-break), which makes the visible set monotonic: a
// smaller fraction always yields a subset of a larger one, so raising the
// detail slider only ever adds nodes and nothing flickers in and out.
package lod

import (
	"math"
	"sort"

	"github.com/conceptatlas/atlas/pkg/kgraph"
)

// Config is the externally-owned LOD configuration, passed per call.
type Config struct {
	Fraction float64 // target visible fraction in [0,1]
	Enabled  bool
}

// Level is the discrete detail selector exposed to the host UI.
type Level string

const (
	LevelAll       Level = "all"       // every node
	LevelImportant Level = "important" // top 60%
	LevelKey       Level = "key"       // top 30%
	LevelHub       Level = "hub"       // top 10%
)

// ConfigForLevel maps a discrete detail level to a visibility fraction.
// Unknown levels fail open to LevelAll.
func ConfigForLevel(l Level) Config {
	switch l {
	case LevelImportant:
		return Config{Fraction: 0.6, Enabled: true}
	case LevelKey:
		return Config{Fraction: 0.3, Enabled: true}
	case LevelHub:
		return Config{Fraction: 0.1, Enabled: true}
	default:
		return Config{Fraction: 1, Enabled: false}
	}
}

// Select returns the set of visible node IDs for the given configuration.
//
// Degenerate inputs fail open, not closed: culling disabled, a fraction at
// or above 1, or an empty centrality map all yield the full node set.
// Pinned nodes bypass culling unconditionally.
func Select(nodes []kgraph.Node, centrality kgraph.Centrality, cfg Config, pinned map[string]struct{}) map[string]struct{} {
	visible := make(map[string]struct{}, len(nodes))

	if !cfg.Enabled || cfg.Fraction >= 1 || len(centrality) == 0 {
		for _, n := range nodes {
			visible[n.ID] = struct{}{}
		}
		return visible
	}

	fraction := cfg.Fraction
	if fraction < 0 {
		fraction = 0
	}

	ranked := make([]kgraph.Node, len(nodes))
	copy(ranked, nodes)
	sort.Slice(ranked, func(i, j int) bool {
		ci, cj := centrality.Get(ranked[i].ID), centrality.Get(ranked[j].ID)
		if ci != cj {
			return ci > cj
		}
		return ranked[i].ID < ranked[j].ID
	})

	keep := int(math.Ceil(fraction * float64(len(ranked))))
	if keep > len(ranked) {
		keep = len(ranked)
	}
	for _, n := range ranked[:keep] {
		visible[n.ID] = struct{}{}
	}

	for _, n := range nodes {
		if _, ok := pinned[n.ID]; ok {
			visible[n.ID] = struct{}{}
		}
	}

	return visible
}

// VisibleEdges filters edges to those whose endpoints both survive culling,
// keeping edge visibility consistent with node visibility at every fraction.
func VisibleEdges(edges []kgraph.Edge, visible map[string]struct{}) []kgraph.Edge {
	out := make([]kgraph.Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := visible[e.Source]; !ok {
			continue
		}
		if _, ok := visible[e.Target]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}
