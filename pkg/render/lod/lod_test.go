package lod

import (
	"fmt"
	"testing"

	"github.com/conceptatlas/atlas/pkg/kgraph"
)

func rankedNodes(n int) ([]kgraph.Node, kgraph.Centrality) {
	nodes := make([]kgraph.Node, n)
	centrality := make(kgraph.Centrality, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("n%02d", i)
		nodes[i] = kgraph.Node{ID: id, Type: kgraph.EntityConcept, Name: id}
		centrality[id] = float64(n-i) / float64(n) // n00 is most central
	}
	return nodes, centrality
}

func TestSelectFailsOpen(t *testing.T) {
	nodes, centrality := rankedNodes(10)

	tests := []struct {
		name       string
		centrality kgraph.Centrality
		cfg        Config
	}{
		{"disabled", centrality, Config{Fraction: 0.1, Enabled: false}},
		{"fraction at 1", centrality, Config{Fraction: 1, Enabled: true}},
		{"fraction above 1", centrality, Config{Fraction: 3, Enabled: true}},
		{"no centrality data", nil, Config{Fraction: 0.1, Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := Select(nodes, tt.centrality, tt.cfg, nil)
			if len(visible) != len(nodes) {
				t.Errorf("got %d visible, want all %d", len(visible), len(nodes))
			}
		})
	}
}

func TestSelectKeepsTopCeil(t *testing.T) {
	nodes, centrality := rankedNodes(10)

	// ceil(0.25 * 10) = 3
	visible := Select(nodes, centrality, Config{Fraction: 0.25, Enabled: true}, nil)
	if len(visible) != 3 {
		t.Fatalf("got %d visible, want 3", len(visible))
	}
	for _, id := range []string{"n00", "n01", "n02"} {
		if _, ok := visible[id]; !ok {
			t.Errorf("top node %s was culled", id)
		}
	}
}

func TestSelectMonotonic(t *testing.T) {
	nodes, centrality := rankedNodes(20)

	small := Select(nodes, centrality, Config{Fraction: 0.2, Enabled: true}, nil)
	large := Select(nodes, centrality, Config{Fraction: 0.6, Enabled: true}, nil)
	for id := range small {
		if _, ok := large[id]; !ok {
			t.Errorf("node %s visible at 0.2 but not at 0.6", id)
		}
	}
}

func TestSelectTieBreaksByID(t *testing.T) {
	nodes := []kgraph.Node{
		{ID: "b", Type: kgraph.EntityConcept, Name: "b"},
		{ID: "a", Type: kgraph.EntityConcept, Name: "a"},
		{ID: "c", Type: kgraph.EntityConcept, Name: "c"},
	}
	centrality := kgraph.Centrality{"a": 0.5, "b": 0.5, "c": 0.5}

	visible := Select(nodes, centrality, Config{Fraction: 0.4, Enabled: true}, nil)
	if len(visible) != 2 {
		t.Fatalf("got %d visible, want 2", len(visible))
	}
	for _, id := range []string{"a", "b"} {
		if _, ok := visible[id]; !ok {
			t.Errorf("node %s missing; equal centrality should keep lowest IDs", id)
		}
	}
}

func TestSelectPinnedBypassesCulling(t *testing.T) {
	nodes, centrality := rankedNodes(10)
	pinned := map[string]struct{}{"n09": {}}

	visible := Select(nodes, centrality, Config{Fraction: 0.1, Enabled: true}, pinned)
	if _, ok := visible["n09"]; !ok {
		t.Error("pinned least-central node was culled")
	}
	if _, ok := visible["n00"]; !ok {
		t.Error("most central node missing")
	}
}

func TestSelectNegativeFraction(t *testing.T) {
	nodes, centrality := rankedNodes(5)
	visible := Select(nodes, centrality, Config{Fraction: -1, Enabled: true}, nil)
	if len(visible) != 0 {
		t.Errorf("got %d visible, want 0", len(visible))
	}
}

func TestVisibleEdges(t *testing.T) {
	edges := []kgraph.Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "a", Target: "c"},
		{ID: "e3", Source: "c", Target: "d"},
	}
	visible := map[string]struct{}{"a": {}, "b": {}, "c": {}}

	out := VisibleEdges(edges, visible)
	if len(out) != 2 {
		t.Fatalf("got %d edges, want 2", len(out))
	}
	for _, e := range out {
		if e.ID == "e3" {
			t.Error("edge with culled endpoint survived")
		}
	}
}

func TestConfigForLevel(t *testing.T) {
	tests := []struct {
		level    Level
		fraction float64
		enabled  bool
	}{
		{LevelAll, 1, false},
		{LevelImportant, 0.6, true},
		{LevelKey, 0.3, true},
		{LevelHub, 0.1, true},
		{Level("bogus"), 1, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			cfg := ConfigForLevel(tt.level)
			if cfg.Fraction != tt.fraction || cfg.Enabled != tt.enabled {
				t.Errorf("ConfigForLevel(%q) = %+v", tt.level, cfg)
			}
		})
	}
}
