package interact

import (
	"testing"

	"github.com/conceptatlas/atlas/pkg/kgraph"
)

func intPtr(v int) *int { return &v }

// interactSnapshot: a-b-c chain plus isolated d, clusters 0 {a,b} and
// 1 {c}, gap g1 spanning both clusters.
func interactSnapshot() *kgraph.Snapshot {
	return &kgraph.Snapshot{
		Nodes: []kgraph.Node{
			{ID: "a", Name: "Alpha", ClusterID: intPtr(0)},
			{ID: "b", Name: "Beta", ClusterID: intPtr(0)},
			{ID: "c", Name: "Gamma", ClusterID: intPtr(1)},
			{ID: "d", Name: "Delta", ClusterID: intPtr(2)},
		},
		Edges: []kgraph.Edge{
			{ID: "e1", Source: "a", Target: "b", Weight: 1},
			{ID: "e2", Source: "b", Target: "c", Weight: 1},
		},
		Clusters: []kgraph.Cluster{
			{ID: 0, Label: "AB", Members: []string{"a", "b"}},
			{ID: 1, Label: "C", Members: []string{"c"}},
			{ID: 2, Label: "D", Members: []string{"d"}},
		},
		Gaps: []kgraph.StructuralGap{
			{
				ID:               "g1",
				ClusterA:         0,
				ClusterB:         1,
				Strength:         0.1,
				ClusterAConcepts: []string{"a", "b"},
				ClusterBConcepts: []string{"c"},
				BridgeCandidates: []string{"b"},
			},
		},
	}
}

func hasAll(set map[string]struct{}, ids ...string) bool {
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func TestClickNodeHighlightsOneHop(t *testing.T) {
	var clicked []string
	c := New(interactSnapshot(), Callbacks{
		OnNodeClick: func(n kgraph.Node) { clicked = append(clicked, n.ID) },
	}, nil)

	c.ClickNode("b")

	nodes := c.HighlightedNodes()
	if len(nodes) != 3 || !hasAll(nodes, "a", "b", "c") {
		t.Errorf("highlighted nodes = %v, want exactly {a,b,c}", nodes)
	}
	if _, ok := nodes["d"]; ok {
		t.Error("2-hop-distant node leaked into the highlight set")
	}
	edges := c.HighlightedEdges()
	if len(edges) != 2 || !hasAll(edges, "e1", "e2") {
		t.Errorf("highlighted edges = %v, want {e1,e2}", edges)
	}
	if len(clicked) != 1 || clicked[0] != "b" {
		t.Errorf("click callback saw %v", clicked)
	}
}

func TestClickUnknownNodeIsNoop(t *testing.T) {
	clicks := 0
	c := New(interactSnapshot(), Callbacks{
		OnNodeClick: func(kgraph.Node) { clicks++ },
	}, nil)

	c.ClickNode("a")
	before := c.HighlightedNodes()

	c.ClickNode("ghost")
	if clicks != 1 {
		t.Errorf("unknown click fired the callback, %d clicks", clicks)
	}
	after := c.HighlightedNodes()
	if len(after) != len(before) {
		t.Errorf("unknown click changed highlights: %v -> %v", before, after)
	}
}

func TestBackgroundClickClearsHighlightsKeepsPins(t *testing.T) {
	cleared := false
	c := New(interactSnapshot(), Callbacks{
		OnBackgroundClick: func() { cleared = true },
	}, nil)

	c.Pin("a")
	c.ClickNode("b")
	c.ClickBackground()

	if len(c.HighlightedNodes()) != 0 || len(c.HighlightedEdges()) != 0 {
		t.Error("background click should clear both highlight sets")
	}
	if !c.IsPinned("a") {
		t.Error("background click must not clear pins")
	}
	if !cleared {
		t.Error("background callback not fired")
	}
}

func TestHoverNodeCallback(t *testing.T) {
	var seen []*kgraph.Node
	c := New(interactSnapshot(), Callbacks{
		OnNodeHover: func(n *kgraph.Node) { seen = append(seen, n) },
	}, nil)

	c.HoverNode("a")
	c.HoverNode("")
	c.HoverNode("ghost")

	if len(seen) != 2 {
		t.Fatalf("got %d hover events, want 2", len(seen))
	}
	if seen[0] == nil || seen[0].ID != "a" {
		t.Errorf("first hover = %v", seen[0])
	}
	if seen[1] != nil {
		t.Errorf("hover-leave should pass nil, got %v", seen[1])
	}
}

func TestClusterHoverPhases(t *testing.T) {
	c := New(interactSnapshot(), Callbacks{}, nil)

	if got := c.ClusterPhase(0); got != PhaseNeutral {
		t.Errorf("resting phase = %v, want neutral", got)
	}

	// Edge e2 (b-c) connects clusters 0 and 1; cluster 2 is isolated.
	c.HoverCluster(0)
	tests := []struct {
		cluster int
		want    ClusterPhase
	}{
		{0, PhaseFocused},
		{1, PhaseConnected},
		{2, PhaseFaded},
	}
	for _, tt := range tests {
		if got := c.ClusterPhase(tt.cluster); got != tt.want {
			t.Errorf("ClusterPhase(%d) = %v, want %v", tt.cluster, got, tt.want)
		}
	}

	c.LeaveCluster()
	for _, id := range []int{0, 1, 2} {
		if got := c.ClusterPhase(id); got != PhaseNeutral {
			t.Errorf("after leave, ClusterPhase(%d) = %v, want neutral", id, got)
		}
	}
}

func TestPhaseOpacity(t *testing.T) {
	tests := []struct {
		phase ClusterPhase
		want  float64
	}{
		{PhaseNeutral, 1},
		{PhaseFocused, 1},
		{PhaseConnected, 0.85},
		{PhaseFaded, 0.15},
	}
	for _, tt := range tests {
		if got := tt.phase.Opacity(); got != tt.want {
			t.Errorf("Opacity(%v) = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

type gapFocus struct{ focused []string }

func (f *gapFocus) FocusOnGap(gapID string) { f.focused = append(f.focused, gapID) }

func TestSelectGap(t *testing.T) {
	focus := &gapFocus{}
	c := New(interactSnapshot(), Callbacks{}, focus)

	c.SelectGap("g1")

	nodes := c.HighlightedNodes()
	if len(nodes) != 3 || !hasAll(nodes, "a", "b", "c") {
		t.Errorf("gap highlight = %v, want union {a,b,c}", nodes)
	}
	if len(focus.focused) != 1 || focus.focused[0] != "g1" {
		t.Errorf("camera focus calls = %v", focus.focused)
	}

	c.SelectGap("ghost")
	if len(focus.focused) != 1 {
		t.Error("unknown gap must not drive the camera")
	}
}

func TestSelectGapWithoutFocuser(t *testing.T) {
	c := New(interactSnapshot(), Callbacks{}, nil)
	c.SelectGap("g1")
	if len(c.HighlightedNodes()) != 3 {
		t.Error("gap selection should highlight even without a camera")
	}
}

func TestTogglePin(t *testing.T) {
	c := New(interactSnapshot(), Callbacks{}, nil)

	if !c.TogglePin("a") || !c.IsPinned("a") {
		t.Error("first toggle should pin")
	}
	if c.TogglePin("a") || c.IsPinned("a") {
		t.Error("second toggle should unpin")
	}

	c.Pin("b")
	c.Unpin("b")
	if c.IsPinned("b") {
		t.Error("Unpin left the node pinned")
	}
}

func TestStateReturnsCopies(t *testing.T) {
	c := New(interactSnapshot(), Callbacks{}, nil)
	c.ClickNode("a")
	c.Pin("d")
	c.HoverCluster(0)

	st := c.State()
	if !hasAll(st.Nodes, "a", "b") {
		t.Errorf("state nodes = %v", st.Nodes)
	}
	if !hasAll(st.Pinned, "d") {
		t.Errorf("state pinned = %v", st.Pinned)
	}
	if st.Phases[0] != PhaseFocused || st.Phases[2] != PhaseFaded {
		t.Errorf("state phases = %v", st.Phases)
	}

	// Mutating the snapshot must not leak back into the coordinator.
	delete(st.Nodes, "a")
	st.Pinned["x"] = struct{}{}
	if _, ok := c.HighlightedNodes()["a"]; !ok {
		t.Error("state mutation affected coordinator highlights")
	}
	if c.IsPinned("x") {
		t.Error("state mutation affected coordinator pins")
	}
}
