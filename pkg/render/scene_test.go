package render

import (
	"testing"

	"github.com/conceptatlas/atlas/pkg/interact"
	"github.com/conceptatlas/atlas/pkg/kgraph"
	"github.com/conceptatlas/atlas/pkg/layout/force"
	"github.com/conceptatlas/atlas/pkg/layout/topic"
	"github.com/conceptatlas/atlas/pkg/render/encode"
	"github.com/conceptatlas/atlas/pkg/render/lod"
)

func intPtr(v int) *int { return &v }

func sceneSnapshot() *kgraph.Snapshot {
	return &kgraph.Snapshot{
		Nodes: []kgraph.Node{
			{ID: "a", Name: "Alpha", Type: kgraph.EntityConcept, ClusterID: intPtr(0), Bridge: true},
			{ID: "b", Name: "Beta", Type: kgraph.EntityPaper, ClusterID: intPtr(0)},
			{ID: "c", Name: "Gamma", Type: kgraph.EntityAuthor, ClusterID: intPtr(1)},
			{ID: "d", Name: "Delta", Type: kgraph.EntityMethod, ClusterID: intPtr(1)},
		},
		Edges: []kgraph.Edge{
			{ID: "e1", Source: "a", Target: "b", Weight: 2},
			{ID: "e2", Source: "b", Target: "c", Weight: 1, Ghost: true},
		},
		Clusters: []kgraph.Cluster{
			{ID: 0, Label: "First", Members: []string{"a", "b"}},
			{ID: 1, Label: "Second", Members: []string{"c", "d"}},
		},
		Centrality: []kgraph.CentralityEntry{
			{NodeID: "a", Betweenness: 0.9},
			{NodeID: "b", Betweenness: 0.5},
			{NodeID: "c", Betweenness: 0.2},
			{NodeID: "d", Betweenness: 0.1},
		},
	}
}

func settledSims(snap *kgraph.Snapshot) (*force.Sim, *topic.Sim) {
	fcfg := force.DefaultConfig()
	fcfg.MaxTicks = 30
	fsim := force.New(snap.Nodes, snap.Edges, snap.CentralityMap(), fcfg)
	fsim.Run()

	tcfg := topic.DefaultConfig()
	tcfg.MaxTicks = 30
	tsim := topic.New(snap, tcfg)
	tsim.Run()
	return fsim, tsim
}

func TestForSelectsStrategy(t *testing.T) {
	nodes, err := For(kgraph.ViewNodes)
	if err != nil || nodes.Mode() != kgraph.ViewNodes {
		t.Errorf("For(nodes) = %v, %v", nodes, err)
	}
	topics, err := For(kgraph.ViewTopics)
	if err != nil || topics.Mode() != kgraph.ViewTopics {
		t.Errorf("For(topics) = %v, %v", topics, err)
	}
	if _, err := For("sideways"); err == nil {
		t.Error("unknown mode should error")
	}
}

func TestNodeSceneBuild(t *testing.T) {
	snap := sceneSnapshot()
	fsim, _ := settledSims(snap)

	strategy, _ := For(kgraph.ViewNodes)
	scene, err := strategy.BuildScene(Input{
		Snapshot: snap,
		Nodes3:   fsim,
		Config:   DefaultConfig(),
		State:    interact.State{},
	})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	if scene.Mode != kgraph.ViewNodes {
		t.Errorf("Mode = %q", scene.Mode)
	}
	if len(scene.Nodes) != 4 {
		t.Fatalf("scene has %d nodes, want 4", len(scene.Nodes))
	}
	if len(scene.Edges) != 2 {
		t.Fatalf("scene has %d edges, want 2", len(scene.Edges))
	}

	byID := make(map[string]SceneNode, len(scene.Nodes))
	for _, n := range scene.Nodes {
		byID[n.ID] = n
	}

	// Bridge node carries a bridge halo layer; plain nodes do not.
	hasLayer := func(n SceneNode, kind encode.LayerKind) bool {
		for _, l := range n.Layers {
			if l.Kind == kind {
				return true
			}
		}
		return false
	}
	if !hasLayer(byID["a"], encode.LayerBridge) {
		t.Error("bridge node missing its bridge halo")
	}
	if hasLayer(byID["b"], encode.LayerBridge) {
		t.Error("plain node has a bridge halo")
	}
	for _, n := range scene.Nodes {
		if !hasLayer(n, encode.LayerCore) {
			t.Errorf("node %s missing core layer", n.ID)
		}
	}

	var ghost SceneEdge
	for _, e := range scene.Edges {
		if e.ID == "e2" {
			ghost = e
		}
	}
	if !ghost.Ghost {
		t.Error("ghost edge lost its flag")
	}
}

func TestNodeSceneHighlightRing(t *testing.T) {
	snap := sceneSnapshot()
	fsim, _ := settledSims(snap)

	strategy, _ := For(kgraph.ViewNodes)
	scene, err := strategy.BuildScene(Input{
		Snapshot: snap,
		Nodes3:   fsim,
		Config:   DefaultConfig(),
		State: interact.State{
			Nodes: map[string]struct{}{"b": {}},
			Edges: map[string]struct{}{"e1": {}},
		},
	})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	for _, n := range scene.Nodes {
		ring := false
		for _, l := range n.Layers {
			if l.Kind == encode.LayerSelection {
				ring = true
			}
		}
		if want := n.ID == "b"; ring != want {
			t.Errorf("node %s selection ring = %v, want %v", n.ID, ring, want)
		}
	}
	for _, e := range scene.Edges {
		if want := e.ID == "e1"; e.Highlighted != want {
			t.Errorf("edge %s highlighted = %v, want %v", e.ID, e.Highlighted, want)
		}
	}
}

func TestNodeSceneLODCulls(t *testing.T) {
	snap := sceneSnapshot()
	fsim, _ := settledSims(snap)

	cfg := DefaultConfig()
	cfg.LOD = lod.Config{Fraction: 0.5, Enabled: true}

	strategy, _ := For(kgraph.ViewNodes)
	scene, err := strategy.BuildScene(Input{Snapshot: snap, Nodes3: fsim, Config: cfg, State: interact.State{}})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	if len(scene.Nodes) != 2 {
		t.Fatalf("scene has %d nodes at fraction 0.5, want 2", len(scene.Nodes))
	}
	for _, n := range scene.Nodes {
		if n.ID != "a" && n.ID != "b" {
			t.Errorf("low-centrality node %s survived culling", n.ID)
		}
	}
	// Edge e2 lost its endpoint c.
	if len(scene.Edges) != 1 || scene.Edges[0].ID != "e1" {
		t.Errorf("edges after culling = %+v", scene.Edges)
	}
}

func TestNodeScenePinnedBypass(t *testing.T) {
	snap := sceneSnapshot()
	fsim, _ := settledSims(snap)

	cfg := DefaultConfig()
	cfg.LOD = lod.Config{Fraction: 0.25, Enabled: true}

	strategy, _ := For(kgraph.ViewNodes)
	scene, err := strategy.BuildScene(Input{
		Snapshot: snap,
		Nodes3:   fsim,
		Config:   cfg,
		State:    interact.State{Pinned: map[string]struct{}{"d": {}}},
	})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	found := false
	for _, n := range scene.Nodes {
		if n.ID == "d" {
			found = true
			if !n.Pinned {
				t.Error("pinned node not marked in the scene")
			}
		}
	}
	if !found {
		t.Error("pinned node was culled")
	}
}

func TestNodeSceneRequiresLayout(t *testing.T) {
	strategy, _ := For(kgraph.ViewNodes)
	if _, err := strategy.BuildScene(Input{Snapshot: sceneSnapshot()}); err == nil {
		t.Error("missing layout should error")
	}
}

func TestTopicSceneBuild(t *testing.T) {
	snap := sceneSnapshot()
	_, tsim := settledSims(snap)

	strategy, _ := For(kgraph.ViewTopics)
	scene, err := strategy.BuildScene(Input{
		Snapshot: snap,
		Topics:   tsim,
		Config:   DefaultConfig(),
		State:    interact.State{},
	})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	if scene.Mode != kgraph.ViewTopics {
		t.Errorf("Mode = %q", scene.Mode)
	}
	if len(scene.Clusters) != 2 {
		t.Fatalf("scene has %d clusters, want 2", len(scene.Clusters))
	}
	// One cross-cluster edge (b-c) gives one link.
	if len(scene.Links) != 1 {
		t.Fatalf("scene has %d links, want 1", len(scene.Links))
	}
	for _, c := range scene.Clusters {
		if c.Opacity != 1 || c.Focused {
			t.Errorf("resting cluster %d = %+v", c.ID, c)
		}
	}
	// Two-member point buffers cannot form a hull polygon.
	if len(scene.Hulls) != 0 {
		t.Errorf("got %d hulls for 2-member clusters, want 0", len(scene.Hulls))
	}
}

func TestTopicSceneHoverPhases(t *testing.T) {
	snap := sceneSnapshot()
	_, tsim := settledSims(snap)

	strategy, _ := For(kgraph.ViewTopics)
	scene, err := strategy.BuildScene(Input{
		Snapshot: snap,
		Topics:   tsim,
		Config:   DefaultConfig(),
		State: interact.State{
			Phases: map[int]interact.ClusterPhase{
				0: interact.PhaseFocused,
				1: interact.PhaseConnected,
			},
		},
	})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	for _, c := range scene.Clusters {
		switch c.ID {
		case 0:
			if !c.Focused || c.Opacity != 1 {
				t.Errorf("focused cluster = %+v", c)
			}
		case 1:
			if c.Focused || c.Opacity != 0.85 {
				t.Errorf("connected cluster = %+v", c)
			}
		}
	}
	// Link opacity follows the dimmer endpoint.
	if scene.Links[0].Opacity != 0.85 {
		t.Errorf("link opacity = %v, want 0.85", scene.Links[0].Opacity)
	}
}

func TestTopicSceneHulls(t *testing.T) {
	snap := sceneSnapshot()
	// Grow cluster 0 to three members so its point buffer forms a polygon.
	snap.Nodes = append(snap.Nodes, kgraph.Node{ID: "e", Name: "Epsilon", ClusterID: intPtr(0)})
	snap.Clusters[0].Members = append(snap.Clusters[0].Members, "e")

	_, tsim := settledSims(snap)
	strategy, _ := For(kgraph.ViewTopics)
	scene, err := strategy.BuildScene(Input{Snapshot: snap, Topics: tsim, Config: DefaultConfig(), State: interact.State{}})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	if len(scene.Hulls) != 1 {
		t.Fatalf("got %d hulls, want 1", len(scene.Hulls))
	}
	hull := scene.Hulls[0]
	if hull.ClusterID != 0 || len(hull.Points) < 3 {
		t.Errorf("hull = %+v", hull)
	}
}

func TestBuildNodesAdapter(t *testing.T) {
	snap := sceneSnapshot()
	records := BuildNodes(snap.Nodes, snap.Clusters, snap.CentralityMap(), map[string]struct{}{"a": {}})

	if len(records) != 4 {
		t.Fatalf("got %d records", len(records))
	}
	a := records[0]
	if a.ID != "a" || !a.Highlighted || !a.Bridge || a.SizeWeight != 0.9 {
		t.Errorf("record a = %+v", a)
	}
	if a.ColorKey != "First" {
		t.Errorf("ColorKey = %q, want cluster label", a.ColorKey)
	}
}

func TestBuildEdgesOmitsDangling(t *testing.T) {
	snap := sceneSnapshot()
	nodeIDs := map[string]struct{}{"a": {}, "b": {}}

	records := BuildEdges(snap.Edges, nodeIDs, nil)
	if len(records) != 1 || records[0].ID != "e1" {
		t.Errorf("records = %+v, want only e1", records)
	}
}
