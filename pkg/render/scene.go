package render

import (
	"fmt"

	"github.com/conceptatlas/atlas/pkg/interact"
	"github.com/conceptatlas/atlas/pkg/kgraph"
	"github.com/conceptatlas/atlas/pkg/layout/force"
	"github.com/conceptatlas/atlas/pkg/layout/topic"
	"github.com/conceptatlas/atlas/pkg/render/encode"
	"github.com/conceptatlas/atlas/pkg/render/lod"
)

// =============================================================================
// Scene - Sink-Ready Draw List
// =============================================================================

// Scene is the fully-encoded draw list for one frame of one view. Check
// Mode to determine which fields are populated:
//
//	Nodes ("nodes"):  SceneNodes + SceneEdges with 3-D positions
//	Topics ("topics"): Clusters + Links + Hulls in canvas coordinates
type Scene struct {
	Mode   string  `json:"mode"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Nodes []SceneNode `json:"nodes,omitempty"`
	Edges []SceneEdge `json:"edges,omitempty"`

	Clusters []SceneCluster `json:"clusters,omitempty"`
	Links    []SceneLink    `json:"links,omitempty"`
	Hulls    []SceneHull    `json:"hulls,omitempty"`
}

// SceneNode is one drawable node with its concentric layer stack.
type SceneNode struct {
	ID           string         `json:"id"`
	Label        string         `json:"label,omitempty"`
	X, Y, Z      float64        `json:"x"`
	Layers       []encode.Layer `json:"layers"`
	LabelVisible bool           `json:"label_visible,omitempty"`
	Pinned       bool           `json:"pinned,omitempty"`
}

// SceneEdge is one drawable edge with resolved endpoint positions.
type SceneEdge struct {
	ID          string  `json:"id"`
	X1, Y1, Z1  float64 `json:"x1"`
	X2, Y2, Z2  float64 `json:"x2"`
	Width       float64 `json:"width"`
	Color       string  `json:"color"`
	Ghost       bool    `json:"ghost,omitempty"`
	Highlighted bool    `json:"highlighted,omitempty"`
}

// SceneCluster is one drawable cluster in the topic view.
type SceneCluster struct {
	ID           int     `json:"id"`
	Label        string  `json:"label"`
	X, Y         float64 `json:"x"`
	Radius       float64 `json:"radius"`
	Color        string  `json:"color"`
	Opacity      float64 `json:"opacity"`
	Focused      bool    `json:"focused,omitempty"`
	LabelVisible bool    `json:"label_visible,omitempty"`
}

// SceneLink is one drawable cluster-to-cluster link. Gap styling and the
// connection weight share a single entity: the pair is never drawn twice.
type SceneLink struct {
	A, B        int     `json:"a"`
	X1, Y1      float64 `json:"x1"`
	X2, Y2      float64 `json:"x2"`
	Width       float64 `json:"width"`
	Gap         bool    `json:"gap,omitempty"`
	GapStrength float64 `json:"gap_strength,omitempty"`
	Opacity     float64 `json:"opacity"`
}

// SceneHull is a padded cluster boundary polygon.
type SceneHull struct {
	ClusterID int            `json:"cluster_id"`
	Points    []encode.Point `json:"points"`
	Color     string         `json:"color"`
	Opacity   float64        `json:"opacity"`
}

// =============================================================================
// Render Strategy
// =============================================================================

// Input carries everything a strategy needs to build a scene. Each strategy
// reads only its own layout source.
type Input struct {
	Snapshot *kgraph.Snapshot
	Nodes3   *force.Sim
	Topics   *topic.Sim
	Config   Config
	State    interact.State
}

// Strategy builds scenes for one view mode. Hosts select a strategy once
// per view switch via For and keep it until the mode changes; nothing
// downstream inspects runtime types.
type Strategy interface {
	Mode() string
	BuildScene(in Input) (*Scene, error)
}

// For returns the strategy for a view mode.
func For(mode string) (Strategy, error) {
	switch mode {
	case kgraph.ViewNodes:
		return nodeStrategy{}, nil
	case kgraph.ViewTopics:
		return topicStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown view mode %q", mode)
	}
}

// =============================================================================
// Node-Level Strategy (3-D)
// =============================================================================

type nodeStrategy struct{}

func (nodeStrategy) Mode() string { return kgraph.ViewNodes }

func (nodeStrategy) BuildScene(in Input) (*Scene, error) {
	if in.Snapshot == nil || in.Nodes3 == nil {
		return nil, fmt.Errorf("node scene requires a snapshot and a 3-D layout")
	}

	snap := in.Snapshot
	cfg := in.Config
	centrality := snap.CentralityMap()
	pinned := mergeSets(cfg.Pinned, in.State.Pinned)

	visible := lod.Select(snap.Nodes, centrality, cfg.LOD, pinned)

	var visibleNodes []kgraph.Node
	for _, n := range snap.Nodes {
		if _, ok := visible[n.ID]; ok {
			visibleNodes = append(visibleNodes, n)
		}
	}
	visibleEdges := lod.VisibleEdges(snap.Edges, visible)

	records := BuildNodes(visibleNodes, snap.Clusters, centrality, in.State.Nodes)
	edgeRecords := BuildEdges(visibleEdges, visible, in.State.Edges)

	policy := encode.NewLabelPolicy(cfg.Labels, centrality)

	scene := &Scene{Mode: kgraph.ViewNodes, Width: cfg.Width, Height: cfg.Height}
	for _, rec := range records {
		x, y, z, ok := in.Nodes3.Position(rec.ID)
		if !ok {
			continue
		}
		color := encode.NodeColor(rec.ColorKey, rec.Type, rec.Highlighted)
		radius := cfg.Size.NodeRadius(rec.SizeWeight, rec.Bridge)
		_, isPinned := pinned[rec.ID]
		scene.Nodes = append(scene.Nodes, SceneNode{
			ID:           rec.ID,
			Label:        rec.Label,
			X:            x,
			Y:            y,
			Z:            z,
			Layers:       encode.Layers(radius, color, rec.Bridge, rec.Highlighted, cfg.Bloom),
			LabelVisible: policy.Visible(rec.SizeWeight),
			Pinned:       isPinned,
		})
	}

	maxW := 0.0
	for _, e := range edgeRecords {
		if e.WidthWeight > maxW {
			maxW = e.WidthWeight
		}
	}
	for _, e := range edgeRecords {
		x1, y1, z1, ok1 := in.Nodes3.Position(e.Source)
		x2, y2, z2, ok2 := in.Nodes3.Position(e.Target)
		if !ok1 || !ok2 {
			continue
		}
		color := "#5c6784"
		if e.Highlighted {
			color = encode.HighlightColor
		}
		scene.Edges = append(scene.Edges, SceneEdge{
			ID: e.ID,
			X1: x1, Y1: y1, Z1: z1,
			X2: x2, Y2: y2, Z2: z2,
			Width:       encode.EdgeWidth(e.WidthWeight, maxW, 0.5, 3),
			Color:       color,
			Ghost:       e.Ghost,
			Highlighted: e.Highlighted,
		})
	}

	return scene, nil
}

// =============================================================================
// Topic-Level Strategy (2-D)
// =============================================================================

type topicStrategy struct{}

func (topicStrategy) Mode() string { return kgraph.ViewTopics }

func (topicStrategy) BuildScene(in Input) (*Scene, error) {
	if in.Snapshot == nil || in.Topics == nil {
		return nil, fmt.Errorf("topic scene requires a snapshot and a 2-D layout")
	}

	snap := in.Snapshot
	cfg := in.Config
	sim := in.Topics

	scene := &Scene{Mode: kgraph.ViewTopics, Width: cfg.Width, Height: cfg.Height}

	colorKeys := make(map[int]string, len(snap.Clusters))
	for _, c := range snap.Clusters {
		colorKeys[c.ID] = c.ColorKey()
	}

	phaseOf := func(clusterID int) interact.ClusterPhase {
		if in.State.Phases == nil {
			return interact.PhaseNeutral
		}
		return in.State.Phases[clusterID]
	}

	for _, n := range sim.Nodes() {
		phase := phaseOf(n.ClusterID)
		color := encode.ColorForCluster(colorKeys[n.ClusterID])
		radius := n.Radius
		if phase == interact.PhaseFocused {
			radius *= 1.12
		}
		scene.Clusters = append(scene.Clusters, SceneCluster{
			ID:           n.ClusterID,
			Label:        n.Label,
			X:            n.X,
			Y:            n.Y,
			Radius:       radius,
			Color:        color,
			Opacity:      phase.Opacity(),
			Focused:      phase == interact.PhaseFocused,
			LabelVisible: phase != interact.PhaseFaded,
		})

		// Padded hull over the cluster's member point buffer; fewer than
		// three members produce no polygon, without error.
		_, points := sim.Members(n.ClusterID)
		hullPoints := make([]encode.Point, len(points))
		for i, p := range points {
			hullPoints[i] = encode.Point{X: p.X, Y: p.Y}
		}
		if hull := encode.PaddedHull(hullPoints, encode.HullPad(cfg.Size.Base)); hull != nil {
			scene.Hulls = append(scene.Hulls, SceneHull{
				ClusterID: n.ClusterID,
				Points:    hull,
				Color:     encode.Darken(color, 0.35),
				Opacity:   0.25 * phase.Opacity(),
			})
		}
	}

	maxW := 0.0
	for _, l := range sim.Links() {
		if l.Weight > maxW {
			maxW = l.Weight
		}
	}
	for _, l := range sim.Links() {
		pa, okA := sim.Position(l.A)
		pb, okB := sim.Position(l.B)
		if !okA || !okB {
			continue
		}
		opacity := phaseOf(l.A).Opacity()
		if o := phaseOf(l.B).Opacity(); o < opacity {
			opacity = o
		}
		scene.Links = append(scene.Links, SceneLink{
			A:  l.A,
			B:  l.B,
			X1: pa.X, Y1: pa.Y,
			X2: pb.X, Y2: pb.Y,
			Width:       encode.EdgeWidth(l.Weight, maxW, 1, 5),
			Gap:         l.Gap,
			GapStrength: l.GapStrength,
			Opacity:     opacity,
		})
	}

	return scene, nil
}

func mergeSets(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}
