// Package interact turns pointer events into selection and highlight state:
// 1-hop neighbor expansion on node click, tri-state cluster opacity on
// hover, gap selection, and LOD pinning.
//
// All state lives on one thread and is consumed synchronously on each
// recompute; the coordinator performs no locking and no I/O.
package interact

import (
	"github.com/conceptatlas/atlas/pkg/kgraph"
)

// =============================================================================
// Cluster Hover Phases
// =============================================================================

// ClusterPhase is the tri-state opacity class of a cluster during hover.
type ClusterPhase int

const (
	// PhaseNeutral is the resting state: full opacity.
	PhaseNeutral ClusterPhase = iota
	// PhaseFocused is the hovered cluster: full opacity, enlarged, thicker
	// border.
	PhaseFocused
	// PhaseConnected marks clusters adjacency-connected to the hovered one.
	PhaseConnected
	// PhaseFaded marks everything else; labels are hidden in this phase.
	PhaseFaded
)

// Opacity returns the rendering opacity for a phase.
func (p ClusterPhase) Opacity() float64 {
	switch p {
	case PhaseConnected:
		return 0.85
	case PhaseFaded:
		return 0.15
	default:
		return 1
	}
}

// =============================================================================
// Callbacks
// =============================================================================

// Focuser is the camera surface the coordinator drives on gap selection.
type Focuser interface {
	FocusOnGap(gapID string)
}

// Callbacks are the interaction events produced for the host UI layer.
// Nil members are simply skipped.
type Callbacks struct {
	OnNodeClick       func(kgraph.Node)
	OnBackgroundClick func()
	OnNodeHover       func(*kgraph.Node) // nil on hover-leave
}

// =============================================================================
// Coordinator
// =============================================================================

// Coordinator owns highlight, hover, and pin state for one snapshot.
// Adjacency maps are precomputed once per dataset so interaction-time
// lookups never rescan the edge list.
type Coordinator struct {
	snap       *kgraph.Snapshot
	adjacency  kgraph.Adjacency
	clusterAdj kgraph.ClusterAdjacency
	incident   map[string][]kgraph.Edge

	highlightNodes map[string]struct{}
	highlightEdges map[string]struct{}
	pinned         map[string]struct{}
	hovered        *int // hovered cluster ID

	callbacks Callbacks
	focus     Focuser
}

// New creates a coordinator for a snapshot. focus may be nil when no camera
// is attached (gap selection then only highlights).
func New(snap *kgraph.Snapshot, callbacks Callbacks, focus Focuser) *Coordinator {
	incident := make(map[string][]kgraph.Edge)
	for _, e := range snap.Edges {
		incident[e.Source] = append(incident[e.Source], e)
		if e.Target != e.Source {
			incident[e.Target] = append(incident[e.Target], e)
		}
	}

	return &Coordinator{
		snap:           snap,
		adjacency:      kgraph.BuildAdjacency(snap.Edges),
		clusterAdj:     kgraph.BuildClusterAdjacency(snap),
		incident:       incident,
		highlightNodes: make(map[string]struct{}),
		highlightEdges: make(map[string]struct{}),
		pinned:         make(map[string]struct{}),
		callbacks:      callbacks,
		focus:          focus,
	}
}

// ClickNode highlights the clicked node, its 1-hop neighbors via incident
// edges, and those edges. Exactly one hop, never deeper. Unknown IDs clear
// nothing and emit nothing.
func (c *Coordinator) ClickNode(id string) {
	node, ok := c.snap.Node(id)
	if !ok {
		return
	}

	c.highlightNodes = map[string]struct{}{id: {}}
	c.highlightEdges = make(map[string]struct{})
	for _, e := range c.incident[id] {
		c.highlightEdges[e.ID] = struct{}{}
		c.highlightNodes[e.Source] = struct{}{}
		c.highlightNodes[e.Target] = struct{}{}
	}

	if c.callbacks.OnNodeClick != nil {
		c.callbacks.OnNodeClick(node)
	}
}

// ClickBackground clears both highlight sets entirely. Pin state is
// untouched: pinning and highlighting are independent.
func (c *Coordinator) ClickBackground() {
	c.highlightNodes = make(map[string]struct{})
	c.highlightEdges = make(map[string]struct{})
	if c.callbacks.OnBackgroundClick != nil {
		c.callbacks.OnBackgroundClick()
	}
}

// HoverNode emits the hover callback; an empty ID means hover-leave.
func (c *Coordinator) HoverNode(id string) {
	if c.callbacks.OnNodeHover == nil {
		return
	}
	if id == "" {
		c.callbacks.OnNodeHover(nil)
		return
	}
	if node, ok := c.snap.Node(id); ok {
		c.callbacks.OnNodeHover(&node)
	}
}

// HoverCluster marks the hovered cluster focused; the tri-state for every
// other cluster is answered by ClusterPhase.
func (c *Coordinator) HoverCluster(clusterID int) {
	id := clusterID
	c.hovered = &id
}

// LeaveCluster returns all clusters to the neutral phase synchronously.
func (c *Coordinator) LeaveCluster() { c.hovered = nil }

// ClusterPhase returns the current tri-state phase for a cluster.
func (c *Coordinator) ClusterPhase(clusterID int) ClusterPhase {
	if c.hovered == nil {
		return PhaseNeutral
	}
	switch {
	case *c.hovered == clusterID:
		return PhaseFocused
	case c.clusterAdj.Connected(*c.hovered, clusterID):
		return PhaseConnected
	default:
		return PhaseFaded
	}
}

// SelectGap highlights the union of both gap-side clusters' members plus
// bridge candidates, and focuses the camera on the gap. Unknown gap IDs are
// no-ops.
func (c *Coordinator) SelectGap(gapID string) {
	gap, ok := c.snap.Gap(gapID)
	if !ok {
		return
	}

	c.highlightNodes = make(map[string]struct{})
	c.highlightEdges = make(map[string]struct{})
	for _, id := range gap.MemberIDs() {
		c.highlightNodes[id] = struct{}{}
	}

	if c.focus != nil {
		c.focus.FocusOnGap(gapID)
	}
}

// =============================================================================
// Pinning
// =============================================================================

// Pin exempts a node from LOD culling. Pin state is never cleared by a
// background click, and clearing highlights never touches pins.
func (c *Coordinator) Pin(id string) { c.pinned[id] = struct{}{} }

// Unpin removes a node's culling exemption.
func (c *Coordinator) Unpin(id string) { delete(c.pinned, id) }

// TogglePin flips a node's pin state and returns the new state.
func (c *Coordinator) TogglePin(id string) bool {
	if _, ok := c.pinned[id]; ok {
		delete(c.pinned, id)
		return false
	}
	c.pinned[id] = struct{}{}
	return true
}

// IsPinned reports whether a node is pinned.
func (c *Coordinator) IsPinned(id string) bool {
	_, ok := c.pinned[id]
	return ok
}

// =============================================================================
// State Snapshot
// =============================================================================

// State is the derived highlight/pin state consumed by a render pass.
// All maps are copies; mutating them does not affect the coordinator.
type State struct {
	Nodes  map[string]struct{} // highlighted node IDs
	Edges  map[string]struct{} // highlighted edge IDs
	Pinned map[string]struct{}
	Phases map[int]ClusterPhase // per-cluster hover phase
}

// State captures the current interaction state for rendering.
func (c *Coordinator) State() State {
	st := State{
		Nodes:  copySet(c.highlightNodes),
		Edges:  copySet(c.highlightEdges),
		Pinned: copySet(c.pinned),
		Phases: make(map[int]ClusterPhase, len(c.snap.Clusters)),
	}
	for _, cl := range c.snap.Clusters {
		st.Phases[cl.ID] = c.ClusterPhase(cl.ID)
	}
	return st
}

// HighlightedNodes returns a copy of the highlighted node set.
func (c *Coordinator) HighlightedNodes() map[string]struct{} {
	return copySet(c.highlightNodes)
}

// HighlightedEdges returns a copy of the highlighted edge set.
func (c *Coordinator) HighlightedEdges() map[string]struct{} {
	return copySet(c.highlightEdges)
}

// Pinned returns a copy of the pinned node set.
func (c *Coordinator) Pinned() map[string]struct{} {
	return copySet(c.pinned)
}

func copySet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
