package topic

import (
	"math"
	"math/rand"
	"sort"

	"github.com/conceptatlas/atlas/pkg/kgraph"
)

// =============================================================================
// Configuration
// =============================================================================

// Config holds the tunable constants of the cluster-level 2-D simulation.
type Config struct {
	Width, Height float64 // canvas size
	Padding       float64 // boundary clamp inset

	LinkDistanceMin float64 // rest distance for the heaviest link
	LinkDistanceMax float64 // rest distance for the lightest (and gap-only) link
	LinkStrength    float64 // base spring strength, scaled by weight ratio
	GapPull         float64 // weak pull applied to gap-only links

	RepulsionScale      float64 // many-body constant, scaled by node sizes
	RadialStrength      float64 // radial gravity toward canvas center
	CollisionIterations int     // relaxation passes per tick
	CollisionPadding    float64 // extra clearance between footprints

	MaxTicks       int
	StartRetention float64
	EndRetention   float64
	Seed           int64
}

// DefaultConfig returns the standard 2-D tuning for an 1200×800 canvas.
func DefaultConfig() Config {
	return Config{
		Width:               1200,
		Height:              800,
		Padding:             40,
		LinkDistanceMin:     120,
		LinkDistanceMax:     320,
		LinkStrength:        0.04,
		GapPull:             0.008,
		RepulsionScale:      9,
		RadialStrength:      0.015,
		CollisionIterations: 3,
		CollisionPadding:    6,
		MaxTicks:            240,
		StartRetention:      0.9,
		EndRetention:        0.3,
		Seed:                1,
	}
}

func (c Config) retention(tick int) float64 {
	if c.MaxTicks <= 1 {
		return c.EndRetention
	}
	t := float64(tick) / float64(c.MaxTicks-1)
	if t > 1 {
		t = 1
	}
	return c.StartRetention + (c.EndRetention-c.StartRetention)*t
}

// =============================================================================
// Arena
// =============================================================================

// Point is a 2-D position.
type Point struct {
	X, Y float64
}

// Node is one cluster in the topic simulation arena.
type Node struct {
	ClusterID int
	Label     string
	Size      int     // member count, drives repulsion and radius
	Radius    float64 // rendered footprint, drives collision
	X, Y      float64
	VX, VY    float64
}

// Link connects two clusters. One physical link carries both the connection
// weight and the gap flag: a structural gap between a pair that also shares
// a regular connection edge is merged here, never rendered twice.
type Link struct {
	a, b        int // arena indices
	A, B        int // cluster IDs, for consumers
	Weight      float64
	Gap         bool
	GapStrength float64 // gap strength in [0,1]; 0 = most interesting
}

// =============================================================================
// Simulation
// =============================================================================

// Sim is the cluster-level 2-D force simulation. Nodes are clusters; member
// nodes are scattered around their cluster's position into per-cluster point
// buffers maintained every tick, which downstream hull computation consumes
// in O(cluster size).
type Sim struct {
	cfg   Config
	nodes []Node
	links []Link
	index map[int]int // cluster ID -> arena index

	memberIDs map[int][]string // cluster ID -> member node IDs
	buffers   map[int][]Point  // cluster ID -> member positions, rebuilt per tick

	maxWeight float64
	tick      int
	rng       *rand.Rand
}

// New builds the topic arena from a snapshot. Empty clusters are excluded
// from layout entirely. Inter-cluster edge weights are aggregated per
// cluster pair; structural gaps merge into existing pair links or create
// gap-only links with a weak pull.
//
// A single-cluster graph is placed at the canvas center with no simulation.
func New(snap *kgraph.Snapshot, cfg Config) *Sim {
	s := &Sim{
		cfg:       cfg,
		index:     make(map[int]int),
		memberIDs: make(map[int][]string),
		buffers:   make(map[int][]Point),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}

	for _, c := range snap.Clusters {
		if c.MemberCount() == 0 {
			continue
		}
		s.index[c.ID] = len(s.nodes)
		s.nodes = append(s.nodes, Node{
			ClusterID: c.ID,
			Label:     c.DisplayLabel(),
			Size:      c.MemberCount(),
			Radius:    clusterRadius(c.MemberCount()),
		})
		s.memberIDs[c.ID] = append([]string(nil), c.Members...)
	}

	s.buildLinks(snap)
	s.scatter()
	s.fillBuffers()

	if len(s.nodes) <= 1 {
		if len(s.nodes) == 1 {
			n := &s.nodes[0]
			n.X, n.Y = cfg.Width/2, cfg.Height/2
			n.VX, n.VY = 0, 0
		}
		s.tick = cfg.MaxTicks
		s.fillBuffers()
	}

	return s
}

// clusterRadius sizes a cluster's rendered footprint sub-linearly in its
// member count.
func clusterRadius(size int) float64 {
	return 18 + math.Sqrt(float64(size))*6
}

type pairKey struct{ lo, hi int }

func keyFor(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

func (s *Sim) buildLinks(snap *kgraph.Snapshot) {
	clusterOf := make(map[string]int, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if n.ClusterID != nil {
			clusterOf[n.ID] = *n.ClusterID
		}
	}

	weights := make(map[pairKey]float64)
	for _, e := range snap.Edges {
		ca, okA := clusterOf[e.Source]
		cb, okB := clusterOf[e.Target]
		if !okA || !okB || ca == cb {
			continue
		}
		if _, inA := s.index[ca]; !inA {
			continue
		}
		if _, inB := s.index[cb]; !inB {
			continue
		}
		w := e.Weight
		if w <= 0 {
			w = 1
		}
		weights[keyFor(ca, cb)] += w
	}

	byPair := make(map[pairKey]*Link, len(weights))
	for key, w := range weights {
		byPair[key] = &Link{A: key.lo, B: key.hi, Weight: w}
		if w > s.maxWeight {
			s.maxWeight = w
		}
	}

	// Gaps merge into the pair's existing link so the pair is never laid
	// out (or rendered) twice; gap-only pairs get a weak-pull link.
	for _, g := range snap.Gaps {
		if _, inA := s.index[g.ClusterA]; !inA {
			continue
		}
		if _, inB := s.index[g.ClusterB]; !inB {
			continue
		}
		if g.ClusterA == g.ClusterB {
			continue
		}
		key := keyFor(g.ClusterA, g.ClusterB)
		link, ok := byPair[key]
		if !ok {
			link = &Link{A: key.lo, B: key.hi}
			byPair[key] = link
		}
		link.Gap = true
		link.GapStrength = g.Strength
	}

	keys := make([]pairKey, 0, len(byPair))
	for key := range byPair {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lo != keys[j].lo {
			return keys[i].lo < keys[j].lo
		}
		return keys[i].hi < keys[j].hi
	})

	for _, key := range keys {
		link := byPair[key]
		link.a = s.index[link.A]
		link.b = s.index[link.B]
		s.links = append(s.links, *link)
	}
}

// scatter seeds clusters on a ring around the canvas center.
func (s *Sim) scatter() {
	cx, cy := s.cfg.Width/2, s.cfg.Height/2
	ring := math.Min(s.cfg.Width, s.cfg.Height) / 3
	for i := range s.nodes {
		angle := 2 * math.Pi * float64(i) / float64(len(s.nodes))
		jitter := (s.rng.Float64() - 0.5) * 20
		s.nodes[i].X = cx + math.Cos(angle)*(ring+jitter)
		s.nodes[i].Y = cy + math.Sin(angle)*(ring+jitter)
	}
}

// Done reports whether the tick budget is exhausted.
func (s *Sim) Done() bool { return s.tick >= s.cfg.MaxTicks }

// Tick returns the number of ticks advanced so far.
func (s *Sim) Tick() int { return s.tick }

// Run advances the simulation to completion.
func (s *Sim) Run() {
	for s.Step() {
	}
}

// Step advances one tick: springs, radial gravity, size-scaled repulsion,
// integration, iterated collision relaxation, then the boundary clamp
// (forces alone do not guarantee boundedness). Member point buffers are
// rebuilt at the end of each tick.
func (s *Sim) Step() bool {
	if s.Done() {
		return false
	}

	s.applyLinks()
	s.applyRadialGravity()
	s.applyRepulsion()
	s.integrate()
	for i := 0; i < s.cfg.CollisionIterations; i++ {
		s.resolveCollisions()
	}
	s.clampBounds()
	s.sanitize()
	s.fillBuffers()

	s.tick++
	return !s.Done()
}

// applyLinks pulls linked clusters toward a rest distance that shrinks as
// the normalized connection weight grows; strength grows with the same
// ratio, so layouts stay comparable across graphs of different density.
// Gap-only links use the maximum distance with a fixed weak pull.
func (s *Sim) applyLinks() {
	for _, l := range s.links {
		a, b := &s.nodes[l.a], &s.nodes[l.b]
		dx, dy := b.X-a.X, b.Y-a.Y
		dist := math.Hypot(dx, dy)
		if dist < 1e-6 {
			continue
		}

		var rest, strength float64
		if l.Weight > 0 && s.maxWeight > 0 {
			ratio := l.Weight / s.maxWeight
			rest = s.cfg.LinkDistanceMax - ratio*(s.cfg.LinkDistanceMax-s.cfg.LinkDistanceMin)
			strength = s.cfg.LinkStrength * ratio
		} else {
			rest = s.cfg.LinkDistanceMax
			strength = s.cfg.GapPull
		}

		f := strength * (dist - rest)
		fx, fy := dx/dist*f, dy/dist*f
		a.VX += fx
		a.VY += fy
		b.VX -= fx
		b.VY -= fy
	}
}

// applyRadialGravity pulls each node along its own radial axis toward the
// canvas center. Unlike a naive center force (which recenters the mean and
// lets lopsided graphs drift), every node feels the pull individually.
func (s *Sim) applyRadialGravity() {
	cx, cy := s.cfg.Width/2, s.cfg.Height/2
	for i := range s.nodes {
		n := &s.nodes[i]
		n.VX += (cx - n.X) * s.cfg.RadialStrength
		n.VY += (cy - n.Y) * s.cfg.RadialStrength
	}
}

// applyRepulsion pushes cluster pairs apart with magnitude scaled by both
// footprints, so large clusters carve out proportionally more space.
func (s *Sim) applyRepulsion() {
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := &s.nodes[i], &s.nodes[j]
			dx, dy := b.X-a.X, b.Y-a.Y
			distSq := dx*dx + dy*dy
			if distSq < 1e-4 {
				dx, dy = s.jitter(), s.jitter()
				distSq = dx*dx + dy*dy
			}
			dist := math.Sqrt(distSq)
			f := s.cfg.RepulsionScale * a.Radius * b.Radius / distSq
			fx, fy := dx/dist*f, dy/dist*f
			a.VX -= fx
			a.VY -= fy
			b.VX += fx
			b.VY += fy
		}
	}
}

func (s *Sim) integrate() {
	keep := s.cfg.retention(s.tick)
	for i := range s.nodes {
		n := &s.nodes[i]
		n.VX *= keep
		n.VY *= keep
		n.X += n.VX
		n.Y += n.VY
	}
}

// resolveCollisions separates overlapping footprints by shifting each node
// half the overlap along the separating axis. Run multiple iterations per
// tick; a single pass can reintroduce overlap it just resolved elsewhere.
func (s *Sim) resolveCollisions() {
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := &s.nodes[i], &s.nodes[j]
			minDist := a.Radius + b.Radius + s.cfg.CollisionPadding
			dx, dy := b.X-a.X, b.Y-a.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist < 1e-6 {
				dx, dy = s.jitter(), s.jitter()
				dist = math.Hypot(dx, dy)
			}
			push := (minDist - dist) / 2
			px, py := dx/dist*push, dy/dist*push
			a.X -= px
			a.Y -= py
			b.X += px
			b.Y += py
		}
	}
}

// clampBounds confines every footprint to the canvas minus padding.
func (s *Sim) clampBounds() {
	for i := range s.nodes {
		n := &s.nodes[i]
		minX, maxX := s.cfg.Padding+n.Radius, s.cfg.Width-s.cfg.Padding-n.Radius
		minY, maxY := s.cfg.Padding+n.Radius, s.cfg.Height-s.cfg.Padding-n.Radius
		if maxX < minX {
			minX, maxX = s.cfg.Width/2, s.cfg.Width/2
		}
		if maxY < minY {
			minY, maxY = s.cfg.Height/2, s.cfg.Height/2
		}
		n.X = math.Min(math.Max(n.X, minX), maxX)
		n.Y = math.Min(math.Max(n.Y, minY), maxY)
	}
}

func (s *Sim) sanitize() {
	cx, cy := s.cfg.Width/2, s.cfg.Height/2
	for i := range s.nodes {
		n := &s.nodes[i]
		if finite(n.X) && finite(n.Y) && finite(n.VX) && finite(n.VY) {
			continue
		}
		n.X = cx + s.jitter()
		n.Y = cy + s.jitter()
		n.VX, n.VY = 0, 0
	}
}

// fillBuffers rebuilds the per-cluster member point buffers: members sit on
// a deterministic ring inside their cluster's footprint. O(total members)
// per tick, never O(n²) over the whole graph.
func (s *Sim) fillBuffers() {
	for i := range s.nodes {
		n := &s.nodes[i]
		ids := s.memberIDs[n.ClusterID]
		buf := s.buffers[n.ClusterID]
		if cap(buf) < len(ids) {
			buf = make([]Point, len(ids))
		}
		buf = buf[:len(ids)]
		inner := n.Radius * 0.65
		for k := range ids {
			angle := 2 * math.Pi * float64(k) / float64(maxInt(len(ids), 1))
			buf[k] = Point{
				X: n.X + math.Cos(angle)*inner,
				Y: n.Y + math.Sin(angle)*inner,
			}
		}
		s.buffers[n.ClusterID] = buf
	}
}

func (s *Sim) jitter() float64 { return (s.rng.Float64() - 0.5) * 2 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// =============================================================================
// Accessors
// =============================================================================

// Nodes returns a read-only view of the cluster arena.
func (s *Sim) Nodes() []Node { return s.nodes }

// Links returns a read-only view of the merged link set.
func (s *Sim) Links() []Link { return s.links }

// Position returns the current position of a cluster by ID.
func (s *Sim) Position(clusterID int) (Point, bool) {
	i, ok := s.index[clusterID]
	if !ok {
		return Point{}, false
	}
	return Point{X: s.nodes[i].X, Y: s.nodes[i].Y}, true
}

// Members returns the member IDs and their current point buffer for a
// cluster. The returned slices are valid until the next Step.
func (s *Sim) Members(clusterID int) ([]string, []Point) {
	return s.memberIDs[clusterID], s.buffers[clusterID]
}

// MemberPosition resolves a single member node's current point. O(cluster
// size); intended for focus targets, not per-frame iteration.
func (s *Sim) MemberPosition(nodeID string) (Point, bool) {
	for clusterID, ids := range s.memberIDs {
		for k, id := range ids {
			if id != nodeID {
				continue
			}
			buf := s.buffers[clusterID]
			if k < len(buf) {
				return buf[k], true
			}
		}
	}
	return Point{}, false
}
