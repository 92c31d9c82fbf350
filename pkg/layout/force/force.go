package force

import (
	"math"
	"math/rand"

	"github.com/conceptatlas/atlas/pkg/kgraph"
)

// =============================================================================
// Configuration
// =============================================================================

// Config holds the tunable constants of the node-level simulation. The
// defaults are tuned for fast visual stabilization within the tick budget,
// not for mathematical convergence; callers may re-tune freely.
type Config struct {
	Repulsion      float64 // pairwise repulsion constant
	SpringStrength float64 // base per-edge attraction
	SpringLength   float64 // rest length of edge springs
	CenterGravity  float64 // mild pull toward the origin
	MaxTicks       int     // hard tick budget; the sim auto-stops after this
	StartRetention float64 // velocity retention on tick 0
	EndRetention   float64 // velocity retention on the final tick
	MaxSpeed       float64 // per-tick velocity clamp
	SpawnRadius    float64 // radius of the initial placement sphere
	Seed           int64   // rng seed for placement and jitter
}

// DefaultConfig returns the standard 3-D tuning.
func DefaultConfig() Config {
	return Config{
		Repulsion:      220,
		SpringStrength: 0.015,
		SpringLength:   55,
		CenterGravity:  0.012,
		MaxTicks:       300,
		StartRetention: 0.92,
		EndRetention:   0.35,
		MaxSpeed:       18,
		SpawnRadius:    160,
		Seed:           1,
	}
}

// retention interpolates the velocity retention for the given tick: high
// early so the graph unfolds quickly, low late so it settles.
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

// Body is one mutable position record in the simulation arena. The arena is
// a fixed-size, index-stable slice owned exclusively by the Sim for one run;
// consumers resolve positions through the id→index map and must not hold
// Body pointers across dataset replacement.
type Body struct {
	ID         string
	X, Y, Z    float64
	VX, VY, VZ float64
	Mass       float64
}

// spring is an edge resolved to arena indices once at simulation start, so
// the tick loop never branches on id-vs-reference endpoint shapes.
type spring struct {
	a, b     int
	length   float64
	strength float64
}

// =============================================================================
// Simulation
// =============================================================================

// Sim is the node-level 3-D force simulation.
//
// It advances in discrete ticks on the caller's frame loop and auto-stops
// once the tick budget is exhausted. Replacing the dataset means building a
// new Sim; there is no mid-run mutation API.
type Sim struct {
	cfg     Config
	bodies  []Body
	index   map[string]int
	springs []spring
	tick    int
	rng     *rand.Rand
}

// New builds a simulation arena from the snapshot's nodes and edges.
// Edge endpoints are resolved to arena indices up front; edges referencing
// missing nodes are skipped. Node mass grows with centrality so hubs anchor
// their neighborhoods.
//
// A single-node graph is placed at the canvas center with no simulation:
// the returned Sim reports Done immediately.
func New(nodes []kgraph.Node, edges []kgraph.Edge, centrality kgraph.Centrality, cfg Config) *Sim {
	s := &Sim{
		cfg:   cfg,
		index: make(map[string]int, len(nodes)),
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}

	s.bodies = make([]Body, len(nodes))
	for i, n := range nodes {
		s.bodies[i] = Body{
			ID:   n.ID,
			Mass: 1 + math.Sqrt(centrality.Get(n.ID)),
		}
		s.index[n.ID] = i
	}
	s.scatter()

	maxW := 0.0
	for _, e := range edges {
		if e.Weight > maxW {
			maxW = e.Weight
		}
	}
	for _, e := range edges {
		a, okA := s.index[e.Source]
		b, okB := s.index[e.Target]
		if !okA || !okB || a == b {
			continue
		}
		strength := cfg.SpringStrength
		if maxW > 0 {
			strength *= 0.4 + 0.6*e.Weight/maxW
		}
		s.springs = append(s.springs, spring{a: a, b: b, length: cfg.SpringLength, strength: strength})
	}

	if len(s.bodies) <= 1 {
		if len(s.bodies) == 1 {
			s.bodies[0] = Body{ID: s.bodies[0].ID, Mass: s.bodies[0].Mass}
		}
		s.tick = cfg.MaxTicks
	}

	return s
}

// scatter seeds initial positions on a sphere so no two nodes coincide and
// the first repulsion pass has a separating direction to work with.
func (s *Sim) scatter() {
	for i := range s.bodies {
		r := s.cfg.SpawnRadius * (0.5 + 0.5*s.rng.Float64())
		theta := s.rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*s.rng.Float64() - 1)
		s.bodies[i].X = r * math.Sin(phi) * math.Cos(theta)
		s.bodies[i].Y = r * math.Sin(phi) * math.Sin(theta)
		s.bodies[i].Z = r * math.Cos(phi)
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

// Step advances one tick and reports whether the simulation is still
// running. Calling Step on a finished simulation is a no-op.
func (s *Sim) Step() bool {
	if s.Done() {
		return false
	}

	s.applyRepulsion()
	s.applySprings()
	s.applyCentering()
	s.integrate()
	s.sanitize()

	s.tick++
	return !s.Done()
}

func (s *Sim) applyRepulsion() {
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			a, b := &s.bodies[i], &s.bodies[j]
			dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
			distSq := dx*dx + dy*dy + dz*dz
			if distSq < 1e-4 {
				// Coincident bodies have no separating direction; nudge
				// deterministically so the force is finite.
				dx, dy, dz = s.jitter(), s.jitter(), s.jitter()
				distSq = dx*dx + dy*dy + dz*dz
			}
			dist := math.Sqrt(distSq)
			f := s.cfg.Repulsion * a.Mass * b.Mass / distSq
			fx, fy, fz := dx/dist*f, dy/dist*f, dz/dist*f
			a.VX -= fx
			a.VY -= fy
			a.VZ -= fz
			b.VX += fx
			b.VY += fy
			b.VZ += fz
		}
	}
}

func (s *Sim) applySprings() {
	for _, sp := range s.springs {
		a, b := &s.bodies[sp.a], &s.bodies[sp.b]
		dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if dist < 1e-6 {
			continue
		}
		f := sp.strength * (dist - sp.length)
		fx, fy, fz := dx/dist*f, dy/dist*f, dz/dist*f
		a.VX += fx
		a.VY += fy
		a.VZ += fz
		b.VX -= fx
		b.VY -= fy
		b.VZ -= fz
	}
}

func (s *Sim) applyCentering() {
	g := s.cfg.CenterGravity
	for i := range s.bodies {
		b := &s.bodies[i]
		b.VX -= b.X * g
		b.VY -= b.Y * g
		b.VZ -= b.Z * g
	}
}

func (s *Sim) integrate() {
	keep := s.cfg.retention(s.tick)
	maxSq := s.cfg.MaxSpeed * s.cfg.MaxSpeed
	for i := range s.bodies {
		b := &s.bodies[i]
		b.VX *= keep
		b.VY *= keep
		b.VZ *= keep
		if sq := b.VX*b.VX + b.VY*b.VY + b.VZ*b.VZ; sq > maxSq {
			scale := s.cfg.MaxSpeed / math.Sqrt(sq)
			b.VX *= scale
			b.VY *= scale
			b.VZ *= scale
		}
		b.X += b.VX
		b.Y += b.VY
		b.Z += b.VZ
	}
}

// sanitize guards the one fatal-adjacent failure mode: a tick producing
// non-finite positions. Offending bodies are clamped back near the origin
// with a small jitter instead of propagating NaN into subsequent frames.
func (s *Sim) sanitize() {
	for i := range s.bodies {
		b := &s.bodies[i]
		if finite(b.X) && finite(b.Y) && finite(b.Z) &&
			finite(b.VX) && finite(b.VY) && finite(b.VZ) {
			continue
		}
		b.X, b.Y, b.Z = s.jitter(), s.jitter(), s.jitter()
		b.VX, b.VY, b.VZ = 0, 0, 0
	}
}

func (s *Sim) jitter() float64 { return (s.rng.Float64() - 0.5) * 2 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Position returns the current position of a node by ID.
func (s *Sim) Position(id string) (x, y, z float64, ok bool) {
	i, found := s.index[id]
	if !found {
		return 0, 0, 0, false
	}
	b := s.bodies[i]
	return b.X, b.Y, b.Z, true
}

// Bodies returns a read-only view of the arena. The slice is valid only for
// the lifetime of this simulation run.
func (s *Sim) Bodies() []Body { return s.bodies }
