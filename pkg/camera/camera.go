// Package camera computes and smoothly transitions to target views over the
// graph: a node's position, a cluster's centroid, or a structural gap's
// combined centroid. Transitions are fixed-duration tweens advanced on the
// caller's frame loop; a new focus call simply supersedes the in-flight one.
package camera

import (
	"math"
	"time"
)

// Vec3 is a 3-D vector. The 2-D topic view uses Z = 0 throughout.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by f.
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

// Len returns the vector length.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Pose is a camera position looking at a target point.
type Pose struct {
	Position Vec3
	Target   Vec3
}

// Resolver supplies current positions for focus targets. The layout engines
// implement it; the controller never touches arena records directly.
type Resolver interface {
	// NodePosition returns a node's current position.
	NodePosition(id string) (Vec3, bool)
	// ClusterPositions returns the resolved positions of a cluster's members.
	ClusterPositions(clusterID int) []Vec3
	// GapPositions returns the positions of both gap-side clusters' members
	// plus bridge candidates.
	GapPositions(gapID string) []Vec3
}

// Config holds camera tuning.
type Config struct {
	Standoff      float64       // distance from the focus point
	TweenDuration time.Duration // fixed transition duration
	DefaultPose   Pose          // canonical reset pose
}

// DefaultConfig returns the standard camera tuning.
func DefaultConfig() Config {
	return Config{
		Standoff:      260,
		TweenDuration: 750 * time.Millisecond,
		DefaultPose: Pose{
			Position: Vec3{0, 0, 520},
			Target:   Vec3{},
		},
	}
}

// tween is one in-flight transition. There is no cancellation API: starting
// a new tween from the current interpolated pose is the supersede semantics.
type tween struct {
	from, to Pose
	elapsed  time.Duration
	duration time.Duration
}

// Controller owns the camera pose and in-flight transition.
type Controller struct {
	cfg      Config
	resolver Resolver
	pose     Pose
	tw       *tween
}

// New creates a controller at the default pose.
func New(cfg Config, resolver Resolver) *Controller {
	return &Controller{cfg: cfg, resolver: resolver, pose: cfg.DefaultPose}
}

// Pose returns the current camera pose.
func (c *Controller) Pose() Pose { return c.pose }

// Animating reports whether a transition is in flight.
func (c *Controller) Animating() bool { return c.tw != nil }

// FocusOnNode tweens to a standoff view of the node. Unknown IDs are no-ops.
func (c *Controller) FocusOnNode(id string) {
	if c.resolver == nil {
		return
	}
	p, ok := c.resolver.NodePosition(id)
	if !ok {
		return
	}
	c.startTween(p)
}

// FocusOnCluster tweens to the arithmetic centroid of the cluster's resolved
// member positions. A cluster with zero resolved positions is a no-op, never
// an error.
func (c *Controller) FocusOnCluster(clusterID int) {
	if c.resolver == nil {
		return
	}
	c.focusCentroid(c.resolver.ClusterPositions(clusterID))
}

// FocusOnGap tweens to the centroid of the union of both gap-side clusters'
// members plus bridge candidates. An empty union is a no-op.
func (c *Controller) FocusOnGap(gapID string) {
	if c.resolver == nil {
		return
	}
	c.focusCentroid(c.resolver.GapPositions(gapID))
}

// Reset tweens back to the canonical default pose.
func (c *Controller) Reset() {
	c.tw = &tween{from: c.pose, to: c.cfg.DefaultPose, duration: c.cfg.TweenDuration}
}

func (c *Controller) focusCentroid(points []Vec3) {
	if len(points) == 0 {
		return
	}
	var sum Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	c.startTween(sum.Scale(1 / float64(len(points))))
}

// startTween computes the standoff pose for a focus point and begins a
// transition from the current pose. The approach direction is kept from the
// camera's current bearing so focus changes don't spin the view.
func (c *Controller) startTween(target Vec3) {
	dir := c.pose.Position.Sub(target)
	if dir.Len() < 1e-6 {
		dir = Vec3{0, 0, 1}
	}
	dir = dir.Scale(1 / dir.Len())

	to := Pose{
		Position: target.Add(dir.Scale(c.cfg.Standoff)),
		Target:   target,
	}
	c.tw = &tween{from: c.pose, to: to, duration: c.cfg.TweenDuration}
}

// Advance moves the in-flight tween forward by dt and returns the current
// pose. With no tween in flight the pose is returned unchanged.
func (c *Controller) Advance(dt time.Duration) Pose {
	if c.tw == nil {
		return c.pose
	}
	c.tw.elapsed += dt
	t := float64(c.tw.elapsed) / float64(c.tw.duration)
	if t >= 1 {
		c.pose = c.tw.to
		c.tw = nil
		return c.pose
	}
	e := easeInOutCubic(t)
	c.pose = Pose{
		Position: lerpVec(c.tw.from.Position, c.tw.to.Position, e),
		Target:   lerpVec(c.tw.from.Target, c.tw.to.Target, e),
	}
	return c.pose
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 1 + f*f*f/2
}

func lerpVec(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}
