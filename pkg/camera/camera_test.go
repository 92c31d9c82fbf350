package camera

import (
	"math"
	"testing"
	"time"
)

// stubResolver serves fixed positions for the controller tests.
type stubResolver struct {
	nodes    map[string]Vec3
	clusters map[int][]Vec3
	gaps     map[string][]Vec3
}

func (r *stubResolver) NodePosition(id string) (Vec3, bool) {
	p, ok := r.nodes[id]
	return p, ok
}

func (r *stubResolver) ClusterPositions(clusterID int) []Vec3 { return r.clusters[clusterID] }

func (r *stubResolver) GapPositions(gapID string) []Vec3 { return r.gaps[gapID] }

func testResolver() *stubResolver {
	return &stubResolver{
		nodes: map[string]Vec3{
			"n1": {100, 0, 0},
		},
		clusters: map[int][]Vec3{
			0: {{0, 0, 0}, {40, 0, 0}, {20, 60, 0}},
			1: nil,
		},
		gaps: map[string][]Vec3{
			"g1": {{-50, 0, 0}, {50, 0, 0}},
		},
	}
}

func settle(c *Controller) Pose {
	for c.Animating() {
		c.Advance(100 * time.Millisecond)
	}
	return c.Pose()
}

func TestFocusOnNodeStandoff(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg, testResolver())

	c.FocusOnNode("n1")
	if !c.Animating() {
		t.Fatal("focus should start a transition")
	}
	pose := settle(c)

	if pose.Target != (Vec3{100, 0, 0}) {
		t.Errorf("target = %+v, want node position", pose.Target)
	}
	if d := pose.Position.Sub(pose.Target).Len(); math.Abs(d-cfg.Standoff) > 1e-6 {
		t.Errorf("standoff distance = %v, want %v", d, cfg.Standoff)
	}
}

func TestFocusOnUnknownNodeIsNoop(t *testing.T) {
	c := New(DefaultConfig(), testResolver())
	before := c.Pose()

	c.FocusOnNode("missing")
	if c.Animating() {
		t.Fatal("unknown node should not start a transition")
	}
	if c.Pose() != before {
		t.Error("pose changed on unknown node")
	}
}

func TestFocusOnClusterCentroid(t *testing.T) {
	c := New(DefaultConfig(), testResolver())
	c.FocusOnCluster(0)
	pose := settle(c)

	want := Vec3{20, 20, 0}
	if pose.Target != want {
		t.Errorf("target = %+v, want centroid %+v", pose.Target, want)
	}
}

func TestFocusOnEmptyClusterIsNoop(t *testing.T) {
	c := New(DefaultConfig(), testResolver())
	c.FocusOnCluster(1)
	if c.Animating() {
		t.Error("cluster with no resolved positions should not start a transition")
	}
}

func TestFocusOnGapCentroid(t *testing.T) {
	c := New(DefaultConfig(), testResolver())
	c.FocusOnGap("g1")
	pose := settle(c)

	if pose.Target != (Vec3{0, 0, 0}) {
		t.Errorf("target = %+v, want gap centroid at origin", pose.Target)
	}
}

func TestNewFocusSupersedesInFlight(t *testing.T) {
	c := New(DefaultConfig(), testResolver())

	c.FocusOnNode("n1")
	c.Advance(100 * time.Millisecond)
	c.FocusOnCluster(0)
	pose := settle(c)

	if pose.Target != (Vec3{20, 20, 0}) {
		t.Errorf("target = %+v, want latest focus to win", pose.Target)
	}
}

func TestReset(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg, testResolver())

	c.FocusOnNode("n1")
	settle(c)
	c.Reset()
	pose := settle(c)

	if pose != cfg.DefaultPose {
		t.Errorf("pose after reset = %+v, want default %+v", pose, cfg.DefaultPose)
	}
}

func TestAdvanceWithoutTween(t *testing.T) {
	c := New(DefaultConfig(), testResolver())
	before := c.Pose()
	if got := c.Advance(time.Second); got != before {
		t.Errorf("Advance with no tween changed the pose: %+v", got)
	}
}

func TestAdvanceInterpolates(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg, testResolver())
	c.FocusOnNode("n1")

	mid := c.Advance(cfg.TweenDuration / 2)
	if mid == cfg.DefaultPose {
		t.Error("midpoint pose should have moved off the start")
	}
	if !c.Animating() {
		t.Error("transition should still be in flight at the midpoint")
	}

	end := c.Advance(cfg.TweenDuration)
	if c.Animating() {
		t.Error("transition should be complete")
	}
	if end.Target != (Vec3{100, 0, 0}) {
		t.Errorf("final target = %+v", end.Target)
	}
}

func TestNilResolverIsSafe(t *testing.T) {
	c := New(DefaultConfig(), nil)
	c.FocusOnNode("n1")
	c.FocusOnCluster(0)
	c.FocusOnGap("g1")
	if c.Animating() {
		t.Error("nil resolver should make focus calls no-ops")
	}
}
