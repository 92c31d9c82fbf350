package encode

import "math"

// =============================================================================
// Size Scaling
// =============================================================================

// SizeConfig controls node radius computation. The growth is square-root,
// never linear: a linear radius makes area grow quadratically and visually
// exaggerates large nodes.
type SizeConfig struct {
	Base        float64 // minimum radius for a zero-weight node
	Scale       float64 // multiplier on sqrt(weight)
	BridgeBoost float64 // additive boost for bridge-candidate nodes
}

// DefaultSizeConfig returns the tuning used by both views.
func DefaultSizeConfig() SizeConfig {
	return SizeConfig{Base: 4, Scale: 2.5, BridgeBoost: 2}
}

// Radius maps a size-or-centrality weight to a visual radius.
// Negative weights are treated as zero.
func (c SizeConfig) Radius(weight float64) float64 {
	if weight < 0 {
		weight = 0
	}
	return c.Base + math.Sqrt(weight)*c.Scale
}

// NodeRadius maps a weight to a radius, applying the bridge boost.
func (c SizeConfig) NodeRadius(weight float64, bridge bool) float64 {
	r := c.Radius(weight)
	if bridge {
		r += c.BridgeBoost
	}
	return r
}

// EdgeWidth maps an edge weight to a stroke width, normalized against the
// maximum weight seen in the current dataset. maxWeight <= 0 yields the
// minimum width for every edge.
func EdgeWidth(weight, maxWeight, minWidth, maxWidth float64) float64 {
	if maxWeight <= 0 || weight <= 0 {
		return minWidth
	}
	ratio := weight / maxWeight
	if ratio > 1 {
		ratio = 1
	}
	return minWidth + (maxWidth-minWidth)*ratio
}
