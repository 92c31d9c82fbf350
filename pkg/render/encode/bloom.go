package encode

// =============================================================================
// Bloom / Glow Layers
// =============================================================================

// LayerKind identifies one concentric visual layer of a rendered node.
type LayerKind int

const (
	// LayerCore is the solid node body. Always present.
	LayerCore LayerKind = iota
	// LayerBloom is the intensity-modulated emissive halo, gated by the
	// global bloom flag.
	LayerBloom
	// LayerBridge is the fixed-tint halo marking bridge candidates,
	// independent of bloom.
	LayerBridge
	// LayerSelection is the ring drawn only for highlighted nodes.
	LayerSelection
)

// Layer is one concentric drawing pass for a node, innermost first.
type Layer struct {
	Kind    LayerKind
	Radius  float64 // absolute radius for this layer
	Color   string
	Opacity float64
}

// BloomConfig is the externally-owned glow configuration, passed per render
// call rather than held in package state.
type BloomConfig struct {
	Enabled   bool
	Intensity float64 // emissive strength in [0,1]
	GlowSize  float64 // halo radius as a multiple of the core radius
}

// DefaultBloomConfig returns moderate glow suitable for dark backgrounds.
func DefaultBloomConfig() BloomConfig {
	return BloomConfig{Enabled: true, Intensity: 0.6, GlowSize: 1.8}
}

// bridgeHaloColor is the fixed tint for bridge halos, deliberately not
// derived from the node color so bridges stay recognizable in every cluster.
const bridgeHaloColor = "#ffb703"

// selectionRingColor marks the current highlight set.
const selectionRingColor = "#ffffff"

// Layers computes the concentric layer stack for one node: core, optional
// bloom halo, optional bridge halo, optional selection ring. The slice is
// ordered outermost-first so sinks can paint it back-to-front.
func Layers(radius float64, color string, bridge, highlighted bool, cfg BloomConfig) []Layer {
	var layers []Layer

	if cfg.Enabled && cfg.Intensity > 0 {
		glow := cfg.GlowSize
		if glow <= 1 {
			glow = 1.5
		}
		layers = append(layers, Layer{
			Kind:    LayerBloom,
			Radius:  radius * glow,
			Color:   Lighten(color, 0.3),
			Opacity: 0.35 * clamp01(cfg.Intensity),
		})
	}

	if bridge {
		layers = append(layers, Layer{
			Kind:    LayerBridge,
			Radius:  radius + 3,
			Color:   bridgeHaloColor,
			Opacity: 0.5,
		})
	}

	layers = append(layers, Layer{
		Kind:    LayerCore,
		Radius:  radius,
		Color:   color,
		Opacity: 1,
	})

	if highlighted {
		layers = append(layers, Layer{
			Kind:    LayerSelection,
			Radius:  radius + 1.5,
			Color:   selectionRingColor,
			Opacity: 0.9,
		})
	}

	return layers
}
