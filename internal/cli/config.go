package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/conceptatlas/atlas/pkg/layout/force"
	"github.com/conceptatlas/atlas/pkg/layout/topic"
	"github.com/conceptatlas/atlas/pkg/render"
	"github.com/conceptatlas/atlas/pkg/render/encode"
	"github.com/conceptatlas/atlas/pkg/render/lod"
)

// =============================================================================
// Tunables File
// =============================================================================

// Tunables is the optional TOML configuration for layout and encoding
// constants. Every field defaults to the built-in tuning; a config file
// only needs to name the values it overrides.
//
// Example:
//
//	[canvas]
//	width = 1600
//	height = 1000
//
//	[force]
//	repulsion = 300
//	max_ticks = 400
//
//	[lod]
//	level = "important"
type Tunables struct {
	Canvas CanvasTunables `toml:"canvas"`
	Force  ForceTunables  `toml:"force"`
	Topic  TopicTunables  `toml:"topic"`
	LOD    LODTunables    `toml:"lod"`
	Bloom  BloomTunables  `toml:"bloom"`
	Labels string         `toml:"labels"` // "all", "important", "hidden"
}

// CanvasTunables controls output dimensions.
type CanvasTunables struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// ForceTunables overrides the node-level simulation constants.
type ForceTunables struct {
	Repulsion      float64 `toml:"repulsion"`
	SpringStrength float64 `toml:"spring_strength"`
	SpringLength   float64 `toml:"spring_length"`
	CenterGravity  float64 `toml:"center_gravity"`
	MaxTicks       int     `toml:"max_ticks"`
	Seed           int64   `toml:"seed"`
}

// TopicTunables overrides the cluster-level simulation constants.
type TopicTunables struct {
	LinkStrength   float64 `toml:"link_strength"`
	GapPull        float64 `toml:"gap_pull"`
	RepulsionScale float64 `toml:"repulsion_scale"`
	RadialStrength float64 `toml:"radial_strength"`
	MaxTicks       int     `toml:"max_ticks"`
	Seed           int64   `toml:"seed"`
}

// LODTunables controls level-of-detail culling.
type LODTunables struct {
	Level string `toml:"level"` // "all", "important", "key", "hub"
}

// BloomTunables controls the glow layer stack.
type BloomTunables struct {
	Enabled   *bool   `toml:"enabled"`
	Intensity float64 `toml:"intensity"`
	GlowSize  float64 `toml:"glow_size"`
}

// loadTunables reads a TOML tunables file. An empty path returns zero
// tunables, which apply no overrides.
func loadTunables(path string) (Tunables, error) {
	var t Tunables
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse config: %w", err)
	}
	return t, nil
}

// =============================================================================
// Application to Engine Configs
// =============================================================================

// forceConfig applies tunable overrides on top of the default 3-D tuning.
func (t Tunables) forceConfig() force.Config {
	cfg := force.DefaultConfig()
	if t.Force.Repulsion > 0 {
		cfg.Repulsion = t.Force.Repulsion
	}
	if t.Force.SpringStrength > 0 {
		cfg.SpringStrength = t.Force.SpringStrength
	}
	if t.Force.SpringLength > 0 {
		cfg.SpringLength = t.Force.SpringLength
	}
	if t.Force.CenterGravity > 0 {
		cfg.CenterGravity = t.Force.CenterGravity
	}
	if t.Force.MaxTicks > 0 {
		cfg.MaxTicks = t.Force.MaxTicks
	}
	if t.Force.Seed != 0 {
		cfg.Seed = t.Force.Seed
	}
	return cfg
}

// topicConfig applies tunable overrides on top of the default 2-D tuning.
func (t Tunables) topicConfig() topic.Config {
	cfg := topic.DefaultConfig()
	if t.Canvas.Width > 0 {
		cfg.Width = t.Canvas.Width
	}
	if t.Canvas.Height > 0 {
		cfg.Height = t.Canvas.Height
	}
	if t.Topic.LinkStrength > 0 {
		cfg.LinkStrength = t.Topic.LinkStrength
	}
	if t.Topic.GapPull > 0 {
		cfg.GapPull = t.Topic.GapPull
	}
	if t.Topic.RepulsionScale > 0 {
		cfg.RepulsionScale = t.Topic.RepulsionScale
	}
	if t.Topic.RadialStrength > 0 {
		cfg.RadialStrength = t.Topic.RadialStrength
	}
	if t.Topic.MaxTicks > 0 {
		cfg.MaxTicks = t.Topic.MaxTicks
	}
	if t.Topic.Seed != 0 {
		cfg.Seed = t.Topic.Seed
	}
	return cfg
}

// renderConfig builds the complete render configuration from the tunables.
func (t Tunables) renderConfig() render.Config {
	cfg := render.DefaultConfig()
	if t.Canvas.Width > 0 {
		cfg.Width = t.Canvas.Width
	}
	if t.Canvas.Height > 0 {
		cfg.Height = t.Canvas.Height
	}
	if t.LOD.Level != "" {
		cfg.LOD = lod.ConfigForLevel(lod.Level(t.LOD.Level))
	}
	if t.Labels != "" {
		cfg.Labels = encode.LabelMode(t.Labels)
	}
	if t.Bloom.Enabled != nil {
		cfg.Bloom.Enabled = *t.Bloom.Enabled
	}
	if t.Bloom.Intensity > 0 {
		cfg.Bloom.Intensity = t.Bloom.Intensity
	}
	if t.Bloom.GlowSize > 0 {
		cfg.Bloom.GlowSize = t.Bloom.GlowSize
	}
	return cfg
}
