package render

import (
	"github.com/conceptatlas/atlas/pkg/render/encode"
	"github.com/conceptatlas/atlas/pkg/render/lod"
)

// Config is the complete, externally-owned render configuration, passed
// explicitly per call. There is no module-level configuration state: tests
// and hosts construct the value they need and the engine never mutates it.
type Config struct {
	LOD    lod.Config
	Labels encode.LabelMode
	Bloom  encode.BloomConfig
	Size   encode.SizeConfig

	// Pinned nodes bypass LOD culling unconditionally.
	Pinned map[string]struct{}

	// Canvas dimensions for the 2-D topic view.
	Width, Height float64
}

// DefaultConfig returns the standard render configuration.
func DefaultConfig() Config {
	return Config{
		LOD:    lod.ConfigForLevel(lod.LevelAll),
		Labels: encode.LabelsAll,
		Bloom:  encode.DefaultBloomConfig(),
		Size:   encode.DefaultSizeConfig(),
		Width:  1200,
		Height: 800,
	}
}
