package encode

import (
	"hash/fnv"

	"github.com/lucasb-eyer/go-colorful"
)

// =============================================================================
// Cluster Palette
// =============================================================================

// DefaultPalette is the fixed cluster palette. Sixteen hues spaced for
// adjacent-cluster contrast; assignment is by label hash, so a cluster keeps
// its color across refetches even when cluster ordering changes.
var DefaultPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
	"#9c755f", "#bab0ac", "#86bcb6", "#d37295",
	"#fabfd2", "#b6992d", "#499894", "#79706e",
}

// HighlightColor is the distinguished override for highlighted nodes.
const HighlightColor = "#ffd700"

// entityColors is the fallback lookup when a node has no cluster.
var entityColors = map[string]string{
	"concept": "#4e79a7",
	"paper":   "#59a14f",
	"author":  "#b07aa1",
	"method":  "#f28e2b",
}

// entityColorDefault styles unknown entity types.
const entityColorDefault = "#8d99ae"

// ColorForCluster deterministically maps a cluster color key to a palette
// entry. The same key always yields the same color regardless of how many
// clusters exist or in which order they arrived.
func ColorForCluster(key string) string {
	h := fnv.New32a()
	h.Write([]byte(key))
	return DefaultPalette[h.Sum32()%uint32(len(DefaultPalette))]
}

// ColorForEntity returns the fixed color for an entity-type tag.
func ColorForEntity(entityType string) string {
	if c, ok := entityColors[entityType]; ok {
		return c
	}
	return entityColorDefault
}

// NodeColor resolves the full precedence chain: highlight override, then
// cluster hash, then entity-type fallback.
func NodeColor(clusterKey, entityType string, highlighted bool) string {
	if highlighted {
		return HighlightColor
	}
	if clusterKey != "" {
		return ColorForCluster(clusterKey)
	}
	return ColorForEntity(entityType)
}

// Lighten returns the hex color blended toward white by t in [0,1].
// Used for bloom halos and hover emphasis.
func Lighten(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	white, _ := colorful.Hex("#ffffff")
	return c.BlendLab(white, clamp01(t)).Clamped().Hex()
}

// Darken returns the hex color blended toward black by t in [0,1].
// Hull fills use a darkened cluster color so boundaries read as background.
func Darken(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	black, _ := colorful.Hex("#000000")
	return c.BlendLab(black, clamp01(t)).Clamped().Hex()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
