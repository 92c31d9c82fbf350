// Package sink serializes render scenes to output formats: standalone SVG,
// rasterized PNG (via fogleman/gg), Graphviz DOT (rendered with
// goccy/go-graphviz), and plain JSON.
//
// Sinks are dumb by design: every visual decision (colors, sizes, layers,
// opacity) was already made by the encoder, so the same scene draws
// identically in every format.
package sink
