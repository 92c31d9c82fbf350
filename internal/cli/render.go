package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/conceptatlas/atlas/pkg/cache"
	"github.com/conceptatlas/atlas/pkg/interact"
	"github.com/conceptatlas/atlas/pkg/kgraph"
	"github.com/conceptatlas/atlas/pkg/layout/force"
	"github.com/conceptatlas/atlas/pkg/layout/topic"
	"github.com/conceptatlas/atlas/pkg/observability"
	"github.com/conceptatlas/atlas/pkg/render"
	"github.com/conceptatlas/atlas/pkg/render/sink"
)

const (
	defaultPNGScale = 2.0            // supersampling factor for PNG output
	sceneCacheTTL   = 7 * 24 * time.Hour // settled scenes keep for a week
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple outputs)
	views   []string // view modes: "nodes", "topics"
	formats []string // output formats: "svg", "png", "dot", "json"
	config  string   // optional TOML tunables file
	noCache bool     // bypass the layout cache
	scale   float64  // PNG supersampling factor
}

// renderCommand creates the render command for generating visualizations.
// It supports both view modes (nodes, topics) and multiple output formats.
func (c *CLI) renderCommand() *cobra.Command {
	var viewsStr, formatsStr string
	opts := renderOpts{scale: defaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a knowledge graph snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.views = parseViews(viewsStr)
			opts.formats = parseFormats(formatsStr)
			if err := validateViews(opts.views); err != nil {
				return err
			}
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return runRender(ctx, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single view/format) or base path (multiple)")
	cmd.Flags().StringVarP(&viewsStr, "view", "t", "", "view mode(s): topics (default), nodes (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML tunables file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout cache")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG supersampling factor")

	return cmd
}

// parseViews parses the --view flag into a slice of view modes.
// If empty, defaults to the topic view.
func parseViews(s string) []string {
	if s == "" {
		return []string{kgraph.ViewTopics}
	}
	return strings.Split(s, ",")
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "dot": true, "json": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'dot', or 'json')", f)
		}
	}
	return nil
}

// validateViews checks that all requested view modes are valid.
func validateViews(views []string) error {
	for _, v := range views {
		if v != kgraph.ViewNodes && v != kgraph.ViewTopics {
			return fmt.Errorf("invalid view: %s (must be 'nodes' or 'topics')", v)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the snapshot, settles the requested layouts, and writes
// every requested view/format combination.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	snap, err := kgraph.ReadSnapshotFile(input)
	if err != nil {
		return err
	}
	snap = snap.Normalize()
	logger.Infof("Loaded snapshot: %d nodes, %d edges, %d clusters",
		len(snap.Nodes), len(snap.Edges), len(snap.Clusters))

	tunables, err := loadTunables(opts.config)
	if err != nil {
		return err
	}

	layoutCache, err := newLayoutCache(opts.noCache)
	if err != nil {
		return err
	}
	defer layoutCache.Close()

	eng := &engine{
		snap:     &snap,
		tunables: tunables,
		cache:    layoutCache,
	}

	if len(opts.views) == 1 && len(opts.formats) == 1 {
		return renderSingle(ctx, eng, opts.views[0], opts.formats[0], input, opts)
	}
	return renderMultiple(ctx, eng, input, opts)
}

// renderSingle renders a single view and format to a single output file.
// If opts.output is empty, the output path is derived from the input file name.
func renderSingle(ctx context.Context, eng *engine, view, format, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := renderScene(ctx, eng, view, format, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	outputPath := opts.output
	if outputPath == "" {
		outputPath = basePath("", input) + "." + format
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return err
	}

	printSuccess("Generated %s", outputPath)
	return nil
}

// renderMultiple renders all requested view/format combinations to separate files.
func renderMultiple(ctx context.Context, eng *engine, input string, opts *renderOpts) error {
	base := basePath(opts.output, input)

	for _, view := range opts.views {
		for _, format := range opts.formats {
			data, err := renderScene(ctx, eng, view, format, opts)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", view, format, err)
			}

			var path string
			if len(opts.views) == 1 {
				path = fmt.Sprintf("%s.%s", base, format)
			} else {
				path = fmt.Sprintf("%s_%s.%s", base, view, format)
			}

			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}
			printFile(path)
		}
	}
	return nil
}

// renderScene builds the scene for a view and encodes it in the requested format.
func renderScene(ctx context.Context, eng *engine, view, format string, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	scene, err := eng.scene(ctx, view)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, format)
	data, err := encodeScene(scene, format, opts.scale)
	observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Encoded %s/%s: %d bytes", view, format, len(data))
	return data, nil
}

// encodeScene dispatches to the sink for the requested format.
func encodeScene(scene *render.Scene, format string, scale float64) ([]byte, error) {
	switch format {
	case "svg":
		var b strings.Builder
		if err := sink.WriteSVG(&b, scene); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	case "png":
		return sink.RenderPNG(scene, scale)
	case "dot":
		return []byte(sink.ToDOT(scene)), nil
	case "json":
		return sink.MarshalScene(scene)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// =============================================================================
// Engine - Layout + Scene Assembly
// =============================================================================

// engine settles layouts and builds scenes for one snapshot, caching settled
// scenes keyed by the snapshot content and the active tunables.
type engine struct {
	snap     *kgraph.Snapshot
	tunables Tunables
	cache    cache.Cache

	snapshotHash string // lazily computed content hash
}

// scene returns the settled scene for a view, from cache when possible.
func (e *engine) scene(ctx context.Context, view string) (*render.Scene, error) {
	logger := loggerFromContext(ctx)

	key, err := e.cacheKey(view)
	if err == nil {
		if data, ok, _ := e.cache.Get(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, "scene")
			var scene render.Scene
			if jsonErr := json.Unmarshal(data, &scene); jsonErr == nil {
				logger.Debugf("Scene cache hit for %s view", view)
				printStats(len(e.snap.Nodes), len(e.snap.Edges), true)
				return &scene, nil
			}
			// Corrupt entry: drop it and recompute
			_ = e.cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	scene, err := e.build(ctx, view)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if data, jsonErr := json.Marshal(scene); jsonErr == nil {
			if setErr := e.cache.Set(ctx, key, data, sceneCacheTTL); setErr == nil {
				observability.Cache().OnCacheSet(ctx, "scene", len(data))
			}
		}
	}
	printStats(len(e.snap.Nodes), len(e.snap.Edges), false)
	return scene, nil
}

// build settles the layout for a view and assembles the scene.
func (e *engine) build(ctx context.Context, view string) (*render.Scene, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Settling %s layout", view))
	spin.Start()

	in := render.Input{
		Snapshot: e.snap,
		Config:   e.tunables.renderConfig(),
		State:    interact.New(e.snap, interact.Callbacks{}, nil).State(),
	}

	start := time.Now()
	switch view {
	case kgraph.ViewNodes:
		sim := force.New(e.snap.Nodes, e.snap.Edges, e.snap.CentralityMap(), e.tunables.forceConfig())
		observability.Engine().OnSimulationStart(ctx, view, len(e.snap.Nodes))
		sim.Run()
		observability.Engine().OnSimulationComplete(ctx, view, sim.Tick(), time.Since(start), nil)
		in.Nodes3 = sim
	case kgraph.ViewTopics:
		sim := topic.New(e.snap, e.tunables.topicConfig())
		observability.Engine().OnSimulationStart(ctx, view, len(e.snap.Clusters))
		sim.Run()
		observability.Engine().OnSimulationComplete(ctx, view, sim.Tick(), time.Since(start), nil)
		in.Topics = sim
	default:
		spin.Stop()
		return nil, fmt.Errorf("unknown view mode: %s", view)
	}
	spin.Stop()
	prog.done(fmt.Sprintf("Settled %s layout", view))

	strategy, err := render.For(view)
	if err != nil {
		return nil, err
	}

	buildStart := time.Now()
	observability.Engine().OnSceneBuildStart(ctx, view)
	scene, err := strategy.BuildScene(in)
	nodeCount, edgeCount := 0, 0
	if scene != nil {
		nodeCount, edgeCount = len(scene.Nodes), len(scene.Edges)
	}
	observability.Engine().OnSceneBuildComplete(ctx, view, nodeCount, edgeCount, time.Since(buildStart), err)
	return scene, err
}

// cacheKey derives the scene cache key for a view.
func (e *engine) cacheKey(view string) (string, error) {
	if e.snapshotHash == "" {
		data, err := kgraph.MarshalSnapshot(*e.snap)
		if err != nil {
			return "", err
		}
		e.snapshotHash = cache.Hash(data)
	}
	return cache.SceneKey(e.snapshotHash, view, e.tunables), nil
}
