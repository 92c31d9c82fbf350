package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/conceptatlas/atlas/pkg/render"
)

// ToDOT converts a topic scene's cluster graph to Graphviz DOT format, for
// quick static previews and interop with external graph tooling. Gap links
// are drawn dashed; connection strength maps to penwidth.
func ToDOT(scene *render.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("graph topics {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=12];\n")
	buf.WriteString("\n")

	for _, c := range scene.Clusters {
		fmt.Fprintf(&buf, "  %d [label=%q, fillcolor=%q, width=%.2f];\n",
			c.ID, c.Label, c.Color, c.Radius/36)
	}

	buf.WriteString("\n")
	for _, l := range scene.Links {
		attrs := fmt.Sprintf("penwidth=%.1f", l.Width)
		if l.Gap {
			attrs += ", style=dashed, color=\"#d97706\""
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", l.A, l.B, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT string to SVG using Graphviz.
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
