package sink

import (
	"bytes"
	"fmt"
	"io"

	"github.com/conceptatlas/atlas/pkg/kgraph"
	"github.com/conceptatlas/atlas/pkg/render"
)

const gapLinkCSS = `
    .gap-link { stroke-dasharray: 8 6; animation: gap-dash 1.6s linear infinite; }
    @keyframes gap-dash { to { stroke-dashoffset: -28; } }
    .cluster-label { font-family: sans-serif; text-anchor: middle; }`

const backgroundColor = "#14141f"

// WriteSVG serializes a scene as a standalone SVG document.
func WriteSVG(w io.Writer, scene *render.Scene) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		scene.Width, scene.Height, scene.Width, scene.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", gapLinkCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", backgroundColor)

	switch scene.Mode {
	case kgraph.ViewTopics:
		writeTopicSVG(&buf, scene)
	default:
		writeNodeSVG(&buf, scene)
	}

	buf.WriteString("</svg>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeTopicSVG(buf *bytes.Buffer, scene *render.Scene) {
	// Hulls below links below clusters below labels.
	for _, h := range scene.Hulls {
		buf.WriteString(`  <polygon points="`)
		for i, p := range h.Points {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "%.1f,%.1f", p.X, p.Y)
		}
		fmt.Fprintf(buf, `" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-opacity="%.2f"/>`+"\n",
			h.Color, h.Opacity, h.Color, h.Opacity*2)
	}

	for _, l := range scene.Links {
		class := ""
		if l.Gap {
			class = ` class="gap-link"`
		}
		fmt.Fprintf(buf, `  <line%s x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#8892b0" stroke-width="%.1f" stroke-opacity="%.2f"/>`+"\n",
			class, l.X1, l.Y1, l.X2, l.Y2, l.Width, l.Opacity)
	}

	for _, c := range scene.Clusters {
		stroke := 1.5
		if c.Focused {
			stroke = 3.5
		}
		fmt.Fprintf(buf, `  <circle id="cluster-%d" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f" stroke="#ffffff" stroke-width="%.1f" stroke-opacity="%.2f"/>`+"\n",
			c.ID, c.X, c.Y, c.Radius, c.Color, c.Opacity, stroke, c.Opacity)
	}

	for _, c := range scene.Clusters {
		if !c.LabelVisible {
			continue
		}
		fmt.Fprintf(buf, `  <text class="cluster-label" x="%.1f" y="%.1f" font-size="13" fill="#f2f2f7" fill-opacity="%.2f">%s</text>`+"\n",
			c.X, c.Y+c.Radius+16, c.Opacity, escapeXML(c.Label))
	}
}

// writeNodeSVG projects the 3-D scene orthographically (Z dropped, origin
// at canvas center). It exists for static export; the live 3-D view belongs
// to a host renderer.
func writeNodeSVG(buf *bytes.Buffer, scene *render.Scene) {
	cx, cy := scene.Width/2, scene.Height/2

	for _, e := range scene.Edges {
		dash := ""
		if e.Ghost {
			dash = ` stroke-dasharray="4 4"`
		}
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" stroke-opacity="0.6"%s/>`+"\n",
			cx+e.X1, cy+e.Y1, cx+e.X2, cy+e.Y2, e.Color, e.Width, dash)
	}

	for _, n := range scene.Nodes {
		// Layer stack is outermost-first; paint in order.
		for _, layer := range n.Layers {
			fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>`+"\n",
				cx+n.X, cy+n.Y, layer.Radius, layer.Color, layer.Opacity)
		}
		if n.LabelVisible {
			fmt.Fprintf(buf, `  <text class="cluster-label" x="%.1f" y="%.1f" font-size="10" fill="#f2f2f7">%s</text>`+"\n",
				cx+n.X, cy+n.Y-12, escapeXML(n.Label))
		}
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
