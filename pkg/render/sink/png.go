package sink

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/conceptatlas/atlas/pkg/kgraph"
	"github.com/conceptatlas/atlas/pkg/render"
)

// RenderPNG rasterizes a scene to PNG bytes at the given scale. A scale of
// 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(scene *render.Scene, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	width := int(scene.Width * scale)
	height := int(scene.Height * scale)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scene has no drawable area")
	}

	dc := gg.NewContext(width, height)
	dc.Scale(scale, scale)
	dc.SetColor(hexColor(backgroundColor, 1))
	dc.Clear()

	switch scene.Mode {
	case kgraph.ViewTopics:
		drawTopicPNG(dc, scene)
	default:
		drawNodePNG(dc, scene)
	}

	var buf pngBuffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.data, nil
}

func drawTopicPNG(dc *gg.Context, scene *render.Scene) {
	for _, h := range scene.Hulls {
		if len(h.Points) == 0 {
			continue
		}
		dc.MoveTo(h.Points[0].X, h.Points[0].Y)
		for _, p := range h.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.SetColor(hexColor(h.Color, h.Opacity))
		dc.Fill()
	}

	for _, l := range scene.Links {
		dc.SetColor(hexColor("#8892b0", l.Opacity))
		dc.SetLineWidth(l.Width)
		if l.Gap {
			dc.SetDash(8, 6)
		}
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
		dc.SetDash()
	}

	for _, c := range scene.Clusters {
		dc.SetColor(hexColor(c.Color, c.Opacity))
		dc.DrawCircle(c.X, c.Y, c.Radius)
		dc.Fill()

		stroke := 1.5
		if c.Focused {
			stroke = 3.5
		}
		dc.SetColor(hexColor("#ffffff", c.Opacity))
		dc.SetLineWidth(stroke)
		dc.DrawCircle(c.X, c.Y, c.Radius)
		dc.Stroke()
	}

	for _, c := range scene.Clusters {
		if !c.LabelVisible {
			continue
		}
		dc.SetColor(hexColor("#f2f2f7", c.Opacity))
		dc.DrawStringAnchored(c.Label, c.X, c.Y+c.Radius+14, 0.5, 0.5)
	}
}

func drawNodePNG(dc *gg.Context, scene *render.Scene) {
	cx, cy := scene.Width/2, scene.Height/2

	for _, e := range scene.Edges {
		dc.SetColor(hexColor(e.Color, 0.6))
		dc.SetLineWidth(e.Width)
		if e.Ghost {
			dc.SetDash(4, 4)
		}
		dc.DrawLine(cx+e.X1, cy+e.Y1, cx+e.X2, cy+e.Y2)
		dc.Stroke()
		dc.SetDash()
	}

	for _, n := range scene.Nodes {
		for _, layer := range n.Layers {
			dc.SetColor(hexColor(layer.Color, layer.Opacity))
			dc.DrawCircle(cx+n.X, cy+n.Y, layer.Radius)
			dc.Fill()
		}
		if n.LabelVisible {
			dc.SetColor(hexColor("#f2f2f7", 0.9))
			dc.DrawStringAnchored(n.Label, cx+n.X, cy+n.Y-12, 0.5, 0.5)
		}
	}
}

// hexColor parses "#rrggbb" with an explicit alpha. Malformed input yields
// opaque gray rather than an error: colors are cosmetic, not load-bearing.
func hexColor(hex string, alpha float64) color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(alpha * 255)}
}

// pngBuffer is a minimal io.Writer over a byte slice.
type pngBuffer struct {
	data []byte
}

func (b *pngBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
