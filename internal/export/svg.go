package export

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/regenesis/regenesis/backend-go/internal/document"
	"github.com/regenesis/regenesis/backend-go/internal/engine"
)

// SVGOptions controls plot rendering.
type SVGOptions struct {
	Width          int     // canvas width in pixels
	Height         int     // canvas height in pixels
	MarginFraction float64 // fraction of the canvas left as padding
	Background     string  // background fill
	ShowLabels     bool    // render region and plant names
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:          800,
		Height:         600,
		MarginFraction: 0.1,
		Background:     "#f4efe6",
		ShowLabels:     true,
	}
}

// RenderSVG draws a plot document to SVG. The whole plot is auto-fitted
// into the canvas with the engine's framing math, so export output matches
// what "fit to plot" shows in the editor.
func RenderSVG(doc *document.PlotDocument, opts SVGOptions) string {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}

	eng := engine.NewEngine(engine.DefaultConfig())
	eng.SetDocument(doc.Clone())
	view := eng.FitAll(float64(opts.Width), float64(opts.Height), opts.MarginFraction)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", opts.Background)
	if opts.ShowLabels {
		fmt.Fprintf(&b, `  <title>%s</title>`+"\n", html.EscapeString(doc.Project.Name))
	}

	eng.Tree().Walk(doc.Project.Root, func(n *engine.TreeNode) bool {
		if n.Kind != engine.KindPolygon || n.PolygonID == "" {
			return true
		}
		poly, ok := doc.Polygons[n.PolygonID]
		if !ok {
			return true
		}

		flat := engine.FlattenForRender(vertexPoints(poly.Vertices), view)
		var pts []string
		for i := 0; i+1 < len(flat); i += 2 {
			pts = append(pts, fmt.Sprintf("%.2f,%.2f", flat[i], flat[i+1]))
		}
		fill := poly.Fill
		if fill == "" {
			fill = "#a8d5a2"
		}
		stroke := poly.Stroke
		if stroke == "" {
			stroke = "#2f6b2f"
		}
		fmt.Fprintf(&b, `  <polygon points="%s" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			strings.Join(pts, " "), fill, stroke)

		if opts.ShowLabels && n.Name != "" {
			c := engine.WorldToScreen(engine.BoundsOf(vertexPoints(poly.Vertices)).Center(), view)
			fmt.Fprintf(&b, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-size="14" fill="#333">%s</text>`+"\n",
				c.X, c.Y, html.EscapeString(n.Name))
		}
		return true
	})

	placements := make([]document.Placement, 0, len(doc.Placements))
	for _, p := range doc.Placements {
		placements = append(placements, p)
	}
	sort.Slice(placements, func(i, j int) bool { return placements[i].ID < placements[j].ID })

	for _, placement := range placements {
		plant, ok := doc.Plants[placement.PlantID]
		if !ok {
			continue
		}
		s := engine.WorldToScreen(engine.Point{X: placement.X, Y: placement.Y}, view)
		radius := engine.HandleSize(view.Zoom)
		fmt.Fprintf(&b, `  <circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s" stroke="#333"/>`+"\n",
			s.X, s.Y, radius, colorFill(plant.Color))
		if opts.ShowLabels {
			fmt.Fprintf(&b, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-size="10" fill="#333">%s</text>`+"\n",
				s.X, s.Y-radius-3, html.EscapeString(plant.Name))
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func colorFill(color string) string {
	switch color {
	case "white":
		return "#f5f5f5"
	case "yellow":
		return "#e8c547"
	case "purple":
		return "#8e6bb8"
	case "pink":
		return "#dd8aa8"
	default:
		return "#9aa89a"
	}
}

func vertexPoints(vs []document.Vertex) []engine.Point {
	pts := make([]engine.Point, len(vs))
	for i, v := range vs {
		pts[i] = engine.Point{X: v.X, Y: v.Y}
	}
	return pts
}
