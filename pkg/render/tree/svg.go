package tree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/ontoview/pkg/graph"
	"github.com/matzehuels/ontoview/pkg/layout"
)

const (
	defaultBoxHeight = 28.0
	defaultMargin    = 20.0
	defaultFontSize  = 14.0
)

const interactionCSS = `
    .node rect { fill: #fff; stroke: #555; stroke-width: 1.5; }
    .node.focal rect { fill: #fff3b0; stroke-width: 2.5; }
    .node.virtual rect { stroke-dasharray: 4 3; fill: none; }
    .node text { font-family: sans-serif; fill: #222; }
    .edge { fill: none; stroke: #888; stroke-width: 1.5; }
    .edge.secondary { stroke-dasharray: 6 4; stroke: #bbb; }
    .edge.virtual { stroke-dasharray: 2 3; }
    .node:hover rect { stroke-width: 3; }`

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	focal         string
	hideSecondary bool
	boxHeight     float64
	margin        float64
	fontSize      float64
}

// WithFocal highlights one class.
func WithFocal(id string) Option { return func(r *renderer) { r.focal = id } }

// WithoutSecondary omits secondary superclass edges.
func WithoutSecondary() Option { return func(r *renderer) { r.hideSecondary = true } }

// WithBoxHeight sets the height of label boxes.
func WithBoxHeight(h float64) Option { return func(r *renderer) { r.boxHeight = h } }

// WithMargin sets the blank space around the drawing.
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = m } }

// WithFontSize sets the label font size.
func WithFontSize(s float64) Option { return func(r *renderer) { r.fontSize = s } }

type box struct {
	node graph.ViewNode
	w, h float64
}

// RenderSVG draws v. A view without nodes yields an empty drawing.
func RenderSVG(v graph.View, opts ...Option) []byte {
	r := renderer{
		focal:     v.Focal,
		boxHeight: defaultBoxHeight,
		margin:    defaultMargin,
		fontSize:  defaultFontSize,
	}
	for _, opt := range opts {
		opt(&r)
	}

	boxes := make(map[string]box, len(v.Nodes))
	for _, n := range v.Nodes {
		boxes[n.ID] = box{node: n, w: n.Width, h: r.boxHeight}
	}

	minX, minY, w, h := r.frame(v.Nodes)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)

	horizontal := v.Direction == string(layout.Horizontal)
	for _, e := range v.Edges {
		if e.Kind == graph.EdgeSecondary && r.hideSecondary {
			continue
		}
		from, okF := boxes[e.From]
		to, okT := boxes[e.To]
		if !okF || !okT {
			continue
		}
		renderEdge(&buf, e, from, to, horizontal)
	}
	for _, n := range v.Nodes {
		r.renderNode(&buf, boxes[n.ID])
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) frame(nodes []graph.ViewNode) (minX, minY, w, h float64) {
	if len(nodes) == 0 {
		return 0, 0, 2 * r.margin, 2 * r.margin
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		x0 = min(x0, n.X-n.Width/2)
		x1 = max(x1, n.X+n.Width/2)
		y0 = min(y0, n.Y-r.boxHeight/2)
		y1 = max(y1, n.Y+r.boxHeight/2)
	}
	return x0 - r.margin, y0 - r.margin, x1 - x0 + 2*r.margin, y1 - y0 + 2*r.margin
}

func (r *renderer) renderNode(buf *bytes.Buffer, b box) {
	class := "node"
	switch {
	case b.node.Virtual:
		class += " virtual"
	case b.node.ID == r.focal:
		class += " focal"
	}
	fmt.Fprintf(buf, `  <g class="%s" id="node-%s">`, class, escapeXML(b.node.ID))
	fmt.Fprintf(buf, `<title>%s</title>`, escapeXML(b.node.ID))
	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6"/>`,
		b.node.X-b.w/2, b.node.Y-b.h/2, b.w, b.h)
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="%.0f">%s</text>`,
		b.node.X, b.node.Y, r.fontSize, escapeXML(b.node.Label))
	buf.WriteString("</g>\n")
}

// renderEdge draws a curve from the far side of the parent box to the near
// side of the child box along the depth axis.
func renderEdge(buf *bytes.Buffer, e graph.Edge, from, to box, horizontal bool) {
	var x1, y1, x2, y2 float64
	if horizontal {
		x1, y1 = from.node.X+from.w/2, from.node.Y
		x2, y2 = to.node.X-to.w/2, to.node.Y
	} else {
		x1, y1 = from.node.X, from.node.Y+from.h/2
		x2, y2 = to.node.X, to.node.Y-to.h/2
	}

	var path string
	if horizontal {
		mx := (x1 + x2) / 2
		path = fmt.Sprintf("M%.1f,%.1f C%.1f,%.1f %.1f,%.1f %.1f,%.1f", x1, y1, mx, y1, mx, y2, x2, y2)
	} else {
		my := (y1 + y2) / 2
		path = fmt.Sprintf("M%.1f,%.1f C%.1f,%.1f %.1f,%.1f %.1f,%.1f", x1, y1, x1, my, x2, my, x2, y2)
	}

	class := "edge"
	switch e.Kind {
	case graph.EdgeSecondary:
		class += " secondary"
	case graph.EdgeVirtual:
		class += " virtual"
	}
	fmt.Fprintf(buf, `  <path class="%s" data-from="%s" data-to="%s" d="%s"/>`+"\n",
		class, escapeXML(e.From), escapeXML(e.To), path)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
