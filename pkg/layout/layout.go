// Package layout positions a display tree for node-link rendering.
//
// [Compute] runs in two phases. A tidy-tree pass (Reingold–Tilford in
// Buchheim's linear-time form) places every node on a grid of fixed node
// size. A second pass then widens each depth level so that no two label
// boxes at the same depth overlap, shifting a node together with its whole
// subtree.
//
// Coordinates are orientation-agnostic: X runs along the sibling axis and Y
// along the depth axis. [Layout.Oriented] maps them onto screen axes.
package layout

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/matzehuels/ontoview/pkg/hierarchy"
)

// Direction selects how the depth axis maps onto the screen.
type Direction string

const (
	// Vertical grows the tree downwards: depth is the screen y axis.
	Vertical Direction = "vertical"
	// Horizontal grows the tree to the right: depth is the screen x axis.
	Horizontal Direction = "horizontal"
)

// ParseDirection validates a direction name. The empty string is Vertical.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", Vertical:
		return Vertical, nil
	case Horizontal:
		return Horizontal, nil
	}
	return "", fmt.Errorf("invalid direction %q (want %q or %q)", s, Vertical, Horizontal)
}

// Default layout metrics.
const (
	DefaultNodeWidth   = 100
	DefaultLevelHeight = 120
	DefaultCharWidth   = 9
	DefaultPadding     = 20
	DefaultWidth       = 1200
	DefaultHeight      = 800
)

// Options configures [Compute]. Zero fields take their defaults.
type Options struct {
	NodeWidth   float64 // grid distance between adjacent siblings
	LevelHeight float64 // distance between depth levels
	CharWidth   float64 // estimated width of one label character
	Padding     float64 // horizontal padding of a label box
	Width       float64 // viewport width, used for the suggested origin
	Height      float64 // viewport height
	Direction   Direction
}

func (o Options) withDefaults() Options {
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.LevelHeight <= 0 {
		o.LevelHeight = DefaultLevelHeight
	}
	if o.CharWidth <= 0 {
		o.CharWidth = DefaultCharWidth
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Direction != Horizontal {
		o.Direction = Vertical
	}
	return o
}

// BoxWidth returns the estimated label box width for a display name.
func (o Options) BoxWidth(name string) float64 {
	o = o.withDefaults()
	return float64(utf8.RuneCountInString(name))*o.CharWidth + o.Padding
}

// Position is the placement of one tree node.
type Position struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Depth     int     `json:"depth"`
	HalfWidth float64 `json:"half_width"`
}

// Bounds is the axis-aligned extent of all label boxes.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// Layout holds the positions of every node of a tree.
type Layout struct {
	Positions map[string]Position
	Bounds    Bounds
	Direction Direction
	// OriginX and OriginY suggest where the root should sit in a viewport
	// of the configured size.
	OriginX, OriginY float64
}

// Position returns the placement of id.
func (l *Layout) Position(id string) (Position, bool) {
	p, ok := l.Positions[id]
	return p, ok
}

// Oriented returns the screen coordinates of id for dir. Horizontal layouts
// swap the axes.
func (l *Layout) Oriented(id string, dir Direction) (x, y float64, ok bool) {
	p, ok := l.Positions[id]
	if !ok {
		return 0, 0, false
	}
	if dir == Horizontal {
		return p.Y, p.X, true
	}
	return p.X, p.Y, true
}

// Screen returns the screen coordinates of id in the layout's own
// direction.
func (l *Layout) Screen(id string) (x, y float64, ok bool) {
	return l.Oriented(id, l.Direction)
}

// Compute lays out tree. The tree is not modified.
func Compute(tree *hierarchy.Tree, opts Options) *Layout {
	opts = opts.withDefaults()
	out := &Layout{
		Positions: make(map[string]Position, tree.Len()),
		Direction: opts.Direction,
		OriginX:   opts.Width / 2,
		OriginY:   opts.LevelHeight / 2,
	}
	if tree.Len() == 0 {
		return out
	}

	for id, x := range tidy(tree) {
		out.Positions[id] = Position{
			X:         x * opts.NodeWidth,
			Y:         float64(tree.Depth(id)) * opts.LevelHeight,
			Depth:     tree.Depth(id),
			HalfWidth: opts.BoxWidth(tree.Name(id)) / 2,
		}
	}
	separate(tree, out.Positions)
	out.Bounds = bounds(out.Positions)
	return out
}

func bounds(pos map[string]Position) Bounds {
	b := Bounds{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
	for _, p := range pos {
		b.MinX = min(b.MinX, p.X-p.HalfWidth)
		b.MaxX = max(b.MaxX, p.X+p.HalfWidth)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}
