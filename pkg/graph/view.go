package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/ontoview/pkg/hierarchy"
	"github.com/matzehuels/ontoview/pkg/layout"
	"github.com/matzehuels/ontoview/pkg/ontology"
)

// Edge kinds used in views in addition to ontology edge kinds.
const (
	// EdgeVirtual links the virtual root to a top-level class.
	EdgeVirtual = "virtual"
	// EdgeSecondary is a superclass relation not used as a tree edge.
	EdgeSecondary = "secondary"
)

// =============================================================================
// View - Positioned Tree
// =============================================================================

// View is the serialization format of a laid-out display tree. Coordinates
// are screen coordinates for Direction.
type View struct {
	Focal     string     `json:"focal,omitempty"`
	Language  string     `json:"language"`
	Direction string     `json:"direction"`
	Root      string     `json:"root"`
	Virtual   bool       `json:"virtual,omitempty"`
	Bounds    ViewBounds `json:"bounds"`
	OriginX   float64    `json:"origin_x"`
	OriginY   float64    `json:"origin_y"`
	Nodes     []ViewNode `json:"nodes"`
	Edges     []Edge     `json:"edges"`
}

// ViewNode is one positioned tree node.
type ViewNode struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Parent  string  `json:"parent,omitempty"`
	Depth   int     `json:"depth"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"` // label box width
	Virtual bool    `json:"virtual,omitempty"`
}

// ViewBounds is the screen extent of a view.
type ViewBounds struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewView positions every node of tree. Nodes appear in tree preorder;
// edges list tree edges first, then secondary edges in graph order.
func NewView(tree *hierarchy.Tree, lay *layout.Layout) View {
	v := View{
		Language:  tree.Graph().Language(),
		Direction: string(lay.Direction),
		Root:      tree.Root(),
		Virtual:   tree.IsVirtual(),
		Bounds:    viewBounds(lay.Bounds, lay.Direction),
		Nodes:     make([]ViewNode, 0, tree.Len()),
	}
	v.OriginX, v.OriginY = lay.OriginX, lay.OriginY
	if lay.Direction == layout.Horizontal {
		v.OriginX, v.OriginY = lay.OriginY, lay.OriginX
	}

	for _, id := range tree.IDs() {
		p, _ := lay.Position(id)
		x, y, _ := lay.Screen(id)
		parent, _ := tree.Parent(id)
		v.Nodes = append(v.Nodes, ViewNode{
			ID:      id,
			Label:   tree.Name(id),
			Parent:  parent,
			Depth:   p.Depth,
			X:       x,
			Y:       y,
			Width:   2 * p.HalfWidth,
			Virtual: tree.IsVirtual() && id == tree.Root(),
		})
		if parent == "" {
			continue
		}
		kind := EdgeVirtual
		if !(tree.IsVirtual() && parent == tree.Root()) {
			kind = string(ontology.SubClassOf)
		}
		v.Edges = append(v.Edges, Edge{From: parent, To: id, Kind: kind})
	}
	for _, e := range tree.Secondary() {
		v.Edges = append(v.Edges, Edge{From: e.From, To: e.To, Kind: EdgeSecondary})
	}
	return v
}

// Node returns the view node with id.
func (v *View) Node(id string) (ViewNode, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return ViewNode{}, false
}

func viewBounds(b layout.Bounds, dir layout.Direction) ViewBounds {
	if dir == layout.Horizontal {
		return ViewBounds{MinX: b.MinY, MinY: b.MinX, Width: b.MaxY - b.MinY, Height: b.MaxX - b.MinX}
	}
	return ViewBounds{MinX: b.MinX, MinY: b.MinY, Width: b.MaxX - b.MinX, Height: b.MaxY - b.MinY}
}

// =============================================================================
// View Serialization API
// =============================================================================

// MarshalView serializes a View to pretty-printed JSON bytes.
func MarshalView(v View) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// UnmarshalView deserializes JSON bytes into a View.
func UnmarshalView(data []byte) (View, error) {
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, fmt.Errorf("unmarshal view: %w", err)
	}
	if _, err := layout.ParseDirection(v.Direction); err != nil {
		return View{}, err
	}
	return v, nil
}

// WriteViewFile writes a View to a JSON file.
func WriteViewFile(v View, path string) error {
	data, err := MarshalView(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadViewFile reads a View from a JSON file.
func ReadViewFile(path string) (View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return View{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalView(data)
}
