package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/ontoview/pkg/graph"
	"github.com/matzehuels/ontoview/pkg/hierarchy"
	"github.com/matzehuels/ontoview/pkg/layout"
	"github.com/matzehuels/ontoview/pkg/ontology"
)

func ExampleWriteGraph() {
	g := ontology.New("en")
	_ = g.AddNode(ontology.ClassNode{ID: "Tool"})
	_ = g.AddNode(ontology.ClassNode{ID: "Hammer"})
	_ = g.AddEdge(ontology.Edge{From: "Tool", To: "Hammer"})

	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "language": "en",
	//   "nodes": [
	//     {
	//       "id": "Tool",
	//       "label": "Tool"
	//     },
	//     {
	//       "id": "Hammer",
	//       "label": "Hammer"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "Tool",
	//       "to": "Hammer",
	//       "kind": "subclass-of"
	//     }
	//   ]
	// }
}

func ExampleReadGraph() {
	jsonData := `{
		"language": "de",
		"nodes": [
			{"id": "Tool", "labels": [{"lang": "de", "text": "Werkzeug"}]},
			{"id": "Hammer"}
		],
		"edges": [
			{"from": "Tool", "to": "Hammer"}
		]
	}`

	g, err := graph.ReadGraph(strings.NewReader(jsonData))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Classes:", g.NodeCount())
	fmt.Println("Subclasses of Tool:", g.Children("Tool"))
	fmt.Println("Name of Tool:", g.Name("Tool"))
	// Output:
	// Classes: 2
	// Subclasses of Tool: [Hammer]
	// Name of Tool: Werkzeug
}

func ExampleNewView() {
	g := ontology.New("en")
	for _, id := range []string{"A", "B", "C", "D"} {
		_ = g.AddNode(ontology.ClassNode{ID: id})
	}
	_ = g.AddEdge(ontology.Edge{From: "A", To: "B"})
	_ = g.AddEdge(ontology.Edge{From: "A", To: "C"})
	_ = g.AddEdge(ontology.Edge{From: "B", To: "D"})
	_ = g.AddEdge(ontology.Edge{From: "C", To: "D"})

	tree := hierarchy.Build(g)
	v := graph.NewView(tree, layout.Compute(tree, layout.Options{}))
	for _, n := range v.Nodes {
		fmt.Printf("%s parent=%q x=%v y=%v\n", n.ID, n.Parent, n.X, n.Y)
	}
	for _, e := range v.Edges {
		fmt.Printf("%s -> %s (%s)\n", e.From, e.To, e.Kind)
	}
	// Output:
	// A parent="" x=0 y=0
	// B parent="A" x=-50 y=120
	// D parent="B" x=-50 y=240
	// C parent="A" x=50 y=120
	// A -> B (subclass-of)
	// B -> D (subclass-of)
	// A -> C (subclass-of)
	// C -> D (secondary)
}
