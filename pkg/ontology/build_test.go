package ontology

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/ontoview/pkg/expr"
	"github.com/matzehuels/ontoview/pkg/owl"
)

const header = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
`

const footer = `</rdf:RDF>`

// diamond is a small multi-parent ontology: D is a subclass of both B and C.
const diamond = header + `
  <owl:Class rdf:about="http://x/o#A">
    <rdfs:label xml:lang="en">Animal</rdfs:label>
    <rdfs:label xml:lang="de">Tier</rdfs:label>
  </owl:Class>
  <owl:Class rdf:about="http://x/o#B">
    <rdfs:subClassOf rdf:resource="http://x/o#A"/>
  </owl:Class>
  <owl:Class rdf:about="http://x/o#C">
    <rdfs:subClassOf rdf:resource="http://x/o#A"/>
  </owl:Class>
  <owl:Class rdf:about="http://x/o#D">
    <rdfs:subClassOf rdf:resource="http://x/o#B"/>
    <rdfs:subClassOf rdf:resource="http://x/o#C"/>
    <rdfs:subClassOf rdf:resource="http://x/o#Missing"/>
    <rdfs:comment>Two parents.</rdfs:comment>
  </owl:Class>
` + footer

func mustBuild(t *testing.T, src, lang string) *Graph {
	t.Helper()
	doc, err := owl.ParseBytes([]byte(src))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	g, err := Build(doc, lang)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestBuildDiamond(t *testing.T) {
	g := mustBuild(t, diamond, "en")

	if got, want := g.IDs(), []string{"A", "B", "C", "D"}; !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	want := []Edge{
		{From: "A", To: "B", Kind: SubClassOf},
		{From: "A", To: "C", Kind: SubClassOf},
		{From: "B", To: "D", Kind: SubClassOf},
		{From: "C", To: "D", Kind: SubClassOf},
	}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}

	d, _ := g.Node("D")
	if !slices.Equal(d.SuperClasses, []string{"B", "C", "Missing"}) {
		t.Errorf("D.SuperClasses = %v", d.SuperClasses)
	}
	if !slices.Equal(d.Parents, []string{"B", "C"}) {
		t.Errorf("D.Parents = %v", d.Parents)
	}
	if !slices.Equal(d.Comments, []string{"Two parents."}) {
		t.Errorf("D.Comments = %v", d.Comments)
	}
	if got := g.Sources(); !slices.Equal(got, []string{"A"}) {
		t.Errorf("Sources() = %v, want [A]", got)
	}
}

func TestBuildDisplayNames(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en", "Animal"},
		{"de", "Tier"},
		{"de-AT", "Tier"},
		{"fr", "Animal"},
		{"", "Animal"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			g := mustBuild(t, diamond, tt.lang)
			if got := g.Name("A"); got != tt.want {
				t.Errorf("Name(A) = %q, want %q", got, tt.want)
			}
			if got := g.Name("B"); got != "B" {
				t.Errorf("Name(B) = %q, want id fallback", got)
			}
		})
	}
}

func TestBuildSkipsAnonymousAndMergesDuplicates(t *testing.T) {
	src := header + `
  <owl:Class>
    <rdfs:label>anonymous</rdfs:label>
  </owl:Class>
  <owl:Class rdf:about="#X">
    <rdfs:label>First</rdfs:label>
  </owl:Class>
  <owl:Class rdf:about="#Y">
    <rdfs:subClassOf rdf:resource="#X"/>
  </owl:Class>
  <owl:Class rdf:about="#X">
    <rdfs:label>Second</rdfs:label>
    <rdfs:label xml:lang="de">Zweiter</rdfs:label>
    <rdfs:comment>merged</rdfs:comment>
  </owl:Class>
` + footer
	g := mustBuild(t, src, "en")

	if got := g.IDs(); !slices.Equal(got, []string{"X", "Y"}) {
		t.Fatalf("IDs() = %v, want [X Y]", got)
	}
	x, _ := g.Node("X")
	if x.Name != "First" {
		t.Errorf("X.Name = %q, want First", x.Name)
	}
	if len(x.Labels) != 2 {
		t.Errorf("X.Labels = %v, want en and de", x.Labels)
	}
	if !slices.Equal(x.Comments, []string{"merged"}) {
		t.Errorf("X.Comments = %v", x.Comments)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestBuildAxioms(t *testing.T) {
	src := header + `
  <owl:Class rdf:about="#P"/>
  <owl:Class rdf:about="#Q"/>
  <owl:Class rdf:about="#Thing">
    <owl:equivalentClass>
      <owl:Class>
        <owl:intersectionOf rdf:parseType="Collection">
          <owl:Class rdf:about="#P"/>
          <owl:Restriction>
            <owl:onProperty rdf:resource="#hasPart"/>
            <owl:someValuesFrom rdf:resource="#Q"/>
          </owl:Restriction>
        </owl:intersectionOf>
      </owl:Class>
    </owl:equivalentClass>
    <rdfs:subClassOf>
      <owl:Restriction>
        <owl:onProperty rdf:resource="#hasPart"/>
        <owl:allValuesFrom rdf:resource="#Q"/>
      </owl:Restriction>
    </rdfs:subClassOf>
  </owl:Class>
  <owl:ObjectProperty rdf:about="#hasPart">
    <rdfs:label>has part</rdfs:label>
    <rdfs:comment>Parthood.</rdfs:comment>
    <rdfs:domain rdf:resource="#Thing"/>
    <rdfs:range rdf:resource="#Q"/>
  </owl:ObjectProperty>
` + footer
	g := mustBuild(t, src, "en")

	thing, ok := g.Node("Thing")
	if !ok {
		t.Fatal("Thing missing")
	}
	if len(thing.Equivalents) != 1 {
		t.Fatalf("Equivalents = %d, want 1", len(thing.Equivalents))
	}
	if got := expr.Render(thing.Equivalents[0], g.Labeler()); got != "P and (hasPart some Q)" {
		t.Errorf("equivalent = %q", got)
	}
	if len(thing.Restrictions) != 1 || thing.Restrictions[0].Filler.Quantifier != expr.Only {
		t.Errorf("Restrictions = %+v", thing.Restrictions)
	}

	p, ok := g.Property("hasPart")
	if !ok {
		t.Fatal("hasPart missing")
	}
	if !slices.Equal(p.Comments, []string{"Parthood."}) || !slices.Equal(p.Domain, []string{"Thing"}) || !slices.Equal(p.Range, []string{"Q"}) {
		t.Errorf("Property = %+v", p)
	}
	if g.Has("hasPart") {
		t.Error("object property must not become a class node")
	}
}

func TestBuildEmpty(t *testing.T) {
	if _, err := Build(nil, "en"); !errors.Is(err, owl.ErrEmptyDocument) {
		t.Errorf("Build(nil) error = %v, want ErrEmptyDocument", err)
	}
	g := mustBuild(t, header+footer, "en")
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("empty ontology has %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}
