package owl

import (
	"errors"
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Class rdf:about="http://x/onto#Vehicle">
    <rdfs:label xml:lang="en">Vehicle</rdfs:label>
    <rdfs:label xml:lang="de">Fahrzeug</rdfs:label>
    <rdfs:comment>  Anything that moves.  </rdfs:comment>
  </owl:Class>
  <owl:Class rdf:ID="Car">
    <rdfs:subClassOf rdf:resource="http://x/onto#Vehicle"/>
    <owl:equivalentClass>
      <owl:Class>
        <owl:unionOf rdf:parseType="Collection">
          <owl:Class rdf:about="http://x/onto#Sedan"/>
        </owl:unionOf>
      </owl:Class>
    </owl:equivalentClass>
  </owl:Class>
  <owl:ObjectProperty rdf:about="http://x/onto#hasPart"/>
</rdf:RDF>`

func TestParse(t *testing.T) {
	doc, err := ParseBytes([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if !doc.Root.Is("RDF") {
		t.Fatalf("root = %s, want RDF", doc.Root.Local())
	}

	classes := doc.Classes()
	var abouts []string
	for _, c := range classes {
		abouts = append(abouts, c.About())
	}
	want := []string{"http://x/onto#Vehicle", "#Car", "http://x/onto#Sedan"}
	if strings.Join(abouts, ",") != strings.Join(want, ",") {
		t.Errorf("classes = %v, want %v", abouts, want)
	}

	if got := len(doc.ObjectProperties()); got != 1 {
		t.Errorf("object properties = %d, want 1", got)
	}
}

func TestElementAccessors(t *testing.T) {
	doc, err := ParseBytes([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	vehicle := doc.Classes()[0]

	labels := vehicle.ChildrenNamed("label")
	if len(labels) != 2 {
		t.Fatalf("labels = %d, want 2", len(labels))
	}
	if labels[1].Lang() != "de" || labels[1].Text() != "Fahrzeug" {
		t.Errorf("label[1] = (%q, %q)", labels[1].Lang(), labels[1].Text())
	}
	if got := vehicle.Child("comment").Text(); got != "Anything that moves." {
		t.Errorf("comment = %q", got)
	}

	car := doc.Classes()[1]
	if got := car.Child("subClassOf").Resource(); got != "http://x/onto#Vehicle" {
		t.Errorf("subClassOf resource = %q", got)
	}
	if car.Child("missing") != nil {
		t.Error("Child should return nil for absent names")
	}
	if eq := car.Child("equivalentClass").FirstChild(); !eq.Is("Class") || eq.About() != "" {
		t.Error("equivalentClass should wrap an anonymous class")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{"Empty", "", ErrEmptyDocument},
		{"Whitespace", "   \n ", ErrEmptyDocument},
		{"Unclosed", "<rdf:RDF><owl:Class>", nil},
		{"Garbage", "not xml at all <", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	doc, err := ParseBytes([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	count := 0
	doc.Root.Walk(func(e *Element) bool {
		count++
		return e == doc.Root
	})
	// root plus its three direct children
	if count != 4 {
		t.Errorf("visited %d elements, want 4", count)
	}
}

const entityDoc = `<?xml version="1.0"?>
<!DOCTYPE rdf:RDF [
    <!ENTITY owl "http://www.w3.org/2002/07/owl#" >
    <!ENTITY onto "http://example.org/onto#" >
    <!ENTITY sub '&onto;sub/' >
    <!ENTITY % param "ignored" >
]>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="&owl;">
  <owl:Class rdf:about="&onto;Vehicle"/>
  <owl:Class rdf:about="&sub;Car">
    <rdfs:subClassOf rdf:resource="&onto;Vehicle"/>
    <rdfs:comment>Made by &amp; for &onto;</rdfs:comment>
  </owl:Class>
</rdf:RDF>`

func TestParseDTDEntities(t *testing.T) {
	doc, err := ParseBytes([]byte(entityDoc))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}

	classes := doc.Classes()
	if len(classes) != 2 {
		t.Fatalf("classes = %d, want 2", len(classes))
	}
	if got := classes[0].About(); got != "http://example.org/onto#Vehicle" {
		t.Errorf("about = %q", got)
	}
	car := classes[1]
	if got := car.About(); got != "http://example.org/onto#sub/Car" {
		t.Errorf("nested entity about = %q", got)
	}
	if got := car.Child("subClassOf").Resource(); got != "http://example.org/onto#Vehicle" {
		t.Errorf("subClassOf resource = %q", got)
	}
	if got := car.Child("comment").Text(); got != "Made by & for http://example.org/onto#" {
		t.Errorf("comment = %q", got)
	}
}

func TestParseUndeclaredEntity(t *testing.T) {
	doc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <owl:Class rdf:about="&missing;Vehicle"/>
</rdf:RDF>`
	if _, err := ParseBytes([]byte(doc)); err == nil {
		t.Fatal("expected error for undeclared entity")
	}
}
