package source

import (
	"bytes"
	"testing"
)

func TestFromRef(t *testing.T) {
	tests := []struct {
		ref  string
		want Kind
	}{
		{"", KindBuiltin},
		{"   ", KindBuiltin},
		{"https://example.org/pizza.owl", KindURL},
		{"http://example.org/pizza.owl", KindURL},
		{"ontology/domain_ontology.owl", KindFile},
		{"/tmp/x.owl", KindFile},
		{"ftp://example.org/x.owl", KindFile},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := FromRef(tt.ref).Kind; got != tt.want {
				t.Errorf("FromRef(%q).Kind = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestSourceString(t *testing.T) {
	if got := Builtin().String(); got != BuiltinName {
		t.Errorf("Builtin().String() = %q", got)
	}
	if got := Bytes("", nil).String(); got != "bytes" {
		t.Errorf("Bytes().String() = %q, want bytes", got)
	}
}

func TestBuiltinDocument(t *testing.T) {
	data := builtin
	if !bytes.Contains(data, []byte("rdf:RDF")) {
		t.Fatal("built-in document is not RDF/XML")
	}
}
