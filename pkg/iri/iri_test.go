package iri

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://x/y#Foo", "Foo"},
		{"http://x/y/Foo", "Foo"},
		{"Foo", "Foo"},
		{"#Foo", "Foo"},
		{"http://x/y#", ""},
		{"http://x/a#b/c", "b/c"}, // '#' wins over '/'
		{"urn:isbn:123", "urn:isbn:123"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveHashAndSlashAgree(t *testing.T) {
	if Resolve("http://x/y#Foo") != Resolve("http://x/y/Foo") {
		t.Error("hash and slash forms should resolve to the same local name")
	}
}

func TestInverse(t *testing.T) {
	if got := Inverse("partOf"); got != "inverse(partOf)" {
		t.Errorf("Inverse = %q", got)
	}
}
