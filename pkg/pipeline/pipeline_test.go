package pipeline

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"github.com/matzehuels/ontoview/pkg/cache"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/graph"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"graph", false},
		{"SVG", true},
		{"gif", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestValidateVizType(t *testing.T) {
	for _, v := range []string{"tree", "nodelink"} {
		if err := ValidateVizType(v); err != nil {
			t.Errorf("ValidateVizType(%q) = %v", v, err)
		}
	}
	if err := ValidateVizType("tower"); err == nil {
		t.Error("ValidateVizType(tower) should fail")
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats("svg, JSON,,dot ")
	want := []string{"svg", "json", "dot"}
	if !slices.Equal(got, want) {
		t.Errorf("ParseFormats = %v, want %v", got, want)
	}
	if got := ParseFormats(""); len(got) != 0 {
		t.Errorf("ParseFormats(\"\") = %v, want empty", got)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", opts.Language, DefaultLanguage)
	}
	if opts.Direction != DefaultDirection {
		t.Errorf("Direction = %q, want %q", opts.Direction, DefaultDirection)
	}
	if opts.VizType != DefaultVizType {
		t.Errorf("VizType = %q, want %q", opts.VizType, DefaultVizType)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults: %v", err)
	}
	if opts.Direction != DefaultDirection || opts.VizType != DefaultVizType {
		t.Error("defaults changed on second call")
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad direction", Options{Direction: "diagonal"}, errors.ErrCodeInvalidDirection},
		{"bad language", Options{Language: "not a tag"}, errors.ErrCodeInvalidLanguage},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad viz type", Options{VizType: "tower"}, errors.ErrCodeInvalidInput},
		{"bad focal", Options{Focal: "has space"}, errors.ErrCodeInvalidClassID},
		{"negative metric", Options{NodeWidth: -1}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestViewKeyOptsDistinguishOutputs(t *testing.T) {
	base := Options{}
	if err := base.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	keyer := cache.NewDefaultKeyer()
	key := func(o Options, format string) string { return keyer.ViewKey("doc", o.ViewKeyOpts(format)) }

	variants := map[string]Options{
		"focal":     {Focal: "Tool"},
		"direction": {Direction: "horizontal"},
		"language":  {Language: "de"},
		"viz":       {VizType: VizTypeNodelink},
		"secondary": {HideSecondary: true},
		"metrics":   {NodeWidth: 150},
		"width":     {Width: 640},
		"height":    {Height: 480},
		"scale":     {Scale: 3},
	}
	for name, o := range variants {
		if err := o.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if key(o, FormatSVG) == key(base, FormatSVG) {
			t.Errorf("%s: key equals the default view key", name)
		}
	}
	if key(base, FormatSVG) == key(base, FormatJSON) {
		t.Error("formats share a key")
	}
}

func TestRunnerExecuteBuiltin(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Formats: []string{FormatJSON, FormatGraph, FormatDOT, FormatSVG},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 11 || result.Stats.EdgeCount != 11 {
		t.Errorf("stats = %d nodes, %d edges; want 11, 11", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.View.Root != "Entity" || result.View.Virtual {
		t.Errorf("root = %q (virtual %v), want Entity", result.View.Root, result.View.Virtual)
	}
	if result.Stats.TreeNodes != 11 {
		t.Errorf("TreeNodes = %d, want 11", result.Stats.TreeNodes)
	}
	if result.Document.Hash == "" {
		t.Error("document hash should be set")
	}
	if result.CacheInfo.RenderHit {
		t.Error("first run should not hit the render cache")
	}

	for _, format := range []string{FormatJSON, FormatGraph, FormatDOT, FormatSVG} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !bytes.HasPrefix(result.Artifacts[FormatDOT], []byte("digraph G {")) {
		t.Errorf("dot artifact = %.40q", result.Artifacts[FormatDOT])
	}
	if !bytes.Contains(result.Artifacts[FormatSVG], []byte(`id="node-Mallet"`)) {
		t.Error("svg artifact should contain the Mallet node")
	}

	v, err := graph.UnmarshalView(result.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("UnmarshalView: %v", err)
	}
	if len(v.Nodes) != 11 {
		t.Errorf("view JSON has %d nodes, want 11", len(v.Nodes))
	}
}

func TestRunnerExecuteFocal(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), Options{
		Focal:     "Hammer",
		Language:  "de",
		Direction: "horizontal",
		Formats:   []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Hammer, its ancestors Tool, Artifact, Entity and its descendant Mallet.
	if result.Graph.NodeCount() != 5 {
		t.Errorf("branch has %d classes, want 5: %v", result.Graph.NodeCount(), result.Graph.IDs())
	}
	if result.View.Focal != "Hammer" {
		t.Errorf("Focal = %q, want Hammer", result.View.Focal)
	}
	if result.View.Direction != "horizontal" {
		t.Errorf("Direction = %q, want horizontal", result.View.Direction)
	}
	n, ok := result.View.Node("Mallet")
	if !ok {
		t.Fatal("Mallet missing from branch view")
	}
	if n.Label != "Holzhammer" {
		t.Errorf("Mallet label = %q, want Holzhammer", n.Label)
	}
	if n.X <= 0 {
		t.Errorf("horizontal layout should grow along x, Mallet at x=%v", n.X)
	}
}

func TestRunnerExecuteUnknownFocal(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Execute(context.Background(), Options{Focal: "Unicorn", Formats: []string{FormatJSON}})
	if !errors.Is(err, errors.ErrCodeClassNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeClassNotFound)
	}
}

func TestRunnerExecuteInvalidDocument(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Execute(context.Background(), Options{
		Data:    []byte("<rdf:RDF"),
		Formats: []string{FormatJSON},
	})
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidDocument)
	}
}

func TestRunnerRenderCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Focal: "Tool", Formats: []string{FormatJSON, FormatDOT}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the render cache")
	}
	if !bytes.Equal(first.Artifacts[FormatDOT], second.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from rendered one")
	}

	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the render cache")
	}
}

func TestRunnerExecuteSession(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	sess, err := runner.Load(context.Background(), Options{Language: "de"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	result, err := runner.ExecuteSession(context.Background(), sess, Options{
		Language: "en", // ignored: the session language wins
		Focal:    "Tool",
		Formats:  []string{FormatGraph},
	})
	if err != nil {
		t.Fatalf("ExecuteSession: %v", err)
	}

	g, err := graph.ReadGraph(bytes.NewReader(result.Artifacts[FormatGraph]))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if got := g.Name("Tool"); got != "Werkzeug" {
		t.Errorf("Tool name = %q, want Werkzeug", got)
	}
}
