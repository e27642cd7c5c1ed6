// Package pipeline provides the load → view → render pipeline for ontoview.
//
// The CLI and the HTTP API both produce their outputs through this package,
// so that defaults, validation and caching behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Fetch, parse and build the class graph of a document
//  2. View: Extract the focal branch, build the display tree and lay it out
//  3. Render: Produce the requested artifacts (SVG, PNG, PDF, DOT, JSON)
//
// Rendered artifacts are cached by document content hash and view options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "pizza.owl",
//	    Focal:   "Pizza",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Servers that already hold a loaded session skip the load stage:
//
//	result, err := runner.ExecuteSession(ctx, sess, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontoview/pkg/cache"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/graph"
	"github.com/matzehuels/ontoview/pkg/layout"
	"github.com/matzehuels/ontoview/pkg/ontology"
	"github.com/matzehuels/ontoview/pkg/session"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultLanguage is the display language when none is configured.
	DefaultLanguage = "en"

	// DefaultDirection is the default tree orientation.
	DefaultDirection = string(layout.Vertical)

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Visualization types.
const (
	// VizTypeTree draws the computed tree layout.
	VizTypeTree = "tree"
	// VizTypeNodelink hands the view to Graphviz for its own layout.
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeTree

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatDOT   = "dot"
	FormatJSON  = "json"  // positioned view
	FormatGraph = "graph" // class graph of the displayed classes
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatDOT:   true,
	FormatJSON:  true,
	FormatGraph: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeTree:     true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source   string `json:"source,omitempty"` // file path or URL; empty for the built-in document
	Data     []byte `json:"-"`                // uploaded document; takes precedence over Source
	DataName string `json:"data_name,omitempty"`
	Language string `json:"language,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// View options
	Focal       string  `json:"focal,omitempty"` // empty for the full graph
	Direction   string  `json:"direction,omitempty"`
	NodeWidth   float64 `json:"node_width,omitempty"`
	LevelHeight float64 `json:"level_height,omitempty"`
	CharWidth   float64 `json:"char_width,omitempty"`
	Padding     float64 `json:"padding,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`

	// Render options
	VizType       string   `json:"viz_type,omitempty"`
	Formats       []string `json:"formats,omitempty"`
	Detailed      bool     `json:"detailed,omitempty"`       // show class ids next to names
	HideSecondary bool     `json:"hide_secondary,omitempty"` // omit non-tree superclass edges
	Scale         float64  `json:"scale,omitempty"`          // PNG scale factor

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document describes the loaded document.
	Document session.Info

	// Graph is the displayed class graph: the focal branch, or the whole
	// document when no focal class is set.
	Graph *ontology.Graph

	// View is the positioned display tree.
	View graph.View

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int // classes in the displayed graph
	EdgeCount  int
	TreeNodes  int // display tree nodes, including a virtual root
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DocumentHit bool // Whether the remote document came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid viz_type: %q (must be one of: tree, nodelink)", vizType)
	}
	return nil
}

// ValidateDirection checks that a direction is valid.
func ValidateDirection(dir string) error {
	if _, err := layout.ParseDirection(dir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDirection, err, "invalid direction")
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForView(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the load options.
func (o *Options) ValidateForLoad() error {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if err := errors.ValidateLanguage(o.Language); err != nil {
		return err
	}
	if o.Data == nil && o.Source != "" && !isURL(o.Source) {
		if err := errors.ValidatePath(o.Source); err != nil {
			return err
		}
	}
	if o.Data != nil && o.DataName == "" {
		o.DataName = "upload"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetViewDefaults sets default values for view computation. Zero layout
// metrics are left for the layout package to fill in.
func (o *Options) SetViewDefaults() {
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForView validates and sets defaults for view computation.
func (o *Options) ValidateForView() error {
	o.SetViewDefaults()
	if o.Focal != "" {
		if err := errors.ValidateClassID(o.Focal); err != nil {
			return err
		}
	}
	if o.NodeWidth < 0 || o.LevelHeight < 0 || o.CharWidth < 0 || o.Padding < 0 || o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout metrics must not be negative")
	}
	return ValidateDirection(o.Direction)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetViewDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsNodelink returns true if Graphviz lays out the drawing.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// LayoutOptions returns the metrics for the layout stage.
func (o *Options) LayoutOptions() layout.Options {
	dir, _ := layout.ParseDirection(o.Direction)
	return layout.Options{
		NodeWidth:   o.NodeWidth,
		LevelHeight: o.LevelHeight,
		CharWidth:   o.CharWidth,
		Padding:     o.Padding,
		Width:       o.Width,
		Height:      o.Height,
		Direction:   dir,
	}
}

// ViewKeyOpts returns cache key options for one rendered format.
func (o *Options) ViewKeyOpts(format string) cache.ViewKeyOpts {
	return cache.ViewKeyOpts{
		Focal:         o.Focal,
		Language:      ontology.NormalizeLanguage(o.Language),
		Direction:     o.Direction,
		Format:        format,
		VizType:       o.VizType,
		Detailed:      o.Detailed,
		HideSecondary: o.HideSecondary,
		Scale:         o.Scale,
		NodeWidth:     o.NodeWidth,
		LevelHeight:   o.LevelHeight,
		CharWidth:     o.CharWidth,
		Padding:       o.Padding,
		Width:         o.Width,
		Height:        o.Height,
	}
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
