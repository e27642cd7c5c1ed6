package cache

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey is the key of a fetched document, by source location.
	DocumentKey(source string) string

	// ViewKey is the key of a rendered view of a document, by document
	// content hash and view options.
	ViewKey(docHash string, opts ViewKeyOpts) string
}

// ViewKeyOpts are the options that distinguish rendered views of one
// document. Every field that changes the output must be part of the key.
type ViewKeyOpts struct {
	Focal         string  `json:"focal,omitempty"` // empty for the full graph
	Language      string  `json:"language"`
	Direction     string  `json:"direction"`
	Format        string  `json:"format"`
	VizType       string  `json:"viz_type,omitempty"`
	Detailed      bool    `json:"detailed,omitempty"`
	HideSecondary bool    `json:"hide_secondary,omitempty"`
	Scale         float64 `json:"scale,omitempty"`

	// Layout metrics; zero means the layout default.
	NodeWidth   float64 `json:"node_width,omitempty"`
	LevelHeight float64 `json:"level_height,omitempty"`
	CharWidth   float64 `json:"char_width,omitempty"`
	Padding     float64 `json:"padding,omitempty"`
	Width       float64 `json:"width,omitempty"` // viewport, places the origin
	Height      float64 `json:"height,omitempty"`
}

// DefaultKeyer produces unprefixed keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey implements [Keyer].
func (DefaultKeyer) DocumentKey(source string) string {
	return hashKey("document", source)
}

// ViewKey implements [Keyer].
func (DefaultKeyer) ViewKey(docHash string, opts ViewKeyOpts) string {
	return hashKey("view", docHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, so that several deployments can
// share one Redis instance without seeing each other's entries.
//
//	keys := NewScopedKeyer(NewDefaultKeyer(), "ontoview:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey implements [Keyer].
func (k *ScopedKeyer) DocumentKey(source string) string {
	return k.prefix + k.inner.DocumentKey(source)
}

// ViewKey implements [Keyer].
func (k *ScopedKeyer) ViewKey(docHash string, opts ViewKeyOpts) string {
	return k.prefix + k.inner.ViewKey(docHash, opts)
}
