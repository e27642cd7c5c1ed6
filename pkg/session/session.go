// Package session holds one loaded ontology and answers queries against it.
//
// A [Session] owns the class graph built from the most recently loaded
// document. Every query returns fresh derived values (branch subgraphs,
// hierarchy trees, layouts), so no view can corrupt the graph used to
// compute the next one.
//
// Loads are serialized and last-write-wins. A load that fails leaves the
// previously loaded graph in place and queryable.
//
// # Usage
//
//	sess := session.New(loader, logger, "en")
//	if _, err := sess.Load(ctx, source.FromRef(path)); err != nil {
//	    return err
//	}
//	branch := sess.Branch("Hammer")
//	tree, lay := sess.Layout(branch, layout.Vertical)
//
// Servers keep one session per client in a [Store].
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ontoview/pkg/branch"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/hierarchy"
	"github.com/matzehuels/ontoview/pkg/layout"
	"github.com/matzehuels/ontoview/pkg/observability"
	"github.com/matzehuels/ontoview/pkg/ontology"
	"github.com/matzehuels/ontoview/pkg/owl"
	"github.com/matzehuels/ontoview/pkg/source"
)

// Session is the in-memory state of one ontology viewer.
//
// A Session is safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	loader *source.Loader
	logger *log.Logger

	loadMu sync.Mutex   // serializes loads and language switches
	mu     sync.RWMutex // guards the fields below

	language string
	layout   layout.Options
	doc      *owl.Document
	info     Info
	graph    *ontology.Graph
}

// Info describes the loaded document.
type Info struct {
	Name     string    `json:"name"`
	Hash     string    `json:"hash"`
	Language string    `json:"language"`
	Nodes    int       `json:"nodes"`
	Edges    int       `json:"edges"`
	LoadedAt time.Time `json:"loaded_at"`
	Cached   bool      `json:"cached,omitempty"` // remote document served from cache
}

// New creates an empty session. A nil loader reads only bytes and the
// built-in document; a nil logger discards output. lang is normalized.
func New(loader *source.Loader, logger *log.Logger, lang string) *Session {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if loader == nil {
		loader = source.NewLoader(nil, nil, logger)
	}
	lang = ontology.NormalizeLanguage(lang)
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		loader:    loader,
		logger:    logger,
		language:  lang,
		graph:     ontology.New(lang),
	}
}

// SetLayoutOptions sets the metrics used by [Session.Layout].
func (s *Session) SetLayoutOptions(opts layout.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout = opts
}

// Load fetches, parses and builds src, replacing the current graph on
// success.
func (s *Session) Load(ctx context.Context, src source.Source) (*ontology.Graph, error) {
	return s.loadIn(ctx, src, "")
}

// LoadWithLanguage is [Session.Load] with a new display language. The
// language and the graph change together, and only when the load succeeds.
// An empty lang keeps the current language.
func (s *Session) LoadWithLanguage(ctx context.Context, src source.Source, lang string) (*ontology.Graph, error) {
	if lang != "" {
		if err := errors.ValidateLanguage(lang); err != nil {
			return nil, err
		}
	}
	return s.loadIn(ctx, src, lang)
}

func (s *Session) loadIn(ctx context.Context, src source.Source, lang string) (*ontology.Graph, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.String())
	start := time.Now()

	g, err := s.load(ctx, src, lang)
	if err != nil {
		hooks.OnLoadComplete(ctx, src.String(), 0, 0, time.Since(start), err)
		s.logger.Debug("load failed", "source", src, "err", err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, src.String(), g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	s.logger.Debug("loaded ontology", "source", src, "classes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

// LoadBytes loads an in-memory document such as an upload.
func (s *Session) LoadBytes(ctx context.Context, name string, data []byte) (*ontology.Graph, error) {
	return s.Load(ctx, source.Bytes(name, data))
}

func (s *Session) load(ctx context.Context, src source.Source, lang string) (*ontology.Graph, error) {
	fetched, err := s.loader.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	doc, err := owl.ParseBytes(fetched.Data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse %s", fetched.Name)
	}

	if lang == "" {
		s.mu.RLock()
		lang = s.language
		s.mu.RUnlock()
	} else {
		lang = ontology.NormalizeLanguage(lang)
	}

	g, err := ontology.Build(doc, lang)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "build %s", fetched.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.graph = g
	s.language = lang
	s.info = Info{
		Name:     fetched.Name,
		Hash:     fetched.Hash,
		Language: lang,
		Nodes:    g.NodeCount(),
		Edges:    g.EdgeCount(),
		LoadedAt: time.Now(),
		Cached:   fetched.Cached,
	}
	return g, nil
}

// Loaded reports whether a document has been loaded.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc != nil
}

// Info describes the loaded document. The zero Info means nothing is
// loaded.
func (s *Session) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// Language returns the active display language.
func (s *Session) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage switches the display language and rebuilds display names
// from the loaded document.
func (s *Session) SetLanguage(lang string) error {
	if err := errors.ValidateLanguage(lang); err != nil {
		return err
	}
	lang = ontology.NormalizeLanguage(lang)

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()

	if doc == nil {
		s.mu.Lock()
		s.language = lang
		s.graph = ontology.New(lang)
		s.mu.Unlock()
		return nil
	}

	g, err := ontology.Build(doc, lang)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "rebuild for %s", lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	s.graph = g
	s.info.Language = lang
	s.logger.Debug("switched language", "lang", lang)
	return nil
}

// FullGraph returns the graph of the loaded document. It is empty before
// the first successful load. The graph must not be modified.
func (s *Session) FullGraph() *ontology.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// Branch returns the subgraph of focal, its ancestors and its
// descendants. Unknown ids yield an empty graph.
func (s *Session) Branch(focal string) *ontology.Graph {
	return branch.Extract(s.FullGraph(), focal)
}

// ResolveLabel returns the display name of id in lang, falling back to the
// base language, English, and finally id itself.
func (s *Session) ResolveLabel(id, lang string) string {
	g := s.FullGraph()
	if id == hierarchy.VirtualRootID && !g.Has(id) {
		return hierarchy.VirtualRootName
	}
	return g.ResolveLabel(id, lang)
}

// Property returns the object property with the given id.
func (s *Session) Property(id string) (ontology.Property, bool) {
	return s.FullGraph().Property(id)
}

// Layout builds the display tree of g and positions it. g is usually
// [Session.FullGraph] or a [Session.Branch] result. Unknown directions
// are treated as vertical.
func (s *Session) Layout(g *ontology.Graph, dir layout.Direction) (*hierarchy.Tree, *layout.Layout) {
	s.mu.RLock()
	opts := s.layout
	s.mu.RUnlock()
	opts.Direction = dir
	return s.LayoutWith(g, opts)
}

// LayoutWith is [Session.Layout] with explicit metrics instead of those set
// by [Session.SetLayoutOptions].
func (s *Session) LayoutWith(g *ontology.Graph, opts layout.Options) (*hierarchy.Tree, *layout.Layout) {
	ctx := context.Background()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.NodeCount())
	start := time.Now()

	tree := hierarchy.Build(g)
	lay := layout.Compute(tree, opts)

	hooks.OnLayoutComplete(ctx, tree.Len(), time.Since(start))
	return tree, lay
}
