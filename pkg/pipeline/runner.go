package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontoview/pkg/cache"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/graph"
	"github.com/matzehuels/ontoview/pkg/observability"
	"github.com/matzehuels/ontoview/pkg/ontology"
	"github.com/matzehuels/ontoview/pkg/session"
	"github.com/matzehuels/ontoview/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, loader and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Loader *source.Loader
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Loader: source.NewLoader(c, keyer, logger),
	}
}

// Execute runs the complete load → view → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	loadStart := time.Now()
	sess, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	info := sess.Info()
	r.Logger.Info("loaded ontology",
		"source", info.Name,
		"classes", info.Nodes,
		"edges", info.Edges,
		"duration", loadTime)

	result, err := r.ExecuteSession(ctx, sess, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	result.CacheInfo.DocumentHit = info.Cached
	return result, nil
}

// Load creates a session for opts.Language and loads the configured
// document into it: opts.Data if set, otherwise opts.Source, otherwise the
// built-in document.
func (r *Runner) Load(ctx context.Context, opts Options) (*session.Session, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	loader := r.Loader
	if opts.Refresh {
		l := *r.Loader
		l.Refresh = true
		loader = &l
	}

	sess := session.New(loader, opts.Logger, opts.Language)
	src := source.FromRef(opts.Source)
	if opts.Data != nil {
		src = source.Bytes(opts.DataName, opts.Data)
	}
	if _, err := sess.Load(ctx, src); err != nil {
		return nil, err
	}
	return sess, nil
}

// ExecuteSession runs the view and render stages against an already
// loaded session. The session's language wins over opts.Language.
func (r *Runner) ExecuteSession(ctx context.Context, sess *session.Session, opts Options) (*Result, error) {
	opts.Language = sess.Language()
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Document: sess.Info()}

	// Stage 1: View
	layoutStart := time.Now()
	g, view, err := BuildView(sess, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.View = view
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.TreeNodes = len(view.Nodes)

	r.Logger.Info("computed layout",
		"focal", opts.Focal,
		"nodes", len(view.Nodes),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Document.Hash, view, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildView returns the displayed graph and its positioned view: the
// branch of opts.Focal, or the whole document when no focal class is set.
func BuildView(sess *session.Session, opts Options) (*ontology.Graph, graph.View, error) {
	if err := opts.ValidateForView(); err != nil {
		return nil, graph.View{}, err
	}

	g := sess.FullGraph()
	if opts.Focal != "" {
		if !g.Has(opts.Focal) {
			return nil, graph.View{}, errors.New(errors.ErrCodeClassNotFound, "unknown class %q", opts.Focal)
		}
		g = sess.Branch(opts.Focal)
	}

	tree, lay := sess.LayoutWith(g, opts.LayoutOptions())
	view := graph.NewView(tree, lay)
	view.Focal = opts.Focal
	return g, view, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. docHash identifies the document the view was built from; an
// empty hash disables caching.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, docHash string, v graph.View, g *ontology.Graph, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, docHash, v, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

func (r *Runner) render(ctx context.Context, docHash string, v graph.View, g *ontology.Graph, opts Options) (map[string][]byte, bool, error) {
	if docHash != "" && !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ViewKey(docHash, opts.ViewKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "view")
				break
			}
			observability.Cache().OnCacheHit(ctx, "view")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(v, g, opts)
	if err != nil {
		return nil, false, err
	}

	if docHash != "" {
		for format, data := range rendered {
			key := r.Keyer.ViewKey(docHash, opts.ViewKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.TTLView); err != nil {
				opts.Logger.Warn("cache artifact", "format", format, "err", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, "view", len(data))
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
