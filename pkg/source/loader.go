package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontoview/pkg/cache"
	oerrors "github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/httputil"
	"github.com/matzehuels/ontoview/pkg/observability"
)

// MaxDocumentSize bounds how many bytes are read from one document.
const MaxDocumentSize = 64 << 20

// Document is the raw content of a loaded source.
type Document struct {
	Name   string
	Data   []byte
	Hash   string // SHA-256 of Data
	Cached bool   // served from cache without a fetch
}

// Loader reads documents. Remote fetches go through Cache (keyed by Keyer)
// and are retried on transient failures.
//
// A Loader is safe for concurrent use.
type Loader struct {
	Client   *http.Client
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	TTL      time.Duration // cache TTL for remote documents
	Attempts int           // fetch attempts for transient failures
	Delay    time.Duration // initial retry delay, doubled per attempt
	Refresh  bool          // bypass cached documents
}

// NewLoader creates a loader. A nil cache disables caching; a nil keyer
// uses the default key layout; a nil logger discards output.
func NewLoader(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Loader{
		Client:   httputil.NewClient(0),
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		TTL:      cache.TTLDocument,
		Attempts: 3,
		Delay:    time.Second,
	}
}

// Fetch returns the content of src.
func (l *Loader) Fetch(ctx context.Context, src Source) (*Document, error) {
	var (
		data   []byte
		cached bool
		err    error
	)
	switch src.Kind {
	case KindBytes:
		data = src.Data
	case KindBuiltin:
		data = builtin
	case KindFile:
		data, err = readFile(src.Location)
	case KindURL:
		data, cached, err = l.fetchURL(ctx, src.Location)
	default:
		err = oerrors.New(oerrors.ErrCodeInvalidInput, "unknown source kind %q", src.Kind)
	}
	if err != nil {
		return nil, err
	}
	return &Document{
		Name:   src.String(),
		Data:   data,
		Hash:   cache.Hash(data),
		Cached: cached,
	}, nil
}

func readFile(path string) ([]byte, error) {
	if err := oerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, oerrors.Wrap(oerrors.ErrCodeFileNotFound, err, "no such file: %s", path)
	}
	if err != nil {
		return nil, oerrors.Wrap(oerrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxDocumentSize))
	if err != nil {
		return nil, oerrors.Wrap(oerrors.ErrCodeInvalidDocument, err, "read %s", path)
	}
	return data, nil
}

func (l *Loader) fetchURL(ctx context.Context, rawURL string) ([]byte, bool, error) {
	if err := oerrors.ValidateURL(rawURL); err != nil {
		return nil, false, err
	}
	key := l.Keyer.DocumentKey(rawURL)

	if !l.Refresh {
		if data, hit, err := l.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "document")
			l.Logger.Debug("document cache hit", "url", rawURL)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	var data []byte
	err := httputil.Retry(ctx, l.Attempts, l.Delay, func() error {
		var err error
		data, err = l.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, false, classify(rawURL, err)
	}

	if err := l.Cache.Set(ctx, key, data, l.TTL); err != nil {
		l.Logger.Warn("cache document", "url", rawURL, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "document", len(data))
	}
	return data, false, nil
}

func (l *Loader) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rdf+xml, application/xml;q=0.9, */*;q=0.5")

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := l.Client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", httputil.ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return nil, &httputil.RetryableError{Err: &oerrors.RateLimitedError{RetryAfter: retryAfter}}
	}
	if err := httputil.CheckStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize))
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: read body: %v", httputil.ErrNetwork, err)}
	}
	return data, nil
}

// classify maps fetch failures onto coded errors.
func classify(rawURL string, err error) error {
	var (
		urlErr  *url.Error
		limited *oerrors.RateLimitedError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return oerrors.Wrap(oerrors.ErrCodeTimeout, err, "fetch %s timed out", rawURL)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, httputil.ErrNotFound):
		return oerrors.Wrap(oerrors.ErrCodeNotFound, err, "document not found: %s", rawURL)
	case errors.As(err, &limited):
		return oerrors.Wrap(oerrors.ErrCodeRateLimited, err, "fetch %s", rawURL)
	case errors.As(err, &urlErr) && urlErr.Timeout():
		return oerrors.Wrap(oerrors.ErrCodeTimeout, err, "fetch %s timed out", rawURL)
	default:
		return oerrors.Wrap(oerrors.ErrCodeNetwork, err, "fetch %s", rawURL)
	}
}
