package source

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/ontoview/pkg/cache"
	oerrors "github.com/matzehuels/ontoview/pkg/errors"
)

const tinyDoc = `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:owl="http://www.w3.org/2002/07/owl#"><owl:Class rdf:about="#A"/></rdf:RDF>`

func testLoader(t *testing.T) *Loader {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	l := NewLoader(c, nil, nil)
	l.Delay = time.Millisecond
	return l
}

func TestFetchBytesAndBuiltin(t *testing.T) {
	l := NewLoader(nil, nil, nil)
	ctx := context.Background()

	doc, err := l.Fetch(ctx, Bytes("upload.owl", []byte(tinyDoc)))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "upload.owl" || string(doc.Data) != tinyDoc {
		t.Errorf("Fetch(bytes) = %+v", doc)
	}
	if doc.Hash != cache.Hash([]byte(tinyDoc)) {
		t.Error("hash mismatch")
	}

	doc, err = l.Fetch(ctx, Builtin())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(doc.Data, builtin) {
		t.Error("builtin data mismatch")
	}
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.owl")
	if err := os.WriteFile(path, []byte(tinyDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(nil, nil, nil)
	doc, err := l.Fetch(context.Background(), File(path))
	if err != nil {
		t.Fatal(err)
	}
	if string(doc.Data) != tinyDoc {
		t.Errorf("data = %q", doc.Data)
	}

	_, err = l.Fetch(context.Background(), File(filepath.Join(dir, "missing.owl")))
	if !oerrors.Is(err, oerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v, want FILE_NOT_FOUND", err)
	}

	_, err = l.Fetch(context.Background(), File(""))
	if !oerrors.Is(err, oerrors.ErrCodeInvalidPath) {
		t.Errorf("empty path: err = %v, want INVALID_PATH", err)
	}
}

func TestFetchURLCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("missing User-Agent")
		}
		w.Write([]byte(tinyDoc))
	}))
	defer srv.Close()

	l := testLoader(t)
	ctx := context.Background()

	first, err := l.Fetch(ctx, URL(srv.URL+"/a.owl"))
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Error("first fetch reported cached")
	}

	second, err := l.Fetch(ctx, URL(srv.URL+"/a.owl"))
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Hash != first.Hash {
		t.Errorf("second fetch = %+v, want cached copy", second)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}

	l.Refresh = true
	if _, err := l.Fetch(ctx, URL(srv.URL+"/a.owl")); err != nil {
		t.Fatal(err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hits after refresh = %d, want 2", n)
	}
}

func TestFetchURLRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(tinyDoc))
	}))
	defer srv.Close()

	l := testLoader(t)
	doc, err := l.Fetch(context.Background(), URL(srv.URL))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(doc.Data) != tinyDoc {
		t.Errorf("data = %q", doc.Data)
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("hits = %d, want 3", n)
	}
}

func TestFetchURLErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   oerrors.Code
	}{
		{"not found", http.StatusNotFound, oerrors.ErrCodeNotFound},
		{"gone", http.StatusGone, oerrors.ErrCodeNotFound},
		{"forbidden", http.StatusForbidden, oerrors.ErrCodeNetwork},
		{"server error", http.StatusInternalServerError, oerrors.ErrCodeNetwork},
		{"rate limited", http.StatusTooManyRequests, oerrors.ErrCodeRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			l := testLoader(t)
			_, err := l.Fetch(context.Background(), URL(srv.URL))
			if got := oerrors.GetCode(err); got != tt.want {
				t.Errorf("code = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestFetchURLInvalid(t *testing.T) {
	l := NewLoader(nil, nil, nil)
	_, err := l.Fetch(context.Background(), URL("ftp://example.org/x.owl"))
	if !oerrors.Is(err, oerrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
