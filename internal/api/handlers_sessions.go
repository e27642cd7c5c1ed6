package api

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/session"
	"github.com/matzehuels/ontoview/pkg/source"
)

// loadRequest is the JSON body of session creation and document loads.
// Multipart requests carry the document in the "file" field instead.
type loadRequest struct {
	Source   string `json:"source,omitempty"` // http(s) URL; empty for the server default
	Language string `json:"language,omitempty"`
}

type sessionResponse struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Language  string       `json:"language"`
	Loaded    bool         `json:"loaded"`
	Document  session.Info `json:"document"`
}

func newSessionResponse(sess *session.Session) sessionResponse {
	return sessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		Language:  sess.Language(),
		Loaded:    sess.Loaded(),
		Document:  sess.Info(),
	}
}

// handleCreateSession creates a session and loads a document into it.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	src, lang, err := s.readLoadRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if lang == "" {
		lang = s.cfg.Language
	}
	if err := errors.ValidateLanguage(lang); err != nil {
		writeError(w, err)
		return
	}

	sess := session.New(s.runner.Loader, s.logger, lang)
	sess.SetLayoutOptions(s.cfg.LayoutOptions())
	if _, err := sess.Load(r.Context(), src); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}

	s.logger.Debug("created session", "id", sess.ID, "source", src)
	writeJSON(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadDocument replaces the session's document, optionally switching
// its language. A failed load keeps the previous document and language.
func (s *Server) handleLoadDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	src, lang, err := s.readLoadRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := sess.LoadWithLanguage(r.Context(), src, lang); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := sess.SetLanguage(req.Language); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

// =============================================================================
// Helpers
// =============================================================================

// session resolves the session of the request path, responding with 404
// when it does not exist or has expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %s", id))
		return nil, false
	}
	return sess, true
}

// readLoadRequest reads the document source of a load request: an uploaded
// file for multipart bodies, otherwise a JSON body naming a URL. Clients
// cannot name server-side paths; an empty source selects the configured
// default document.
func (s *Server) readLoadRequest(w http.ResponseWriter, r *http.Request) (source.Source, string, error) {
	maxBytes := s.cfg.Server.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20) // extra 1MB for form overhead

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return source.Source{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid multipart form")
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			return source.Source{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "file is required")
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
		if err != nil {
			return source.Source{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload")
		}
		if int64(len(data)) > maxBytes {
			return source.Source{}, "", errors.New(errors.ErrCodeInvalidInput, "file exceeds max size (%d bytes)", maxBytes)
		}
		return source.Bytes(filepath.Base(header.Filename), data), r.FormValue("language"), nil
	}

	var req loadRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			return source.Source{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
		}
	}
	if req.Source == "" {
		return source.FromRef(s.cfg.Document), req.Language, nil
	}
	if err := errors.ValidateURL(req.Source); err != nil {
		return source.Source{}, "", err
	}
	return source.URL(req.Source), req.Language, nil
}
