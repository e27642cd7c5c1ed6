package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/expr"
	"github.com/matzehuels/ontoview/pkg/graph"
	"github.com/matzehuels/ontoview/pkg/ontology"
	"github.com/matzehuels/ontoview/pkg/pipeline"
	"github.com/matzehuels/ontoview/pkg/session"
)

// handleGraph returns the full class graph.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, graph.FromOntology(sess.FullGraph()))
}

// handleBranch returns the subgraph of a class, its ancestors and its
// descendants. Unknown ids yield an empty graph.
func (s *Server) handleBranch(w http.ResponseWriter, r *http.Request) {
	sess, classID, ok := s.sessionClass(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, graph.FromOntology(sess.Branch(classID)))
}

// handleLabel resolves a display name. Unknown ids resolve to themselves.
func (s *Server) handleLabel(w http.ResponseWriter, r *http.Request) {
	sess, classID, ok := s.sessionClass(w, r)
	if !ok {
		return
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = sess.Language()
	} else if err := errors.ValidateLanguage(lang); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":    classID,
		"lang":  ontology.NormalizeLanguage(lang),
		"label": sess.ResolveLabel(classID, lang),
	})
}

type axiomsResponse struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	Labels       []ontology.Label            `json:"labels,omitempty"`
	Comments     []string                    `json:"comments,omitempty"`
	SuperClasses []string                    `json:"super_classes"`
	SubClasses   []string                    `json:"sub_classes"`
	Equivalents  []renderedExpr              `json:"equivalents"`
	Restrictions map[string][]renderedFiller `json:"restrictions"`
	Properties   []string                    `json:"properties"`
}

type renderedExpr struct {
	Text       string           `json:"text"`
	Expr       graph.Expression `json:"expr"`
	References []string         `json:"references"` // named classes, first appearance first
}

type renderedFiller struct {
	Text   string      `json:"text"`
	Filler expr.Filler `json:"filler"`
}

func newAxiomsResponse(ax session.Axioms, label expr.Labeler) axiomsResponse {
	out := axiomsResponse{
		ID:           ax.ID,
		Name:         ax.Name,
		Labels:       ax.Labels,
		Comments:     ax.Comments,
		SuperClasses: nonNil(ax.SuperClasses),
		SubClasses:   nonNil(ax.SubClasses),
		Equivalents:  make([]renderedExpr, 0, len(ax.Equivalents)),
		Restrictions: make(map[string][]renderedFiller, len(ax.Restrictions)),
		Properties:   nonNil(ax.Properties),
	}
	for _, e := range ax.Equivalents {
		out.Equivalents = append(out.Equivalents, renderedExpr{
			Text:       expr.Render(e, label),
			Expr:       graph.Expression{Expr: e},
			References: nonNil(expr.References(e)),
		})
	}
	for prop, fillers := range ax.Restrictions {
		for _, f := range fillers {
			out.Restrictions[prop] = append(out.Restrictions[prop], renderedFiller{
				Text:   expr.RenderFiller(f, label),
				Filler: f,
			})
		}
	}
	return out
}

// handleAxioms returns the axioms of a class with rendered expressions.
// Unknown ids yield axioms carrying only the id.
func (s *Server) handleAxioms(w http.ResponseWriter, r *http.Request) {
	sess, classID, ok := s.sessionClass(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newAxiomsResponse(sess.Axioms(classID), sess.FullGraph().Labeler()))
}

// handleProperty returns an object property.
func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "propertyID")
	p, found := sess.Property(id)
	if !found {
		writeError(w, errors.New(errors.ErrCodePropertyNotFound, "unknown property %q", id))
		return
	}
	writeJSON(w, http.StatusOK, graph.PropertyFromOntology(p))
}

// handleSearch finds classes by id, name or label.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	if err := errors.ValidateQuery(q); err != nil {
		writeError(w, err)
		return
	}
	matches := sess.Search(q)
	if matches == nil {
		matches = []session.Match{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "matches": matches})
}

// handleView returns the positioned display tree of the whole graph or of
// the branch of ?focal.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	opts := s.viewOptions(r, sess)
	_, view, err := pipeline.BuildView(sess, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleExport renders the view in ?format (default svg).
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	opts := s.viewOptions(r, sess)
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	opts.VizType = q.Get("viz")
	opts.Detailed = queryBool(q.Get("detailed"))
	opts.HideSecondary = queryBool(q.Get("hide_secondary"))

	result, err := s.runner.ExecuteSession(r.Context(), sess, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, contentType(format), result.Artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

// sessionClass resolves the session and the class id from the path. Ids
// that are not classes of the graph are passed through.
func (s *Server) sessionClass(w http.ResponseWriter, r *http.Request) (*session.Session, string, bool) {
	sess, ok := s.session(w, r)
	if !ok {
		return nil, "", false
	}
	classID := chi.URLParam(r, "classID")
	if err := errors.ValidateClassID(classID); err != nil {
		writeError(w, err)
		return nil, "", false
	}
	return sess, classID, true
}

func (s *Server) viewOptions(r *http.Request, sess *session.Session) pipeline.Options {
	q := r.URL.Query()
	lo := s.cfg.LayoutOptions()
	dir := q.Get("direction")
	if dir == "" {
		dir = s.cfg.Direction
	}
	return pipeline.Options{
		Language:    sess.Language(),
		Focal:       q.Get("focal"),
		Direction:   dir,
		NodeWidth:   lo.NodeWidth,
		LevelHeight: lo.LevelHeight,
		CharWidth:   lo.CharWidth,
		Padding:     lo.Padding,
		Width:       lo.Width,
		Height:      lo.Height,
		Logger:      s.logger,
	}
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "application/json"
	}
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
