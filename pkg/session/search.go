package session

import "strings"

// Match is one search hit.
type Match struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Matched is the text that contained the query: the id, the display
	// name, or one of the labels.
	Matched string `json:"matched"`
}

// Search returns the classes whose id, display name or any label contains
// query, ignoring case, in graph order. Only classes of the graph match,
// never the virtual root of a display tree.
func (s *Session) Search(query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Match
	for _, n := range s.FullGraph().Nodes() {
		candidates := make([]string, 0, len(n.Labels)+2)
		candidates = append(candidates, n.Name, n.ID)
		for _, l := range n.Labels {
			candidates = append(candidates, l.Text)
		}
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c), q) {
				out = append(out, Match{ID: n.ID, Name: n.Name, Matched: c})
				break
			}
		}
	}
	return out
}
