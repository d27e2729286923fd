package handler

import (
	"net/http"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// Suggestion is one popular custom entry.
type Suggestion struct {
	Value string `json:"value"`
	Uses  int    `json:"uses"`
}

// SuggestionList is the body of GET /suggestions.
type SuggestionList struct {
	Data       []Suggestion `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// ListSuggestions handles GET /suggestions?category=&q=&page=&limit=.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	params, ok := bindQuery(w, r, "page", "limit")
	if !ok {
		return
	}
	c, ok := domain.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		requestError(w, "category must name a facet category")
		return
	}
	p := params.pagination()

	page, err := s.svc.Suggestions.Suggest(r.Context(), c, r.URL.Query().Get("q"), p)
	if err != nil {
		s.fail(w, r, err, "category not found")
		return
	}

	data := make([]Suggestion, len(page.Entries))
	for i, e := range page.Entries {
		data[i] = Suggestion{Value: e.Value, Uses: e.Uses}
	}
	writeJSON(w, http.StatusOK, SuggestionList{
		Data: data,
		Pagination: Pagination{
			Page:  p.Page,
			Limit: p.Limit,
			Total: int(page.Total),
		},
	})
}
