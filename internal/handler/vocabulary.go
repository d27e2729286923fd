package handler

import (
	"net/http"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
)

// CategoryVocabulary describes one facet category.
type CategoryVocabulary struct {
	Name        string   `json:"name"`
	Demographic bool     `json:"demographic"`
	Values      []string `json:"values"`
	TopChoices  []string `json:"topChoices"`
}

// VocabularyResponse is the body of GET /vocabulary.
type VocabularyResponse struct {
	Categories []CategoryVocabulary `json:"categories"`
	Policies   []discovery.Policy   `json:"policies"`
	MinAge     int                  `json:"minAge"`
	MaxAge     int                  `json:"maxAge"`
}

// GetVocabulary handles GET /vocabulary. It lists every category in display
// order with its canonical values and top choices, plus the readiness presets.
func (s *Server) GetVocabulary(w http.ResponseWriter, _ *http.Request) {
	resp := VocabularyResponse{
		Categories: make([]CategoryVocabulary, 0, len(domain.Categories)),
		Policies:   discovery.Policies(),
		MinAge:     discovery.MinAge,
		MaxAge:     discovery.MaxAge,
	}
	for _, c := range domain.Categories {
		top := c.TopChoices()
		if top == nil {
			top = []string{}
		}
		resp.Categories = append(resp.Categories, CategoryVocabulary{
			Name:        c.String(),
			Demographic: c.Demographic(),
			Values:      c.Vocabulary(),
			TopChoices:  top,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
