package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/service"
)

// SearchRequest is the body of POST /search and POST /search/preview.
// Location, StartDate and EndDate override what the user's bucket implies.
type SearchRequest struct {
	UserID    *uuid.UUID          `json:"userId,omitempty"`
	Kind      string              `json:"kind,omitempty"`
	Today     *openapi_types.Date `json:"today,omitempty"`
	SessionID *uuid.UUID          `json:"sessionId,omitempty"`
	Policy    string              `json:"policy,omitempty"`
	Location  string              `json:"location,omitempty"`
	StartDate *openapi_types.Date `json:"startDate,omitempty"`
	EndDate   *openapi_types.Date `json:"endDate,omitempty"`
	AgeMin    *int                `json:"ageMin,omitempty"`
	AgeMax    *int                `json:"ageMax,omitempty"`
	Page      *int                `json:"page,omitempty"`
	Limit     *int                `json:"limit,omitempty"`
}

// SearchPreview is the body of POST /search/preview.
type SearchPreview struct {
	Bucket    domain.PresenceBucket `json:"bucket"`
	Query     discovery.Query       `json:"query"`
	Params    map[string][]string   `json:"params"`
	Readiness discovery.Readiness   `json:"readiness"`
	Invalid   string                `json:"invalid,omitempty"`
}

// SearchResponse is the body of POST /search.
type SearchResponse struct {
	SearchPreview
	Candidates []domain.Candidate `json:"candidates"`
}

// PreviewSearch handles POST /search/preview. The query is always built,
// even when readiness has not been met or the query cannot run yet.
func (s *Server) PreviewSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := searchRequest(w, r)
	if !ok {
		return
	}
	preview, err := s.svc.Search.Preview(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, searchNotFound(req))
		return
	}
	writeJSON(w, http.StatusOK, previewToResponse(preview))
}

// RunSearch handles POST /search.
func (s *Server) RunSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := searchRequest(w, r)
	if !ok {
		return
	}
	result, err := s.svc.Search.Search(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, searchNotFound(req))
		return
	}
	candidates := result.Candidates
	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		SearchPreview: previewToResponse(result.SearchPreview),
		Candidates:    candidates,
	})
}

func searchRequest(w http.ResponseWriter, r *http.Request) (service.SearchRequest, bool) {
	var body SearchRequest
	if !decodeBody(w, r, &body) {
		return service.SearchRequest{}, false
	}
	kind, err := domain.ParseBucketKind(body.Kind)
	if err != nil {
		requestError(w, domain.ValidationMessage(err))
		return service.SearchRequest{}, false
	}

	req := service.SearchRequest{
		Kind:   kind,
		Today:  fromAPIDatePtr(body.Today),
		Policy: body.Policy,
		Overrides: discovery.Overrides{
			Location: body.Location,
			AgeMin:   body.AgeMin,
			AgeMax:   body.AgeMax,
		},
	}
	if body.UserID != nil {
		req.UserID = *body.UserID
	}
	if body.SessionID != nil {
		req.SessionID = *body.SessionID
	}
	start, end := fromAPIDatePtr(body.StartDate), fromAPIDatePtr(body.EndDate)
	if end != nil && start == nil {
		requestError(w, "startDate is required with endDate")
		return service.SearchRequest{}, false
	}
	if start != nil {
		dr := &discovery.DateRange{Start: *start}
		if end != nil {
			dr.End = *end
		}
		req.Overrides.DateRange = dr
	}
	if body.Page != nil || body.Limit != nil {
		req.Overrides.Page = domain.NewPaginationParams(body.Page, body.Limit)
	}
	return req, true
}

// searchNotFound names what was missing: the session if one was given,
// otherwise the user.
func searchNotFound(req service.SearchRequest) string {
	if req.SessionID != uuid.Nil {
		return "user or session not found"
	}
	return "user not found"
}

func previewToResponse(p service.SearchPreview) SearchPreview {
	return SearchPreview{
		Bucket:    p.Bucket,
		Query:     p.Query,
		Params:    p.Query.Values(),
		Readiness: p.Readiness,
		Invalid:   p.Invalid,
	}
}
