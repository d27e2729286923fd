package handler

import (
	"net/http"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// PresenceResponse is the body of GET /users/{userId}/presence.
type PresenceResponse struct {
	Kind       domain.BucketKind  `json:"kind"`
	Label      domain.BucketLabel `json:"label"`
	Location   string             `json:"location"`
	Searchable bool               `json:"searchable"`
}

// GetPresence handles GET /users/{userId}/presence?kind=&today=.
// An empty location is a normal answer meaning "cannot search yet".
func (s *Server) GetPresence(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	params, ok := bindQuery(w, r, "kind", "today")
	if !ok {
		return
	}
	var rawKind string
	if params.Kind != nil {
		rawKind = *params.Kind
	}
	kind, err := domain.ParseBucketKind(rawKind)
	if err != nil {
		requestError(w, domain.ValidationMessage(err))
		return
	}

	bucket, err := s.svc.Presence.Resolve(r.Context(), userID, kind, params.today())
	if err != nil {
		s.fail(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, PresenceResponse{
		Kind:       kind,
		Label:      bucket.Label,
		Location:   bucket.Location,
		Searchable: bucket.Searchable(),
	})
}
