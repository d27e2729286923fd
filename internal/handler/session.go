package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
	"github.com/pkordes/travel-match/backend/internal/service"
)

// ValueRequest names one value in one category. It is the body of the
// toggle, custom and remove routes.
type ValueRequest struct {
	Category domain.Category `json:"category"`
	Value    string          `json:"value"`
}

// TopChoicesRequest is the body of POST /sessions/{sessionId}/top-choices.
type TopChoicesRequest struct {
	Category domain.Category          `json:"category"`
	Action   service.TopChoicesAction `json:"action"`
}

// Session is a selection session on the wire.
type Session struct {
	ID        uuid.UUID           `json:"id"`
	Selection facet.Snapshot      `json:"selection"`
	Readiness discovery.Readiness `json:"readiness"`
	UpdatedAt time.Time           `json:"updatedAt"`
	// Added is set only by the custom route.
	Added *bool `json:"added,omitempty"`
}

// StartSession handles POST /sessions?policy=.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	params, ok := bindQuery(w, r, "policy")
	if !ok {
		return
	}
	view, err := s.svc.Sessions.Start(r.Context(), params.policy())
	if err != nil {
		s.fail(w, r, err, "session not found")
		return
	}
	writeJSON(w, http.StatusCreated, sessionToResponse(view))
}

// GetSession handles GET /sessions/{sessionId}?policy=.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	params, ok := bindQuery(w, r, "policy")
	if !ok {
		return
	}
	view, err := s.svc.Sessions.Get(r.Context(), id, params.policy())
	if err != nil {
		s.fail(w, r, err, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(view))
}

// EndSession handles DELETE /sessions/{sessionId}.
func (s *Server) EndSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	if err := s.svc.Sessions.End(r.Context(), id); err != nil {
		s.fail(w, r, err, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleValue handles POST /sessions/{sessionId}/toggle.
func (s *Server) ToggleValue(w http.ResponseWriter, r *http.Request) {
	id, policy, body, ok := s.valueRequest(w, r)
	if !ok {
		return
	}
	view, err := s.svc.Sessions.Toggle(r.Context(), id, body.Category, body.Value, policy)
	s.respondSession(w, r, view, err)
}

// AddCustomValue handles POST /sessions/{sessionId}/custom.
func (s *Server) AddCustomValue(w http.ResponseWriter, r *http.Request) {
	id, policy, body, ok := s.valueRequest(w, r)
	if !ok {
		return
	}
	view, added, err := s.svc.Sessions.AddCustom(r.Context(), id, body.Category, body.Value, policy)
	if err != nil {
		s.fail(w, r, err, "session not found")
		return
	}
	resp := sessionToResponse(view)
	resp.Added = &added
	writeJSON(w, http.StatusOK, resp)
}

// RemoveValue handles POST /sessions/{sessionId}/remove.
func (s *Server) RemoveValue(w http.ResponseWriter, r *http.Request) {
	id, policy, body, ok := s.valueRequest(w, r)
	if !ok {
		return
	}
	view, err := s.svc.Sessions.Remove(r.Context(), id, body.Category, body.Value, policy)
	s.respondSession(w, r, view, err)
}

// ApplyTopChoices handles POST /sessions/{sessionId}/top-choices.
func (s *Server) ApplyTopChoices(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	params, ok := bindQuery(w, r, "policy")
	if !ok {
		return
	}
	var body TopChoicesRequest
	if !decodeBody(w, r, &body) {
		return
	}
	view, err := s.svc.Sessions.TopChoices(r.Context(), id, body.Category, body.Action, params.policy())
	s.respondSession(w, r, view, err)
}

func (s *Server) valueRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, ValueRequest, bool) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return uuid.Nil, "", ValueRequest{}, false
	}
	params, ok := bindQuery(w, r, "policy")
	if !ok {
		return uuid.Nil, "", ValueRequest{}, false
	}
	var body ValueRequest
	if !decodeBody(w, r, &body) {
		return uuid.Nil, "", ValueRequest{}, false
	}
	return id, params.policy(), body, true
}

func (s *Server) respondSession(w http.ResponseWriter, r *http.Request, view service.SessionView, err error) {
	if err != nil {
		s.fail(w, r, err, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(view))
}

func sessionToResponse(v service.SessionView) Session {
	sel := v.Selection
	if sel == nil {
		sel = facet.Snapshot{}
	}
	return Session{
		ID:        v.ID,
		Selection: sel,
		Readiness: v.Readiness,
		UpdatedAt: timestamp(v.UpdatedAt),
	}
}
