package handler

import (
	"net/http"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// AgeCheckRequest is the body of POST /signup/age-check.
type AgeCheckRequest struct {
	DateOfBirth string `json:"dateOfBirth"`
}

// AgeCheckResponse reports whether a birth date passes the age gate.
type AgeCheckResponse struct {
	Valid   bool   `json:"valid"`
	Age     int    `json:"age"`
	Message string `json:"message,omitempty"`
}

// CheckAge handles POST /signup/age-check. An invalid date is a normal
// answer, not an error.
func (s *Server) CheckAge(w http.ResponseWriter, r *http.Request) {
	var body AgeCheckRequest
	if !decodeBody(w, r, &body) {
		return
	}
	check := s.svc.Signup.CheckAge(body.DateOfBirth)
	writeJSON(w, http.StatusOK, AgeCheckResponse{
		Valid:   check.Valid,
		Age:     check.Age,
		Message: check.Message,
	})
}

// SaveAccount handles PUT /signup/{sessionId}/account, the funnel's account
// step.
func (s *Server) SaveAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	var body domain.AccountDraft
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.svc.Signup.SaveAccountDraft(r.Context(), id, body); err != nil {
		s.fail(w, r, err, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitSignup handles POST /signup/{sessionId}/submit?policy=. On success
// the account subsystem's {user, token} is returned as-is.
func (s *Server) SubmitSignup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	params, ok := bindQuery(w, r, "policy")
	if !ok {
		return
	}
	var body domain.ProfileInput
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := s.svc.Signup.Submit(r.Context(), id, body, params.policy())
	if err != nil {
		s.fail(w, r, err, "session not found")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
