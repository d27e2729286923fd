package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// PlanRequest is the body of POST and PUT on /users/{userId}/plans.
type PlanRequest struct {
	Destination string              `json:"destination"`
	StartDate   openapi_types.Date  `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate,omitempty"`
}

// ClosePlanRequest is the body of POST /users/{userId}/plans/{planId}/close.
type ClosePlanRequest struct {
	EndDate openapi_types.Date `json:"endDate"`
}

// Plan is a travel plan on the wire.
type Plan struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"userId"`
	Destination string              `json:"destination"`
	StartDate   openapi_types.Date  `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// PlanList is the body of GET /users/{userId}/plans.
type PlanList struct {
	Data []Plan `json:"data"`
}

// CreatePlan handles POST /users/{userId}/plans.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	var body PlanRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.svc.Plans.Create(r.Context(), requestToPlan(userID, uuid.Nil, body))
	if err != nil {
		s.fail(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusCreated, planToResponse(created))
}

// ListPlans handles GET /users/{userId}/plans.
// Plans are listed in entry order, oldest first.
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	plans, err := s.svc.Plans.ListByUser(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err, "user not found")
		return
	}

	data := make([]Plan, len(plans))
	for i, p := range plans {
		data[i] = planToResponse(p)
	}
	writeJSON(w, http.StatusOK, PlanList{Data: data})
}

// GetPlan handles GET /users/{userId}/plans/{planId}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID, planID, ok := planPath(w, r)
	if !ok {
		return
	}
	plan, err := s.svc.Plans.GetByID(r.Context(), userID, planID)
	if err != nil {
		s.fail(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(plan))
}

// UpdatePlan handles PUT /users/{userId}/plans/{planId}.
func (s *Server) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	userID, planID, ok := planPath(w, r)
	if !ok {
		return
	}
	var body PlanRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.svc.Plans.Update(r.Context(), requestToPlan(userID, planID, body))
	if err != nil {
		s.fail(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(updated))
}

// ClosePlan handles POST /users/{userId}/plans/{planId}/close.
func (s *Server) ClosePlan(w http.ResponseWriter, r *http.Request) {
	userID, planID, ok := planPath(w, r)
	if !ok {
		return
	}
	var body ClosePlanRequest
	if !decodeBody(w, r, &body) {
		return
	}

	closed, err := s.svc.Plans.Close(r.Context(), userID, planID, fromAPIDate(body.EndDate))
	if err != nil {
		s.fail(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(closed))
}

// DeletePlan handles DELETE /users/{userId}/plans/{planId}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	userID, planID, ok := planPath(w, r)
	if !ok {
		return
	}
	if err := s.svc.Plans.Delete(r.Context(), userID, planID); err != nil {
		s.fail(w, r, err, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func planPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	planID, ok := pathUUID(w, r, "planId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, planID, true
}

func requestToPlan(userID, planID uuid.UUID, body PlanRequest) domain.TravelPlan {
	return domain.TravelPlan{
		ID:          planID,
		UserID:      userID,
		Destination: body.Destination,
		StartDate:   fromAPIDate(body.StartDate),
		EndDate:     fromAPIDatePtr(body.EndDate),
	}
}

func planToResponse(p domain.TravelPlan) Plan {
	return Plan{
		ID:          p.ID,
		UserID:      p.UserID,
		Destination: p.Destination,
		StartDate:   apiDate(p.StartDate),
		EndDate:     apiDatePtr(p.EndDate),
		CreatedAt:   timestamp(p.CreatedAt),
		UpdatedAt:   timestamp(p.UpdatedAt),
	}
}
