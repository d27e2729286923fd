// Package service contains the business logic for the Travel Match API.
// Services validate inputs, enforce business rules and orchestrate repo,
// session and adapter calls. No SQL or HTTP lives here.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/repo"
)

// PlanService implements business logic for travel plans.
type PlanService struct {
	plans repo.PlanRepo
}

// NewPlanService constructs a PlanService backed by the provided PlanRepo.
func NewPlanService(plans repo.PlanRepo) *PlanService {
	return &PlanService{plans: plans}
}

// Create validates and persists a new plan.
// Returns domain.ErrValidation for bad input and domain.ErrNotFound when the
// user does not exist.
func (s *PlanService) Create(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	plan, err := normalizePlan(plan)
	if err != nil {
		return domain.TravelPlan{}, err
	}
	result, err := s.plans.Create(ctx, plan)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns one plan owned by userID.
func (s *PlanService) GetByID(ctx context.Context, userID, planID uuid.UUID) (domain.TravelPlan, error) {
	result, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns a user's plans in entry order.
// Always returns a non-nil slice.
func (s *PlanService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TravelPlan, error) {
	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.PlanService.ListByUser: %w", err)
	}
	if plans == nil {
		return []domain.TravelPlan{}, nil
	}
	return plans, nil
}

// Update validates and persists changes to an existing plan.
func (s *PlanService) Update(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	plan, err := normalizePlan(plan)
	if err != nil {
		return domain.TravelPlan{}, err
	}
	result, err := s.plans.Update(ctx, plan)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.Update: %w", err)
	}
	return result, nil
}

// Close ends an open-ended plan on end. Closing a plan that already has an
// end date, or with an end before its start, is a validation error.
func (s *PlanService) Close(ctx context.Context, userID, planID uuid.UUID, end domain.Date) (domain.TravelPlan, error) {
	if end.IsZero() {
		return domain.TravelPlan{}, fmt.Errorf("%w: end_date is required", domain.ErrValidation)
	}
	current, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.Close: %w", err)
	}
	if !current.Open() {
		return domain.TravelPlan{}, fmt.Errorf("%w: plan already ends on %s", domain.ErrValidation, current.EndDate)
	}
	if end.Before(current.StartDate) {
		return domain.TravelPlan{}, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}

	result, err := s.plans.Close(ctx, userID, planID, end)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.Close: %w", err)
	}
	return result, nil
}

// Delete removes a plan.
func (s *PlanService) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	if err := s.plans.Delete(ctx, userID, planID); err != nil {
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return nil
}

// normalizePlan trims the destination and enforces the rules shared by
// Create and Update:
//   - destination must be non-empty
//   - start_date must be set
//   - end_date, if set, must not be before start_date (same day is fine)
func normalizePlan(plan domain.TravelPlan) (domain.TravelPlan, error) {
	plan.Destination = strings.TrimSpace(plan.Destination)
	if plan.Destination == "" {
		return plan, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if plan.StartDate.IsZero() {
		return plan, fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if plan.EndDate != nil && plan.EndDate.IsZero() {
		plan.EndDate = nil
	}
	if plan.EndDate != nil && plan.EndDate.Before(plan.StartDate) {
		return plan, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return plan, nil
}
