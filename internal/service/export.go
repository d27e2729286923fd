package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/presence"
	"github.com/pkordes/travel-match/backend/internal/repo"
)

// ExportService assembles a user's itinerary as a flat table.
type ExportService struct {
	plans    repo.PlanRepo
	resolver *presence.Resolver
}

// NewExportService constructs an ExportService.
func NewExportService(plans repo.PlanRepo, resolver *presence.Resolver) *ExportService {
	return &ExportService{plans: plans, resolver: resolver}
}

// Export returns one row per plan in entry order, evaluated on today (or the
// resolver's today when nil). At most one row is marked Current: the plan
// presence resolution would pick.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID, today *domain.Date) ([]domain.PlanExportRow, error) {
	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	day := s.resolver.Today()
	if today != nil && !today.IsZero() {
		day = *today
	}
	current, hasCurrent := presence.ActivePlan(plans, day)

	rows := make([]domain.PlanExportRow, 0, len(plans))
	for _, p := range plans {
		row := domain.PlanExportRow{
			PlanID:      p.ID.String(),
			Destination: p.Destination,
			StartDate:   p.StartDate.String(),
			Status:      p.StatusOn(day),
			Current:     hasCurrent && p.ID == current.ID,
		}
		if !p.Open() {
			row.EndDate = p.EndDate.String()
		}
		rows = append(rows, row)
	}
	return rows, nil
}
