package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/presence"
	"github.com/pkordes/travel-match/backend/internal/repo"
)

// PresenceService resolves which bucket a stored user belongs to.
type PresenceService struct {
	users    repo.UserRepo
	plans    repo.PlanRepo
	resolver *presence.Resolver
}

// NewPresenceService constructs a PresenceService.
func NewPresenceService(users repo.UserRepo, plans repo.PlanRepo, resolver *presence.Resolver) *PresenceService {
	return &PresenceService{users: users, plans: plans, resolver: resolver}
}

// Today returns the resolver's current calendar date.
func (s *PresenceService) Today() domain.Date {
	return s.resolver.Today()
}

// Resolve loads the user and their plans and returns the bucket of the given
// kind. A non-nil today overrides the server's calendar date, for clients that
// know the user's own local day.
func (s *PresenceService) Resolve(ctx context.Context, userID uuid.UUID, kind domain.BucketKind, today *domain.Date) (domain.PresenceBucket, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.PresenceBucket{}, fmt.Errorf("service.PresenceService.Resolve: %w", err)
	}
	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return domain.PresenceBucket{}, fmt.Errorf("service.PresenceService.Resolve: %w", err)
	}

	day := s.resolver.Today()
	if today != nil && !today.IsZero() {
		day = *today
	}
	return s.resolver.ResolveOn(day, kind, user, plans), nil
}
