package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/repo"
	"github.com/pkordes/travel-match/backend/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockPlanRepo struct {
	create     func(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)
	getByID    func(ctx context.Context, userID, planID uuid.UUID) (domain.TravelPlan, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.TravelPlan, error)
	update     func(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)
	close      func(ctx context.Context, userID, planID uuid.UUID, end domain.Date) (domain.TravelPlan, error)
	delete     func(ctx context.Context, userID, planID uuid.UUID) error
}

func (m *mockPlanRepo) Create(ctx context.Context, p domain.TravelPlan) (domain.TravelPlan, error) {
	return m.create(ctx, p)
}
func (m *mockPlanRepo) GetByID(ctx context.Context, userID, planID uuid.UUID) (domain.TravelPlan, error) {
	return m.getByID(ctx, userID, planID)
}
func (m *mockPlanRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TravelPlan, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockPlanRepo) Update(ctx context.Context, p domain.TravelPlan) (domain.TravelPlan, error) {
	return m.update(ctx, p)
}
func (m *mockPlanRepo) Close(ctx context.Context, userID, planID uuid.UUID, end domain.Date) (domain.TravelPlan, error) {
	return m.close(ctx, userID, planID, end)
}
func (m *mockPlanRepo) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	return m.delete(ctx, userID, planID)
}

type mockUserRepo struct {
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

type mockCustomEntryRepo struct {
	record    func(ctx context.Context, c domain.Category, value, slug string) (domain.CustomEntry, error)
	listPaged func(ctx context.Context, c domain.Category, prefix string, p domain.PaginationParams) ([]domain.CustomEntry, int64, error)
}

func (m *mockCustomEntryRepo) Record(ctx context.Context, c domain.Category, value, slug string) (domain.CustomEntry, error) {
	return m.record(ctx, c, value, slug)
}
func (m *mockCustomEntryRepo) ListPaged(ctx context.Context, c domain.Category, prefix string, p domain.PaginationParams) ([]domain.CustomEntry, int64, error) {
	return m.listPaged(ctx, c, prefix, p)
}

type mockSearcher struct {
	search func(ctx context.Context, q discovery.Query) ([]domain.Candidate, error)
}

func (m *mockSearcher) Search(ctx context.Context, q discovery.Query) ([]domain.Candidate, error) {
	return m.search(ctx, q)
}

type mockRegistrar struct {
	register func(ctx context.Context, reg domain.Registration) (domain.RegistrationResult, error)
}

func (m *mockRegistrar) Register(ctx context.Context, reg domain.Registration) (domain.RegistrationResult, error) {
	return m.register(ctx, reg)
}

type mockBuckets struct {
	resolve func(ctx context.Context, userID uuid.UUID, kind domain.BucketKind, today *domain.Date) (domain.PresenceBucket, error)
}

func (m *mockBuckets) Resolve(ctx context.Context, userID uuid.UUID, kind domain.BucketKind, today *domain.Date) (domain.PresenceBucket, error) {
	return m.resolve(ctx, userID, kind, today)
}

type mockRecorder struct {
	calls []string
	err   error
}

func (m *mockRecorder) Record(_ context.Context, c domain.Category, value string) (domain.CustomEntry, error) {
	m.calls = append(m.calls, c.String()+":"+value)
	return domain.CustomEntry{Category: c, Value: value}, m.err
}

// compile-time checks
var (
	_ repo.PlanRepo            = (*mockPlanRepo)(nil)
	_ repo.UserRepo            = (*mockUserRepo)(nil)
	_ repo.CustomEntryRepo     = (*mockCustomEntryRepo)(nil)
	_ service.Searcher         = (*mockSearcher)(nil)
	_ service.AccountRegistrar = (*mockRegistrar)(nil)
	_ service.BucketResolver   = (*mockBuckets)(nil)
	_ service.CustomRecorder   = (*mockRecorder)(nil)
)
