package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/handler"
	"github.com/pkordes/travel-match/backend/internal/service"
)

// Test doubles for the handler's service interfaces. Set only the method
// fields a test needs.

type mockPlans struct {
	create     func(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)
	getByID    func(ctx context.Context, userID, planID uuid.UUID) (domain.TravelPlan, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.TravelPlan, error)
	update     func(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)
	close      func(ctx context.Context, userID, planID uuid.UUID, end domain.Date) (domain.TravelPlan, error)
	delete     func(ctx context.Context, userID, planID uuid.UUID) error
}

func (m *mockPlans) Create(ctx context.Context, p domain.TravelPlan) (domain.TravelPlan, error) {
	return m.create(ctx, p)
}
func (m *mockPlans) GetByID(ctx context.Context, userID, planID uuid.UUID) (domain.TravelPlan, error) {
	return m.getByID(ctx, userID, planID)
}
func (m *mockPlans) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TravelPlan, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockPlans) Update(ctx context.Context, p domain.TravelPlan) (domain.TravelPlan, error) {
	return m.update(ctx, p)
}
func (m *mockPlans) Close(ctx context.Context, userID, planID uuid.UUID, end domain.Date) (domain.TravelPlan, error) {
	return m.close(ctx, userID, planID, end)
}
func (m *mockPlans) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	return m.delete(ctx, userID, planID)
}

type mockPresence struct {
	resolve func(ctx context.Context, userID uuid.UUID, kind domain.BucketKind, today *domain.Date) (domain.PresenceBucket, error)
}

func (m *mockPresence) Resolve(ctx context.Context, userID uuid.UUID, kind domain.BucketKind, today *domain.Date) (domain.PresenceBucket, error) {
	return m.resolve(ctx, userID, kind, today)
}

type mockExport struct {
	export func(ctx context.Context, userID uuid.UUID, today *domain.Date) ([]domain.PlanExportRow, error)
}

func (m *mockExport) Export(ctx context.Context, userID uuid.UUID, today *domain.Date) ([]domain.PlanExportRow, error) {
	return m.export(ctx, userID, today)
}

type mockSessions struct {
	start      func(ctx context.Context, policy string) (service.SessionView, error)
	get        func(ctx context.Context, id uuid.UUID, policy string) (service.SessionView, error)
	toggle     func(ctx context.Context, id uuid.UUID, c domain.Category, value, policy string) (service.SessionView, error)
	addCustom  func(ctx context.Context, id uuid.UUID, c domain.Category, text, policy string) (service.SessionView, bool, error)
	remove     func(ctx context.Context, id uuid.UUID, c domain.Category, value, policy string) (service.SessionView, error)
	topChoices func(ctx context.Context, id uuid.UUID, c domain.Category, action service.TopChoicesAction, policy string) (service.SessionView, error)
	end        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSessions) Start(ctx context.Context, policy string) (service.SessionView, error) {
	return m.start(ctx, policy)
}
func (m *mockSessions) Get(ctx context.Context, id uuid.UUID, policy string) (service.SessionView, error) {
	return m.get(ctx, id, policy)
}
func (m *mockSessions) Toggle(ctx context.Context, id uuid.UUID, c domain.Category, value, policy string) (service.SessionView, error) {
	return m.toggle(ctx, id, c, value, policy)
}
func (m *mockSessions) AddCustom(ctx context.Context, id uuid.UUID, c domain.Category, text, policy string) (service.SessionView, bool, error) {
	return m.addCustom(ctx, id, c, text, policy)
}
func (m *mockSessions) Remove(ctx context.Context, id uuid.UUID, c domain.Category, value, policy string) (service.SessionView, error) {
	return m.remove(ctx, id, c, value, policy)
}
func (m *mockSessions) TopChoices(ctx context.Context, id uuid.UUID, c domain.Category, action service.TopChoicesAction, policy string) (service.SessionView, error) {
	return m.topChoices(ctx, id, c, action, policy)
}
func (m *mockSessions) End(ctx context.Context, id uuid.UUID) error {
	return m.end(ctx, id)
}

type mockSuggestions struct {
	suggest func(ctx context.Context, c domain.Category, prefix string, p domain.PaginationParams) (service.SuggestionPage, error)
}

func (m *mockSuggestions) Suggest(ctx context.Context, c domain.Category, prefix string, p domain.PaginationParams) (service.SuggestionPage, error) {
	return m.suggest(ctx, c, prefix, p)
}

type mockSearch struct {
	preview func(ctx context.Context, req service.SearchRequest) (service.SearchPreview, error)
	search  func(ctx context.Context, req service.SearchRequest) (service.SearchResult, error)
}

func (m *mockSearch) Preview(ctx context.Context, req service.SearchRequest) (service.SearchPreview, error) {
	return m.preview(ctx, req)
}
func (m *mockSearch) Search(ctx context.Context, req service.SearchRequest) (service.SearchResult, error) {
	return m.search(ctx, req)
}

type mockSignup struct {
	saveDraft func(ctx context.Context, sessionID uuid.UUID, draft domain.AccountDraft) error
	checkAge  func(birth string) discovery.AgeCheck
	submit    func(ctx context.Context, sessionID uuid.UUID, profile domain.ProfileInput, policy string) (domain.RegistrationResult, error)
}

func (m *mockSignup) SaveAccountDraft(ctx context.Context, sessionID uuid.UUID, draft domain.AccountDraft) error {
	return m.saveDraft(ctx, sessionID, draft)
}
func (m *mockSignup) CheckAge(birth string) discovery.AgeCheck { return m.checkAge(birth) }
func (m *mockSignup) Submit(ctx context.Context, sessionID uuid.UUID, profile domain.ProfileInput, policy string) (domain.RegistrationResult, error) {
	return m.submit(ctx, sessionID, profile, policy)
}

// compile-time checks
var (
	_ handler.PlanServicer       = (*mockPlans)(nil)
	_ handler.PresenceServicer   = (*mockPresence)(nil)
	_ handler.ExportServicer     = (*mockExport)(nil)
	_ handler.SelectionServicer  = (*mockSessions)(nil)
	_ handler.SuggestionServicer = (*mockSuggestions)(nil)
	_ handler.SearchServicer     = (*mockSearch)(nil)
	_ handler.SignupServicer     = (*mockSignup)(nil)
)

// ---- helpers ---------------------------------------------------------------

// serve routes one request through a Server built on svc, the same way
// main.go mounts it.
func serve(t *testing.T, svc handler.Services, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.NewServer(svc, nil).Routes().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
