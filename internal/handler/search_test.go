package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/handler"
	"github.com/pkordes/travel-match/backend/internal/service"
)

func previewFixture() service.SearchPreview {
	return service.SearchPreview{
		Bucket: domain.PresenceBucket{Label: domain.LabelTraveling, Location: "Miami"},
		Query: discovery.Query{
			Location: "Miami",
			Label:    domain.LabelTraveling,
			Facets:   map[domain.Category][]string{domain.CategoryInterests: {"Film", "Music"}},
		},
		Readiness: discovery.Readiness{Policy: "traveler", Selected: 2, Required: 10, Shortfall: 8, State: discovery.StatePartiallySelected, Message: "select 8 more items"},
	}
}

func TestPreviewSearch_MapsRequest(t *testing.T) {
	userID, sessionID := uuid.New(), uuid.New()
	svc := &mockSearch{preview: func(_ context.Context, req service.SearchRequest) (service.SearchPreview, error) {
		assert.Equal(t, userID, req.UserID)
		assert.Equal(t, sessionID, req.SessionID)
		assert.Equal(t, domain.BucketCurrent, req.Kind)
		require.NotNil(t, req.Overrides.DateRange)
		assert.Equal(t, domain.MustParseDate("2025-04-01"), req.Overrides.DateRange.Start)
		assert.True(t, req.Overrides.DateRange.End.IsZero())
		require.NotNil(t, req.Overrides.AgeMax)
		assert.Equal(t, 30, *req.Overrides.AgeMax)
		return previewFixture(), nil
	}}

	rec := serve(t, handler.Services{Search: svc}, http.MethodPost, "/search/preview", map[string]any{
		"userId":    userID,
		"sessionId": sessionID,
		"startDate": "2025-04-01",
		"ageMax":    30,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.SearchPreview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Miami", resp.Query.Location)
	assert.Equal(t, []string{"Film", "Music"}, resp.Params["interests"])
	assert.Equal(t, "select 8 more items", resp.Readiness.Message)
}

func TestRunSearch_200(t *testing.T) {
	svc := &mockSearch{search: func(context.Context, service.SearchRequest) (service.SearchResult, error) {
		return service.SearchResult{
			SearchPreview: previewFixture(),
			Candidates:    []domain.Candidate{{ID: "u2", Username: "bea"}, {ID: "u1", Username: "ana"}},
		}, nil
	}}

	rec := serve(t, handler.Services{Search: svc}, http.MethodPost, "/search", map[string]any{"location": "Miami"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, "u2", resp.Candidates[0].ID)
}

func TestRunSearch_502_Transport(t *testing.T) {
	svc := &mockSearch{search: func(context.Context, service.SearchRequest) (service.SearchResult, error) {
		return service.SearchResult{}, fmt.Errorf("directory.HTTPSearcher.Search: %w: timeout", domain.ErrTransport)
	}}

	rec := serve(t, handler.Services{Search: svc}, http.MethodPost, "/search", map[string]any{"location": "Miami"})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "upstream_unavailable", detail.Code)
	assert.NotContains(t, detail.Message, "timeout")
}

func TestRunSearch_422_Validation(t *testing.T) {
	svc := &mockSearch{search: func(context.Context, service.SearchRequest) (service.SearchResult, error) {
		return service.SearchResult{}, fmt.Errorf("%w: enter a location to search", domain.ErrValidation)
	}}

	rec := serve(t, handler.Services{Search: svc}, http.MethodPost, "/search", map[string]any{})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "enter a location to search", decodeError(t, rec).Message)
}

func TestRunSearch_422_BadKind(t *testing.T) {
	rec := serve(t, handler.Services{Search: &mockSearch{}}, http.MethodPost, "/search", map[string]any{"kind": "nearby"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRunSearch_422_EndDateWithoutStart(t *testing.T) {
	rec := serve(t, handler.Services{Search: &mockSearch{}}, http.MethodPost, "/search", map[string]any{
		"kind":    "current",
		"userId":  uuid.New().String(),
		"endDate": "2025-03-15",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "startDate is required with endDate")
}
