package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
)

// Searcher executes a discovery query against the user directory.
// Implementations wrap transport problems in domain.ErrTransport.
type Searcher interface {
	Search(ctx context.Context, q discovery.Query) ([]domain.Candidate, error)
}

// BucketResolver resolves a stored user's presence bucket.
// *PresenceService satisfies it.
type BucketResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID, kind domain.BucketKind, today *domain.Date) (domain.PresenceBucket, error)
}

// SearchRequest describes one search. Every field is optional except that
// a location must come from somewhere: UserID's bucket or Overrides.Location.
type SearchRequest struct {
	// UserID is the searcher; their bucket supplies the default location.
	UserID uuid.UUID
	Kind   domain.BucketKind
	Today  *domain.Date
	// SessionID names the selection session whose facets filter the search.
	SessionID uuid.UUID
	// Policy names the readiness preset reported alongside the query.
	Policy    string
	Overrides discovery.Overrides
}

// SearchPreview is the built query and the facts it was built from.
type SearchPreview struct {
	Bucket    domain.PresenceBucket
	Query     discovery.Query
	Readiness discovery.Readiness
	// Invalid holds the reason the query cannot run yet, if any.
	Invalid string
}

// SearchResult is a preview plus the directory's ordered candidates.
type SearchResult struct {
	SearchPreview
	Candidates []domain.Candidate
}

// SearchService builds and executes discovery queries.
type SearchService struct {
	buckets  BucketResolver
	sessions SessionStore
	searcher Searcher
}

// NewSearchService constructs a SearchService.
func NewSearchService(buckets BucketResolver, sessions SessionStore, searcher Searcher) *SearchService {
	return &SearchService{buckets: buckets, sessions: sessions, searcher: searcher}
}

// Preview builds the query for req. Readiness is reported but never blocks
// the preview, and an unrunnable query is described rather than rejected.
func (s *SearchService) Preview(ctx context.Context, req SearchRequest) (SearchPreview, error) {
	p, err := resolvePolicy(req.Policy, "")
	if err != nil {
		return SearchPreview{}, err
	}

	var bucket domain.PresenceBucket
	if req.UserID != uuid.Nil {
		bucket, err = s.buckets.Resolve(ctx, req.UserID, req.Kind, req.Today)
		if err != nil {
			return SearchPreview{}, fmt.Errorf("service.SearchService.Preview: %w", err)
		}
	}

	sel := facet.New()
	if req.SessionID != uuid.Nil {
		sess, err := s.sessions.Get(ctx, req.SessionID)
		if err != nil {
			return SearchPreview{}, fmt.Errorf("service.SearchService.Preview: %w", err)
		}
		sel = facet.FromSnapshot(sess.Selection)
	}

	q := discovery.Build(bucket, sel, req.Overrides)
	preview := SearchPreview{
		Bucket:    bucket,
		Query:     q,
		Readiness: discovery.ValidateMinimumSelections(sel, p),
	}
	if err := q.Validate(); err != nil {
		preview.Invalid = domain.ValidationMessage(err)
	}
	return preview, nil
}

// Search builds the query, validates it and runs it. A failed search leaves
// the session untouched so the user can retry.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	preview, err := s.Preview(ctx, req)
	if err != nil {
		return SearchResult{}, err
	}
	if err := preview.Query.Validate(); err != nil {
		return SearchResult{}, err
	}

	candidates, err := s.searcher.Search(ctx, preview.Query)
	if err != nil {
		return SearchResult{}, fmt.Errorf("service.SearchService.Search: %w", err)
	}
	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	return SearchResult{SearchPreview: preview, Candidates: candidates}, nil
}
