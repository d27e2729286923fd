package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/maypok86/otter/v2"

	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/repo"
)

// SuggestionPage is one page of popular custom entries.
type SuggestionPage struct {
	Entries []domain.CustomEntry
	Total   int64
}

// SuggestionService records custom facet values and suggests popular ones.
// Suggestion pages are cached briefly; recording a value drops the cache so a
// user sees their own entry on the next lookup.
type SuggestionService struct {
	entries repo.CustomEntryRepo
	cache   *otter.Cache[string, SuggestionPage]
	logger  *slog.Logger
}

// NewSuggestionService constructs a SuggestionService. ttl <= 0 disables caching.
func NewSuggestionService(entries repo.CustomEntryRepo, ttl time.Duration, logger *slog.Logger) *SuggestionService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SuggestionService{entries: entries, logger: logger}
	if ttl > 0 {
		s.cache = otter.Must(&otter.Options[string, SuggestionPage]{
			MaximumSize:      10_000,
			InitialCapacity:  256,
			ExpiryCalculator: otter.ExpiryWriting[string, SuggestionPage](ttl),
		})
	}
	return s
}

// Record stores a custom value for c, bumping its use count when the slug is
// already known. Values in c's canonical vocabulary are not recorded.
func (s *SuggestionService) Record(ctx context.Context, c domain.Category, value string) (domain.CustomEntry, error) {
	if !c.Valid() {
		return domain.CustomEntry{}, fmt.Errorf("%w: unknown category", domain.ErrValidation)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.CustomEntry{}, fmt.Errorf("%w: value is required", domain.ErrValidation)
	}
	if c.Canonical(value) {
		return domain.CustomEntry{}, fmt.Errorf("%w: %q is already a listed choice", domain.ErrValidation, value)
	}
	if err := domain.CheckCustomText(value); err != nil {
		return domain.CustomEntry{}, err
	}
	slug := slugify(value)
	if slug == "" {
		return domain.CustomEntry{}, fmt.Errorf("%w: value must contain letters or digits", domain.ErrValidation)
	}

	entry, err := s.entries.Record(ctx, c, value, slug)
	if err != nil {
		return domain.CustomEntry{}, fmt.Errorf("service.SuggestionService.Record: %w", err)
	}
	if s.cache != nil {
		s.cache.InvalidateAll()
	}
	return entry, nil
}

// Suggest lists custom entries in c whose slug starts with the slug of prefix,
// most used first.
func (s *SuggestionService) Suggest(ctx context.Context, c domain.Category, prefix string, p domain.PaginationParams) (SuggestionPage, error) {
	if !c.Valid() {
		return SuggestionPage{}, fmt.Errorf("%w: unknown category", domain.ErrValidation)
	}
	slugPrefix := slugify(prefix)
	key := fmt.Sprintf("%s|%s|%d|%d", c, slugPrefix, p.Page, p.Limit)

	if s.cache != nil {
		if page, ok := s.cache.GetIfPresent(key); ok {
			s.logger.DebugContext(ctx, "suggestion cache hit", "key", key)
			return page, nil
		}
	}

	entries, total, err := s.entries.ListPaged(ctx, c, slugPrefix, p)
	if err != nil {
		return SuggestionPage{}, fmt.Errorf("service.SuggestionService.Suggest: %w", err)
	}
	if entries == nil {
		entries = []domain.CustomEntry{}
	}
	page := SuggestionPage{Entries: entries, Total: total}
	if s.cache != nil {
		s.cache.Set(key, page)
	}
	return page, nil
}

// slugify lowercases s and collapses every run of characters that are not
// letters or digits into a single hyphen, trimming hyphens at both ends.
// "Rock  Climbing!" becomes "rock-climbing".
func slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
