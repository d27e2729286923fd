package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
)

// DefaultCollection is the Typesense collection profiles are indexed in.
const DefaultCollection = "profiles"

const defaultPerPage = domain.DefaultPageLimit

// TypesenseSearcher runs discovery queries against a Typesense collection of
// profile documents. Documents carry id, username, name, user_type, location,
// age and one string[] field per facet category, named like the category.
// Date ranges are not indexed, so they do not narrow Typesense results.
type TypesenseSearcher struct {
	client     *typesense.Client
	collection string
	logger     *slog.Logger
}

// NewTypesenseSearcher connects to the Typesense server at serverURL.
func NewTypesenseSearcher(serverURL, apiKey, collection string, logger *slog.Logger) *TypesenseSearcher {
	client := typesense.NewClient(
		typesense.WithServer(serverURL),
		typesense.WithAPIKey(apiKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)
	if collection == "" {
		collection = DefaultCollection
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TypesenseSearcher{client: client, collection: collection, logger: logger}
}

// Search translates q into a filter_by expression and returns the matching
// profiles in Typesense's ranking order.
func (s *TypesenseSearcher) Search(ctx context.Context, q discovery.Query) ([]domain.Candidate, error) {
	params := &api.SearchCollectionParams{
		Q:        pointer.String("*"),
		QueryBy:  pointer.String("username,name"),
		FilterBy: pointer.String(FilterBy(q)),
		Page:     pointer.Int(max(q.Page, 1)),
		PerPage:  pointer.Int(defaultPerPage),
	}
	if q.Limit > 0 {
		params.PerPage = pointer.Int(q.Limit)
	}

	result, err := s.client.Collection(s.collection).Documents().Search(ctx, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "typesense search failed", "collection", s.collection, "error", err)
		return nil, fmt.Errorf("directory.TypesenseSearcher.Search: %w: %w", domain.ErrTransport, err)
	}

	candidates := []domain.Candidate{}
	if result.Hits == nil {
		return candidates, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		candidates = append(candidates, candidateFromDocument(*hit.Document))
	}
	return candidates, nil
}

// FilterBy renders q as a Typesense filter_by expression. Every clause is
// ANDed; values inside one category match if any of them is present.
func FilterBy(q discovery.Query) string {
	clauses := []string{"location:=" + quote(q.Location)}
	for _, c := range domain.Categories {
		values := q.Set(c)
		if len(values) == 0 {
			continue
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = quote(v)
		}
		clauses = append(clauses, fmt.Sprintf("%s:=[%s]", c, strings.Join(quoted, ",")))
	}
	if q.AgeMin != nil {
		clauses = append(clauses, fmt.Sprintf("age:>=%d", *q.AgeMin))
	}
	if q.AgeMax != nil {
		clauses = append(clauses, fmt.Sprintf("age:<=%d", *q.AgeMax))
	}
	return strings.Join(clauses, " && ")
}

// quote wraps v in backticks, Typesense's escape for values containing
// spaces, commas or operators. Backticks inside v are dropped; custom entries
// are checked for them upstream by domain.CheckCustomText.
func quote(v string) string {
	return "`" + strings.ReplaceAll(v, "`", "") + "`"
}

func candidateFromDocument(doc map[string]interface{}) domain.Candidate {
	c := domain.Candidate{
		ID:         stringField(doc, "id"),
		Username:   stringField(doc, "username"),
		Name:       stringField(doc, "name"),
		UserType:   domain.UserType(stringField(doc, "user_type")),
		Location:   stringField(doc, "location"),
		Interests:  stringsField(doc, domain.CategoryInterests.String()),
		Activities: stringsField(doc, domain.CategoryActivities.String()),
		Languages:  stringsField(doc, domain.CategoryLanguages.String()),
	}
	if age, ok := doc["age"].(float64); ok {
		c.Age = int(age)
	}
	return c
}

func stringField(doc map[string]interface{}, key string) string {
	s, _ := doc[key].(string)
	return s
}

func stringsField(doc map[string]interface{}, key string) []string {
	raw, ok := doc[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
