// Package discovery turns a presence bucket and a facet selection into a
// normalized search request for the directory, and decides when a profile has
// enough selections to be match-ready.
//
// Everything here is pure: no I/O, no clock reads. Callers pass "today" in.
package discovery

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
)

// DateRange limits a search to users present during the given days.
// End is optional; a zero End means "from Start onward".
type DateRange struct {
	Start domain.Date `json:"start"`
	End   domain.Date `json:"end,omitzero"`
}

// Overrides are the explicit knobs a searcher sets on top of the resolved
// bucket and the facet selection.
type Overrides struct {
	// Location replaces the bucket location when non-blank.
	Location  string
	DateRange *DateRange
	AgeMin    *int
	AgeMax    *int
	Page      domain.PaginationParams
}

// Query is the immutable request sent to the directory search endpoint.
// Facets holds interest-style categories and Filters the demographic ones;
// both contain only categories the user touched, with values sorted so the
// request does not depend on selection order.
type Query struct {
	Location  string                       `json:"location"`
	Label     domain.BucketLabel           `json:"label,omitempty"`
	DateRange *DateRange                   `json:"dateRange,omitempty"`
	Facets    map[domain.Category][]string `json:"facets,omitempty"`
	Filters   map[domain.Category][]string `json:"filters,omitempty"`
	AgeMin    *int                         `json:"ageMin,omitempty"`
	AgeMax    *int                         `json:"ageMax,omitempty"`
	Page      int                          `json:"page,omitempty"`
	Limit     int                          `json:"limit,omitempty"`
}

// Build assembles a Query. It never fails and never consults readiness: a
// query can always be built for preview. Call Validate before executing it.
func Build(bucket domain.PresenceBucket, sel *facet.Selection, ov Overrides) Query {
	q := Query{
		Location: bucket.Location,
		Label:    bucket.Label,
		AgeMin:   ov.AgeMin,
		AgeMax:   ov.AgeMax,
		Page:     ov.Page.Page,
		Limit:    ov.Page.Limit,
	}
	if loc := strings.TrimSpace(ov.Location); loc != "" {
		q.Location = loc
		q.Label = ""
	}
	if ov.DateRange != nil && !ov.DateRange.Start.IsZero() {
		dr := *ov.DateRange
		q.DateRange = &dr
	}

	if sel == nil {
		return q
	}
	for c, values := range sel.Snapshot() {
		set := MergeValues(values)
		if len(set) == 0 {
			continue
		}
		sort.Strings(set)
		if c.Demographic() {
			if q.Filters == nil {
				q.Filters = make(map[domain.Category][]string)
			}
			q.Filters[c] = set
			continue
		}
		if q.Facets == nil {
			q.Facets = make(map[domain.Category][]string)
		}
		q.Facets[c] = set
	}
	return q
}

// Validate reports whether q can be executed. The returned error wraps
// domain.ErrValidation and carries a user-facing remediation.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Location) == "" {
		return fmt.Errorf("%w: enter a location to search", domain.ErrValidation)
	}
	if q.DateRange != nil && !q.DateRange.End.IsZero() && q.DateRange.End.Before(q.DateRange.Start) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	for _, age := range []*int{q.AgeMin, q.AgeMax} {
		if age != nil && (*age < MinAge || *age > MaxAge) {
			return fmt.Errorf("%w: age filter must be between %d and %d", domain.ErrValidation, MinAge, MaxAge)
		}
	}
	if q.AgeMin != nil && q.AgeMax != nil && *q.AgeMin > *q.AgeMax {
		return fmt.Errorf("%w: minimum age must not exceed maximum age", domain.ErrValidation)
	}
	return nil
}

// Values encodes q as the directory's named parameters. Each category set is
// sent as a repeated key, one value per occurrence, so free text containing
// commas survives intact. Categories the user never touched have no key at
// all; an empty list is never sent.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("location", q.Location)
	if q.DateRange != nil {
		v.Set("startDate", q.DateRange.Start.String())
		if !q.DateRange.End.IsZero() {
			v.Set("endDate", q.DateRange.End.String())
		}
	}
	for _, m := range []map[domain.Category][]string{q.Facets, q.Filters} {
		for c, set := range m {
			if len(set) == 0 {
				continue
			}
			for _, value := range set {
				v.Add(c.String(), value)
			}
		}
	}
	if q.AgeMin != nil {
		v.Set("ageMin", strconv.Itoa(*q.AgeMin))
	}
	if q.AgeMax != nil {
		v.Set("ageMax", strconv.Itoa(*q.AgeMax))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Set returns the values of c in q, whether c is a facet or a filter.
func (q Query) Set(c domain.Category) []string {
	if c.Demographic() {
		return q.Filters[c]
	}
	return q.Facets[c]
}

// MergeValues trims every value, drops blanks, and de-duplicates across all
// lists keeping the first occurrence. It is how custom free-text entries are
// folded into a category's canonical list.
func MergeValues(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
