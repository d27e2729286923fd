package handler

import (
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// apiDate converts a calendar date to the wire date type.
func apiDate(d domain.Date) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

// apiDatePtr is apiDate for optional dates; zero and nil map to nil.
func apiDatePtr(d *domain.Date) *openapi_types.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	out := apiDate(*d)
	return &out
}

// fromAPIDate converts a wire date; the zero time maps to the zero Date
// ("not provided").
func fromAPIDate(d openapi_types.Date) domain.Date {
	if d.Time.IsZero() {
		return domain.Date{}
	}
	return domain.DateOf(d.Time)
}

// fromAPIDatePtr is fromAPIDate for optional dates.
func fromAPIDatePtr(d *openapi_types.Date) *domain.Date {
	if d == nil || d.Time.IsZero() {
		return nil
	}
	out := fromAPIDate(*d)
	return &out
}

// queryParams holds the optional query parameters shared by several routes.
type queryParams struct {
	Page   *int
	Limit  *int
	Today  *openapi_types.Date
	Policy *string
	Kind   *string
	Format *string
}

// bindQuery binds the named optional query parameters with the OpenAPI
// "form" style. It writes a 422 and returns false on a malformed value.
func bindQuery(w http.ResponseWriter, r *http.Request, names ...string) (queryParams, bool) {
	var p queryParams
	q := r.URL.Query()
	for _, name := range names {
		var dest any
		switch name {
		case "page":
			dest = &p.Page
		case "limit":
			dest = &p.Limit
		case "today":
			dest = &p.Today
		case "policy":
			dest = &p.Policy
		case "kind":
			dest = &p.Kind
		case "format":
			dest = &p.Format
		default:
			continue
		}
		if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
			requestError(w, "invalid query parameter "+name)
			return queryParams{}, false
		}
	}
	return p, true
}

func (p queryParams) policy() string {
	if p.Policy == nil {
		return ""
	}
	return *p.Policy
}

func (p queryParams) today() *domain.Date {
	return fromAPIDatePtr(p.Today)
}

func (p queryParams) pagination() domain.PaginationParams {
	return domain.NewPaginationParams(p.Page, p.Limit)
}

// timestamp renders instants consistently across responses.
func timestamp(t time.Time) time.Time { return t.UTC() }
