// Package handler implements the HTTP API of the matching service.
// All handlers are methods on Server. They are split into files by resource
// (sessions, plans, search, signup) but share the Server struct so they can
// reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/service"
	"github.com/pkordes/travel-match/backend/spec"
)

// The interfaces below are declared by their consumer so handler tests can
// inject function-field mocks instead of real services.

// PlanServicer manages a user's travel plans.
type PlanServicer interface {
	Create(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)
	GetByID(ctx context.Context, userID, planID uuid.UUID) (domain.TravelPlan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TravelPlan, error)
	Update(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)
	Close(ctx context.Context, userID, planID uuid.UUID, end domain.Date) (domain.TravelPlan, error)
	Delete(ctx context.Context, userID, planID uuid.UUID) error
}

// PresenceServicer resolves a stored user's presence bucket.
type PresenceServicer interface {
	Resolve(ctx context.Context, userID uuid.UUID, kind domain.BucketKind, today *domain.Date) (domain.PresenceBucket, error)
}

// ExportServicer flattens a user's itinerary.
type ExportServicer interface {
	Export(ctx context.Context, userID uuid.UUID, today *domain.Date) ([]domain.PlanExportRow, error)
}

// SelectionServicer drives facet selection sessions.
type SelectionServicer interface {
	Start(ctx context.Context, policy string) (service.SessionView, error)
	Get(ctx context.Context, id uuid.UUID, policy string) (service.SessionView, error)
	Toggle(ctx context.Context, id uuid.UUID, c domain.Category, value, policy string) (service.SessionView, error)
	AddCustom(ctx context.Context, id uuid.UUID, c domain.Category, text, policy string) (service.SessionView, bool, error)
	Remove(ctx context.Context, id uuid.UUID, c domain.Category, value, policy string) (service.SessionView, error)
	TopChoices(ctx context.Context, id uuid.UUID, c domain.Category, action service.TopChoicesAction, policy string) (service.SessionView, error)
	End(ctx context.Context, id uuid.UUID) error
}

// SuggestionServicer lists popular custom entries.
type SuggestionServicer interface {
	Suggest(ctx context.Context, c domain.Category, prefix string, p domain.PaginationParams) (service.SuggestionPage, error)
}

// SearchServicer builds and runs discovery queries.
type SearchServicer interface {
	Preview(ctx context.Context, req service.SearchRequest) (service.SearchPreview, error)
	Search(ctx context.Context, req service.SearchRequest) (service.SearchResult, error)
}

// SignupServicer runs the signup funnel.
type SignupServicer interface {
	SaveAccountDraft(ctx context.Context, sessionID uuid.UUID, draft domain.AccountDraft) error
	CheckAge(birth string) discovery.AgeCheck
	Submit(ctx context.Context, sessionID uuid.UUID, profile domain.ProfileInput, policy string) (domain.RegistrationResult, error)
}

// Services bundles the Server's dependencies. Nil services leave their
// routes unmounted.
type Services struct {
	Plans       PlanServicer
	Presence    PresenceServicer
	Export      ExportServicer
	Sessions    SelectionServicer
	Suggestions SuggestionServicer
	Search      SearchServicer
	Signup      SignupServicer
}

// Server holds the dependencies shared by every handler.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer constructs the Server.
func NewServer(svc Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{svc: svc, logger: logger}
}

// Routes returns the API router. Middleware is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Get("/vocabulary", s.GetVocabulary)

	if s.svc.Sessions != nil {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.StartSession)
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", s.GetSession)
				r.Delete("/", s.EndSession)
				r.Post("/toggle", s.ToggleValue)
				r.Post("/custom", s.AddCustomValue)
				r.Post("/remove", s.RemoveValue)
				r.Post("/top-choices", s.ApplyTopChoices)
			})
		})
	}
	if s.svc.Suggestions != nil {
		r.Get("/suggestions", s.ListSuggestions)
	}

	r.Route("/users/{userId}", func(r chi.Router) {
		if s.svc.Plans != nil {
			r.Get("/plans", s.ListPlans)
			r.Post("/plans", s.CreatePlan)
			r.Get("/plans/{planId}", s.GetPlan)
			r.Put("/plans/{planId}", s.UpdatePlan)
			r.Delete("/plans/{planId}", s.DeletePlan)
			r.Post("/plans/{planId}/close", s.ClosePlan)
		}
		if s.svc.Export != nil {
			r.Get("/plans/export", s.ExportPlans)
		}
		if s.svc.Presence != nil {
			r.Get("/presence", s.GetPresence)
		}
	})

	if s.svc.Search != nil {
		r.Post("/search/preview", s.PreviewSearch)
		r.Post("/search", s.RunSearch)
	}

	if s.svc.Signup != nil {
		r.Route("/signup", func(r chi.Router) {
			r.Post("/age-check", s.CheckAge)
			r.Put("/{sessionId}/account", s.SaveAccount)
			r.Post("/{sessionId}/submit", s.SubmitSignup)
		})
	}

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

// pathUUID parses the named chi URL parameter as a UUID, writing a 422 on
// failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		requestError(w, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
