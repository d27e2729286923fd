package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
	"github.com/pkordes/travel-match/backend/internal/session"
)

// SessionStore is the persistence the selection and registration flows need.
// *session.Store satisfies it.
type SessionStore interface {
	Create(ctx context.Context) (session.Session, error)
	Get(ctx context.Context, id uuid.UUID) (session.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*facet.Selection) error) (session.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomRecorder records accepted custom entries for suggestions.
// *SuggestionService satisfies it.
type CustomRecorder interface {
	Record(ctx context.Context, c domain.Category, value string) (domain.CustomEntry, error)
}

// TopChoicesAction selects or clears a category's top-choices group.
type TopChoicesAction string

const (
	TopChoicesSelect TopChoicesAction = "select"
	TopChoicesClear  TopChoicesAction = "clear"
)

// SessionView is a session together with its readiness under a policy.
type SessionView struct {
	ID        uuid.UUID
	Selection facet.Snapshot
	Readiness discovery.Readiness
	UpdatedAt time.Time
}

// SelectionService drives facet selection sessions.
type SelectionService struct {
	store    SessionStore
	recorder CustomRecorder
	logger   *slog.Logger
}

// NewSelectionService constructs a SelectionService. recorder may be nil.
func NewSelectionService(store SessionStore, recorder CustomRecorder, logger *slog.Logger) *SelectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SelectionService{store: store, recorder: recorder, logger: logger}
}

// Start opens a new empty session.
func (s *SelectionService) Start(ctx context.Context, policy string) (SessionView, error) {
	p, err := resolvePolicy(policy, "")
	if err != nil {
		return SessionView{}, err
	}
	sess, err := s.store.Create(ctx)
	if err != nil {
		return SessionView{}, fmt.Errorf("service.SelectionService.Start: %w", err)
	}
	return viewOf(sess, p), nil
}

// Get returns the session and its readiness under the named policy.
func (s *SelectionService) Get(ctx context.Context, id uuid.UUID, policy string) (SessionView, error) {
	p, err := resolvePolicy(policy, "")
	if err != nil {
		return SessionView{}, err
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return SessionView{}, fmt.Errorf("service.SelectionService.Get: %w", err)
	}
	return viewOf(sess, p), nil
}

// Toggle flips value in category c.
func (s *SelectionService) Toggle(ctx context.Context, id uuid.UUID, c domain.Category, value, policy string) (SessionView, error) {
	return s.mutate(ctx, "Toggle", id, c, policy, func(sel *facet.Selection) error {
		sel.Toggle(c, value)
		return nil
	})
}

// AddCustom adds free text to c. It reports whether the value was new; a
// newly added value outside the vocabulary is recorded for suggestions.
// Recording failures are logged and never fail the selection.
func (s *SelectionService) AddCustom(ctx context.Context, id uuid.UUID, c domain.Category, text, policy string) (SessionView, bool, error) {
	if err := domain.CheckCustomText(text); err != nil {
		return SessionView{}, false, err
	}
	var added bool
	view, err := s.mutate(ctx, "AddCustom", id, c, policy, func(sel *facet.Selection) error {
		added = sel.AddCustom(c, text, nil)
		return nil
	})
	if err != nil {
		return SessionView{}, false, err
	}

	if added && s.recorder != nil {
		if value := strings.TrimSpace(text); !c.Canonical(value) {
			if _, err := s.recorder.Record(ctx, c, value); err != nil {
				s.logger.WarnContext(ctx, "record custom entry failed",
					"category", c.String(),
					"error", err,
				)
			}
		}
	}
	return view, added, nil
}

// Remove deletes value from c.
func (s *SelectionService) Remove(ctx context.Context, id uuid.UUID, c domain.Category, value, policy string) (SessionView, error) {
	return s.mutate(ctx, "Remove", id, c, policy, func(sel *facet.Selection) error {
		sel.Remove(c, value)
		return nil
	})
}

// TopChoices selects or clears every top choice of c.
func (s *SelectionService) TopChoices(ctx context.Context, id uuid.UUID, c domain.Category, action TopChoicesAction, policy string) (SessionView, error) {
	if c.Valid() && len(c.TopChoices()) == 0 {
		return SessionView{}, fmt.Errorf("%w: %s has no top choices", domain.ErrValidation, c)
	}
	return s.mutate(ctx, "TopChoices", id, c, policy, func(sel *facet.Selection) error {
		switch action {
		case TopChoicesSelect:
			sel.SelectAll(c, c.TopChoices())
		case TopChoicesClear:
			sel.ClearAll(c, c.TopChoices())
		default:
			return fmt.Errorf("%w: action must be select or clear", domain.ErrValidation)
		}
		return nil
	})
}

// End deletes the session.
func (s *SelectionService) End(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SelectionService.End: %w", err)
	}
	return nil
}

func (s *SelectionService) mutate(ctx context.Context, op string, id uuid.UUID, c domain.Category, policy string, fn func(*facet.Selection) error) (SessionView, error) {
	if !c.Valid() {
		return SessionView{}, fmt.Errorf("%w: unknown category", domain.ErrValidation)
	}
	p, err := resolvePolicy(policy, "")
	if err != nil {
		return SessionView{}, err
	}
	sess, err := s.store.Update(ctx, id, fn)
	if err != nil {
		return SessionView{}, fmt.Errorf("service.SelectionService.%s: %w", op, err)
	}
	return viewOf(sess, p), nil
}

func viewOf(sess session.Session, p discovery.Policy) SessionView {
	return SessionView{
		ID:        sess.ID,
		Selection: sess.Selection,
		Readiness: discovery.ValidateMinimumSelections(facet.FromSnapshot(sess.Selection), p),
		UpdatedAt: sess.UpdatedAt,
	}
}

// resolvePolicy looks up a preset by name. A blank name falls back to the
// default for userType, or the traveler preset when userType is blank too.
func resolvePolicy(name string, userType domain.UserType) (discovery.Policy, error) {
	if name == "" {
		if userType == "" {
			return discovery.PolicyTraveler, nil
		}
		return discovery.DefaultPolicy(userType), nil
	}
	p, ok := discovery.PolicyByName(name)
	if !ok {
		return discovery.Policy{}, fmt.Errorf("%w: unknown policy %q", domain.ErrValidation, name)
	}
	return p, nil
}
