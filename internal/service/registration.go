package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
	"github.com/pkordes/travel-match/backend/internal/session"
)

// FunnelStore holds the signup funnel's per-session state.
// *session.Store satisfies it.
type FunnelStore interface {
	Get(ctx context.Context, id uuid.UUID) (session.Session, error)
	SaveDraft(ctx context.Context, id uuid.UUID, draft domain.AccountDraft) error
	Draft(ctx context.Context, id uuid.UUID) (domain.AccountDraft, error)
	Finish(ctx context.Context, id uuid.UUID) error
}

// AccountRegistrar creates accounts in the account subsystem.
// Rejections wrap domain.ErrValidation; outages wrap domain.ErrTransport.
type AccountRegistrar interface {
	Register(ctx context.Context, reg domain.Registration) (domain.RegistrationResult, error)
}

// RegistrationService runs the signup funnel's final step.
type RegistrationService struct {
	funnel   FunnelStore
	accounts AccountRegistrar
	today    func() domain.Date
	logger   *slog.Logger
}

// NewRegistrationService constructs a RegistrationService. today supplies the
// calendar date ages are computed on.
func NewRegistrationService(funnel FunnelStore, accounts AccountRegistrar, today func() domain.Date, logger *slog.Logger) *RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationService{funnel: funnel, accounts: accounts, today: today, logger: logger}
}

// SaveAccountDraft stores the account step for sessionID.
func (s *RegistrationService) SaveAccountDraft(ctx context.Context, sessionID uuid.UUID, draft domain.AccountDraft) error {
	draft.Email = strings.TrimSpace(draft.Email)
	draft.Username = strings.TrimSpace(draft.Username)
	draft.Name = strings.TrimSpace(draft.Name)
	switch {
	case draft.Email == "" || !strings.Contains(draft.Email, "@"):
		return fmt.Errorf("%w: enter a valid email", domain.ErrValidation)
	case draft.Username == "":
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	case draft.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case draft.Password == "":
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if err := s.funnel.SaveDraft(ctx, sessionID, draft); err != nil {
		return fmt.Errorf("service.RegistrationService.SaveAccountDraft: %w", err)
	}
	return nil
}

// CheckAge evaluates a birth date against today.
func (s *RegistrationService) CheckAge(birth string) discovery.AgeCheck {
	return discovery.CheckAge(birth, s.today())
}

// Submit validates the whole signup and posts it to the account subsystem.
// The draft and session are deleted only after the account is created; any
// failure leaves them in place so the user can correct and resubmit.
func (s *RegistrationService) Submit(ctx context.Context, sessionID uuid.UUID, profile domain.ProfileInput, policy string) (domain.RegistrationResult, error) {
	p, err := resolvePolicy(policy, profile.UserType)
	if err != nil {
		return domain.RegistrationResult{}, err
	}

	draft, err := s.funnel.Draft(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.RegistrationResult{}, fmt.Errorf("service.RegistrationService.Submit: %w", err)
	}

	sel := facet.New()
	sess, err := s.funnel.Get(ctx, sessionID)
	switch {
	case err == nil:
		sel = facet.FromSnapshot(sess.Selection)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.RegistrationResult{}, fmt.Errorf("service.RegistrationService.Submit: %w", err)
	}

	reg, err := discovery.BuildRegistration(draft, profile, sel, p, s.today())
	if err != nil {
		return domain.RegistrationResult{}, err
	}

	result, err := s.accounts.Register(ctx, reg)
	if err != nil {
		return domain.RegistrationResult{}, fmt.Errorf("service.RegistrationService.Submit: %w", err)
	}

	if err := s.funnel.Finish(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "signup cleanup failed",
			"session_id", sessionID,
			"error", err,
		)
	}
	return result, nil
}
