package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

// CreateResult is the provisioned profile and what happened upstream.
type CreateResult struct {
	Profile          *domain.Profile
	AuthUserCreated  bool
	WelcomeEmailSent bool
}

// List returns every profile, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("users.List: %w", err)
	}
	return profiles, nil
}

// Create provisions a user. An existing upstream user with the same e-mail is
// reused; otherwise one is created and deleted again if the profile cannot be
// stored. The welcome e-mail is best effort.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := in.profile()

	switch _, err := s.profiles.GetByEmail(ctx, p.Email); {
	case err == nil:
		return nil, fmt.Errorf("users.Create: profile %s: %w", p.Email, domain.ErrAlreadyExists)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("users.Create: %w", err)
	}

	if s.auth == nil {
		return nil, fmt.Errorf("users.Create: auth admin: %w", domain.ErrNotConfigured)
	}

	res := &CreateResult{}

	authUser, err := s.auth.FindUserByEmail(ctx, p.Email)
	switch {
	case err == nil:
		s.log.InfoContext(ctx, "reusing existing auth user", slog.String("user_id", authUser.ID.String()))
	case errors.Is(err, domain.ErrNotFound):
		authUser, err = s.auth.CreateUser(ctx, p.Email, in.metadata())
		if err != nil {
			return nil, fmt.Errorf("users.Create: %w", err)
		}
		res.AuthUserCreated = true
	default:
		return nil, fmt.Errorf("users.Create: %w", err)
	}

	p.ID = authUser.ID
	stored, err := s.storeProfile(ctx, p)
	if err != nil {
		if res.AuthUserCreated {
			s.rollbackAuthUser(ctx, p)
		}
		return nil, fmt.Errorf("users.Create: %w", err)
	}
	res.Profile = stored

	if !in.SkipWelcomeEmail {
		res.WelcomeEmailSent = s.sendWelcome(ctx, stored)
	}

	s.log.InfoContext(ctx, "user provisioned",
		slog.String("user_id", stored.ID.String()),
		slog.Bool("auth_user_created", res.AuthUserCreated),
		slog.Bool("welcome_email_sent", res.WelcomeEmailSent),
	)
	return res, nil
}

// storeProfile creates the profile. A row with the same id may already have
// been created by a database trigger on the auth users table; that row is used.
func (s *Service) storeProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	stored, err := s.profiles.Create(ctx, p)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, err
	}
	existing, getErr := s.profiles.GetByID(ctx, p.ID)
	if getErr != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) rollbackAuthUser(ctx context.Context, p *domain.Profile) {
	ctx = context.WithoutCancel(ctx)
	if err := s.auth.DeleteUser(ctx, p.ID); err != nil {
		s.log.ErrorContext(ctx, "delete orphaned auth user failed",
			slog.String("user_id", p.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	s.log.WarnContext(ctx, "auth user deleted after profile failure", slog.String("user_id", p.ID.String()))
}

func (s *Service) sendWelcome(ctx context.Context, p *domain.Profile) bool {
	if s.welcome == nil {
		return false
	}
	if err := s.welcome.SendWelcome(ctx, p.Email); err != nil {
		s.metrics.WelcomeEmail(false)
		s.log.WarnContext(ctx, "welcome e-mail failed",
			slog.String("user_id", p.ID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
	s.metrics.WelcomeEmail(true)
	if err := s.profiles.MarkWelcomeSent(ctx, p.ID); err != nil {
		s.log.WarnContext(ctx, "mark welcome sent failed", slog.String("error", err.Error()))
	} else {
		p.WelcomeEmailSent = true
	}
	return true
}
