// Package users provisions application users: an upstream auth user plus its
// profile row, and an optional welcome e-mail.
package users

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

type profileRepo interface {
	List(ctx context.Context) ([]domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	MarkWelcomeSent(ctx context.Context, id uuid.UUID) error
}

// AuthAdmin manages users of the upstream auth service.
type AuthAdmin interface {
	CreateUser(ctx context.Context, email string, metadata map[string]string) (domain.AuthUser, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	FindUserByEmail(ctx context.Context, email string) (domain.AuthUser, error)
}

// WelcomeSender delivers the welcome e-mail of a new user.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, email string) error
}

type recorder interface {
	WelcomeEmail(sent bool)
}

// Service implements user listing and provisioning.
type Service struct {
	log      *slog.Logger
	profiles profileRepo
	auth     AuthAdmin
	welcome  WelcomeSender
	metrics  recorder
}

// NewService creates a users service. auth may be nil when the upstream
// auth service is not configured; Create then fails with ErrNotConfigured.
func NewService(logger *slog.Logger, profiles profileRepo, auth AuthAdmin, welcome WelcomeSender, metrics recorder) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{
		log:      logger.With("service", "users"),
		profiles: profiles,
		auth:     auth,
		welcome:  welcome,
		metrics:  metrics,
	}
}

type nopRecorder struct{}

func (nopRecorder) WelcomeEmail(bool) {}
