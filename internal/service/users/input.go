package users

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

// CreateInput holds parameters for user provisioning.
type CreateInput struct {
	Email            string
	FullName         string
	Alias            string
	Phone            string
	Position         string
	Role             string
	AvatarURL        string
	SkipWelcomeEmail bool
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs domain.FieldErrors

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs.Add("email", "required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "invalid")
	}

	if strings.TrimSpace(i.FullName) == "" {
		errs.Add("fullName", "required")
	} else if len(i.FullName) > 255 {
		errs.Add("fullName", "too long")
	}

	if len(i.AvatarURL) > 512 {
		errs.Add("avatarUrl", "too long")
	}

	return errs.Err()
}

func (i CreateInput) profile() *domain.Profile {
	return &domain.Profile{
		Email:     strings.ToLower(strings.TrimSpace(i.Email)),
		FullName:  strings.TrimSpace(i.FullName),
		Alias:     strings.TrimSpace(i.Alias),
		Phone:     strings.TrimSpace(i.Phone),
		Position:  strings.TrimSpace(i.Position),
		Role:      strings.TrimSpace(i.Role),
		AvatarURL: strings.TrimSpace(i.AvatarURL),
	}
}

func (i CreateInput) metadata() map[string]string {
	m := map[string]string{"full_name": strings.TrimSpace(i.FullName)}
	for k, v := range map[string]string{"alias": i.Alias, "role": i.Role, "phone": i.Phone, "position": i.Position} {
		if v = strings.TrimSpace(v); v != "" {
			m[k] = v
		}
	}
	return m
}
