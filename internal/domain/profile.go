package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is an application user (profiles). Its ID equals the upstream auth user id.
type Profile struct {
	ID               uuid.UUID
	Email            string
	FullName         string
	Alias            string
	Phone            string
	Position         string
	Role             string
	AvatarURL        string
	WelcomeEmailSent bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Roles splits the stored role list ("admin, asesor").
func (p Profile) Roles() []string {
	var out []string
	for _, r := range strings.Split(p.Role, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// AdvisorProfile is the read-only view of a profile used for advisor matching.
type AdvisorProfile struct {
	ID       uuid.UUID
	FullName string
	Alias    string
}

// AuthUser is a user record of the upstream auth service.
type AuthUser struct {
	ID    uuid.UUID
	Email string
}
