package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/service/users"
)

type userService interface {
	List(ctx context.Context) ([]domain.Profile, error)
	Create(ctx context.Context, in users.CreateInput) (*users.CreateResult, error)
}

// AdminHandler serves user administration endpoints. Routes are expected to
// sit behind the admin middleware.
type AdminHandler struct {
	users    userService
	maxBytes int64
	log      *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(users userService, maxBytes int64, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		users:    users,
		maxBytes: maxBytes,
		log:      logger.With("handler", "admin"),
	}
}

type roleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	FullName         string         `json:"full_name"`
	Alias            string         `json:"alias"`
	Phone            string         `json:"phone"`
	Position         string         `json:"position"`
	AvatarURL        string         `json:"avatar_url"`
	Role             string         `json:"role"`
	Roles            []roleResponse `json:"roles"`
	WelcomeEmailSent bool           `json:"welcome_email_sent"`
	CreatedAt        time.Time      `json:"created_at"`
}

type createUserRequest struct {
	Email            string `json:"email"`
	FullName         string `json:"fullName"`
	Alias            string `json:"alias"`
	Phone            string `json:"phone"`
	Position         string `json:"position"`
	Role             string `json:"role"`
	AvatarURL        string `json:"avatarUrl"`
	SkipWelcomeEmail bool   `json:"skipWelcomeEmail"`
}

type createdUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type createUserResponse struct {
	Message          string      `json:"message"`
	User             createdUser `json:"user"`
	AuthUserCreated  bool        `json:"authUserCreated"`
	WelcomeEmailSent bool        `json:"welcomeEmailSent"`
}

// placeholderAvatar is shown for profiles without an avatar.
const placeholderAvatar = "/placeholder.svg"

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.users.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]userResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toUserResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, h.maxBytes, &req) {
		return
	}

	res, err := h.users.Create(r.Context(), users.CreateInput{
		Email:            req.Email,
		FullName:         req.FullName,
		Alias:            req.Alias,
		Phone:            req.Phone,
		Position:         req.Position,
		Role:             req.Role,
		AvatarURL:        req.AvatarURL,
		SkipWelcomeEmail: req.SkipWelcomeEmail,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	message := "User created successfully"
	if !res.AuthUserCreated {
		message = "Profile created for existing user"
	}
	writeJSON(w, http.StatusCreated, createUserResponse{
		Message:          message,
		User:             createdUser{ID: res.Profile.ID.String(), Email: res.Profile.Email},
		AuthUserCreated:  res.AuthUserCreated,
		WelcomeEmailSent: res.WelcomeEmailSent,
	})
}

func toUserResponse(p domain.Profile) userResponse {
	avatar := p.AvatarURL
	if avatar == "" {
		avatar = placeholderAvatar
	}
	roles := make([]roleResponse, 0)
	for _, name := range p.Roles() {
		roles = append(roles, roleResponse{ID: strings.ToLower(name), Name: name})
	}
	return userResponse{
		ID:               p.ID.String(),
		Email:            p.Email,
		FullName:         p.FullName,
		Alias:            p.Alias,
		Phone:            p.Phone,
		Position:         p.Position,
		AvatarURL:        avatar,
		Role:             p.Role,
		Roles:            roles,
		WelcomeEmailSent: p.WelcomeEmailSent,
		CreatedAt:        p.CreatedAt,
	}
}
