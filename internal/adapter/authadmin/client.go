// Package authadmin talks to the admin API of the upstream auth service
// (GoTrue-compatible /auth/v1/admin/users) with the service role key.
package authadmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

const (
	usersPath = "/auth/v1/admin/users"
	perPage   = 1000
)

// Client creates, finds and deletes upstream auth users.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. baseURL is the auth project URL without a
// trailing path.
func NewClient(baseURL, serviceKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "authadmin"),
	}
}

type apiUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type apiError struct {
	Msg       string `json:"msg"`
	Message   string `json:"message"`
	ErrorDesc string `json:"error_description"`
	ErrorCode string `json:"error_code"`
}

func (e apiError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDesc, e.ErrorCode} {
		if s != "" {
			return s
		}
	}
	return ""
}

// CreateUser creates an already-confirmed user with the given user metadata.
// An e-mail that is already registered yields domain.ErrAlreadyExists.
func (c *Client) CreateUser(ctx context.Context, email string, metadata map[string]string) (domain.AuthUser, error) {
	payload := map[string]any{
		"email":         email,
		"email_confirm": true,
		"user_metadata": metadata,
	}

	var u apiUser
	if err := c.do(ctx, http.MethodPost, usersPath, payload, &u); err != nil {
		return domain.AuthUser{}, fmt.Errorf("authadmin: create user: %w", err)
	}

	id, err := uuid.Parse(u.ID)
	if err != nil {
		return domain.AuthUser{}, fmt.Errorf("authadmin: create user: bad id %q: %w", u.ID, err)
	}
	c.log.InfoContext(ctx, "auth user created", slog.String("user_id", id.String()))
	return domain.AuthUser{ID: id, Email: u.Email}, nil
}

// DeleteUser removes a user. A missing user is not an error.
func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := c.do(ctx, http.MethodDelete, usersPath+"/"+id.String(), nil, nil)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("authadmin: delete user %s: %w", id, err)
	}
	return nil
}

// FindUserByEmail pages through the user list and returns the user with a
// case-insensitively equal e-mail, or domain.ErrNotFound.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (domain.AuthUser, error) {
	want := strings.ToLower(strings.TrimSpace(email))

	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(perPage))

		var resp struct {
			Users []apiUser `json:"users"`
		}
		if err := c.do(ctx, http.MethodGet, usersPath+"?"+q.Encode(), nil, &resp); err != nil {
			return domain.AuthUser{}, fmt.Errorf("authadmin: list users: %w", err)
		}

		for _, u := range resp.Users {
			if strings.ToLower(u.Email) != want {
				continue
			}
			id, err := uuid.Parse(u.ID)
			if err != nil {
				return domain.AuthUser{}, fmt.Errorf("authadmin: list users: bad id %q: %w", u.ID, err)
			}
			return domain.AuthUser{ID: id, Email: u.Email}, nil
		}

		if len(resp.Users) < perPage {
			return domain.AuthUser{}, domain.ErrNotFound
		}
	}
}

// statusError is a non-2xx answer of the admin API.
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

func (e *statusError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusConflict, e.Status == http.StatusUnprocessableEntity && alreadyRegistered(e.Message):
		return domain.ErrAlreadyExists
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return domain.ErrUnauthorized
	}
	return nil
}

func alreadyRegistered(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "already") || strings.Contains(msg, "email_exists")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		_ = json.Unmarshal(data, &ae)
		c.log.WarnContext(ctx, "auth admin request failed",
			slog.String("method", method),
			slog.Int("status", resp.StatusCode),
			slog.String("message", ae.text()),
		)
		return &statusError{Status: resp.StatusCode, Message: ae.text()}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
