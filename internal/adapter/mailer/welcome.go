// Package mailer triggers transactional e-mails on the mail endpoint.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

type tokenIssuer interface {
	GenerateServiceToken() (string, error)
}

// WelcomeSender posts {email} to the welcome endpoint with a short-lived
// service token.
type WelcomeSender struct {
	url        string
	tokens     tokenIssuer
	httpClient *http.Client
	log        *slog.Logger
}

func NewWelcomeSender(url string, tokens tokenIssuer, timeout time.Duration, logger *slog.Logger) *WelcomeSender {
	return &WelcomeSender{
		url:        url,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "mailer"),
	}
}

// SendWelcome asks the mail endpoint to send the welcome message.
// Returns domain.ErrNotConfigured when no endpoint is set.
func (s *WelcomeSender) SendWelcome(ctx context.Context, email string) error {
	if s.url == "" {
		return fmt.Errorf("mailer: welcome url: %w", domain.ErrNotConfigured)
	}

	token, err := s.tokens.GenerateServiceToken()
	if err != nil {
		return fmt.Errorf("mailer: service token: %w", err)
	}

	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("mailer: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailer: unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	s.log.DebugContext(ctx, "welcome e-mail requested", slog.String("email", email))
	return nil
}
