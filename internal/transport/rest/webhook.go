package rest

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/cvo-backend/internal/service/ingest"
)

// WebhookTokenHeader carries the shared secret of the e-mail provider.
const WebhookTokenHeader = "X-Webhook-Token"

type emailIngester interface {
	ProcessEmail(ctx context.Context, in ingest.EmailInput) (*ingest.EmailResult, error)
}

// WebhookHandler receives parsed e-mails from the inbound mail provider.
type WebhookHandler struct {
	svc      emailIngester
	token    string
	maxBytes int64
	log      *slog.Logger
}

// NewWebhookHandler creates a WebhookHandler. An empty token disables the
// token check.
func NewWebhookHandler(svc emailIngester, token string, maxBytes int64, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		svc:      svc,
		token:    token,
		maxBytes: maxBytes,
		log:      logger.With("handler", "webhook"),
	}
}

// stringList accepts a JSON string or an array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var many []string
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one != "" {
		*l = stringList{one}
	}
	return nil
}

type emailEnvelope struct {
	From string     `json:"from"`
	To   stringList `json:"to"`
}

type emailAttachment struct {
	ContentType string `json:"content_type"`
	FileName    string `json:"file_name"`
	Filename    string `json:"filename"`
	Content     string `json:"content"`
}

type emailRequest struct {
	Envelope    json.RawMessage   `json:"envelope"`
	Headers     json.RawMessage   `json:"headers"`
	Plain       string            `json:"plain"`
	HTML        string            `json:"html"`
	Attachments []emailAttachment `json:"attachments"`
}

type webhookResponse struct {
	Success          bool    `json:"success"`
	Message          string  `json:"message"`
	ExtractionStatus string  `json:"extractionStatus"`
	PDFExtractionID  *string `json:"pdfExtractionId"`
	Action           string  `json:"action,omitempty"`
	SaleID           *string `json:"saleId,omitempty"`
}

// Receive handles POST /api/email-webhook.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if h.token != "" {
		got := r.Header.Get(WebhookTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
			h.log.WarnContext(r.Context(), "webhook token rejected")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
	}

	var req emailRequest
	if !decodeJSON(w, r, h.maxBytes, &req) {
		return
	}

	res, err := h.svc.ProcessEmail(r.Context(), h.toInput(r.Context(), req))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := webhookResponse{
		Success:          true,
		Message:          res.Message,
		ExtractionStatus: res.Status.String(),
	}
	if res.ExtractionID != nil {
		id := res.ExtractionID.String()
		resp.PDFExtractionID = &id
	}
	if res.Sale != nil {
		resp.Action = res.Sale.Action.String()
		if res.Sale.Action.Writes() {
			id := res.Sale.SaleID.String()
			resp.SaleID = &id
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WebhookHandler) toInput(ctx context.Context, req emailRequest) ingest.EmailInput {
	in := ingest.EmailInput{
		Plain:    req.Plain,
		HTML:     req.HTML,
		Headers:  req.Headers,
		Envelope: req.Envelope,
	}

	if len(req.Envelope) > 0 {
		var env emailEnvelope
		if err := json.Unmarshal(req.Envelope, &env); err == nil {
			in.From = env.From
			in.To = env.To
		}
	}

	if len(req.Headers) > 0 {
		var headers map[string]any
		if err := json.Unmarshal(req.Headers, &headers); err == nil {
			in.Subject = headerString(headers, "subject")
		}
	}

	for _, a := range req.Attachments {
		name := a.Filename
		if name == "" {
			name = a.FileName
		}
		content, err := decodeBase64(a.Content)
		if err != nil {
			// Undecodable attachments are skipped; the body may still carry the order.
			h.log.WarnContext(ctx, "attachment not base64",
				slog.String("filename", name),
				slog.String("error", err.Error()),
			)
			continue
		}
		in.Attachments = append(in.Attachments, ingest.Attachment{
			Filename:    name,
			ContentType: a.ContentType,
			Content:     content,
		})
	}
	return in
}

// headerString reads a header case-insensitively; repeated headers arrive as arrays.
func headerString(headers map[string]any, name string) string {
	for k, v := range headers {
		if !strings.EqualFold(k, name) {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case []any:
			if len(t) > 0 {
				if s, ok := t[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, nil
	}
	if out, err := base64.StdEncoding.DecodeString(s); err == nil {
		return out, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
