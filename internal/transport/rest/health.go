package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	db       dbPinger
	version  string
	features map[string]bool
	now      func() time.Time
}

// NewHealthHandler creates a HealthHandler. features maps optional
// integrations (webhook token, auth admin, welcome mail) to whether they are
// configured. They are reported by /health and never affect readiness.
func NewHealthHandler(db dbPinger, version string, features map[string]bool) *HealthHandler {
	return &HealthHandler{db: db, version: version, features: features, now: time.Now}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the state of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now().UTC()})
}

// Ready answers 200 when the database responds and 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.checkDB(r.Context())
	writeJSON(w, statusCode(db), HealthResponse{Status: db.Status, Timestamp: h.now().UTC()})
}

// Health reports the database with its latency, the configured integrations
// and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.checkDB(r.Context())

	components := make(map[string]CompStatus, len(h.features)+1)
	components["database"] = db
	for name, enabled := range h.features {
		st := "disabled"
		if enabled {
			st = "configured"
		}
		components[name] = CompStatus{Status: st}
	}

	writeJSON(w, statusCode(db), HealthResponse{
		Status:     db.Status,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now().UTC(),
	})
}

func (h *HealthHandler) checkDB(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Error: err.Error()}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}

func statusCode(db CompStatus) int {
	if db.Status != "ok" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
