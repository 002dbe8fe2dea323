package rest

import (
	"context"
	"net/http"
	"time"
)

// pinger is a backend that can report its reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the probes. The service stays ready while the mirror
// answers; a durable outage only degrades it.
type HealthHandler struct {
	durable pinger
	mirror  pinger
	version string
}

// NewHealthHandler creates a HealthHandler. durable may be nil when no
// durable store is configured.
func NewHealthHandler(durable, mirror pinger, version string) *HealthHandler {
	return &HealthHandler{durable: durable, mirror: mirror, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Component and overall statuses.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    StatusOK,
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 while the mirror answers.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.mirror.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    StatusDown,
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    StatusOK,
		Timestamp: time.Now(),
	})
}

// Health reports both backends with latency. A durable outage gives
// "degraded" with 200; only a mirror failure gives 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := map[string]CompStatus{
		"durable": {Status: StatusDisabled},
		"mirror":  probe(ctx, h.mirror),
	}
	if h.durable != nil {
		components["durable"] = probe(ctx, h.durable)
	}

	overall, status := StatusOK, http.StatusOK
	switch {
	case components["mirror"].Status != StatusOK:
		overall, status = StatusDown, http.StatusServiceUnavailable
	case components["durable"].Status != StatusOK:
		overall = StatusDegraded
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func probe(ctx context.Context, p pinger) CompStatus {
	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return CompStatus{Status: StatusDown, Error: err.Error()}
	}
	return CompStatus{Status: StatusOK, Latency: time.Since(start).String()}
}
