package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingerMock struct {
	err error
}

func (m *pingerMock) Ping(_ context.Context) error {
	return m.err
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{err: errors.New("down")}, &pingerMock{}, "test-version")

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Status != StatusOK {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		durable    pinger
		mirror     pinger
		wantCode   int
		wantStatus string
	}{
		{name: "both up", durable: &pingerMock{}, mirror: &pingerMock{}, wantCode: http.StatusOK, wantStatus: StatusOK},
		{name: "durable down", durable: &pingerMock{err: errors.New("connection refused")}, mirror: &pingerMock{}, wantCode: http.StatusOK, wantStatus: StatusOK},
		{name: "no durable", mirror: &pingerMock{}, wantCode: http.StatusOK, wantStatus: StatusOK},
		{name: "mirror down", durable: &pingerMock{}, mirror: &pingerMock{err: errors.New("gone")}, wantCode: http.StatusServiceUnavailable, wantStatus: StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHealthHandler(tt.durable, tt.mirror, "test-version")

			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decodeHealth(t, rec); resp.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, resp.Status)
			}
		})
	}
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{}, &pingerMock{}, "v1.0.0")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Status != StatusOK {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Version != "v1.0.0" {
		t.Errorf("expected version 'v1.0.0', got %q", resp.Version)
	}
	for _, name := range []string{"durable", "mirror"} {
		comp, ok := resp.Components[name]
		if !ok {
			t.Fatalf("expected %q component in response", name)
		}
		if comp.Status != StatusOK {
			t.Errorf("expected %s status 'ok', got %q", name, comp.Status)
		}
		if comp.Latency == "" {
			t.Errorf("expected non-empty latency for %s", name)
		}
	}
}

func TestHealth_DurableDownIsDegraded(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{err: errors.New("connection refused")}, &pingerMock{}, "v1.0.0")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Status != StatusDegraded {
		t.Errorf("expected status 'degraded', got %q", resp.Status)
	}
	durable := resp.Components["durable"]
	if durable.Status != StatusDown {
		t.Errorf("expected durable status 'down', got %q", durable.Status)
	}
	if durable.Error != "connection refused" {
		t.Errorf("expected durable error, got %q", durable.Error)
	}
}

func TestHealth_NoDurableConfigured(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(nil, &pingerMock{}, "v1.0.0")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	resp := decodeHealth(t, rec)
	if resp.Components["durable"].Status != StatusDisabled {
		t.Errorf("expected durable status 'disabled', got %q", resp.Components["durable"].Status)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("expected status 'degraded', got %q", resp.Status)
	}
}

func TestHealth_MirrorDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{}, &pingerMock{err: errors.New("gone")}, "v1.0.0")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	if resp := decodeHealth(t, rec); resp.Status != StatusDown {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}
}
