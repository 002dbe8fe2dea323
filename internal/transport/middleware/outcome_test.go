package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

func TestOutcome_SetsHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outcome := ctxutil.OutcomeFromCtx(r.Context())
		require.NotNil(t, outcome)
		outcome.SetBackend("durable")
		ctxutil.Warn(r.Context(), "dashboard: salaries unavailable")
		ctxutil.Warn(r.Context(), `quote "inside"`)
		_, _ = w.Write([]byte(`{}`))
	})

	rec := httptest.NewRecorder()
	Outcome(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	assert.Equal(t, "durable", rec.Header().Get(HeaderBackend))
	assert.Equal(t, []string{
		`199 fms "dashboard: salaries unavailable"`,
		`199 fms "quote \"inside\""`,
	}, rec.Header().Values(HeaderWarning))
}

func TestOutcome_NoBackendNoHeader(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	rec := httptest.NewRecorder()
	Outcome(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/teams", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get(HeaderBackend))
	assert.Empty(t, rec.Header().Values(HeaderWarning))
}

func TestClientInfo(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		wantIP  string
	}{
		{name: "remote addr", remote: "192.0.2.1:5000", wantIP: "192.0.2.1"},
		{name: "forwarded first hop", remote: "127.0.0.1:1", headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, wantIP: "203.0.113.9"},
		{name: "real ip", remote: "127.0.0.1:1", headers: map[string]string{"X-Real-Ip": "198.51.100.4"}, wantIP: "198.51.100.4"},
		{name: "no port", remote: "pipe", wantIP: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ip, ua string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ip, ua = ctxutil.ClientFromCtx(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			req.Header.Set("User-Agent", "fms-test/1.0")
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			ClientInfo(handler).ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantIP, ip)
			assert.Equal(t, "fms-test/1.0", ua)
		})
	}
}
