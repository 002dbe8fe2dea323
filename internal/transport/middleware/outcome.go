package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// Response headers describing how a request was served.
const (
	HeaderBackend = "X-Backend"
	HeaderWarning = "Warning"
)

// Outcome attaches a request outcome to the context and reports it in the
// X-Backend and Warning response headers. The headers are added right
// before the status line is written.
func Outcome(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, outcome := ctxutil.WithOutcome(r.Context())
		ow := &outcomeWriter{ResponseWriter: w, outcome: outcome}
		next.ServeHTTP(ow, r.WithContext(ctx))
	})
}

type outcomeWriter struct {
	http.ResponseWriter
	outcome *ctxutil.Outcome
	flushed bool
}

func (w *outcomeWriter) WriteHeader(code int) {
	w.flush()
	w.ResponseWriter.WriteHeader(code)
}

func (w *outcomeWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

func (w *outcomeWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *outcomeWriter) flush() {
	if w.flushed {
		return
	}
	w.flushed = true

	h := w.Header()
	if b := w.outcome.Backend(); b != "" {
		h.Set(HeaderBackend, b)
	}
	for _, msg := range w.outcome.Warnings() {
		h.Add(HeaderWarning, warningValue(msg))
	}
}

// warningValue formats msg as a miscellaneous warning (code 199).
func warningValue(msg string) string {
	return fmt.Sprintf("199 fms %s", strconv.Quote(msg))
}
