package ctxutil

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey    ctxKey = "user_id"
	requestIDKey ctxKey = "request_id"
)

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

const (
	clientIPKey  ctxKey = "client_ip"
	userAgentKey ctxKey = "user_agent"
	outcomeKey   ctxKey = "outcome"
	attemptKey   ctxKey = "attempt"
)

// WithClient stores the caller's address and user agent in the context.
func WithClient(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey, ip)
	return context.WithValue(ctx, userAgentKey, userAgent)
}

// ClientFromCtx returns the caller's address and user agent, empty when absent.
func ClientFromCtx(ctx context.Context) (ip, userAgent string) {
	ip, _ = ctx.Value(clientIPKey).(string)
	userAgent, _ = ctx.Value(userAgentKey).(string)
	return ip, userAgent
}

// Outcome is the request-scoped record of which backend served the request
// and which warnings were raised on the way. All methods are safe on a nil
// receiver.
type Outcome struct {
	mu       sync.Mutex
	backend  string
	pinned   bool
	warnings []string
}

// WithOutcome attaches a fresh Outcome to the context.
func WithOutcome(ctx context.Context) (context.Context, *Outcome) {
	o := &Outcome{}
	return context.WithValue(ctx, outcomeKey, o), o
}

// OutcomeFromCtx returns the request Outcome or nil.
func OutcomeFromCtx(ctx context.Context) *Outcome {
	o, _ := ctx.Value(outcomeKey).(*Outcome)
	return o
}

// SetBackend records the backend of record. A request pinned to the mirror
// keeps reporting the mirror.
func (o *Outcome) SetBackend(name string) {
	if o == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pinned {
		return
	}
	o.backend = name
}

// Backend returns the backend of record, empty if nothing was served yet.
func (o *Outcome) Backend() string {
	if o == nil {
		return ""
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.backend
}

// Pin marks the request as served by the fallback backend name. Later
// operations of the same request must not go back to the durable store.
func (o *Outcome) Pin(name string) {
	if o == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pinned = true
	o.backend = name
}

// Pinned reports whether the request fell back earlier.
func (o *Outcome) Pinned() bool {
	if o == nil {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pinned
}

// AddWarnings appends warnings to the outcome.
func (o *Outcome) AddWarnings(ws ...string) {
	if o == nil || len(ws) == 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, ws...)
}

// Warnings returns a copy of the collected warnings.
func (o *Outcome) Warnings() []string {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.warnings...)
}

// Attempt collects the warnings raised by one attempt of an operation
// against one backend. Its warnings only reach the Outcome if the attempt
// succeeds.
type Attempt struct {
	mu       sync.Mutex
	warnings []string
}

// WithAttempt attaches a fresh Attempt to the context.
func WithAttempt(ctx context.Context) (context.Context, *Attempt) {
	a := &Attempt{}
	return context.WithValue(ctx, attemptKey, a), a
}

// Warnings returns a copy of the attempt's warnings.
func (a *Attempt) Warnings() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.warnings...)
}

// Warn records a warning on the current attempt, or directly on the request
// Outcome when no attempt is in progress.
func Warn(ctx context.Context, msg string) {
	if a, ok := ctx.Value(attemptKey).(*Attempt); ok {
		a.mu.Lock()
		a.warnings = append(a.warnings, msg)
		a.mu.Unlock()
		return
	}
	OutcomeFromCtx(ctx).AddWarnings(msg)
}
