// Package selector routes every logical operation to the durable store and
// falls back to the mirror store when the durable store is unavailable.
package selector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
	"github.com/aamsainz1-ui/financial-management-system-sub001/pkg/ctxutil"
)

// ReadMode controls where read operations go.
type ReadMode string

const (
	// ReadDurable reads from the durable store and falls back only when it
	// is unavailable.
	ReadDurable ReadMode = "durable"
	// ReadDurableNonEmpty also falls back when a durable list read is empty.
	ReadDurableNonEmpty ReadMode = "durable_nonempty"
	// ReadMirror serves every read from the mirror store.
	ReadMirror ReadMode = "mirror"
)

// Mirror is the fallback backend. It journals the writes it serves in place
// of the durable store.
type Mirror interface {
	store.Backend
	AppendFallback(ev domain.FallbackEvent)
}

// Options configures an Executor.
type Options struct {
	ReadMode       ReadMode
	DurableTimeout time.Duration
}

// Executor runs logical operations against the durable store with a bounded
// timeout and re-runs them against the mirror when the durable store fails
// with domain.ErrBackendUnavailable. Other errors are returned as they are.
type Executor struct {
	durable store.Backend
	mirror  Mirror
	mode    ReadMode
	timeout time.Duration
	log     *slog.Logger
}

// New creates an Executor. durable may be nil, in which case every operation
// is served by the mirror.
func New(log *slog.Logger, durable store.Backend, mirror Mirror, opts Options) *Executor {
	if opts.ReadMode == "" {
		opts.ReadMode = ReadDurable
	}
	if opts.DurableTimeout <= 0 {
		opts.DurableTimeout = 3 * time.Second
	}
	return &Executor{
		durable: durable,
		mirror:  mirror,
		mode:    opts.ReadMode,
		timeout: opts.DurableTimeout,
		log:     log.With("component", "selector"),
	}
}

// Durable returns the durable backend or nil.
func (e *Executor) Durable() store.Backend { return e.durable }

// Mirror returns the mirror backend.
func (e *Executor) Mirror() Mirror { return e.mirror }

// Write runs fn as one write operation and returns its result from the
// backend that served it.
func Write[T any](ctx context.Context, e *Executor, op string, fn func(ctx context.Context, b store.Backend) (T, error)) (T, error) {
	var out T
	err := e.run(ctx, op, false, func(ctx context.Context, b store.Backend) error {
		v, err := fn(ctx, b)
		if err != nil {
			return err
		}
		out = v
		return nil
	}, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Read runs fn against a consistent read-only snapshot.
func Read[T any](ctx context.Context, e *Executor, op string, fn func(ctx context.Context, b store.Backend) (T, error)) (T, error) {
	var out T
	err := e.run(ctx, op, true, func(ctx context.Context, b store.Backend) error {
		v, err := fn(ctx, b)
		if err != nil {
			return err
		}
		out = v
		return nil
	}, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// ReadList is Read for list results. In durable_nonempty mode an empty
// durable result is retried against the mirror.
func ReadList[T any](ctx context.Context, e *Executor, op string, fn func(ctx context.Context, b store.Backend) ([]T, error)) ([]T, error) {
	var out []T
	var empty func() bool
	if e.mode == ReadDurableNonEmpty {
		empty = func() bool { return len(out) == 0 }
	}
	err := e.run(ctx, op, true, func(ctx context.Context, b store.Backend) error {
		v, err := fn(ctx, b)
		if err != nil {
			return err
		}
		out = v
		return nil
	}, empty)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (e *Executor) run(ctx context.Context, op string, readOnly bool, fn func(ctx context.Context, b store.Backend) error, empty func() bool) error {
	outcome := ctxutil.OutcomeFromCtx(ctx)

	reason := ""
	durableEmpty := false
	switch {
	case e.durable == nil:
		reason = "durable store not configured"
	case outcome.Pinned():
		reason = "request already served by mirror"
	case readOnly && e.mode == ReadMirror:
		reason = "read mode mirror"
	default:
		err := e.attempt(ctx, e.durable, readOnly, fn)
		switch {
		case err == nil && empty != nil && empty():
			reason = "durable result empty"
			durableEmpty = true
		case err == nil:
			outcome.SetBackend(e.durable.Name())
			return nil
		case !e.shouldFallback(ctx, err):
			return err
		default:
			reason = err.Error()
			e.log.WarnContext(ctx, "durable store unavailable, using mirror",
				slog.String("op", op),
				slog.String("error", reason),
			)
		}
	}

	if err := e.attempt(ctx, e.mirror, readOnly, fn); err != nil {
		// The empty durable result stands when the mirror cannot answer.
		if durableEmpty {
			e.log.DebugContext(ctx, "mirror read failed, keeping empty durable result",
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
			outcome.SetBackend(e.durable.Name())
			return nil
		}
		return err
	}

	if readOnly {
		outcome.SetBackend(e.mirror.Name())
		return nil
	}

	outcome.Pin(e.mirror.Name())
	e.mirror.AppendFallback(domain.FallbackEvent{
		RequestID: ctxutil.RequestIDFromCtx(ctx),
		Operation: op,
		Reason:    reason,
	})
	return nil
}

// attempt runs fn on b. Warnings raised during the attempt reach the request
// outcome only if it succeeds.
func (e *Executor) attempt(ctx context.Context, b store.Backend, readOnly bool, fn func(ctx context.Context, b store.Backend) error) error {
	actx, attempt := ctxutil.WithAttempt(ctx)
	if b == e.durable {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(actx, e.timeout)
		defer cancel()
	}

	var err error
	if readOnly {
		err = b.View(actx, fn)
	} else {
		err = b.RunInTx(actx, fn)
	}
	if err != nil {
		return err
	}

	ctxutil.OutcomeFromCtx(ctx).AddWarnings(attempt.Warnings()...)
	return nil
}

// shouldFallback reports whether err means the durable store is unusable.
// A deadline hit by the durable timeout counts; a cancelled or expired
// caller context does not.
func (e *Executor) shouldFallback(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return errors.Is(err, domain.ErrBackendUnavailable) || errors.Is(err, context.DeadlineExceeded)
}
