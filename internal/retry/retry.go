package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "campusmart/internal/errors"
)

const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = time.Second
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

type Options struct {
	MaxRetries   int
	InitialDelay time.Duration
	Sleep        Sleeper
	Logger       *zap.Logger
	Operation    string
}

type Option func(*Options)

func WithMaxRetries(n int) Option {
	return func(o *Options) { o.MaxRetries = n }
}

func WithInitialDelay(d time.Duration) Option {
	return func(o *Options) { o.InitialDelay = d }
}

func WithSleeper(s Sleeper) Option {
	return func(o *Options) { o.Sleep = s }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// Named labels the retried call in log lines.
func Named(operation string) Option {
	return func(o *Options) { o.Operation = operation }
}

// Policy is the configured retry budget shared by call sites.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
}

func (p Policy) Options(extra ...Option) []Option {
	opts := []Option{WithMaxRetries(p.MaxRetries), WithInitialDelay(p.InitialDelay)}
	return append(opts, extra...)
}

// Do runs op and retries it up to MaxRetries more times while the failure
// is transient. The delay before retry k is InitialDelay * 2^(k-1). A 4xx
// failure is returned at once; after the last attempt the last error is
// returned unchanged.
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	o := Options{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		Sleep:        sleepContext,
		Logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}

	var zero T
	var lastErr error

	for attempt := 0; attempt <= o.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := o.InitialDelay << (attempt - 1)
			o.Logger.Warn("transient failure, retrying",
				zap.String("operation", o.Operation),
				zap.Int("retry", attempt),
				zap.Int("maxRetries", o.MaxRetries),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := o.Sleep(ctx, delay); err != nil {
				return zero, err
			}
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}
	}

	return zero, lastErr
}

// IsRetryable classifies a failure. Cancellation by the caller is final.
// Remote failures defer to NormalizedError.Retryable, so a 4xx is final. An
// InternalError means the request was answered and is never sent again.
// Anything else carrying a 4xx status is final; the rest (5xx, transport
// errors, timeouts, unknown) is transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if ne, ok := apperrors.IsNormalizedError(err); ok {
		return ne.Retryable()
	}
	if _, ok := apperrors.IsInternalError(err); ok {
		return false
	}

	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		code := sc.StatusCode()
		if code >= 400 && code < 500 {
			return false
		}
	}
	return true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
