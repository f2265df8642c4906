package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/preston-bernstein/schedule-board-service/internal/logging"
	"github.com/preston-bernstein/schedule-board-service/internal/metrics"
)

const (
	// A single attempt keeps fetch failures immediate unless retries are configured.
	defaultRetryAttempts = 1
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingSource wraps a DocumentSource with attempt accounting, retry and backoff.
type retryingSource struct {
	inner       DocumentSource
	logger      *slog.Logger
	recorder    *metrics.Recorder
	sourceName  string
	maxAttempts int
	backoffFn   backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingSource wraps inner with metrics and retries. attempts <= 0 means a single attempt.
func NewRetryingSource(inner DocumentSource, logger *slog.Logger, recorder *metrics.Recorder, name string, attempts int, backoff time.Duration) DocumentSource {
	return NewRetryingSourceWithRNG(inner, logger, recorder, name, nil, attempts, backoff)
}

// NewRetryingSourceWithRNG is NewRetryingSource with an injectable jitter source.
func NewRetryingSourceWithRNG(inner DocumentSource, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, attempts int, backoff time.Duration) DocumentSource {
	if name == "" {
		name = "source"
	}
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingSource{
		inner:       inner,
		logger:      logger,
		recorder:    recorder,
		sourceName:  name,
		maxAttempts: attempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		rng: rng,
	}
}

func (r *retryingSource) FetchDocument(ctx context.Context, name string) (string, error) {
	if r.inner == nil {
		logWithSource(ctx, r.logger, slog.LevelWarn, r.sourceName, "document source unavailable")
		return "", ErrSourceUnavailable
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		body, err := r.inner.FetchDocument(ctx, name)
		r.recorder.RecordFetchAttempt(r.sourceName, name, time.Since(start), err)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if rl, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.sourceName, rl.RetryAfter)
		}

		if attempt == r.maxAttempts || ctx.Err() != nil {
			break
		}

		delay := r.computeDelay(err, attempt)
		logWithSource(ctx, r.logger, slog.LevelWarn, r.sourceName, "document fetch retry",
			slog.String(logging.FieldDocument, name),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	logWithSource(ctx, r.logger, slog.LevelWarn, r.sourceName, "document fetch failed",
		slog.String(logging.FieldDocument, name),
		slog.Int("attempts", r.maxAttempts),
		slog.Any("err", lastErr),
	)
	return "", lastErr
}

// computeDelay honours Retry-After from a rate limit, otherwise applies
// backoff with jitter in [base/2, base].
func (r *retryingSource) computeDelay(err error, attempt int) time.Duration {
	if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(half) + 1))
	r.rngMu.Unlock()
	return half + jitter
}
