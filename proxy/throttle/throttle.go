package throttle

import (
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// NewRoundTripper wraps next with a token-bucket limiter allowing rps
// requests per second with the given burst capacity. logFn defers
// logger resolution so the owning proxy can swap loggers after build.
func NewRoundTripper(rps, burst int, logFn func() *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if rps <= 0 {
		return nil, fmt.Errorf("rps[%d] %w", rps, ErrMustNotBeZero)
	}
	if burst <= 0 {
		return nil, fmt.Errorf("burst[%d] %w", burst, ErrMustNotBeZero)
	}
	if next == nil {
		next = http.DefaultTransport
	}

	return &throttle{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		rps:     rps,
		burst:   burst,
		next:    next,
		logFn:   logFn,
	}, nil
}

// RoundTrip blocks until a token is available or the request context
// ends, then delegates to the wrapped transport.
func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContextEnded, err)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		if logger := t.logFn(); logger != nil {
			logger.Debug("throttle wait aborted", "rps", t.rps, "burst", t.burst, "error", err)
		}

		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	return t.next.RoundTrip(r)
}
