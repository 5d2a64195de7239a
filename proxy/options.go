package proxy

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/restcall/proxy/dispatch"
	"github.com/adamwoolhether/restcall/proxy/throttle"
)

// Option is a functional option for configuring a [Proxy] via [Build].
type Option func(*options) error

type options struct {
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	logger            *slog.Logger
	tracer            trace.Tracer
	exec              dispatch.Executor
	header            http.Header
	mode              *Encoding
	validate          bool
	useJSONNum        bool
}

// WithClient replaces the default [http.Client] used as the transport.
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		o.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithNoFollowRedirects prevents the proxy from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(o *options) error {
		o.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Proxy].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer wraps every invocation in a span from tracer. Without it
// a no-op tracer is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithExecutor sets the dispatch context on which result callbacks
// run. Without it the proxy owns a [dispatch.Loop], closed by
// [Proxy.Close].
func WithExecutor(exec dispatch.Executor) Option {
	return func(o *options) error {
		if exec == nil {
			return errors.New("executor must not be nil")
		}
		o.exec = exec
		return nil
	}
}

// WithHeader adds a default header applied to every request. Per-call
// headers override it.
func WithHeader(key string, values ...string) Option {
	return func(o *options) error {
		if key == "" {
			return errors.New("header key must not be empty")
		}
		if o.header == nil {
			o.header = http.Header{}
		}
		for _, v := range values {
			o.header.Add(key, v)
		}
		return nil
	}
}

// WithEncoding sets the initial encoding mode for bodyless POST calls.
func WithEncoding(mode Encoding) Option {
	return func(o *options) error {
		if mode != FormEncoded && mode != Multipart {
			return fmt.Errorf("unknown encoding mode %d", mode)
		}
		o.mode = &mode
		return nil
	}
}

// WithValidation checks every decoded destination against its
// validator struct tags; violations fail the call with [FieldErrors].
func WithValidation() Option {
	return func(o *options) error {
		o.validate = true
		return nil
	}
}

// WithJSONNumber tells the response decoder to use
// [json.Decoder.UseNumber], preserving number precision as
// [json.Number] instead of float64.
func WithJSONNumber() Option {
	return func(o *options) error {
		o.useJSONNum = true
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
