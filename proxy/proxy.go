// Package proxy executes REST calls built from argument maps against
// a remote server.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/restcall/proxy/dispatch"
	"github.com/adamwoolhether/restcall/proxy/throttle"
)

// Proxy invokes REST endpoints under a single base URL. It wraps a
// std-lib *http.Client as the transport and delivers every result on
// one serialized dispatch executor.
//
// The encoding mode and default headers are shared by all invocations;
// treat them as set-once-then-use, or serialize reconfiguration
// externally. The design does not guard a SetEncoding racing an
// in-flight call.
type Proxy struct {
	base   *url.URL
	c      *http.Client
	logger *slog.Logger
	tracer trace.Tracer

	exec    dispatch.Executor
	ownLoop *dispatch.Loop

	header     http.Header
	mode       Encoding
	validate   bool
	useJSONNum bool
}

// Callback receives a call's terminal outcome on the dispatch
// executor. It runs exactly once per invocation.
type Callback func(Outcome)

// Build creates a Proxy for baseURL with the provided options.
func Build(baseURL string, optFns ...Option) (*Proxy, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	p := &Proxy{
		base:   base,
		c:      http.DefaultClient,
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("no-op tracer"),
		header: http.Header{},
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying proxy option: %w", err)
		}
	}

	if opts.client != nil {
		p.c = opts.client
	}

	if opts.logger != nil {
		p.logger = opts.logger
	}

	if opts.tracer != nil {
		p.tracer = opts.tracer
	}

	if opts.timeout != nil {
		p.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		p.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	if opts.header != nil {
		p.header = opts.header
	}

	if opts.mode != nil {
		p.mode = *opts.mode
	}

	p.validate = opts.validate
	p.useJSONNum = opts.useJSONNum

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return p.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	p.c.Transport = transport

	if opts.exec != nil {
		p.exec = opts.exec
	} else {
		loop := dispatch.NewLoop()
		p.exec = loop
		p.ownLoop = loop
	}

	return p, nil
}

// Close drains and stops the proxy's owned dispatch loop. Call it
// only after all invocations have completed; it is a no-op when the
// executor was injected via [WithExecutor].
func (p *Proxy) Close() {
	if p.ownLoop != nil {
		p.ownLoop.Close()
	}
}

// SetEncoding changes the encoding mode for subsequent bodyless POST
// calls. Not safe concurrently with in-flight invocations.
func (p *Proxy) SetEncoding(mode Encoding) {
	p.mode = mode
}

// Encoding returns the current encoding mode.
func (p *Proxy) Encoding() Encoding {
	return p.mode
}

// Invocation is the handle for one in-flight call.
type Invocation struct {
	id      uuid.UUID
	done    chan struct{}
	outcome Outcome
	cancel  context.CancelFunc
}

// ID identifies the invocation, e.g. for log correlation.
func (inv *Invocation) ID() uuid.UUID { return inv.id }

// Cancel aborts the call best-effort. It races in-flight completion:
// whichever happens first determines the delivered outcome, but the
// callback still fires exactly once. A cancelled call is delivered as
// a failure matching [ErrCancelled], never silently dropped.
func (inv *Invocation) Cancel() { inv.cancel() }

// Done returns a channel closed after the callback has run.
func (inv *Invocation) Done() <-chan struct{} { return inv.done }

// Outcome blocks until delivery and returns the terminal outcome.
func (inv *Invocation) Outcome() Outcome {
	<-inv.done
	return inv.outcome
}

// Invoke starts call asynchronously and returns its handle. The
// calling goroutine never blocks: encoding, the network exchange,
// classification, and decoding all run on the invocation's own
// goroutine, and done then runs on the dispatch executor, strictly
// after decoding. Exactly one outcome is delivered per invocation,
// including for requests that fail to build.
func (p *Proxy) Invoke(ctx context.Context, call Call, done Callback) *Invocation {
	ctx, cancel := context.WithCancel(ctx)
	inv := &Invocation{
		id:     uuid.New(),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer cancel()
		p.deliver(inv, p.run(ctx, call), done)
	}()

	return inv
}

// run executes the full pipeline on the calling (worker) goroutine.
func (p *Proxy) run(ctx context.Context, call Call) Outcome {
	ctx, span := p.tracer.Start(ctx, "proxy.invoke")
	defer span.End()
	span.SetAttributes(
		attribute.String("method", call.Method),
		attribute.String("path", call.Path),
	)

	req, err := p.buildRequest(ctx, call, p.mode)
	if err != nil {
		return Outcome{Err: err}
	}

	resp, err := p.c.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
			return Outcome{Err: fmt.Errorf("%w: %w", ErrCancelled, err)}
		}
		return Outcome{Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}

	body, err := io.ReadAll(resp.Body)
	if cerr := resp.Body.Close(); cerr != nil {
		p.logger.Error("failed to close response body", "error", cerr)
	}
	if err != nil {
		return Outcome{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: reading body: %w", ErrTransport, err),
		}
	}

	span.SetAttributes(attribute.Int("status", resp.StatusCode))

	out := classify(resp.StatusCode, resp.Header.Get("Content-Type"), resp.Header, body)
	if out.OK() && call.Into != nil {
		if err := p.decode(body, call.Into); err != nil {
			out.Err = err
		}
	}

	return out
}

// decode unmarshals a successful body into the caller's destination
// and optionally validates it. Runs on the worker goroutine so JSON
// cost never blocks the dispatch executor.
func (p *Proxy) decode(body []byte, into any) error {
	d := json.NewDecoder(bytes.NewReader(body))
	if p.useJSONNum {
		d.UseNumber()
	}

	if err := d.Decode(into); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if p.validate {
		if err := Validate(into); err != nil {
			return fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}

	return nil
}

// deliver posts the single terminal outcome to the dispatch executor.
func (p *Proxy) deliver(inv *Invocation, out Outcome, done Callback) {
	inv.outcome = out
	p.exec.Post(func() {
		if done != nil {
			done(out)
		}
		close(inv.done)
	})
}
