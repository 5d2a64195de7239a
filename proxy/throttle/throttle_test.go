package throttle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRoundTripper_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		rps    int
		burst  int
		expErr error
	}{
		{name: "Invalid RPS (zero)", rps: 0, burst: 10, expErr: ErrMustNotBeZero},
		{name: "Invalid RPS (negative)", rps: -5, burst: 10, expErr: ErrMustNotBeZero},
		{name: "Invalid Burst (zero)", rps: 10, burst: 0, expErr: ErrMustNotBeZero},
		{name: "Invalid Burst (negative)", rps: 10, burst: -5, expErr: ErrMustNotBeZero},
		{name: "Valid input", rps: 10, burst: 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rt, err := NewRoundTripper(tc.rps, tc.burst, func() *slog.Logger { return nil }, http.DefaultTransport)

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}

			if err != nil {
				t.Errorf("exp nil err, got: %v", err)
			}
			if rt == nil {
				t.Error("exp non-nil RoundTripper")
			}
		})
	}
}

func TestRoundTrip_WithinBurstIsFast(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt, err := NewRoundTripper(5, 5, func() *slog.Logger { return nil }, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Transport: rt}

	start := time.Now()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(server.URL)
			if err != nil {
				t.Errorf("request failed: %v", err)
				return
			}
			resp.Body.Close()
		}()
	}
	wg.Wait()

	if d := time.Since(start); d > 200*time.Millisecond {
		t.Errorf("burst-sized load should not be throttled; took %v", d)
	}
	if n := calls.Load(); n != 5 {
		t.Errorf("exp 5 server calls; got %d", n)
	}
}

func TestRoundTrip_WaitTimeoutWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt, err := NewRoundTripper(1, 1, func() *slog.Logger { return nil }, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Transport: rt}

	// First request consumes the only token.
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Do(req)
	if !errors.Is(err, ErrWaitingFailed) {
		t.Errorf("exp ErrWaitingFailed when the wait exceeds the deadline; got %v", err)
	}
}

func TestRoundTrip_PreCancelledContext(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt, err := NewRoundTripper(20, 10, func() *slog.Logger { return nil }, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Transport: rt}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Do(req)
	if !errors.Is(err, ErrContextEnded) {
		t.Errorf("exp ErrContextEnded; got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cause should remain matchable; got %v", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("pre-cancelled request must not reach the server; got %d calls", n)
	}
}

func TestRoundTrip_NilNextDefaults(t *testing.T) {
	rt, err := NewRoundTripper(1, 1, func() *slog.Logger { return nil }, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rt == nil {
		t.Fatal("exp non-nil RoundTripper")
	}
}
