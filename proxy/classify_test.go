package proxy

import (
	"errors"
	"net/http"
	"testing"
)

func TestClassify_Success(t *testing.T) {
	for _, code := range []int{200, 201, 204, 299} {
		out := classify(code, "application/json", http.Header{}, []byte(`{}`))
		if !out.OK() {
			t.Errorf("status %d should classify as success, got: %v", code, out.Err)
		}
		if out.StatusCode != code {
			t.Errorf("exp status %d; got %d", code, out.StatusCode)
		}
	}
}

func TestClassify_JSONErrorUsesReasonPhrase(t *testing.T) {
	out := classify(http.StatusForbidden, "application/json", http.Header{}, []byte(`{"detail":"nope"}`))

	var statusErr *StatusError
	if !errors.As(out.Err, &statusErr) {
		t.Fatalf("exp *StatusError; got %v", out.Err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("exp 403; got %d", statusErr.StatusCode)
	}
	if statusErr.Message != "Forbidden" {
		t.Errorf("exp reason phrase Forbidden, not body content; got %q", statusErr.Message)
	}
}

func TestClassify_TextErrorUsesBody(t *testing.T) {
	out := classify(http.StatusInternalServerError, "text/plain; charset=utf-8", http.Header{}, []byte("boom"))

	var statusErr *StatusError
	if !errors.As(out.Err, &statusErr) {
		t.Fatalf("exp *StatusError; got %v", out.Err)
	}
	if statusErr.Message != "boom" {
		t.Errorf("exp server-supplied message boom; got %q", statusErr.Message)
	}
	if !errors.Is(out.Err, ErrStatus) {
		t.Error("status errors must match ErrStatus")
	}
}

func TestClassify_AuthFailureSentinel(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		out := classify(code, "application/json", http.Header{}, nil)
		if !errors.Is(out.Err, ErrAuthFailure) {
			t.Errorf("status %d should match ErrAuthFailure", code)
		}
		if !errors.Is(out.Err, ErrStatus) {
			t.Errorf("status %d should still match ErrStatus", code)
		}
	}
}

func TestClassify_UnknownCodeHasNoMessage(t *testing.T) {
	out := classify(599, "application/json", http.Header{}, nil)

	var statusErr *StatusError
	if !errors.As(out.Err, &statusErr) {
		t.Fatalf("exp *StatusError; got %v", out.Err)
	}
	if statusErr.Message != "" {
		t.Errorf("unknown code should have an absent message; got %q", statusErr.Message)
	}
}
