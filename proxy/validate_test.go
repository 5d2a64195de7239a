package proxy_test

import (
	"errors"
	"testing"

	"github.com/adamwoolhether/restcall/proxy"
)

type validStruct struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestValidate_Valid(t *testing.T) {
	v := validStruct{Name: "Alice", Email: "alice@example.com"}
	if err := proxy.Validate(&v); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	v := validStruct{Email: "alice@example.com"}
	err := proxy.Validate(&v)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}

	var fields proxy.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got: %v", err)
	}

	if len(fields) != 1 || fields[0].Field != "name" {
		t.Fatalf("expected 'name' field error, got %+v", fields)
	}
	if fields[0].Err != "This field is required" {
		t.Fatalf("name error = %q, want %q", fields[0].Err, "This field is required")
	}
}

func TestValidate_InvalidField(t *testing.T) {
	v := validStruct{Name: "Alice", Email: "not-an-email"}
	err := proxy.Validate(&v)
	if err == nil {
		t.Fatal("expected error for invalid email")
	}

	var fields proxy.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got: %v", err)
	}
	if len(fields) != 1 || fields[0].Field != "email" {
		t.Fatalf("expected 'email' field error, got %+v", fields)
	}
}
