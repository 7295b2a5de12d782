package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestRegistryNewCarriesCode(t *testing.T) {
	reg := NewRegistry("THING")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Thing not found")

	err := reg.New(code).WithDetail("thing_id", 7)
	if err.Code != "THING.NOT_FOUND" {
		t.Fatalf("Code = %q, want %q", err.Code, "THING.NOT_FOUND")
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Fatalf("HTTPStatus = %d, want %d", err.HTTPStatus, http.StatusNotFound)
	}
	if err.Details["thing_id"] != 7 {
		t.Fatalf("unexpected details: %+v", err.Details)
	}
	if !IsCode(err, code) {
		t.Fatalf("IsCode() = false")
	}
	if !IsType(fmt.Errorf("outer: %w", err), TypeNotFound) {
		t.Fatalf("IsType() through fmt wrap = false")
	}
}

func TestWithDetailDoesNotMutateOriginal(t *testing.T) {
	reg := NewRegistry("THING")
	code := reg.Register("CONFLICT", TypeConflict, http.StatusConflict, "Conflict")

	base := reg.New(code)
	_ = base.WithDetail("a", 1)
	if len(base.Details) != 0 {
		t.Fatalf("base details mutated: %+v", base.Details)
	}
}

func TestWrapKeepsTypedErrors(t *testing.T) {
	reg := NewRegistry("THING")
	code := reg.Register("FORBIDDEN", TypeAuthorization, http.StatusForbidden, "Forbidden")
	typed := reg.New(code)

	if got := Wrap(typed, "ignored", TypeInternal); got.Code != typed.Code {
		t.Fatalf("Wrap() replaced typed error: %v", got)
	}

	plain := errors.New("boom")
	wrapped := Wrap(plain, "failed", TypeInternal)
	if wrapped.Type != TypeInternal {
		t.Fatalf("Type = %q, want %q", wrapped.Type, TypeInternal)
	}
	if !errors.Is(wrapped, plain) {
		t.Fatalf("wrapped error lost its cause")
	}
	if Wrap(nil, "x", TypeInternal) != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	reg := NewRegistry("THING")
	code := reg.Register("GONE", TypeNotFound, http.StatusNotFound, "Gone")

	err := fmt.Errorf("ctx: %w", reg.New(code).WithDetail("id", 1))
	if !errors.Is(err, reg.New(code)) {
		t.Fatalf("errors.Is by code = false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	reg := NewRegistry("THING")
	reg.Register("DUP", TypeInternal, http.StatusInternalServerError, "dup")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate code")
		}
	}()
	reg.Register("DUP", TypeInternal, http.StatusInternalServerError, "dup")
}
