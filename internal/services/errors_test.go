package services_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrUpstream, "analyzer", "complete", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"analyzer", "complete", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected default detail, got %q", err.Error())
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", services.Wrap(services.ErrValidation, "studio", "flashcards", "subject required", nil), http.StatusBadRequest},
		{"configuration", services.Wrap(services.ErrConfiguration, "chat", "provider", "missing key", nil), http.StatusServiceUnavailable},
		{"timeout", services.Wrap(services.ErrTimeout, "llm", "request", "deadline", nil), http.StatusGatewayTimeout},
		{"parse", services.Wrap(services.ErrParse, "studio", "books", "bad json", nil), http.StatusBadGateway},
		{"plain", errors.New("io"), http.StatusBadGateway},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tc.want)
			}
		})
	}
	if !services.IsClientError(services.Wrap(services.ErrValidation, "", "", "x", nil)) {
		t.Fatal("validation errors are client errors")
	}
}

func TestMessageReturnsBareText(t *testing.T) {
	inner := services.Wrap(services.ErrValidation, "chat", "provider", `unknown provider "x" (available: openai)`, nil)
	wrapped := fmt.Errorf("complete: %w", inner)
	if got := services.Message(wrapped); got != `unknown provider "x" (available: openai)` {
		t.Fatalf("Message = %q", got)
	}
	if got := services.Message(errors.New("plain")); got != "plain" {
		t.Fatalf("Message(plain) = %q", got)
	}
	if got := services.Message(nil); got != "" {
		t.Fatalf("Message(nil) = %q", got)
	}
	if want := "validation error: chat: provider: "; !strings.HasPrefix(inner.Error(), want) {
		t.Fatalf("unexpected rendering %q", inner.Error())
	}
}
