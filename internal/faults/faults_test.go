package faults

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf_Classified(t *testing.T) {
	err := New(Validation, "image is required")

	if KindOf(err) != Validation {
		t.Errorf("expected Validation, got %v", KindOf(err))
	}
}

func TestKindOf_WrappedChain(t *testing.T) {
	inner := Wrap(Upstream, "webhook call failed", errors.New("status 502"))
	outer := fmt.Errorf("analyze: %w", inner)

	if KindOf(outer) != Upstream {
		t.Errorf("expected Upstream through wrap chain, got %v", KindOf(outer))
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	if KindOf(errors.New("plain")) != Unknown {
		t.Error("expected Unknown for plain error")
	}
	if KindOf(nil) != Unknown {
		t.Error("expected Unknown for nil")
	}
}

func TestMessage_FallsBackForPlainError(t *testing.T) {
	msg := Message(errors.New("pq: connection refused"), "something went wrong")

	if msg != "something went wrong" {
		t.Errorf("internal error leaked: %q", msg)
	}
}

func TestMessage_UsesFaultMessage(t *testing.T) {
	err := Wrap(Configuration, "server configuration error", errors.New("ANALYZE_WEBHOOK_URL unset"))

	msg := Message(err, "fallback")
	if msg != "server configuration error" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{Configuration, http.StatusInternalServerError},
		{Upstream, http.StatusInternalServerError},
		{UpstreamAuth, http.StatusUnauthorized},
		{UpstreamRateLimited, http.StatusTooManyRequests},
		{Shape, http.StatusInternalServerError},
		{PayloadDecode, http.StatusInternalServerError},
		{Timeout, http.StatusGatewayTimeout},
		{Network, http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := HTTPStatus(New(c.kind, "x")); got != c.want {
			t.Errorf("%v: expected %d, got %d", c.kind, c.want, got)
		}
	}
}

func TestErrorString_IncludesWrapped(t *testing.T) {
	err := Wrap(Shape, "unexpected webhook response shape", errors.New("missing output"))

	if err.Error() != "unexpected webhook response shape: missing output" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}
