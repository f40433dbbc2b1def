package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type memorySink struct {
	saved   []Assertion
	saveErr error
}

func (s *memorySink) SaveSession(a Assertion) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, a)
	return nil
}

func exchangeServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req exchangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad exchange request: %v", err)
		}
		if req.Platform != "freelancer" {
			t.Fatalf("unexpected platform: %s", req.Platform)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func inbound(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u
}

func TestBridge_NoTokenStaysIdle(t *testing.T) {
	sink := &memorySink{}
	b := New("http://unused", "freelancer", "/dashboard", sink)

	res, err := b.Handle(context.Background(), inbound(t, "https://app.example.com/"))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if res.State != StateIdle {
		t.Fatalf("expected Idle, got %v", res.State)
	}
	if len(sink.saved) != 0 {
		t.Fatalf("no session should be saved")
	}
}

func TestBridge_SettlesAndPersists(t *testing.T) {
	srv := exchangeServer(t, http.StatusOK, Assertion{UserID: "f1", Email: "alice@example.com"})
	defer srv.Close()

	sink := &memorySink{}
	b := New(srv.URL, "freelancer", "/dashboard", sink)

	res, err := b.Handle(context.Background(), inbound(t, "https://app.example.com/?unified_token=tok123"))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if res.State != StateSettled {
		t.Fatalf("expected Settled, got %v", res.State)
	}
	if res.Assertion.UserID != "f1" || res.Assertion.Email != "alice@example.com" {
		t.Fatalf("unexpected assertion: %+v", res.Assertion)
	}
	if res.RedirectTo != "/dashboard" {
		t.Fatalf("unexpected redirect: %s", res.RedirectTo)
	}
	if len(sink.saved) != 1 || sink.saved[0].UserID != "f1" {
		t.Fatalf("session not persisted: %+v", sink.saved)
	}
}

func TestBridge_RepeatedHandleIsIdempotent(t *testing.T) {
	srv := exchangeServer(t, http.StatusOK, Assertion{UserID: "f1", Email: "alice@example.com"})
	defer srv.Close()

	sink := &memorySink{}
	b := New(srv.URL, "freelancer", "/dashboard", sink)
	u := inbound(t, "https://app.example.com/?unified_token=tok123")

	first, err := b.Handle(context.Background(), u)
	if err != nil {
		t.Fatalf("first Handle failed: %v", err)
	}
	second, err := b.Handle(context.Background(), u)
	if err != nil {
		t.Fatalf("second Handle failed: %v", err)
	}
	if first.Assertion != second.Assertion {
		t.Fatalf("exchange must be idempotent: %+v vs %+v", first.Assertion, second.Assertion)
	}
}

func TestBridge_RejectedExchangeFails(t *testing.T) {
	srv := exchangeServer(t, http.StatusForbidden, map[string]string{"error": "platform not linked"})
	defer srv.Close()

	sink := &memorySink{}
	b := New(srv.URL, "freelancer", "/dashboard", sink)

	res, err := b.Handle(context.Background(), inbound(t, "https://app.example.com/?unified_token=tok123"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if res.State != StateFailed {
		t.Fatalf("expected Failed, got %v", res.State)
	}
	if len(sink.saved) != 0 {
		t.Fatalf("no session should be saved on failure")
	}
}

func TestBridge_SinkFailureFails(t *testing.T) {
	srv := exchangeServer(t, http.StatusOK, Assertion{UserID: "f1"})
	defer srv.Close()

	sink := &memorySink{saveErr: errors.New("disk full")}
	b := New(srv.URL, "freelancer", "/dashboard", sink)

	res, err := b.Handle(context.Background(), inbound(t, "https://app.example.com/?unified_token=tok123"))
	if err == nil || res.State != StateFailed {
		t.Fatalf("expected Failed with error, got %v %v", res.State, err)
	}
}

func TestTokenFromURL(t *testing.T) {
	if _, ok := TokenFromURL(inbound(t, "https://x.com/?other=1")); ok {
		t.Fatalf("expected no token")
	}
	token, ok := TokenFromURL(inbound(t, "https://x.com/?unified_token=abc"))
	if !ok || token != "abc" {
		t.Fatalf("unexpected token: %q %v", token, ok)
	}
}
