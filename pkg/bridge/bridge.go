// Package bridge is the consumer side of the federation protocol: a product
// front-end embeds a Bridge to detect an inbound unified token, exchange it
// for that product's own session, and persist the result locally.
//
// The bridge is deliberately self-contained — it speaks to the federation
// service over HTTP and defines its own wire types, so product services can
// vendor it without importing the service internals.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TokenParam is the query parameter a unified token arrives in.
const TokenParam = "unified_token"

const defaultHTTPTimeout = 10 * time.Second

// State tracks the bridge through one inbound request.
type State int

const (
	StateIdle State = iota
	StateExchanging
	StateSettled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExchanging:
		return "exchanging"
	case StateSettled:
		return "settled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Assertion is the platform-scoped identity returned by the exchange
// endpoint.
type Assertion struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// SessionSink persists a settled assertion as this product's local session
// marker (cookie, local storage token, server-side session row — the
// bridge doesn't care).
type SessionSink interface {
	SaveSession(assertion Assertion) error
}

// Result reports the outcome of handling one inbound URL.
type Result struct {
	State      State
	Assertion  Assertion
	RedirectTo string
}

// Bridge exchanges inbound unified tokens for platform-scoped sessions.
type Bridge struct {
	exchangeURL string
	platform    string
	homePath    string
	sink        SessionSink
	client      *http.Client
}

// Option customises a Bridge.
type Option func(*Bridge)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Bridge) { b.client = client }
}

// New builds a Bridge for one platform. exchangeURL is the federation
// service's /token/exchange endpoint; homePath is where authenticated users
// are redirected after a settled exchange.
func New(exchangeURL, platform, homePath string, sink SessionSink, opts ...Option) *Bridge {
	b := &Bridge{
		exchangeURL: exchangeURL,
		platform:    platform,
		homePath:    homePath,
		sink:        sink,
		client:      &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// TokenFromURL extracts a unified token from an inbound URL, if present.
func TokenFromURL(u *url.URL) (string, bool) {
	token := u.Query().Get(TokenParam)
	return token, token != ""
}

// Handle runs the state machine for one inbound URL:
//
//	Idle → Exchanging → Settled|Failed
//
// No token leaves the bridge Idle. A failed exchange leaves the user on the
// current unauthenticated view with no retry loop; a repeated visit with
// the same token simply re-runs the exchange, which is idempotent.
func (b *Bridge) Handle(ctx context.Context, inbound *url.URL) (Result, error) {
	token, ok := TokenFromURL(inbound)
	if !ok {
		return Result{State: StateIdle}, nil
	}

	assertion, err := b.exchange(ctx, token)
	if err != nil {
		return Result{State: StateFailed}, err
	}

	if err := b.sink.SaveSession(assertion); err != nil {
		return Result{State: StateFailed}, fmt.Errorf("persist session: %w", err)
	}

	return Result{
		State:      StateSettled,
		Assertion:  assertion,
		RedirectTo: b.homePath,
	}, nil
}

type exchangeRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type exchangeError struct {
	Error string `json:"error"`
}

func (b *Bridge) exchange(ctx context.Context, token string) (Assertion, error) {
	body, err := json.Marshal(exchangeRequest{Token: token, Platform: b.platform})
	if err != nil {
		return Assertion{}, fmt.Errorf("encode exchange request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.exchangeURL, bytes.NewReader(body))
	if err != nil {
		return Assertion{}, fmt.Errorf("build exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return Assertion{}, fmt.Errorf("call exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ee exchangeError
		if err := json.NewDecoder(resp.Body).Decode(&ee); err == nil && ee.Error != "" {
			return Assertion{}, fmt.Errorf("exchange rejected (%d): %s", resp.StatusCode, ee.Error)
		}
		return Assertion{}, fmt.Errorf("exchange rejected (%d)", resp.StatusCode)
	}

	var assertion Assertion
	if err := json.NewDecoder(resp.Body).Decode(&assertion); err != nil {
		return Assertion{}, fmt.Errorf("decode assertion: %w", err)
	}
	return assertion, nil
}
