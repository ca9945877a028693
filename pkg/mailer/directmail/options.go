package directmail

import (
	"log/slog"
	"net/http"
	"time"
)

// HTTPClient is the subset of *http.Client used to reach the API.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Sender.
type Option func(*Sender)

// WithHTTPClient replaces the default *http.Client.
// Timeouts and proxies are then the caller's concern.
func WithHTTPClient(c HTTPClient) Option {
	return func(s *Sender) {
		if c != nil {
			s.client = c
		}
	}
}

// WithLogger sets the logger for delivery diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sender) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for the Timestamp parameter.
func WithClock(now func() time.Time) Option {
	return func(s *Sender) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNonce overrides the SignatureNonce generator.
// Every call must return a value not used before by the same account.
func WithNonce(nonce func() string) Option {
	return func(s *Sender) {
		if nonce != nil {
			s.nonce = nonce
		}
	}
}
