package directmail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailkit/pkg/logger"
	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// maxResponseBody caps how much of an API response is read.
const maxResponseBody int64 = 1 << 20

// Sender implements mailer.Sender using the DirectMail SingleSendMail API.
// It is safe for concurrent use.
type Sender struct {
	client HTTPClient
	logger *slog.Logger
	now    func() time.Time
	nonce  func() string
	region Region
	cfg    Config

	mu          sync.RWMutex
	accessKeyID string
	secret      string
}

// New creates a DirectMail sender.
// The configuration is validated once here; an unknown region or missing
// credentials fail with ErrInvalidConfig.
func New(cfg Config, opts ...Option) (*Sender, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	region, err := ResolveRegion(cfg.RegionID)
	if err != nil {
		return nil, err
	}

	s := &Sender{
		client:      &http.Client{Timeout: cfg.Timeout},
		logger:      logger.NewNope(),
		now:         defaultNow,
		nonce:       uuid.NewString,
		region:      region,
		cfg:         cfg,
		accessKeyID: cfg.AccessKeyID,
		secret:      cfg.AccessKeySecret,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("provider", "directmail"), slog.String("region", region.ID))

	return s, nil
}

// Region returns the region the sender delivers through.
func (s *Sender) Region() Region {
	return s.region
}

// AccessKeyID returns the access key currently used to sign requests.
func (s *Sender) AccessKeyID() string {
	id, _ := s.credentials()
	return id
}

// SetAccessKeyID replaces the access key for subsequent sends.
func (s *Sender) SetAccessKeyID(id string) {
	s.mu.Lock()
	s.accessKeyID = id
	s.mu.Unlock()
}

// SetAccessKeySecret replaces the signing secret for subsequent sends.
func (s *Sender) SetAccessKeySecret(secret string) {
	s.mu.Lock()
	s.secret = secret
	s.mu.Unlock()
}

// SetCredentials atomically replaces both the access key and the secret.
func (s *Sender) SetCredentials(id, secret string) {
	s.mu.Lock()
	s.accessKeyID = id
	s.secret = secret
	s.mu.Unlock()
}

func (s *Sender) credentials() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessKeyID, s.secret
}

// Payload returns the signed parameter set for email, exactly as Send would post it.
// Each call produces a fresh timestamp and nonce.
func (s *Sender) Payload(email *mailer.Email) (Params, error) {
	params, err := s.Build(email, s.region)
	if err != nil {
		return nil, err
	}

	_, secret := s.credentials()
	signature, err := Sign(params, secret)
	if err != nil {
		return nil, err
	}
	params[ParamSignature] = signature

	return params, nil
}

// response is the part of the API reply the sender looks at.
type response struct {
	RequestID string `json:"RequestId"`
	Code      string `json:"Code"`
	Message   string `json:"Message"`
}

// Send implements mailer.Sender.
// On a 2xx answer it returns the number of To, CC and BCC recipients, counted
// before BCC is dropped from the request. The per-recipient outcome inside the
// response body is not inspected; a 2xx is taken as acceptance of all of them.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (int, error) {
	if email == nil {
		return 0, mailer.ErrNoRecipient
	}
	recipients := email.RecipientCount()

	params, err := s.Payload(email)
	if err != nil {
		return 0, err
	}
	if len(email.BCC) > 0 {
		s.logger.WarnContext(ctx, "bcc recipients are not transmitted",
			slog.Int("bcc", len(email.BCC)),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.region.Endpoint, strings.NewReader(params.Values().Encode()))
	if err != nil {
		return 0, errors.Join(ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, errors.Join(ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return 0, errors.Join(ErrTransport, fmt.Errorf("read response: %w", err))
	}

	var reply response
	// Diagnostics only; a malformed body does not change the outcome.
	_ = json.Unmarshal(body, &reply)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			RequestID:  reply.RequestID,
			Code:       reply.Code,
			Message:    reply.Message,
		}
		s.logger.ErrorContext(ctx, "directmail rejected request",
			slog.Int("status", resp.StatusCode),
			slog.String("request_id", reply.RequestID),
			slog.String("code", reply.Code),
		)
		return 0, apiErr
	}

	s.logger.DebugContext(ctx, "email sent",
		slog.String("request_id", reply.RequestID),
		slog.Int("recipients", recipients),
	)

	return recipients, nil
}
