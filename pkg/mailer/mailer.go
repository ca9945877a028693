package mailer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/mailkit/pkg/logger"
)

// Mailer validates outgoing messages and hands them to a provider Sender.
type Mailer struct {
	sender Sender
	logger *slog.Logger
	config Config
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithLogger sets the logger used to report delivery outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a new Mailer with the given sender.
func New(sender Sender, cfg Config, opts ...Option) *Mailer {
	m := &Mailer{
		sender: sender,
		logger: logger.NewNope(),
		config: cfg,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send validates the email and delivers it through the configured provider.
// Returns the number of recipients accepted for delivery.
// An empty subject is replaced with Config.FallbackSubject when one is set.
func (m *Mailer) Send(ctx context.Context, email *Email) (int, error) {
	if email == nil || email.RecipientCount() == 0 {
		return 0, ErrNoRecipient
	}
	if email.HTML == "" && email.Text == "" {
		return 0, ErrNoContent
	}

	if email.Subject == "" {
		if m.config.FallbackSubject == "" {
			return 0, ErrNoSubject
		}
		c := *email
		c.Subject = m.config.FallbackSubject
		email = &c
	}

	accepted, err := m.sender.Send(ctx, email)
	if err != nil {
		m.logger.ErrorContext(ctx, "email delivery failed",
			slog.String("subject", email.Subject),
			slog.Int("recipients", email.RecipientCount()),
			slog.String("error", err.Error()),
		)
		return 0, errors.Join(ErrSendFailed, err)
	}

	m.logger.InfoContext(ctx, "email accepted for delivery",
		slog.String("subject", email.Subject),
		slog.Int("accepted", accepted),
	)
	return accepted, nil
}
