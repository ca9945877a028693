package mailer

import "context"

// Sender defines the minimal interface that email providers must implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers an email message and returns the number of recipients
	// the provider accepted for delivery.
	// Returns an error if delivery fails; no recipients are counted in that case.
	Send(ctx context.Context, email *Email) (int, error)
}
