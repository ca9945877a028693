package resend

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// tagName is the Resend tag that carries mailer.Email.Tag.
const tagName = "tag"

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send implements mailer.Sender.
// Resend delivers BCC itself, so every To, CC and BCC recipient is counted.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (int, error) {
	if email == nil {
		return 0, mailer.ErrNoRecipient
	}

	_, err := s.client.Emails.SendWithContext(ctx, s.request(email))
	if err != nil {
		return 0, fmt.Errorf("resend: failed to send email: %w", err)
	}

	return email.RecipientCount(), nil
}

// request maps the provider-neutral email onto a Resend request.
func (s *Sender) request(email *mailer.Email) *resend.SendEmailRequest {
	from := email.From.String()
	if email.From.Email == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      addresses(email.To),
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      addresses(email.CC),
		Bcc:     addresses(email.BCC),
	}

	headers := make(map[string]string, len(email.Headers))
	for k, v := range email.Headers {
		if !strings.EqualFold(k, mailer.HeaderTagName) {
			headers[k] = v
		}
	}
	if len(headers) > 0 {
		req.Headers = headers
	}

	if tag := email.Tag(); tag != "" {
		req.Tags = []resend.Tag{{Name: tagName, Value: tag}}
	}

	return req
}

func addresses(list []mailer.Address) []string {
	if len(list) == 0 {
		return nil
	}
	result := make([]string, len(list))
	for i, a := range list {
		result[i] = a.String()
	}
	return result
}
