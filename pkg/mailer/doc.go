// Package mailer provides a provider-neutral email message and sending interface.
//
// Providers live in subpackages and implement Sender:
//
//   - directmail: Alibaba Cloud DirectMail (signed form POST)
//   - resend: Resend API
//
// # Usage
//
//	sender, err := directmail.New(directmail.Config{
//		AccessKeyID:     os.Getenv("DIRECTMAIL_ACCESS_KEY_ID"),
//		AccessKeySecret: os.Getenv("DIRECTMAIL_ACCESS_KEY_SECRET"),
//	})
//	if err != nil {
//		return err
//	}
//
//	m := mailer.New(sender, mailer.Config{FallbackSubject: "Notification"})
//
//	email := &mailer.Email{
//		From:    mailer.Address{Name: "Team", Email: "team@example.com"},
//		To:      []mailer.Address{{Name: "John", Email: "john@example.com"}},
//		Subject: "Welcome",
//		HTML:    "<p>Hello!</p>",
//	}
//
//	accepted, err := m.Send(ctx, email.WithTag("welcome"))
//
// # Message Content
//
// An Email with only Text set is a text/plain message; anything else is sent
// as HTML. ContentType and Body report what a provider will transmit.
//
// # Tags
//
// WithTag returns a copy of the email carrying the X-Tag-Name header. Providers
// map it to their own tagging: DirectMail sends it as TagName, Resend as a tag
// named "tag".
//
// # Custom Providers
//
// Implement the Sender interface to add support for other email providers:
//
//	type MySender struct{}
//
//	func (s *MySender) Send(ctx context.Context, email *mailer.Email) (int, error) {
//		// Send email using your provider's API
//		return email.RecipientCount(), nil
//	}
//
// # Errors
//
//   - ErrNoRecipient: No recipient specified
//   - ErrNoSubject: No subject and no fallback subject
//   - ErrNoContent: Neither HTML nor text content
//   - ErrInvalidAddress: Address could not be parsed
//   - ErrSendFailed: The provider failed; joined with the provider's error
package mailer
