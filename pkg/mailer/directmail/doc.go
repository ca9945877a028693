// Package directmail implements mailer.Sender on top of the Alibaba Cloud
// DirectMail SingleSendMail API.
//
// Every message becomes one form-encoded POST to the regional endpoint. The
// request parameters are signed with HMAC-SHA1 over a canonical, sorted and
// percent-encoded query string, keyed with the account secret.
//
// # Usage
//
//	cfg, err := directmail.ConfigFromEnv()
//	if err != nil {
//		return err
//	}
//
//	sender, err := directmail.New(cfg, directmail.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	m := mailer.New(sender, mailer.Config{FallbackSubject: "Notification"})
//	accepted, err := m.Send(ctx, (&mailer.Email{
//		From:    mailer.Address{Name: "Team", Email: "noreply@mail.example.com"},
//		To:      []mailer.Address{{Email: "user@example.com"}},
//		Subject: "Welcome",
//		HTML:    "<p>Hello!</p>",
//	}).WithTag("onboarding"))
//
// # Regions
//
// Supported regions are cn-hangzhou (default), ap-southeast-1 and
// ap-southeast-2. Any other RegionID is rejected by New with ErrInvalidConfig.
//
// # Recipients
//
// DirectMail only accepts visible recipients. To and CC addresses are sent in
// ToAddress; BCC addresses are never transmitted but are still included in the
// count returned by Send.
//
// # Delivery result
//
// Send reports success for any 2xx answer and does not inspect per-recipient
// status in the response body. Non-2xx answers are returned as *APIError,
// which carries the RequestId for support requests. Network failures match
// ErrTransport. Nothing is retried.
//
// # Errors
//
//   - ErrInvalidConfig: missing credentials, unknown region or bad AddressType
//   - ErrUnknownRegion: region id not in the table
//   - ErrMissingSender: neither Config.FromAddress nor Email.From is set
//   - ErrSigning: nothing to sign
//   - ErrTransport: network failure or non-2xx answer
package directmail
