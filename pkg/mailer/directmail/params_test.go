package directmail

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

var fixedTime = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

func newTestSender(t *testing.T, cfg Config, opts ...Option) *Sender {
	t.Helper()

	if cfg.AccessKeyID == "" {
		cfg.AccessKeyID = "testkey"
	}
	if cfg.AccessKeySecret == "" {
		cfg.AccessKeySecret = "testsecret"
	}

	defaults := []Option{
		WithClock(func() time.Time { return fixedTime }),
		WithNonce(func() string { return "nonce-1" }),
	}
	s, err := New(cfg, append(defaults, opts...)...)
	require.NoError(t, err)
	return s
}

func sampleEmail() *mailer.Email {
	return &mailer.Email{
		From:    mailer.Address{Name: "Team", Email: "noreply@example.com"},
		To:      []mailer.Address{{Name: "Alice", Email: "alice@example.com"}},
		Subject: "Hello World",
		Text:    "Hi there + welcome",
	}
}

func TestBuild_AllFields(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{})

	params, err := s.Build(sampleEmail().WithTag("welcome"), s.Region())
	require.NoError(t, err)

	require.Equal(t, Params{
		ParamAccessKeyID:      "testkey",
		ParamAccountName:      "noreply@example.com",
		ParamAction:           "SingleSendMail",
		ParamAddressType:      "1",
		ParamClickTrace:       "0",
		ParamFormat:           "json",
		ParamFromAlias:        "Team",
		ParamRegionID:         "cn-hangzhou",
		ParamReplyToAddress:   "true",
		ParamSignatureMethod:  "HMAC-SHA1",
		ParamSignatureNonce:   "nonce-1",
		ParamSignatureVersion: "1.0",
		ParamSubject:          "Hello World",
		ParamTagName:          "welcome",
		ParamTextBody:         "Hi there + welcome",
		ParamTimestamp:        "2024-01-02T03:04:05Z",
		ParamToAddress:        "Alice <alice@example.com>",
		ParamVersion:          "2015-11-23",
	}, params)
}

func TestPayload_Golden(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{})

	params, err := s.Payload(sampleEmail().WithTag("welcome"))
	require.NoError(t, err)

	require.Equal(t, "3x+8Xp3rhSVy941LLlc1roLPMzE=", params[ParamSignature])
}

func TestBuild_NeverTransmitsBCC(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{})

	email := sampleEmail()
	email.CC = []mailer.Address{{Email: "carol@example.com"}}
	email.BCC = []mailer.Address{{Name: "Hidden", Email: "hidden@example.com"}, {Email: "secret@example.com"}}

	params, err := s.Build(email, s.Region())
	require.NoError(t, err)

	require.Equal(t, "Alice <alice@example.com>,carol@example.com", params[ParamToAddress])
	for k, v := range params {
		require.NotContains(t, v, "hidden@example.com", "parameter %s leaks bcc", k)
		require.NotContains(t, v, "secret@example.com", "parameter %s leaks bcc", k)
	}
	// The caller's message keeps its BCC list.
	require.Len(t, email.BCC, 2)
}

func TestBuild_ToAddressOrder(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{})

	email := sampleEmail()
	email.To = []mailer.Address{
		{Email: "z@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	}
	email.CC = []mailer.Address{{Name: "Ann", Email: "ann@example.com"}}

	params, err := s.Build(email, s.Region())
	require.NoError(t, err)

	require.Equal(t, "z@example.com,Bob <bob@example.com>,Ann <ann@example.com>", params[ParamToAddress])
}

func TestBuild_ToAddressDeduplicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		to       []mailer.Address
		cc       []mailer.Address
		expected string
	}{
		{
			name:     "same address in to and cc",
			to:       []mailer.Address{{Name: "Alice", Email: "alice@example.com"}},
			cc:       []mailer.Address{{Name: "Alice", Email: "alice@example.com"}},
			expected: "Alice <alice@example.com>",
		},
		{
			name: "repeated in to keeps first position",
			to: []mailer.Address{
				{Email: "alice@example.com"},
				{Email: "bob@example.com"},
				{Email: "alice@example.com"},
			},
			expected: "alice@example.com,bob@example.com",
		},
		{
			name:     "last display name wins",
			to:       []mailer.Address{{Name: "Al", Email: "alice@example.com"}, {Email: "bob@example.com"}},
			cc:       []mailer.Address{{Name: "Alice Smith", Email: "alice@example.com"}},
			expected: "Alice Smith <alice@example.com>,bob@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSender(t, Config{})

			email := sampleEmail()
			email.To = tt.to
			email.CC = tt.cc

			params, err := s.Build(email, s.Region())
			require.NoError(t, err)

			require.Equal(t, tt.expected, params[ParamToAddress])
			// Every listed recipient is still counted.
			require.Equal(t, len(tt.to)+len(tt.cc), email.RecipientCount())
		})
	}
}

func TestBuild_BCCOnlyHasNoRecipient(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{})

	email := sampleEmail()
	email.To = nil
	email.BCC = []mailer.Address{{Email: "hidden@example.com"}}

	params, err := s.Build(email, s.Region())

	require.ErrorIs(t, err, mailer.ErrNoRecipient)
	require.Nil(t, params)
}

func TestBuild_BodyFieldByContentType(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{})

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()
		email := sampleEmail()
		email.Text = "plain body"

		params, err := s.Build(email, s.Region())
		require.NoError(t, err)
		require.Equal(t, "plain body", params[ParamTextBody])
		require.NotContains(t, params, ParamHTMLBody)
	})

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		email := sampleEmail()
		email.HTML = "<p>rich body</p>"
		email.Text = "alternative"

		params, err := s.Build(email, s.Region())
		require.NoError(t, err)
		require.Equal(t, "<p>rich body</p>", params[ParamHTMLBody])
		require.NotContains(t, params, ParamTextBody)
	})
}

func TestBuild_TagOmittedWhenAbsent(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{})

	params, err := s.Build(sampleEmail(), s.Region())
	require.NoError(t, err)

	require.NotContains(t, params, ParamTagName)
}

func TestBuild_ElidesEmptyValues(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{})

	email := sampleEmail()
	email.From.Name = ""
	email.Subject = ""

	params, err := s.Build(email, s.Region())
	require.NoError(t, err)

	require.NotContains(t, params, ParamFromAlias)
	require.NotContains(t, params, ParamSubject)
	for k, v := range params {
		require.NotEmpty(t, v, "parameter %s is empty", k)
	}
}

func TestBuild_ConfigOverrides(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{
		RegionID:    "ap-southeast-1",
		FromAddress: "alerts@mail.example.com",
		FromAlias:   "Alerts",
		AddressType: AddressTypeRandom,
		ClickTrace:  true,
	})

	params, err := s.Build(sampleEmail(), s.Region())
	require.NoError(t, err)

	require.Equal(t, "alerts@mail.example.com", params[ParamAccountName])
	require.Equal(t, "Alerts", params[ParamFromAlias])
	require.Equal(t, "0", params[ParamAddressType])
	require.Equal(t, "1", params[ParamClickTrace])
	require.Equal(t, "ap-southeast-1", params[ParamRegionID])
	require.Equal(t, "2017-06-22", params[ParamVersion])
}

func TestBuild_MissingSender(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{})

	email := sampleEmail()
	email.From = mailer.Address{}

	params, err := s.Build(email, s.Region())

	require.ErrorIs(t, err, ErrMissingSender)
	require.Nil(t, params)
}

func TestBuild_SenderFromConfigOnly(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, Config{FromAddress: "noreply@example.com"})

	email := sampleEmail()
	email.From = mailer.Address{}

	params, err := s.Build(email, s.Region())
	require.NoError(t, err)
	require.Equal(t, "noreply@example.com", params[ParamAccountName])
}

func TestBuild_TimestampIsUTC(t *testing.T) {
	t.Parallel()

	local := time.Date(2024, time.January, 2, 11, 4, 5, 999, time.FixedZone("UTC+8", 8*60*60))
	s := newTestSender(t, Config{}, WithClock(func() time.Time { return local }))

	params, err := s.Build(sampleEmail(), s.Region())
	require.NoError(t, err)

	require.Equal(t, "2024-01-02T03:04:05Z", params[ParamTimestamp])
}

func TestBuild_FreshTimestampAndNoncePerCall(t *testing.T) {
	t.Parallel()

	var ticks atomic.Int64
	s := newTestSender(t, Config{},
		WithClock(func() time.Time {
			return fixedTime.Add(time.Duration(ticks.Add(1)) * time.Second)
		}),
		WithNonce(func() string {
			return fmt.Sprintf("nonce-%d", ticks.Load())
		}),
	)

	first, err := s.Build(sampleEmail(), s.Region())
	require.NoError(t, err)
	second, err := s.Build(sampleEmail(), s.Region())
	require.NoError(t, err)

	require.NotEqual(t, first[ParamTimestamp], second[ParamTimestamp])
	require.NotEqual(t, first[ParamSignatureNonce], second[ParamSignatureNonce])
}

func TestBuild_DefaultNonceIsUnique(t *testing.T) {
	t.Parallel()

	cfg := Config{AccessKeyID: "testkey", AccessKeySecret: "testsecret"}
	s, err := New(cfg)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for range 100 {
		params, err := s.Build(sampleEmail(), s.Region())
		require.NoError(t, err)

		nonce := params[ParamSignatureNonce]
		require.NotEmpty(t, nonce)
		require.NotContains(t, seen, nonce)
		seen[nonce] = struct{}{}

		require.True(t, strings.HasSuffix(params[ParamTimestamp], "Z"))
	}
}
