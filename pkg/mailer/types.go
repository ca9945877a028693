package mailer

import (
	"fmt"
	"maps"
	"net/mail"
	"strings"
)

// HeaderTagName carries the delivery tag for providers that support one.
const HeaderTagName = "X-Tag-Name"

// Body content types.
const (
	ContentTypeText = "text/plain"
	ContentTypeHTML = "text/html"
)

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string // Display name, may be empty
	Email string // Bare address, e.g. "user@example.com"
}

// String returns the address in "Name <email>" form, or the bare email when no name is set.
func (a Address) String() string {
	return Recipient(a.Name, a.Email)
}

// ParseAddress parses a single RFC 5322 address such as "Alice <alice@example.com>".
func ParseAddress(s string) (Address, error) {
	parsed, err := mail.ParseAddress(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	return Address{Name: parsed.Name, Email: parsed.Address}, nil
}

// ParseAddressList parses a comma-separated list of RFC 5322 addresses.
// An empty or blank input yields an empty list.
func ParseAddressList(s string) ([]Address, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parsed, err := mail.ParseAddressList(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	result := make([]Address, len(parsed))
	for i, p := range parsed {
		result[i] = Address{Name: p.Name, Email: p.Address}
	}
	return result, nil
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	Headers map[string]string // Custom headers
	Subject string            // Email subject
	HTML    string            // HTML body content
	Text    string            // Plain text body content
	From    Address           // Sender; providers may override it from their config
	ReplyTo string            // Reply-to address
	To      []Address         // Recipients
	CC      []Address         // Carbon copy recipients
	BCC     []Address         // Blind carbon copy recipients
}

// WithTag returns a copy of the email labelled with the given delivery tag.
// The receiver is left untouched.
func (e *Email) WithTag(name string) *Email {
	c := *e
	c.Headers = maps.Clone(e.Headers)
	if c.Headers == nil {
		c.Headers = make(map[string]string, 1)
	}
	c.Headers[HeaderTagName] = name
	return &c
}

// Tag returns the delivery tag or an empty string when none is set.
// The header name is matched case-insensitively.
func (e *Email) Tag() string {
	if tag, ok := e.Headers[HeaderTagName]; ok {
		return tag
	}
	for k, v := range e.Headers {
		if strings.EqualFold(k, HeaderTagName) {
			return v
		}
	}
	return ""
}

// ContentType reports the body content type. Messages with only a plain text
// body are text/plain, everything else is treated as HTML.
func (e *Email) ContentType() string {
	if e.HTML == "" && e.Text != "" {
		return ContentTypeText
	}
	return ContentTypeHTML
}

// Body returns the body matching ContentType.
func (e *Email) Body() string {
	if e.ContentType() == ContentTypeText {
		return e.Text
	}
	return e.HTML
}

// RecipientCount returns the number of To, CC and BCC recipients.
func (e *Email) RecipientCount() int {
	return len(e.To) + len(e.CC) + len(e.BCC)
}
