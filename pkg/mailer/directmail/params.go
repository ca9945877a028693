package directmail

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// Request parameter names.
const (
	ParamAccountName      = "AccountName"
	ParamReplyToAddress   = "ReplyToAddress"
	ParamAddressType      = "AddressType"
	ParamToAddress        = "ToAddress"
	ParamFromAlias        = "FromAlias"
	ParamSubject          = "Subject"
	ParamTextBody         = "TextBody"
	ParamHTMLBody         = "HtmlBody"
	ParamClickTrace       = "ClickTrace"
	ParamFormat           = "Format"
	ParamAction           = "Action"
	ParamVersion          = "Version"
	ParamAccessKeyID      = "AccessKeyId"
	ParamTimestamp        = "Timestamp"
	ParamSignatureMethod  = "SignatureMethod"
	ParamSignatureVersion = "SignatureVersion"
	ParamSignatureNonce   = "SignatureNonce"
	ParamRegionID         = "RegionId"
	ParamTagName          = "TagName"
	ParamSignature        = "Signature"
)

const (
	actionSingleSendMail = "SingleSendMail"
	formatJSON           = "json"
	signatureMethod      = "HMAC-SHA1"
	signatureVersion     = "1.0"

	// timestampLayout is ISO 8601 in UTC with second precision.
	timestampLayout = "2006-01-02T15:04:05Z"
)

// Params is the parameter set of a single API call.
// Order carries no meaning; Sign and Encode sort keys themselves.
type Params map[string]string

// Keys returns the parameter names in byte-wise ascending order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Values converts the set into form values for the request body.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for k, val := range p {
		v.Set(k, val)
	}
	return v
}

// compact drops every parameter with an empty value.
func (p Params) compact() {
	for k, v := range p {
		if v == "" {
			delete(p, k)
		}
	}
}

// Build assembles the unsigned parameter set for one SingleSendMail call.
// BCC recipients are never transmitted: DirectMail only knows visible recipients,
// so they are left out of ToAddress. The email itself is not modified.
// Returns mailer.ErrNoRecipient when there is no To or CC recipient.
// Returns ErrMissingSender when neither the config nor the email names a sender.
func (s *Sender) Build(email *mailer.Email, region Region) (Params, error) {
	if email == nil || len(email.To)+len(email.CC) == 0 {
		return nil, mailer.ErrNoRecipient
	}

	accountName := s.cfg.FromAddress
	if accountName == "" {
		accountName = email.From.Email
	}
	if accountName == "" {
		return nil, ErrMissingSender
	}

	fromAlias := s.cfg.FromAlias
	if fromAlias == "" {
		fromAlias = email.From.Name
	}

	accessKeyID, _ := s.credentials()

	p := Params{
		ParamAccountName:      accountName,
		ParamReplyToAddress:   "true",
		ParamAddressType:      string(s.cfg.AddressType),
		ParamToAddress:        toAddress(email),
		ParamFromAlias:        fromAlias,
		ParamSubject:          email.Subject,
		ParamClickTrace:       s.cfg.clickTrace(),
		ParamFormat:           formatJSON,
		ParamAction:           actionSingleSendMail,
		ParamVersion:          region.Version,
		ParamAccessKeyID:      accessKeyID,
		ParamTimestamp:        s.now().UTC().Format(timestampLayout),
		ParamSignatureMethod:  signatureMethod,
		ParamSignatureVersion: signatureVersion,
		ParamSignatureNonce:   s.nonce(),
		ParamRegionID:         region.ID,
		ParamTagName:          email.Tag(),
	}
	p.compact()

	// Set after compaction so exactly one body field is always present.
	if email.ContentType() == mailer.ContentTypeText {
		p[ParamTextBody] = email.Body()
	} else {
		p[ParamHTMLBody] = email.Body()
	}

	return p, nil
}

// toAddress joins the union of To and CC recipients with commas.
// A repeated address keeps its first position and the name of its last entry.
func toAddress(email *mailer.Email) string {
	order := make([]string, 0, len(email.To)+len(email.CC))
	names := make(map[string]string, cap(order))
	for _, a := range slices.Concat(email.To, email.CC) {
		if _, ok := names[a.Email]; !ok {
			order = append(order, a.Email)
		}
		names[a.Email] = a.Name
	}

	list := make([]string, len(order))
	for i, addr := range order {
		list[i] = mailer.Recipient(names[addr], addr)
	}
	return strings.Join(list, ",")
}

func defaultNow() time.Time {
	return time.Now()
}
