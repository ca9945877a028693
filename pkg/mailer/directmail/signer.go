package directmail

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Sign computes the request signature over params with the account secret.
//
// The canonical query string is built from the parameters sorted by key, with
// both key and value percent-encoded (RFC 3986 unreserved characters only) and
// joined as k=v pairs with '&'. The string to sign is
//
//	POST&%2F&<percent-encoded canonical query>
//
// and the signature is the base64 encoded HMAC-SHA1 of that string, keyed with
// secret followed by a literal '&'.
func Sign(params Params, secret string) (string, error) {
	if len(params) == 0 {
		return "", fmt.Errorf("%w: no parameters to sign", ErrSigning)
	}

	mac := hmac.New(sha1.New, []byte(secret+"&"))
	if _, err := mac.Write([]byte(StringToSign(params))); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// StringToSign returns the exact input of the HMAC for params.
func StringToSign(params Params) string {
	return "POST&" + percentEncode("/") + "&" + percentEncode(CanonicalQuery(params))
}

// CanonicalQuery returns the sorted, percent-encoded serialization of params.
func CanonicalQuery(params Params) string {
	keys := params.Keys()
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = percentEncode(k) + "=" + percentEncode(params[k])
	}
	return strings.Join(pairs, "&")
}

// percentEncode escapes everything except A-Z a-z 0-9 '-' '_' '.' '~'.
// url.QueryEscape already leaves exactly that set alone but writes spaces as '+';
// a literal '+' comes out as %2B, so the replacement is unambiguous.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
