package payment

import (
	"net/url"
	"strings"
)

// Decode parses an application/x-www-form-urlencoded IPN body. Segments
// without exactly one '=' or with an empty key or value are skipped. A key
// or value whose percent escapes are broken is kept as sent. Later
// duplicates overwrite earlier ones.
func Decode(raw string) Fields {
	fields := make(Fields)

	for _, segment := range strings.Split(raw, "&") {
		if strings.Count(segment, "=") != 1 {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(segment, "=")
		if rawKey == "" || rawValue == "" {
			continue
		}

		fields[unescape(rawKey)] = unescape(rawValue)
	}

	return fields
}

func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// Encode escapes s for use as a query string key or value. Spaces become
// %20 rather than '+', matching what PayPal emits in its own links.
func Encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
