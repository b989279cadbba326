package webhook

import (
	"net/http"
	"strings"
)

// NotifierAgent is the substring PayPal puts in the User-Agent of IPN posts.
const NotifierAgent = "PayPal IPN"

// Matcher decides whether a request is an IPN for the Listener.
type Matcher func(r *http.Request) bool

// PathMatcher matches POSTs to exactly path. With requireAgent the
// User-Agent must also identify the PayPal notifier; the header is only a
// filter on top of the path, never a match on its own.
func PathMatcher(path string, requireAgent bool) Matcher {
	return func(r *http.Request) bool {
		if r.Method != http.MethodPost || r.URL.Path != path {
			return false
		}
		if requireAgent && !strings.Contains(r.UserAgent(), NotifierAgent) {
			return false
		}
		return true
	}
}
