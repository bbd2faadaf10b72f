package corsclient_test

import (
	"maps"
	"net/http"
	"slices"
)

const (
	// common request headers
	headerOrigin = "Origin"
	headerHost   = "Host"

	// preflight-only request headers
	headerACRM = "Access-Control-Request-Method"
	headerACRH = "Access-Control-Request-Headers"

	// common response headers
	headerACAO = "Access-Control-Allow-Origin"

	// preflight-only response headers
	headerACAM = "Access-Control-Allow-Methods"
	headerACAH = "Access-Control-Allow-Headers"

	// actual-only response headers
	headerACEH = "Access-Control-Expose-Headers"

	headerContentType = "Content-Type"
	headerLocation    = "Location"

	wildcard = "*"
)

const (
	targetURL      = "http://example.com/api/users"
	targetHost     = "example.com"
	sameOrigin     = "http://example.com"
	crossOrigin    = "https://app.example.org"
	mimeJSON       = "application/json"
	mimeTextPlain  = "text/plain"
	mimeURLEncoded = "application/x-www-form-urlencoded"
)

type fakeResponse struct {
	status int
	header http.Header
}

func (r *fakeResponse) StatusCode() int {
	return r.status
}

func (r *fakeResponse) Header() http.Header {
	return r.header
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func equalHeaders(h1, h2 http.Header) bool {
	return maps.EqualFunc(h1, h2, slices.Equal[[]string])
}
