package headers

import (
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// header names in canonical format
const (
	// request headers implicitly set by user agents
	Origin = "Origin"
	Host   = "Host"

	// preflight-only request headers
	ACRM = "Access-Control-Request-Method"
	ACRH = "Access-Control-Request-Headers"

	// common response headers
	ACAO = "Access-Control-Allow-Origin"

	// preflight-only response headers
	ACAM = "Access-Control-Allow-Methods"
	ACAH = "Access-Control-Allow-Headers"

	// actual-only response headers
	ACEH = "Access-Control-Expose-Headers"

	ContentType = "Content-Type"
	Location    = "Location"
)

const (
	ValueWildcard = "*"
	ValueSep      = ","
)

// IsValid reports whether name is a valid header name,
// [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#header-name
func IsValid(name string) bool {
	return httpguts.ValidHeaderFieldName(name)
}

// Canonical returns the canonical format of name, i.e. the format in which
// the first letter and any letter following a hyphen are uppercase and
// the rest are lowercase. If name is not a valid header name, Canonical
// returns it unchanged.
func Canonical(name string) string {
	return http.CanonicalHeaderKey(name)
}

// Lookup returns the values associated with name in hdrs.
// Contrary to [http.Header.Values], Lookup also finds keys that are not in
// canonical format, as found in header maps built by hand.
// The result must not be mutated.
func Lookup(hdrs http.Header, name string) ([]string, bool) {
	if v, found := hdrs[http.CanonicalHeaderKey(name)]; found {
		return v, true
	}
	for k, v := range hdrs {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// Get returns the first value associated with name in hdrs,
// regardless of the case in which hdrs's keys are written.
// It returns "", false if hdrs has no such key.
func Get(hdrs http.Header, name string) (string, bool) {
	v, found := Lookup(hdrs, name)
	if !found || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Joined returns all values associated with name in hdrs
// (regardless of the case of hdrs's keys) joined with commas,
// which is how [list-based fields] spread over multiple field lines
// must be interpreted.
//
// [list-based fields]: https://httpwg.org/specs/rfc9110.html#abnf.extension
func Joined(hdrs http.Header, name string) string {
	v, _ := Lookup(hdrs, name)
	switch len(v) {
	case 0:
		return ""
	case 1:
		return v[0]
	default:
		return strings.Join(v, ValueSep)
	}
}
