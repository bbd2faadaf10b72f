package corsclient

import (
	"github.com/jub0bs/corsclient/internal/headers"
	"github.com/jub0bs/corsclient/internal/methods"
	"github.com/jub0bs/corsclient/internal/origins"
	"github.com/jub0bs/corsclient/internal/util"
)

// IsSameOrigin reports whether req's URL and the value of req's Origin
// header designate the same origin, i.e. whether they have the same
// scheme, host, and port (80 for http and 443 for https when implicit).
//
// A request without an Origin header is not a CORS request; IsSameOrigin
// treats it as same-origin.
// A request whose Origin or URL cannot be reduced to an origin
// (e.g. "null") is deemed cross-origin.
func IsSameOrigin(req *Request) bool {
	origin, found := req.get(headers.Origin)
	if !found {
		return true
	}
	target, ok := origins.Normalize(req.URL)
	if !ok {
		return false
	}
	source, ok := origins.Normalize(origin)
	return ok && source == target
}

// IsSimpleMethod reports whether req's method is GET, HEAD, or POST
// (regardless of case) and req's content type is simple.
func IsSimpleMethod(req *Request) bool {
	return methods.IsSimple(req.Method) && IsSimpleContentType(req)
}

// IsSimpleContentType reports whether req has no Content-Type header or
// one whose value is exactly application/x-www-form-urlencoded,
// multipart/form-data, or text/plain.
func IsSimpleContentType(req *Request) bool {
	ct, found := req.get(headers.ContentType)
	return !found || headers.IsSimpleContentType(ct)
}

// ProhibitedHeaders returns the byte-lowercased names, sorted in
// lexicographical order, of the headers present on req that
//   - are not added implicitly by user agents (e.g. Host or Origin),
//   - are not simple author headers (e.g. Accept), and
//   - are absent from allowed.
//
// Each element of allowed is interpreted as a comma-separated list of
// header names; names are compared case-insensitively.
func ProhibitedHeaders(req *Request, allowed ...string) []string {
	return prohibitedHeaders(req, headers.ParseSet(allowed...)).ToSortedSlice()
}

func prohibitedHeaders(req *Request, allowed util.Set) util.Set {
	res := make(util.Set)
	for name := range req.Header {
		name = util.ByteLowercase(name)
		if headers.IsImplicitRequestHeaderName(name) || allowed.Contains(name) {
			continue
		}
		res.Add(name)
	}
	return res
}
