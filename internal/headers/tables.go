package headers

import "strings"

// The functions below are the classification tables on which CORS
// enforcement relies. Each of them expects a byte-lowercase header name.

// IsCORSResponseHeaderName reports whether name is one of the response
// headers through which servers take part in the CORS protocol.
func IsCORSResponseHeaderName(name string) bool {
	switch name {
	case "access-control-allow-origin",
		"access-control-allow-methods",
		"access-control-allow-headers",
		"access-control-allow-credentials",
		"access-control-expose-headers",
		"access-control-max-age":
		return true
	default:
		return false
	}
}

// IsSimpleResponseHeaderName reports whether name is a response header
// that clients may always read, regardless of what the server exposes.
func IsSimpleResponseHeaderName(name string) bool {
	switch name {
	case "cache-control",
		"content-language",
		"content-type",
		"expires",
		"last-modified",
		"pragma":
		return true
	default:
		return false
	}
}

// IsAlwaysReadable reports whether the response header named name can be
// read by clients without being exposed by the server.
func IsAlwaysReadable(name string) bool {
	return IsSimpleResponseHeaderName(name) || IsCORSResponseHeaderName(name)
}

// IsAgentRequestHeaderName reports whether name is a request header that
// user agents include in requests of their own accord, as opposed to
// headers set by the calling application.
func IsAgentRequestHeaderName(name string) bool {
	switch name {
	case "content-length",
		"host",
		"origin":
		return true
	default:
		return false
	}
}

// IsSimpleAuthorRequestHeaderName reports whether name is a request header
// that applications may set without triggering a preflight.
func IsSimpleAuthorRequestHeaderName(name string) bool {
	switch name {
	case "accept",
		"accept-language",
		"content-language":
		return true
	default:
		return false
	}
}

// IsImplicitRequestHeaderName reports whether a request header named name
// never requires the server's explicit permission.
func IsImplicitRequestHeaderName(name string) bool {
	return IsAgentRequestHeaderName(name) || IsSimpleAuthorRequestHeaderName(name)
}

// IsSimpleContentType reports whether mediaType is one of the values of
// Content-Type that do not require a preflight.
// The comparison is exact: parameters (e.g. a charset) make a content type
// non-simple.
func IsSimpleContentType(mediaType string) bool {
	switch mediaType {
	case "application/x-www-form-urlencoded",
		"multipart/form-data",
		"text/plain":
		return true
	default:
		return false
	}
}

// IsForbiddenRequestHeaderName reports whether name is a
// forbidden request-header name [per the Fetch standard],
// i.e. one that browsers do not let applications set.
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#forbidden-header-name
func IsForbiddenRequestHeaderName(name string) bool {
	switch name {
	case "accept-charset",
		"accept-encoding",
		"access-control-request-headers",
		"access-control-request-method",
		"connection",
		"content-length",
		"cookie",
		"cookie2",
		"date",
		"dnt",
		"expect",
		"host",
		"keep-alive",
		"origin",
		"referer",
		"set-cookie",
		"te",
		"trailer",
		"transfer-encoding",
		"upgrade",
		"via":
		return true
	default:
		return strings.HasPrefix(name, "proxy-") ||
			strings.HasPrefix(name, "sec-")
	}
}
