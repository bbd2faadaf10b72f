package corsclient

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/jub0bs/corsclient/internal/headers"
)

// A Request is a transport-agnostic view of an outgoing HTTP request,
// restricted to what matters to the CORS protocol.
// Header keys are compared case-insensitively, whether or not they're
// in canonical format.
//
// Functions of this package never mutate the Requests passed to them.
type Request struct {
	Method string
	URL    string
	Header http.Header
}

// NewRequest returns a Request that reflects r.
// Because net/http keeps the Host header out of r.Header,
// NewRequest copies it (from r.Host or, failing that, from r.URL.Host)
// into the result's Header.
func NewRequest(r *http.Request) *Request {
	hdr := r.Header.Clone()
	if hdr == nil {
		hdr = make(http.Header)
	}
	host := r.Host
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}
	if _, found := headers.Lookup(hdr, headers.Host); !found && host != "" {
		hdr[headers.Host] = []string{host}
	}
	var url string
	if r.URL != nil {
		url = r.URL.String()
	}
	return &Request{
		Method: r.Method,
		URL:    url,
		Header: hdr,
	}
}

func (r *Request) get(name string) (string, bool) {
	return headers.Get(r.Header, name)
}

// toHTTP builds a net/http request out of r, bound to ctx.
func (r *Request) toHTTP(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range r.Header {
		if len(v) == 0 {
			continue
		}
		if strings.EqualFold(k, headers.Host) {
			req.Host = v[0]
			continue
		}
		k = http.CanonicalHeaderKey(k)
		req.Header[k] = append(req.Header[k], slices.Clone(v)...)
	}
	return req, nil
}

// A Response is the part of an HTTP response that CORS validation reads.
// Implementations must not let validation mutate the underlying response.
type Response interface {
	StatusCode() int
	Header() http.Header
}

// WrapResponse adapts res to the [Response] interface.
func WrapResponse(res *http.Response) Response {
	return httpResponse{res}
}

type httpResponse struct {
	res *http.Response
}

func (r httpResponse) StatusCode() int {
	return r.res.StatusCode
}

func (r httpResponse) Header() http.Header {
	return r.res.Header
}
