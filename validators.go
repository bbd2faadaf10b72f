package corsclient

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jub0bs/corsclient/internal/headers"
	"github.com/jub0bs/corsclient/internal/methods"
	"github.com/jub0bs/corsclient/internal/util"
)

// CheckOrigin checks that res grants req's origin access to req's URL.
// Same-origin requests always pass; cross-origin requests pass only if
// res's Access-Control-Allow-Origin header is either * or req's Origin
// header verbatim.
func CheckOrigin(res Response, req *Request) error {
	if IsSameOrigin(req) {
		return nil
	}
	origin, _ := req.get(headers.Origin)
	acao, _ := headers.Get(res.Header(), headers.ACAO)
	if acao == headers.ValueWildcard || acao == origin {
		return nil
	}
	const tmpl = "origin %q not allowed for resource %q"
	return newAccessDenied(fmt.Sprintf(tmpl, origin, req.URL), req)
}

// CheckMethod checks that res allows req's method.
// Simple methods pass, except for POST requests whose content type is
// not simple; other methods must be listed (regardless of case) in res's
// Access-Control-Allow-Methods header. The wildcard gets no special
// treatment.
func CheckMethod(res Response, req *Request) error {
	method := methods.Normalize(req.Method)
	irregularPost := method == http.MethodPost && !IsSimpleContentType(req)
	if methods.IsSimple(method) && !irregularPost {
		return nil
	}
	allowed := methods.ParseList(headers.Joined(res.Header(), headers.ACAM))
	if allowed.Contains(method) {
		return nil
	}
	const tmpl = "method %q not allowed for resource %q"
	return newAccessDenied(fmt.Sprintf(tmpl, req.Method, req.URL), req)
}

// CheckHeaders checks that res allows all of req's prohibited headers
// (see [ProhibitedHeaders]) by listing them in its
// Access-Control-Allow-Headers header.
// As an exception, a lone Content-Type header carrying a simple content
// type need not be allowed.
func CheckHeaders(res Response, req *Request) error {
	allowed := headers.ParseSet(headers.Joined(res.Header(), headers.ACAH))
	prohibited := prohibitedHeaders(req, allowed)
	switch {
	case prohibited.Size() == 0:
		return nil
	case prohibited.Size() == 1 &&
		prohibited.Contains("content-type") &&
		IsSimpleContentType(req):
		return nil
	}
	var b strings.Builder
	b.WriteString("request headers ")
	util.Join(&b, prohibited.ToSortedSlice())
	fmt.Fprintf(&b, " not allowed for resource %q", req.URL)
	return newAccessDenied(b.String(), req)
}
