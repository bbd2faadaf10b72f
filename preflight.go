package corsclient

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/jub0bs/corsclient/internal/headers"
	"github.com/jub0bs/corsclient/internal/methods"
)

// A Validator designates one of the checks that a response must pass for
// the CORS protocol to grant access to it.
type Validator uint8

const (
	// OriginValidator runs [CheckOrigin].
	OriginValidator Validator = iota + 1
	// HeadersValidator runs [CheckHeaders].
	HeadersValidator
	// MethodValidator runs [CheckMethod].
	MethodValidator
)

// Validate applies the check designated by v to res, in the context of
// req. The result is nil if the check passes.
func (v Validator) Validate(res Response, req *Request) error {
	switch v {
	case OriginValidator:
		return CheckOrigin(res, req)
	case HeadersValidator:
		return CheckHeaders(res, req)
	case MethodValidator:
		return CheckMethod(res, req)
	default:
		return fmt.Errorf("cors: unknown validator %d", v)
	}
}

func (v Validator) String() string {
	switch v {
	case OriginValidator:
		return "origin"
	case HeadersValidator:
		return "headers"
	case MethodValidator:
		return "method"
	default:
		return fmt.Sprintf("Validator(%d)", v)
	}
}

// PreparePreflight decides whether req must be preceded by a preflight
// request and, if so, builds it.
//
// The resulting Request, if any, is an OPTIONS request to req's URL;
// its headers consist of req's Host header (if any) and, as needed,
// Access-Control-Request-Method and Access-Control-Request-Headers.
// The latter lists header names in canonical format, sorted and separated
// by commas.
//
// The resulting validators, free of duplicates and listed in the order
// origin, headers, method, are the checks to run against the preflight
// response. OPTIONS requests are never preflighted and PreparePreflight
// returns nil, nil for them.
//
// Note that a cross-origin request that is otherwise simple does elicit a
// preflight whose only check is [OriginValidator]; user agents would
// send no preflight in this case.
func PreparePreflight(req *Request) (*Request, []Validator) {
	if methods.Normalize(req.Method) == http.MethodOptions {
		return nil, nil
	}
	var p preflightBuilder
	p.addOrigin(req)
	p.addHeaders(req)
	p.addMethod(req)
	if len(p.hdr) == 0 && len(p.validators) == 0 {
		return nil, nil
	}
	if host, found := req.get(headers.Host); found {
		p.setHeader(headers.Host, host)
	}
	preflight := Request{
		Method: http.MethodOptions,
		URL:    req.URL,
		Header: p.hdr,
	}
	if preflight.Header == nil {
		preflight.Header = make(http.Header)
	}
	return &preflight, p.validators
}

type preflightBuilder struct {
	hdr        http.Header
	validators []Validator
}

func (p *preflightBuilder) setHeader(name, value string) {
	if p.hdr == nil {
		p.hdr = make(http.Header)
	}
	p.hdr[name] = []string{value}
}

func (p *preflightBuilder) require(v Validator) {
	if !slices.Contains(p.validators, v) {
		p.validators = append(p.validators, v)
	}
}

// requestHeader ensures that name is listed in ACRH.
func (p *preflightBuilder) requestHeader(name string) {
	requested := headers.ParseSet(p.hdr.Get(headers.ACRH))
	requested.Add(name)
	p.setHeader(headers.ACRH, headers.JoinCanonical(requested))
}

// The origin contributes no preflight header, since the Origin header is
// sent along with the preflight anyway.
func (p *preflightBuilder) addOrigin(req *Request) {
	if !IsSameOrigin(req) {
		p.require(OriginValidator)
	}
}

// A simple Content-Type is left out of Access-Control-Request-Headers,
// like browsers do. Some clients list it regardless; CheckHeaders
// tolerates a lone content-type of a simple type for that reason.
func (p *preflightBuilder) addHeaders(req *Request) {
	needed := prohibitedHeaders(req, nil)
	if IsSimpleContentType(req) {
		delete(needed, "content-type")
	} else {
		needed.Add("content-type")
	}
	if needed.Size() == 0 {
		return
	}
	p.setHeader(headers.ACRH, headers.JoinCanonical(needed))
	p.require(HeadersValidator)
}

func (p *preflightBuilder) addMethod(req *Request) {
	if IsSimpleMethod(req) {
		return
	}
	p.setHeader(headers.ACRM, req.Method)
	p.require(MethodValidator)
	if !IsSimpleContentType(req) {
		p.requestHeader(headers.ContentType)
		p.require(HeadersValidator)
	}
}
