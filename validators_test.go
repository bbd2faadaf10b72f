package corsclient_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jub0bs/corsclient"
)

type ValidatorTestCase struct {
	desc      string
	method    string
	reqHeader http.Header
	resHeader http.Header
	wantErr   string // empty => no error
}

func runValidatorTests(
	t *testing.T,
	check func(corsclient.Response, *corsclient.Request) error,
	cases []ValidatorTestCase,
) {
	t.Helper()
	for _, c := range cases {
		f := func(t *testing.T) {
			req := &corsclient.Request{
				Method: c.method,
				URL:    targetURL,
				Header: c.reqHeader,
			}
			res := &fakeResponse{
				status: http.StatusOK,
				header: c.resHeader,
			}
			err := check(res, req)
			if c.wantErr == "" {
				if err != nil {
					t.Fatalf("got error %q; want no error", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("got no error; want %q", c.wantErr)
			}
			if err.Error() != c.wantErr {
				t.Errorf("got error %q; want %q", err, c.wantErr)
			}
			if !errors.Is(err, corsclient.ErrProtocolViolation) {
				t.Error("error does not wrap ErrProtocolViolation")
			}
			var ade *corsclient.AccessDeniedError
			if !errors.As(err, &ade) {
				t.Fatalf("got error of type %T; want *AccessDeniedError", err)
			}
			if ade.URL != targetURL || ade.Method != c.method {
				t.Errorf("got request %s %s; want %s %s", ade.Method, ade.URL, c.method, targetURL)
			}
		}
		t.Run(c.desc, f)
	}
}

func TestCheckOrigin(t *testing.T) {
	cases := []ValidatorTestCase{
		{
			desc:   "no Origin header",
			method: http.MethodGet,
		}, {
			desc:      "same origin without ACAO",
			method:    http.MethodGet,
			reqHeader: http.Header{headerOrigin: {sameOrigin}},
		}, {
			desc:      "cross origin with wildcard",
			method:    http.MethodGet,
			reqHeader: http.Header{headerOrigin: {crossOrigin}},
			resHeader: http.Header{headerACAO: {wildcard}},
		}, {
			desc:      "cross origin echoed",
			method:    http.MethodGet,
			reqHeader: http.Header{headerOrigin: {crossOrigin}},
			resHeader: http.Header{headerACAO: {crossOrigin}},
		}, {
			desc:      "cross origin echoed with lowercase key",
			method:    http.MethodGet,
			reqHeader: http.Header{headerOrigin: {crossOrigin}},
			resHeader: http.Header{"access-control-allow-origin": {crossOrigin}},
		}, {
			desc:      "cross origin without ACAO",
			method:    http.MethodGet,
			reqHeader: http.Header{headerOrigin: {crossOrigin}},
			wantErr:   `cors: origin "https://app.example.org" not allowed for resource "http://example.com/api/users"`,
		}, {
			desc:      "cross origin with other origin",
			method:    http.MethodGet,
			reqHeader: http.Header{headerOrigin: {crossOrigin}},
			resHeader: http.Header{headerACAO: {"https://evil.example.org"}},
			wantErr:   `cors: origin "https://app.example.org" not allowed for resource "http://example.com/api/users"`,
		}, {
			desc:      "cross origin with differently cased ACAO",
			method:    http.MethodGet,
			reqHeader: http.Header{headerOrigin: {crossOrigin}},
			resHeader: http.Header{headerACAO: {"HTTPS://APP.EXAMPLE.ORG"}},
			wantErr:   `cors: origin "https://app.example.org" not allowed for resource "http://example.com/api/users"`,
		},
	}
	runValidatorTests(t, corsclient.CheckOrigin, cases)
}

func TestCheckMethod(t *testing.T) {
	cases := []ValidatorTestCase{
		{
			desc:   "GET",
			method: http.MethodGet,
		}, {
			desc:      "GET with JSON",
			method:    http.MethodGet,
			reqHeader: http.Header{headerContentType: {mimeJSON}},
		}, {
			desc:      "POST with simple content type",
			method:    http.MethodPost,
			reqHeader: http.Header{headerContentType: {mimeTextPlain}},
		}, {
			desc:      "POST with JSON and no ACAM",
			method:    http.MethodPost,
			reqHeader: http.Header{headerContentType: {mimeJSON}},
			wantErr:   `cors: method "POST" not allowed for resource "http://example.com/api/users"`,
		}, {
			desc:      "POST with JSON and POST allowed",
			method:    http.MethodPost,
			reqHeader: http.Header{headerContentType: {mimeJSON}},
			resHeader: http.Header{headerACAM: {"POST"}},
		}, {
			desc:      "PUT allowed in lowercase",
			method:    http.MethodPut,
			resHeader: http.Header{headerACAM: {"GET, put"}},
		}, {
			desc:      "PUT allowed on second field line",
			method:    http.MethodPut,
			resHeader: http.Header{headerACAM: {"GET", "PUT"}},
		}, {
			desc:      "PUT and wildcard",
			method:    http.MethodPut,
			resHeader: http.Header{headerACAM: {wildcard}},
			wantErr:   `cors: method "PUT" not allowed for resource "http://example.com/api/users"`,
		}, {
			desc:      "DELETE not listed",
			method:    http.MethodDelete,
			resHeader: http.Header{headerACAM: {"GET, PUT"}},
			wantErr:   `cors: method "DELETE" not allowed for resource "http://example.com/api/users"`,
		},
	}
	runValidatorTests(t, corsclient.CheckMethod, cases)
}

func TestCheckHeaders(t *testing.T) {
	cases := []ValidatorTestCase{
		{
			desc:   "no headers",
			method: http.MethodGet,
		}, {
			desc:   "simple headers only",
			method: http.MethodGet,
			reqHeader: http.Header{
				headerOrigin: {crossOrigin},
				"Accept":     {"*/*"},
			},
		}, {
			desc:      "lone simple content type",
			method:    http.MethodPost,
			reqHeader: http.Header{headerContentType: {mimeTextPlain}},
		}, {
			desc:      "lone JSON content type",
			method:    http.MethodPost,
			reqHeader: http.Header{headerContentType: {mimeJSON}},
			wantErr:   `cors: request headers "content-type" not allowed for resource "http://example.com/api/users"`,
		}, {
			desc:      "JSON content type allowed",
			method:    http.MethodPost,
			reqHeader: http.Header{headerContentType: {mimeJSON}},
			resHeader: http.Header{headerACAH: {"content-type"}},
		}, {
			desc:      "custom header allowed regardless of case",
			method:    http.MethodGet,
			reqHeader: http.Header{"X-Foo": {"foo"}},
			resHeader: http.Header{headerACAH: {"x-FOO"}},
		}, {
			desc:      "custom headers allowed across field lines",
			method:    http.MethodGet,
			reqHeader: http.Header{"X-Foo": {"foo"}, "X-Bar": {"bar"}},
			resHeader: http.Header{headerACAH: {"X-Foo", " x-bar "}},
		}, {
			desc:   "custom headers not allowed",
			method: http.MethodGet,
			reqHeader: http.Header{
				"X-Foo":           {"foo"},
				"X-Bar":           {"bar"},
				headerContentType: {mimeTextPlain},
			},
			resHeader: http.Header{headerACAH: {"X-Baz"}},
			wantErr:   `cors: request headers "content-type", "x-bar", and "x-foo" not allowed for resource "http://example.com/api/users"`,
		}, {
			desc:      "wildcard gets no special treatment",
			method:    http.MethodGet,
			reqHeader: http.Header{"X-Foo": {"foo"}},
			resHeader: http.Header{headerACAH: {wildcard}},
			wantErr:   `cors: request headers "x-foo" not allowed for resource "http://example.com/api/users"`,
		},
	}
	runValidatorTests(t, corsclient.CheckHeaders, cases)
}
