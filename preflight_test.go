package corsclient_test

import (
	"net/http"
	"slices"
	"testing"

	"github.com/jub0bs/corsclient"
)

func TestPreparePreflight(t *testing.T) {
	cases := []struct {
		desc           string
		method         string
		header         http.Header
		wantPreflight  bool
		wantHeader     http.Header
		wantValidators []corsclient.Validator
	}{
		{
			desc:   "same-origin simple GET",
			method: http.MethodGet,
			header: http.Header{
				headerOrigin: {sameOrigin},
				headerHost:   {targetHost},
			},
		}, {
			desc:   "non-CORS simple GET",
			method: http.MethodGet,
			header: http.Header{
				headerHost: {targetHost},
				"Accept":   {"*/*"},
			},
		}, {
			desc:   "same-origin GET with simple content type",
			method: http.MethodGet,
			header: http.Header{
				headerOrigin:      {sameOrigin},
				headerContentType: {mimeTextPlain},
			},
		}, {
			desc:   "OPTIONS with prohibited headers",
			method: http.MethodOptions,
			header: http.Header{
				headerOrigin:      {crossOrigin},
				headerContentType: {mimeJSON},
				"X-Auth-Token":    {"secret"},
			},
		}, {
			desc:   "lowercase options",
			method: "options",
			header: http.Header{
				headerOrigin: {crossOrigin},
			},
		}, {
			desc:   "cross-origin simple GET",
			method: http.MethodGet,
			header: http.Header{
				headerOrigin: {crossOrigin},
				headerHost:   {targetHost},
			},
			wantPreflight: true,
			wantHeader: http.Header{
				headerHost: {targetHost},
			},
			wantValidators: []corsclient.Validator{
				corsclient.OriginValidator,
			},
		}, {
			desc:   "cross-origin PUT with JSON and custom header",
			method: http.MethodPut,
			header: http.Header{
				headerOrigin:      {crossOrigin},
				headerHost:        {targetHost},
				headerContentType: {mimeJSON},
				"X-Auth-Token":    {"secret"},
			},
			wantPreflight: true,
			wantHeader: http.Header{
				headerHost: {targetHost},
				headerACRM: {http.MethodPut},
				headerACRH: {"Content-Type,X-Auth-Token"},
			},
			wantValidators: []corsclient.Validator{
				corsclient.OriginValidator,
				corsclient.HeadersValidator,
				corsclient.MethodValidator,
			},
		}, {
			desc:   "same-origin POST with JSON",
			method: http.MethodPost,
			header: http.Header{
				headerOrigin:      {sameOrigin},
				headerHost:        {targetHost},
				headerContentType: {mimeJSON},
			},
			wantPreflight: true,
			wantHeader: http.Header{
				headerHost: {targetHost},
				headerACRM: {http.MethodPost},
				headerACRH: {"Content-Type"},
			},
			wantValidators: []corsclient.Validator{
				corsclient.HeadersValidator,
				corsclient.MethodValidator,
			},
		}, {
			desc:   "same-origin GET with custom headers",
			method: http.MethodGet,
			header: http.Header{
				headerOrigin: {sameOrigin},
				headerHost:   {targetHost},
				"x-foo":      {"foo"},
				"X-Bar":      {"bar"},
				"Accept":     {"*/*"},
			},
			wantPreflight: true,
			wantHeader: http.Header{
				headerHost: {targetHost},
				headerACRH: {"X-Bar,X-Foo"},
			},
			wantValidators: []corsclient.Validator{
				corsclient.HeadersValidator,
			},
		}, {
			desc:   "same-origin DELETE without Host",
			method: http.MethodDelete,
			header: http.Header{
				headerOrigin: {sameOrigin},
			},
			wantPreflight: true,
			wantHeader: http.Header{
				headerACRM: {http.MethodDelete},
			},
			wantValidators: []corsclient.Validator{
				corsclient.MethodValidator,
			},
		}, {
			desc:   "cross-origin lowercase patch",
			method: "patch",
			header: http.Header{
				headerOrigin: {crossOrigin},
			},
			wantPreflight: true,
			wantHeader: http.Header{
				headerACRM: {"patch"},
			},
			wantValidators: []corsclient.Validator{
				corsclient.OriginValidator,
				corsclient.MethodValidator,
			},
		},
	}
	for _, c := range cases {
		f := func(t *testing.T) {
			req := &corsclient.Request{
				Method: c.method,
				URL:    targetURL,
				Header: c.header,
			}
			preflight, validators := corsclient.PreparePreflight(req)
			if !c.wantPreflight {
				if preflight != nil || len(validators) != 0 {
					t.Fatalf("got %v, %v; want no preflight", preflight, validators)
				}
				return
			}
			if preflight == nil {
				t.Fatal("got no preflight; want one")
			}
			if preflight.Method != http.MethodOptions {
				t.Errorf("got method %q; want %q", preflight.Method, http.MethodOptions)
			}
			if preflight.URL != targetURL {
				t.Errorf("got URL %q; want %q", preflight.URL, targetURL)
			}
			if !equalHeaders(preflight.Header, c.wantHeader) {
				t.Errorf("got headers %v; want %v", preflight.Header, c.wantHeader)
			}
			if !slices.Equal(validators, c.wantValidators) {
				t.Errorf("got validators %v; want %v", validators, c.wantValidators)
			}
		}
		t.Run(c.desc, f)
	}
}

func TestPreparePreflightDoesNotMutateRequest(t *testing.T) {
	hdr := http.Header{
		headerOrigin:      {crossOrigin},
		headerContentType: {mimeJSON},
		"X-Foo":           {"foo"},
	}
	req := &corsclient.Request{
		Method: http.MethodPut,
		URL:    targetURL,
		Header: hdr.Clone(),
	}
	corsclient.PreparePreflight(req)
	if !equalHeaders(req.Header, hdr) {
		t.Errorf("request headers were mutated: got %v; want %v", req.Header, hdr)
	}
	if req.Method != http.MethodPut || req.URL != targetURL {
		t.Errorf("request was mutated: %+v", req)
	}
}

func TestValidatorString(t *testing.T) {
	cases := []struct {
		v    corsclient.Validator
		want string
	}{
		{corsclient.OriginValidator, "origin"},
		{corsclient.HeadersValidator, "headers"},
		{corsclient.MethodValidator, "method"},
		{corsclient.Validator(0), "Validator(0)"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("%d: got %q; want %q", c.v, got, c.want)
		}
	}
}

func TestUnknownValidator(t *testing.T) {
	req := &corsclient.Request{Method: http.MethodGet, URL: targetURL}
	res := &fakeResponse{status: http.StatusOK}
	if err := corsclient.Validator(42).Validate(res, req); err == nil {
		t.Error("got nil error; want non-nil error")
	}
}
