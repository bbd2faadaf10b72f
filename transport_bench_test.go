package corsclient_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jub0bs/corsclient"
)

func BenchmarkPreparePreflight(b *testing.B) {
	cases := []struct {
		desc string
		req  *corsclient.Request
	}{
		{
			desc: "same-origin simple GET",
			req: &corsclient.Request{
				Method: http.MethodGet,
				URL:    targetURL,
				Header: http.Header{
					headerOrigin: {sameOrigin},
					headerHost:   {targetHost},
				},
			},
		}, {
			desc: "cross-origin PUT with custom headers",
			req: &corsclient.Request{
				Method: http.MethodPut,
				URL:    targetURL,
				Header: http.Header{
					headerOrigin:      {crossOrigin},
					headerHost:        {targetHost},
					headerContentType: {mimeJSON},
					"Authorization":   {"Bearer xyz"},
					"X-Trace-Id":      {"abc"},
				},
			},
		},
	}
	for _, c := range cases {
		f := func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				corsclient.PreparePreflight(c.req)
			}
		}
		b.Run(c.desc, f)
	}
}

func BenchmarkTransport(b *testing.B) {
	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		var hdrs http.Header
		if req.Method == http.MethodOptions {
			hdrs = corsclient.PreflightResponseHeaders(req.Header)
		} else {
			hdrs = corsclient.ActualResponseHeaders(nil, req.Header.Get(headerOrigin))
		}
		res := &http.Response{
			StatusCode: http.StatusOK,
			Header:     hdrs,
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    req,
		}
		return res, nil
	})
	cases := []struct {
		desc string
		cfg  *corsclient.Config
	}{
		{desc: "passthrough"},
		{desc: "cross-origin", cfg: &corsclient.Config{Origin: crossOrigin}},
	}
	for _, c := range cases {
		f := func(b *testing.B) {
			tr, err := corsclient.NewTransport(base, corsclient.Config{})
			if err != nil {
				b.Fatal(err)
			}
			if err := tr.Reconfigure(c.cfg); err != nil {
				b.Fatal(err)
			}
			req, err := http.NewRequest(http.MethodDelete, targetURL, nil)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			for range b.N {
				res, err := tr.RoundTrip(req)
				if err != nil {
					b.Fatal(err)
				}
				res.Body.Close()
			}
		}
		b.Run(c.desc, f)
	}
}
