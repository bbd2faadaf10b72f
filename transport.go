package corsclient

import (
	"context"
	"errors"
	"io"
	"maps"
	"net/http"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jub0bs/corsclient/internal/headers"
	"github.com/jub0bs/corsclient/internal/util"
)

// A Transport is an [http.RoundTripper] that enforces the CORS protocol
// on the client side, much like a browser would: it sends a preflight
// request ahead of requests that require one, validates the preflight
// response, sends the actual request, validates the origin of the actual
// response, and restricts the headers of the actual response to those
// that the CORS protocol makes readable.
// Violations of the CORS protocol are reported as [*AccessDeniedError]
// values.
//
// The zero value is ready to use but is a mere "passthrough" transport,
// i.e. a transport that simply delegates to [http.DefaultTransport].
// To obtain a transport that enforces the CORS protocol, you should call
// [NewTransport] and pass it a valid [Config].
//
// A Transport must not be copied after first use.
//
// Transports are safe for concurrent use by multiple goroutines.
type Transport struct {
	base   http.RoundTripper
	icfg   atomic.Pointer[internalConfig]
	logger atomic.Pointer[zap.Logger]
}

var nopLogger = zap.NewNop()

// NewTransport creates a Transport that behaves in accordance with cfg and
// relies on base (or on [http.DefaultTransport], if base is nil) for
// carrying out HTTP round trips.
// If cfg is invalid, it returns a nil [*Transport] and some non-nil error.
//
// Mutating the fields of cfg after NewTransport has returned does not
// alter the transport's behavior. However, you can reconfigure a
// [Transport] via its [*Transport.Reconfigure] method.
//
// If you need to programmatically handle the configuration errors
// constitutive of the resulting error, rely on package
// [github.com/jub0bs/corsclient/cfgerrors].
func NewTransport(base http.RoundTripper, cfg Config) (*Transport, error) {
	icfg, err := newInternalConfig(&cfg)
	if err != nil {
		return nil, err
	}
	t := Transport{base: base}
	t.icfg.Store(icfg)
	return &t, nil
}

// Reconfigure reconfigures t in accordance with cfg.
// If cfg is nil, it turns t into a passthrough transport.
// If *cfg is invalid, it leaves t unchanged and returns some non-nil error.
// The following statement is guaranteed to be a no-op:
//
//	t.Reconfigure(t.Config())
//
// You can safely reconfigure a transport even as it's concurrently
// carrying out round trips; round trips in flight keep the configuration
// they started with.
func (t *Transport) Reconfigure(cfg *Config) error {
	icfg, err := newInternalConfig(cfg)
	if err != nil {
		return err
	}
	t.icfg.Store(icfg)
	return nil
}

// Config returns a pointer to a deep copy of t's current configuration;
// if t is a passthrough transport, it simply returns nil.
func (t *Transport) Config() *Config {
	return newConfig(t.icfg.Load())
}

// SetLogger makes t log its decisions to l:
// preflight decisions at debug level and access denials at warn level.
// A nil l disables logging, which is the default.
func (t *Transport) SetLogger(l *zap.Logger) {
	t.logger.Store(l)
}

func (t *Transport) log() *zap.Logger {
	if l := t.logger.Load(); l != nil {
		return l
	}
	return nopLogger
}

func (t *Transport) transport() http.RoundTripper {
	if t.base != nil {
		return t.base
	}
	return http.DefaultTransport
}

// RoundTrip implements [http.RoundTripper].
// Errors that the underlying transport returns are passed through
// unchanged. The header map of the resulting response only contains
// readable headers; use [*Transport.Do] to inspect the response's headers
// in a guarded fashion instead.
//
// The Location header of redirect responses remains readable, so that an
// [http.Client] relying on t follows redirects; each hop goes through the
// CORS checks anew.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	icfg := t.icfg.Load()
	if icfg == nil { // passthrough transport
		return t.transport().RoundTrip(req)
	}
	res, view, err := t.exchange(icfg, req)
	if err != nil {
		return nil, err
	}
	res.Header = view.Visible()
	return res, nil
}

// A GuardedResponse is an HTTP response whose headers can only be read
// through a [ProtectedHeader]. The Header field of the embedded
// [http.Response] is nil.
type GuardedResponse struct {
	*http.Response
	Header *ProtectedHeader
}

// Do carries out req like [*Transport.RoundTrip] does but returns a
// response whose headers are guarded: reading a header that the CORS
// protocol does not make readable results in an [*AccessDeniedError].
// If t is a passthrough transport, no CORS enforcement takes place and
// all of the response's headers are readable.
//
// As with [http.Client.Do], callers should close the response's body.
func (t *Transport) Do(req *http.Request) (*GuardedResponse, error) {
	var (
		res  *http.Response
		view *ProtectedHeader
		err  error
	)
	if icfg := t.icfg.Load(); icfg == nil {
		res, err = t.transport().RoundTrip(req)
		if err != nil {
			return nil, err
		}
		names := slices.Collect(maps.Keys(res.Header))
		view = NewProtectedHeaderFromNames(names, res.Header)
	} else {
		res, view, err = t.exchange(icfg, req)
		if err != nil {
			return nil, err
		}
	}
	res.Header = nil
	return &GuardedResponse{Response: res, Header: view}, nil
}

// Client returns an [http.Client] that relies on t.
// The client follows redirects like [http.DefaultClient] does.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

func (t *Transport) exchange(
	icfg *internalConfig,
	req *http.Request,
) (*http.Response, *ProtectedHeader, error) {
	ctx := req.Context()
	if icfg.origin != "" && req.Header.Get(headers.Origin) == "" {
		req = req.Clone(ctx)
		if req.Header == nil {
			req.Header = make(http.Header)
		}
		req.Header.Set(headers.Origin, icfg.origin)
	}
	creq := NewRequest(req)
	preflight, validators := PreparePreflight(creq)
	logger := t.log()
	if ce := logger.Check(zap.DebugLevel, "cors: preflight decision"); ce != nil {
		ce.Write(
			zap.String("method", creq.Method),
			zap.String("url", creq.URL),
			zap.Bool("preflight", preflight != nil),
			zap.Strings("validators", validatorNames(validators)),
		)
	}
	if preflight != nil {
		err := t.preflight(ctx, icfg, preflight, creq, validators)
		if err != nil {
			// RoundTrip must close the request's body, even on errors.
			if req.Body != nil {
				req.Body.Close()
			}
			t.denied(creq, err)
			return nil, nil, err
		}
	}
	res, err := t.transport().RoundTrip(req)
	if err != nil {
		return nil, nil, err
	}
	if res.StatusCode < 500 || icfg.validateServerErrors {
		if err := CheckOrigin(WrapResponse(res), creq); err != nil {
			res.Body.Close()
			t.denied(creq, err)
			return nil, nil, err
		}
	}
	exposed := headers.ParseSet(headers.Joined(res.Header, headers.ACEH))
	if isRedirect(res.StatusCode) {
		// Redirects are followed below the script-visible layer.
		exposed.Add(util.ByteLowercase(headers.Location))
	}
	return res, newProtectedHeader(exposed, res.Header), nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// preflight sends pf and validates the response against orig.
func (t *Transport) preflight(
	ctx context.Context,
	icfg *internalConfig,
	pf *Request,
	orig *Request,
	validators []Validator,
) error {
	if icfg.preflightTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, icfg.preflightTimeout)
		defer cancel()
	}
	preq, err := pf.toHTTP(ctx)
	if err != nil {
		return err
	}
	// Browsers always send the Origin header along with preflight requests.
	if origin, found := orig.get(headers.Origin); found {
		preq.Header.Set(headers.Origin, origin)
	}
	res, err := t.transport().RoundTrip(preq)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	// Drain (a bounded amount of) the body so that the connection can be
	// reused.
	const maxDrain = 4 << 10
	io.Copy(io.Discard, io.LimitReader(res.Body, maxDrain))
	if res.StatusCode < 200 || 299 < res.StatusCode {
		return newAccessDenied("preflight check failed", pf)
	}
	wrapped := WrapResponse(res)
	for _, v := range validators {
		if err := v.Validate(wrapped, orig); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transport) denied(req *Request, err error) {
	var ade *AccessDeniedError
	if !errors.As(err, &ade) {
		return
	}
	t.log().Warn("cors: access denied",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.String("reason", ade.Reason),
	)
}

func validatorNames(vs []Validator) []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.String()
	}
	return names
}
