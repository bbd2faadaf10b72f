package corsclient

import (
	"errors"
	"time"

	"github.com/jub0bs/corsclient/cfgerrors"
	"github.com/jub0bs/corsclient/internal/origins"
)

// A Config configures a [Transport].
//
// The zero value is a valid configuration: the resulting transport enforces
// the CORS protocol on behalf of whatever origin requests declare in
// their Origin header, treats requests that declare none as same-origin,
// skips origin validation of actual responses whose status code is in the
// 5xx range, and bounds preflight round trips only by the context of the
// request that elicits them.
//
// # Origin
//
// Origin, if non-empty, is the origin on whose behalf the transport acts;
// it gets added as an Origin header to requests that lack one.
// It must be a valid [Web origin] in ASCII serialized form, such as
//
//	https://example.com
//	http://localhost:8080
//
// The opaque origin "null" is unacceptable.
//
// # ValidateServerErrors
//
// By default, actual responses whose status code is in the 5xx range are
// passed through without origin validation, so that server errors remain
// visible to callers. Set ValidateServerErrors to true to validate every
// actual response.
//
// # PreflightTimeout
//
// PreflightTimeout, if positive, bounds the duration of each preflight
// round trip. Values must lie between 0 and 1 minute.
//
// [Web origin]: https://developer.mozilla.org/en-US/docs/Glossary/Origin
type Config struct {
	Origin               string
	ValidateServerErrors bool
	PreflightTimeout     time.Duration
}

type internalConfig struct {
	origin               string // empty => rely on the requests' Origin header
	validateServerErrors bool
	preflightTimeout     time.Duration // 0 => no dedicated timeout
}

// maxPreflightTimeout is the largest acceptable PreflightTimeout.
const maxPreflightTimeout = time.Minute

func newInternalConfig(cfg *Config) (*internalConfig, error) {
	if cfg == nil {
		return nil, nil
	}
	icfg := internalConfig{
		validateServerErrors: cfg.ValidateServerErrors,
	}

	// Accumulate errors in a slice so as to call errors.Join at most once.
	errs := icfg.validateOrigin(nil, cfg.Origin)
	errs = icfg.validatePreflightTimeout(errs, cfg.PreflightTimeout)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &icfg, nil
}

func (icfg *internalConfig) validateOrigin(errs []error, raw string) []error {
	if raw == "" {
		return errs
	}
	if raw == "null" {
		err := &cfgerrors.UnacceptableOriginError{
			Value:  raw,
			Reason: "opaque",
		}
		return append(errs, err)
	}
	o, ok := origins.Parse(raw)
	if !ok {
		err := &cfgerrors.UnacceptableOriginError{
			Value:  raw,
			Reason: "invalid",
		}
		return append(errs, err)
	}
	icfg.origin = o.String()
	return errs
}

func (icfg *internalConfig) validatePreflightTimeout(errs []error, d time.Duration) []error {
	if d < 0 || maxPreflightTimeout < d {
		err := &cfgerrors.TimeoutOutOfBoundsError{
			Value: d,
			Max:   maxPreflightTimeout,
		}
		return append(errs, err)
	}
	icfg.preflightTimeout = d
	return errs
}

// newConfig returns a Config on the basis of icfg.
// The soundness of the result is guaranteed only if icfg is the result of a
// previous call to newInternalConfig.
func newConfig(icfg *internalConfig) *Config {
	if icfg == nil {
		return nil
	}
	return &Config{
		Origin:               icfg.origin,
		ValidateServerErrors: icfg.validateServerErrors,
		PreflightTimeout:     icfg.preflightTimeout,
	}
}
