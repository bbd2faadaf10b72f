/*
Package cfgerrors provides functionalities for programmatically handling
configuration errors produced by package [github.com/jub0bs/corsclient]
and by the probe files of its command-line tool.

Most users of package [github.com/jub0bs/corsclient] have no use for this
package. However, tools that let their users describe CORS probes or
client-side CORS policies (e.g. via some Web portal or some configuration
file) may find this package useful: it indeed allows those tools to
report configuration mistakes via custom, human-friendly error messages.
*/
package cfgerrors

import (
	"fmt"
	"iter"
	"time"
)

// An UnacceptableOriginError indicates an unacceptable client origin.
// The Reason field may take one of two values:
//   - "invalid": the origin is not in ASCII serialized form;
//   - "opaque": the origin is the opaque origin "null", which can never be
//     same-origin with any resource.
//
// For more details, see [github.com/jub0bs/corsclient.Config.Origin].
type UnacceptableOriginError struct {
	Value  string // the unacceptable value that was specified
	Reason string // invalid | opaque
}

func (err *UnacceptableOriginError) Error() string {
	const tmpl = "cors: %s origin %q"
	return fmt.Sprintf(tmpl, err.Reason, err.Value)
}

// An UnacceptableMethodError indicates an unacceptable method.
// The Reason field may take one of two values:
//   - "invalid": the method is invalid;
//   - "forbidden": the method is forbidden by [the Fetch standard].
//
// [the Fetch standard]: https://fetch.spec.whatwg.org
type UnacceptableMethodError struct {
	Value  string // the unacceptable value that was specified
	Reason string // invalid | forbidden
}

func (err *UnacceptableMethodError) Error() string {
	const tmpl = "cors: %s method %q"
	return fmt.Sprintf(tmpl, err.Reason, err.Value)
}

// An UnacceptableHeaderNameError indicates an unacceptable request-header
// name. The Reason field may take one of two values:
//   - "invalid": the header name is invalid;
//   - "forbidden": the header name is forbidden by [the Fetch standard],
//     i.e. browsers would not let clients set it.
//
// [the Fetch standard]: https://fetch.spec.whatwg.org
type UnacceptableHeaderNameError struct {
	Value  string // the unacceptable value that was specified
	Reason string // invalid | forbidden
}

func (err *UnacceptableHeaderNameError) Error() string {
	const tmpl = "cors: %s request-header name %q"
	return fmt.Sprintf(tmpl, err.Reason, err.Value)
}

// An UnacceptableURLError indicates a probe target that cannot be requested.
// The Reason field may take one of two values:
//   - "missing": no URL was specified;
//   - "invalid": the URL is not an absolute http or https URL.
type UnacceptableURLError struct {
	Value  string // the unacceptable value that was specified
	Reason string // missing | invalid
}

func (err *UnacceptableURLError) Error() string {
	if err.Reason == "missing" {
		return "cors: missing URL"
	}
	const tmpl = "cors: %s URL %q"
	return fmt.Sprintf(tmpl, err.Reason, err.Value)
}

// An UnacceptableExpectationError indicates a probe expectation other
// than "allowed" or "denied".
type UnacceptableExpectationError struct {
	Value string // the unacceptable value that was specified
}

func (err *UnacceptableExpectationError) Error() string {
	const tmpl = `cors: unknown expectation %q (want "allowed" or "denied")`
	return fmt.Sprintf(tmpl, err.Value)
}

// A TimeoutOutOfBoundsError indicates a preflight timeout that's either
// negative or too high.
//
// For more details, see [github.com/jub0bs/corsclient.Config.PreflightTimeout].
type TimeoutOutOfBoundsError struct {
	Value time.Duration // the unacceptable value that was specified
	Max   time.Duration // maximum value permitted by this library
}

func (err *TimeoutOutOfBoundsError) Error() string {
	const tmpl = "cors: out-of-bounds preflight timeout %s (min: 0s; max: %s)"
	return fmt.Sprintf(tmpl, err.Value, err.Max)
}

// A LimitOutOfBoundsError indicates a non-positive or too high value
// for one of the throttling settings of the probe tool.
// The Name field identifies the setting (e.g. "concurrency" or "rate").
type LimitOutOfBoundsError struct {
	Name  string  // name of the setting
	Value float64 // the unacceptable value that was specified
	Max   float64 // maximum value permitted
}

func (err *LimitOutOfBoundsError) Error() string {
	const tmpl = "cors: out-of-bounds %s %g (must be positive; max: %g)"
	return fmt.Sprintf(tmpl, err.Name, err.Value, err.Max)
}

// All returns an iterator over the CORS-configuration errors contained in
// err's error tree. The order is unspecified and may change from one release
// to the next. All only supports error values returned by
// [github.com/jub0bs/corsclient.NewTransport] and
// [github.com/jub0bs/corsclient.Transport.Reconfigure] and by the probe-file
// loader; it should not be called on any other error value.
func All(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		every(err, yield)
	}
}

func every(err error, f func(error) bool) bool {
	switch err := err.(type) {
	// Note that there's no need for any "interface { Unwrap() error }" case
	// because nowhere do we "wrap" errors; we only ever "join" them.
	case interface{ Unwrap() []error }:
		for _, err := range err.Unwrap() {
			if !every(err, f) {
				return false
			}
		}
		return true
	default:
		return f(err)
	}
}
