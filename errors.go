package corsclient

import (
	"errors"
	"net/http"
)

// ErrProtocolViolation is the error that all errors reporting a violation
// of the CORS protocol wrap. Use [errors.Is] to test for it.
var ErrProtocolViolation = errors.New("cors: protocol violation")

// An AccessDeniedError indicates that the CORS protocol does not grant
// access to some resource or to some part of a response.
// URL, Method, and Header describe the offending request, for diagnostics;
// they're empty when the denial concerns a response header.
//
// An AccessDeniedError always aborts the exchange in which it occurs;
// no retry is ever attempted.
type AccessDeniedError struct {
	Reason string
	URL    string
	Method string
	Header http.Header
}

func newAccessDenied(reason string, req *Request) *AccessDeniedError {
	return &AccessDeniedError{
		Reason: reason,
		URL:    req.URL,
		Method: req.Method,
		Header: req.Header,
	}
}

func (err *AccessDeniedError) Error() string {
	return "cors: " + err.Reason
}

// Unwrap returns [ErrProtocolViolation].
func (*AccessDeniedError) Unwrap() error {
	return ErrProtocolViolation
}
