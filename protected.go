package corsclient

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/jub0bs/corsclient/internal/headers"
	"github.com/jub0bs/corsclient/internal/util"
)

// A ProtectedHeader is a view of the headers of a CORS response that
// only lets callers read the headers the CORS protocol makes readable:
// simple response headers (e.g. Content-Type), CORS response headers,
// and headers listed in the response's Access-Control-Expose-Headers
// header. Names are compared case-insensitively.
//
// Reading any other header fails with an [*AccessDeniedError], even if the
// header is absent. Writes and [ProtectedHeader.Names] are not guarded.
//
// A ProtectedHeader is not safe for concurrent use if it's being written.
type ProtectedHeader struct {
	hdr     http.Header
	exposed util.Set
}

// NewProtectedHeader returns a ProtectedHeader that guards a copy of raw.
// Argument exposed is interpreted as the value of an
// Access-Control-Expose-Headers header.
func NewProtectedHeader(exposed string, raw http.Header) *ProtectedHeader {
	return newProtectedHeader(headers.ParseSet(exposed), raw)
}

// NewProtectedHeaderFromNames is like [NewProtectedHeader] but takes a
// slice of exposed header names.
func NewProtectedHeaderFromNames(exposed []string, raw http.Header) *ProtectedHeader {
	return newProtectedHeader(util.NewSet(headers.NormalizeList(exposed)...), raw)
}

func newProtectedHeader(exposed util.Set, raw http.Header) *ProtectedHeader {
	hdr := make(http.Header, len(raw))
	for k, v := range raw {
		k = http.CanonicalHeaderKey(k)
		hdr[k] = append(hdr[k], v...)
	}
	return &ProtectedHeader{
		hdr:     hdr,
		exposed: exposed,
	}
}

// Readable reports whether the header named name can be read.
func (h *ProtectedHeader) Readable(name string) bool {
	name = util.ByteLowercase(name)
	return headers.IsAlwaysReadable(name) || h.exposed.Contains(name)
}

func (h *ProtectedHeader) guard(name string) error {
	if h.Readable(name) {
		return nil
	}
	reason := fmt.Sprintf("access to response header %q not allowed", name)
	return &AccessDeniedError{Reason: reason}
}

// Get returns the first value associated with name,
// or the empty string if there is none.
func (h *ProtectedHeader) Get(name string) (string, error) {
	if err := h.guard(name); err != nil {
		return "", err
	}
	return h.hdr.Get(name), nil
}

// GetDefault is like Get but returns def if no value is associated with
// name.
func (h *ProtectedHeader) GetDefault(name, def string) (string, error) {
	if err := h.guard(name); err != nil {
		return "", err
	}
	if v := h.hdr.Values(name); len(v) > 0 {
		return v[0], nil
	}
	return def, nil
}

// Values returns a copy of all the values associated with name.
func (h *ProtectedHeader) Values(name string) ([]string, error) {
	if err := h.guard(name); err != nil {
		return nil, err
	}
	return slices.Clone(h.hdr.Values(name)), nil
}

// Set replaces any existing values associated with name by value.
func (h *ProtectedHeader) Set(name, value string) {
	h.hdr.Set(name, value)
}

// Add appends value to the values associated with name.
func (h *ProtectedHeader) Add(name, value string) {
	h.hdr.Add(name, value)
}

// Del deletes the values associated with name.
func (h *ProtectedHeader) Del(name string) {
	h.hdr.Del(name)
}

// Names returns the names, in canonical format and sorted, of all the
// headers present, readable or not. Names is not guarded: it reveals which
// unexposed headers the response carries, though not their values.
func (h *ProtectedHeader) Names() []string {
	names := make([]string, 0, len(h.hdr))
	for k := range h.hdr {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Visible returns a new header map made of the readable headers only.
func (h *ProtectedHeader) Visible() http.Header {
	res := make(http.Header, len(h.hdr))
	for k, v := range h.hdr {
		if h.Readable(k) {
			res[k] = slices.Clone(v)
		}
	}
	return res
}
