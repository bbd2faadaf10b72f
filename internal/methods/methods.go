package methods

import (
	"net/http"
	"strings"

	"github.com/jub0bs/corsclient/internal/util"
	"golang.org/x/net/http/httpguts"
)

// IsValid reports whether name is a valid method, [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#concept-method
func IsValid(name string) bool {
	// Note: the production is identical to that of header names.
	return httpguts.ValidHeaderFieldName(name)
}

// Normalize byte-uppercases name so that it can be compared to the
// method names found in this package's tables and in
// Access-Control-Allow-Methods header values.
func Normalize(name string) string {
	return util.ByteUppercase(name)
}

// IsForbidden reports whether name is a forbidden method,
// [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#forbidden-method
func IsForbidden(name string) bool {
	switch Normalize(name) {
	case http.MethodConnect, http.MethodTrace, "TRACK":
		return true
	default:
		return false
	}
}

// IsSimple reports whether name, once normalized, is one of the methods
// that never require a preflight on their own: GET, HEAD, and POST.
func IsSimple(name string) bool {
	switch Normalize(name) {
	case http.MethodGet, http.MethodHead, http.MethodPost:
		return true
	default:
		return false
	}
}

// ParseList splits the value of an Access-Control-Allow-Methods header
// into its normalized elements, dropping empty ones.
func ParseList(s string) util.Set {
	set := make(util.Set)
	for elem := range strings.SplitSeq(s, ",") {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			continue
		}
		set.Add(Normalize(elem))
	}
	return set
}
