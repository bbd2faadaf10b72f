package corsclient

import (
	"net/http"

	"github.com/jub0bs/corsclient/internal/headers"
	"github.com/jub0bs/corsclient/internal/util"
)

// PreflightResponseHeaders returns the headers of a permissive response
// to a preflight request whose headers are requested:
// any origin is allowed and the requested method and headers (if any) are
// echoed back.
//
// PreflightResponseHeaders is meant for test servers and fakes;
// it performs no validation.
func PreflightResponseHeaders(requested http.Header) http.Header {
	res := http.Header{
		headers.ACAO: []string{headers.ValueWildcard},
	}
	if m, found := headers.Get(requested, headers.ACRM); found {
		res[headers.ACAM] = []string{m}
	}
	if h, found := headers.Get(requested, headers.ACRH); found {
		res[headers.ACAH] = []string{h}
	}
	return res
}

// ActualResponseHeaders returns a copy of res (with keys in canonical
// format) augmented so as to make it readable in full by origin:
//   - unless res's Access-Control-Allow-Origin header already equals
//     origin, it is set to *;
//   - all of res's headers other than simple response headers and CORS
//     response headers get listed, alongside those already present, in
//     the Access-Control-Expose-Headers header.
//
// An empty origin is never deemed allowed explicitly.
func ActualResponseHeaders(res http.Header, origin string) http.Header {
	out := make(http.Header, len(res)+2)
	for k, v := range res {
		k = http.CanonicalHeaderKey(k)
		out[k] = append(out[k], v...)
	}
	if acao, _ := headers.Get(out, headers.ACAO); origin == "" || acao != origin {
		out[headers.ACAO] = []string{headers.ValueWildcard}
	}
	present := make(util.Set, len(out))
	for k := range out {
		name := util.ByteLowercase(k)
		if !headers.IsAlwaysReadable(name) {
			present.Add(name)
		}
	}
	exposed := headers.ParseSet(headers.Joined(out, headers.ACEH)).Union(present)
	if exposed.Size() == 0 {
		delete(out, headers.ACEH)
		return out
	}
	out[headers.ACEH] = []string{headers.JoinCanonical(exposed)}
	return out
}
