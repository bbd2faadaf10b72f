/*
Package corsclient enforces [Cross-Origin Resource Sharing (CORS)] on the
client side of [net/http], the way browsers do.

The package is organized in layers:

  - classification functions (e.g. [IsSameOrigin] and [ProhibitedHeaders])
    tell which aspects of a request fall outside the CORS-safelisted
    subset;
  - [PreparePreflight] decides whether a request must be preceded by a
    [CORS-preflight request] and, if so, builds it along with the
    [Validator] values to apply to the preflight response;
  - [CheckOrigin], [CheckMethod], and [CheckHeaders] validate responses;
  - [ProtectedHeader] guards reads of response headers that the server
    did not [expose];
  - [Transport] ties all of the above into an [http.RoundTripper].

[PreflightResponseHeaders] and [ActualResponseHeaders] compute permissive
server-side CORS headers; they are mainly useful in tests and fakes.

Keep the following in mind:

  - This package caches no preflight responses: every request that
    requires a preflight elicits one.
  - This package ignores credentials mode; in particular, it neither
    sends nor checks [Access-Control-Allow-Credentials].
  - Contrary to browsers, this package sends a preflight request ahead of
    cross-origin requests that are otherwise simple; such preflights are
    only used to validate the origin.

[Access-Control-Allow-Credentials]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Allow-Credentials
[CORS-preflight request]: https://developer.mozilla.org/en-US/docs/Glossary/Preflight_request
[Cross-Origin Resource Sharing (CORS)]: https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS
[expose]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Expose-Headers
*/
package corsclient
