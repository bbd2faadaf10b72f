package origins

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

const (
	schemeHostSep = "://"     // scheme-host separator
	hostPortSep   = ':'       // host-port separator
	maxUint16     = 1<<16 - 1 // maximum value for uint16 type
)

const (
	// maxHostLen is the maximum length of a host, which is dominated by
	// the maximum length of an (absolute) domain name (253);
	// see https://devblogs.microsoft.com/oldnewthing/20120412-00/?p=7873.
	maxHostLen = 253
	// maxSchemeLen is the maximum tolerated length for schemes.
	maxSchemeLen = 64
	// maxPortLen is the maximum length of a port's decimal representation.
	maxPortLen = len("65535")
)

// Origin represents a (tuple) [Web origin].
//
// [Web origin]: https://developer.mozilla.org/en-US/docs/Glossary/Origin
type Origin struct {
	// Scheme is the origin's scheme.
	Scheme string
	// Host is the origin's host; IPv6 addresses are stored without brackets.
	Host string
	// Port is the origin's port (if any).
	// The zero value marks the absence of an explicit port.
	Port int
}

var zeroOrigin Origin

// Parse parses str, which must be an origin in [ASCII serialized form]
// (e.g. "https://example.com:8443"), into an [Origin] structure.
// Contrary to [Normalize], Parse rejects anything that follows the
// host-port part, such as a path.
//
// [ASCII serialized form]: https://html.spec.whatwg.org/multipage/browsers.html#ascii-serialisation-of-an-origin
func Parse(str string) (Origin, bool) {
	const maxOriginLen = maxSchemeLen + len(schemeHostSep) + 2 + maxHostLen + 1 + maxPortLen
	if len(str) > maxOriginLen {
		return zeroOrigin, false
	}
	scheme, str, ok := parseScheme(str)
	if !ok {
		return zeroOrigin, false
	}
	str, ok = strings.CutPrefix(str, schemeHostSep)
	if !ok {
		return zeroOrigin, false
	}
	host, str, ok := parseHost(str)
	if !ok {
		return zeroOrigin, false
	}
	var port int // assume no port at first
	if len(str) > 0 {
		str, ok = strings.CutPrefix(str, string(hostPortSep))
		if !ok {
			return zeroOrigin, false
		}
		port, str, ok = parsePort(str)
		if !ok || str != "" {
			return zeroOrigin, false
		}
	}
	o := Origin{
		Scheme: scheme,
		Host:   host,
		Port:   port,
	}
	return o, true
}

// String returns the ASCII serialization of o.
func (o Origin) String() string {
	host := o.Host
	if strings.IndexByte(host, hostPortSep) >= 0 {
		host = "[" + host + "]"
	}
	if o.Port == 0 {
		return o.Scheme + schemeHostSep + host
	}
	return o.Scheme + schemeHostSep + host + string(hostPortSep) + strconv.Itoa(o.Port)
}

// parseHost parses the host of a serialized origin. It returns the host,
// the unconsumed part of str, and a bool that indicates success or failure.
func parseHost(str string) (string, string, bool) {
	if len(str) > 0 && str[0] == '[' { // looks like an IPv6 address
		end := strings.IndexByte(str, ']')
		if end <= 1 { // unmatched left bracket or empty brackets
			return "", str, false
		}
		return str[1:end], str[end+1:], true
	}
	i := 0
	for ; i < len(str) && isHostByte(str[i]); i++ {
		// deliberately empty body
	}
	if i == 0 || i > maxHostLen || str[0] == '.' {
		return "", str, false
	}
	return str[:i], str[i:], true
}

// parseScheme parses a URI scheme. If successful, it returns the scheme,
// the unconsumed part of str, and true; otherwise, it returns "", "", false.
func parseScheme(str string) (_ string, _ string, _ bool) {
	// See https://www.rfc-editor.org/rfc/rfc3986.html#section-3.1.
	if len(str) == 0 || !isLowerAlpha(str[0]) {
		return
	}
	i := 1
	for end := min(maxSchemeLen, len(str)); i < end && isSubsequentSchemeByte(str[i]); i++ {
		// deliberately empty body
	}
	return str[:i], str[i:], true
}

// parsePort parses a port number. It returns the port number, the unconsumed
// part of the input string, and a bool that indicates success or failure.
func parsePort(str string) (int, string, bool) {
	if len(str) == 0 || str[0] < '1' || '9' < str[0] {
		return 0, str, false
	}
	i := 1
	for end := min(len(str), maxPortLen); i < end && isDigit(str[i]); i++ {
		// deliberately empty body
	}
	port, err := strconv.Atoi(str[:i])
	if err != nil || maxUint16 < port {
		return 0, str, false
	}
	return port, str[i:], true
}

func isLowerAlpha(b byte) bool {
	return 'a' <= b && b <= 'z'
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isSubsequentSchemeByte(b byte) bool {
	return isLowerAlpha(b) || isDigit(b) || b == '+' || b == '-' || b == '.'
}

// isHostByte reports whether b may appear in a (non-IPv6) host:
// an (ASCII) lowercase letter, digit, hyphen, underscore, or full stop.
func isHostByte(b byte) bool {
	return isLowerAlpha(b) || isDigit(b) || b == '-' || b == '_' || b == '.'
}

// defaultPorts maps schemes to the port implied when a URL omits its port.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
}

// Normalize reduces raw, which may be an origin or any absolute URL,
// to the form scheme://host:port, making explicit the default port of
// well-known schemes. Two URLs are same-origin if and only if their
// normalized forms are equal.
// It returns "", false if raw has no scheme or no host.
func Normalize(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	host, port := u.Hostname(), u.Port()
	if host == "" {
		return "", false
	}
	if port == "" {
		port = defaultPorts[u.Scheme]
	}
	if port == "" {
		if strings.IndexByte(host, hostPortSep) >= 0 {
			host = "[" + host + "]"
		}
		return u.Scheme + schemeHostSep + host, true
	}
	return u.Scheme + schemeHostSep + net.JoinHostPort(host, port), true
}
