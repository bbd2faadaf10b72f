package util

import "strings"

// An ASCIISet represents a set of ASCII bytes.
type ASCIISet [8]uint32

// MakeASCIISet creates a set of the ASCII bytes in chars.
// All bytes in chars are assumed to be less than utf8.RuneSelf.
func MakeASCIISet(chars string) ASCIISet {
	var as ASCIISet
	for i := range len(chars) {
		c := chars[i]
		as[c/32] |= 1 << (c % 32)
	}
	return as
}

// Contains reports whether c is inside the set.
func (as *ASCIISet) Contains(c byte) bool {
	return (as[c/32] & (1 << (c % 32))) != 0
}

// Trim returns s without its leading and trailing bytes that belong
// to as.
func (as *ASCIISet) Trim(s string) string {
	for len(s) > 0 && as.Contains(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && as.Contains(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}

var (
	upper = MakeASCIISet("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	lower = MakeASCIISet("abcdefghijklmnopqrstuvwxyz")
)

const toLower = 'a' - 'A'

// ByteLowercase returns a [byte-lowercase] version of str.
// If str contains no uppercase ASCII byte, str itself is returned.
//
// [byte-lowercase]: https://infra.spec.whatwg.org/#byte-lowercase
func ByteLowercase(str string) string {
	if !containsAny(str, &upper) {
		return str
	}
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + toLower
		}
		return r
	}, str)
}

// ByteUppercase returns a [byte-uppercase] version of str.
// If str contains no lowercase ASCII byte, str itself is returned.
//
// [byte-uppercase]: https://infra.spec.whatwg.org/#byte-uppercase
func ByteUppercase(str string) string {
	if !containsAny(str, &lower) {
		return str
	}
	return strings.Map(func(r rune) rune {
		if 'a' <= r && r <= 'z' {
			return r - toLower
		}
		return r
	}, str)
}

func containsAny(str string, as *ASCIISet) bool {
	for i := range len(str) {
		if as.Contains(str[i]) {
			return true
		}
	}
	return false
}
