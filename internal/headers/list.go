package headers

import (
	"strings"

	"github.com/jub0bs/corsclient/internal/util"
)

// see https://httpwg.org/specs/rfc9110.html#whitespace
var ows = util.MakeASCIISet("\t ")

// TrimOWS trims all [optional whitespace (OWS)] from the start of and the
// end of s.
//
// [optional whitespace (OWS)]: https://httpwg.org/specs/rfc9110.html#whitespace
func TrimOWS(s string) string {
	return ows.Trim(s)
}

// ParseList splits the value of a [list-based field] of header names
// into its elements, which it trims of OWS and byte-lowercases.
// Empty elements are dropped.
//
// [list-based field]: https://httpwg.org/specs/rfc9110.html#abnf.extension
func ParseList(s string) []string {
	var names []string
	for elem := range strings.SplitSeq(s, ValueSep) {
		elem = TrimOWS(elem)
		if elem == "" {
			continue
		}
		names = append(names, util.ByteLowercase(elem))
	}
	return names
}

// NormalizeList returns a copy of names in which each element is trimmed
// of OWS and byte-lowercased. Empty elements are dropped.
// NormalizeList is idempotent.
func NormalizeList(names []string) []string {
	res := make([]string, 0, len(names))
	for _, name := range names {
		name = TrimOWS(name)
		if name == "" {
			continue
		}
		res = append(res, util.ByteLowercase(name))
	}
	return res
}

// ParseSet parses each element of values as a list-based field of header
// names and returns the set of all the names found.
func ParseSet(values ...string) util.Set {
	set := make(util.Set)
	for _, v := range values {
		for _, name := range ParseList(v) {
			set.Add(name)
		}
	}
	return set
}

// JoinCanonical writes names in canonical format, sorted in lexicographical
// order, separated by commas.
// Since whitespace is optional around the elements of a list-based field,
// none is used.
func JoinCanonical(names util.Set) string {
	canon := make(util.Set, names.Size())
	for name := range names {
		canon.Add(Canonical(name))
	}
	return strings.Join(canon.ToSortedSlice(), ValueSep)
}
