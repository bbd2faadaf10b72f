package util

import (
	"maps"
	"slices"
)

// A Set represents a mathematical set of strings.
// The zero value is an empty set that is not ready for Add;
// use [NewSet] instead.
type Set map[string]struct{}

// NewSet returns a Set that contains all of elems but no other elements.
func NewSet(elems ...string) Set {
	set := make(Set, len(elems))
	for _, e := range elems {
		set[e] = struct{}{}
	}
	return set
}

// Add adds e to set.
func (set Set) Add(e string) {
	set[e] = struct{}{}
}

// Contains reports whether e is an element of set.
func (set Set) Contains(e string) bool {
	_, found := set[e]
	return found
}

// Size returns the cardinality of set.
func (set Set) Size() int {
	return len(set)
}

// Union returns a new Set containing the elements of set and those of others.
func (set Set) Union(others ...Set) Set {
	res := maps.Clone(set)
	if res == nil {
		res = make(Set)
	}
	for _, o := range others {
		maps.Copy(res, o)
	}
	return res
}

// ToSortedSlice returns a slice of set's elements sorted in
// lexicographical order.
func (set Set) ToSortedSlice() []string {
	return slices.Sorted(maps.Keys(set))
}
