// Package segment provides binary-search primitives over sequences of
// vertically stacked intervals.
//
// Precondition for the logarithmic searches: the intervals are sorted
// by position and non-overlapping, i.e. both the start and end
// coordinates are non-decreasing in index. Stacked layout assembly
// guarantees this for sections within a model and for static elements
// within a section. LinearOverlap is the O(n) fallback used by tests
// to verify the invariant is actually being honored.
package segment

import "sort"

// Overlap returns the half-open index run [lo, hi) of intervals that
// overlap the open range (from, to). startAt and endAt report the
// i-th interval's edges and must be non-decreasing in i.
func Overlap(n int, startAt, endAt func(int) float64, from, to float64) (lo, hi int) {
	// First interval whose end lies past the top of the range.
	lo = sort.Search(n, func(i int) bool { return endAt(i) > from })
	// First interval at or past the bottom of the range.
	hi = sort.Search(n, func(i int) bool { return startAt(i) >= to })
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// LinearOverlap computes the same run as Overlap by scanning every
// interval. Verification fallback for tests; do not use on hot paths.
func LinearOverlap(n int, startAt, endAt func(int) float64, from, to float64) (lo, hi int) {
	lo, hi = n, n
	for i := 0; i < n; i++ {
		if endAt(i) > from && startAt(i) < to {
			if lo == n {
				lo = i
			}
			hi = i + 1
		}
	}
	if lo == n {
		return 0, 0
	}
	return lo, hi
}
