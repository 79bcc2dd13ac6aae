package utils

import (
	"slices"
	"time"
)

// SortDates orders the slice in place, oldest first when asc is true, and
// returns it for chaining.
func SortDates(dates []time.Time, asc bool) []time.Time {
	slices.SortFunc(dates, func(a, b time.Time) int {
		if asc {
			return a.Compare(b)
		}
		return b.Compare(a)
	})
	return dates
}

// GetSortedKeys collects the keys of a date-keyed map in sorted order, for
// deterministic iteration over scene maps.
func GetSortedKeys[T any](m map[time.Time]T, asc bool) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return SortDates(keys, asc)
}
