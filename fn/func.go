// Package fn contains small generic helpers over slices used across the
// asset packages.
package fn

// Any returns true if the passed predicate returns true for any item in the
// slice.
func Any[T any](xs []T, pred func(T) bool) bool {
	for _, x := range xs {
		if pred(x) {
			return true
		}
	}

	return false
}

// All returns true if the passed predicate returns true for all items in the
// slice.
func All[T any](xs []T, pred func(T) bool) bool {
	for _, x := range xs {
		if !pred(x) {
			return false
		}
	}

	return true
}

// Map applies the function f to each element of the slice and returns the
// slice of results.
func Map[I, O any](xs []I, f func(I) O) []O {
	res := make([]O, 0, len(xs))
	for _, x := range xs {
		res = append(res, f(x))
	}

	return res
}

// Filter returns a new slice holding only the elements for which the
// predicate returned true.
func Filter[T any](xs []T, pred func(T) bool) []T {
	var res []T
	for _, x := range xs {
		if pred(x) {
			res = append(res, x)
		}
	}

	return res
}
