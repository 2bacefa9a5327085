// Package utils
package utils

// Find returns the first element matching the predicate, or nil.
func Find[T any](src []*T, match func(element *T) bool) *T {
	for _, element := range src {
		if match(element) {
			return element
		}
	}
	return nil
}

// Filter returns a new slice holding only the elements that keep accepts.
// The source slice is never modified.
func Filter[T any](src []*T, keep func(element *T) bool) []*T {
	result := make([]*T, 0, len(src))
	for _, element := range src {
		if keep(element) {
			result = append(result, element)
		}
	}
	return result
}

// ReverseForEach walks the slice from the last element to the first.
func ReverseForEach[T any](src []T, callback func(idx int, element T)) {
	for idx := len(src) - 1; idx >= 0; idx-- {
		callback(idx, src[idx])
	}
}
