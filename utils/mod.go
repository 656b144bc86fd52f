package utils

// FindIndex returns the position of the first item equal to item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// BestIndex returns the position of the first value no other value is
// better than. It returns -1 for an empty slice.
func BestIndex[T any](values []T, better func(a, b T) bool) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if better(values[i], values[best]) {
			best = i
		}
	}
	return best
}
