package functional

func Map[T, V any](slice []T, f func(T) V) []V {
	result := make([]V, len(slice))
	for i, v := range slice {
		result[i] = f(v)
	}

	return result
}

func Filter[T any](slice []T, keep func(T) bool) []T {
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

func GroupBy[T any, K comparable](slice []T, key func(T) K) map[K][]T {
	result := make(map[K][]T)
	for _, v := range slice {
		k := key(v)
		result[k] = append(result[k], v)
	}
	return result
}
