package collectionutils

// Associate transforms a slice of items into a map by applying the transform function to each item.
func Associate[T any, K comparable, V any](items []T, transform func(T) (K, V)) map[K]V {
	m := make(map[K]V, len(items))
	for _, item := range items {
		k, v := transform(item)
		m[k] = v
	}

	return m
}

// GroupBy groups items by the key the selector extracts, keeping input order inside each group.
func GroupBy[T any, K comparable](items []T, keySelector func(T) K) map[K][]T {
	m := make(map[K][]T)
	for _, item := range items {
		k := keySelector(item)
		m[k] = append(m[k], item)
	}

	return m
}

func GetOrDefault[K comparable, T any](m map[K]T, key K, defaultValue T) T {
	v, ok := m[key]
	if !ok {
		return defaultValue
	}
	return v
}

// Uniq returns the distinct keys selected from items, in first-seen order.
func Uniq[T any, K comparable](items []T, keySelector func(T) K) []K {
	seen := make(map[K]struct{}, len(items))
	keys := make([]K, 0, len(items))
	for _, item := range items {
		k := keySelector(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// Intersects reports whether a and b share at least one element.
func Intersects[K comparable](a, b []K) bool {
	set := make(map[K]struct{}, len(b))
	for _, k := range b {
		set[k] = struct{}{}
	}
	for _, k := range a {
		if _, ok := set[k]; ok {
			return true
		}
	}
	return false
}
