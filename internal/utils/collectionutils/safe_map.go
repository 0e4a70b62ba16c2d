package collectionutils

import "sync"

type SafeMap[K comparable, V any] struct {
	data   map[K]V
	mutext sync.RWMutex
}

func (safeMap *SafeMap[K, V]) Store(newKey K, newValue V) {
	safeMap.mutext.Lock()
	defer safeMap.mutext.Unlock()
	safeMap.data[newKey] = newValue

}

func (safeMap *SafeMap[K, V]) Get(key K) (V, bool) {
	safeMap.mutext.RLock()
	defer safeMap.mutext.RUnlock()
	value, exists := safeMap.data[key]

	return value, exists
}

func (safeMap *SafeMap[K, V]) Delete(key K) {
	safeMap.mutext.Lock()
	defer safeMap.mutext.Unlock()
	delete(safeMap.data, key)
}

// Values returns a snapshot of the stored values in no particular order.
func (safeMap *SafeMap[K, V]) Values() []V {
	safeMap.mutext.RLock()
	defer safeMap.mutext.RUnlock()
	values := make([]V, 0, len(safeMap.data))
	for _, v := range safeMap.data {
		values = append(values, v)
	}
	return values
}

// Update applies fn to the value under key while holding the write lock.
// It reports false when the key is absent.
func (safeMap *SafeMap[K, V]) Update(key K, fn func(V) V) bool {
	safeMap.mutext.Lock()
	defer safeMap.mutext.Unlock()
	value, exists := safeMap.data[key]
	if !exists {
		return false
	}
	safeMap.data[key] = fn(value)
	return true
}

func (safeMap *SafeMap[K, V]) Len() int {
	safeMap.mutext.RLock()
	defer safeMap.mutext.RUnlock()
	return len(safeMap.data)
}

func New[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{
		data: make(map[K]V),
	}
}
