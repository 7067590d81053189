/*
Package sync provides a split-locked map that the benchmark manager
uses to collect per-algorithm results from concurrently running
workers.

The map consists of several splits, each guarded by its own lock, so
that workers storing results for different algorithms rarely contend.
For other synchronization primitives, use the standard library.
*/
package sync

import (
	"hash/fnv"
	"runtime"
	"sync"
)

/*
A Hasher represents a comparable key that has a hash value, which is
needed by Map to select a split.
*/
type Hasher interface {
	comparable
	Hash() uint64
}

// StringKey is a Hasher for plain string keys, such as algorithm names.
type StringKey string

// Hash returns the FNV-1a hash of the key.
func (k StringKey) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k))
	return h.Sum64()
}

/*
A Split is a partial map that belongs to a larger Map, which can be
individually locked.
*/
type Split[K Hasher, V any] struct {
	sync.RWMutex
	Map map[K]V
}

/*
A Map is a parallel map that consists of several split maps that can
be individually locked and accessed.

The zero Map is not valid.
*/
type Map[K Hasher, V any] struct {
	splits []Split[K, V]
}

/*
NewMap returns a map with size splits.

If size is <= 0, runtime.GOMAXPROCS(0) is used instead.
*/
func NewMap[K Hasher, V any](size int) *Map[K, V] {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	splits := make([]Split[K, V], size)
	for i := range splits {
		splits[i].Map = make(map[K]V)
	}
	return &Map[K, V]{splits}
}

// Split retrieves the split for a particular key.
func (m *Map[K, V]) Split(key K) *Split[K, V] {
	return &m.splits[key.Hash()%uint64(len(m.splits))]
}

// Load returns the value stored in the map for a key. The ok result
// indicates whether value was found in the map.
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	split := m.Split(key)
	split.RLock()
	value, ok = split.Map[key]
	split.RUnlock()
	return
}

// Store sets the value for a key.
func (m *Map[K, V]) Store(key K, value V) {
	split := m.Split(key)
	split.Lock()
	split.Map[key] = value
	split.Unlock()
}

/*
Modify looks up a value for the key if present and passes it to the
modifier. The replacement returned by the modifier is stored for key
if storeNotDelete is true, otherwise the key is deleted.

The modifier is invoked exactly once, while a lock is held on a
portion of the map, so it should be brief.
*/
func (m *Map[K, V]) Modify(key K, modifier func(value V, ok bool) (replacement V, storeNotDelete bool)) (replacement V, storeNotDelete bool) {
	split := m.Split(key)
	split.Lock()
	value, ok := split.Map[key]
	if replacement, storeNotDelete = modifier(value, ok); storeNotDelete {
		split.Map[key] = replacement
	} else {
		delete(split.Map, key)
	}
	split.Unlock()
	return
}

// Len returns the number of entries across all splits.
func (m *Map[K, V]) Len() (n int) {
	for i := range m.splits {
		split := &m.splits[i]
		split.RLock()
		n += len(split.Map)
		split.RUnlock()
	}
	return
}

func (split *Split[K, V]) splitRange(f func(key K, value V) bool) bool {
	split.RLock()
	defer split.RUnlock()
	for key, value := range split.Map {
		if !f(key, value) {
			return false
		}
	}
	return true
}

/*
Range calls f sequentially for each key and value present in the
map. If f returns false, Range stops the iteration.

Range does not necessarily correspond to any consistent snapshot of
the Map's contents. f must not modify the map.
*/
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	for i := range m.splits {
		if !m.splits[i].splitRange(f) {
			return
		}
	}
}
