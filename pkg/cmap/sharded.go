package cmap

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Map is a concurrent-safe sharded map.
type Map[K comparable, V any] struct {
	shards    []*shard[K, V]
	shardMask uint32
}

type shard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// New creates a new sharded map with DefaultShardCount shards.
func New[K comparable, V any]() *Map[K, V] {
	m := &Map[K, V]{
		shards:    make([]*shard[K, V], DefaultShardCount),
		shardMask: DefaultShardCount - 1,
	}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{items: make(map[K]V)}
	}
	return m
}

// keyBytes encodes integer and string keys directly and formats anything
// else with %v.
func keyBytes(key any) []byte {
	var buf [8]byte
	switch k := key.(type) {
	case string:
		return []byte(k)
	case int:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case int64:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint64:
		binary.LittleEndian.PutUint64(buf[:], k)
	case int32:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint32:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	default:
		return fmt.Appendf(nil, "%v", k)
	}
	return buf[:]
}

func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	return m.shards[murmur3.Sum32(keyBytes(key))&m.shardMask]
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	s := m.getShard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.items[key]
	return val, ok
}

// Set stores a key-value pair.
func (m *Map[K, V]) Set(key K, value V) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Update replaces the value of key with fn(current, exists) under the
// shard lock and returns the stored value.
func (m *Map[K, V]) Update(key K, fn func(value V, exists bool) V) V {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.items[key]
	v := fn(existing, exists)
	s.items[key] = v
	return v
}

// Count returns the total number of items.
func (m *Map[K, V]) Count() int {
	count := 0
	for _, s := range m.shards {
		s.mu.RLock()
		count += len(s.items)
		s.mu.RUnlock()
	}
	return count
}

// Range calls fn for each entry until fn returns false. fn must not call
// back into the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, s := range m.shards {
		s.mu.RLock()
		for k, v := range s.items {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}
