// Package cmap provides a sharded concurrent map.
//
// Keys are spread over a power-of-two number of shards by their murmur3
// hash; each shard has its own RWMutex. Range visits shards one at a time,
// so it is not a point-in-time view of the whole map.
//
//	m := cmap.New[int, Position]()
//	m.Set(7, pos)
//	pos, ok := m.Get(7)
package cmap
