package cache

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

// Sharded spreads keys over independent TTL LRU shards to reduce lock
// contention. Capacity is split evenly across shards.
type Sharded[V any] struct {
	shards    []*ttlCache[V]
	shardMask uint64
}

// NewSharded returns a cache of roughly capacity entries. numShards is
// rounded up to a power of two; non-positive means 16.
func NewSharded[V any](capacity int, ttl time.Duration, numShards int) *Sharded[V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	shards := make([]*ttlCache[V], n)
	for i := range shards {
		shards[i] = newTTLCache[V](max(capacity/n, 1), ttl)
	}
	return &Sharded[V]{shards: shards, shardMask: uint64(n - 1)}
}

func (s *Sharded[V]) shard(key string) *ttlCache[V] {
	return s.shards[xxhash.Sum64String(key)&s.shardMask]
}

func (s *Sharded[V]) Get(key string) (V, bool) { return s.shard(key).Get(key) }

func (s *Sharded[V]) Set(key string, value V) { s.shard(key).Set(key, value) }

func (s *Sharded[V]) Invalidate(key string) { s.shard(key).Invalidate(key) }

func (s *Sharded[V]) Clear() {
	for _, shard := range s.shards {
		shard.Clear()
	}
}

func (s *Sharded[V]) Stop() {
	for _, shard := range s.shards {
		shard.Stop()
	}
}

// Metrics aggregates the metrics of all shards.
func (s *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, shard := range s.shards {
		m := shard.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

var _ WithMetrics[int] = (*Sharded[int])(nil)
