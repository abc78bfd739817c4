package store

import (
	"sync"

	"remdex/internal/item"
)

// shardCount must be a power of two so the shard pick is a mask.
const shardCount = 16

type shard struct {
	mu    sync.RWMutex
	items map[item.ID]item.Item
}

// shardedMap spreads items over independently locked shards so writes to
// unrelated identifiers never contend on one lock. UUIDs are uniformly
// random, so the leading byte is shard selection enough.
type shardedMap struct {
	shards [shardCount]shard
}

func newShardedMap() *shardedMap {
	m := &shardedMap{}
	for i := range m.shards {
		m.shards[i].items = make(map[item.ID]item.Item)
	}

	return m
}

func (m *shardedMap) shardFor(id item.ID) *shard {
	return &m.shards[id[0]&(shardCount-1)]
}

func (m *shardedMap) get(id item.ID) (item.Item, bool) {
	s := m.shardFor(id)
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]

	return it, ok
}

func (m *shardedMap) put(it item.Item) {
	s := m.shardFor(it.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[it.ID] = it
}

func (m *shardedMap) delete(id item.ID) {
	s := m.shardFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
}

// replaceAll swaps in a fresh data set shard by shard. Concurrent readers
// may observe a mix of old and new shards mid-swap, but never a torn item.
func (m *shardedMap) replaceAll(items []item.Item) {
	fresh := make([]map[item.ID]item.Item, shardCount)
	for i := range fresh {
		fresh[i] = make(map[item.ID]item.Item)
	}

	for _, it := range items {
		fresh[it.ID[0]&(shardCount-1)][it.ID] = it
	}

	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		s.items = fresh[i]
		s.mu.Unlock()
	}
}

// snapshot copies every item out under shard read locks. The copy is
// point-in-time per shard, not across shards; iteration queries tolerate
// that by design.
func (m *shardedMap) snapshot() []item.Item {
	out := make([]item.Item, 0, m.len())

	for i := range m.shards {
		s := &m.shards[i]
		s.mu.RLock()

		for _, it := range s.items {
			out = append(out, it)
		}

		s.mu.RUnlock()
	}

	return out
}

func (m *shardedMap) len() int {
	n := 0

	for i := range m.shards {
		s := &m.shards[i]
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}

	return n
}
