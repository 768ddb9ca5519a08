package cache

import (
	"context"
	"sync"
)

// DefaultMemoryCapacity bounds the in-memory tier.
const DefaultMemoryCapacity = 128

// MemoryTier is a bounded LRU cache safe for concurrent use. The eviction
// and insert pair runs under one exclusive section, so concurrent writers
// cannot grow the tier past its capacity.
type MemoryTier struct {
	capacity int

	mu      sync.Mutex
	entries map[string]*lruNode
	head    *lruNode // most recently used
	tail    *lruNode // least recently used
}

type lruNode struct {
	key   string
	value *Entry
	prev  *lruNode
	next  *lruNode
}

// NewMemoryTier creates the tier; capacity <= 0 uses the default bound.
func NewMemoryTier(capacity int) *MemoryTier {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryTier{
		capacity: capacity,
		entries:  make(map[string]*lruNode),
	}
}

func (m *MemoryTier) Name() string { return "memory" }

func (m *MemoryTier) Get(_ context.Context, fingerprint string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.entries[fingerprint]
	if !ok {
		return nil, ErrMiss
	}
	m.moveToFront(n)
	return n.value, nil
}

func (m *MemoryTier) Put(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n, ok := m.entries[e.Fingerprint]; ok {
		n.value = e
		m.moveToFront(n)
		return nil
	}

	n := &lruNode{key: e.Fingerprint, value: e}
	m.entries[e.Fingerprint] = n
	m.addToFront(n)

	if len(m.entries) > m.capacity {
		m.evictTail()
	}
	return nil
}

// Len reports the current entry count.
func (m *MemoryTier) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryTier) moveToFront(n *lruNode) {
	if n == m.head {
		return
	}
	m.unlink(n)
	m.addToFront(n)
}

func (m *MemoryTier) addToFront(n *lruNode) {
	n.next = m.head
	n.prev = nil
	if m.head != nil {
		m.head.prev = n
	}
	m.head = n
	if m.tail == nil {
		m.tail = n
	}
}

func (m *MemoryTier) unlink(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		m.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		m.tail = n.prev
	}
}

func (m *MemoryTier) evictTail() {
	if m.tail == nil {
		return
	}
	delete(m.entries, m.tail.key)
	m.unlink(m.tail)
}
