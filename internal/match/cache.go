package match

import (
	"sync"
)

// pageCache is a thread-safe least-recently-used cache of per-page search
// results, keyed by document path and page number so results from one
// document never leak into another. Repeated queries against the same pages
// (multi-variant terms, repeated checklist rows) skip the item scan.
// Eviction is capacity based, never time based.
type pageCache struct {
	mutex    sync.Mutex
	capacity int
	items    map[pageKey]*cacheNode
	head     *cacheNode // most recently used
	tail     *cacheNode // least recently used
	hits     int64
	misses   int64
}

// pageKey identifies one page of one document.
type pageKey struct {
	path string
	page int
}

// cacheNode is a node in the doubly-linked recency list.
type cacheNode struct {
	key   pageKey
	value map[string][]int
	prev  *cacheNode
	next  *cacheNode
}

func newPageCache(capacity int) *pageCache {
	if capacity <= 0 {
		capacity = 16
	}

	c := &pageCache{
		capacity: capacity,
		items:    make(map[pageKey]*cacheNode),
	}

	c.head = &cacheNode{}
	c.tail = &cacheNode{}
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// lookup returns the cached item indices for a variant on a page.
func (c *pageCache) lookup(key pageKey, variant string) ([]int, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	node, exists := c.items[key]
	if !exists {
		c.misses++
		return nil, false
	}
	c.moveToFront(node)

	indices, ok := node.value[variant]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return indices, true
}

// store records the item indices for a variant on a page, evicting the least
// recently used page when over capacity.
func (c *pageCache) store(key pageKey, variant string, indices []int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if node, exists := c.items[key]; exists {
		node.value[variant] = indices
		c.moveToFront(node)
		return
	}

	node := &cacheNode{
		key:   key,
		value: map[string][]int{variant: indices},
	}
	c.addToFront(node)
	c.items[key] = node

	if len(c.items) > c.capacity {
		c.evictLRU()
	}
}

func (c *pageCache) len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.items)
}

func (c *pageCache) stats() (hits, misses int64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.hits, c.misses
}

func (c *pageCache) moveToFront(node *cacheNode) {
	c.removeNode(node)
	c.addToFront(node)
}

func (c *pageCache) addToFront(node *cacheNode) {
	node.prev = c.head
	node.next = c.head.next
	c.head.next.prev = node
	c.head.next = node
}

func (c *pageCache) removeNode(node *cacheNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
}

func (c *pageCache) evictLRU() {
	lru := c.tail.prev
	if lru == c.head {
		return
	}
	c.removeNode(lru)
	delete(c.items, lru.key)
}
