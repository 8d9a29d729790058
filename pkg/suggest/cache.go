package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

type cacheEntry struct {
	suggestions []Suggestion
	limit       int
	accessTime  int64
}

// HotCache remembers recent query results keyed by the normalised input.
// Keys live in a patricia trie so that adding a word can drop every cached
// input that is a prefix of the word's input form, the only queries whose
// answer it can change.
type HotCache struct {
	entries     *patricia.Trie
	size        int
	maxEntries  int
	accessCount int64
	hits        int64
	misses      int64
	mu          sync.Mutex
}

// NewHotCache returns a cache holding up to maxEntries inputs.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		entries:    patricia.NewTrie(),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the cached answer for input when it covers limit.
// A limit below one asks for every result.
func (hc *HotCache) Get(input string, limit int) ([]Suggestion, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	item := hc.entries.Get(patricia.Prefix(input))
	if item == nil {
		hc.misses++
		return nil, false
	}
	e := item.(*cacheEntry)
	complete := e.limit < 1 || len(e.suggestions) < e.limit
	if !complete && (limit < 1 || limit > e.limit) {
		hc.misses++
		return nil, false
	}
	hc.hits++
	e.accessTime = hc.nextAccessTime()

	n := len(e.suggestions)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Suggestion, n)
	copy(out, e.suggestions)
	return out, true
}

// Put stores the answer computed for input with the given limit.
func (hc *HotCache) Put(input string, limit int, suggestions []Suggestion) {
	if hc.maxEntries < 1 {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	stored := make([]Suggestion, len(suggestions))
	copy(stored, suggestions)
	e := &cacheEntry{suggestions: stored, limit: limit, accessTime: hc.nextAccessTime()}

	key := patricia.Prefix(input)
	if hc.entries.Get(key) == nil {
		if hc.size >= hc.maxEntries {
			hc.evictLRU()
		}
		hc.size++
	}
	hc.entries.Set(key, e)
}

// Invalidate drops every cached input that is a prefix of key, key
// included, and returns how many were dropped.
func (hc *HotCache) Invalidate(key string) int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	var stale []patricia.Prefix
	err := hc.entries.VisitPrefixes(patricia.Prefix(key), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, append(patricia.Prefix(nil), p...))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting hot cache prefixes: %v", err)
	}
	for _, p := range stale {
		if hc.entries.Delete(p) {
			hc.size--
		}
	}
	return len(stale)
}

// Clear empties the cache.
func (hc *HotCache) Clear() {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.entries = patricia.NewTrie()
	hc.size = 0
}

// Stats reports cache usage.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"hotCacheEntries": hc.size,
		"maxHotEntries":   hc.maxEntries,
		"hotCacheHits":    int(hc.hits),
		"hotCacheMisses":  int(hc.misses),
	}
}

func (hc *HotCache) nextAccessTime() int64 {
	hc.accessCount++
	return hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldest patricia.Prefix
	var oldestTime int64 = math.MaxInt64

	hc.entries.Visit(func(p patricia.Prefix, item patricia.Item) error {
		if e := item.(*cacheEntry); e.accessTime < oldestTime {
			oldestTime = e.accessTime
			oldest = append(patricia.Prefix(nil), p...)
		}
		return nil
	})

	if oldest != nil && hc.entries.Delete(oldest) {
		hc.size--
		log.Debugf("Evicted input '%s' from hot cache", oldest)
	}
}
