package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
)

// Cache reuses keyboards across requests that share a range and config. Pressed state
// changes far more often than either, so callers keep the keyboard and only recompute keys.
type Cache struct {
	mu         sync.RWMutex
	maxEntries int
	entries    map[string]*Keyboard
}

// NewCache creates a cache holding at most maxEntries keyboards. When full it is
// emptied before the next insert. maxEntries <= 0 means no limit.
func NewCache(maxEntries int) *Cache {
	return &Cache{
		maxEntries: maxEntries,
		entries:    make(map[string]*Keyboard),
	}
}

// Keyboard returns the cached keyboard for (r, cfg), building it on a miss.
// Failed builds are not cached.
func (c *Cache) Keyboard(r Range, cfg Config) (*Keyboard, error) {
	key := cacheKey(r, cfg)

	c.mu.RLock()
	kb, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return kb, nil
	}

	kb, err := New(r, cfg)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing, nil
	}
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]*Keyboard)
	}
	c.entries[key] = kb
	return kb, nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cacheKey hashes the JSON form of the inputs. encoding/json sorts map keys, so equal
// configs always produce the same key.
func cacheKey(r Range, cfg Config) string {
	data, _ := json.Marshal(struct {
		Range  Range  `json:"range"`
		Config Config `json:"config"`
	}{r, cfg})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
