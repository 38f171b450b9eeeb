package mcp

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// resultCache keeps rendered tool responses keyed by request hash.
// A nil *resultCache caches nothing.
type resultCache struct {
	cache  *lru.Cache[string, string]
	hits   atomic.Int64
	misses atomic.Int64
}

// newResultCache returns nil when size is zero, which disables caching
func newResultCache(size int) (*resultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &resultCache{cache: cache}, nil
}

func (c *resultCache) get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	text, ok := c.cache.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return text, ok
}

func (c *resultCache) set(key, text string) {
	if c == nil {
		return
	}
	c.cache.Add(key, text)
}

// cacheStats is reported by get_status
type cacheStats struct {
	Enabled bool  `json:"enabled"`
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

func (c *resultCache) stats() cacheStats {
	if c == nil {
		return cacheStats{}
	}
	return cacheStats{
		Enabled: true,
		Entries: c.cache.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// requestKey hashes the canonical JSON encoding of a request
func requestKey(req any) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
