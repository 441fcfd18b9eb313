package quota

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/fortunaworks/spinvault/internal/domain"
)

const (
	// AccountCacheSize is the maximum number of cached quota accounts.
	AccountCacheSize = 10000

	// AccountCacheTTL bounds staleness if an entry survives a missed
	// invalidation.
	AccountCacheTTL = 5 * time.Minute
)

// accountCache is an in-memory LRU cache for quota account lookups with
// time-based expiration.
type accountCache struct {
	lru *expirable.LRU[string, *domain.QuotaAccount]
}

func newAccountCache(size int, ttl time.Duration) *accountCache {
	return &accountCache{
		lru: expirable.NewLRU[string, *domain.QuotaAccount](size, nil, ttl),
	}
}

// Get retrieves a copy of the cached account. Callers own the returned
// record; the cached one is never handed out directly, so a concurrent quota
// query and spin can never mutate the same object.
func (c *accountCache) Get(userID string) (*domain.QuotaAccount, bool) {
	acct, ok := c.lru.Get(userID)
	if !ok {
		return nil, false
	}
	cp := *acct
	return &cp, true
}

// Set stores a copy of the account in the cache.
func (c *accountCache) Set(userID string, acct *domain.QuotaAccount) {
	cp := *acct
	c.lru.Add(userID, &cp)
}

// Invalidate removes an account from the cache after a failed write so the
// next read goes back to the repository.
func (c *accountCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

// Clear removes all entries from the cache.
func (c *accountCache) Clear() {
	c.lru.Purge()
}
