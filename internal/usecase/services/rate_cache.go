package services

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/api-sage/funds-transfer-engine/internal/telemetry"
	"golang.org/x/sync/singleflight"
)

// Verify that RateCache implements the domain.RateProvider interface
var _ domain.RateProvider = (*RateCache)(nil)

// RateCache memoizes provider lookups per ordered currency pair. Entries
// expire a fixed TTL after the write, not after the last read, and the live
// entry count is bounded with least-recently-used eviction. The cache is safe
// for concurrent use on its own; it does not rely on any caller-held lock.
type RateCache struct {
	provider   domain.RateProvider
	ttl        time.Duration
	maxEntries int
	clock      Clock

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is most recently used

	group singleflight.Group
}

type cacheEntry struct {
	key       string
	rate      domain.ExchangeRate
	expiresAt time.Time
}

func NewRateCache(provider domain.RateProvider, ttl time.Duration, maxEntries int, clock Clock) *RateCache {
	if clock == nil {
		clock = SystemClock{}
	}

	return &RateCache{
		provider:   provider,
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clock,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

// GetRate returns a cached rate for (fromCurrency, toCurrency) or delegates to
// the provider. Concurrent misses for the same pair are coalesced into a
// single provider call. Provider failures are never cached.
func (c *RateCache) GetRate(ctx context.Context, fromCurrency string, toCurrency string) (domain.ExchangeRate, error) {
	key := fromCurrency + "/" + toCurrency

	if rate, ok := c.lookup(key); ok {
		telemetry.RateCacheHits.Inc()
		return rate, nil
	}
	telemetry.RateCacheMisses.Inc()

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Another flight may have filled the entry between the miss and
		// this call.
		if rate, ok := c.lookup(key); ok {
			return rate, nil
		}

		rate, err := c.provider.GetRate(ctx, fromCurrency, toCurrency)
		if err != nil {
			return domain.ExchangeRate{}, err
		}

		c.store(key, rate)
		return rate, nil
	})
	if err != nil {
		return domain.ExchangeRate{}, err
	}

	return value.(domain.ExchangeRate), nil
}

func (c *RateCache) lookup(key string) (domain.ExchangeRate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.entries[key]
	if !ok {
		return domain.ExchangeRate{}, false
	}

	entry := element.Value.(*cacheEntry)
	if !c.clock.Now().Before(entry.expiresAt) {
		c.order.Remove(element)
		delete(c.entries, key)
		return domain.ExchangeRate{}, false
	}

	c.order.MoveToFront(element)
	return entry.rate, true
}

func (c *RateCache) store(key string, rate domain.ExchangeRate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(c.ttl)

	if element, ok := c.entries[key]; ok {
		entry := element.Value.(*cacheEntry)
		entry.rate = rate
		entry.expiresAt = expiresAt
		c.order.MoveToFront(element)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{
		key:       key,
		rate:      rate,
		expiresAt: expiresAt,
	})

	for len(c.entries) > c.maxEntries {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
		telemetry.RateCacheEvictions.Inc()
	}
}

// Len reports the number of live entries.
func (c *RateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
