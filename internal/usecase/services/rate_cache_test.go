package services_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/api-sage/funds-transfer-engine/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type countingProvider struct {
	calls atomic.Int64
	rate  decimal.Decimal
	err   error
	delay time.Duration
}

func (p *countingProvider) GetRate(_ context.Context, fromCurrency string, toCurrency string) (domain.ExchangeRate, error) {
	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return domain.ExchangeRate{}, p.err
	}
	return domain.ExchangeRate{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Rate:         p.rate,
	}, nil
}

func TestRateCacheServesRepeatedHitsFromCache(t *testing.T) {
	provider := &countingProvider{rate: decimal.RequireFromString("0.85")}
	cache := services.NewRateCache(provider, 2*time.Hour, 100, newFakeClock())

	for i := 0; i < 5; i++ {
		rate, err := cache.GetRate(context.Background(), "USD", "EUR")
		if err != nil {
			t.Fatalf("get rate: %v", err)
		}
		if !rate.Rate.Equal(decimal.RequireFromString("0.85")) {
			t.Fatalf("unexpected rate %s", rate.Rate)
		}
	}

	if got := provider.calls.Load(); got != 1 {
		t.Fatalf("expected one provider call, got %d", got)
	}
}

func TestRateCacheExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	provider := &countingProvider{rate: decimal.RequireFromString("0.85")}
	cache := services.NewRateCache(provider, 2*time.Hour, 100, clock)

	if _, err := cache.GetRate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("initial get: %v", err)
	}

	// Just inside the TTL: still cached.
	clock.Advance(2*time.Hour - time.Second)
	if _, err := cache.GetRate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("get inside ttl: %v", err)
	}
	if got := provider.calls.Load(); got != 1 {
		t.Fatalf("expected one provider call inside ttl, got %d", got)
	}

	// Just past the TTL: exactly one refresh call.
	clock.Advance(2 * time.Second)
	if _, err := cache.GetRate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("get past ttl: %v", err)
	}
	if got := provider.calls.Load(); got != 2 {
		t.Fatalf("expected exactly one refresh after expiry, got %d calls", got)
	}
}

func TestRateCacheTTLCountsFromWriteNotRead(t *testing.T) {
	clock := newFakeClock()
	provider := &countingProvider{rate: decimal.RequireFromString("0.85")}
	cache := services.NewRateCache(provider, 2*time.Hour, 100, clock)

	if _, err := cache.GetRate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("initial get: %v", err)
	}

	// Reads near the end of the TTL must not slide the expiry.
	clock.Advance(time.Hour + 59*time.Minute)
	if _, err := cache.GetRate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("get inside ttl: %v", err)
	}
	clock.Advance(2 * time.Minute)
	if _, err := cache.GetRate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("get past ttl: %v", err)
	}

	if got := provider.calls.Load(); got != 2 {
		t.Fatalf("expected expiry measured from write time, got %d calls", got)
	}
}

func TestRateCacheKeysAreOrderedPairs(t *testing.T) {
	provider := &countingProvider{rate: decimal.RequireFromString("0.85")}
	cache := services.NewRateCache(provider, 2*time.Hour, 100, newFakeClock())

	if _, err := cache.GetRate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("get USD/EUR: %v", err)
	}
	if _, err := cache.GetRate(context.Background(), "EUR", "USD"); err != nil {
		t.Fatalf("get EUR/USD: %v", err)
	}

	if got := provider.calls.Load(); got != 2 {
		t.Fatalf("expected independent entries per direction, got %d calls", got)
	}
}

func TestRateCacheEnforcesSizeBound(t *testing.T) {
	provider := &countingProvider{rate: decimal.RequireFromString("1.5")}
	cache := services.NewRateCache(provider, 2*time.Hour, 2, newFakeClock())

	pairs := [][2]string{{"USD", "EUR"}, {"USD", "GBP"}, {"USD", "JPY"}}
	for _, pair := range pairs {
		if _, err := cache.GetRate(context.Background(), pair[0], pair[1]); err != nil {
			t.Fatalf("get %s/%s: %v", pair[0], pair[1], err)
		}
	}

	if got := cache.Len(); got != 2 {
		t.Fatalf("expected size bound of 2, got %d live entries", got)
	}

	// The least recently used pair was evicted and costs another call.
	if _, err := cache.GetRate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("get evicted pair: %v", err)
	}
	if got := provider.calls.Load(); got != 4 {
		t.Fatalf("expected 4 provider calls, got %d", got)
	}
}

func TestRateCacheDoesNotCacheFailures(t *testing.T) {
	provider := &countingProvider{err: domain.ErrConversionFailed}
	cache := services.NewRateCache(provider, 2*time.Hour, 100, newFakeClock())

	for i := 0; i < 2; i++ {
		if _, err := cache.GetRate(context.Background(), "USD", "EUR"); !errors.Is(err, domain.ErrConversionFailed) {
			t.Fatalf("expected provider fault, got %v", err)
		}
	}

	if got := provider.calls.Load(); got != 2 {
		t.Fatalf("expected a provider call per failed lookup, got %d", got)
	}
}

func TestRateCacheCoalescesConcurrentMisses(t *testing.T) {
	provider := &countingProvider{rate: decimal.RequireFromString("0.85"), delay: 20 * time.Millisecond}
	cache := services.NewRateCache(provider, 2*time.Hour, 100, newFakeClock())

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = cache.GetRate(context.Background(), "USD", "EUR")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
	}
	if got := provider.calls.Load(); got != 1 {
		t.Fatalf("expected concurrent misses to coalesce into one call, got %d", got)
	}
}
