package ephemeris

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sankalpsthakur/astronova-sub001/internal/domain/ephemeris"

	"github.com/sirupsen/logrus"
)

// Cache is a bounded TTL decorator around an ephemeris.Provider.
//
// Keys bucket the instant to the minute and round coordinates to four
// decimals, which keeps the key space small while staying under 0.01° of
// positional error (the Moon moves at most ~0.0093°/minute). Entries for
// the current UTC day carry a short TTL; entries for other days a long
// one, since historical positions do not change.
//
// The mutex guards only the map. Values are computed outside the lock;
// concurrent misses for the same key may recompute redundantly, and the
// last writer wins.
type Cache struct {
	inner      ephemeris.Provider
	maxEntries int
	ttlToday   time.Duration
	ttlFar     time.Duration
	log        *logrus.Entry

	now func() time.Time // overridable in tests

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	positions *ephemeris.Positions
	expiresAt time.Time
}

func NewCache(inner ephemeris.Provider, maxEntries int, ttlToday, ttlFar time.Duration, log *logrus.Entry) *Cache {
	return &Cache{
		inner:      inner,
		maxEntries: maxEntries,
		ttlToday:   ttlToday,
		ttlFar:     ttlFar,
		log:        log,
		now:        time.Now,
		entries:    make(map[string]cacheEntry),
	}
}

// PositionsAt returns cached positions when a live entry exists, otherwise
// delegates to the inner provider and stores the result.
func (c *Cache) PositionsAt(ctx context.Context, instant time.Time, latitude, longitude float64) (*ephemeris.Positions, error) {
	key := cacheKey(instant, latitude, longitude)
	now := c.now()

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && now.Before(entry.expiresAt) {
		c.mu.Unlock()
		return entry.positions, nil
	}
	c.mu.Unlock()

	positions, err := c.inner.PositionsAt(ctx, instant, latitude, longitude)
	if err != nil {
		return nil, err
	}

	ttl := c.ttlFar
	if sameUTCDay(instant, now) {
		ttl = c.ttlToday
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictEarliestLocked()
	}
	c.entries[key] = cacheEntry{positions: positions, expiresAt: now.Add(ttl)}
	return positions, nil
}

// SweepExpired removes all entries past their expiry and returns how many
// were dropped.
func (c *Cache) SweepExpired() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictEarliestLocked drops the entry with the earliest expiry. Caller
// holds c.mu.
func (c *Cache) evictEarliestLocked() {
	var (
		earliestKey string
		earliestAt  time.Time
		first       = true
	)
	for key, entry := range c.entries {
		if first || entry.expiresAt.Before(earliestAt) {
			earliestKey = key
			earliestAt = entry.expiresAt
			first = false
		}
	}
	if !first {
		delete(c.entries, earliestKey)
	}
}

// cacheKey buckets the instant to the minute and includes place and zodiac
// system, mirroring the external service's query shape.
func cacheKey(instant time.Time, latitude, longitude float64) string {
	return fmt.Sprintf("%s|%.4f|%.4f|lahiri",
		instant.UTC().Truncate(time.Minute).Format(time.RFC3339),
		latitude, longitude,
	)
}

func sameUTCDay(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.YearDay() == bu.YearDay()
}
