// Package statcache deduplicates fetches of the per-(week, season) raw stat
// tables. Many leagues refresh concurrently and all of them want the same
// table, so requests for one key coalesce onto a single upstream fetch.
package statcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/tomfleet/leaguesync/internal/api/fantasy"
	"github.com/tomfleet/leaguesync/internal/models"
)

// Key identifies one cached stat table.
type Key struct {
	Week   int
	Season string
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Season, k.Week)
}

type cachedEntry struct {
	table    models.StatTable
	storedAt time.Time
}

// Store is the write-through target. *redis.Client satisfies it.
type Store interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cache is safe for concurrent use. Failures are surfaced to every waiter of
// the failing key and are never cached; the next Get retries.
type Cache struct {
	source fantasy.StatsSource
	store  Store
	clock  clockwork.Clock
	ttl    time.Duration

	flight singleflight.Group

	mu      sync.Mutex
	entries map[Key]cachedEntry
	cancels map[Key]*flightHandle
}

// flightHandle identifies one in-flight fetch so a superseded fetch's cleanup
// cannot remove the handle of the fetch that replaced it.
type flightHandle struct {
	cancel context.CancelFunc
}

// Option configures optional cache collaborators.
type Option func(*Cache)

// WithWriteThrough copies fetched tables into redis for older consumers.
// The write is best effort; its failure never fails the fetch.
func WithWriteThrough(store Store) Option {
	return func(c *Cache) { c.store = store }
}

// WithClock injects a clock, used by tests.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

func New(source fantasy.StatsSource, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		source:  source,
		clock:   clockwork.NewRealClock(),
		ttl:     ttl,
		entries: make(map[Key]cachedEntry),
		cancels: make(map[Key]*flightHandle),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the stat table for (week, season), fetching it at most once no
// matter how many callers arrive concurrently. A caller whose own context is
// cancelled stops waiting; the shared fetch keeps running for the others.
func (c *Cache) Get(ctx context.Context, week int, season string) (models.StatTable, error) {
	key := Key{Week: week, Season: season}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.clock.Since(e.storedAt) < c.ttl {
		c.mu.Unlock()
		return e.table, nil
	}
	c.mu.Unlock()

	ch := c.flight.DoChan(key.String(), func() (interface{}, error) {
		return c.fetchKey(key)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(models.StatTable), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ForceRefresh cancels any in-flight fetch for the key and evicts its entry.
// Other keys and their waiters are untouched. The next Get issues exactly one
// fresh fetch.
func (c *Cache) ForceRefresh(week int, season string) {
	key := Key{Week: week, Season: season}

	c.mu.Lock()
	if h, ok := c.cancels[key]; ok {
		h.cancel()
		delete(c.cancels, key)
	}
	delete(c.entries, key)
	c.mu.Unlock()

	c.flight.Forget(key.String())
}

// Refresh evicts the key and fetches it fresh.
func (c *Cache) Refresh(ctx context.Context, week int, season string) (models.StatTable, error) {
	c.ForceRefresh(week, season)
	return c.Get(ctx, week, season)
}

func (c *Cache) fetchKey(key Key) (models.StatTable, error) {
	// The fetch runs under its own cancellable context, detached from any
	// single waiter, so it survives individual callers leaving but can be
	// cancelled by ForceRefresh.
	fctx, cancel := context.WithCancel(context.Background())
	h := &flightHandle{cancel: cancel}
	c.mu.Lock()
	c.cancels[key] = h
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.cancels[key] == h {
			delete(c.cancels, key)
		}
		c.mu.Unlock()
		cancel()
	}()

	table, err := c.source.FetchWeeklyStats(fctx, key.Week, key.Season)
	if err != nil {
		return nil, fmt.Errorf("fetching stat table %s: %w", key, err)
	}

	// Skip both stores when a forced refresh superseded this fetch; the
	// waiters still get the table, but it must not shadow the fresh one.
	c.mu.Lock()
	current := c.cancels[key] == h
	if current {
		c.entries[key] = cachedEntry{table: table, storedAt: c.clock.Now()}
	}
	c.mu.Unlock()

	if current {
		c.writeThrough(key, table)
	}
	return table, nil
}

func (c *Cache) writeThrough(key Key, table models.StatTable) {
	if c.store == nil {
		return
	}

	data, err := json.Marshal(table)
	if err != nil {
		slog.Warn("Failed to marshal stat table for write-through", "key", key.String(), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisKey := fmt.Sprintf("statcache:%s", key)
	if err := c.store.Set(ctx, redisKey, data, c.ttl).Err(); err != nil {
		slog.Warn("Failed to write stat table through to redis", "key", redisKey, "error", err)
	}
}
