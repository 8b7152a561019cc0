package tenant

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/vitrinehq/vitrine/internal/metrics"
)

// Static defaults.  Override via the config package if desired.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 500
	EvictInterval = 5 * time.Minute
)

// ErrNotFound is the resolver's single public failure: absent site, draft
// site without a valid preview token, and suspended site all collapse
// into it so the 404 page leaks nothing about which one happened.
var ErrNotFound = errors.New("tenant not found")

// Cache lazily loads tenants, stores them in a sync.Map, and evicts them
// on idle TTL or LRU pressure.  Preview loads are cached under a key that
// includes the token, so a draft resolved for its owner is never handed
// to a public request.
type Cache struct {
	db          *sqlx.DB
	salt        string
	sfg         singleflight.Group
	m           sync.Map
	evictTicker *time.Ticker
	idleTTL     time.Duration
	maxEntries  int
}

// New constructs a Cache and starts the background evictor.
func New(db *sqlx.DB, salt string, idleTTL time.Duration, maxEntries int) *Cache {
	c := &Cache{
		db:         db,
		salt:       salt,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
	}
	c.evictTicker = time.NewTicker(EvictInterval)
	go c.evictLoop()
	return c
}

// Get returns the Tenant for a tenant key, loading it on demand.
// previewToken is empty for normal public requests.
func (c *Cache) Get(ctx context.Context, key, previewToken string) (*Tenant, error) {
	ck := key
	if previewToken != "" {
		ck = key + "\x00" + previewToken
	}

	if v, ok := c.m.Load(ck); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.tenant, nil
	}

	v, err, _ := c.sfg.Do(ck, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(ck); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.tenant, nil
		}
		ten, err := loadTenant(ctx, c.db, key, previewToken, c.salt)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				metrics.TenantLoadErrorsTotal.Inc()
			}
			return nil, err
		}
		ent := &entry{
			tenant:   ten,
			lastSeen: time.Now().UnixNano(),
		}
		c.m.Store(ck, ent)
		metrics.TenantLoadTotal.Inc()
		metrics.ActiveTenants.Inc()
		return ten, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Tenant), nil
}

// Salt exposes the preview salt for handlers that mint handshake URLs.
func (c *Cache) Salt() string { return c.salt }

// DB exposes the control-plane pool for collaborators wired at boot.
func (c *Cache) DB() *sqlx.DB { return c.db }

// Invalidate drops every cached entry (normal and preview) for one site.
// Called by the enrichment pipeline after write-back so the next request
// re-reads pages and re-renders.
func (c *Cache) Invalidate(siteID uint64) {
	c.m.Range(func(key, value any) bool {
		ent := value.(*entry)
		if ent.tenant.Site.ID == siteID {
			c.m.Delete(key)
			metrics.ActiveTenants.Dec()
			zap.L().Info("tenant invalidated", zap.Uint64("site", siteID))
		}
		return true
	})
}
