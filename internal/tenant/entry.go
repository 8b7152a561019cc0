// internal/tenant/entry.go
//
// Tenant cache entry and aggregate.
//
// Context
// -------
// A live Tenant aggregates everything a request handler needs to serve
// one site: its site and organization rows, theme, the resolved design
// tokens with their pre-rendered CSS, the optional font stylesheet URL,
// and a small LRU of rendered pages.  The cache stores a pointer to
// Tenant inside `entry`, along with a `lastSeen` UnixNano timestamp used
// by the evictor for idle and LRU eviction.
//
// Notes
// -----
//   - Handlers must treat Tenant as immutable after load; per-request
//     state (preview flag aside) never lands here.
//   - Preview tenants are cached under a separate key so a draft loaded
//     for its owner can never be served to the public.

package tenant

import (
	"sync"

	"github.com/vitrinehq/vitrine/internal/cache"
	"github.com/vitrinehq/vitrine/internal/site"
	"github.com/vitrinehq/vitrine/internal/theme"
)

//
// Cache entry
//

type entry struct {
	tenant   *Tenant
	lastSeen int64 // UnixNano
}

//
// Tenant aggregate
//

// Tenant groups all per-site runtime assets needed by request handlers.
type Tenant struct {
	Site    site.Record       // Row from `site`
	Org     site.Organization // Owning tenant account
	Theme   theme.Record      // Theme row or defaults
	Tokens  map[string]string // Resolved design tokens (bare keys)
	CSS     string            // Pre-rendered :root{--…} block
	FontURL string            // Batched font stylesheet URL, may be ""
	Preview bool              // Loaded through a preview token

	pagesOnce sync.Once
	pages     *cache.LRU // rendered-page cache, keyed by request path
}

// PageCache returns the tenant's rendered-page LRU, creating it on first
// use so hand-built Tenant values work the same as loaded ones.
func (t *Tenant) PageCache() *cache.LRU {
	t.pagesOnce.Do(func() { t.pages = cache.New(renderedPageCap) })
	return t.pages
}
