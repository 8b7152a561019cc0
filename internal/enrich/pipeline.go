// internal/enrich/pipeline.go
//
// The image-enrichment run: search, assign, import, write back.
//
// Context
// -------
// A run is best-effort and idempotent.  Every stage tolerates partial
// failure: a failed search empties one query's candidates, a failed
// download or upload skips one slot, and a failed write-back loses one
// page — nothing aborts the batch.  A slot left empty stays eligible for
// the next run.
//
// Concurrency
// -----------
// Search and import each use a fixed pool of three workers pulling from a
// shared atomic cursor, so external load stays capped no matter how many
// slots a site has.  Assignment itself runs single-threaded over queries
// in sorted order, which makes the global no-reuse guarantee (usedIDs)
// deterministic.
//
// Write-back
// ----------
// Slot collection and write-back are separate reads, so an admin may have
// edited a page in between.  Each page is re-read immediately before
// patching, only the targeted fields are set, and the save is a
// compare-and-swap on the version column with one retry.  A second
// conflict drops the page from this run.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package enrich

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vitrinehq/vitrine/internal/media"
	"github.com/vitrinehq/vitrine/internal/metrics"
	"github.com/vitrinehq/vitrine/internal/page"
	"github.com/vitrinehq/vitrine/internal/routing"
	"github.com/vitrinehq/vitrine/internal/stock"
)

// workerCount caps in-flight external calls for both pools.
const workerCount = 3

// Searcher is the slice of the stock client the pipeline needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]stock.Photo, error)
	Download(ctx context.Context, photoURL string) ([]byte, error)
}

// Uploader is the slice of the media store the pipeline needs.
type Uploader interface {
	Put(ctx context.Context, name string, data []byte) (*media.Upload, error)
	MaxBytes() int64
}

// Invalidator drops a site's cached tenants after content changes.
type Invalidator interface {
	Invalidate(siteID uint64)
}

// Stats summarises one run for the caller and the logs.
type Stats struct {
	Slots        int `json:"slots"`
	Queries      int `json:"queries"`
	Filled       int `json:"filled"`
	PagesUpdated int `json:"pages_updated"`
}

// Pipeline wires the run's collaborators.  All fields are required
// except Cache, which may be nil in offline tooling.
type Pipeline struct {
	DB     *sqlx.DB
	Photos Searcher
	Store  Uploader
	Cache  Invalidator
}

// assignment pairs a slot with its chosen photo; URL is filled by the
// import stage.
type assignment struct {
	slot  Slot
	photo stock.Photo
	url   string
}

// Run enriches every page of one site.  The returned error covers setup
// failures only (page scan); per-stage failures are logged and absorbed.
func (p *Pipeline) Run(ctx context.Context, siteID uint64) (*Stats, error) {
	metrics.EnrichRunsTotal.Inc()
	log := zap.L().With(zap.Uint64("site_id", siteID))

	pages, err := page.BySite(ctx, p.DB, siteID)
	if err != nil {
		return nil, fmt.Errorf("enrich: scan pages: %w", err)
	}

	slots := CollectSlots(pages)
	stats := &Stats{Slots: len(slots)}
	if len(slots) == 0 {
		log.Info("enrich: no empty image slots")
		return stats, nil
	}

	// Identical queries share one search call.
	queries := uniqueQueries(slots)
	stats.Queries = len(queries)
	results := p.searchAll(ctx, log, queries)

	assignments := assign(slots, queries, results)
	p.importAll(ctx, log, assignments)

	stats.Filled, stats.PagesUpdated = p.writeBack(ctx, log, assignments)
	metrics.EnrichSlotsFilledTotal.Add(float64(stats.Filled))

	if p.Cache != nil {
		p.Cache.Invalidate(siteID)
	}
	log.Info("enrich: run complete",
		zap.Int("slots", stats.Slots),
		zap.Int("queries", stats.Queries),
		zap.Int("filled", stats.Filled),
		zap.Int("pages_updated", stats.PagesUpdated))
	return stats, nil
}

// uniqueQueries returns the distinct slot queries in sorted order.
func uniqueQueries(slots []Slot) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, s := range slots {
		if _, dup := seen[s.Query]; dup {
			continue
		}
		seen[s.Query] = struct{}{}
		out = append(out, s.Query)
	}
	sort.Strings(out)
	return out
}

// searchAll runs every query through a three-worker pull loop.  A failed
// query yields no candidates; the batch continues.
func (p *Pipeline) searchAll(ctx context.Context, log *zap.Logger, queries []string) map[string][]stock.Photo {
	out := make([]([]stock.Photo), len(queries))

	var cursor atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workerCount; w++ {
		g.Go(func() error {
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(queries) {
					return nil
				}
				photos, err := p.Photos.Search(gctx, queries[i])
				if err != nil {
					metrics.EnrichSearchErrorsTotal.Inc()
					log.Warn("enrich: search failed",
						zap.String("query", queries[i]),
						zap.Error(err))
					continue
				}
				out[i] = photos
			}
		})
	}
	g.Wait() // workers never return errors; absorbed above

	results := make(map[string][]stock.Photo, len(queries))
	for i, q := range queries {
		results[q] = out[i]
	}
	return results
}

// assign walks queries in sorted order and hands each slot the first
// candidate not already used anywhere in this run.
func assign(slots []Slot, queries []string, results map[string][]stock.Photo) []*assignment {
	usedIDs := map[uint64]struct{}{}
	var out []*assignment

	for _, q := range queries {
		candidates := results[q]
		next := 0
		for i := range slots {
			if slots[i].Query != q {
				continue
			}
			for next < len(candidates) {
				ph := candidates[next]
				next++
				if _, used := usedIDs[ph.ID]; used {
					continue
				}
				usedIDs[ph.ID] = struct{}{}
				out = append(out, &assignment{slot: slots[i], photo: ph})
				break
			}
		}
	}
	return out
}

// importAll downloads, resizes, and re-uploads each assigned photo with
// the same three-worker pull loop as search.  Failures leave url empty,
// which drops the slot at write-back.
func (p *Pipeline) importAll(ctx context.Context, log *zap.Logger, assignments []*assignment) {
	var cursor atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workerCount; w++ {
		g.Go(func() error {
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(assignments) {
					return nil
				}
				a := assignments[i]
				url, err := p.importOne(gctx, a)
				if err != nil {
					log.Warn("enrich: import failed",
						zap.Uint64("photo_id", a.photo.ID),
						zap.String("field", a.slot.FieldPath),
						zap.Error(err))
					continue
				}
				a.url = url
			}
		})
	}
	g.Wait()
}

func (p *Pipeline) importOne(ctx context.Context, a *assignment) (string, error) {
	data, err := p.Photos.Download(ctx, a.photo.URL)
	if err != nil {
		return "", err
	}
	data, err = media.FitUnder(data, p.Store.MaxBytes())
	if err != nil {
		return "", err
	}
	// Query slug in the name keeps the media store browsable.
	name := fmt.Sprintf("%s-%d.jpg", routing.MakeSlug(a.slot.Query), a.photo.ID)
	up, err := p.Store.Put(ctx, name, data)
	if err != nil {
		return "", err
	}
	return up.URL, nil
}

// writeBack persists the imported URLs grouped by page.  Each page gets
// a fresh read, targeted field sets, and a version-checked save with one
// retry; a page that still conflicts is logged and skipped.
func (p *Pipeline) writeBack(ctx context.Context, log *zap.Logger, assignments []*assignment) (filled, pagesUpdated int) {
	byPage := map[uint64][]*assignment{}
	var pageIDs []uint64
	for _, a := range assignments {
		if a.url == "" {
			continue
		}
		if _, seen := byPage[a.slot.PageID]; !seen {
			pageIDs = append(pageIDs, a.slot.PageID)
		}
		byPage[a.slot.PageID] = append(byPage[a.slot.PageID], a)
	}
	sort.Slice(pageIDs, func(i, j int) bool { return pageIDs[i] < pageIDs[j] })

	for _, id := range pageIDs {
		n, err := p.patchPage(ctx, id, byPage[id])
		if err != nil {
			log.Warn("enrich: page write-back failed",
				zap.Uint64("page_id", id),
				zap.Error(err))
			continue
		}
		filled += n
		pagesUpdated++
	}
	return filled, pagesUpdated
}

// patchPage applies one page's assignments.  Retries the CAS exactly
// once; the retry re-reads so the patch lands on the newest document.
func (p *Pipeline) patchPage(ctx context.Context, pageID uint64, as []*assignment) (int, error) {
	for attempt := 0; attempt < 2; attempt++ {
		rec, err := page.ByID(ctx, p.DB, pageID)
		if err != nil {
			return 0, err
		}

		content := rec.Content
		n := 0
		for _, a := range as {
			// The admin may have filled the slot since collection;
			// leave non-empty fields alone.
			if page.GetField(content, a.slot.FieldPath).String() != "" {
				continue
			}
			content, err = page.SetField(content, a.slot.FieldPath, a.url)
			if err != nil {
				return 0, err
			}
			n++
		}
		if n == 0 {
			return 0, nil
		}

		err = page.UpdateContent(ctx, p.DB, rec.ID, content, rec.Version)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, page.ErrVersionConflict) {
			return 0, err
		}
	}
	return 0, page.ErrVersionConflict
}

var (
	_ Searcher = (*stock.Client)(nil)
	_ Uploader = (*media.Store)(nil)
)
