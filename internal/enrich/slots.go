// internal/enrich/slots.go
//
// Slot collection: find every empty image field across a site's pages.
//
// Context
// -------
// Block types that carry images implement blocks.Enricher.  Collection
// walks each page's document in order, asks the type for its empty image
// paths, and captures the nearby text used to derive a search query.  A
// block with no usable text produces no slot, except the generic image
// block, which falls back to a fixed default query.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package enrich

import (
	"go.uber.org/zap"

	"github.com/vitrinehq/vitrine/internal/blocks"
	"github.com/vitrinehq/vitrine/internal/page"
)

// DefaultQuery fills generic image blocks that carry no text at all.
const DefaultQuery = "professional business service"

// Slot is one empty image field awaiting a photo.
type Slot struct {
	PageID    uint64
	BlockID   string
	BlockType string
	FieldPath string // content-relative, e.g. blocks.2.data.items.1.image
	Query     string // derived search query, never empty
}

// CollectSlots walks every page and returns the site's empty image slots
// in document order.  Pages with malformed content are logged and
// skipped; one broken page must not starve the rest of the site.
func CollectSlots(pages []page.Record) []Slot {
	var out []Slot
	for i := range pages {
		p := &pages[i]
		bl, err := page.Blocks(p.Content)
		if err != nil {
			zap.L().Warn("enrich: skipping page with malformed content",
				zap.Uint64("page_id", p.ID),
				zap.Error(err))
			continue
		}
		for bi, b := range bl {
			enr, ok := blocks.Lookup(b.Type).(blocks.Enricher)
			if !ok {
				continue
			}
			empty := enr.ImageSlots(b.Data)
			if len(empty) == 0 {
				continue
			}

			query := BuildSearchQuery(enr.TextParts(b.Data))
			if query == "" {
				if b.Type != "image" {
					continue // no text, no query, no slot
				}
				query = DefaultQuery
			}

			for _, rel := range empty {
				out = append(out, Slot{
					PageID:    p.ID,
					BlockID:   b.ID,
					BlockType: b.Type,
					FieldPath: page.FieldPath(bi, rel),
					Query:     query,
				})
			}
		}
	}
	return out
}
