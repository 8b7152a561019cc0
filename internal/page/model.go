package page

import (
	"encoding/json"
	"time"
)

// Record mirrors one row in the `page` table.  Content holds the raw
// block document (see document.go); Version is the optimistic-concurrency
// counter checked by UpdateContent so a background write-back can never
// silently clobber an admin edit.
type Record struct {
	ID          uint64          `db:"id"`
	SiteID      uint64          `db:"site_id"`
	Slug        string          `db:"slug"`
	Title       string          `db:"title"`
	IsHomepage  bool            `db:"is_homepage"`
	IsPublished bool            `db:"is_published"`
	Content     json.RawMessage `db:"content"`
	Version     uint64          `db:"version"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
