// internal/routing/resolve.go
//
// Request-path → page resolution.
//
// Context
// -------
// Every tenant serves a flat page tree: "/" maps to the page flagged
// is_homepage, and "/<slug>" maps to the page with that slug.  Draft pages
// are visible only on a preview tenant; on a public tenant they resolve the
// same as a missing page so their existence cannot be probed.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
// • Max line length 100 columns.

package routing

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vitrinehq/vitrine/internal/page"
)

// ErrNoPage is returned when a path resolves to nothing the caller may see.
var ErrNoPage = errors.New("routing: no such page")

// CleanPath canonicalises a request path for lookup: strips the trailing
// slash (except on the root), rejects dot segments, and lower-cases the
// slug.  Returns "" when the path cannot name a page.
func CleanPath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		return ""
	}
	p = strings.TrimSuffix(p, "/")
	if strings.Contains(p, "..") {
		return ""
	}
	// Flat tree only; nested paths never match a page.
	if strings.Count(p, "/") != 1 {
		return ""
	}
	return strings.ToLower(p)
}

// ResolvePage maps path → page for one site.  preview widens visibility to
// draft pages; otherwise unpublished pages return ErrNoPage.
func ResolvePage(ctx context.Context, db *sqlx.DB, siteID uint64, path string, preview bool) (*page.Record, error) {
	clean := CleanPath(path)
	if clean == "" {
		return nil, ErrNoPage
	}

	var (
		rec *page.Record
		err error
	)
	if clean == "/" {
		rec, err = page.Homepage(ctx, db, siteID)
	} else {
		rec, err = page.BySlug(ctx, db, siteID, strings.TrimPrefix(clean, "/"))
	}
	if err != nil {
		if page.IsNotFound(err) {
			return nil, ErrNoPage
		}
		return nil, err
	}
	if !rec.IsPublished && !preview {
		return nil, ErrNoPage
	}
	return rec, nil
}
