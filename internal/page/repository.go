// internal/page/repository.go
//
// sqlx queries for the `page` table.  All lookups are scoped by site_id;
// nothing in this package can read across tenants.

package page

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrVersionConflict is returned by UpdateContent when the row's version
// no longer matches the one the caller read.
var ErrVersionConflict = errors.New("page: version conflict")

const selectCols = `
        SELECT id, site_id, slug, title, is_homepage, is_published,
               content, version, created_at, updated_at
        FROM   page`

// BySite returns every page of one site in creation order.  Used by the
// enrichment pipeline, which scans all pages regardless of publish state.
func BySite(ctx context.Context, db *sqlx.DB, siteID uint64) ([]Record, error) {
	const q = selectCols + `
        WHERE  site_id = ?
        ORDER  BY id`
	var rows []Record
	if err := db.SelectContext(ctx, &rows, q, siteID); err != nil {
		return nil, err
	}
	return rows, nil
}

// Homepage fetches the page flagged is_homepage for one site.
func Homepage(ctx context.Context, db *sqlx.DB, siteID uint64) (*Record, error) {
	const q = selectCols + `
        WHERE  site_id = ? AND is_homepage = 1
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, siteID); err != nil {
		return nil, err
	}
	return &rec, nil
}

// BySlug fetches one page by slug within a site.
func BySlug(ctx context.Context, db *sqlx.DB, siteID uint64, slug string) (*Record, error) {
	const q = selectCols + `
        WHERE  site_id = ? AND slug = ?
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, siteID, slug); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ByID re-reads a single page.  The enrichment write-back uses this for a
// fresh copy of content immediately before patching it.
func ByID(ctx context.Context, db *sqlx.DB, id uint64) (*Record, error) {
	const q = selectCols + `
        WHERE  id = ?
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateContent replaces the whole content document if and only if the
// stored version still equals version (compare-and-swap).  On a lost race
// it returns ErrVersionConflict; callers re-read and retry or give up.
func UpdateContent(ctx context.Context, db *sqlx.DB, id uint64, content []byte, version uint64) error {
	const q = `
        UPDATE page
        SET    content = ?, version = version + 1, updated_at = NOW()
        WHERE  id = ? AND version = ?`
	res, err := db.ExecContext(ctx, q, content, id, version)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}

// IsNotFound reports whether err is the driver's empty-result sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
