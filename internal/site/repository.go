// internal/site/repository.go
//
// sqlx queries against the `site` and `organization` tables.  ByKey is
// the resolver's single lookup: one tenant key matches either a subdomain
// or a custom domain, and the published filter is applied here (not in
// Go) so draft sites never leave the database on a public request.

package site

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const siteCols = `
        SELECT id, organization_id, subdomain, custom_domain, status,
               primary_color, secondary_color,
               blog_enabled, portal_enabled, booking_enabled,
               suspended_at, created_at, updated_at
        FROM   site`

// ByKey fetches the site whose subdomain or custom domain equals key.
// When publishedOnly is set, only PUBLISHED sites match; preview-mode
// resolution passes false and applies its own token check.
func ByKey(ctx context.Context, db *sqlx.DB, key string, publishedOnly bool) (*Record, error) {
	q := siteCols + `
        WHERE  (subdomain = ? OR custom_domain = ?)
          AND  suspended_at IS NULL`
	if publishedOnly {
		q += `
          AND  status = 'PUBLISHED'`
	}
	q += `
        LIMIT  1`

	var rec Record
	if err := db.GetContext(ctx, &rec, q, key, key); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ByID fetches one site regardless of publish state.  Used by the
// enrichment trigger, which is operator-facing.
func ByID(ctx context.Context, db *sqlx.DB, id uint64) (*Record, error) {
	const q = siteCols + `
        WHERE  id = ?
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// OrganizationByID fetches the owning tenant account.
func OrganizationByID(ctx context.Context, db *sqlx.DB, id uint64) (*Organization, error) {
	const q = `
        SELECT id, name, locale, timezone, currency, created_at, updated_at
        FROM   organization
        WHERE  id = ?
        LIMIT  1`
	var org Organization
	if err := db.GetContext(ctx, &org, q, id); err != nil {
		return nil, err
	}
	return &org, nil
}

// CountActive returns the number of non-suspended sites.  Used as a boot
// sanity check.
func CountActive(db *sqlx.DB) (int, error) {
	var n int
	err := db.Get(&n, `SELECT COUNT(*) FROM site WHERE suspended_at IS NULL`)
	return n, err
}
