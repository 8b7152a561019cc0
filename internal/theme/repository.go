package theme

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// BySite fetches a site's theme row, or Defaults when none exists.
func BySite(ctx context.Context, db *sqlx.DB, siteID uint64) (*Record, error) {
	const q = `
        SELECT site_id, template, color_mode, heading_font, body_font,
               design_tokens, created_at, updated_at
        FROM   theme
        WHERE  site_id = ?
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, siteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Defaults(siteID), nil
		}
		return nil, err
	}
	return &rec, nil
}
