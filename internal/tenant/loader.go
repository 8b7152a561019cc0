package tenant

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vitrinehq/vitrine/internal/site"
	"github.com/vitrinehq/vitrine/internal/theme"
	"github.com/vitrinehq/vitrine/internal/tokens"
)

// renderedPageCap bounds the per-tenant rendered-page LRU.
const renderedPageCap = 64

// loadTenant turns a tenant key into a *Tenant.  Steps:
//
//  1. Fetch the site row (published filter off in preview mode).
//  2. In preview mode, verify the capability token against the row.
//  3. Fetch organization and theme rows.
//  4. Resolve design tokens and pre-render CSS once.
func loadTenant(ctx context.Context, db *sqlx.DB, key, previewToken, salt string) (*Tenant, error) {
	preview := previewToken != ""

	rec, err := site.ByKey(ctx, db, key, !preview)
	if err != nil {
		return nil, ErrNotFound
	}
	if preview && !IsPreview(rec, previewToken, salt) {
		// Bad token on a draft site leaks nothing: same not-found
		// outcome as an absent site.
		if !rec.Published() {
			return nil, ErrNotFound
		}
		preview = false
	}

	org, err := site.OrganizationByID(ctx, db, rec.OrganizationID)
	if err != nil {
		return nil, err
	}

	th, err := theme.BySite(ctx, db, rec.ID)
	if err != nil {
		return nil, err
	}

	fonts := tokens.Fonts{Heading: th.HeadingFont, Body: th.BodyFont}
	resolved := tokens.Resolve(
		tokens.Brand{Primary: rec.PrimaryColor, Secondary: rec.SecondaryColor},
		th.Tokens(),
		fonts,
	)

	return &Tenant{
		Site:    *rec,
		Org:     *org,
		Theme:   *th,
		Tokens:  resolved,
		CSS:     tokens.EmitCSS(resolved),
		FontURL: tokens.FontURL(fonts),
		Preview: preview,
	}, nil
}
