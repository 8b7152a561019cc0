// Package theme holds the per-site rendering configuration: template
// name, color mode, font choices, and the free-form design-token override
// map.  A site without a theme row renders with Defaults().
package theme

import (
	"encoding/json"
	"time"
)

// Color modes for the `theme.color_mode` column.
const (
	ModeLight = "light"
	ModeDark  = "dark"
)

// Record mirrors one row in the `theme` table (one-to-one with site).
// DesignTokens is stored as a JSON object of bare token name → raw CSS
// value; keys gain the "--" marker only when emitted.
type Record struct {
	SiteID       uint64          `db:"site_id"`
	Template     string          `db:"template"`
	ColorMode    string          `db:"color_mode"`
	HeadingFont  string          `db:"heading_font"`
	BodyFont     string          `db:"body_font"`
	DesignTokens json.RawMessage `db:"design_tokens"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// Defaults returns the theme used when a site has no theme row.
func Defaults(siteID uint64) *Record {
	return &Record{
		SiteID:    siteID,
		Template:  "standard",
		ColorMode: ModeLight,
	}
}

// Tokens decodes the override map.  Malformed JSON yields an empty map;
// the admin editor validates at write time, the renderer stays lenient.
func (r *Record) Tokens() map[string]string {
	if len(r.DesignTokens) == 0 {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(r.DesignTokens, &m); err != nil {
		return nil
	}
	return m
}
