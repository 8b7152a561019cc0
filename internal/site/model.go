package site

import "time"

// Publish status values for the `site.status` column.  DRAFT sites are
// invisible to the public resolver unless the request carries a valid
// preview token.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
)

// Record mirrors one row in the `site` table.  A site is reachable either
// at `<subdomain>.<platform base domain>` or, when set, at its custom
// domain; both resolve through the same lookup.
type Record struct {
	ID             uint64     `db:"id"`
	OrganizationID uint64     `db:"organization_id"`
	Subdomain      string     `db:"subdomain"`
	CustomDomain   *string    `db:"custom_domain"`
	Status         string     `db:"status"`
	PrimaryColor   string     `db:"primary_color"`
	SecondaryColor string     `db:"secondary_color"`
	BlogEnabled    bool       `db:"blog_enabled"`
	PortalEnabled  bool       `db:"portal_enabled"`
	BookingEnabled bool       `db:"booking_enabled"`
	SuspendedAt    *time.Time `db:"suspended_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// Published reports whether the site is publicly visible.
func (r *Record) Published() bool { return r.Status == StatusPublished }

// Organization mirrors one row in the `organization` table: the tenant
// account that owns the site and all of its business records.
type Organization struct {
	ID        uint64    `db:"id"`
	Name      string    `db:"name"`
	Locale    string    `db:"locale"`
	Timezone  string    `db:"timezone"`
	Currency  string    `db:"currency"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
