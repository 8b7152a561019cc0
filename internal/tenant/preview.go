// internal/tenant/preview.go
//
// Draft-site preview tokens.
//
// Context
// -------
// A DRAFT site is invisible to the public resolver, but its owner needs a
// shareable link to review it.  The link carries a capability token:
//
//	sha256(siteID + ":" + createdAt(RFC3339) + ":" + salt)[:32]
//
// It is deterministic (no token table), scoped to one site, and survives
// until the site row's created_at changes.  This is deliberately
// low-security: the only thing it unlocks is the tenant's own unpublished
// draft.  Published sites never honor it.
//
// The handshake: `?preview=<token>` on any page sets an HTTP-only cookie
// and redirects to the same URL without the parameter; later requests are
// recognized by the cookie alone.

package tenant

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/vitrinehq/vitrine/internal/site"
)

// PreviewCookie is the cookie name carrying the capability token.
const PreviewCookie = "vitrine_preview"

// PreviewParam is the query-parameter name of the one-time handshake.
const PreviewParam = "preview"

// PreviewToken derives the capability token for one site.
func PreviewToken(siteID uint64, createdAt time.Time, salt string) string {
	sum := sha256.Sum256([]byte(
		strconv.FormatUint(siteID, 10) + ":" + createdAt.UTC().Format(time.RFC3339) + ":" + salt,
	))
	return hex.EncodeToString(sum[:])[:32]
}

// IsPreview reports whether token grants preview access to rec.  It is
// true iff the token matches and the site is not already published
// (published sites never need preview).
func IsPreview(rec *site.Record, token, salt string) bool {
	if rec == nil || token == "" || rec.Published() {
		return false
	}
	want := PreviewToken(rec.ID, rec.CreatedAt, salt)
	return subtle.ConstantTimeCompare([]byte(token), []byte(want)) == 1
}

// SetPreviewCookie installs the token cookie and redirects to the same
// URL stripped of the handshake parameter.
func SetPreviewCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     PreviewCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	u := *r.URL
	q := u.Query()
	q.Del(PreviewParam)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.RequestURI(), http.StatusFound)
}

// PreviewTokenFromRequest returns the token from the handshake parameter
// or, failing that, the cookie.  Empty string means no preview attempt.
func PreviewTokenFromRequest(r *http.Request) string {
	if t := r.URL.Query().Get(PreviewParam); t != "" {
		return t
	}
	if c, err := r.Cookie(PreviewCookie); err == nil {
		return c.Value
	}
	return ""
}
