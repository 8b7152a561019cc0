// internal/tenant/resolver.go
//
// Host → tenant-key extraction.
//
// Context
// -------
// Every tenant site is reachable two ways:
//
//   - `<subdomain>.<platform base domain>` — the first label is the key,
//     unless it is one of the reserved platform names.
//   - a custom domain — any host outside the base domain is used verbatim
//     as the lookup key.
//
// The extraction is pure string work; the database lookup happens in the
// cache loader.

package tenant

import "strings"

// reserved names that can never be tenant subdomains.
var reserved = map[string]struct{}{
	"www":   {},
	"app":   {},
	"admin": {},
	"api":   {},
}

// KeyFromHost maps a raw Host header to a tenant lookup key.  ok is false
// for the bare platform domain and for reserved subdomains, which belong
// to the platform itself.
func KeyFromHost(host, baseDomain string) (key string, ok bool) {
	host = strings.ToLower(stripPort(strings.TrimSpace(host)))
	if host == "" || baseDomain == "" {
		return "", false
	}
	baseDomain = strings.ToLower(baseDomain)

	if host == baseDomain {
		return "", false
	}

	if strings.HasSuffix(host, "."+baseDomain) {
		sub := strings.TrimSuffix(host, "."+baseDomain)
		if sub == "" || strings.Contains(sub, ".") {
			// Nested labels (a.b.base) are not valid tenant keys.
			return "", false
		}
		if _, isReserved := reserved[sub]; isReserved {
			return "", false
		}
		return sub, true
	}

	// Anything else is a custom domain, looked up by exact match.
	return host, true
}

// stripPort removes any ":port" suffix from a Host header value.
func stripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
