//
//  internal/requestinfo/requestinfo.go
//
//  Per-request metadata: user-agent fingerprint and best-effort IP
//  geolocation.  These structs are inert; they hold no database handles
//  or large buffers, so they are safe to log or JSON-encode.
//

package requestinfo

import (
	"context"
	"net"
	"time"

	"github.com/oschwald/geoip2-golang"

	"github.com/vitrinehq/vitrine/internal/ua"
)

// Geo holds IP-based geolocation hints.  Best-effort; fields may be
// empty when the database has no match or was never opened.
type Geo struct {
	IP         net.IP
	CountryISO string
	City       string
}

// RequestInfo is stored on the request context by Enrich.  ID is a
// per-request UUID threaded through log lines so a render error can be
// matched to its access entry.
type RequestInfo struct {
	ID        string
	UA        ua.Info
	Geo       Geo
	Timestamp time.Time
}

// geoReader is a singleton MaxMind handle, safe for concurrent reads.
// nil when no database is configured; lookups then return only the IP.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database.  Geo enrichment is optional:
// callers log the error and continue without it.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

type ctxKey struct{}

// FromContext returns the pointer previously stored by Enrich, or nil
// when the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
