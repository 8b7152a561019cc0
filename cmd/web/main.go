// cmd/web/main.go
//
// Vitrine – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Start the daily rotating logger (tees to console in a TTY).
//
//  2. Load layered config (YAML → env) and resolve vault: secret refs.
//
//  3. Open the control-plane DB and log the active-site count.
//
//  4. Open the optional GeoLite2 database for request enrichment.
//
//  5. Build the tenant cache (lazy-loads each site on first hit) and the
//     enrichment pipeline's stock and media clients.
//
//  6. Mount routes: /metrics, /healthz, POST /internal/enrich/{siteID},
//     and the catch-all tenant page handler.
//
//  7. Tenant handler flow:
//
//     • host → tenant key        – tenant.KeyFromHost
//     • preview handshake        – ?preview=<token> sets cookie, 302
//     • tenant lookup            – cache.Get(key, token)
//     • path → page              – routing.ResolvePage
//     • page-view metric         – skips crawlers via UA parse
//     • render                   – view.RenderPage (LRU backed)
//
// Large comment blocks are framed by blank “//” lines; inline comments
// use a single “//”.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vitrinehq/vitrine/internal/config"
	"github.com/vitrinehq/vitrine/internal/database"
	"github.com/vitrinehq/vitrine/internal/enrich"
	"github.com/vitrinehq/vitrine/internal/logger"
	"github.com/vitrinehq/vitrine/internal/media"
	"github.com/vitrinehq/vitrine/internal/metrics"
	"github.com/vitrinehq/vitrine/internal/middleware"
	"github.com/vitrinehq/vitrine/internal/requestinfo"
	"github.com/vitrinehq/vitrine/internal/routing"
	"github.com/vitrinehq/vitrine/internal/server"
	"github.com/vitrinehq/vitrine/internal/site"
	"github.com/vitrinehq/vitrine/internal/stock"
	"github.com/vitrinehq/vitrine/internal/tenant"
	"github.com/vitrinehq/vitrine/internal/vault"
	"github.com/vitrinehq/vitrine/internal/view"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx := context.Background()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config + secrets ────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}
	if os.Getenv("VAULT_ADDR") != "" {
		vc, err := vault.New(ctx, logOut.Infof)
		if err != nil {
			logOut.Fatalf("vault client: %v", err)
		}
		resolve := vc.Resolver(ctx)
		if err := cfg.ResolveSecrets(resolve); err != nil {
			logOut.Fatalf("resolve secrets: %v", err)
		}
	}

	//
	// ── 2.  Control-plane DB ────────────────────────────────────────────
	//
	logOut.Infow("connecting to control-plane DB")
	db, err := database.Open(cfg.Database.FullDSN())
	if err != nil {
		logOut.Fatalf("connect DB: %v", err)
	}
	defer db.Close()

	if n, err := site.CountActive(db); err == nil {
		logOut.Infow("control-plane DB online", "active_sites", n)
	} else {
		logOut.Warnw("active-site count failed", "err", err)
	}

	//
	// ── 3.  Optional geo enrichment ─────────────────────────────────────
	//
	if cfg.Platform.GeoDBPath != "" {
		if err := requestinfo.InitGeo(cfg.Platform.GeoDBPath); err != nil {
			logOut.Warnw("geo database unavailable", "path", cfg.Platform.GeoDBPath, "err", err)
		}
	}

	//
	// ── 4.  Tenant cache + enrichment collaborators ─────────────────────
	//
	cache := tenant.New(db, cfg.Platform.PreviewSalt, tenant.IdleTTL, tenant.MaxEntries)

	pipeline := &enrich.Pipeline{
		DB:     db,
		Photos: stock.New(cfg.Stock.Endpoint, cfg.Stock.APIKey, cfg.Stock.PerPage),
		Store:  media.New(cfg.Media.Endpoint, cfg.Media.APIKey, cfg.Media.MaxUploadBytes),
		Cache:  cache,
	}

	//
	// ── 5.  Routes ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Post("/internal/enrich/{siteID}", enrichHandler(pipeline))
	r.Handle("/*", tenantHandler(cache, cfg.Platform.BaseDomain))

	var h http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		h = middleware.ForceHTTPS(h)
	}

	srv := server.New(cfg.HTTP.ListenAddr, h)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logOut.Fatalf("http server: %v", err)
	}
}

// tenantHandler serves every request on a tenant host.
func tenantHandler(cache *tenant.Cache, baseDomain string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := tenant.KeyFromHost(r.Host, baseDomain)
		if !ok {
			http.NotFound(w, r)
			return
		}

		// Preview handshake: move the token from the URL into a cookie
		// and redirect so the shareable link stays clean.
		if t := r.URL.Query().Get(tenant.PreviewParam); t != "" {
			tenant.SetPreviewCookie(w, r, t)
			return
		}

		ten, err := cache.Get(r.Context(), key, tenant.PreviewTokenFromRequest(r))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		rec, err := routing.ResolvePage(r.Context(), cache.DB(), ten.Site.ID, r.URL.Path, ten.Preview)
		if err != nil {
			if errors.Is(err, routing.ErrNoPage) {
				http.NotFound(w, r)
				return
			}
			zap.S().Errorw("page lookup failed", "key", key, "path", r.URL.Path, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Count human page views only; label by device class.
		if info := requestinfo.FromContext(r.Context()); info != nil && !info.UA.IsBot {
			metrics.PageViewsTotal.WithLabelValues(info.UA.Device).Inc()
		}

		// Cache under the page's canonical path so "/" and the homepage
		// slug share one rendered entry.
		view.RenderPage(w, ten, rec, routing.PagePath(rec.Slug))
	}
}

// enrichHandler triggers a best-effort enrichment run for one site.
func enrichHandler(p *enrich.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := strconv.ParseUint(chi.URLParam(r, "siteID"), 10, 64)
		if err != nil {
			http.Error(w, "bad site id", http.StatusBadRequest)
			return
		}

		stats, err := p.Run(r.Context(), siteID)
		if err != nil {
			zap.S().Errorw("enrichment run failed", "site_id", siteID, "err", err)
			http.Error(w, "enrichment failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			zap.S().Warnw("encode enrichment stats", "err", err)
		}
	}
}
