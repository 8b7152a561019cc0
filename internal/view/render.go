// internal/view/render.go
//
// Page shell assembly and the rendered-page cache.
//
// Context
// -------
// A page render is fully determined by the tenant (tokens, fonts, theme)
// and the page's content document, so the finished HTML is cached in the
// tenant's LRU keyed by request path.  Preview tenants live under their
// own cache entry, so a cached draft render can never reach a public
// request.  Any content change invalidates through the tenant cache,
// which drops the whole entry and its page LRU with it.
//
// Public helpers
// --------------
//   - RenderPage – write the full HTML document to an http.ResponseWriter.
//   - BuildPage  – assemble the document without touching the cache
//     (used by tests and the enrichment dry-run).
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/vitrinehq/vitrine/internal/blocks"
	"github.com/vitrinehq/vitrine/internal/head"
	"github.com/vitrinehq/vitrine/internal/metrics"
	"github.com/vitrinehq/vitrine/internal/page"
	"github.com/vitrinehq/vitrine/internal/tenant"
)

// shell is the one document template every tenant page renders through.
// Blocks arrive pre-rendered; the shell only frames them.
var shell = template.Must(template.New("shell").Parse(`<!doctype html>
<html lang="en">
<head>
{{ .Head.Title }}{{ .Head.Metas }}{{ .Head.Links }}{{ .Head.Styles }}{{ .Head.Scripts }}{{ .Head.JSON }}
</head>
<body class="template-{{ .Template }}">
{{ if .Preview }}<div class="preview-banner">Draft preview — not visible to the public</div>
{{ end }}<main>
{{ .Body }}</main>
</body>
</html>
`))

type shellData struct {
	Head     *head.Builder
	Template string
	Preview  bool
	Body     template.HTML
}

// BuildPage renders one page to a finished HTML document.
func BuildPage(ten *tenant.Tenant, rec *page.Record) ([]byte, error) {
	bl, err := page.Blocks(rec.Content)
	if err != nil {
		return nil, err
	}

	hd := head.ForPage(head.PageInfo{
		SiteName:  ten.Org.Name,
		PageTitle: rec.Title,
		FontURL:   ten.FontURL,
		TokenCSS:  ten.CSS,
		Preview:   ten.Preview,
	})

	var buf bytes.Buffer
	err = shell.Execute(&buf, shellData{
		Head:     hd,
		Template: ten.Theme.Template,
		Preview:  ten.Preview,
		Body:     blocks.RenderAll(bl),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPage serves one page, consulting the tenant's rendered-page LRU
// first.  Cache hits count toward the page_render_cache_hits metric.
func RenderPage(w http.ResponseWriter, ten *tenant.Tenant, rec *page.Record, path string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if cached, ok := ten.PageCache().Get(path); ok {
		metrics.PageRenderCacheHits.Inc()
		w.Write(cached.([]byte))
		return
	}

	html, err := BuildPage(ten, rec)
	if err != nil {
		zap.L().Error("page render failed",
			zap.Uint64("site_id", ten.Site.ID),
			zap.String("path", path),
			zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	ten.PageCache().Add(path, html)
	w.Write(html)
}
