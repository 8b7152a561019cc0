// internal/head/site.go
//
// ForPage assembles the standard <head> contents for one tenant page:
// charset and viewport metas, the Google Fonts preconnect + stylesheet
// pair, and the design-token variable block.  The view layer calls this
// once per render and emits the slices from the shell template.

package head

import (
	"html/template"
)

// PageInfo carries the per-render inputs for ForPage.
type PageInfo struct {
	SiteName  string
	PageTitle string
	FontURL   string // Google Fonts css2 URL, may be empty
	TokenCSS  string // :root{--…} variable block from the token engine
	Preview   bool
}

// ForPage returns a Builder pre-populated for a page render.
func ForPage(p PageInfo) *Builder {
	b := New()

	title := p.SiteName
	if p.PageTitle != "" && p.PageTitle != p.SiteName {
		title = p.PageTitle + " | " + p.SiteName
	}
	b.SetTitle(title)

	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	if p.Preview {
		// Draft renders must stay out of search indexes.
		b.Meta(`<meta name="robots" content="noindex, nofollow">`)
	}

	if p.FontURL != "" {
		b.Link(`<link rel="preconnect" href="https://fonts.googleapis.com">`)
		b.Link(`<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>`)
		b.Link(`<link rel="stylesheet" href="` + template.HTMLEscapeString(p.FontURL) + `">`)
	}

	if p.TokenCSS != "" {
		b.Style(p.TokenCSS)
	}
	return b
}
