// internal/blocks/render.go
//
// Document-order dispatch plus the small HTML helpers every block type
// shares.  Output is plain string concatenation into one strings.Builder;
// escaping is explicit at each interpolation site so a reviewer can audit
// the trust boundary file by file.

package blocks

import (
	"html/template"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/vitrinehq/vitrine/internal/page"
)

// RenderAll renders blocks in document order.  Unknown types log one
// warning and are omitted; everything else renders normally.
func RenderAll(blocks []page.Block) template.HTML {
	var sb strings.Builder
	for _, b := range blocks {
		r := Lookup(b.Type)
		if r == nil {
			zap.L().Warn("unknown block type skipped",
				zap.String("type", b.Type),
				zap.String("block", b.ID))
			continue
		}
		sb.WriteString(r.Render(b.Data))
	}
	return template.HTML(sb.String())
}

//
// shared helpers
//

// esc HTML-escapes untrusted text fields.
func esc(s string) string { return template.HTMLEscapeString(s) }

// str reads a string field, returning "" when absent or non-string.
func str(data gjson.Result, path string) string {
	v := data.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.String()
}

// variant reads the block's layout selector, falling back to def when the
// field is absent or not one of allowed.
func variant(data gjson.Result, def string, allowed ...string) string {
	v := str(data, "variant")
	if v == "" {
		v = str(data, "layout")
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

// section wraps a block's inner HTML in the standard outer element with
// its type and background classes.  Empty inner HTML emits nothing so a
// block whose every field is missing disappears cleanly.
func section(typ string, data gjson.Result, inner string) string {
	if inner == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<section class="block block-`)
	sb.WriteString(typ)
	if bg := backgroundClass(str(data, "background")); bg != "" {
		sb.WriteByte(' ')
		sb.WriteString(bg)
	}
	sb.WriteString(`">`)
	sb.WriteString(inner)
	sb.WriteString(`</section>`)
	return sb.String()
}

// img emits an <img> tag, or nothing when src is empty.  Never renders an
// empty src attribute (broken-image icon).
func img(src, alt string) string {
	if src == "" {
		return ""
	}
	return `<img src="` + esc(src) + `" alt="` + esc(alt) + `" loading="lazy">`
}

// heading emits an <hN> or nothing.
func heading(level, class, text string) string {
	if text == "" {
		return ""
	}
	return "<" + level + ` class="` + class + `">` + esc(text) + "</" + level + ">"
}

// para emits a <p> or nothing.
func para(class, text string) string {
	if text == "" {
		return ""
	}
	return `<p class="` + class + `">` + esc(text) + `</p>`
}
