// internal/blocks/cta.go
//
// Call-to-action banner: heading, optional body, button.  Renders nothing
// without at least a heading or a button label.

package blocks

import (
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(ctaBlock{}) }

type ctaBlock struct{}

func (ctaBlock) Type() string { return "cta" }

func (ctaBlock) Render(data gjson.Result) string {
	head := str(data, "heading")
	label := str(data, "ctaLabel")
	if head == "" && label == "" {
		return ""
	}

	var inner strings.Builder
	inner.WriteString(heading("h2", "cta-heading", head))
	inner.WriteString(para("cta-body", str(data, "body")))
	if label != "" {
		href := str(data, "ctaHref")
		if href == "" {
			href = "#contact"
		}
		inner.WriteString(`<a class="button button-primary" href="` + esc(href) + `">` + esc(label) + `</a>`)
	}
	return section("cta", data, inner.String())
}
