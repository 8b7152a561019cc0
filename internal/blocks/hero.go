// internal/blocks/hero.go
//
// Hero block: heading, optional subheading, optional image, optional call
// to action.  Variants: "split" (default, text beside image) and
// "centered" (stacked, image below).

package blocks

import (
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(heroBlock{}) }

type heroBlock struct{}

func (heroBlock) Type() string { return "hero" }

func (heroBlock) Render(data gjson.Result) string {
	v := variant(data, "split", "split", "centered")

	var inner strings.Builder
	inner.WriteString(`<div class="hero hero-` + v + `">`)
	inner.WriteString(`<div class="hero-copy">`)
	inner.WriteString(heading("h1", "hero-heading", str(data, "heading")))
	inner.WriteString(para("hero-subheading", str(data, "subheading")))
	if label := str(data, "ctaLabel"); label != "" {
		href := str(data, "ctaHref")
		if href == "" {
			href = "#contact"
		}
		inner.WriteString(`<a class="button button-primary" href="` + esc(href) + `">` + esc(label) + `</a>`)
	}
	inner.WriteString(`</div>`)
	if m := img(str(data, "image"), str(data, "imageAlt")); m != "" {
		inner.WriteString(`<div class="hero-media">` + m + `</div>`)
	}
	inner.WriteString(`</div>`)

	// A hero with no heading, subheading, CTA, or image renders nothing.
	if str(data, "heading") == "" && str(data, "subheading") == "" &&
		str(data, "ctaLabel") == "" && str(data, "image") == "" {
		return ""
	}
	return section("hero", data, inner.String())
}

func (heroBlock) ImageSlots(data gjson.Result) []string {
	if str(data, "image") == "" {
		return []string{"image"}
	}
	return nil
}

func (heroBlock) TextParts(data gjson.Result) []string {
	return nonEmpty(str(data, "heading"), str(data, "subheading"))
}

// nonEmpty drops blank strings; shared by the Enricher implementations.
func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
