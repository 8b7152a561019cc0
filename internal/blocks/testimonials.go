// internal/blocks/testimonials.go
//
// Testimonials: `items` is an array of {quote, author, role, image}.  The
// image is the author portrait and is an enrichment slot when empty.

package blocks

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(testimonialsBlock{}) }

type testimonialsBlock struct{}

func (testimonialsBlock) Type() string { return "testimonials" }

func (testimonialsBlock) Render(data gjson.Result) string {
	items := data.Get("items")
	if !items.IsArray() {
		return ""
	}

	var cards strings.Builder
	for _, it := range items.Array() {
		quote := str(it, "quote")
		if quote == "" {
			continue
		}
		cards.WriteString(`<figure class="testimonial">`)
		cards.WriteString(`<blockquote>` + esc(quote) + `</blockquote>`)
		author := str(it, "author")
		role := str(it, "role")
		if author != "" || role != "" {
			cards.WriteString(`<figcaption>`)
			if m := img(str(it, "image"), author); m != "" {
				cards.WriteString(m)
			}
			if author != "" {
				cards.WriteString(`<span class="testimonial-author">` + esc(author) + `</span>`)
			}
			if role != "" {
				cards.WriteString(`<span class="testimonial-role">` + esc(role) + `</span>`)
			}
			cards.WriteString(`</figcaption>`)
		}
		cards.WriteString(`</figure>`)
	}
	if cards.Len() == 0 {
		return ""
	}

	inner := heading("h2", "testimonials-heading", str(data, "heading")) +
		`<div class="testimonials">` + cards.String() + `</div>`
	return section("testimonials", data, inner)
}

func (testimonialsBlock) ImageSlots(data gjson.Result) []string {
	var out []string
	for i, it := range data.Get("items").Array() {
		if str(it, "image") == "" {
			out = append(out, "items."+strconv.Itoa(i)+".image")
		}
	}
	return out
}

func (testimonialsBlock) TextParts(data gjson.Result) []string {
	parts := []string{str(data, "heading")}
	for _, it := range data.Get("items").Array() {
		parts = append(parts, str(it, "role"))
	}
	return nonEmpty(parts...)
}
