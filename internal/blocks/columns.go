// internal/blocks/columns.go
//
// Multi-column feature block.  `items` is an array of {title, body,
// image, imageAlt}; the column count tracks the item count, capped by the
// stylesheet.  Variants: "cards" (default) and "plain".

package blocks

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(columnsBlock{}) }

type columnsBlock struct{}

func (columnsBlock) Type() string { return "columns" }

func (columnsBlock) Render(data gjson.Result) string {
	items := data.Get("items")
	if !items.IsArray() || len(items.Array()) == 0 {
		return ""
	}
	v := variant(data, "cards", "cards", "plain")

	var inner strings.Builder
	inner.WriteString(heading("h2", "columns-heading", str(data, "heading")))
	inner.WriteString(`<div class="columns columns-` + v + `">`)
	for _, item := range items.Array() {
		inner.WriteString(`<div class="column">`)
		if m := img(str(item, "image"), str(item, "imageAlt")); m != "" {
			inner.WriteString(`<div class="column-media">` + m + `</div>`)
		}
		inner.WriteString(heading("h3", "column-title", str(item, "title")))
		inner.WriteString(para("column-body", str(item, "body")))
		inner.WriteString(`</div>`)
	}
	inner.WriteString(`</div>`)
	return section("columns", data, inner.String())
}

func (columnsBlock) ImageSlots(data gjson.Result) []string {
	var out []string
	for i, item := range data.Get("items").Array() {
		if str(item, "image") == "" {
			out = append(out, "items."+strconv.Itoa(i)+".image")
		}
	}
	return out
}

func (columnsBlock) TextParts(data gjson.Result) []string {
	parts := []string{str(data, "heading")}
	for _, item := range data.Get("items").Array() {
		parts = append(parts, str(item, "title"), str(item, "body"))
	}
	return nonEmpty(parts...)
}
