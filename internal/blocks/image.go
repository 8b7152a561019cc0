// internal/blocks/image.go
//
// Standalone image block with optional caption.  This is the one block
// type the enrichment pipeline fills even without any nearby text; the
// pipeline substitutes its fixed default query when TextParts is empty.

package blocks

import (
	"github.com/tidwall/gjson"
)

func init() { Register(imageBlock{}) }

type imageBlock struct{}

func (imageBlock) Type() string { return "image" }

func (imageBlock) Render(data gjson.Result) string {
	m := img(str(data, "src"), str(data, "alt"))
	if m == "" {
		return ""
	}
	inner := `<figure class="figure">` + m
	if cap := str(data, "caption"); cap != "" {
		inner += `<figcaption>` + esc(cap) + `</figcaption>`
	}
	inner += `</figure>`
	return section("image", data, inner)
}

func (imageBlock) ImageSlots(data gjson.Result) []string {
	if str(data, "src") == "" {
		return []string{"src"}
	}
	return nil
}

func (imageBlock) TextParts(data gjson.Result) []string {
	return nonEmpty(str(data, "alt"), str(data, "caption"))
}
