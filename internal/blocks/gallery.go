// internal/blocks/gallery.go
//
// Image gallery: `images` is an array of {src, alt}.  Entries with an
// empty src are skipped at render time but reported as enrichment slots.

package blocks

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(galleryBlock{}) }

type galleryBlock struct{}

func (galleryBlock) Type() string { return "gallery" }

func (galleryBlock) Render(data gjson.Result) string {
	imgs := data.Get("images")
	if !imgs.IsArray() {
		return ""
	}

	var cells strings.Builder
	for _, it := range imgs.Array() {
		if m := img(str(it, "src"), str(it, "alt")); m != "" {
			cells.WriteString(`<div class="gallery-cell">` + m + `</div>`)
		}
	}
	if cells.Len() == 0 {
		return ""
	}

	inner := heading("h2", "gallery-heading", str(data, "heading")) +
		`<div class="gallery">` + cells.String() + `</div>`
	return section("gallery", data, inner)
}

func (galleryBlock) ImageSlots(data gjson.Result) []string {
	var out []string
	for i, it := range data.Get("images").Array() {
		if str(it, "src") == "" {
			out = append(out, "images."+strconv.Itoa(i)+".src")
		}
	}
	return out
}

func (galleryBlock) TextParts(data gjson.Result) []string {
	parts := []string{str(data, "heading")}
	for _, it := range data.Get("images").Array() {
		parts = append(parts, str(it, "alt"))
	}
	return nonEmpty(parts...)
}
