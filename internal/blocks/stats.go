// internal/blocks/stats.go
//
// Stats strip: `items` is an array of {value, label}, e.g. "250+" /
// "projects delivered".  Items missing a value are skipped.

package blocks

import (
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(statsBlock{}) }

type statsBlock struct{}

func (statsBlock) Type() string { return "stats" }

func (statsBlock) Render(data gjson.Result) string {
	items := data.Get("items")
	if !items.IsArray() {
		return ""
	}

	var cells strings.Builder
	for _, it := range items.Array() {
		v := str(it, "value")
		if v == "" {
			continue
		}
		cells.WriteString(`<div class="stat"><span class="stat-value">` + esc(v) + `</span>`)
		if l := str(it, "label"); l != "" {
			cells.WriteString(`<span class="stat-label">` + esc(l) + `</span>`)
		}
		cells.WriteString(`</div>`)
	}
	if cells.Len() == 0 {
		return ""
	}
	return section("stats", data, `<div class="stats">`+cells.String()+`</div>`)
}
