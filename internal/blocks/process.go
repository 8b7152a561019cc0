// internal/blocks/process.go
//
// Process block: numbered steps, `steps` is an array of {title, body}.
// Variants: "vertical" (default) and "horizontal".

package blocks

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(processBlock{}) }

type processBlock struct{}

func (processBlock) Type() string { return "process" }

func (processBlock) Render(data gjson.Result) string {
	steps := data.Get("steps")
	if !steps.IsArray() {
		return ""
	}
	v := variant(data, "vertical", "vertical", "horizontal")

	var list strings.Builder
	n := 0
	for _, s := range steps.Array() {
		title := str(s, "title")
		if title == "" {
			continue
		}
		n++
		list.WriteString(`<li class="step"><span class="step-number">` + strconv.Itoa(n) + `</span>`)
		list.WriteString(heading("h3", "step-title", title))
		list.WriteString(para("step-body", str(s, "body")))
		list.WriteString(`</li>`)
	}
	if list.Len() == 0 {
		return ""
	}

	inner := heading("h2", "process-heading", str(data, "heading")) +
		`<ol class="process process-` + v + `">` + list.String() + `</ol>`
	return section("process", data, inner)
}
