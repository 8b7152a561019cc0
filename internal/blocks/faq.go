// internal/blocks/faq.go
//
// FAQ block: `items` is an array of {question, answer}.  Answers are rich
// text from the editor (trusted), questions are plain text.

package blocks

import (
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(faqBlock{}) }

type faqBlock struct{}

func (faqBlock) Type() string { return "faq" }

func (faqBlock) Render(data gjson.Result) string {
	items := data.Get("items")
	if !items.IsArray() {
		return ""
	}

	var list strings.Builder
	for _, it := range items.Array() {
		q := str(it, "question")
		if q == "" {
			continue
		}
		list.WriteString(`<details class="faq-item"><summary>` + esc(q) + `</summary>`)
		if a := str(it, "answer"); a != "" {
			list.WriteString(`<div class="prose">` + a + `</div>`)
		}
		list.WriteString(`</details>`)
	}
	if list.Len() == 0 {
		return ""
	}

	inner := heading("h2", "faq-heading", str(data, "heading")) + list.String()
	return section("faq", data, inner)
}
