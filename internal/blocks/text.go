// internal/blocks/text.go
//
// Rich-text block.  `content` is pre-sanitized HTML produced by the admin
// editor, which is the trust boundary; it is emitted raw.  A plain-text
// `heading` above it is escaped normally.

package blocks

import (
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(textBlock{}) }

type textBlock struct{}

func (textBlock) Type() string { return "text" }

func (textBlock) Render(data gjson.Result) string {
	content := str(data, "content")
	head := str(data, "heading")
	if content == "" && head == "" {
		return ""
	}

	var inner strings.Builder
	inner.WriteString(heading("h2", "text-heading", head))
	if content != "" {
		inner.WriteString(`<div class="prose">` + content + `</div>`)
	}
	return section("text", data, inner.String())
}
