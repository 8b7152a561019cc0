// internal/page/document.go
//
// Block-document access.
//
// Context
// -------
// Page content is stored as one JSON document:
//
//	{ "blocks": [ { "id": "...", "type": "hero", "data": { ... } }, ... ] }
//
// Block `data` is a loosely-typed bag whose shape depends on `type`; old
// documents must keep parsing as new block types are added, so nothing
// here unmarshals into fixed structs.  Reads go through gjson and writes
// through sjson, which gives us dot/array-index path addressing
// ("blocks.2.data.items.1.image") for out-of-band mutation — the image
// enrichment pipeline patches exactly one nested field without touching
// the rest of the document.

package page

import (
	"errors"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrBadDocument is returned when content is not a JSON object with a
// `blocks` array.
var ErrBadDocument = errors.New("page: malformed block document")

// Block is one structural unit of page content.  Data stays a gjson
// handle; renderers pull typed fields out lazily with safe defaults.
type Block struct {
	ID   string
	Type string
	Data gjson.Result
}

// Blocks parses content and returns its blocks in document order.  A
// document with no `blocks` key yields an empty slice, not an error, so
// freshly created pages render as blank rather than broken.
func Blocks(content []byte) ([]Block, error) {
	if len(content) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(content) {
		return nil, ErrBadDocument
	}
	arr := gjson.GetBytes(content, "blocks")
	if !arr.Exists() {
		return nil, nil
	}
	if !arr.IsArray() {
		return nil, ErrBadDocument
	}

	var out []Block
	arr.ForEach(func(_, v gjson.Result) bool {
		out = append(out, Block{
			ID:   v.Get("id").String(),
			Type: v.Get("type").String(),
			Data: v.Get("data"),
		})
		return true
	})
	return out, nil
}

// GetField reads one dot-path inside a block's data, addressed relative to
// the document root ("blocks.<index>.data.<field path>").
func GetField(content []byte, path string) gjson.Result {
	return gjson.GetBytes(content, path)
}

// SetField writes value at a dot-path and returns the updated document.
// The original slice is never mutated.
func SetField(content []byte, path string, value any) ([]byte, error) {
	return sjson.SetBytes(content, path, value)
}

// FieldPath builds the document-rooted path for a field inside the data
// bag of the block at index i.
func FieldPath(i int, field string) string {
	return "blocks." + strconv.Itoa(i) + ".data." + field
}
