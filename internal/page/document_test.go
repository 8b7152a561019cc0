// internal/page/document_test.go
//
// Unit-tests for block-document parsing and dot-path field access.

package page

import (
	"testing"
)

const sampleDoc = `{
  "blocks": [
    {"id": "b1", "type": "hero", "data": {"heading": "Welcome"}},
    {"id": "b2", "type": "columns", "data": {"items": [
      {"title": "One", "image": ""},
      {"title": "Two", "image": "https://cdn.example.com/a.jpg"}
    ]}},
    {"id": "b3", "type": "text", "data": {"content": "<p>Hi</p>"}}
  ]
}`

func TestBlocks_Order(t *testing.T) {
	blocks, err := Blocks([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	wantTypes := []string{"hero", "columns", "text"}
	for i, b := range blocks {
		if b.Type != wantTypes[i] {
			t.Errorf("block %d type = %q, want %q", i, b.Type, wantTypes[i])
		}
	}
	if blocks[0].Data.Get("heading").String() != "Welcome" {
		t.Error("hero data not carried through")
	}
}

func TestBlocks_EmptyAndMalformed(t *testing.T) {
	if b, err := Blocks(nil); err != nil || b != nil {
		t.Errorf("nil content: got (%v, %v)", b, err)
	}
	if b, err := Blocks([]byte(`{}`)); err != nil || len(b) != 0 {
		t.Errorf("no blocks key: got (%v, %v)", b, err)
	}
	if _, err := Blocks([]byte(`{"blocks": 42}`)); err == nil {
		t.Error("non-array blocks must error")
	}
	if _, err := Blocks([]byte(`not json`)); err == nil {
		t.Error("invalid JSON must error")
	}
}

func TestSetField_NestedArrayPath(t *testing.T) {
	path := FieldPath(1, "items.0.image")
	if path != "blocks.1.data.items.0.image" {
		t.Fatalf("FieldPath = %q", path)
	}

	updated, err := SetField([]byte(sampleDoc), path, "https://cdn.example.com/new.jpg")
	if err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if got := GetField(updated, path).String(); got != "https://cdn.example.com/new.jpg" {
		t.Errorf("read-back = %q", got)
	}

	// Only the targeted field changed.
	if got := GetField(updated, "blocks.1.data.items.1.image").String(); got != "https://cdn.example.com/a.jpg" {
		t.Errorf("sibling field mutated: %q", got)
	}
	if got := GetField([]byte(sampleDoc), path).String(); got != "" {
		t.Errorf("original document mutated: %q", got)
	}
}
