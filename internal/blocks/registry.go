// internal/blocks/registry.go
//
// Block-type registry.
//
// Context
// -------
// A page's content document is an ordered list of typed blocks.  Each
// concrete type lives in its own file in this package and registers
// itself in an init() function, the same pattern the component and widget
// registries use.  The renderer dispatches on `type`; a type missing from
// the registry is skipped with a warning, never a failure, so documents
// written by a newer editor keep rendering on an older binary.
//
// Notes
// -----
//   - Renderers must be pure: same data in, same bytes out, no I/O.
//   - Registration happens only from init() functions, so the map is
//     read-only once the program is running and needs no lock afterward;
//     the mutex guards test-time registration.

package blocks

import (
	"sort"
	"sync"

	"github.com/tidwall/gjson"
)

// Renderer turns one block's data bag into HTML.  Implementations own
// their data shape: required fields get safe fallbacks, absent optional
// fields emit no markup at all (no empty containers, no broken images).
type Renderer interface {
	Type() string
	Render(data gjson.Result) string
}

// Enricher is implemented by block types that carry image-bearing fields.
// ImageSlots returns data-relative dot paths of fields that are currently
// empty; TextParts returns the nearby human-readable strings the
// enrichment pipeline uses to infer subject matter.
type Enricher interface {
	ImageSlots(data gjson.Result) []string
	TextParts(data gjson.Result) []string
}

var (
	mu       sync.RWMutex
	registry = map[string]Renderer{}
)

// Register is invoked from block init() functions.
func Register(r Renderer) {
	mu.Lock()
	registry[r.Type()] = r
	mu.Unlock()
}

// Lookup returns the renderer for a block type, or nil.
func Lookup(typ string) Renderer {
	mu.RLock()
	defer mu.RUnlock()
	return registry[typ]
}

// Types returns every registered type name, sorted, so callers that
// iterate the registry (slot collection, docs) do so in a stable order.
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
