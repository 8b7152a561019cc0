// internal/tokens/tokens.go
//
// Design-token resolution.
//
// Context
// -------
// A tenant's visual identity is the product of three layers, in increasing
// precedence:
//
//  1. Stylesheet defaults — shipped with the page shell, not owned here.
//  2. Generated palette   — shade ramps and on-colors derived from the
//     site's brand colors (internal/palette).
//  3. Theme overrides     — the flat key → CSS-value map stored on the
//     theme row, set per tenant in the editor.
//
// Resolve merges layers 2 and 3 once per tenant load into an immutable
// map; EmitCSS turns that map into a `:root` declaration block.  Keys are
// stored bare ("color-primary-500") and gain the custom-property marker
// ("--") only at emission time.
//
// Notes
// -----
//   - Everything here is pure.  The tenant loader calls Resolve once and
//     caches the result; request handlers only read.
//   - An unparsable or absent brand color contributes nothing, so the
//     stylesheet defaults show through.

package tokens

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vitrinehq/vitrine/internal/palette"
)

// Brand carries the raw hex colors from the site row.  Either field may be
// empty.
type Brand struct {
	Primary   string
	Secondary string
}

// Fonts carries the font-family names from the theme row.  Either field
// may be empty; Body falls back to Heading.
type Fonts struct {
	Heading string
	Body    string
}

// Resolve expands brand colors into shade ramps, computes contrast-safe
// on-colors, layers overrides on top, and returns the flat token map.
func Resolve(brand Brand, overrides map[string]string, fonts Fonts) map[string]string {
	out := make(map[string]string, 32)

	expandColor(out, "primary", brand.Primary)
	expandColor(out, "secondary", brand.Secondary)

	if f := fontStack(fonts.Heading); f != "" {
		out["font-heading"] = f
	}
	if f := fontStack(bodyFont(fonts)); f != "" {
		out["font-body"] = f
	}

	// Overrides win over everything generated above.
	for k, v := range overrides {
		k = strings.TrimPrefix(strings.TrimSpace(k), "--")
		if k == "" || strings.TrimSpace(v) == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// EmitCSS renders the token map as a `:root{...}` block.  Keys are sorted
// so identical maps always produce identical bytes.
func EmitCSS(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(":root{")
	for _, k := range keys {
		sb.WriteString("--")
		sb.WriteString(k)
		sb.WriteByte(':')
		sb.WriteString(tokens[k])
		sb.WriteByte(';')
	}
	sb.WriteString("}")
	return sb.String()
}

// expandColor writes the ramp, the base alias, and the on-color for one
// brand slot.  Unparsable input writes nothing.
func expandColor(out map[string]string, name, hex string) {
	rgb, err := palette.ParseHex(hex)
	if err != nil {
		return
	}
	base := palette.ToOKLCH(rgb)
	for shade, c := range palette.Ramp(base) {
		out["color-"+name+"-"+strconv.Itoa(shade)] = c.CSS()
	}
	out["color-"+name] = base.CSS()
	out["color-on-"+name] = palette.ContrastText(rgb)
}

// bodyFont applies the fallback rule: body inherits heading when unset.
func bodyFont(f Fonts) string {
	if f.Body != "" {
		return f.Body
	}
	return f.Heading
}

// fontStack quotes multi-word family names and appends a generic fallback.
func fontStack(family string) string {
	family = strings.TrimSpace(family)
	if family == "" {
		return ""
	}
	if strings.ContainsAny(family, " \t") {
		family = `"` + family + `"`
	}
	return family + ", sans-serif"
}
