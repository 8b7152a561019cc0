// internal/blocks/background.go
//
// Named background presets.  Block data stores a preset name; the shell
// stylesheet defines the matching classes in terms of the tenant's design
// tokens, so one preset renders differently per tenant.

package blocks

var backgrounds = map[string]string{
	"default":  "",
	"muted":    "bg-muted",
	"brand":    "bg-brand",
	"inverted": "bg-inverted",
	"gradient": "bg-gradient",
}

// backgroundClass maps a preset name to its CSS class.  Unknown names
// fall back to the default (no class) rather than leaking arbitrary
// strings into the class attribute.
func backgroundClass(name string) string {
	return backgrounds[name]
}
