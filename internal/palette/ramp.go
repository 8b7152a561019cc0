// internal/palette/ramp.go
//
// Shade-ramp generation.
//
// Given one brand color we emit eleven shades (50 … 950) at constant hue.
// Lightness follows a fixed descending curve so shade 50 is always the
// light end (≈0.97) and 950 the dark end (≈0.15); chroma is attenuated
// toward both extremes because near-white and near-black colors with full
// chroma fall outside the sRGB gamut.

package palette

// Shades lists the ramp steps in ascending (darkening) order.
var Shades = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}

// MaxChroma caps chroma at a value that stays inside sRGB for every hue.
const MaxChroma = 0.37

// lightness and chromaScale are indexed in step with Shades.
var (
	lightness   = []float64{0.97, 0.93, 0.87, 0.80, 0.72, 0.64, 0.55, 0.45, 0.35, 0.25, 0.15}
	chromaScale = []float64{0.25, 0.40, 0.60, 0.80, 0.95, 1.00, 1.00, 0.95, 0.85, 0.70, 0.55}
)

// Ramp expands base into a shade → color map.  The input's own lightness
// is ignored; only its hue and chroma survive, which keeps ramps generated
// from a light and a dark variant of the same brand color identical.
func Ramp(base OKLCH) map[int]OKLCH {
	out := make(map[int]OKLCH, len(Shades))
	for i, shade := range Shades {
		c := base.C * chromaScale[i]
		if c > MaxChroma {
			c = MaxChroma
		}
		out[shade] = OKLCH{
			L: clamp01(lightness[i]),
			C: c,
			H: base.H,
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
