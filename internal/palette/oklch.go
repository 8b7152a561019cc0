// internal/palette/oklch.go
//
// Hex → OKLCH conversion.
//
// Context
// -------
// Tenant sites are themed from a single brand color.  To derive a usable
// ramp of shades we move the color into the OKLCH space (perceptual
// lightness L, chroma C, hue H) where varying L at constant H keeps the
// "same color, lighter/darker" illusion intact.  The conversion chain is
// sRGB hex → linear sRGB → OKLab → OKLCH, using Ottosson's published
// matrices.
//
// Notes
// -----
//   - All functions here are pure; no I/O, no globals.
//   - Oxford commas, two spaces after periods.

package palette

import (
	"fmt"
	"math"
	"strings"
)

// RGB holds one channel per field in [0,1], gamma-encoded (sRGB).
type RGB struct {
	R, G, B float64
}

// OKLCH is the cylindrical form of OKLab.  L is perceptual lightness in
// [0,1], C is chroma (0 = gray), H is hue angle in degrees [0,360).
type OKLCH struct {
	L, C, H float64
}

// ParseHex accepts "#rgb", "#rrggbb", and the same without the leading
// hash.  Invalid input returns an error rather than a zero color so
// callers can fall back to stylesheet defaults.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
		// already long form
	default:
		return RGB{}, fmt.Errorf("palette: invalid hex color %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("palette: invalid hex color %q", s)
	}
	return RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}, nil
}

// ToOKLCH converts a gamma-encoded sRGB color into OKLCH.
func ToOKLCH(c RGB) OKLCH {
	r := srgbToLinear(c.R)
	g := srgbToLinear(c.G)
	b := srgbToLinear(c.B)

	// Linear sRGB → LMS (Ottosson M1), with cube root non-linearity.
	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	// LMS' → OKLab (Ottosson M2).
	lab := [3]float64{
		0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}

	chroma := math.Hypot(lab[1], lab[2])
	hue := math.Atan2(lab[2], lab[1]) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	return OKLCH{L: lab[0], C: chroma, H: hue}
}

// CSS renders the color as a CSS oklch() value with fixed precision so
// repeated renders emit byte-identical output.
func (c OKLCH) CSS() string {
	return fmt.Sprintf("oklch(%.4f %.4f %.2f)", c.L, c.C, c.H)
}

// srgbToLinear undoes the sRGB transfer curve for one channel.
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
