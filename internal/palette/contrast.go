// internal/palette/contrast.go
//
// WCAG contrast helpers.
//
// Buttons and badges render text directly on the brand color, so the text
// color must be a binary black-or-white pick, never an interpolated gray:
// an interpolation can land below the AA 4.5:1 threshold on mid-lightness
// brands, while the better of the two endpoints never does worse than the
// alternative.

package palette

// Contrast endpoints returned by ContrastText.
const (
	White = "#ffffff"
	Black = "#000000"
)

// ContrastText returns White or Black, whichever has the higher WCAG
// contrast ratio against bg.
func ContrastText(bg RGB) string {
	if ContrastRatio(bg, RGB{1, 1, 1}) >= ContrastRatio(bg, RGB{0, 0, 0}) {
		return White
	}
	return Black
}

// ContrastRatio computes the WCAG 2.x relative-luminance contrast ratio
// between two colors.  The result is in [1, 21].
func ContrastRatio(a, b RGB) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// relativeLuminance follows the WCAG definition: linearize each channel,
// then weight by the Rec. 709 coefficients.
func relativeLuminance(c RGB) float64 {
	return 0.2126*srgbToLinear(c.R) +
		0.7152*srgbToLinear(c.G) +
		0.0722*srgbToLinear(c.B)
}
