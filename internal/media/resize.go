// internal/media/resize.go
//
// Downscaling for oversized imports.
//
// Stock originals regularly exceed the store ceiling, so the pipeline
// shrinks them before upload: decode, scale down proportionally to the
// byte overshoot, and re-encode as JPEG.  Repeats with a smaller target
// when one pass is not enough (high-entropy images compress worse than
// the estimate assumes).

package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	jpegQuality = 85
	maxPasses   = 4
)

// FitUnder returns data unchanged when it is already within limit,
// otherwise a JPEG re-encode scaled down until it fits.  Fails when even
// an aggressive reduction cannot get under the limit.
func FitUnder(data []byte, limit int64) ([]byte, error) {
	if int64(len(data)) <= limit {
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: decode for resize: %w", err)
	}

	// Pixel count scales with the square of the edge factor, and JPEG
	// size roughly with the pixel count.
	factor := math.Sqrt(float64(limit) / float64(len(data)))
	for pass := 0; pass < maxPasses; pass++ {
		out, err := encodeScaled(src, factor)
		if err != nil {
			return nil, err
		}
		if int64(len(out)) <= limit {
			return out, nil
		}
		factor *= 0.7
	}
	return nil, fmt.Errorf("media: image does not fit under %d bytes after %d passes", limit, maxPasses)
}

func encodeScaled(src image.Image, factor float64) ([]byte, error) {
	b := src.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("media: scale factor %.3f collapses image", factor)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("media: encode resized: %w", err)
	}
	return buf.Bytes(), nil
}
