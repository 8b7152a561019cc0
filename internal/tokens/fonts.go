// internal/tokens/fonts.go
//
// Google Fonts URL construction.  One batched css2 request names every
// required family with a fixed weight range; the browser then does a
// single stylesheet fetch per page regardless of how many families the
// theme uses.

package tokens

import (
	"net/url"
	"strings"
)

const fontWeights = "400;500;600;700"

// FontURL returns the stylesheet URL for the theme's families, or "" when
// no custom font is configured.  Body is requested separately only when it
// is set and distinct from Heading.
func FontURL(fonts Fonts) string {
	families := make([]string, 0, 2)
	if h := strings.TrimSpace(fonts.Heading); h != "" {
		families = append(families, h)
	}
	if b := strings.TrimSpace(fonts.Body); b != "" && b != strings.TrimSpace(fonts.Heading) {
		families = append(families, b)
	}
	if len(families) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("https://fonts.googleapis.com/css2")
	for i, fam := range families {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString("family=")
		sb.WriteString(url.QueryEscape(fam))
		sb.WriteString(":wght@")
		sb.WriteString(url.QueryEscape(fontWeights))
	}
	sb.WriteString("&display=swap")
	return sb.String()
}
