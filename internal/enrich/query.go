// internal/enrich/query.go
//
// Search-query derivation.  Deterministic: two slots with the same text
// always produce the same query string, which is what lets the pipeline
// share one search call between them.

package enrich

import (
	"strings"
)

// queryTokenMax caps the derived query length; stock search engines rank
// better on short subject phrases than on whole sentences.
const queryTokenMax = 4

// stopwords are dropped from derived queries.  Small and fixed on
// purpose; this filters glue words, not meaning.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "get": {}, "in": {},
	"is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "our": {},
	"the": {}, "this": {}, "to": {}, "we": {}, "with": {}, "you": {},
	"your": {},
}

// BuildSearchQuery turns nearby block text into a short search query:
// strip tags, strip punctuation, lowercase, drop stop-words, and keep
// the first four remaining tokens.  Returns "" when nothing survives.
func BuildSearchQuery(parts []string) string {
	text := stripTags(strings.Join(parts, " "))

	var tokens []string
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		tok := stripPunct(raw)
		if tok == "" {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
		if len(tokens) == queryTokenMax {
			break
		}
	}
	return strings.Join(tokens, " ")
}

// stripTags removes HTML elements, replacing each with a space so that
// "word<br>word" stays two tokens.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
			b.WriteByte(' ')
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripPunct keeps letters and digits only.
func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
