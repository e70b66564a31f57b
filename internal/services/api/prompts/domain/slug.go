package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugFallback is used when a name reduces to nothing sluggable
const slugFallback = "prompt"

var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Slugify folds a prompt name to a lowercase ASCII slug: accents stripped
// via NFKD, runs of non alphanumerics become single dashes, empty results
// fall back to a fixed placeholder
func Slugify(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return slugFallback
	}
	return out
}
