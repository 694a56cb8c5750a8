package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// letters with no canonical decomposition to ASCII.
var special = strings.NewReplacer("ñ", "n", "ß", "ss", "æ", "ae", "ø", "o", "ı", "i", "ł", "l")

// Generate creates a URL-friendly slug from the given name. Accents are
// stripped by decomposing to NFD and dropping combining marks.
//
// Examples:
//   - "Periféricos" → "perifericos"
//   - "Cámaras y Fotografía" → "camaras-y-fotografia"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	s := special.Replace(strings.ToLower(strings.TrimSpace(name)))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	s = slugRegexp.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
