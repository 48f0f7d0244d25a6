// Package names reduces free-text article names to a comparable form.
package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Normalize trims surrounding whitespace, composes the name to Unicode NFC
// and lower-cases it. "Äpfel" typed as A+combining diaeresis and as the
// precomposed letter normalize to the same string.
func Normalize(name string) string {
	return lower.String(norm.NFC.String(strings.TrimSpace(name)))
}

// Same reports whether two names refer to the same article.
func Same(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
