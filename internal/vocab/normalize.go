package vocab

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares raw input for matching: NFC composition, trimmed, with
// every whitespace run collapsed to a single space. Composed form matters
// because vocabulary patterns are written with precomposed letters ("é").
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
