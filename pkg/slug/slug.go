package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// letters that do not decompose into an ASCII base plus marks
var special = strings.NewReplacer("ı", "i", "ø", "o", "ß", "ss", "æ", "ae", "ł", "l", "đ", "d")

// Generate turns a display name into a URL slug: "Navy Blue" -> "navy-blue",
// "Crème Brûlée" -> "creme-brulee".
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = special.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
