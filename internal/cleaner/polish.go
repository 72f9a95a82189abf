package cleaner

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	strongRegex = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	boldRegex   = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicRegex = regexp.MustCompile(`(^|[\s(])_([^_\n]+)_`)
	strikeRegex = regexp.MustCompile(`(^|[\s(])~([^~\n]+)~`)
)

// chat-export lines that carry no content
var artifactLines = map[string]bool{
	"forwarded":                true,
	"forwarded many times":     true,
	"media omitted":            true,
	"image omitted":            true,
	"this message was deleted": true,
	"you deleted this message": true,
}

// BasicPolish is the rule-based tidy-up applied to the original text when no
// rewrite service output is used: WhatsApp artifacts and emphasis markers go,
// everything else stays as written.
func BasicPolish(raw string) string {
	text := Normalize(raw)

	var kept []string
	for _, line := range Lines(text) {
		key := strings.ToLower(strings.Trim(line, " <>*_~."))
		if artifactLines[key] {
			continue
		}
		line = strongRegex.ReplaceAllString(line, "$1")
		line = boldRegex.ReplaceAllString(line, "$1")
		line = italicRegex.ReplaceAllString(line, "${1}${2}")
		line = strikeRegex.ReplaceAllString(line, "${1}${2}")
		kept = append(kept, line)
	}
	return Normalize(strings.Join(kept, "\n"))
}

// Fold lowercases and removes combining marks so "Café" and "cafe" compare
// equal. Only used for matching and slugs: it drops the vowel signs of
// Indic scripts.
func Fold(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, str)
	if err != nil {
		result = str
	}
	return strings.ToLower(result)
}
