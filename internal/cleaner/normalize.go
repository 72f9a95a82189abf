// Package cleaner turns raw, possibly HTML-tainted announcement text into
// plaintext that the extraction rules can work on line by line.
package cleaner

import (
	"regexp"
	"strings"
)

var (
	// a tag must open with a letter, '/', '!' or '?' so "<3" or "a < b" survive
	tagRegex    = regexp.MustCompile(`<[a-zA-Z/!?][^<>]*>`)
	entityRegex = regexp.MustCompile(`&(?:[a-zA-Z][a-zA-Z0-9]*|#[0-9]+|#[xX][0-9a-fA-F]+);`)
	hspaceRegex = regexp.MustCompile(`[\t\f\v \p{Zs}]+`)
	blankRegex  = regexp.MustCompile(`\n{3,}`)
)

var namedEntities = map[string]string{
	"&nbsp;": " ",
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": `"`,
	"&#39;":  "'",
}

var zeroWidth = strings.NewReplacer("\u200b", "", "\u2060", "", "\ufeff", "")

// Normalize strips markup (each tag becomes a newline), decodes the common
// entities, collapses whitespace and blank-line runs.
//
// Normalize(Normalize(x)) == Normalize(x): the single pass is repeated until
// it stops changing the text. Apart from the one-off \r rewrite every
// replacement shortens the string, so the loop terminates.
func Normalize(raw string) string {
	s := raw
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = tagRegex.ReplaceAllString(s, "\n")
	s = entityRegex.ReplaceAllStringFunc(s, decodeEntity)
	s = zeroWidth.Replace(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(hspaceRegex.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = blankRegex.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func decodeEntity(entity string) string {
	if v, ok := namedEntities[entity]; ok {
		return v
	}
	return " "
}

// Lines splits normalized text into trimmed lines, keeping empty ones so
// paragraph boundaries stay visible.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
