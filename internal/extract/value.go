package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	sentenceEndRegex = regexp.MustCompile(`[.!?]+\s+`)
	pipeRegex        = regexp.MustCompile(`\s\|\s`)
)

const edgePunct = "*_~-–—•·:.,;|>\"'`=!?"

// cleanValue trims a raw label value down to the fact it carries: the first
// sentence, without surrounding whitespace, emoji or decoration.
func cleanValue(raw string) string {
	v := strings.TrimSpace(raw)
	v = cutSentence(v)
	if loc := pipeRegex.FindStringIndex(v); loc != nil {
		v = v[:loc[0]]
	}
	return trimEdges(v)
}

func trimEdges(v string) string {
	v = strings.TrimLeftFunc(v, func(r rune) bool {
		return isDecoration(r) || (r != '!' && r != '?' && strings.ContainsRune(edgePunct, r))
	})
	v = strings.TrimRightFunc(v, func(r rune) bool {
		return isDecoration(r) || strings.ContainsRune(edgePunct, r)
	})
	return v
}

// isDecoration matches whitespace, emoji and the invisible joiners and
// selectors emoji sequences are built from.
func isDecoration(r rune) bool {
	return unicode.IsSpace(r) ||
		unicode.Is(unicode.So, r) ||
		unicode.Is(unicode.Sk, r) ||
		unicode.Is(unicode.Me, r) ||
		r == '\u200d' || r == '\ufe0f' || r == '\ufe0e'
}

// cutSentence keeps text up to the first sentence end that is not an
// abbreviation such as "Pvt." or "B.Sc.".
func cutSentence(v string) string {
	for _, loc := range sentenceEndRegex.FindAllStringIndex(v, -1) {
		if isAbbreviation(lastWord(v[:loc[0]])) {
			continue
		}
		return v[:loc[0]]
	}
	return v
}

// Sentences splits prose into sentences, each keeping its end punctuation.
func Sentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEndRegex.FindAllStringIndex(text, -1) {
		if isAbbreviation(lastWord(text[start:loc[0]])) {
			continue
		}
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func lastWord(s string) string {
	if i := strings.LastIndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[i+1:]
	}
	return s
}

func isAbbreviation(word string) bool {
	word = strings.TrimLeftFunc(word, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
	if word == "" {
		return true
	}
	if strings.Contains(word, ".") {
		return true
	}
	n := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
		n++
	}
	return n <= 3
}
