// Package langdetect reports the primary language of a forwarded message.
package langdetect

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Languages the forwards arrive in.
var Languages = []lingua.Language{
	lingua.English,
	lingua.Hindi,
	lingua.Marathi,
	lingua.Tamil,
	lingua.Telugu,
	lingua.Bengali,
	lingua.Gujarati,
	lingua.Punjabi,
	lingua.Urdu,
}

var (
	once     sync.Once
	detector lingua.LanguageDetector
)

func get() lingua.LanguageDetector {
	once.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(Languages...).
			WithMinimumRelativeDistance(0.1).
			Build()
	})
	return detector
}

// Detect returns the lowercase ISO 639-1 code of the dominant language, or
// "" when the text is too short or ambiguous to tell.
func Detect(text string) string {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < 3 {
		return ""
	}
	lang, ok := get().DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
