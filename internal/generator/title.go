package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"agri-updates/internal/cleaner"
	"agri-updates/internal/extract"
	"agri-updates/internal/models"
)

const (
	maxTitleLen   = 100
	maxExcerptLen = 200
	// prose sentences shorter than this are usually greetings or shouts
	minSentenceWords = 4
)

var (
	slugInvalidRegex = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRegex   = regexp.MustCompile(`\s+`)
	slugHyphenRegex  = regexp.MustCompile(`-{2,}`)
)

// Title synthesizes the post title from position and company, falling back
// to the headline and then to fixed qualifiers.
func Title(cat models.Category, res *extract.Result, headline string) string {
	position := res.Get(extract.FieldPosition)
	company := res.Get(extract.FieldCompany)

	switch {
	case position != "" && company != "":
		return position + " at " + company
	case !cat.IsJobLike() && position != "":
		return position
	case !cat.IsJobLike() && headline != "":
		return headline
	case !cat.IsJobLike():
		return fmt.Sprintf("%s Update for %ss", cat, FallbackRole)
	case position != "":
		return position + " – " + FallbackCompany
	case company != "":
		return company + " – " + FallbackRole
	case headline != "":
		return headline
	default:
		return "New Opportunity – " + FallbackRole
	}
}

// Headline returns the first prose sentence worth using as a title, or "".
func Headline(res *extract.Result) string {
	sentences := proseSentences(res)
	if len(sentences) == 0 {
		return ""
	}
	return truncate(strings.TrimRight(sentences[0], ".!?"), maxTitleLen)
}

// Slug turns a title into a lowercase hyphenated URL segment. It is empty
// only when the title has no ASCII letters or digits after folding.
func Slug(title string) string {
	s := cleaner.Fold(title)
	s = slugInvalidRegex.ReplaceAllString(s, "")
	s = slugSpaceRegex.ReplaceAllString(strings.TrimSpace(s), "-")
	s = slugHyphenRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug appends a base-36 timestamp so repeated titles do not collide.
func UniqueSlug(slug string, t time.Time) string {
	suffix := strconv.FormatInt(t.UnixMilli(), 36)
	if slug == "" {
		return "post-" + suffix
	}
	return slug + "-" + suffix
}

// Excerpt is the first one or two prose sentences, or a summary built from
// the extracted fields when the text has no prose.
func Excerpt(cat models.Category, res *extract.Result) string {
	sentences := proseSentences(res)
	if len(sentences) > 2 {
		sentences = sentences[:2]
	}
	if len(sentences) > 0 {
		if excerpt := truncate(strings.Join(sentences, " "), maxExcerptLen); excerpt != "" {
			return excerpt
		}
	}
	return truncate(templateExcerpt(cat, res), maxExcerptLen)
}

func templateExcerpt(cat models.Category, res *extract.Result) string {
	position := res.Get(extract.FieldPosition)
	company := res.Get(extract.FieldCompany)
	location := res.Get(extract.FieldLocation)

	var b strings.Builder
	switch {
	case position != "" && company != "":
		fmt.Fprintf(&b, "%s is hiring %s %s", company, article(position), position)
	case position != "":
		fmt.Fprintf(&b, "Opening for %s %s", article(position), position)
	case company != "":
		fmt.Fprintf(&b, "New opportunity at %s", company)
	default:
		return fmt.Sprintf("New %s update for agricultural professionals. Read the details below.", strings.ToLower(string(cat)))
	}
	if location != "" {
		fmt.Fprintf(&b, " in %s", location)
	}
	b.WriteString(".")
	if d := res.Get(extract.FieldDeadline); d != "" {
		fmt.Fprintf(&b, " Last date: %s.", d)
	}
	return b.String()
}

func proseSentences(res *extract.Result) []string {
	var out []string
	for _, l := range res.Lines {
		if l.Kind != extract.KindProse {
			continue
		}
		for _, s := range extract.Sentences(l.Text) {
			if len(strings.Fields(s)) >= minSentenceWords {
				out = append(out, s)
			}
		}
	}
	return out
}

func article(word string) string {
	if word == "" {
		return "a"
	}
	switch strings.ToLower(word[:1]) {
	case "a", "e", "i", "o", "u":
		return "an"
	}
	return "a"
}

// truncate cuts s to at most n runes at a word boundary and marks the cut.
// It returns "" when not even the first word fits.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:n])
	if !unicode.IsSpace(runes[n]) {
		i := strings.LastIndexFunc(cut, unicode.IsSpace)
		if i < 0 {
			return ""
		}
		cut = cut[:i]
	}
	cut = strings.TrimRightFunc(cut, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",;:-–", r)
	})
	if cut == "" {
		return ""
	}
	return cut + "…"
}
