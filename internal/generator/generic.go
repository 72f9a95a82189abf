package generator

import (
	"strings"

	"agri-updates/internal/models"
)

// Placeholder strings used when a listing lacks real values. They double as
// the default genericness markers.
const (
	FallbackCompany  = "Private Agri Company"
	FallbackLocation = "Pan India"
	FallbackRole     = "Agricultural Professional"
)

// GenericMarkers lists values that mean the extractor fell back to
// placeholders instead of finding facts.
type GenericMarkers struct {
	Companies    []string `yaml:"companies"`
	Locations    []string `yaml:"locations"`
	TitlePhrases []string `yaml:"title_phrases"`
}

func DefaultMarkers() GenericMarkers {
	return GenericMarkers{
		Companies:    []string{FallbackCompany},
		Locations:    []string{FallbackLocation},
		TitlePhrases: []string{FallbackRole, FallbackCompany},
	}
}

// Extend returns the union of both marker sets.
func (m GenericMarkers) Extend(other GenericMarkers) GenericMarkers {
	return GenericMarkers{
		Companies:    union(m.Companies, other.Companies),
		Locations:    union(m.Locations, other.Locations),
		TitlePhrases: union(m.TitlePhrases, other.TitlePhrases),
	}
}

// IsGeneric reports whether a post carries any placeholder marker: a
// company or location equal to a marker, or a title containing a phrase.
func (m GenericMarkers) IsGeneric(post models.GeneratedPost) bool {
	if d := post.JobDetails; d != nil {
		if equalsAny(d.Company, m.Companies) || equalsAny(d.Location, m.Locations) {
			return true
		}
	}
	title := strings.ToLower(post.Title)
	for _, phrase := range m.TitlePhrases {
		if phrase != "" && strings.Contains(title, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

func equalsAny(v string, list []string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := map[string]bool{}
	for _, s := range append(append([]string{}, a...), b...) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
