package extract

import (
	"regexp"
	"strings"
)

// capitalized word runs, optionally introduced by "M/s"
var capitalizedRunRegex = regexp.MustCompile(`(?:M/s\.?\s+)?\b(\p{Lu}[\p{L}&'.-]*(?:\s+(?:\p{Lu}[\p{L}&'.()-]*|&|of|and)){0,6})`)

var companySuffixes = map[string]bool{
	"ltd": true, "limited": true, "pvt": true, "private": true, "llp": true, "inc": true,
	"corp": true, "corporation": true, "company": true, "co": true, "brothers": true, "bros": true,
	"agro": true, "agritech": true, "foods": true, "farms": true, "industries": true,
	"enterprises": true, "group": true, "institute": true, "university": true, "foundation": true,
	"bank": true, "seeds": true, "fertilizers": true, "fertilisers": true, "organics": true,
	"solutions": true, "technologies": true, "labs": true, "cooperative": true, "society": true,
	"federation": true, "trust": true,
}

// capitalized words that open announcements rather than names
var leadingNoise = map[string]bool{
	"urgent": true, "hiring": true, "required": true, "requirement": true, "wanted": true,
	"we": true, "at": true, "for": true, "in": true, "join": true, "job": true, "jobs": true,
	"vacancy": true, "vacancies": true, "opening": true, "openings": true, "apply": true,
	"now": true, "new": true, "alert": true, "opportunity": true,
}

// companyFromProse looks for a capitalized name ending in a company-like word
// ("The Coco Brothers", "Green Field Agro Pvt Ltd") in prose and bullets.
func companyFromProse(lines []Line) string {
	for _, l := range lines {
		if l.Kind != KindProse && l.Kind != KindBullet {
			continue
		}
		for _, m := range capitalizedRunRegex.FindAllStringSubmatch(l.Text, -1) {
			if name := companyName(strings.Fields(m[1])); name != "" {
				return name
			}
		}
	}
	return ""
}

func companyName(words []string) string {
	last := -1
	for i, w := range words {
		if companySuffixes[normWord(w)] {
			last = i
		}
	}
	if last < 0 {
		return ""
	}
	words = words[:last+1]
	for len(words) > 0 && leadingNoise[normWord(words[0])] {
		words = words[1:]
	}
	hasName := false
	for _, w := range words {
		if !companySuffixes[normWord(w)] {
			hasName = true
			break
		}
	}
	if !hasName {
		return ""
	}
	return trimEdges(strings.Join(words, " "))
}

func normWord(w string) string {
	return strings.ToLower(strings.Trim(w, ".,()'"))
}
