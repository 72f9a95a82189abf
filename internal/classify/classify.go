// Package classify assigns a post category from keyword scores.
package classify

import (
	"regexp"

	"agri-updates/internal/cleaner"
	"agri-updates/internal/extract"
	"agri-updates/internal/models"
)

// rule adds weight to a category when its pattern matches. Negative weights
// cancel keywords that mean something else in context.
type rule struct {
	category models.Category
	pattern  *regexp.Regexp
	weight   int
}

// Patterns run against folded (lowercase, accent-free) text.
var rules = []rule{
	{models.CategoryWarnings, regexp.MustCompile(`\b(scam|fraud|fake|beware|caution|warning|alert)\b`), 3},
	{models.CategoryWarnings, regexp.MustCompile(`\b(do not pay|never pay|registration fee|security deposit)\b`), 2},
	{models.CategoryWarnings, regexp.MustCompile(`\bjob\s+alerts?\b`), -3},

	{models.CategoryScholarships, regexp.MustCompile(`\bscholarships?\b`), 3},
	{models.CategoryScholarships, regexp.MustCompile(`\b(merit[\s-]cum[\s-]means|tuition fee waiver|financial aid)\b`), 1},

	{models.CategoryFellowships, regexp.MustCompile(`\b(fellowships?|jrf|srf|junior research fellow|senior research fellow)\b`), 3},

	{models.CategoryGrants, regexp.MustCompile(`\b(grants?|seed fund(ing)?|call for proposals?)\b`), 3},
	{models.CategoryGrants, regexp.MustCompile(`\bfunding\b`), 1},

	{models.CategoryExams, regexp.MustCompile(`\b(exams?|examination|admit card|hall ticket|answer key|entrance test|syllabus)\b`), 3},

	{models.CategoryEvents, regexp.MustCompile(`\b(webinar|conference|workshop|seminar|symposium|summit|expo|krishi mela|kisan mela)\b`), 3},
	{models.CategoryEvents, regexp.MustCompile(`\b(training programme|training program|register for the event)\b`), 2},

	{models.CategoryStartups, regexp.MustCompile(`\b(startups?|start-ups?|incubation|incubator|accelerator|agripreneurs?)\b`), 3},

	{models.CategoryPolicy, regexp.MustCompile(`\b(policy|scheme|yojana|subsidy|msp|ministry of agriculture|gazette)\b`), 2},

	{models.CategoryJobs, regexp.MustCompile(`\b(hiring|vacancy|vacancies|recruitment|walk[\s-]?in)\b`), 3},
	{models.CategoryJobs, regexp.MustCompile(`\b(jobs?|position|opening|salary|ctc|apply now)\b`), 1},

	{models.CategoryResearch, regexp.MustCompile(`\b(research|phd|ph\.d|thesis|journal|project associate|young professional)\b`), 2},

	{models.CategoryGuidance, regexp.MustCompile(`\b(tips|guidance|how to|career guide|roadmap|preparation strategy)\b`), 2},
}

// Priority breaks ties: specific and urgent categories before the generic
// Jobs/Research fallbacks.
var Priority = []models.Category{
	models.CategoryWarnings,
	models.CategoryScholarships,
	models.CategoryFellowships,
	models.CategoryGrants,
	models.CategoryExams,
	models.CategoryEvents,
	models.CategoryStartups,
	models.CategoryPolicy,
	models.CategoryJobs,
	models.CategoryResearch,
	models.CategoryGuidance,
}

// job-shaped fields; two of them make an unlabeled post a listing
var jobFields = []extract.Field{
	extract.FieldPosition,
	extract.FieldLocation,
	extract.FieldSalary,
	extract.FieldExperience,
	extract.FieldQualification,
	extract.FieldContact,
	extract.FieldJobType,
}

// Scores returns the clamped keyword score of every category.
func Scores(text string) map[models.Category]int {
	folded := cleaner.Fold(text)
	scores := make(map[models.Category]int, len(Priority))
	for _, r := range rules {
		if r.pattern.MatchString(folded) {
			scores[r.category] += r.weight
		}
	}

	//score normalizing
	for c, s := range scores {
		if s > 10 {
			scores[c] = 10
		}
		if s < 0 {
			scores[c] = 0
		}
	}
	return scores
}

// Classify picks the highest scoring category. With no keyword hits it
// falls back to Jobs when the extracted fields look like a listing, else
// Research.
func Classify(text string, res *extract.Result) models.Category {
	scores := Scores(text)
	best, bestScore := models.Category(""), 0
	for _, c := range Priority {
		if scores[c] > bestScore {
			best, bestScore = c, scores[c]
		}
	}
	if best != "" {
		return best
	}
	if looksLikeListing(res) {
		return models.CategoryJobs
	}
	return models.CategoryResearch
}

func looksLikeListing(res *extract.Result) bool {
	if res == nil {
		return false
	}
	if res.Has(extract.FieldCompany) {
		return true
	}
	n := 0
	for _, f := range jobFields {
		if res.Has(f) {
			n++
		}
	}
	return n >= 2
}
