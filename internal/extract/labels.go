// Package extract pulls labeled field values out of cleaned announcement
// text. Every value it returns is a verbatim substring of its input.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Field names double as the StructuredDataBlock labels.
type Field string

const (
	FieldPosition      Field = "POSITION"
	FieldCompany       Field = "COMPANY"
	FieldLocation      Field = "LOCATION"
	FieldSalary        Field = "SALARY"
	FieldExperience    Field = "EXPERIENCE"
	FieldQualification Field = "QUALIFICATION"
	FieldDeadline      Field = "DEADLINE"
	FieldContact       Field = "CONTACT"
	FieldJobType       Field = "JOB_TYPE"
	FieldApplyLink     Field = "APPLY_LINK"
	FieldTags          Field = "TAGS"
)

// Label is one entry of the vocabulary shared by the block validator and the
// plain-text extractor.
type Label struct {
	Field   Field
	Display string
	// InBlock marks the fixed vocabulary a StructuredDataBlock may carry.
	InBlock bool
	Aliases []string
}

// Vocabulary is ordered the way summary tables list fields.
var Vocabulary = []Label{
	{
		Field: FieldPosition, Display: "Position", InBlock: true,
		Aliases: []string{"position", "post name", "post", "job title", "title", "job role", "role",
			"designation", "vacancy", "opening", "hiring", "wanted"},
	},
	{
		Field: FieldCompany, Display: "Company", InBlock: true,
		Aliases: []string{"company name", "company", "organisation name", "organization name", "organisation",
			"organization", "employer", "hiring company", "institute", "firm"},
	},
	{
		Field: FieldLocation, Display: "Location", InBlock: true,
		Aliases: []string{"job location", "work location", "location", "place of posting", "posting place",
			"place", "city", "venue"},
	},
	{
		Field: FieldSalary, Display: "Salary", InBlock: true,
		Aliases: []string{"salary range", "salary", "stipend", "ctc", "pay scale", "package", "remuneration",
			"compensation", "emoluments"},
	},
	{
		Field: FieldExperience, Display: "Experience", InBlock: true,
		Aliases: []string{"experience required", "work experience", "experience", "exp"},
	},
	{
		Field: FieldQualification, Display: "Qualification", InBlock: true,
		Aliases: []string{"educational qualification", "essential qualification", "qualifications",
			"qualification", "education", "eligibility"},
	},
	{
		Field: FieldDeadline, Display: "Deadline", InBlock: true,
		Aliases: []string{"last date to apply", "last date of application", "last date", "deadline",
			"apply before", "apply by", "closing date", "due date"},
	},
	{
		Field: FieldContact, Display: "Contact", InBlock: true,
		Aliases: []string{"contact number", "contact no", "contact details", "contact person", "contact",
			"phone number", "phone", "mobile no", "mobile", "mob", "whatsapp", "hr contact",
			"email id", "e-mail", "email", "mail id", "mail"},
	},
	{
		Field: FieldJobType, Display: "Job Type",
		Aliases: []string{"job type", "employment type", "type of employment", "nature of job", "job nature"},
	},
	{
		Field: FieldApplyLink, Display: "Apply Link",
		Aliases: []string{"application link", "apply link", "apply here", "apply online", "registration link",
			"website", "link"},
	},
	{
		Field: FieldTags, Display: "Tags",
		Aliases: []string{"hashtags", "keywords", "languages", "tags"},
	},
}

var (
	aliasToField = map[string]Field{}
	labelByField = map[Field]Label{}

	// labelRegex finds "<alias>:" anywhere; group 1 is the alias.
	labelRegex *regexp.Regexp
	// dashLabelRegex finds "<alias> - value" at the start of a line only.
	dashLabelRegex *regexp.Regexp
	// blockLineRegex parses one StructuredDataBlock line.
	blockLineRegex = regexp.MustCompile(`^([A-Z][A-Z_]*)\s*:\s*(.*)$`)
)

func init() {
	var aliases []string
	for _, l := range Vocabulary {
		labelByField[l.Field] = l
		for _, a := range l.Aliases {
			aliasToField[a] = l.Field
			aliases = append(aliases, a)
		}
	}
	// longest first so "company name" wins over "company"
	sort.SliceStable(aliases, func(i, j int) bool { return len(aliases[i]) > len(aliases[j]) })

	alts := make([]string, len(aliases))
	for i, a := range aliases {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(a), " ", `\s+`)
	}
	group := "(" + strings.Join(alts, "|") + ")"
	labelRegex = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])` + group + `\s*[:：]`)
	dashLabelRegex = regexp.MustCompile(`(?i)^[^\p{L}\p{N}]*` + group + `\s+[-–—]\s+`)
}

// LookupLabel returns the vocabulary entry for a field.
func LookupLabel(f Field) (Label, bool) {
	l, ok := labelByField[f]
	return l, ok
}

// BlockField maps an uppercase StructuredDataBlock label to its field.
func BlockField(label string) (Field, bool) {
	l, ok := labelByField[Field(label)]
	if !ok || !l.InBlock {
		return "", false
	}
	return l.Field, true
}

func fieldForAlias(alias string) Field {
	key := strings.ToLower(strings.Join(strings.Fields(alias), " "))
	return aliasToField[key]
}

// labelMatch is one label occurrence inside a line.
type labelMatch struct {
	field      Field
	start      int // first byte of the alias
	valueStart int // first byte after the separator
}

// findLabels returns label occurrences in a single line, in order.
func findLabels(line string) []labelMatch {
	var out []labelMatch
	if m := dashLabelRegex.FindStringSubmatchIndex(line); m != nil {
		out = append(out, labelMatch{field: fieldForAlias(line[m[2]:m[3]]), start: m[2], valueStart: m[1]})
	}
	for _, m := range labelRegex.FindAllStringSubmatchIndex(line, -1) {
		if len(out) > 0 && m[2] < out[len(out)-1].valueStart {
			continue
		}
		out = append(out, labelMatch{field: fieldForAlias(line[m[2]:m[3]]), start: m[2], valueStart: m[1]})
	}
	return out
}

// IsPolluted reports whether a value carries another field's label followed
// by a colon.
func IsPolluted(own Field, value string) bool {
	for _, m := range labelRegex.FindAllStringSubmatchIndex(value, -1) {
		if fieldForAlias(value[m[2]:m[3]]) != own {
			return true
		}
	}
	return false
}
