package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

type LineKind int

const (
	KindBlank LineKind = iota
	KindProse
	KindBullet
	KindLabel
	KindBlock
	KindTags
)

// Line is one input line with the role the extractor gave it.
type Line struct {
	Kind LineKind
	Text string
}

// Result is the field mapping pulled from one candidate text.
type Result struct {
	Fields map[Field]string
	Tags   []string
	Emails []string
	Phones []string
	Lines  []Line
	// FromBlock is set when a valid StructuredDataBlock supplied fields.
	FromBlock bool
}

// Get returns the extracted value for a field, or "".
func (r *Result) Get(f Field) string {
	return r.Fields[f]
}

// Has reports whether a field was extracted.
func (r *Result) Has(f Field) bool {
	return r.Fields[f] != ""
}

var (
	hashtagRegex   = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_&/])#([\p{L}_][\p{L}\p{N}_]*)`)
	tagSplitRegex  = regexp.MustCompile(`[,;|/]`)
	bulletRegex    = regexp.MustCompile(`^(?:[-•*▪►➤✓✔→]|\d{1,2}[.)])\s+`)
	separatorRegex = regexp.MustCompile(`^(.+?)\s+(?:at|@|\|)\s+(.+)$`)
	emailRegex     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRegex     = regexp.MustCompile(`(?:\+91[\s-]?|\b)[6-9]\d{4}[\s-]?\d{5}\b|\b0\d{2,4}[\s-]\d{6,8}\b`)
	urlRegex       = regexp.MustCompile(`https?://[^\s<>"']+|\bwww\.[^\s<>"']+`)
	jobTypeRegex   = regexp.MustCompile(`(?i)\b(full[\s-]?time|part[\s-]?time|internship|contract(?:ual)?(?:\s+basis)?|temporary|permanent|freelance|walk[\s-]?in(?:\s+interview)?|work\s+from\s+home)\b`)
)

// Extract runs the ordered rules over cleaned text. A StructuredDataBlock in
// the text takes precedence; labeled lines fill whatever the block left
// empty, first occurrence winning.
func Extract(text string) *Result {
	res := &Result{Fields: map[Field]string{}}

	_, block := ValidateBlock(text)
	if block.Valid() {
		res.FromBlock = true
		for _, l := range block.Lines {
			if !res.Has(l.Field) {
				res.Fields[l.Field] = l.Value
			}
		}
	}

	lines := strings.Split(text, "\n")
	marks := inBlockRanges(lines)
	consumed := make([]bool, len(lines))
	var tags tagSet

	for i, line := range lines {
		switch {
		case marks[i]:
			res.Lines = append(res.Lines, Line{Kind: KindBlock, Text: line})
			continue
		case consumed[i]:
			res.Lines = append(res.Lines, Line{Kind: KindLabel, Text: line})
			continue
		case strings.TrimSpace(line) == "":
			res.Lines = append(res.Lines, Line{Kind: KindBlank})
			continue
		}

		matches := findLabels(line)
		if len(matches) == 0 {
			hashtags := hashtagRegex.FindAllStringSubmatch(line, -1)
			for _, h := range hashtags {
				tags.add(h[1])
			}
			res.Lines = append(res.Lines, classifyLine(line, len(hashtags) > 0))
			continue
		}

		res.Lines = append(res.Lines, Line{Kind: KindLabel, Text: line})
		for j, m := range matches {
			end := len(line)
			if j+1 < len(matches) {
				end = matches[j+1].start
			}
			raw := line[m.valueStart:end]
			value := cleanValue(raw)
			if value == "" && j == len(matches)-1 {
				if k := nextValueLine(lines, marks, i); k >= 0 {
					consumed[k] = true
					raw = lines[k]
					value = cleanValue(raw)
				}
			}
			if m.field == FieldTags {
				for _, t := range tagSplitRegex.Split(raw, -1) {
					tags.add(t)
				}
				continue
			}
			if !res.Has(m.field) && !isPlaceholder(value) {
				res.Fields[m.field] = value
			}
		}
		for _, h := range hashtagRegex.FindAllStringSubmatch(line, -1) {
			tags.add(h[1])
		}
	}

	res.Tags = tags.list
	res.Emails = uniqueMatches(emailRegex, text)
	res.Phones = uniqueMatches(phoneRegex, text)
	applyFallbacks(res, text)
	return res
}

// nextValueLine returns the next non-empty line after i when it carries no
// label of its own, so "Salary:\n₹12,000" reads as one field.
func nextValueLine(lines []string, marks []bool, i int) int {
	for k := i + 1; k < len(lines); k++ {
		if marks[k] {
			return -1
		}
		if strings.TrimSpace(lines[k]) == "" {
			continue
		}
		if len(findLabels(lines[k])) > 0 {
			return -1
		}
		return k
	}
	return -1
}

func classifyLine(line string, hasHashtags bool) Line {
	if hasHashtags && strings.TrimFunc(hashtagRegex.ReplaceAllString(line, ""), isSeparatorOrDecoration) == "" {
		return Line{Kind: KindTags, Text: line}
	}
	if loc := bulletRegex.FindStringIndex(line); loc != nil {
		return Line{Kind: KindBullet, Text: trimEdges(line[loc[1]:])}
	}
	first := []rune(line)[0]
	if unicode.Is(unicode.So, first) && len(strings.Fields(line)) <= 15 {
		return Line{Kind: KindBullet, Text: trimEdges(line)}
	}
	return Line{Kind: KindProse, Text: line}
}

func isSeparatorOrDecoration(r rune) bool {
	return isDecoration(r) || unicode.IsPunct(r)
}

// applyFallbacks fills fields the labels did not provide from patterns found
// anywhere in the text.
func applyFallbacks(res *Result, text string) {
	if pos := res.Get(FieldPosition); pos != "" && !res.Has(FieldCompany) {
		if m := separatorRegex.FindStringSubmatch(pos); m != nil {
			if company := trimEdges(m[2]); company != "" {
				res.Fields[FieldPosition] = trimEdges(m[1])
				res.Fields[FieldCompany] = company
			}
		}
	}
	if !res.Has(FieldCompany) {
		if company := companyFromProse(res.Lines); company != "" {
			res.Fields[FieldCompany] = company
		}
	}
	if !res.Has(FieldContact) {
		switch {
		case len(res.Phones) > 0:
			res.Fields[FieldContact] = res.Phones[0]
		case len(res.Emails) > 0:
			res.Fields[FieldContact] = res.Emails[0]
		}
	}
	if !res.Has(FieldApplyLink) {
		if u := urlRegex.FindString(text); u != "" {
			res.Fields[FieldApplyLink] = strings.TrimRight(u, ".,;:!?)")
		}
	}
	if !res.Has(FieldJobType) {
		if jt := jobTypeRegex.FindString(text); jt != "" {
			res.Fields[FieldJobType] = jt
		}
	}
}

func uniqueMatches(re *regexp.Regexp, text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range re.FindAllString(text, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// tagSet keeps the first spelling of each tag, in order.
type tagSet struct {
	seen map[string]bool
	list []string
}

func (s *tagSet) add(raw string) {
	t := trimEdges(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if t == "" {
		return
	}
	key := strings.ToLower(t)
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.list = append(s.list, t)
}

// Populated returns the extracted fields in vocabulary order.
func (r *Result) Populated() []Field {
	var out []Field
	for _, l := range Vocabulary {
		if r.Has(l.Field) {
			out = append(out, l.Field)
		}
	}
	return out
}

// SortedFields lists the extracted field names alphabetically, for logs.
func (r *Result) SortedFields() []string {
	out := make([]string, 0, len(r.Fields))
	for f, v := range r.Fields {
		if v != "" {
			out = append(out, string(f))
		}
	}
	sort.Strings(out)
	return out
}
