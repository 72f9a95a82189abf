package generator

import (
	"html"
	"strings"

	"agri-updates/internal/extract"
	"agri-updates/internal/models"
)

// Disclaimer closes every generated body.
const Disclaimer = "Agri Updates shares opportunities sourced from trusted networks. Applicants are advised to verify all details directly with the issuing organisation before submission."

var (
	eligibilityFields = []extract.Field{extract.FieldQualification, extract.FieldExperience}
	applyFields       = []extract.Field{extract.FieldContact, extract.FieldApplyLink, extract.FieldDeadline}
)

// Body assembles the HTML content: overview, eligibility, how to apply,
// additional details, a summary table and the disclaimer. Sections without
// content are left out; the table and disclaimer are always present.
func Body(cat models.Category, res *extract.Result, excerpt string) string {
	var b strings.Builder

	writeOverview(&b, cat, res, excerpt)
	writeFieldList(&b, "Eligibility", res, eligibilityFields)
	writeFieldList(&b, "How to Apply", res, applyFields)
	writeAdditional(&b, res)
	writeSummary(&b, cat, res)

	b.WriteString(`<div class="disclaimer"><p><strong>Disclaimer:</strong> `)
	b.WriteString(Disclaimer)
	b.WriteString("</p></div>")
	return b.String()
}

func writeOverview(b *strings.Builder, cat models.Category, res *extract.Result, excerpt string) {
	heading := "Overview"
	if cat.IsJobLike() {
		heading = "Job Overview"
	}

	var body strings.Builder
	inList := false
	for _, l := range res.Lines {
		switch l.Kind {
		case extract.KindProse:
			if inList {
				body.WriteString("</ul>")
				inList = false
			}
			body.WriteString("<p>" + esc(l.Text) + "</p>")
		case extract.KindBullet:
			if !inList {
				body.WriteString("<ul>")
				inList = true
			}
			body.WriteString("<li>" + esc(l.Text) + "</li>")
		}
	}
	if inList {
		body.WriteString("</ul>")
	}
	if body.Len() == 0 && len(res.Populated()) > 0 {
		body.WriteString("<p>" + esc(excerpt) + "</p>")
	}
	if body.Len() == 0 {
		return
	}
	b.WriteString("<h2>" + heading + "</h2>")
	b.WriteString(body.String())
}

func writeFieldList(b *strings.Builder, heading string, res *extract.Result, fields []extract.Field) {
	var items []string
	for _, f := range fields {
		v := res.Get(f)
		if v == "" {
			continue
		}
		label, _ := extract.LookupLabel(f)
		items = append(items, "<li><strong>"+esc(label.Display)+":</strong> "+fieldHTML(f, v)+"</li>")
	}
	if len(items) == 0 {
		return
	}
	b.WriteString("<h2>" + heading + "</h2><ul>")
	b.WriteString(strings.Join(items, ""))
	b.WriteString("</ul>")
}

// writeAdditional keeps labeled lines carrying a figure that no extracted
// value holds as a whole token, so no figure from the input is lost.
func writeAdditional(b *strings.Builder, res *extract.Result) {
	values := make([]string, 0, len(res.Fields))
	for _, v := range res.Fields {
		values = append(values, v)
	}
	have := extract.FigureSet(values...)

	var items []string
	for _, l := range res.Lines {
		if l.Kind != extract.KindLabel && l.Kind != extract.KindBlock {
			continue
		}
		if l.Text == extract.BlockBegin || l.Text == extract.BlockEnd {
			continue
		}
		for _, tok := range extract.Figures(l.Text) {
			if !have[tok] {
				items = append(items, "<li>"+esc(l.Text)+"</li>")
				break
			}
		}
	}
	if len(items) == 0 {
		return
	}
	b.WriteString("<h2>Additional Details</h2><ul>")
	b.WriteString(strings.Join(items, ""))
	b.WriteString("</ul>")
}

func writeSummary(b *strings.Builder, cat models.Category, res *extract.Result) {
	b.WriteString("<h2>Summary</h2><table><thead><tr><th>Field</th><th>Details</th></tr></thead><tbody>")
	writeRow(b, "Category", esc(string(cat)))
	for _, f := range res.Populated() {
		label, _ := extract.LookupLabel(f)
		writeRow(b, label.Display, fieldHTML(f, res.Get(f)))
	}
	if len(res.Tags) > 0 {
		writeRow(b, "Tags", esc(strings.Join(res.Tags, ", ")))
	}
	b.WriteString("</tbody></table>")
}

func writeRow(b *strings.Builder, name, valueHTML string) {
	b.WriteString("<tr><td>" + esc(name) + "</td><td>" + valueHTML + "</td></tr>")
}

// fieldHTML escapes a value, linking URLs and email addresses.
func fieldHTML(f extract.Field, v string) string {
	switch {
	case f == extract.FieldApplyLink && isHTTPURL(v):
		return `<a href="` + esc(v) + `" target="_blank" rel="noopener noreferrer">` + esc(v) + "</a>"
	case f == extract.FieldContact && isEmail(v):
		return `<a href="mailto:` + esc(v) + `">` + esc(v) + "</a>"
	default:
		return esc(v)
	}
}

func isHTTPURL(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}

func isEmail(v string) bool {
	return !strings.ContainsAny(v, " \t") && strings.Count(v, "@") == 1 && strings.Contains(v[strings.Index(v, "@"):], ".")
}

func esc(s string) string {
	return html.EscapeString(s)
}
