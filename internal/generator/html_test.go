package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"agri-updates/internal/extract"
	"agri-updates/internal/models"
)

func TestBody_Sections(t *testing.T) {
	text := strings.Join([]string{
		"Kisan Seeds is looking for a plant breeder.",
		"- Field trials across Madhya Pradesh",
		"- Two wheeler required",
		"Qualification: M.Sc. Plant Breeding",
		"Experience: 2 years",
		"Email: hr@kisanseeds.in",
		"Apply Link: https://kisanseeds.in/careers?a=1&b=2",
		"Last date: 30/04/2025",
		"#Agri #Seeds",
	}, "\n")
	res := extract.Extract(text)
	body := Body(models.CategoryJobs, res, "ignored")

	assert.True(t, strings.HasPrefix(body, "<h2>Job Overview</h2><p>Kisan Seeds is looking for a plant breeder.</p><ul><li>Field trials across Madhya Pradesh</li><li>Two wheeler required</li></ul>"))
	assert.Contains(t, body, "<h2>Eligibility</h2><ul><li><strong>Qualification:</strong> M.Sc. Plant Breeding</li><li><strong>Experience:</strong> 2 years</li></ul>")
	assert.Contains(t, body, `<a href="mailto:hr@kisanseeds.in">hr@kisanseeds.in</a>`)
	assert.Contains(t, body, `<a href="https://kisanseeds.in/careers?a=1&amp;b=2" target="_blank" rel="noopener noreferrer">`)
	assert.Contains(t, body, "<tr><td>Deadline</td><td>30/04/2025</td></tr>")
	assert.Contains(t, body, "<tr><td>Tags</td><td>Agri, Seeds</td></tr>")
	assert.NotContains(t, body, "Additional Details")
	assert.True(t, strings.HasSuffix(body, Disclaimer+"</p></div>"))
}

func TestBody_OverviewFromExcerpt(t *testing.T) {
	res := extract.Extract("Position: Agronomist")
	body := Body(models.CategoryJobs, res, "Opening for an Agronomist.")
	assert.Contains(t, body, "<h2>Job Overview</h2><p>Opening for an Agronomist.</p>")

	res = extract.Extract("")
	body = Body(models.CategoryResearch, res, "unused")
	assert.NotContains(t, body, "Overview")
	assert.Contains(t, body, "<tr><td>Category</td><td>Research</td></tr>")
}

func TestBody_AdditionalDetails(t *testing.T) {
	res := extract.Extract("Salary: ₹18,000. Age limit: 35 years")
	body := Body(models.CategoryJobs, res, "")

	assert.Contains(t, body, "<h2>Additional Details</h2><ul><li>Salary: ₹18,000. Age limit: 35 years</li></ul>")

	// 2,000 sits inside ₹12,000 but is a separate figure
	res = extract.Extract("Salary: ₹12,000. Travel allowance 2,000 per month")
	body = Body(models.CategoryJobs, res, "")

	assert.Contains(t, body, "<li>Salary: ₹12,000. Travel allowance 2,000 per month</li>")

	res = extract.Extract("Salary: ₹12,000\nContact: 98765 43210")
	body = Body(models.CategoryJobs, res, "")

	assert.NotContains(t, body, "Additional Details")

	res = extract.Extract(extract.BlockBegin + "\nPOSITION: Agronomist\nVACANCIES: 12\n" + extract.BlockEnd)
	body = Body(models.CategoryJobs, res, "")

	assert.Contains(t, body, "<li>VACANCIES: 12</li>")
	assert.NotContains(t, body, "STRUCTURED DATA")
}

func TestBody_EscapesValues(t *testing.T) {
	res := extract.Extract("Company: Tom & Jerry <Agro> Ltd")
	body := Body(models.CategoryJobs, res, "")
	assert.Contains(t, body, "Tom &amp; Jerry &lt;Agro&gt; Ltd")
	assert.NotContains(t, body, "<Agro>")
}
