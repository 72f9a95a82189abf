package generator

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"agri-updates/internal/extract"
	"agri-updates/internal/models"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		category models.Category
		text     string
		expected string
	}{
		{"position and company", models.CategoryJobs, "Position: Agronomist\nCompany: Kisan Seeds", "Agronomist at Kisan Seeds"},
		{"position only", models.CategoryJobs, "Position: Agronomist", "Agronomist – Private Agri Company"},
		{"company only", models.CategoryJobs, "Company: Kisan Seeds", "Kisan Seeds – Agricultural Professional"},
		{"headline", models.CategoryJobs, "Dairy farm in Anand needs experienced milkers urgently.", "Dairy farm in Anand needs experienced milkers urgently"},
		{"nothing", models.CategoryJobs, "hello", "New Opportunity – Agricultural Professional"},
		{"scholarship title field", models.CategoryScholarships, "Title: ICAR PG Scholarship 2025", "ICAR PG Scholarship 2025"},
		{"scholarship fallback", models.CategoryScholarships, "apply", "Scholarships Update for Agricultural Professionals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract.Extract(tt.text)
			assert.Equal(t, tt.expected, Title(tt.category, res, Headline(res)))
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Sales Executive at The Coco Brothers", "sales-executive-at-the-coco-brothers"},
		{"Agronomist – Private Agri Company", "agronomist-private-agri-company"},
		{"  --Hello,   World!--  ", "hello-world"},
		{"Café Manager (Pune)", "cafe-manager-pune"},
		{"₹10,000 stipend", "10000-stipend"},
		{"!!!", ""},
		{"कृषि", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Slug(tt.title)
			assert.Equal(t, tt.expected, got)
			if got != "" {
				assert.Regexp(t, slugPattern, got)
			}
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	assert.Equal(t, "farm-manager-loyw3v28", UniqueSlug("farm-manager", ts))
	assert.Equal(t, "post-loyw3v28", UniqueSlug("", ts))
}

func TestExcerpt(t *testing.T) {
	t.Run("first two prose sentences", func(t *testing.T) {
		res := extract.Extract("We are hiring field officers in Nashik. Two wheeler is a must. Fuel allowance is paid monthly.\nLocation: Nashik")
		assert.Equal(t, "We are hiring field officers in Nashik. Two wheeler is a must.", Excerpt(models.CategoryJobs, res))
	})

	t.Run("word safe truncation", func(t *testing.T) {
		long := strings.Repeat("agriculture graduates wanted ", 20)
		got := Excerpt(models.CategoryJobs, extract.Extract(long))
		assert.LessOrEqual(t, utf8.RuneCountInString(got), maxExcerptLen+1)
		assert.True(t, strings.HasSuffix(got, "…"))
		body := strings.TrimSuffix(got, "…")
		assert.True(t, strings.HasSuffix(body, "agriculture") || strings.HasSuffix(body, "graduates") || strings.HasSuffix(body, "wanted"))
	})

	t.Run("no word boundary in range falls back to template", func(t *testing.T) {
		long := "https://agri.example.org/" + strings.Repeat("x", 250) + " lists openings for all graduates."
		res := extract.Extract(long + "\nPosition: Agronomist")
		assert.Equal(t, "Opening for an Agronomist.", Excerpt(models.CategoryJobs, res))
	})

	t.Run("template from fields", func(t *testing.T) {
		res := extract.Extract("Position: Agronomist\nLast date: 15/03/2025")
		assert.Equal(t, "Opening for an Agronomist. Last date: 15/03/2025.", Excerpt(models.CategoryJobs, res))
	})

	t.Run("template without fields", func(t *testing.T) {
		res := extract.Extract("hello")
		assert.Equal(t, "New events update for agricultural professionals. Read the details below.", Excerpt(models.CategoryEvents, res))
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{name: "short enough", input: "Farm manager", n: 20, expected: "Farm manager"},
		{name: "cut at previous space", input: "Farm manager wanted urgently", n: 16, expected: "Farm manager…"},
		{name: "cut lands on a space", input: "Farm manager wanted", n: 12, expected: "Farm manager…"},
		{name: "trailing punctuation dropped", input: "Farm manager, Nashik", n: 15, expected: "Farm manager…"},
		{name: "single long token", input: "https://agri.example.org/jobs/123", n: 10, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.input, tt.n))
		})
	}
}

func TestIsGeneric(t *testing.T) {
	m := DefaultMarkers()
	details := func(company, location string) *models.JobDetails {
		return &models.JobDetails{Company: company, Location: location}
	}

	assert.True(t, m.IsGeneric(models.GeneratedPost{Title: "x", JobDetails: details(FallbackCompany, "Pune")}))
	assert.True(t, m.IsGeneric(models.GeneratedPost{Title: "x", JobDetails: details("Kisan Seeds", "pan india")}))
	assert.True(t, m.IsGeneric(models.GeneratedPost{Title: "Kisan Seeds – Agricultural Professional"}))
	assert.False(t, m.IsGeneric(models.GeneratedPost{Title: "Agronomist at Kisan Seeds", JobDetails: details("Kisan Seeds", "Indore")}))
}

func TestMarkersExtend(t *testing.T) {
	m := DefaultMarkers().Extend(GenericMarkers{
		Companies: []string{"private agri company", "Confidential"},
		Locations: []string{""},
	})
	assert.Equal(t, []string{FallbackCompany, "Confidential"}, m.Companies)
	assert.Equal(t, []string{FallbackLocation}, m.Locations)
}
