package generator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-updates/internal/models"
)

const cocoBrothers = "Hiring: Sales Executive at The Coco Brothers. Location: Coimbatore. Salary: ₹10,000. Contact: 7448527844"

// ── Fakes ──────────────────────────────────────────────────────────────────

type fakePolisher struct {
	out   string
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakePolisher) Polish(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.out, f.err
}

func newTestPipeline(opts ...Option) *Pipeline {
	base := []Option{WithLanguageDetector(func(string) string { return "en" })}
	return New(append(base, opts...)...)
}

func block(lines ...string) string {
	return "<p>---BEGIN STRUCTURED DATA---<br>" + strings.Join(lines, "<br>") + "<br>---END STRUCTURED DATA---</p>"
}

// ── End to end ─────────────────────────────────────────────────────────────

func TestRun_CocoBrothers(t *testing.T) {
	res := newTestPipeline().Run(context.Background(), cocoBrothers)
	post := res.Post

	assert.Equal(t, models.CategoryJobs, post.Category)
	require.NotNil(t, post.JobDetails)
	assert.Equal(t, "The Coco Brothers", post.JobDetails.Company)
	assert.Contains(t, post.JobDetails.Location, "Coimbatore")
	assert.Equal(t, "₹10,000", post.JobDetails.SalaryRange)
	assert.Equal(t, "7448527844", post.JobDetails.Contact)
	assert.Equal(t, "Sales Executive at The Coco Brothers", post.Title)
	assert.Equal(t, "sales-executive-at-the-coco-brothers", post.Slug)
	assert.Equal(t, "The Coco Brothers is hiring a Sales Executive in Coimbatore.", post.Excerpt)
	assert.Equal(t, "en", post.Language)

	assert.Contains(t, post.Content, "10,000")
	assert.Contains(t, post.Content, "<table>")
	assert.Contains(t, post.Content, Disclaimer)
	assert.Contains(t, post.Content, "<h2>How to Apply</h2>")
	assert.NotContains(t, post.Content, "<h2>Eligibility</h2>")

	assert.Equal(t, SourceOriginal, res.Source)
	assert.False(t, res.Retried)
	assert.Equal(t, []State{StateStart, StateNormalize, StateSkipPolish, StateExtract, StateValidate, StateAccept, StateDone}, res.Trace)
}

func TestRun_Garbage(t *testing.T) {
	res := newTestPipeline().Run(context.Background(), "asdkjalksdj")
	post := res.Post

	assert.Contains(t, []models.Category{models.CategoryResearch, models.CategoryJobs}, post.Category)
	assert.Contains(t, post.Content, Disclaimer)
	assert.Contains(t, post.Content, "<table>")
	assert.Equal(t, "New Opportunity – Agricultural Professional", post.Title)
	assert.Regexp(t, slugPattern, post.Slug)
}

func TestRun_EmptyInput(t *testing.T) {
	res := newTestPipeline().Run(context.Background(), "")
	assert.Contains(t, res.Post.Content, Disclaimer)
	assert.NotEmpty(t, res.Post.Title)
}

// ── Polish and retry ───────────────────────────────────────────────────────

func TestRun_PolishedAccepted(t *testing.T) {
	polisher := &fakePolisher{out: "<p>Kisan Seeds is hiring.</p>" +
		block("POSITION: Agronomist", "COMPANY: Kisan Seeds", "LOCATION: Indore")}

	res := newTestPipeline(WithPolisher(polisher)).Run(context.Background(), "agronomist wanted kisan seeds indore")

	assert.Equal(t, 1, polisher.calls)
	assert.Equal(t, SourcePolished, res.Source)
	assert.False(t, res.Retried)
	assert.Equal(t, "Agronomist at Kisan Seeds", res.Post.Title)
	assert.Equal(t, "Indore", res.Post.JobDetails.Location)
	assert.Equal(t, []State{StateStart, StateNormalize, StatePolish, StateExtract, StateValidate, StateAccept, StateDone}, res.Trace)
}

func TestRun_RetryConverges(t *testing.T) {
	polisher := &fakePolisher{out: "<p>We have an opening.</p>" +
		block("POSITION: Farm Manager", "COMPANY: N/A")}
	raw := "Company Name: Green Valley Farms\nPosition: Farm Manager\nLocation: Nashik"

	res := newTestPipeline(WithPolisher(polisher)).Run(context.Background(), raw)

	require.NotNil(t, res.Post.JobDetails)
	assert.NotEqual(t, FallbackCompany, res.Post.JobDetails.Company)
	assert.Equal(t, "Green Valley Farms", res.Post.JobDetails.Company)
	assert.Equal(t, "Nashik", res.Post.JobDetails.Location)
	assert.True(t, res.Retried)
	assert.Equal(t, SourceOriginal, res.Source)
	assert.Equal(t, []State{
		StateStart, StateNormalize, StatePolish,
		StateExtract, StateValidate, StateRetryWithOriginal,
		StateExtract, StateValidate, StateAccept, StateDone,
	}, res.Trace)
}

func TestRun_SecondGenericResultIsAccepted(t *testing.T) {
	polisher := &fakePolisher{out: block("POSITION: Farm Manager")}

	res := newTestPipeline(WithPolisher(polisher)).Run(context.Background(), "Position: Farm Manager")

	assert.True(t, res.Retried)
	assert.Equal(t, FallbackCompany, res.Post.JobDetails.Company)
	assert.Equal(t, 1, countState(res.Trace, StateRetryWithOriginal))
	assert.Equal(t, 2, countState(res.Trace, StateExtract))
	assert.Equal(t, StateDone, res.Trace[len(res.Trace)-1])
}

func TestRun_PolishFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		polisher *fakePolisher
	}{
		{name: "service error", polisher: &fakePolisher{err: errors.New("timeout")}},
		{name: "no block in output", polisher: &fakePolisher{out: "<p>Sales Executive at Some Other Place</p>"}},
		{name: "only polluted lines", polisher: &fakePolisher{out: block("SALARY: 10000 LOCATION: Delhi")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestPipeline(WithPolisher(tt.polisher)).Run(context.Background(), cocoBrothers)

			assert.Equal(t, SourceOriginal, res.Source)
			assert.False(t, res.Retried)
			assert.Equal(t, "The Coco Brothers", res.Post.JobDetails.Company)
			assert.Equal(t, []State{StateStart, StateNormalize, StatePolish, StateExtract, StateValidate, StateAccept, StateDone}, res.Trace)
		})
	}
}

func TestRun_PolishedFiguresMustMatchOriginal(t *testing.T) {
	raw := "Position: Field Officer\nCompany: Green Agro Pvt Ltd\nLocation: Nagpur\nSalary: ₹12,000"

	tests := []struct {
		name   string
		out    string
		source Source
		salary string
	}{
		{
			name:   "changed salary",
			out:    block("POSITION: Field Officer", "COMPANY: Green Agro Pvt Ltd", "LOCATION: Nagpur", "SALARY: ₹15,000 per month"),
			source: SourceOriginal,
			salary: "₹12,000",
		},
		{
			name:   "invented figure",
			out:    block("POSITION: Field Officer", "COMPANY: Green Agro Pvt Ltd", "LOCATION: Nagpur", "EXPERIENCE: 2 years"),
			source: SourceOriginal,
			salary: "₹12,000",
		},
		{
			name:   "figures kept verbatim",
			out:    block("POSITION: Field Officer", "COMPANY: Green Agro Pvt Ltd", "LOCATION: Nagpur", "SALARY: ₹12,000 per month"),
			source: SourcePolished,
			salary: "₹12,000 per month",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestPipeline(WithPolisher(&fakePolisher{out: tt.out})).Run(context.Background(), raw)

			assert.Equal(t, tt.source, res.Source)
			require.NotNil(t, res.Post.JobDetails)
			assert.Equal(t, tt.salary, res.Post.JobDetails.SalaryRange)
			assert.NotContains(t, res.Post.Content, "15,000")
		})
	}
}

func TestRun_CustomMarkers(t *testing.T) {
	polisher := &fakePolisher{out: block("POSITION: Agronomist", "COMPANY: Confidential", "LOCATION: Indore")}
	markers := DefaultMarkers().Extend(GenericMarkers{Companies: []string{"Confidential"}})
	raw := "Position: Agronomist\nCompany: Kisan Seeds\nLocation: Indore"

	res := newTestPipeline(WithPolisher(polisher), WithMarkers(markers)).Run(context.Background(), raw)

	assert.True(t, res.Retried)
	assert.Equal(t, "Kisan Seeds", res.Post.JobDetails.Company)
}

// ── Properties ─────────────────────────────────────────────────────────────

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestRun_FactsArePreserved(t *testing.T) {
	raw := "🌾 *Job Role:* Field Officer\nStipend: ₹31,000 per month + HRA 24%\nExperience: 2-3 yrs. Age below 35\nLast date to apply: 20/03/2025\nCall 98765 43210"
	post := newTestPipeline().Run(context.Background(), raw).Post

	for _, tok := range []string{"31,000", "24", "2-3", "35", "20/03/2025", "98765 43210"} {
		assert.Contains(t, post.Content, tok, "token %q", tok)
	}
}

func TestRun_FigureInsideLongerValueIsKept(t *testing.T) {
	raw := "Position: Field Officer\nCompany: Green Agro Pvt Ltd\nSalary: ₹12,000. Travel allowance 2,000 per month\nContact: 9876543210"

	res := newTestPipeline().Run(context.Background(), raw)

	assert.Equal(t, "₹12,000", res.Post.JobDetails.SalaryRange)
	assert.Contains(t, res.Post.Content, "Travel allowance 2,000 per month")
}

func TestRun_DisclaimerAlwaysPresent(t *testing.T) {
	inputs := []string{
		"",
		"asdkjalksdj",
		cocoBrothers,
		"<p>ICAR PG Scholarship 2025</p><p>Amount: ₹12,400 per month</p>",
		"Beware of fake recruitment calls",
	}
	p := newTestPipeline()
	for _, in := range inputs {
		post := p.Run(context.Background(), in).Post
		assert.Contains(t, post.Content, Disclaimer, "input %q", in)
	}
}

func TestRun_Concurrent(t *testing.T) {
	p := newTestPipeline(WithPolisher(&fakePolisher{out: block("POSITION: Farm Manager")}))
	inputs := []string{cocoBrothers, "asdkjalksdj", "Company Name: Green Valley Farms\nPosition: Farm Manager"}

	want := make([]models.GeneratedPost, len(inputs))
	for i, in := range inputs {
		want[i] = p.Run(context.Background(), in).Post
	}

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		for i, in := range inputs {
			wg.Add(1)
			go func(i int, in string) {
				defer wg.Done()
				got := p.Run(context.Background(), in).Post
				assert.Equal(t, want[i], got, fmt.Sprintf("input %d", i))
			}(i, in)
		}
	}
	wg.Wait()
}

func countState(trace []State, s State) int {
	n := 0
	for _, st := range trace {
		if st == s {
			n++
		}
	}
	return n
}
