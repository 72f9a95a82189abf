package sanitize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-updates/internal/generator"
)

func TestGeneratedBodiesConform(t *testing.T) {
	p := generator.New(generator.WithLanguageDetector(func(string) string { return "" }))
	inputs := []string{
		"Hiring: Sales Executive at The Coco Brothers. Location: Coimbatore. Salary: ₹10,000. Contact: 7448527844",
		"Kisan Seeds is hiring.\n- Two wheeler\nEmail: hr@kisan.in\nApply Link: https://kisan.in/jobs",
		"asdkjalksdj",
	}
	for _, in := range inputs {
		post := p.Run(context.Background(), in).Post
		v, err := Violations(post.Content)
		require.NoError(t, err)
		assert.Empty(t, v, "input %q", in)
	}
}

func TestViolations(t *testing.T) {
	v, err := Violations(`<p onclick="x()">Hi</p><script>alert(1)</script><a href="javascript:alert(1)">x</a><font>y</font>`)
	require.NoError(t, err)
	assert.Equal(t, []Violation{
		{Tag: "a", Attr: "href"},
		{Tag: "font"},
		{Tag: "p", Attr: "onclick"},
		{Tag: "script"},
	}, v)
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "drops scripts with content",
			input:    `<p>Hi</p><script>alert(1)</script>`,
			expected: `<p>Hi</p>`,
		},
		{
			name:     "unwraps unknown tags",
			input:    `<p><font color="red">Pune</font> office</p>`,
			expected: `<p>Pune office</p>`,
		},
		{
			name:     "strips event handlers and unsafe links",
			input:    `<a href="javascript:alert(1)" onclick="x()" target="_blank">x</a>`,
			expected: `<a target="_blank">x</a>`,
		},
		{
			name:     "keeps allowed markup",
			input:    `<h2>Summary</h2><table><thead><tr><th>Field</th></tr></thead><tbody><tr><td><a href="mailto:hr@agro.in">hr@agro.in</a></td></tr></tbody></table>`,
			expected: `<h2>Summary</h2><table><thead><tr><th>Field</th></tr></thead><tbody><tr><td><a href="mailto:hr@agro.in">hr@agro.in</a></td></tr></tbody></table>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clean(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
