package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "English",
			text:     "We are hiring a farm manager for our dairy unit in Pune. Interested candidates can apply with their resume.",
			expected: "en",
		},
		{
			name:     "Tamil",
			text:     "விவசாய துறையில் புதிய வேலை வாய்ப்புகள் அறிவிக்கப்பட்டுள்ளன",
			expected: "ta",
		},
		{
			name:     "Empty",
			text:     "  ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.text))
		})
	}
}
