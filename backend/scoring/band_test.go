package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ieltscheck/backend/models"
)

func TestBandScore(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		expected   float64
	}{
		{"full marks", 100, 9.0},
		{"top threshold exact", 90, 9.0},
		{"just under top threshold", 89.999, 8.0},
		{"eighty five percent", 85, 8.0},
		{"eighty exact", 80, 8.0},
		{"seventy", 70, 7.0},
		{"sixty", 60, 6.0},
		{"fifty", 50, 5.0},
		{"forty", 40, 4.0},
		{"thirty", 30, 3.0},
		{"twenty five", 25, 2.0},
		{"twenty exact", 20, 2.0},
		{"fifteen", 15, 1.0},
		{"zero", 0, 1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BandScore(tc.percentage))
		})
	}
}

func TestBandScore_MonotonicAndBounded(t *testing.T) {
	prev := 0.0
	for p := 0.0; p <= 100; p += 0.5 {
		band := BandScore(p)
		assert.GreaterOrEqual(t, band, prev, "band must not decrease at %.1f%%", p)
		assert.GreaterOrEqual(t, band, 1.0)
		assert.LessOrEqual(t, band, 9.0)
		prev = band
	}
}

func TestFeedback_Tiers(t *testing.T) {
	tests := []struct {
		band     float64
		contains string
	}{
		{9.0, "Excellent"},
		{8.0, "Excellent"},
		{7.0, "Good work"},
		{6.5, "Good work"},
		{5.0, "Average"},
		{4.0, "more preparation"},
		{1.0, "more preparation"},
	}

	for _, tc := range tests {
		got := Feedback(tc.band, models.TestTypeListening)
		assert.Contains(t, got, tc.contains, "band %.1f", tc.band)
		assert.Contains(t, got, "Listening")
	}
}
