package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		name      string
		cv        float64
		interview float64
		expect    Hiring
	}{
		{name: "just below strong hire", cv: 90, interview: 8, expect: Hire},
		{name: "strong hire", cv: 100, interview: 9, expect: StrongHire},
		{name: "consider", cv: 50, interview: 5.5, expect: Consider},
		{name: "reject", cv: 20, interview: 3, expect: Reject},
		{name: "zero scores", cv: 0, interview: 0, expect: Reject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Combine(tt.cv, tt.interview))
		})
	}
}

func TestWeightedScore(t *testing.T) {
	assert.InDelta(t, 84.0, WeightedScore(90, 8), 1e-9)
	assert.InDelta(t, 60.0, WeightedScore(0, 10), 1e-9)
	assert.InDelta(t, 40.0, WeightedScore(100, 0), 1e-9)
}

func TestPerformanceLabel(t *testing.T) {
	assert.Equal(t, "Excellent", PerformanceLabel(85))
	assert.Equal(t, "Good", PerformanceLabel(84.9))
	assert.Equal(t, "Fair", PerformanceLabel(50))
	assert.Equal(t, "Poor", PerformanceLabel(49.99))
}

func TestParseHiringAndRank(t *testing.T) {
	h, err := ParseHiring(" Hire ")
	require.NoError(t, err)
	assert.Equal(t, Hire, h)

	_, err = ParseHiring("maybe")
	assert.Error(t, err)

	assert.Greater(t, StrongHire.Rank(), Hire.Rank())
	assert.Greater(t, Consider.Rank(), ConsiderWithCaution.Rank())
	assert.Greater(t, ConsiderWithCaution.Rank(), Reject.Rank())
	assert.Equal(t, -1, Hiring("unknown").Rank())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Strong Hire", StrongHire.Title())
	assert.Equal(t, "Consider With Caution", ConsiderWithCaution.Title())
	assert.Equal(t, "Technical Knowledge", TitleLabel("technical_knowledge"))
}
