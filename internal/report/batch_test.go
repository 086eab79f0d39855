package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBatch() Batch {
	builder := NewBuilder(nil, nil, 0)
	return Batch{
		{Name: "jane", Report: builder.Build(context.Background(), "jane", strongCV(), goodInterview(), nil)},
		{Name: "bob", Report: builder.Build(context.Background(), "bob", weakCV(), poorInterview(), nil)},
		{Name: "ghost", Error: "Failed to read input files"},
	}
}

func TestBatchSummary(t *testing.T) {
	md := testBatch().Summary()

	assert.Contains(t, md, "**Total Candidates Evaluated:** 2\n")
	assert.Contains(t, md, "| jane | 80.0/100 | 8.0/10 | 80.0/100 | Hire |\n")
	assert.Contains(t, md, "| bob | 30.0/100 | 3.0/10 | 30.0/100 | Reject |\n")
	assert.Contains(t, md, "- **Hire**: 1 candidates (50.0%)\n")
	assert.Contains(t, md, "- **Reject**: 1 candidates (50.0%)\n")
	assert.Contains(t, md, "## Flagged Candidates\n\n- **ghost**: Failed to read input files\n")
	assert.NotContains(t, md, "| ghost |")
}

func TestBatchComparison(t *testing.T) {
	md := testBatch().Comparison()

	assert.Contains(t, md, "| Metric | jane | bob |\n|--------|---|---|\n")
	assert.Contains(t, md, "| CV Score | 80.0 | 30.0 |\n")
	assert.Contains(t, md, "| Final Recommendation | Hire | Reject |\n")
	assert.Contains(t, md, "| Risk Level | Low | Medium |\n")
	assert.Contains(t, md, "- **ghost**")
}

func TestBatchFinalRecommendations(t *testing.T) {
	md := testBatch().FinalRecommendations()

	assert.Contains(t, md, "### Hire Candidates\n\n- **jane**: Good fit, recommend offer with standard onboarding\n")
	assert.Contains(t, md, "### Reject Candidates\n\n- **bob**: Not a good fit")
	assert.NotContains(t, md, "### Strong Hire Candidates")
	assert.Contains(t, md, "- **ghost**: Failed to read input files")
}

func TestEmptyBatch(t *testing.T) {
	md := Batch{}.Summary()
	assert.Contains(t, md, "**Total Candidates Evaluated:** 0")
	assert.NotContains(t, md, "Flagged")
}
