package interview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/candidate-evaluator/internal/recommendation"
)

func TestConsistency(t *testing.T) {
	assert.Equal(t, 100.0, Consistency([]float64{9, 9, 9}))
	assert.Equal(t, 100.0, Consistency([]float64{4}))
	assert.Equal(t, 100.0, Consistency(nil))

	spread := Consistency([]float64{2, 9, 10})
	assert.GreaterOrEqual(t, spread, 0.0)
	assert.Less(t, spread, 100.0)

	// sample variance of {7, 8} is 0.5
	assert.InDelta(t, 95.0, Consistency([]float64{7, 8}), 0.001)
}

func TestLevelAndRecommend(t *testing.T) {
	tests := []struct {
		score  float64
		level  PerformanceLevel
		hiring recommendation.Hiring
	}{
		{score: 9, level: Excellent, hiring: recommendation.StrongHire},
		{score: 8.5, level: Excellent, hiring: recommendation.StrongHire},
		{score: 8.49, level: Good, hiring: recommendation.Hire},
		{score: 7, level: Good, hiring: recommendation.Hire},
		{score: 5.5, level: Fair, hiring: recommendation.Consider},
		{score: 5.49, level: Poor, hiring: recommendation.Reject},
		{score: 0, level: Poor, hiring: recommendation.Reject},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, Level(tt.score), "score %v", tt.score)
		assert.Equal(t, tt.hiring, Recommend(tt.score), "score %v", tt.score)
	}
}

func TestAggregateSkipsEmptyPairs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	scorer := NewScorer(nil, zap.New(core))

	result := scorer.Aggregate([]Pair{
		{Question: "Describe a technical project", Response: strings.Repeat("a", 320)},
		{Question: "", Response: "orphan answer"},
		{Question: "How do you handle conflict?", Response: "   "},
		{Question: "Tell me about a failure", Response: strings.Repeat("b", 160)},
	})

	require.Len(t, result.IndividualScores, 2)
	assert.Equal(t, 0, result.IndividualScores[0].QuestionIndex)
	assert.Equal(t, 3, result.IndividualScores[1].QuestionIndex)
	assert.Equal(t, 2, result.OverallAssessment.TotalQuestions)
	assert.Equal(t, 2, result.OverallAssessment.SkippedQuestions)
	assert.InDelta(t, 7.5, result.OverallAssessment.OverallScore, 0.001)
	assert.Equal(t, Good, result.OverallAssessment.PerformanceLevel)
	assert.Equal(t, recommendation.Hire, result.OverallAssessment.Recommendation)

	entries := logs.FilterMessage("skipping interview pair").All()
	require.Len(t, entries, 2)
	assert.EqualValues(t, 1, entries[0].ContextMap()["question_index"])
	assert.EqualValues(t, 2, entries[1].ContextMap()["question_index"])
}

func TestAggregateStatistics(t *testing.T) {
	scorer := NewScorer(nil, zap.NewNop())

	result := scorer.Aggregate([]Pair{
		{Question: "q1", Response: strings.Repeat("a", 20)},
		{Question: "q2", Response: strings.Repeat("a", 100)},
		{Question: "q3", Response: strings.Repeat("a", 400)},
	})

	stats := result.SummaryStatistics
	assert.Equal(t, map[PerformanceLevel]int{Excellent: 0, Good: 1, Fair: 0, Poor: 2}, stats.ScoreDistribution)
	assert.InDelta(t, 5.33, stats.CriteriaAverages[TechnicalKnowledge], 0.001)
	assert.InDelta(t, 6.33, stats.CriteriaAverages[Communication], 0.001)
	assert.InDelta(t, 6.0, stats.CriteriaAverages[CulturalFit], 0.001)
	assert.InDelta(t, 173.33, stats.ResponseQuality.AverageLength, 0.001)
	assert.Equal(t, 20, stats.ResponseQuality.MinLength)
	assert.Equal(t, 400, stats.ResponseQuality.MaxLength)

	overall := result.OverallAssessment
	assert.InDelta(t, 5.33, overall.OverallScore, 0.001)
	assert.Equal(t, Poor, overall.PerformanceLevel)
	assert.Equal(t, []string{"Heuristic scoring used"}, overall.TopStrengths)
	assert.Equal(t, []string{"Detailed analysis unavailable"}, overall.TopWeaknesses)

	// scores 3, 5, 8 have sample variance 6.33
	assert.InDelta(t, 36.67, overall.ConsistencyScore, 0.001)
	assert.Equal(t, []string{
		"Poor interview performance - recommend rejection",
		"Consider providing constructive feedback",
		"Inconsistent performance across questions - investigate further",
		"Focus on improving technical knowledge skills",
		"Focus on improving problem solving skills",
	}, result.Recommendations)
}

func TestAggregateNoValidPairs(t *testing.T) {
	result := NewScorer(nil, nil).Aggregate([]Pair{{Question: "q", Response: ""}})

	assert.Empty(t, result.IndividualScores)
	assert.Equal(t, 0.0, result.OverallAssessment.OverallScore)
	assert.Equal(t, Poor, result.OverallAssessment.PerformanceLevel)
	assert.Equal(t, 100.0, result.OverallAssessment.ConsistencyScore)
	assert.Equal(t, recommendation.Reject, result.OverallAssessment.Recommendation)
	assert.Empty(t, result.SummaryStatistics.CriteriaAverages)
	assert.Equal(t, []string{
		"Poor interview performance - recommend rejection",
		"Consider providing constructive feedback",
	}, result.Recommendations)
}

func TestMostCommonKeepsFirstSeenOrderOnTies(t *testing.T) {
	items := []string{"b", "a", "c", "a", "d", "c"}
	assert.Equal(t, []string{"a", "c", "b"}, mostCommon(items, 3))
	assert.Empty(t, mostCommon(nil, 3))
}
