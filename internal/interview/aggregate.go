package interview

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/recommendation"
	"github.com/spigell/candidate-evaluator/internal/utils"
)

// ErrEmptyPair marks a question/response pair skipped during aggregation.
var ErrEmptyPair = errors.New("empty question or response")

// PerformanceLevel bands an interview score.
type PerformanceLevel string

const (
	Excellent PerformanceLevel = "excellent"
	Good      PerformanceLevel = "good"
	Fair      PerformanceLevel = "fair"
	Poor      PerformanceLevel = "poor"
)

const (
	topItems           = 3
	maxRecommendations = 5
	lowConsistency     = 70
	weakCriterion      = 6.0
)

var levelRecommendations = map[PerformanceLevel][]string{
	Excellent: {
		"Strong technical interview performance - proceed to next round",
		"Consider fast-track hiring process",
	},
	Good: {
		"Solid interview performance - recommend for next stage",
		"Schedule follow-up technical assessment if needed",
	},
	Fair: {
		"Moderate interview performance - consider additional assessments",
		"Review specific areas of weakness before proceeding",
	},
	Poor: {
		"Poor interview performance - recommend rejection",
		"Consider providing constructive feedback",
	},
}

// Pair is one question with the candidate's answer.
type Pair struct {
	Question string `json:"question" yaml:"question" mapstructure:"question"`
	Response string `json:"response" yaml:"response" mapstructure:"response"`
}

// Overall summarises all scored answers.
type Overall struct {
	OverallScore     float64               `json:"overall_score" yaml:"overall_score"`
	PerformanceLevel PerformanceLevel      `json:"performance_level" yaml:"performance_level"`
	ConsistencyScore float64               `json:"consistency_score" yaml:"consistency_score"`
	Recommendation   recommendation.Hiring `json:"recommendation" yaml:"recommendation"`
	TopStrengths     []string              `json:"top_strengths" yaml:"top_strengths"`
	TopWeaknesses    []string              `json:"top_weaknesses" yaml:"top_weaknesses"`
	TotalQuestions   int                   `json:"total_questions" yaml:"total_questions"`
	SkippedQuestions int                   `json:"skipped_questions" yaml:"skipped_questions"`
}

// ResponseQuality describes answer lengths in characters.
type ResponseQuality struct {
	AverageLength float64 `json:"average_length" yaml:"average_length"`
	MinLength     int     `json:"min_length" yaml:"min_length"`
	MaxLength     int     `json:"max_length" yaml:"max_length"`
}

// Statistics holds aggregate figures over the scored answers.
type Statistics struct {
	ScoreDistribution map[PerformanceLevel]int `json:"score_distribution" yaml:"score_distribution"`
	CriteriaAverages  map[string]float64       `json:"criteria_averages" yaml:"criteria_averages"`
	ResponseQuality   ResponseQuality          `json:"response_quality" yaml:"response_quality"`
}

// Result is the aggregate of a whole interview.
type Result struct {
	IndividualScores  []Score    `json:"individual_scores" yaml:"individual_scores"`
	OverallAssessment Overall    `json:"overall_assessment" yaml:"overall_assessment"`
	SummaryStatistics Statistics `json:"summary_statistics" yaml:"summary_statistics"`
	Recommendations   []string   `json:"recommendations" yaml:"recommendations"`
	ScoredAt          time.Time  `json:"scored_at" yaml:"scored_at"`
}

// Scorer scores interviews with a fixed set of criteria.
type Scorer struct {
	criteria []string
	logger   *zap.Logger
	now      func() time.Time
}

// NewScorer creates a Scorer. Empty criteria fall back to DefaultCriteria.
func NewScorer(criteria []string, logger *zap.Logger) *Scorer {
	if len(criteria) == 0 {
		criteria = DefaultCriteria
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{criteria: criteria, logger: logger, now: time.Now}
}

// Score scores a single answer.
func (s *Scorer) Score(question, response string) Score {
	return ScoreResponse(question, response, s.criteria)
}

// Aggregate scores every pair and summarises them. Pairs with an empty question or response are
// skipped with a warning.
func (s *Scorer) Aggregate(pairs []Pair) Result {
	scores := make([]Score, 0, len(pairs))
	skipped := 0

	for i, pair := range pairs {
		if strings.TrimSpace(pair.Question) == "" || strings.TrimSpace(pair.Response) == "" {
			skipped++
			s.logger.Warn("skipping interview pair",
				zap.Int("question_index", i),
				zap.Error(ErrEmptyPair),
			)
			continue
		}

		score := s.Score(pair.Question, pair.Response)
		score.QuestionIndex = i
		scores = append(scores, score)
	}

	overall := overallAssessment(scores)
	overall.SkippedQuestions = skipped
	stats := statistics(scores)

	s.logger.Debug("interview aggregated",
		zap.Int("scored", len(scores)),
		zap.Int("skipped", skipped),
		zap.Float64("overall_score", overall.OverallScore),
	)

	return Result{
		IndividualScores:  scores,
		OverallAssessment: overall,
		SummaryStatistics: stats,
		Recommendations:   recommendations(overall, stats),
		ScoredAt:          s.now().UTC(),
	}
}

// Level bands an interview score.
func Level(score float64) PerformanceLevel {
	switch {
	case score >= 8.5:
		return Excellent
	case score >= 7.0:
		return Good
	case score >= 5.5:
		return Fair
	default:
		return Poor
	}
}

// Recommend maps an interview score to a hiring category using the same bands as Level.
func Recommend(score float64) recommendation.Hiring {
	switch Level(score) {
	case Excellent:
		return recommendation.StrongHire
	case Good:
		return recommendation.Hire
	case Fair:
		return recommendation.Consider
	default:
		return recommendation.Reject
	}
}

// Consistency is 100 minus ten times the sample variance of scores, floored at 0. Fewer than two
// scores are perfectly consistent.
func Consistency(scores []float64) float64 {
	if len(scores) < 2 {
		return 100
	}

	mean := 0.0
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	sum := 0.0
	for _, s := range scores {
		sum += (s - mean) * (s - mean)
	}
	variance := sum / float64(len(scores)-1)

	return utils.Round(math.Max(0, 100-variance*10), 2)
}

func overallAssessment(scores []Score) Overall {
	values := make([]float64, 0, len(scores))
	var strengths, weaknesses []string
	for _, score := range scores {
		values = append(values, float64(score.OverallScore))
		strengths = append(strengths, score.Strengths...)
		weaknesses = append(weaknesses, score.Weaknesses...)
	}

	average := 0.0
	if len(values) > 0 {
		for _, v := range values {
			average += v
		}
		average /= float64(len(values))
	}

	return Overall{
		OverallScore:     utils.Round(average, 2),
		PerformanceLevel: Level(average),
		ConsistencyScore: Consistency(values),
		Recommendation:   Recommend(average),
		TopStrengths:     mostCommon(strengths, topItems),
		TopWeaknesses:    mostCommon(weaknesses, topItems),
		TotalQuestions:   len(scores),
	}
}

func statistics(scores []Score) Statistics {
	stats := Statistics{
		ScoreDistribution: map[PerformanceLevel]int{Excellent: 0, Good: 0, Fair: 0, Poor: 0},
		CriteriaAverages:  make(map[string]float64),
	}
	if len(scores) == 0 {
		return stats
	}

	totals := make(map[string]float64)
	counts := make(map[string]int)
	lengthTotal := 0
	stats.ResponseQuality.MinLength = scores[0].ResponseLength

	for _, score := range scores {
		stats.ScoreDistribution[Level(float64(score.OverallScore))]++

		for criterion, value := range score.CriteriaScores {
			totals[criterion] += float64(value)
			counts[criterion]++
		}

		lengthTotal += score.ResponseLength
		stats.ResponseQuality.MinLength = min(stats.ResponseQuality.MinLength, score.ResponseLength)
		stats.ResponseQuality.MaxLength = max(stats.ResponseQuality.MaxLength, score.ResponseLength)
	}

	for criterion, total := range totals {
		stats.CriteriaAverages[criterion] = utils.Round(total/float64(counts[criterion]), 2)
	}
	stats.ResponseQuality.AverageLength = utils.Round(float64(lengthTotal)/float64(len(scores)), 2)

	return stats
}

func recommendations(overall Overall, stats Statistics) []string {
	out := append([]string(nil), levelRecommendations[overall.PerformanceLevel]...)

	if overall.ConsistencyScore < lowConsistency {
		out = append(out, "Inconsistent performance across questions - investigate further")
	}

	for _, criterion := range criteriaOrder(stats.CriteriaAverages) {
		if stats.CriteriaAverages[criterion] < weakCriterion {
			out = append(out, fmt.Sprintf("Focus on improving %s skills", strings.ReplaceAll(criterion, "_", " ")))
		}
	}

	return utils.Head(out, maxRecommendations)
}

// criteriaOrder lists DefaultCriteria first, then any other criteria alphabetically.
func criteriaOrder(averages map[string]float64) []string {
	order := make([]string, 0, len(averages))
	known := make(map[string]bool, len(DefaultCriteria))
	for _, criterion := range DefaultCriteria {
		known[criterion] = true
		if _, ok := averages[criterion]; ok {
			order = append(order, criterion)
		}
	}

	var rest []string
	for criterion := range averages {
		if !known[criterion] {
			rest = append(rest, criterion)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}

// mostCommon returns up to n items by descending frequency; ties keep first-seen order.
func mostCommon(items []string, n int) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	return utils.Head(order, n)
}
