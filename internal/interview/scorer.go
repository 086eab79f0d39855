// Package interview scores interview answers and generates interview questions.
package interview

import (
	"strings"
	"unicode/utf8"

	"github.com/spigell/candidate-evaluator/internal/recommendation"
)

// Scoring criteria.
const (
	TechnicalKnowledge = "technical_knowledge"
	Communication      = "communication"
	ProblemSolving     = "problem_solving"
	CulturalFit        = "cultural_fit"
)

// DefaultCriteria is used when no criteria are configured.
var DefaultCriteria = []string{TechnicalKnowledge, Communication, ProblemSolving, CulturalFit}

var technicalKeywords = []string{"python", "java", "database", "api", "algorithm"}

const (
	maxScore         = 10
	culturalFitScore = 6
	considerScore    = 6
	scoreConfidence  = 50
)

// Score is the result for a single question/response pair.
type Score struct {
	QuestionIndex  int                   `json:"question_index" yaml:"question_index"`
	Question       string                `json:"question" yaml:"question"`
	OverallScore   int                   `json:"overall_score" yaml:"overall_score"`
	CriteriaScores map[string]int        `json:"criteria_scores" yaml:"criteria_scores"`
	Strengths      []string              `json:"strengths" yaml:"strengths"`
	Weaknesses     []string              `json:"weaknesses" yaml:"weaknesses"`
	Feedback       string                `json:"feedback" yaml:"feedback"`
	Recommendation recommendation.Hiring `json:"recommendation" yaml:"recommendation"`
	Confidence     int                   `json:"confidence" yaml:"confidence"`
	ResponseLength int                   `json:"response_length" yaml:"response_length"`
	Criteria       []string              `json:"criteria" yaml:"criteria"`
}

// ScoreResponse scores an answer from its length and, for technical questions, from technical
// keywords it mentions. criteria only annotates the result; the four criteria scores are always
// derived from the overall score.
func ScoreResponse(question, response string, criteria []string) Score {
	if len(criteria) == 0 {
		criteria = DefaultCriteria
	}

	length := utf8.RuneCountInString(response)

	overall := lengthScore(length)

	q := strings.ToLower(question)
	if strings.Contains(q, "technical") || strings.Contains(q, "programming") {
		r := strings.ToLower(response)
		for _, keyword := range technicalKeywords {
			if strings.Contains(r, keyword) {
				overall++
			}
		}
		overall = min(overall, maxScore)
	}

	rec := recommendation.Reject
	if overall >= considerScore {
		rec = recommendation.Consider
	}

	return Score{
		Question:     question,
		OverallScore: overall,
		CriteriaScores: map[string]int{
			TechnicalKnowledge: overall,
			Communication:      min(maxScore, overall+1),
			ProblemSolving:     overall,
			CulturalFit:        culturalFitScore,
		},
		Strengths:      []string{"Heuristic scoring used"},
		Weaknesses:     []string{"Detailed analysis unavailable"},
		Feedback:       "Scored from response length and technical keywords",
		Recommendation: rec,
		Confidence:     scoreConfidence,
		ResponseLength: length,
		Criteria:       append([]string(nil), criteria...),
	}
}

func lengthScore(length int) int {
	switch {
	case length < 50:
		return 3
	case length < 150:
		return 5
	case length < 300:
		return 7
	default:
		return 8
	}
}
