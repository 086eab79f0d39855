// Package recommendation holds hiring categories and the CV + interview combiner.
package recommendation

import (
	"fmt"
	"strings"
)

// Hiring is a categorical hiring decision.
type Hiring string

const (
	StrongHire          Hiring = "strong_hire"
	Hire                Hiring = "hire"
	Consider            Hiring = "consider"
	ConsiderWithCaution Hiring = "consider_with_caution"
	Reject              Hiring = "reject"
)

// Weights of the final recommendation. Interview scores are rescaled from 0-10 to 0-100 first.
const (
	CVWeight        = 0.4
	InterviewWeight = 0.6
	interviewScale  = 10
)

var ranks = map[Hiring]int{
	Reject:              0,
	ConsiderWithCaution: 1,
	Consider:            2,
	Hire:                3,
	StrongHire:          4,
}

// Rank orders categories from reject (0) to strong_hire (4). Unknown values rank below reject.
func (h Hiring) Rank() int {
	if rank, ok := ranks[h]; ok {
		return rank
	}
	return -1
}

// Title renders "strong_hire" as "Strong Hire".
func (h Hiring) Title() string {
	return TitleLabel(string(h))
}

// ParseHiring accepts a category name in any case.
func ParseHiring(s string) (Hiring, error) {
	h := Hiring(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ranks[h]; !ok {
		return "", fmt.Errorf("unknown hiring recommendation %q", s)
	}
	return h, nil
}

// WeightedScore combines a 0-100 CV score and a 0-10 interview score into a 0-100 score.
func WeightedScore(cvScore, interviewScore float64) float64 {
	return cvScore*CVWeight + interviewScore*interviewScale*InterviewWeight
}

// Combine returns the final recommendation for a candidate.
func Combine(cvScore, interviewScore float64) Hiring {
	score := WeightedScore(cvScore, interviewScore)
	switch {
	case score >= 85:
		return StrongHire
	case score >= 70:
		return Hire
	case score >= 50:
		return Consider
	default:
		return Reject
	}
}

// PerformanceLabel bands a 0-100 score for reports.
func PerformanceLabel(score float64) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Poor"
	}
}

// TitleLabel turns snake_case labels into space separated title case words.
func TitleLabel(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
