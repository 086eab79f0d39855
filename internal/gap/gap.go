// Package gap compares a candidate skill profile with job requirements.
package gap

import (
	"strings"

	"github.com/spigell/candidate-evaluator/internal/skills"
	"github.com/spigell/candidate-evaluator/internal/utils"
)

// ExperienceGap classifies a seniority mismatch between candidate and job.
type ExperienceGap string

const (
	ExperienceGapNone ExperienceGap = "none"
	JuniorForSenior   ExperienceGap = "junior_applying_for_senior"
	SeniorForJunior   ExperienceGap = "senior_applying_for_junior"
)

// RiskLevel is a three-step risk classification.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

const (
	juniorForSeniorPenalty = 30
	seniorForJuniorBonus   = 20
)

var (
	overqualifiedFactors = []string{
		"Candidate may feel underutilized",
		"Higher salary expectations",
		"May leave for better opportunities",
		"Could be bored with junior-level tasks",
	}
	underqualifiedFactors = []string{
		"Candidate may struggle with senior responsibilities",
		"Learning curve could be steep",
		"May need additional training and support",
	}
	standardFactors = []string{"Standard risk assessment"}
)

// Result describes the shortfall of a candidate against a job.
type Result struct {
	MissingTechnicalSkills []string      `json:"missing_technical_skills" yaml:"missing_technical_skills"`
	ExperienceGap          ExperienceGap `json:"experience_gap" yaml:"experience_gap"`
	GapScore               float64       `json:"gap_score" yaml:"gap_score"`
	OverqualificationRisk  RiskLevel     `json:"overqualification_risk" yaml:"overqualification_risk"`
	RetentionRisk          RiskLevel     `json:"retention_risk" yaml:"retention_risk"`
	RiskFactors            []string      `json:"risk_factors" yaml:"risk_factors"`
}

// Compute derives the gap between cv and job. Skills are compared case-insensitively as sets;
// missing skills keep the order in which the job lists them.
func Compute(cv skills.SkillProfile, job skills.RequirementProfile) Result {
	candidate := make(map[string]bool)
	for _, skill := range cv.TechnicalSkills.Flatten() {
		candidate[strings.ToLower(skill)] = true
	}

	required := uniqueLower(job.RequiredSkills.Flatten())

	missing := make([]string, 0)
	for _, skill := range required {
		if !candidate[skill] {
			missing = append(missing, skill)
		}
	}

	expGap := classify(cv.ExperienceLevel, job.ExperienceLevel)

	score := 0.0
	if len(required) > 0 {
		score = float64(len(missing)) / float64(len(required)) * 100
	}
	switch expGap {
	case JuniorForSenior:
		score += juniorForSeniorPenalty
	case SeniorForJunior:
		score -= seniorForJuniorBonus
	}
	score = utils.Clamp(score, 0, 100)

	result := Result{
		MissingTechnicalSkills: missing,
		ExperienceGap:          expGap,
		GapScore:               score,
	}

	switch expGap {
	case SeniorForJunior:
		result.OverqualificationRisk = RiskHigh
		result.RetentionRisk = RiskHigh
		result.RiskFactors = append([]string(nil), overqualifiedFactors...)
	case JuniorForSenior:
		result.OverqualificationRisk = RiskLow
		result.RetentionRisk = RiskLow
		result.RiskFactors = append([]string(nil), underqualifiedFactors...)
	default:
		result.OverqualificationRisk = RiskMedium
		result.RetentionRisk = RiskMedium
		result.RiskFactors = append([]string(nil), standardFactors...)
	}

	return result
}

func classify(candidate, job skills.ExperienceLevel) ExperienceGap {
	switch {
	case candidate == skills.LevelJunior && job == skills.LevelSenior:
		return JuniorForSenior
	case candidate == skills.LevelSenior && job == skills.LevelJunior:
		return SeniorForJunior
	default:
		return ExperienceGapNone
	}
}

func uniqueLower(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
