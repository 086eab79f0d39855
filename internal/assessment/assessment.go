// Package assessment folds skill gaps and model scores into an overall CV assessment.
package assessment

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-evaluator/internal/ai"
	"github.com/spigell/candidate-evaluator/internal/gap"
	"github.com/spigell/candidate-evaluator/internal/recommendation"
	"github.com/spigell/candidate-evaluator/internal/skills"
	"github.com/spigell/candidate-evaluator/internal/utils"
)

const (
	maxStrengths       = 3
	maxWeaknesses      = 3
	maxRecommendations = 5
	minRecommendations = 3

	// Applied only when fewer than two score components are available.
	underqualifiedPenalty = 30
	overqualifiedBonus    = 10

	experienceNoteThreshold = 70
)

var fillerRecommendations = []string{
	"Schedule technical interview to assess practical skills",
	"Consider probationary period for skill development",
}

// Assessment is the overall verdict on a CV against a job.
type Assessment struct {
	OverallScore          float64               `json:"overall_score" yaml:"overall_score"`
	Strengths             []string              `json:"strengths" yaml:"strengths"`
	Weaknesses            []string              `json:"weaknesses" yaml:"weaknesses"`
	Recommendations       []string              `json:"recommendations" yaml:"recommendations"`
	RiskLevel             gap.RiskLevel         `json:"risk_level" yaml:"risk_level"`
	HiringRecommendation  recommendation.Hiring `json:"hiring_recommendation" yaml:"hiring_recommendation"`
	OverqualificationRisk gap.RiskLevel         `json:"overqualification_risk" yaml:"overqualification_risk"`
	RetentionRisk         gap.RiskLevel         `json:"retention_risk" yaml:"retention_risk"`
	RiskFactors           []string              `json:"risk_factors" yaml:"risk_factors"`
}

// Assess combines the gap result with the optional model analysis. A nil model, or nil fields in
// it, are treated as not available.
func Assess(cv skills.SkillProfile, job skills.RequirementProfile, g gap.Result, model *ai.Analysis) Assessment {
	score := Score(cv, job, g, model)

	return Assessment{
		OverallScore:          score,
		Strengths:             strengths(cv, model),
		Weaknesses:            weaknesses(g, model),
		Recommendations:       recommendations(g, model),
		RiskLevel:             RiskLevel(score, g.OverqualificationRisk),
		HiringRecommendation:  HiringRecommendation(score, g),
		OverqualificationRisk: g.OverqualificationRisk,
		RetentionRisk:         g.RetentionRisk,
		RiskFactors:           append([]string(nil), g.RiskFactors...),
	}
}

// Score averages the available components: model overall score (when positive), 100 - gap score
// and model experience score. With fewer than two components a label based adjustment applies.
func Score(cv skills.SkillProfile, job skills.RequirementProfile, g gap.Result, model *ai.Analysis) float64 {
	components := make([]float64, 0, 3)

	if model != nil && model.OverallScore != nil && *model.OverallScore > 0 {
		components = append(components, *model.OverallScore)
	}

	components = append(components, 100-g.GapScore)

	if exp, ok := model.ExperienceScore(); ok {
		components = append(components, exp)
	}

	if len(components) < 2 {
		score := 100 - g.GapScore

		candidate := strings.ToLower(string(cv.ExperienceLevel))
		wanted := strings.ToLower(string(job.ExperienceLevel))
		switch {
		case strings.Contains(candidate, "junior") && strings.Contains(wanted, "senior"):
			score -= underqualifiedPenalty
		case strings.Contains(candidate, "senior") && strings.Contains(wanted, "junior"):
			score += overqualifiedBonus
		}

		return utils.Clamp(score, 0, 100)
	}

	total := 0.0
	for _, c := range components {
		total += c
	}

	return utils.Clamp(total/float64(len(components)), 0, 100)
}

// RiskLevel bands a score; a high overqualification risk always yields high.
func RiskLevel(score float64, overqualification gap.RiskLevel) gap.RiskLevel {
	if overqualification == gap.RiskHigh {
		return gap.RiskHigh
	}

	switch {
	case score >= 80:
		return gap.RiskLow
	case score >= 60:
		return gap.RiskMedium
	default:
		return gap.RiskHigh
	}
}

// HiringRecommendation maps a CV score to a hiring category.
func HiringRecommendation(score float64, g gap.Result) recommendation.Hiring {
	if g.OverqualificationRisk == gap.RiskHigh {
		return recommendation.ConsiderWithCaution
	}

	switch {
	case score >= 85 && g.GapScore < 20:
		return recommendation.StrongHire
	case score >= 70:
		return recommendation.Hire
	case score >= 50:
		return recommendation.Consider
	default:
		return recommendation.Reject
	}
}

func strengths(cv skills.SkillProfile, model *ai.Analysis) []string {
	if model != nil && len(model.Strengths) > 0 {
		return append([]string(nil), model.Strengths...)
	}

	out := make([]string, 0, maxStrengths)
	tech := cv.TechnicalSkills

	if langs := tech[skills.CategoryProgrammingLanguages]; len(langs) > 0 {
		out = append(out, "Strong programming skills: "+strings.Join(utils.Head(langs, 3), ", "))
	}
	if frameworks := tech[skills.CategoryFrameworks]; len(frameworks) > 0 {
		out = append(out, "Experience with frameworks: "+strings.Join(utils.Head(frameworks, 2), ", "))
	}
	if tools := tech[skills.CategoryTools]; len(tools) > 0 {
		out = append(out, "Proficient with tools: "+strings.Join(utils.Head(tools, 2), ", "))
	}
	if cv.ExperienceLevel != "" && cv.ExperienceLevel != skills.LevelUnknown {
		out = append(out, fmt.Sprintf("Appropriate experience level: %s", cv.ExperienceLevel))
	}

	return utils.Head(out, maxStrengths)
}

func weaknesses(g gap.Result, model *ai.Analysis) []string {
	if model != nil && len(model.Weaknesses) > 0 {
		return append([]string(nil), model.Weaknesses...)
	}

	out := make([]string, 0, maxWeaknesses)

	if len(g.MissingTechnicalSkills) > 0 {
		out = append(out, "Missing technical skills: "+strings.Join(utils.Head(g.MissingTechnicalSkills, 3), ", "))
	}

	switch {
	case g.GapScore > 50:
		out = append(out, "Significant skill gaps identified")
	case g.GapScore > 20:
		out = append(out, "Moderate skill gaps identified")
	}

	return utils.Head(out, maxWeaknesses)
}

func recommendations(g gap.Result, model *ai.Analysis) []string {
	out := make([]string, 0, maxRecommendations)

	if model != nil {
		out = append(out, model.Recommendations...)
	}

	if len(g.MissingTechnicalSkills) > 0 {
		out = append(out, "Consider training in: "+strings.Join(utils.Head(g.MissingTechnicalSkills, 3), ", "))
	}

	if exp, ok := model.ExperienceScore(); ok && exp < experienceNoteThreshold {
		out = append(out, "Consider additional experience in relevant technologies")
	}

	if len(out) < minRecommendations {
		out = append(out, fillerRecommendations...)
	}

	return utils.Head(out, maxRecommendations)
}
