// Package ai defines the language model collaborators used during evaluation.
package ai

import (
	"context"
	"errors"
)

// ErrModel marks failures of the external model: transport errors, empty or unparsable output.
var ErrModel = errors.New("model call failed")

// Generator produces free text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Analyst produces a best-effort structured analysis of a CV against a job description.
type Analyst interface {
	AnalyzeCV(ctx context.Context, cvText, jobText string) (*Analysis, error)
}

// SkillMatch is the model's view of skill coverage.
type SkillMatch struct {
	RequiredSkills       []string `json:"required_skills,omitempty" yaml:"required_skills,omitempty" mapstructure:"required_skills"`
	MissingSkills        []string `json:"missing_skills,omitempty" yaml:"missing_skills,omitempty" mapstructure:"missing_skills"`
	SkillMatchPercentage *float64 `json:"skill_match_percentage,omitempty" yaml:"skill_match_percentage,omitempty" mapstructure:"skill_match_percentage"`
}

// ExperienceAssessment is the model's view of the candidate's experience.
type ExperienceAssessment struct {
	YearsExperience    string   `json:"years_experience,omitempty" yaml:"years_experience,omitempty" mapstructure:"years_experience"`
	RelevantExperience string   `json:"relevant_experience,omitempty" yaml:"relevant_experience,omitempty" mapstructure:"relevant_experience"`
	ExperienceScore    *float64 `json:"experience_score,omitempty" yaml:"experience_score,omitempty" mapstructure:"experience_score"`
	ExperienceQuality  string   `json:"experience_quality,omitempty" yaml:"experience_quality,omitempty" mapstructure:"experience_quality"`
}

// Analysis is a model analysis record. Every field is optional; nil means "not available".
type Analysis struct {
	OverallScore         *float64              `json:"overall_score,omitempty" yaml:"overall_score,omitempty" mapstructure:"overall_score"`
	SkillMatch           *SkillMatch           `json:"skill_match,omitempty" yaml:"skill_match,omitempty" mapstructure:"skill_match"`
	ExperienceAssessment *ExperienceAssessment `json:"experience_assessment,omitempty" yaml:"experience_assessment,omitempty" mapstructure:"experience_assessment"`
	Strengths            []string              `json:"strengths,omitempty" yaml:"strengths,omitempty" mapstructure:"strengths"`
	Weaknesses           []string              `json:"weaknesses,omitempty" yaml:"weaknesses,omitempty" mapstructure:"weaknesses"`
	Recommendations      []string              `json:"recommendations,omitempty" yaml:"recommendations,omitempty" mapstructure:"recommendations"`
	Confidence           *float64              `json:"confidence,omitempty" yaml:"confidence,omitempty" mapstructure:"confidence"`
}

// ExperienceScore returns the experience score when the model supplied one.
func (a *Analysis) ExperienceScore() (float64, bool) {
	if a == nil || a.ExperienceAssessment == nil || a.ExperienceAssessment.ExperienceScore == nil {
		return 0, false
	}
	return *a.ExperienceAssessment.ExperienceScore, true
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// FallbackAnalysis is the fixed record used when no model is configured or the model fails.
func FallbackAnalysis() *Analysis {
	return &Analysis{
		OverallScore: Float(75),
		SkillMatch: &SkillMatch{
			RequiredSkills:       []string{"python", "javascript"},
			MissingSkills:        []string{"docker"},
			SkillMatchPercentage: Float(80),
		},
		ExperienceAssessment: &ExperienceAssessment{
			YearsExperience: "3-5 years",
			ExperienceScore: Float(85),
		},
		Recommendations: []string{"Consider additional training", "Schedule technical interview"},
		Confidence:      Float(80),
	}
}

// Placeholder is an Analyst that always answers with FallbackAnalysis.
type Placeholder struct{}

func (Placeholder) AnalyzeCV(context.Context, string, string) (*Analysis, error) {
	return FallbackAnalysis(), nil
}
