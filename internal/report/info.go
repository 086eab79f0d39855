// Package report assembles candidate evaluation reports from CV analysis and interview results.
package report

import (
	"github.com/spigell/candidate-evaluator/internal/analyzer"
	"github.com/spigell/candidate-evaluator/internal/skills"
)

const (
	unknown           = "Unknown"
	skillsPerCategory = 3
)

// CandidateInfo is the basic candidate profile shown at the top of a report.
type CandidateInfo struct {
	Name            string   `json:"name" yaml:"name"`
	ExperienceLevel string   `json:"experience_level" yaml:"experience_level"`
	YearsExperience string   `json:"years_experience" yaml:"years_experience"`
	KeySkills       []string `json:"key_skills" yaml:"key_skills"`
}

// ExtractCandidateInfo derives the profile from the CV analysis. The model's view of experience
// wins over the keyword extraction when present.
func ExtractCandidateInfo(name string, cv *analyzer.Analysis) CandidateInfo {
	if name == "" {
		name = unknown
	}
	info := CandidateInfo{
		Name:            name,
		ExperienceLevel: unknown,
		YearsExperience: unknown,
		KeySkills:       []string{},
	}
	if cv == nil {
		return info
	}

	if cv.CVSkills.ExperienceLevel != "" {
		info.ExperienceLevel = string(cv.CVSkills.ExperienceLevel)
	}
	if cv.CVSkills.YearsExperience != "" {
		info.YearsExperience = cv.CVSkills.YearsExperience
	}
	info.KeySkills = keySkills(cv.CVSkills)

	if cv.ModelAnalysis != nil && cv.ModelAnalysis.ExperienceAssessment != nil {
		exp := cv.ModelAnalysis.ExperienceAssessment
		if exp.YearsExperience != "" {
			info.YearsExperience = exp.YearsExperience
		}
		if exp.ExperienceQuality != "" {
			info.ExperienceLevel = exp.ExperienceQuality
		}
	}

	return info
}

func keySkills(profile skills.SkillProfile) []string {
	out := make([]string, 0)
	for _, category := range profile.TechnicalSkills.Names() {
		list := profile.TechnicalSkills[category]
		if len(list) > skillsPerCategory {
			list = list[:skillsPerCategory]
		}
		out = append(out, list...)
	}
	return out
}
