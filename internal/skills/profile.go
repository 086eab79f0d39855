// Package skills turns raw CV and job description text into keyword-based skill profiles.
package skills

import "sort"

// ExperienceLevel classifies seniority.
type ExperienceLevel string

const (
	LevelUnknown ExperienceLevel = "unknown"
	LevelJunior  ExperienceLevel = "junior"
	LevelMid     ExperienceLevel = "mid-level"
	LevelSenior  ExperienceLevel = "senior"
)

const unknownLabel = "unknown"

// Skill categories. CV and job tables share some names.
const (
	CategoryProgrammingLanguages = "programming_languages"
	CategoryFrameworks           = "frameworks"
	CategoryDatabases            = "databases"
	CategoryTools                = "tools"
	CategoryCloudPlatforms       = "cloud_platforms"
	CategoryArchitecture         = "architecture"
)

// Categories maps a category name to the skills found for it, in match order.
type Categories map[string][]string

// Flatten returns every entry of every category in deterministic category order.
func (c Categories) Flatten() []string {
	var out []string
	for _, name := range c.Names() {
		out = append(out, c[name]...)
	}
	return out
}

// Names returns the category names in a stable order: known categories first, then the rest sorted.
func (c Categories) Names() []string {
	known := []string{
		CategoryProgrammingLanguages,
		CategoryFrameworks,
		CategoryDatabases,
		CategoryTools,
		CategoryCloudPlatforms,
		CategoryArchitecture,
	}

	names := make([]string, 0, len(c))
	seen := make(map[string]bool, len(known))
	for _, name := range known {
		seen[name] = true
		if _, ok := c[name]; ok {
			names = append(names, name)
		}
	}

	var rest []string
	for name := range c {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(names, rest...)
}

// SkillProfile is what a CV says about a candidate.
type SkillProfile struct {
	TechnicalSkills Categories      `json:"technical_skills" yaml:"technical_skills"`
	SoftSkills      []string        `json:"soft_skills" yaml:"soft_skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level" yaml:"experience_level"`
	YearsExperience string          `json:"years_experience" yaml:"years_experience"`
}

// RequirementProfile is what a job description asks for.
type RequirementProfile struct {
	RequiredSkills  Categories      `json:"required_skills" yaml:"required_skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level" yaml:"experience_level"`
	YearsExperience string          `json:"years_experience" yaml:"years_experience"`
	DegreeLevel     string          `json:"degree_level" yaml:"degree_level"`
}
