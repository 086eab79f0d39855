package skills

import (
	"strings"
	"unicode"
)

type category struct {
	name     string
	keywords []string
}

var cvCategories = []category{
	{name: CategoryProgrammingLanguages, keywords: []string{"python", "java", "javascript", "c++", "c#", "php", "ruby", "go", "rust"}},
	{name: CategoryFrameworks, keywords: []string{"django", "flask", "react", "angular", "vue", "spring", "node.js", "express"}},
	{name: CategoryDatabases, keywords: []string{"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle"}},
	{name: CategoryTools, keywords: []string{"git", "docker", "kubernetes", "jenkins", "jira", "confluence", "aws", "azure", "gcp"}},
}

// requirement maps any of the trigger keywords to one canonical skill name.
type requirement struct {
	skill    string
	triggers []string
}

var jobCategories = []struct {
	name         string
	requirements []requirement
}{
	{name: CategoryProgrammingLanguages, requirements: []requirement{
		{skill: "python", triggers: []string{"python"}},
		{skill: "java", triggers: []string{"java"}},
		{skill: "javascript", triggers: []string{"javascript"}},
	}},
	{name: CategoryFrameworks, requirements: []requirement{
		{skill: "django/flask", triggers: []string{"django", "flask"}},
		{skill: "spring", triggers: []string{"spring"}},
	}},
	{name: CategoryCloudPlatforms, requirements: []requirement{
		{skill: "cloud platforms", triggers: []string{"aws", "azure", "gcp"}},
	}},
	{name: CategoryTools, requirements: []requirement{
		{skill: "docker", triggers: []string{"docker"}},
		{skill: "kubernetes", triggers: []string{"kubernetes"}},
		{skill: "ci/cd", triggers: []string{"ci/cd", "jenkins"}},
	}},
	{name: CategoryArchitecture, requirements: []requirement{
		{skill: "microservices", triggers: []string{"microservices"}},
		{skill: "system design", triggers: []string{"system design"}},
	}},
}

// levelRule is checked in table order; the first rule with a matching keyword wins.
type levelRule struct {
	level    ExperienceLevel
	years    string
	keywords []string
}

var cvLevelRules = []levelRule{
	{level: LevelJunior, years: "1-2", keywords: []string{"junior", "entry", "graduate", "intern"}},
	{level: LevelSenior, years: "5+", keywords: []string{"senior", "lead", "architect", "principal"}},
	{level: LevelMid, years: "3-5", keywords: []string{"mid", "intermediate", "3", "4", "5"}},
}

var jobLevelRules = []levelRule{
	{level: LevelSenior, years: "5+", keywords: []string{"senior", "lead", "architect", "principal", "5+", "6+", "7+", "8+", "9+", "10+"}},
	{level: LevelJunior, years: "1-3", keywords: []string{"junior", "entry", "graduate", "intern", "1-3", "0-2"}},
	{level: LevelMid, years: "3-5", keywords: []string{"mid", "intermediate", "3-5", "4-6"}},
}

const bachelorDegree = "bachelor's degree or higher"

// ExtractSkills builds a SkillProfile from CV text. Every keyword found by substring match is
// appended to its category under its title-cased name.
func ExtractSkills(text string) SkillProfile {
	lower := strings.ToLower(text)

	found := make(Categories, len(cvCategories))
	for _, cat := range cvCategories {
		skills := make([]string, 0)
		for _, keyword := range cat.keywords {
			if strings.Contains(lower, keyword) {
				skills = append(skills, titleCase(keyword))
			}
		}
		found[cat.name] = skills
	}

	level, years := classify(lower, cvLevelRules)

	return SkillProfile{
		TechnicalSkills: found,
		SoftSkills:      []string{},
		ExperienceLevel: level,
		YearsExperience: years,
	}
}

// ExtractRequirements builds a RequirementProfile from job description text.
func ExtractRequirements(text string) RequirementProfile {
	lower := strings.ToLower(text)

	required := make(Categories, len(jobCategories))
	for _, cat := range jobCategories {
		skills := make([]string, 0)
		for _, req := range cat.requirements {
			if containsAny(lower, req.triggers) {
				skills = append(skills, req.skill)
			}
		}
		required[cat.name] = skills
	}

	level, years := classify(lower, jobLevelRules)

	degree := unknownLabel
	if strings.Contains(lower, "bachelor") {
		degree = bachelorDegree
	}

	return RequirementProfile{
		RequiredSkills:  required,
		ExperienceLevel: level,
		YearsExperience: years,
		DegreeLevel:     degree,
	}
}

func classify(lower string, rules []levelRule) (ExperienceLevel, string) {
	for _, rule := range rules {
		if containsAny(lower, rule.keywords) {
			return rule.level, rule.years
		}
	}
	return LevelUnknown, unknownLabel
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// titleCase upper-cases the first letter of every run of letters: "node.js" -> "Node.Js".
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
