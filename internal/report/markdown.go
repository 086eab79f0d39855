package report

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-evaluator/internal/recommendation"
	"github.com/spigell/candidate-evaluator/internal/utils"
)

const summaryFindingItems = 3

// SummaryMarkdown renders the short candidate summary.
func SummaryMarkdown(r *Report) string {
	var b strings.Builder
	scores := r.Structured.ExecutiveSummary.OverallAssessment

	b.WriteString("# Candidate Evaluation Summary\n\n")
	b.WriteString("## Candidate Information\n")
	fmt.Fprintf(&b, "- **Name**: %s\n", r.CandidateInfo.Name)
	fmt.Fprintf(&b, "- **Experience Level**: %s\n", r.CandidateInfo.ExperienceLevel)
	fmt.Fprintf(&b, "- **Years of Experience**: %s\n\n", r.CandidateInfo.YearsExperience)

	b.WriteString("## Overall Assessment\n")
	fmt.Fprintf(&b, "- **CV Score**: %.1f/100\n", scores.CVScore)
	fmt.Fprintf(&b, "- **Interview Score**: %.1f/10\n", scores.InterviewScore)
	fmt.Fprintf(&b, "- **Overall Score**: %.1f/100\n", scores.OverallScore)
	fmt.Fprintf(&b, "- **Performance Level**: %s\n\n", scores.PerformanceLevel)

	b.WriteString("## Key Findings\n")
	for _, f := range findings(newInputs(r.CandidateInfo, r.CVAnalysis, r.InterviewScores)) {
		fmt.Fprintf(&b, "- **%s**: %s\n", f.label, strings.Join(utils.Head(f.items, summaryFindingItems), ", "))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Final Recommendation\n**%s**\n\n", r.FinalRecommendation.Title())

	b.WriteString("## Next Steps\n")
	switch r.FinalRecommendation {
	case recommendation.StrongHire, recommendation.Hire:
		b.WriteString("- Extend offer\n- Schedule onboarding\n- Prepare employment contract\n")
	case recommendation.Consider:
		b.WriteString("- Schedule additional assessment\n- Request references\n- Consider probationary period\n")
	default:
		b.WriteString("- Send rejection notice\n- Provide constructive feedback\n- Keep in database for future opportunities\n")
	}

	return b.String()
}

// RenderNarrative writes the long form report from the structured sections.
func RenderNarrative(r *Report) string {
	var b strings.Builder
	s := r.Structured
	exec := s.ExecutiveSummary

	fmt.Fprintf(&b, "# Candidate Evaluation Report: %s\n\n", r.CandidateInfo.Name)

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "%s (%s, %s years) scored %.1f/100 on the CV review and %.1f/10 in the interview, "+
		"for a weighted score of %.1f/100 (%s).\n\n",
		exec.CandidateOverview.Name,
		exec.CandidateOverview.ExperienceLevel,
		exec.CandidateOverview.YearsExperience,
		exec.OverallAssessment.CVScore,
		exec.OverallAssessment.InterviewScore,
		exec.OverallAssessment.OverallScore,
		exec.OverallAssessment.PerformanceLevel,
	)
	if len(exec.CandidateOverview.KeySkills) > 0 {
		fmt.Fprintf(&b, "Key skills: %s.\n\n", strings.Join(exec.CandidateOverview.KeySkills, ", "))
	}
	bullets(&b, "", exec.KeyFindings)
	fmt.Fprintf(&b, "**Final recommendation:** %s\n\n", exec.FinalRecommendation.Title())

	tech := s.TechnicalAssessment
	b.WriteString("## Technical Assessment\n\n")
	fmt.Fprintf(&b, "- **Skill match:** %.1f%%\n", tech.SkillMatch.SkillMatchPercentage)
	fmt.Fprintf(&b, "- **Gap score:** %.1f (%s impact)\n", tech.SkillMatch.GapScore, tech.TechnicalGaps.GapImpact)
	if len(tech.SkillMatch.MissingSkills) > 0 {
		fmt.Fprintf(&b, "- **Missing skills:** %s\n", strings.Join(tech.SkillMatch.MissingSkills, ", "))
	}
	if exp := tech.ExperienceEvaluation; exp != nil {
		fmt.Fprintf(&b, "- **Experience:** %s (%s)", exp.YearsExperience, exp.ExperienceQuality)
		if exp.ExperienceScore != nil {
			fmt.Fprintf(&b, ", score %.1f", *exp.ExperienceScore)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	perf := s.InterviewPerformance
	b.WriteString("## Interview Performance\n\n")
	fmt.Fprintf(&b, "- **Overall:** %.2f/10 (%s) over %d questions\n",
		perf.OverallPerformance.OverallScore,
		recommendation.TitleLabel(string(perf.OverallPerformance.PerformanceLevel)),
		perf.OverallPerformance.TotalQuestions,
	)
	fmt.Fprintf(&b, "- **Consistency:** %.2f/100\n\n", perf.ConsistencyScore)

	risk := s.RiskAssessment
	fmt.Fprintf(&b, "## Risk Assessment\n\nOverall risk: **%s**\n\n", recommendation.TitleLabel(string(risk.OverallRiskLevel)))
	bullets(&b, "### Risk Factors", risk.RiskFactors)
	bullets(&b, "### Red Flags", risk.RedFlags)
	bullets(&b, "### Mitigation", risk.MitigationStrategies)

	recs := s.Recommendations
	b.WriteString("## Recommendations\n\n")
	bullets(&b, "### Development Areas", recs.DevelopmentAreas)
	bullets(&b, "### Onboarding", recs.OnboardingSuggestions)
	bullets(&b, "### Team Fit", recs.TeamFitConsiderations)

	next := s.NextSteps
	b.WriteString("## Next Steps\n\n")
	bullets(&b, "", next.ImmediateActions)
	for _, milestone := range next.Timeline {
		fmt.Fprintf(&b, "- %s: %s\n", recommendation.TitleLabel(milestone.Step), milestone.Deadline)
	}
	fmt.Fprintf(&b, "\nDecision deadline: %s\n", next.DecisionDeadline)

	return b.String()
}

func bullets(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	if title != "" {
		fmt.Fprintf(b, "%s\n\n", title)
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
