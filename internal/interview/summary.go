package interview

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-evaluator/internal/recommendation"
)

// Markdown renders the interview result as a human readable summary.
func (r Result) Markdown() string {
	var b strings.Builder
	overall := r.OverallAssessment

	b.WriteString("# Interview Performance Summary\n\n")
	fmt.Fprintf(&b, "**Overall Score:** %.2f/10\n\n", overall.OverallScore)
	fmt.Fprintf(&b, "**Performance Level:** %s\n\n", recommendation.TitleLabel(string(overall.PerformanceLevel)))
	fmt.Fprintf(&b, "**Consistency Score:** %.2f/100\n\n", overall.ConsistencyScore)
	fmt.Fprintf(&b, "**Recommendation:** %s\n\n", overall.Recommendation.Title())
	fmt.Fprintf(&b, "**Questions Scored:** %d", overall.TotalQuestions)
	if overall.SkippedQuestions > 0 {
		fmt.Fprintf(&b, " (%d skipped)", overall.SkippedQuestions)
	}
	b.WriteString("\n\n")

	if len(r.IndividualScores) > 0 {
		b.WriteString("## Individual Scores\n\n")
		b.WriteString("| # | Question | Score | Recommendation |\n")
		b.WriteString("|---|----------|-------|----------------|\n")
		for _, score := range r.IndividualScores {
			fmt.Fprintf(&b, "| %d | %s | %d/10 | %s |\n",
				score.QuestionIndex+1,
				strings.ReplaceAll(score.Question, "|", "\\|"),
				score.OverallScore,
				score.Recommendation.Title(),
			)
		}
		b.WriteString("\n")
	}

	if len(r.SummaryStatistics.CriteriaAverages) > 0 {
		b.WriteString("## Criteria Averages\n\n")
		for _, criterion := range criteriaOrder(r.SummaryStatistics.CriteriaAverages) {
			fmt.Fprintf(&b, "- **%s:** %.2f\n", recommendation.TitleLabel(criterion), r.SummaryStatistics.CriteriaAverages[criterion])
		}
		b.WriteString("\n")
	}

	writeList(&b, "Top Strengths", overall.TopStrengths)
	writeList(&b, "Areas for Improvement", overall.TopWeaknesses)
	writeList(&b, "Recommendations", r.Recommendations)

	return b.String()
}

// Summary renders the interview result as markdown.
func Summary(r Result) string {
	return r.Markdown()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
