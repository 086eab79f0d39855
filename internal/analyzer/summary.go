package analyzer

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-evaluator/internal/utils"
)

const summaryItems = 3

// Markdown renders a short summary of every analysis in the batch.
func (o Outcomes) Markdown() string {
	var b strings.Builder
	b.WriteString("# CV Analysis Summary\n\n")

	for _, outcome := range o {
		fmt.Fprintf(&b, "## %s\n", outcome.Name)
		if outcome.Error != "" || outcome.Analysis == nil {
			fmt.Fprintf(&b, "**Error**: %s\n\n", outcome.Error)
			continue
		}

		overall := outcome.Analysis.OverallAssessment
		fmt.Fprintf(&b, "- **Overall Score**: %.1f/100\n", overall.OverallScore)
		fmt.Fprintf(&b, "- **Hiring Recommendation**: %s\n", overall.HiringRecommendation)
		fmt.Fprintf(&b, "- **Risk Level**: %s\n", overall.RiskLevel)
		if len(overall.Strengths) > 0 {
			fmt.Fprintf(&b, "- **Strengths**: %s\n", strings.Join(utils.Head(overall.Strengths, summaryItems), ", "))
		}
		if len(overall.Weaknesses) > 0 {
			fmt.Fprintf(&b, "- **Weaknesses**: %s\n", strings.Join(utils.Head(overall.Weaknesses, summaryItems), ", "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Summary renders outcomes as markdown.
func Summary(outcomes Outcomes) string {
	return outcomes.Markdown()
}
