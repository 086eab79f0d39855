package report

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-evaluator/internal/recommendation"
)

// Entry is one candidate of a batch: either a report or the error that prevented it.
type Entry struct {
	Name   string
	Report *Report
	Error  string
}

func (e Entry) failed() bool {
	return e.Error != "" || e.Report == nil
}

// Batch is an ordered set of evaluated candidates.
type Batch []Entry

var categoryOrder = []recommendation.Hiring{
	recommendation.StrongHire,
	recommendation.Hire,
	recommendation.Consider,
	recommendation.ConsiderWithCaution,
	recommendation.Reject,
}

var categoryNotes = map[recommendation.Hiring]string{
	recommendation.StrongHire:          "Excellent fit, recommend immediate offer",
	recommendation.Hire:                "Good fit, recommend offer with standard onboarding",
	recommendation.Consider:            "Potential fit, recommend additional assessment or probationary period",
	recommendation.ConsiderWithCaution: "Possible fit with notable risks, review carefully before proceeding",
	recommendation.Reject:              "Not a good fit, recommend rejection with constructive feedback",
}

func (b Batch) split() (Batch, Batch) {
	var ok, failed Batch
	for _, entry := range b {
		if entry.failed() {
			failed = append(failed, entry)
		} else {
			ok = append(ok, entry)
		}
	}
	return ok, failed
}

// Summary renders the batch overview table with the recommendation distribution.
func (b Batch) Summary() string {
	ok, failed := b.split()
	var s strings.Builder

	s.WriteString("# Batch Evaluation Summary\n\n")
	fmt.Fprintf(&s, "**Total Candidates Evaluated:** %d\n\n", len(ok))

	s.WriteString("## Candidate Overview\n\n")
	s.WriteString("| Candidate | CV Score | Interview Score | Overall Score | Final Recommendation |\n")
	s.WriteString("|-----------|----------|-----------------|---------------|----------------------|\n")
	for _, entry := range ok {
		scores := entry.Report.Structured.ExecutiveSummary.OverallAssessment
		fmt.Fprintf(&s, "| %s | %.1f/100 | %.1f/10 | %.1f/100 | %s |\n",
			entry.Name, scores.CVScore, scores.InterviewScore, scores.OverallScore, entry.Report.FinalRecommendation.Title())
	}

	s.WriteString("\n## Key Insights\n\n")
	counts := make(map[recommendation.Hiring]int)
	for _, entry := range ok {
		counts[entry.Report.FinalRecommendation]++
	}
	for _, category := range categoryOrder {
		if counts[category] == 0 {
			continue
		}
		fmt.Fprintf(&s, "- **%s**: %d candidates (%.1f%%)\n",
			category.Title(), counts[category], float64(counts[category])/float64(len(ok))*100)
	}

	writeFlagged(&s, failed)
	return s.String()
}

// Comparison renders a metric by candidate table.
func (b Batch) Comparison() string {
	ok, failed := b.split()
	var s strings.Builder

	s.WriteString("# Candidate Comparison Table\n\n")
	s.WriteString("## Detailed Comparison\n\n")

	names := make([]string, 0, len(ok))
	separators := make([]string, 0, len(ok))
	for _, entry := range ok {
		names = append(names, entry.Name)
		separators = append(separators, "---")
	}
	fmt.Fprintf(&s, "| Metric | %s |\n", strings.Join(names, " | "))
	fmt.Fprintf(&s, "|--------|%s|\n", strings.Join(separators, "|"))

	rows := []struct {
		metric string
		value  func(r *Report) string
	}{
		{"CV Score", func(r *Report) string {
			return fmt.Sprintf("%.1f", r.Structured.ExecutiveSummary.OverallAssessment.CVScore)
		}},
		{"Interview Score", func(r *Report) string {
			return fmt.Sprintf("%.1f", r.Structured.ExecutiveSummary.OverallAssessment.InterviewScore)
		}},
		{"Overall Score", func(r *Report) string {
			return fmt.Sprintf("%.1f", r.Structured.ExecutiveSummary.OverallAssessment.OverallScore)
		}},
		{"Final Recommendation", func(r *Report) string { return r.FinalRecommendation.Title() }},
		{"Risk Level", func(r *Report) string {
			if r.CVAnalysis == nil {
				return unknown
			}
			return recommendation.TitleLabel(string(r.CVAnalysis.OverallAssessment.RiskLevel))
		}},
	}

	for _, row := range rows {
		values := make([]string, 0, len(ok))
		for _, entry := range ok {
			values = append(values, row.value(entry.Report))
		}
		fmt.Fprintf(&s, "| %s | %s |\n", row.metric, strings.Join(values, " | "))
	}

	writeFlagged(&s, failed)
	return s.String()
}

// FinalRecommendations groups candidates by final recommendation.
func (b Batch) FinalRecommendations() string {
	ok, failed := b.split()
	var s strings.Builder

	s.WriteString("# Final Recommendations\n\n")
	s.WriteString("## Hiring Recommendations\n\n")

	grouped := make(map[recommendation.Hiring][]string)
	for _, entry := range ok {
		grouped[entry.Report.FinalRecommendation] = append(grouped[entry.Report.FinalRecommendation], entry.Name)
	}
	for _, category := range categoryOrder {
		if len(grouped[category]) == 0 {
			continue
		}
		fmt.Fprintf(&s, "### %s Candidates\n\n", category.Title())
		for _, name := range grouped[category] {
			fmt.Fprintf(&s, "- **%s**: %s\n", name, categoryNotes[category])
		}
		s.WriteString("\n")
	}

	s.WriteString("## Next Steps\n\n")
	s.WriteString("1. **Immediate Actions**:\n")
	s.WriteString("   - Contact strong hire candidates within 24 hours\n")
	s.WriteString("   - Schedule follow-up interviews for consider candidates\n")
	s.WriteString("   - Send rejection letters with feedback\n\n")
	s.WriteString("2. **Process Improvements**:\n")
	s.WriteString("   - Review evaluation criteria based on outcomes\n")
	s.WriteString("   - Gather feedback from hiring managers\n")
	s.WriteString("   - Refine scoring thresholds if needed\n")

	writeFlagged(&s, failed)
	return s.String()
}

func writeFlagged(s *strings.Builder, failed Batch) {
	if len(failed) == 0 {
		return
	}
	s.WriteString("\n## Flagged Candidates\n\n")
	for _, entry := range failed {
		reason := entry.Error
		if reason == "" {
			reason = "no report generated"
		}
		fmt.Fprintf(s, "- **%s**: %s\n", entry.Name, reason)
	}
}
