package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/candidate-evaluator/internal/ai"
	"github.com/spigell/candidate-evaluator/internal/analyzer"
	"github.com/spigell/candidate-evaluator/internal/assessment"
	"github.com/spigell/candidate-evaluator/internal/gap"
	"github.com/spigell/candidate-evaluator/internal/interview"
	"github.com/spigell/candidate-evaluator/internal/recommendation"
	"github.com/spigell/candidate-evaluator/internal/skills"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func (s *stubGenerator) Model() string { return "stub" }

func strongCV() *analyzer.Analysis {
	return &analyzer.Analysis{
		CVSkills: skills.SkillProfile{
			TechnicalSkills: skills.Categories{
				skills.CategoryTools:                {"Docker"},
				skills.CategoryProgrammingLanguages: {"Python", "Java", "Go", "Rust"},
			},
			ExperienceLevel: skills.LevelSenior,
			YearsExperience: "5+",
		},
		ModelAnalysis: &ai.Analysis{
			ExperienceAssessment: &ai.ExperienceAssessment{
				YearsExperience:   "7 years",
				ExperienceScore:   ai.Float(80),
				ExperienceQuality: "strong",
			},
		},
		SkillGaps: gap.Result{MissingTechnicalSkills: []string{"kubernetes"}, GapScore: 40},
		OverallAssessment: assessment.Assessment{
			OverallScore: 80,
			Strengths:    []string{"Python", "Java", "Go"},
			Weaknesses:   []string{"Missing kubernetes", "Shared gap"},
			RiskLevel:    gap.RiskLow,
		},
	}
}

func goodInterview() *interview.Result {
	return &interview.Result{
		OverallAssessment: interview.Overall{
			OverallScore:     8,
			PerformanceLevel: interview.Good,
			ConsistencyScore: 65,
			Recommendation:   recommendation.Hire,
			TopStrengths:     []string{"Heuristic scoring used"},
			TopWeaknesses:    []string{"Shared gap", "Detailed analysis unavailable"},
			TotalQuestions:   3,
		},
		SummaryStatistics: interview.Statistics{
			CriteriaAverages: map[string]float64{interview.TechnicalKnowledge: 8},
		},
	}
}

func weakCV() *analyzer.Analysis {
	return &analyzer.Analysis{
		SkillGaps:         gap.Result{MissingTechnicalSkills: []string{"python", "docker"}, GapScore: 60},
		OverallAssessment: assessment.Assessment{OverallScore: 30, RiskLevel: gap.RiskMedium},
	}
}

func poorInterview() *interview.Result {
	return &interview.Result{
		OverallAssessment: interview.Overall{
			OverallScore:     3,
			PerformanceLevel: interview.Poor,
			ConsistencyScore: 100,
			Recommendation:   recommendation.Reject,
		},
	}
}

func TestExtractCandidateInfo(t *testing.T) {
	info := ExtractCandidateInfo("jane", strongCV())

	assert.Equal(t, "jane", info.Name)
	assert.Equal(t, "strong", info.ExperienceLevel)
	assert.Equal(t, "7 years", info.YearsExperience)
	assert.Equal(t, []string{"Python", "Java", "Go", "Docker"}, info.KeySkills)

	empty := ExtractCandidateInfo("", nil)
	assert.Equal(t, CandidateInfo{Name: "Unknown", ExperienceLevel: "Unknown", YearsExperience: "Unknown", KeySkills: []string{}}, empty)
}

func TestBuildStructuredStrongCandidate(t *testing.T) {
	cv := strongCV()
	s := BuildStructured(ExtractCandidateInfo("jane", cv), cv, goodInterview())

	exec := s.ExecutiveSummary
	assert.Equal(t, Scores{CVScore: 80, InterviewScore: 8, OverallScore: 80, PerformanceLevel: "Good"}, exec.OverallAssessment)
	assert.Equal(t, recommendation.Hire, exec.FinalRecommendation)
	assert.Equal(t, []string{
		"CV Strengths: Python, Java",
		"CV Areas of Concern: Missing kubernetes, Shared gap",
		"Interview Strengths: Heuristic scoring used",
		"Interview Areas for Improvement: Shared gap, Detailed analysis unavailable",
	}, exec.KeyFindings)

	tech := s.TechnicalAssessment
	assert.InDelta(t, 60, tech.SkillMatch.SkillMatchPercentage, 0.001)
	assert.Equal(t, "Medium", tech.TechnicalGaps.GapImpact)
	require.NotNil(t, tech.ExperienceEvaluation)
	assert.Equal(t, "strong", tech.ExperienceEvaluation.ExperienceQuality)
	assert.Equal(t, 80.0, tech.TechnicalScore)

	assert.Equal(t, 3, s.InterviewPerformance.OverallPerformance.TotalQuestions)
	assert.Equal(t, 8.0, s.InterviewPerformance.CriteriaBreakdown[interview.TechnicalKnowledge])

	risk := s.RiskAssessment
	assert.Equal(t, gap.RiskLow, risk.OverallRiskLevel)
	assert.Equal(t, []string{
		"High skill gap score: 40.0%",
		"Inconsistent interview performance: 65.00%",
	}, risk.RiskFactors)
	assert.Empty(t, risk.MitigationStrategies)
	assert.Empty(t, risk.RedFlags)

	recs := s.Recommendations
	assert.Equal(t, []string{"Missing kubernetes", "Shared gap", "Detailed analysis unavailable"}, recs.DevelopmentAreas)
	assert.Contains(t, recs.OnboardingSuggestions, "Mentor assignment")
	assert.Equal(t, []string{"Good communication skills", "Positive team dynamics"}, recs.TeamFitConsiderations)

	assert.Equal(t, []string{"Extend offer", "Schedule follow-up meeting", "Prepare onboarding plan"}, s.NextSteps.ImmediateActions)
	assert.Equal(t, "Within 1 week", s.NextSteps.DecisionDeadline)
	assert.Empty(t, s.NextSteps.AdditionalAssessments)
}

func TestBuildStructuredWeakCandidate(t *testing.T) {
	s := BuildStructured(CandidateInfo{Name: "bob"}, weakCV(), poorInterview())

	assert.Equal(t, recommendation.Reject, s.ExecutiveSummary.FinalRecommendation)
	assert.InDelta(t, 30, s.ExecutiveSummary.OverallAssessment.OverallScore, 0.001)
	assert.Equal(t, "Poor", s.ExecutiveSummary.OverallAssessment.PerformanceLevel)
	assert.Equal(t, "High", s.TechnicalAssessment.TechnicalGaps.GapImpact)
	assert.Nil(t, s.TechnicalAssessment.ExperienceEvaluation)

	risk := s.RiskAssessment
	assert.Equal(t, gap.RiskHigh, risk.OverallRiskLevel)
	assert.Len(t, risk.MitigationStrategies, 4)
	assert.Equal(t, []string{"Very poor interview performance", "Significant skill gaps"}, risk.RedFlags)

	assert.Empty(t, s.Recommendations.OnboardingSuggestions)
	assert.Equal(t, []string{"May need communication training", "Monitor team integration"}, s.Recommendations.TeamFitConsiderations)
	assert.Equal(t, "Send rejection letter", s.NextSteps.ImmediateActions[0])
}

func TestBuildStructuredConsiderTimeline(t *testing.T) {
	cv := weakCV()
	cv.OverallAssessment.OverallScore = 50
	scores := poorInterview()
	scores.OverallAssessment.OverallScore = 5

	// 50*0.4 + 5*10*0.6 = 50
	s := BuildStructured(CandidateInfo{Name: "carol"}, cv, scores)

	assert.Equal(t, recommendation.Consider, s.ExecutiveSummary.FinalRecommendation)
	assert.Len(t, s.NextSteps.AdditionalAssessments, 4)
	assert.Equal(t, "Within 2 weeks", s.NextSteps.DecisionDeadline)
	assert.Equal(t, Milestone{Step: "additional_assessment", Deadline: "Within 1 week"}, s.NextSteps.Timeline[0])
}

func TestGapImpact(t *testing.T) {
	assert.Equal(t, "Low", GapImpact(25))
	assert.Equal(t, "Medium", GapImpact(25.1))
	assert.Equal(t, "Medium", GapImpact(50))
	assert.Equal(t, "High", GapImpact(50.1))
}

func TestBuilderUsesModelNarrative(t *testing.T) {
	stub := &stubGenerator{response: "# Candidate Evaluation Report\n\nGreat hire.\n"}
	builder := NewBuilder(stub, zap.NewNop(), 0)
	builder.newID = func() string { return "report-1" }

	report := builder.Build(context.Background(), "jane", strongCV(), goodInterview(), nil)

	assert.Equal(t, "# Candidate Evaluation Report\n\nGreat hire.", report.Narrative)
	assert.Equal(t, NarrativeModel, report.Metadata.NarrativeSource)
	assert.Equal(t, "report-1", report.Metadata.ReportID)
	assert.Equal(t, Version, report.Metadata.ReportVersion)
	assert.Equal(t, recommendation.Hire, report.FinalRecommendation)
	assert.Contains(t, stub.prompt, `"name": "jane"`)
	assert.Contains(t, stub.prompt, `"gap_score": 40`)
	assert.NotContains(t, stub.prompt, "{{")
}

func TestBuilderFallsBackToRenderedNarrative(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	builder := NewBuilder(&stubGenerator{err: errors.New("unavailable")}, zap.New(core), 0)

	report := builder.Build(context.Background(), "jane", strongCV(), goodInterview(), nil)

	assert.Equal(t, NarrativeRendered, report.Metadata.NarrativeSource)
	assert.True(t, strings.HasPrefix(report.Narrative, "# Candidate Evaluation Report: jane\n"))
	assert.Contains(t, report.Narrative, "**Final recommendation:** Hire")
	assert.Contains(t, report.Narrative, "- Offer Deadline: Within 1 week")
	assert.Equal(t, 1, logs.FilterMessage("narrative generation failed, rendering from structured report").Len())

	_, err := uuid.Parse(report.Metadata.ReportID)
	assert.NoError(t, err)
}

func TestBuilderWithoutGenerator(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	info := CandidateInfo{Name: "Given Name", ExperienceLevel: "mid-level", YearsExperience: "3-5"}

	report := NewBuilder(nil, zap.New(core), 0).Build(context.Background(), "file-stem", weakCV(), poorInterview(), &info)

	assert.Equal(t, info, report.CandidateInfo)
	assert.Equal(t, NarrativeRendered, report.Metadata.NarrativeSource)
	assert.Zero(t, logs.Len())
	assert.Equal(t, report.Summary, report.Markdown())
}

func TestSummaryMarkdown(t *testing.T) {
	report := NewBuilder(nil, nil, 0).Build(context.Background(), "jane", strongCV(), goodInterview(), nil)

	md := SummaryMarkdown(report)

	for _, want := range []string{
		"# Candidate Evaluation Summary\n\n## Candidate Information\n- **Name**: jane\n",
		"- **Experience Level**: strong\n",
		"- **CV Score**: 80.0/100\n- **Interview Score**: 8.0/10\n- **Overall Score**: 80.0/100\n- **Performance Level**: Good\n",
		"- **CV Strengths**: Python, Java, Go\n",
		"## Final Recommendation\n**Hire**\n",
		"## Next Steps\n- Extend offer\n",
	} {
		assert.Contains(t, md, want)
	}
}
