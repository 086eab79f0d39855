package report

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-evaluator/internal/analyzer"
	"github.com/spigell/candidate-evaluator/internal/gap"
	"github.com/spigell/candidate-evaluator/internal/interview"
	"github.com/spigell/candidate-evaluator/internal/recommendation"
	"github.com/spigell/candidate-evaluator/internal/utils"
)

const (
	overviewSkills     = 5
	maxKeyFindings     = 5
	maxDevelopmentArea = 5
	findingItems       = 2
)

// Overview identifies the candidate in the executive summary.
type Overview struct {
	Name            string   `json:"name" yaml:"name"`
	ExperienceLevel string   `json:"experience_level" yaml:"experience_level"`
	YearsExperience string   `json:"years_experience" yaml:"years_experience"`
	KeySkills       []string `json:"key_skills" yaml:"key_skills"`
}

// Scores are the headline numbers of a report.
type Scores struct {
	CVScore          float64 `json:"cv_score" yaml:"cv_score"`
	InterviewScore   float64 `json:"interview_score" yaml:"interview_score"`
	OverallScore     float64 `json:"overall_score" yaml:"overall_score"`
	PerformanceLevel string  `json:"performance_level" yaml:"performance_level"`
}

type ExecutiveSummary struct {
	CandidateOverview   Overview              `json:"candidate_overview" yaml:"candidate_overview"`
	OverallAssessment   Scores                `json:"overall_assessment" yaml:"overall_assessment"`
	KeyFindings         []string              `json:"key_findings" yaml:"key_findings"`
	FinalRecommendation recommendation.Hiring `json:"final_recommendation" yaml:"final_recommendation"`
}

type SkillMatch struct {
	MissingSkills        []string `json:"missing_skills" yaml:"missing_skills"`
	GapScore             float64  `json:"gap_score" yaml:"gap_score"`
	SkillMatchPercentage float64  `json:"skill_match_percentage" yaml:"skill_match_percentage"`
}

type ExperienceEvaluation struct {
	YearsExperience   string   `json:"years_experience" yaml:"years_experience"`
	ExperienceScore   *float64 `json:"experience_score,omitempty" yaml:"experience_score,omitempty"`
	ExperienceQuality string   `json:"experience_quality" yaml:"experience_quality"`
}

type TechnicalGaps struct {
	MissingTechnicalSkills []string `json:"missing_technical_skills" yaml:"missing_technical_skills"`
	GapImpact              string   `json:"gap_impact" yaml:"gap_impact"`
}

type TechnicalAssessment struct {
	SkillMatch           SkillMatch            `json:"skill_match" yaml:"skill_match"`
	ExperienceEvaluation *ExperienceEvaluation `json:"experience_evaluation,omitempty" yaml:"experience_evaluation,omitempty"`
	TechnicalGaps        TechnicalGaps         `json:"technical_gaps" yaml:"technical_gaps"`
	TechnicalScore       float64               `json:"technical_score" yaml:"technical_score"`
}

type OverallPerformance struct {
	OverallScore     float64                    `json:"overall_score" yaml:"overall_score"`
	PerformanceLevel interview.PerformanceLevel `json:"performance_level" yaml:"performance_level"`
	TotalQuestions   int                        `json:"total_questions" yaml:"total_questions"`
	Recommendation   recommendation.Hiring      `json:"recommendation" yaml:"recommendation"`
}

type InterviewPerformance struct {
	OverallPerformance OverallPerformance        `json:"overall_performance" yaml:"overall_performance"`
	CriteriaBreakdown  map[string]float64        `json:"criteria_breakdown" yaml:"criteria_breakdown"`
	ResponseAnalysis   interview.ResponseQuality `json:"response_analysis" yaml:"response_analysis"`
	ConsistencyScore   float64                   `json:"consistency_score" yaml:"consistency_score"`
}

type RiskAssessment struct {
	OverallRiskLevel     gap.RiskLevel `json:"overall_risk_level" yaml:"overall_risk_level"`
	RiskFactors          []string      `json:"risk_factors" yaml:"risk_factors"`
	MitigationStrategies []string      `json:"mitigation_strategies" yaml:"mitigation_strategies"`
	RedFlags             []string      `json:"red_flags" yaml:"red_flags"`
}

type Recommendations struct {
	HiringRecommendation  recommendation.Hiring `json:"hiring_recommendation" yaml:"hiring_recommendation"`
	DevelopmentAreas      []string              `json:"development_areas" yaml:"development_areas"`
	OnboardingSuggestions []string              `json:"onboarding_suggestions" yaml:"onboarding_suggestions"`
	TeamFitConsiderations []string              `json:"team_fit_considerations" yaml:"team_fit_considerations"`
}

// Milestone is one entry of the hiring timeline.
type Milestone struct {
	Step     string `json:"step" yaml:"step"`
	Deadline string `json:"deadline" yaml:"deadline"`
}

type NextSteps struct {
	ImmediateActions      []string    `json:"immediate_actions" yaml:"immediate_actions"`
	Timeline              []Milestone `json:"timeline" yaml:"timeline"`
	AdditionalAssessments []string    `json:"additional_assessments" yaml:"additional_assessments"`
	DecisionDeadline      string      `json:"decision_deadline" yaml:"decision_deadline"`
}

// Structured is the sectioned report.
type Structured struct {
	ExecutiveSummary     ExecutiveSummary     `json:"executive_summary" yaml:"executive_summary"`
	TechnicalAssessment  TechnicalAssessment  `json:"technical_assessment" yaml:"technical_assessment"`
	InterviewPerformance InterviewPerformance `json:"interview_performance" yaml:"interview_performance"`
	RiskAssessment       RiskAssessment       `json:"risk_assessment" yaml:"risk_assessment"`
	Recommendations      Recommendations      `json:"recommendations" yaml:"recommendations"`
	NextSteps            NextSteps            `json:"next_steps" yaml:"next_steps"`
}

// inputs flattens the optional analysis and interview records into the values the sections use.
type inputs struct {
	info      CandidateInfo
	cv        *analyzer.Analysis
	interview *interview.Result

	cvScore        float64
	interviewScore float64
	consistency    float64
	gapScore       float64
	final          recommendation.Hiring
}

func newInputs(info CandidateInfo, cv *analyzer.Analysis, scores *interview.Result) inputs {
	in := inputs{info: info, cv: cv, interview: scores, consistency: 100}
	if cv != nil {
		in.cvScore = cv.OverallAssessment.OverallScore
		in.gapScore = cv.SkillGaps.GapScore
	}
	if scores != nil {
		in.interviewScore = scores.OverallAssessment.OverallScore
		in.consistency = scores.OverallAssessment.ConsistencyScore
	}
	in.final = recommendation.Combine(in.cvScore, in.interviewScore)
	return in
}

// BuildStructured assembles every section of the structured report.
func BuildStructured(info CandidateInfo, cv *analyzer.Analysis, scores *interview.Result) Structured {
	in := newInputs(info, cv, scores)

	return Structured{
		ExecutiveSummary:     executiveSummary(in),
		TechnicalAssessment:  technicalAssessment(in),
		InterviewPerformance: interviewPerformance(in),
		RiskAssessment:       riskAssessment(in),
		Recommendations:      recommendations(in),
		NextSteps:            nextSteps(in.final),
	}
}

func executiveSummary(in inputs) ExecutiveSummary {
	overall := recommendation.WeightedScore(in.cvScore, in.interviewScore)

	return ExecutiveSummary{
		CandidateOverview: Overview{
			Name:            in.info.Name,
			ExperienceLevel: in.info.ExperienceLevel,
			YearsExperience: in.info.YearsExperience,
			KeySkills:       utils.Head(in.info.KeySkills, overviewSkills),
		},
		OverallAssessment: Scores{
			CVScore:          utils.Round(in.cvScore, 1),
			InterviewScore:   utils.Round(in.interviewScore, 1),
			OverallScore:     utils.Round(overall, 1),
			PerformanceLevel: recommendation.PerformanceLabel(overall),
		},
		KeyFindings:         keyFindings(in),
		FinalRecommendation: in.final,
	}
}

type finding struct {
	label string
	items []string
}

func findings(in inputs) []finding {
	var out []finding
	add := func(label string, items []string) {
		if len(items) > 0 {
			out = append(out, finding{label: label, items: items})
		}
	}

	if in.cv != nil {
		add("CV Strengths", in.cv.OverallAssessment.Strengths)
		add("CV Areas of Concern", in.cv.OverallAssessment.Weaknesses)
	}
	if in.interview != nil {
		add("Interview Strengths", in.interview.OverallAssessment.TopStrengths)
		add("Interview Areas for Improvement", in.interview.OverallAssessment.TopWeaknesses)
	}

	return out
}

func keyFindings(in inputs) []string {
	out := make([]string, 0)
	for _, f := range findings(in) {
		out = append(out, fmt.Sprintf("%s: %s", f.label, strings.Join(utils.Head(f.items, findingItems), ", ")))
	}
	return utils.Head(out, maxKeyFindings)
}

func technicalAssessment(in inputs) TechnicalAssessment {
	assessment := TechnicalAssessment{
		SkillMatch:    SkillMatch{MissingSkills: []string{}, SkillMatchPercentage: 100},
		TechnicalGaps: TechnicalGaps{MissingTechnicalSkills: []string{}, GapImpact: GapImpact(0)},
	}
	if in.cv == nil {
		return assessment
	}

	missing := append([]string{}, in.cv.SkillGaps.MissingTechnicalSkills...)
	assessment.SkillMatch = SkillMatch{
		MissingSkills:        missing,
		GapScore:             in.gapScore,
		SkillMatchPercentage: 100 - in.gapScore,
	}
	assessment.TechnicalGaps = TechnicalGaps{
		MissingTechnicalSkills: missing,
		GapImpact:              GapImpact(in.gapScore),
	}
	assessment.TechnicalScore = in.cvScore

	if model := in.cv.ModelAnalysis; model != nil && model.ExperienceAssessment != nil {
		exp := model.ExperienceAssessment
		assessment.ExperienceEvaluation = &ExperienceEvaluation{
			YearsExperience:   orUnknown(exp.YearsExperience),
			ExperienceScore:   exp.ExperienceScore,
			ExperienceQuality: orUnknown(exp.ExperienceQuality),
		}
	}

	return assessment
}

// GapImpact labels a gap score High above 50, Medium above 25 and Low otherwise.
func GapImpact(gapScore float64) string {
	switch {
	case gapScore > 50:
		return "High"
	case gapScore > 25:
		return "Medium"
	default:
		return "Low"
	}
}

func interviewPerformance(in inputs) InterviewPerformance {
	performance := InterviewPerformance{
		OverallPerformance: OverallPerformance{
			PerformanceLevel: interview.Poor,
			Recommendation:   recommendation.Reject,
		},
		CriteriaBreakdown: map[string]float64{},
		ConsistencyScore:  in.consistency,
	}
	if in.interview == nil {
		return performance
	}

	overall := in.interview.OverallAssessment
	performance.OverallPerformance = OverallPerformance{
		OverallScore:     overall.OverallScore,
		PerformanceLevel: overall.PerformanceLevel,
		TotalQuestions:   overall.TotalQuestions,
		Recommendation:   overall.Recommendation,
	}
	for criterion, avg := range in.interview.SummaryStatistics.CriteriaAverages {
		performance.CriteriaBreakdown[criterion] = avg
	}
	performance.ResponseAnalysis = in.interview.SummaryStatistics.ResponseQuality

	return performance
}

var mitigations = map[gap.RiskLevel][]string{
	gap.RiskHigh: {
		"Consider probationary period",
		"Implement additional training program",
		"Schedule follow-up assessments",
		"Assign mentor for onboarding",
	},
	gap.RiskMedium: {
		"Provide specific feedback",
		"Set clear performance expectations",
		"Monitor progress closely",
	},
}

func riskAssessment(in inputs) RiskAssessment {
	cvRisk := gap.RiskMedium
	if in.cv != nil && in.cv.OverallAssessment.RiskLevel != "" {
		cvRisk = in.cv.OverallAssessment.RiskLevel
	}

	level := gap.RiskMedium
	switch {
	case cvRisk == gap.RiskHigh || in.interviewScore < 5:
		level = gap.RiskHigh
	case cvRisk == gap.RiskLow && in.interviewScore >= 7:
		level = gap.RiskLow
	}

	factors := make([]string, 0)
	if in.gapScore > 30 {
		factors = append(factors, fmt.Sprintf("High skill gap score: %.1f%%", in.gapScore))
	}
	if in.interviewScore < 6 {
		factors = append(factors, fmt.Sprintf("Low interview performance: %.2f/10", in.interviewScore))
	}
	if in.consistency < 70 {
		factors = append(factors, fmt.Sprintf("Inconsistent interview performance: %.2f%%", in.consistency))
	}

	flags := make([]string, 0)
	if in.interviewScore < 4 {
		flags = append(flags, "Very poor interview performance")
	}
	if in.gapScore > 50 {
		flags = append(flags, "Significant skill gaps")
	}

	return RiskAssessment{
		OverallRiskLevel:     level,
		RiskFactors:          factors,
		MitigationStrategies: append([]string{}, mitigations[level]...),
		RedFlags:             flags,
	}
}

func recommendations(in inputs) Recommendations {
	var areas []string
	if in.cv != nil {
		areas = append(areas, in.cv.OverallAssessment.Weaknesses...)
	}
	if in.interview != nil {
		areas = append(areas, in.interview.OverallAssessment.TopWeaknesses...)
	}

	out := Recommendations{
		HiringRecommendation:  in.final,
		DevelopmentAreas:      utils.Head(dedupe(areas), maxDevelopmentArea),
		OnboardingSuggestions: []string{},
	}

	switch in.final {
	case recommendation.StrongHire, recommendation.Hire:
		out.OnboardingSuggestions = []string{
			"Standard onboarding process",
			"Technical skills assessment",
			"Team introduction and shadowing",
			"Mentor assignment",
		}
	case recommendation.Consider:
		out.OnboardingSuggestions = []string{
			"Extended probationary period",
			"Focused training program",
			"Regular performance reviews",
			"Skills development plan",
		}
	}

	if in.interview != nil {
		if in.interviewScore >= 7 {
			out.TeamFitConsiderations = []string{"Good communication skills", "Positive team dynamics"}
		} else {
			out.TeamFitConsiderations = []string{"May need communication training", "Monitor team integration"}
		}
	} else {
		out.TeamFitConsiderations = []string{}
	}

	return out
}

func nextSteps(final recommendation.Hiring) NextSteps {
	steps := NextSteps{AdditionalAssessments: []string{}}

	switch final {
	case recommendation.StrongHire:
		steps.ImmediateActions = []string{"Extend offer immediately", "Schedule onboarding meeting", "Prepare employment contract"}
	case recommendation.Hire:
		steps.ImmediateActions = []string{"Extend offer", "Schedule follow-up meeting", "Prepare onboarding plan"}
	case recommendation.Consider:
		steps.ImmediateActions = []string{"Schedule additional interview", "Request references", "Consider probationary period"}
	default:
		steps.ImmediateActions = []string{
			"Send rejection letter",
			"Provide constructive feedback",
			"Keep candidate in database for future opportunities",
		}
	}

	switch final {
	case recommendation.StrongHire, recommendation.Hire:
		steps.Timeline = []Milestone{
			{Step: "offer_deadline", Deadline: "Within 1 week"},
			{Step: "start_date", Deadline: "Within 2-4 weeks"},
			{Step: "onboarding", Deadline: "First 2 weeks"},
		}
		steps.DecisionDeadline = "Within 1 week"
	case recommendation.Consider:
		steps.Timeline = []Milestone{
			{Step: "additional_assessment", Deadline: "Within 1 week"},
			{Step: "decision_deadline", Deadline: "Within 2 weeks"},
			{Step: "start_date", Deadline: "Within 4-6 weeks"},
		}
		steps.AdditionalAssessments = []string{
			"Technical coding test",
			"Reference checks",
			"Cultural fit interview",
			"Skills assessment",
		}
		steps.DecisionDeadline = "Within 2 weeks"
	default:
		steps.Timeline = []Milestone{
			{Step: "rejection_notice", Deadline: "Within 1 week"},
			{Step: "feedback_provided", Deadline: "Within 2 weeks"},
		}
		steps.DecisionDeadline = "Within 1 week"
	}

	return steps
}

// dedupe drops repeated items keeping the first occurrence.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
