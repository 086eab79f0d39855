package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/ai"
	"github.com/spigell/candidate-evaluator/internal/analyzer"
	"github.com/spigell/candidate-evaluator/internal/interview"
	"github.com/spigell/candidate-evaluator/internal/recommendation"
	"github.com/spigell/candidate-evaluator/internal/utils"
)

// Version is the report format version.
const Version = "1.0"

// Narrative sources.
const (
	NarrativeModel    = "model"
	NarrativeRendered = "rendered"
)

const defaultMaxLogLength = 200

//go:embed prompts/report.md
var reportPrompt string

// Metadata identifies a generated report.
type Metadata struct {
	ReportID        string    `json:"report_id" yaml:"report_id"`
	GeneratedAt     time.Time `json:"generated_at" yaml:"generated_at"`
	ReportVersion   string    `json:"report_version" yaml:"report_version"`
	NarrativeSource string    `json:"narrative_source" yaml:"narrative_source"`
}

// Report is the complete evaluation of one candidate.
type Report struct {
	CandidateInfo       CandidateInfo         `json:"candidate_info" yaml:"candidate_info"`
	CVAnalysis          *analyzer.Analysis    `json:"cv_analysis" yaml:"cv_analysis"`
	InterviewScores     *interview.Result     `json:"interview_scores" yaml:"interview_scores"`
	Narrative           string                `json:"narrative" yaml:"narrative"`
	Structured          Structured            `json:"structured_report" yaml:"structured_report"`
	Summary             string                `json:"summary_report" yaml:"summary_report"`
	FinalRecommendation recommendation.Hiring `json:"final_recommendation" yaml:"final_recommendation"`
	Metadata            Metadata              `json:"metadata" yaml:"metadata"`
}

// Markdown returns the markdown summary of the report.
func (r *Report) Markdown() string {
	return r.Summary
}

// Builder assembles reports. With a generator configured the narrative is written by the model.
type Builder struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
	now       func() time.Time
	newID     func() string
}

// NewBuilder creates a Builder. generator may be nil.
func NewBuilder(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Builder{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Build combines the CV analysis and interview result into a report. info may be nil, in which
// case it is extracted from the CV analysis.
func (b *Builder) Build(ctx context.Context, name string, cv *analyzer.Analysis, scores *interview.Result, info *CandidateInfo) *Report {
	candidate := ExtractCandidateInfo(name, cv)
	if info != nil {
		candidate = *info
	}

	structured := BuildStructured(candidate, cv, scores)
	report := &Report{
		CandidateInfo:       candidate,
		CVAnalysis:          cv,
		InterviewScores:     scores,
		Structured:          structured,
		FinalRecommendation: structured.ExecutiveSummary.FinalRecommendation,
		Metadata: Metadata{
			ReportID:        b.newID(),
			GeneratedAt:     b.now().UTC(),
			ReportVersion:   Version,
			NarrativeSource: NarrativeRendered,
		},
	}
	report.Summary = SummaryMarkdown(report)

	narrative, err := b.narrative(ctx, report)
	switch {
	case err != nil:
		b.logger.Warn("narrative generation failed, rendering from structured report",
			zap.String("candidate", candidate.Name),
			zap.Error(err),
		)
		report.Narrative = RenderNarrative(report)
	case narrative == "":
		report.Narrative = RenderNarrative(report)
	default:
		report.Narrative = narrative
		report.Metadata.NarrativeSource = NarrativeModel
	}

	b.logger.Info("report generated",
		zap.String("candidate", candidate.Name),
		zap.String("report_id", report.Metadata.ReportID),
		zap.String("final_recommendation", string(report.FinalRecommendation)),
	)

	return report
}

func (b *Builder) narrative(ctx context.Context, report *Report) (string, error) {
	if b.generator == nil {
		return "", nil
	}

	prompt, err := buildReportPrompt(report)
	if err != nil {
		return "", err
	}

	b.logger.Debug("report request",
		zap.String("model", b.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, b.maxLogLen)),
	)

	raw, err := b.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	b.logger.Debug("report response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, b.maxLogLen)),
	)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty report", ai.ErrModel)
	}
	return raw, nil
}

func buildReportPrompt(report *Report) (string, error) {
	sections := []struct {
		placeholder string
		value       any
	}{
		{"{{CANDIDATE_INFO}}", report.CandidateInfo},
		{"{{CV_ANALYSIS}}", report.CVAnalysis},
		{"{{INTERVIEW_SCORES}}", report.InterviewScores},
	}

	prompt := reportPrompt
	for _, section := range sections {
		payload, err := json.MarshalIndent(section.value, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal report payload: %w", err)
		}
		prompt = strings.ReplaceAll(prompt, section.placeholder, string(payload))
	}

	return prompt, nil
}
